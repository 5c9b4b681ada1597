package ptrx

// Of returns a pointer to a copy of v.
func Of[T any](v T) *T {
	return &v
}

// Bool returns a pointer value for the bool value passed in.
func Bool(v bool) *bool {
	return &v
}

// Int returns a pointer value for the int value passed in.
func Int(v int) *int {
	return &v
}

// String returns a pointer value for the string value passed in.
func String(v string) *string {
	return &v
}

// Value returns the value p points to, or the zero value when p is nil.
func Value[T any](p *T) T {
	var zero T
	if p == nil {
		return zero
	}
	return *p
}

// ValueOr returns the value p points to, or fallback when p is nil.
func ValueOr[T any](p *T, fallback T) T {
	if p == nil {
		return fallback
	}
	return *p
}
