package kernel

// AuthContext is what the auth gate attaches to every authenticated request.
// The mail core never reads it; handlers may use it for logging.
type AuthContext struct {
	// Subject identifies the caller as reported by the credential verifier.
	Subject string `json:"subject"`
	// UserID is set when the verifier can map the credential to a user.
	UserID *UserID `json:"user_id,omitempty"`
	// Scheme names the credential scheme that accepted the request.
	Scheme string `json:"scheme"`
}

// IsValid reports whether the context carries an accepted credential.
func (ac *AuthContext) IsValid() bool {
	return ac != nil && ac.Subject != ""
}

type ContextKey string

const (
	// AuthContextKey is the fiber Locals key holding *AuthContext
	AuthContextKey ContextKey = "auth_context"

	// RequestIDKey holds the request ID
	RequestIDKey ContextKey = "request_id"
)
