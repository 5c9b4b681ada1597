package errx

import (
	"errors"

	"github.com/gofiber/fiber/v2"
)

// Response is the JSON envelope written for every failed request.
type Response struct {
	Success   bool                   `json:"success"`
	Error     string                 `json:"error"`
	Code      string                 `json:"code,omitempty"`
	Type      string                 `json:"type,omitempty"`
	Details   map[string]interface{} `json:"details,omitempty"`
	RequestID string                 `json:"request_id,omitempty"`
}

// ToResponse converts an Error into the failure envelope
func (e *Error) ToResponse() Response {
	resp := Response{
		Success: false,
		Error:   e.Message,
		Code:    e.Code,
		Type:    string(e.Type),
	}
	if len(e.Details) > 0 {
		resp.Details = e.Details
	}
	return resp
}

// Status returns the HTTP status an error should be rendered with.
func Status(err error) int {
	var e *Error
	if errors.As(err, &e) {
		return e.HTTPStatus
	}
	var fe *fiber.Error
	if errors.As(err, &fe) {
		return fe.Code
	}
	return fiber.StatusInternalServerError
}

// WriteFiber renders err on the fiber context using the failure envelope.
func WriteFiber(c *fiber.Ctx, err error) error {
	requestID := c.GetRespHeader(fiber.HeaderXRequestID)

	var e *Error
	if errors.As(err, &e) {
		resp := e.ToResponse()
		resp.RequestID = requestID
		return c.Status(e.HTTPStatus).JSON(resp)
	}

	var fe *fiber.Error
	if errors.As(err, &fe) {
		return c.Status(fe.Code).JSON(Response{
			Success:   false,
			Error:     fe.Message,
			Code:      "FIBER_ERROR",
			RequestID: requestID,
		})
	}

	return c.Status(fiber.StatusInternalServerError).JSON(Response{
		Success:   false,
		Error:     "An unexpected error occurred",
		Code:      "INTERNAL_ERROR",
		Type:      string(TypeInternal),
		RequestID: requestID,
	})
}
