// Package templates stores reusable email templates owned by users.
package templates

import (
	"time"

	"github.com/Abraxas-365/mailer/pkg/kernel"
)

type Template struct {
	ID        kernel.TemplateID `json:"id"`
	UserID    kernel.UserID     `json:"userId"`
	Name      string            `json:"name"`
	Subject   string            `json:"subject"`
	Text      string            `json:"text"`
	HTML      string            `json:"html"`
	CreatedAt time.Time         `json:"createdAt"`
	UpdatedAt time.Time         `json:"updatedAt"`
}

// OwnedBy reports whether userID may access t. An empty userID skips the check.
func (t Template) OwnedBy(userID kernel.UserID) bool {
	return userID.IsEmpty() || t.UserID == userID
}

type CreateRequest struct {
	UserID  kernel.UserID `json:"userId"`
	Name    string        `json:"name"`
	Subject string        `json:"subject"`
	Text    string        `json:"text"`
	HTML    string        `json:"html"`
}

// UpdateRequest is a partial update. Empty Name and Subject are ignored;
// Text and HTML are applied whenever present, even if empty.
type UpdateRequest struct {
	UserID  kernel.UserID `json:"userId"`
	Name    string        `json:"name"`
	Subject string        `json:"subject"`
	Text    *string       `json:"text"`
	HTML    *string       `json:"html"`
}
