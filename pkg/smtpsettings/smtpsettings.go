// Package smtpsettings stores per-user SMTP accounts.
package smtpsettings

import (
	"encoding/json"
	"strconv"
	"strings"
	"time"

	"github.com/Abraxas-365/mailer/pkg/kernel"
)

// Port decodes from a JSON number or a numeric string.
type Port int

func (p *Port) UnmarshalJSON(data []byte) error {
	var n int
	if err := json.Unmarshal(data, &n); err == nil {
		*p = Port(n)
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	s = strings.TrimSpace(s)
	if s == "" {
		*p = 0
		return nil
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return err
	}
	*p = Port(n)
	return nil
}

// SettingsRecord is one user's SMTP account. Secure is tri-state: nil means
// the security mode is inferred from the port.
type SettingsRecord struct {
	UserID    kernel.UserID `json:"userId"`
	Host      string        `json:"host"`
	Port      Port          `json:"port"`
	User      string        `json:"user"`
	Password  string        `json:"password"`
	Secure    *bool         `json:"secure,omitempty"`
	CreatedAt time.Time     `json:"createdAt"`
	UpdatedAt time.Time     `json:"updatedAt"`
}

// Public is the record as returned over HTTP: never with the password.
type Public struct {
	UserID    kernel.UserID `json:"userId"`
	Host      string        `json:"host"`
	Port      Port          `json:"port"`
	User      string        `json:"user"`
	Secure    *bool         `json:"secure,omitempty"`
	CreatedAt time.Time     `json:"createdAt"`
	UpdatedAt time.Time     `json:"updatedAt"`
}

func (r SettingsRecord) Public() Public {
	return Public{
		UserID:    r.UserID,
		Host:      r.Host,
		Port:      r.Port,
		User:      r.User,
		Secure:    r.Secure,
		CreatedAt: r.CreatedAt,
		UpdatedAt: r.UpdatedAt,
	}
}

// SaveRequest is the body of POST /api/smtp.
type SaveRequest struct {
	UserID   kernel.UserID `json:"userId" validate:"required"`
	Host     string        `json:"host" validate:"required"`
	Port     Port          `json:"port" validate:"required,min=1,max=65535"`
	User     string        `json:"user" validate:"required"`
	Password string        `json:"password" validate:"required"`
	Secure   *bool         `json:"secure"`
}
