package mailx

import (
	"encoding/json"
	"strings"

	"github.com/Abraxas-365/mailer/pkg/kernel"
)

// AddressList accepts either a single address string or an array of
// addresses when decoded from JSON.
type AddressList []string

func (a *AddressList) UnmarshalJSON(data []byte) error {
	var single string
	if err := json.Unmarshal(data, &single); err == nil {
		if strings.TrimSpace(single) == "" {
			*a = nil
		} else {
			*a = AddressList{single}
		}
		return nil
	}
	var many []string
	if err := json.Unmarshal(data, &many); err != nil {
		return err
	}
	*a = AddressList(many)
	return nil
}

// Addresses returns the non-blank entries, trimmed. A transport renders
// them as one comma-separated header.
func (a AddressList) Addresses() []string {
	var out []string
	for _, addr := range a {
		if addr = strings.TrimSpace(addr); addr != "" {
			out = append(out, addr)
		}
	}
	return out
}

// Empty reports whether the list carries no usable address.
func (a AddressList) Empty() bool {
	return len(a.Addresses()) == 0
}

// Envelope is what a Transport delivers.
type Envelope struct {
	From    string
	To      []string
	Cc      []string
	Bcc     []string
	Subject string
	Text    string
	HTML    string
}

// SendRequest is the body of POST /api/email/send.
type SendRequest struct {
	To      AddressList   `json:"to"`
	Cc      AddressList   `json:"cc,omitempty"`
	Bcc     AddressList   `json:"bcc,omitempty"`
	Subject string        `json:"subject"`
	Text    string        `json:"text,omitempty"`
	HTML    string        `json:"html,omitempty"`
	UserID  kernel.UserID `json:"userId,omitempty"`
}

// Validate checks the request in the order the API reports problems.
func (r SendRequest) Validate() error {
	if r.To.Empty() {
		return validationError("Recipient email (to) is required")
	}
	if strings.TrimSpace(r.Subject) == "" {
		return validationError("Subject is required")
	}
	if r.Text == "" && r.HTML == "" {
		return validationError("Email content (text or html) is required")
	}
	return nil
}

// BulkRequest is the body of POST /api/email/send-bulk.
type BulkRequest struct {
	Recipients []string      `json:"recipients"`
	Subject    string        `json:"subject"`
	Text       string        `json:"text,omitempty"`
	HTML       string        `json:"html,omitempty"`
	UserID     kernel.UserID `json:"userId,omitempty"`
}

func (r BulkRequest) Validate() error {
	if len(r.Recipients) == 0 {
		return validationError("Recipients array is required and must not be empty")
	}
	if strings.TrimSpace(r.Subject) == "" {
		return validationError("Subject is required")
	}
	if r.Text == "" && r.HTML == "" {
		return validationError("Email content (text or html) is required")
	}
	return nil
}

// SendReceipt is the outcome of a single successful send.
type SendReceipt struct {
	MessageID string `json:"messageId"`
}

// RecipientResult is the outcome for one bulk recipient.
type RecipientResult struct {
	Recipient string `json:"recipient"`
	Success   bool   `json:"success"`
	MessageID string `json:"messageId,omitempty"`
	Error     string `json:"error,omitempty"`
}

// DeliveryResult collects bulk outcomes in recipient order.
type DeliveryResult struct {
	Results []RecipientResult
	Sent    int
	Failed  int
}

// Succeeded returns the successful results in order.
func (d DeliveryResult) Succeeded() []RecipientResult {
	out := make([]RecipientResult, 0, d.Sent)
	for _, r := range d.Results {
		if r.Success {
			out = append(out, r)
		}
	}
	return out
}

// Failures returns the failed results in order.
func (d DeliveryResult) Failures() []RecipientResult {
	out := make([]RecipientResult, 0, d.Failed)
	for _, r := range d.Results {
		if !r.Success {
			out = append(out, r)
		}
	}
	return out
}
