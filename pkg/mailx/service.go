package mailx

import (
	"context"

	"github.com/Abraxas-365/mailer/pkg/kernel"
)

// Service wires resolution, building, verification and delivery.
type Service struct {
	resolver *Resolver
	builder  *Builder
	verifier *Verifier
	sender   *Sender
}

func NewService(resolver *Resolver, builder *Builder) *Service {
	return &Service{
		resolver: resolver,
		builder:  builder,
		verifier: NewVerifier(builder),
		sender:   NewSender(),
	}
}

// SendOne validates, resolves, builds, verifies (with fallback) and sends.
func (s *Service) SendOne(ctx context.Context, req SendRequest) (*SendReceipt, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	res := s.resolver.Resolve(ctx, req.UserID)
	handle, err := s.builder.Build(res.Config)
	if err != nil {
		return nil, err
	}
	handle, err = s.verifier.VerifyWithFallback(ctx, handle, res)
	if err != nil {
		return nil, err
	}

	env := Envelope{
		From:    res.Sender(),
		To:      req.To.Addresses(),
		Cc:      req.Cc.Addresses(),
		Bcc:     req.Bcc.Addresses(),
		Subject: req.Subject,
		Text:    req.Text,
		HTML:    req.HTML,
	}
	return s.sender.Send(ctx, handle, env)
}

// SendBulk validates, resolves and builds, then sends to each recipient.
// The handle is not verified first; every recipient failure is reported in
// the result instead.
func (s *Service) SendBulk(ctx context.Context, req BulkRequest) (*DeliveryResult, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	res := s.resolver.Resolve(ctx, req.UserID)
	handle, err := s.builder.Build(res.Config)
	if err != nil {
		return nil, err
	}

	result := s.sender.SendBulk(ctx, handle, Envelope{
		From:    res.Sender(),
		Subject: req.Subject,
		Text:    req.Text,
		HTML:    req.HTML,
	}, req.Recipients)
	return &result, nil
}

// VerifyReport describes a successful connectivity check.
type VerifyReport struct {
	Host             string       `json:"host"`
	Port             int          `json:"port"`
	Mode             SecurityMode `json:"mode"`
	FromUserSettings bool         `json:"fromUserSettings"`
	UsedFallback     bool         `json:"usedFallback"`
}

// Verify runs resolution, build and verification without sending.
func (s *Service) Verify(ctx context.Context, userID kernel.UserID) (*VerifyReport, error) {
	res := s.resolver.Resolve(ctx, userID)
	handle, err := s.builder.Build(res.Config)
	if err != nil {
		return nil, err
	}
	verified, err := s.verifier.VerifyWithFallback(ctx, handle, res)
	if err != nil {
		return nil, err
	}
	return &VerifyReport{
		Host:             verified.Settings.Host,
		Port:             verified.Settings.Port,
		Mode:             verified.Settings.Mode,
		FromUserSettings: res.FromUserSettings,
		UsedFallback:     verified != handle,
	}, nil
}
