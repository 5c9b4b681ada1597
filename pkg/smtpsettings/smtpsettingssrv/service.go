package smtpsettingssrv

import (
	"context"
	"strings"
	"time"

	"github.com/Abraxas-365/mailer/pkg/kernel"
	"github.com/Abraxas-365/mailer/pkg/logx"
	"github.com/Abraxas-365/mailer/pkg/mailx"
	"github.com/Abraxas-365/mailer/pkg/ptrx"
	"github.com/Abraxas-365/mailer/pkg/smtpsettings"
	"github.com/Abraxas-365/mailer/pkg/validatex"
)

type SettingsService struct {
	repo smtpsettings.Repository
	now  func() time.Time
}

func NewSettingsService(repo smtpsettings.Repository) *SettingsService {
	return &SettingsService{repo: repo, now: time.Now}
}

// Get returns the user's settings without the password, or nil when none exist.
func (s *SettingsService) Get(ctx context.Context, userID kernel.UserID) (*smtpsettings.Public, error) {
	if strings.TrimSpace(userID.String()) == "" {
		return nil, smtpsettings.ErrUserIDRequired()
	}
	rec, err := s.repo.FindByUser(ctx, userID)
	if err != nil {
		return nil, smtpsettings.ErrStoreFailed(err)
	}
	if rec == nil {
		return nil, nil
	}
	pub := rec.Public()
	return &pub, nil
}

// Save creates or replaces the user's settings. Secure defaults to true
// when omitted.
func (s *SettingsService) Save(ctx context.Context, req smtpsettings.SaveRequest) (smtpsettings.Public, bool, error) {
	if err := validatex.StructWithMessage(req, smtpsettings.CodeInvalid.Message); err != nil {
		return smtpsettings.Public{}, false, err
	}

	now := s.now().UTC()
	rec := smtpsettings.SettingsRecord{
		UserID:    req.UserID,
		Host:      strings.TrimSpace(req.Host),
		Port:      req.Port,
		User:      req.User,
		Password:  req.Password,
		Secure:    ptrx.Bool(ptrx.ValueOr(req.Secure, true)),
		CreatedAt: now,
		UpdatedAt: now,
	}

	saved, created, err := s.repo.Upsert(ctx, rec)
	if err != nil {
		return smtpsettings.Public{}, false, smtpsettings.ErrStoreFailed(err)
	}

	logx.WithFields(logx.Fields{
		"user_id": saved.UserID.String(),
		"host":    saved.Host,
		"port":    int(saved.Port),
		"created": created,
	}).Info("SMTP settings saved")
	return saved.Public(), created, nil
}

func (s *SettingsService) Delete(ctx context.Context, userID kernel.UserID) error {
	removed, err := s.repo.Delete(ctx, userID)
	if err != nil {
		return smtpsettings.ErrStoreFailed(err)
	}
	if !removed {
		return smtpsettings.ErrNotFound()
	}
	logx.WithField("user_id", userID.String()).Info("SMTP settings deleted")
	return nil
}

// FindMailSettings feeds the mail resolver.
func (s *SettingsService) FindMailSettings(ctx context.Context, userID kernel.UserID) (*mailx.UserSettings, error) {
	rec, err := s.repo.FindByUser(ctx, userID)
	if err != nil || rec == nil {
		return nil, err
	}
	return &mailx.UserSettings{
		Host:     rec.Host,
		Port:     int(rec.Port),
		Username: rec.User,
		Password: rec.Password,
		Secure:   rec.Secure,
	}, nil
}
