package templatessrv

import (
	"context"
	"strings"
	"time"

	"github.com/Abraxas-365/mailer/pkg/errx"
	"github.com/Abraxas-365/mailer/pkg/kernel"
	"github.com/Abraxas-365/mailer/pkg/logx"
	"github.com/Abraxas-365/mailer/pkg/templates"
	"github.com/google/uuid"
)

type TemplateService struct {
	repo templates.Repository
	now  func() time.Time
}

func NewTemplateService(repo templates.Repository) *TemplateService {
	return &TemplateService{repo: repo, now: time.Now}
}

func (s *TemplateService) List(ctx context.Context, userID kernel.UserID) ([]templates.Template, error) {
	if userID.IsEmpty() {
		return nil, templates.ErrUserIDRequired()
	}
	list, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, templates.ErrStoreFailed(err)
	}
	return list, nil
}

// Get returns the template when userID owns it or userID is empty.
func (s *TemplateService) Get(ctx context.Context, id kernel.TemplateID, userID kernel.UserID) (*templates.Template, error) {
	t, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, templates.ErrStoreFailed(err)
	}
	if t == nil {
		return nil, templates.ErrNotFound()
	}
	if !t.OwnedBy(userID) {
		return nil, templates.ErrAccessDenied()
	}
	return t, nil
}

func (s *TemplateService) Create(ctx context.Context, req templates.CreateRequest) (*templates.Template, error) {
	if strings.TrimSpace(req.Name) == "" || strings.TrimSpace(req.Subject) == "" {
		return nil, templates.ErrNameRequired()
	}
	if req.UserID.IsEmpty() {
		return nil, templates.ErrUserIDRequired()
	}
	if req.Text == "" && req.HTML == "" {
		return nil, templates.ErrContentRequired()
	}

	now := s.now().UTC()
	t := templates.Template{
		ID:        kernel.NewTemplateID(uuid.NewString()),
		UserID:    req.UserID,
		Name:      req.Name,
		Subject:   req.Subject,
		Text:      req.Text,
		HTML:      req.HTML,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.repo.Create(ctx, t); err != nil {
		return nil, templates.ErrStoreFailed(err)
	}

	logx.WithFields(logx.Fields{
		"template_id": t.ID.String(),
		"user_id":     t.UserID.String(),
	}).Info("Template created")
	return &t, nil
}

func (s *TemplateService) Update(ctx context.Context, id kernel.TemplateID, req templates.UpdateRequest) (*templates.Template, error) {
	updated, err := s.repo.Update(ctx, id, func(t *templates.Template) error {
		if !t.OwnedBy(req.UserID) {
			return templates.ErrAccessDenied()
		}
		if req.Name != "" {
			t.Name = req.Name
		}
		if req.Subject != "" {
			t.Subject = req.Subject
		}
		if req.Text != nil {
			t.Text = *req.Text
		}
		if req.HTML != nil {
			t.HTML = *req.HTML
		}
		t.UpdatedAt = s.now().UTC()
		return nil
	})
	if err != nil {
		if errx.Is(err, templates.ErrAccessDenied()) {
			return nil, err
		}
		return nil, templates.ErrStoreFailed(err)
	}
	if updated == nil {
		return nil, templates.ErrNotFound()
	}
	return updated, nil
}

func (s *TemplateService) Delete(ctx context.Context, id kernel.TemplateID, userID kernel.UserID) error {
	if _, err := s.Get(ctx, id, userID); err != nil {
		return err
	}
	if _, err := s.repo.Delete(ctx, id); err != nil {
		return templates.ErrStoreFailed(err)
	}
	logx.WithField("template_id", id.String()).Info("Template deleted")
	return nil
}
