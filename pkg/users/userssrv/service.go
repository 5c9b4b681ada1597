package userssrv

import (
	"context"
	"crypto/subtle"
	"time"

	"github.com/Abraxas-365/mailer/pkg/errx"
	"github.com/Abraxas-365/mailer/pkg/kernel"
	"github.com/Abraxas-365/mailer/pkg/logx"
	"github.com/Abraxas-365/mailer/pkg/users"
	"github.com/Abraxas-365/mailer/pkg/validatex"
	"github.com/google/uuid"
)

type UserService struct {
	repo users.Repository
	now  func() time.Time
}

func NewUserService(repo users.Repository) *UserService {
	return &UserService{repo: repo, now: time.Now}
}

func (s *UserService) List(ctx context.Context) ([]users.Public, error) {
	all, err := s.repo.List(ctx)
	if err != nil {
		return nil, users.ErrStoreFailed(err)
	}
	out := make([]users.Public, 0, len(all))
	for _, u := range all {
		out = append(out, u.Public())
	}
	return out, nil
}

func (s *UserService) Get(ctx context.Context, id kernel.UserID) (*users.Public, error) {
	u, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, users.ErrStoreFailed(err)
	}
	if u == nil {
		return nil, users.ErrNotFound()
	}
	pub := u.Public()
	return &pub, nil
}

func (s *UserService) Create(ctx context.Context, req users.CreateRequest) (*users.Public, error) {
	if err := validatex.StructWithMessage(req, users.CodeInvalid.Message); err != nil {
		return nil, err
	}

	existing, err := s.repo.FindByUsername(ctx, req.Username)
	if err != nil {
		return nil, users.ErrStoreFailed(err)
	}
	if existing != nil {
		return nil, users.ErrUsernameTaken()
	}

	now := s.now().UTC()
	u := users.User{
		ID:        kernel.NewUserID(uuid.NewString()),
		Username:  req.Username,
		Password:  req.Password,
		Email:     req.Email,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.repo.Create(ctx, u); err != nil {
		return nil, users.ErrStoreFailed(err)
	}

	logx.WithFields(logx.Fields{
		"user_id":  u.ID.String(),
		"username": u.Username,
	}).Info("User created")
	pub := u.Public()
	return &pub, nil
}

func (s *UserService) Update(ctx context.Context, id kernel.UserID, req users.UpdateRequest) (*users.Public, error) {
	if req.Username != "" {
		other, err := s.repo.FindByUsername(ctx, req.Username)
		if err != nil {
			return nil, users.ErrStoreFailed(err)
		}
		if other != nil && other.ID != id {
			return nil, users.ErrUsernameTaken()
		}
	}

	updated, err := s.repo.Update(ctx, id, func(u *users.User) error {
		if req.Username != "" {
			u.Username = req.Username
		}
		if req.Password != "" {
			u.Password = req.Password
		}
		if req.Email != nil {
			u.Email = *req.Email
		}
		u.UpdatedAt = s.now().UTC()
		return nil
	})
	if err != nil {
		return nil, users.ErrStoreFailed(err)
	}
	if updated == nil {
		return nil, users.ErrNotFound()
	}
	pub := updated.Public()
	return &pub, nil
}

func (s *UserService) Delete(ctx context.Context, id kernel.UserID) error {
	removed, err := s.repo.Delete(ctx, id)
	if err != nil {
		return users.ErrStoreFailed(err)
	}
	if !removed {
		return users.ErrNotFound()
	}
	logx.WithField("user_id", id.String()).Info("User deleted")
	return nil
}

// CheckCredentials returns the user whose username and password match, or
// nil when none does.
func (s *UserService) CheckCredentials(ctx context.Context, username, password string) (*users.Public, error) {
	u, err := s.repo.FindByUsername(ctx, username)
	if err != nil {
		return nil, errx.Wrap(err, "failed to read users", errx.TypeInternal)
	}
	if u == nil || subtle.ConstantTimeCompare([]byte(u.Password), []byte(password)) != 1 {
		return nil, nil
	}
	pub := u.Public()
	return &pub, nil
}
