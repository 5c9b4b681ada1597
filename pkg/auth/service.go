package auth

import (
	"context"

	"github.com/Abraxas-365/mailer/pkg/logx"
	"github.com/Abraxas-365/mailer/pkg/validatex"
)

type AuthService struct {
	issuer TokenIssuer
	admin  AdminCredentials
	users  UserChecker
}

func NewAuthService(issuer TokenIssuer, admin AdminCredentials, users UserChecker) *AuthService {
	return &AuthService{issuer: issuer, admin: admin, users: users}
}

// Login checks the admin account first, then stored users.
func (s *AuthService) Login(ctx context.Context, req LoginRequest) (*LoginResult, error) {
	if err := validatex.StructWithMessage(req, CodeMissingCredentials.Message); err != nil {
		return nil, err
	}

	if s.admin.matches(req.Username, req.Password) {
		token, err := s.issuer.Issue(ctx, req.Username, nil)
		if err != nil {
			return nil, ErrRegistry.NewWithCause(CodeLoginFailed, err)
		}
		logx.WithField("username", req.Username).Info("Admin logged in")
		return &LoginResult{Token: token, IsAdmin: true}, nil
	}

	if s.users == nil {
		return nil, ErrInvalidCredentials()
	}
	u, err := s.users.CheckCredentials(ctx, req.Username, req.Password)
	if err != nil {
		return nil, ErrRegistry.NewWithCause(CodeLoginFailed, err).WithDetail("details", err.Error())
	}
	if u == nil {
		logx.WithField("username", req.Username).Warn("Rejected login")
		return nil, ErrInvalidCredentials()
	}

	token, err := s.issuer.Issue(ctx, u.Username, &u.ID)
	if err != nil {
		return nil, ErrRegistry.NewWithCause(CodeLoginFailed, err)
	}
	userID := u.ID
	logx.WithField("user_id", userID.String()).Info("User logged in")
	return &LoginResult{Token: token, UserID: &userID}, nil
}
