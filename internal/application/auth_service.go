package application

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/campdir/campdir-api/internal/domain/entity"
	"github.com/campdir/campdir-api/internal/domain/repository"
	"github.com/campdir/campdir-api/pkg/apperr"
	"github.com/campdir/campdir-api/pkg/helpers"
	"github.com/campdir/campdir-api/pkg/mailer"
)

// AuthService handles registration, login, profile updates, and the
// password-reset flow. Reset mail goes out synchronously so a delivery
// failure can roll back the persisted token; the welcome mail is queued and
// best-effort.
type AuthService struct {
	Users  repository.UserRepository
	Mailer mailer.Mailer
	Pub    *helpers.RabbitPublisher
	Logger *logrus.Logger
}

func NewAuthService(users repository.UserRepository, m mailer.Mailer, pub *helpers.RabbitPublisher, logger *logrus.Logger) *AuthService {
	return &AuthService{Users: users, Mailer: m, Pub: pub, Logger: logger}
}

type RegisterInput struct {
	Name     string
	Email    string
	Password string
	Role     string
}

func (s *AuthService) Register(ctx context.Context, in RegisterInput) (*entity.User, error) {
	hash, err := helpers.HashPassword(in.Password)
	if err != nil {
		return nil, err
	}
	role := in.Role
	if role == "" {
		role = entity.RoleUser
	}
	u := &entity.User{Name: in.Name, Email: in.Email, Role: role, Password: hash}
	if err := s.Users.Create(ctx, u); err != nil {
		return nil, err
	}

	if s.Pub != nil {
		job := mailer.EmailJob{
			To:      u.Email,
			Subject: "Welcome to Campdir",
			Text:    fmt.Sprintf("Hi %s,\n\nYour account is ready. Browse bootcamps or publish your own at any time.", u.Name),
		}
		if err := s.Pub.PublishJSON(ctx, job); err != nil && s.Logger != nil {
			s.Logger.WithError(err).WithField("email", u.Email).Warn("queue welcome email failed")
		}
	}
	return u, nil
}

func (s *AuthService) Login(ctx context.Context, email, password string) (*entity.User, error) {
	u, err := s.Users.GetByEmail(ctx, email)
	if err != nil {
		return nil, apperr.Unauthorized("Invalid credentials")
	}
	if !helpers.VerifyPassword(password, u.Password) {
		return nil, apperr.Unauthorized("Invalid credentials")
	}
	return u, nil
}

type UpdateDetailsInput struct {
	Name  string
	Email string
}

func (s *AuthService) UpdateDetails(ctx context.Context, caller *entity.User, in UpdateDetailsInput) (*entity.User, error) {
	if in.Name != "" {
		caller.Name = in.Name
	}
	if in.Email != "" {
		caller.Email = in.Email
	}
	if err := s.Users.Update(ctx, caller); err != nil {
		return nil, err
	}
	return caller, nil
}

func (s *AuthService) UpdatePassword(ctx context.Context, caller *entity.User, current, next string) (*entity.User, error) {
	if !helpers.VerifyPassword(current, caller.Password) {
		return nil, apperr.Unauthorized("Password is incorrect")
	}
	hash, err := helpers.HashPassword(next)
	if err != nil {
		return nil, err
	}
	caller.Password = hash
	if err := s.Users.Update(ctx, caller); err != nil {
		return nil, err
	}
	return caller, nil
}

// ForgotPassword issues a reset token and emails the reset link. resetURL is
// the absolute endpoint prefix the plain token gets appended to. If the mail
// cannot be delivered the stored token fields are rolled back before the
// failure is surfaced.
func (s *AuthService) ForgotPassword(ctx context.Context, email, resetURL string) error {
	u, err := s.Users.GetByEmail(ctx, email)
	if err != nil {
		return apperr.New(http.StatusNotFound, "There is no user with that email")
	}

	plain, hashed, expire, err := helpers.NewResetToken()
	if err != nil {
		return err
	}
	u.ResetPasswordToken = hashed
	u.ResetPasswordExpire = &expire
	if err := s.Users.Update(ctx, u); err != nil {
		return err
	}

	text := fmt.Sprintf("You are receiving this email because you (or someone else) has requested the reset of a password. Please make a PUT request to:\n\n%s/%s", resetURL, plain)
	if err := s.Mailer.Send(ctx, u.Email, "Password reset token", text); err != nil {
		if s.Logger != nil {
			s.Logger.WithError(err).WithField("email", u.Email).Error("reset email delivery failed")
		}
		u.ResetPasswordToken = ""
		u.ResetPasswordExpire = nil
		if rbErr := s.Users.Update(ctx, u); rbErr != nil && s.Logger != nil {
			s.Logger.WithError(rbErr).WithField("email", u.Email).Error("reset token rollback failed")
		}
		return apperr.New(http.StatusInternalServerError, "Email could not be sent")
	}
	return nil
}

// ResetPassword resolves the plain token against the stored hash, swaps in
// the new password, and clears the reset fields.
func (s *AuthService) ResetPassword(ctx context.Context, plainToken, newPassword string) (*entity.User, error) {
	hashed := helpers.HashResetToken(plainToken)
	u, err := s.Users.GetByResetToken(ctx, hashed, time.Now())
	if err != nil {
		return nil, apperr.BadRequest("Invalid token")
	}
	hash, err := helpers.HashPassword(newPassword)
	if err != nil {
		return nil, err
	}
	u.Password = hash
	u.ResetPasswordToken = ""
	u.ResetPasswordExpire = nil
	if err := s.Users.Update(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}
