// Package auth signs browsers in and out against the backend and keeps the
// session in step with the result.
package auth

import (
	"context"
	"errors"
	"strings"

	"github.com/Domenick1991/airbooking-web/internal/domain"
	"github.com/Domenick1991/airbooking-web/internal/kafka"
	"github.com/Domenick1991/airbooking-web/internal/session"
	"github.com/Domenick1991/airbooking-web/internal/validate"
)

var ErrNoSession = errors.New("auth: request carries no session")

type AuthUseCase interface {
	Register(ctx context.Context, form RegisterForm) (*domain.User, error)
	Login(ctx context.Context, form LoginForm) (*domain.User, error)
	Logout(ctx context.Context) error
}

type AuthAPI interface {
	Register(ctx context.Context, reg domain.Registration) (*domain.AuthResult, error)
	Login(ctx context.Context, creds domain.Credentials) (*domain.AuthResult, error)
}

type ActivityRecorder interface {
	Record(ctx context.Context, ev kafka.ActivityEvent)
}

type RegisterForm struct {
	FirstName       string `form:"firstName" json:"firstName" validate:"required"`
	LastName        string `form:"lastName" json:"lastName" validate:"required"`
	Email           string `form:"email" json:"email" validate:"required,email"`
	Password        string `form:"password" json:"password" validate:"required,min=6"`
	ConfirmPassword string `form:"confirmPassword" json:"confirmPassword" validate:"required,eqfield=Password"`
}

type LoginForm struct {
	Email    string `form:"email" json:"email" validate:"required"`
	Password string `form:"password" json:"password" validate:"required"`
}

type AuthService struct {
	api       AuthAPI
	validator *validate.Validator
	activity  ActivityRecorder
}

func NewAuthService(api AuthAPI, v *validate.Validator, activity ActivityRecorder) *AuthService {
	return &AuthService{api: api, validator: v, activity: activity}
}

// Register validates the form, creates the account and signs the session in.
func (s *AuthService) Register(ctx context.Context, form RegisterForm) (*domain.User, error) {
	a, ok := session.FromContext(ctx)
	if !ok {
		return nil, ErrNoSession
	}
	form.FirstName = strings.TrimSpace(form.FirstName)
	form.LastName = strings.TrimSpace(form.LastName)
	form.Email = strings.TrimSpace(form.Email)
	if err := s.validator.Struct(form); err != nil {
		return nil, registerMessages(err)
	}

	res, err := s.api.Register(ctx, domain.Registration{
		Email:     form.Email,
		Password:  form.Password,
		FirstName: form.FirstName,
		LastName:  form.LastName,
	})
	if err != nil {
		return nil, err
	}
	return s.signIn(ctx, a, res, kafka.EventRegister)
}

func (s *AuthService) Login(ctx context.Context, form LoginForm) (*domain.User, error) {
	a, ok := session.FromContext(ctx)
	if !ok {
		return nil, ErrNoSession
	}
	form.Email = strings.TrimSpace(form.Email)
	if err := s.validator.Struct(form); err != nil {
		return nil, err
	}

	res, err := s.api.Login(ctx, domain.Credentials{Email: form.Email, Password: form.Password})
	if err != nil {
		return nil, err
	}
	return s.signIn(ctx, a, res, kafka.EventLogin)
}

func (s *AuthService) signIn(ctx context.Context, a *session.Accessor, res *domain.AuthResult, kind string) (*domain.User, error) {
	user := res.User
	if err := a.Login(ctx, res.Token, &user); err != nil {
		return nil, err
	}
	s.record(ctx, kind, a.ID(), &user)
	return &user, nil
}

// Logout clears the session. Logging out twice is not an error. The logout
// event is published by the session listener, which also sees logouts forced
// by a rejected token.
func (s *AuthService) Logout(ctx context.Context) error {
	a, ok := session.FromContext(ctx)
	if !ok {
		return nil
	}
	return a.Logout(ctx)
}

func (s *AuthService) record(ctx context.Context, kind, sid string, u *domain.User) {
	if s.activity == nil {
		return
	}
	s.activity.Record(ctx, kafka.ActivityEvent{Type: kind, SessionID: sid, UserID: u.ID, Email: u.Email})
}

// registerMessages swaps the generic confirm-password texts for friendlier ones.
func registerMessages(err error) error {
	errs, ok := validate.AsErrors(err)
	if !ok {
		return err
	}
	if msg, ok := errs["confirmPassword"]; ok {
		if strings.HasSuffix(msg, "is required") {
			errs["confirmPassword"] = "Please confirm your password"
		} else {
			errs["confirmPassword"] = "Passwords do not match"
		}
	}
	return errs
}

var _ AuthUseCase = (*AuthService)(nil)
