package auth

import (
	"context"
	"testing"

	"github.com/Domenick1991/airbooking-web/internal/backend"
	"github.com/Domenick1991/airbooking-web/internal/domain"
	"github.com/Domenick1991/airbooking-web/internal/kafka"
	"github.com/Domenick1991/airbooking-web/internal/session"
	"github.com/Domenick1991/airbooking-web/internal/validate"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockAuthAPI struct {
	mock.Mock
}

func (m *MockAuthAPI) Register(ctx context.Context, reg domain.Registration) (*domain.AuthResult, error) {
	args := m.Called(ctx, reg)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.AuthResult), args.Error(1)
}

func (m *MockAuthAPI) Login(ctx context.Context, creds domain.Credentials) (*domain.AuthResult, error) {
	args := m.Called(ctx, creds)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.AuthResult), args.Error(1)
}

type MockActivity struct {
	mock.Mock
}

func (m *MockActivity) Record(ctx context.Context, ev kafka.ActivityEvent) {
	m.Called(ctx, ev)
}

func newSession() (context.Context, *session.Accessor) {
	a := session.NewManager(session.NewMemoryStore(0), nil).Accessor("s1")
	return session.NewContext(context.Background(), a), a
}

func validRegistration() RegisterForm {
	return RegisterForm{FirstName: "Asha", LastName: "Rao", Email: "asha@example.com", Password: "secret1", ConfirmPassword: "secret1"}
}

func TestAuthService_RegisterSignsIn(t *testing.T) {
	api := &MockAuthAPI{}
	activity := &MockActivity{}
	svc := NewAuthService(api, validate.New(), activity)
	ctx, a := newSession()

	api.On("Register", ctx, domain.Registration{Email: "asha@example.com", Password: "secret1", FirstName: "Asha", LastName: "Rao"}).
		Return(&domain.AuthResult{Token: "tok", User: domain.User{ID: "u1", FirstName: "Asha", Email: "asha@example.com"}}, nil)
	activity.On("Record", ctx, mock.MatchedBy(func(ev kafka.ActivityEvent) bool {
		return ev == kafka.ActivityEvent{Type: kafka.EventRegister, SessionID: a.ID(), UserID: "u1", Email: "asha@example.com"}
	})).Once()

	u, err := svc.Register(ctx, validRegistration())
	require.NoError(t, err)
	assert.Equal(t, "u1", u.ID)
	assert.NotEqual(t, "s1", a.ID(), "sign-in moves the session to a new id")
	assert.True(t, a.IsAuthenticated(ctx))
	assert.Equal(t, "tok", a.Token(ctx))
	activity.AssertExpectations(t)
}

func TestAuthService_RegisterValidation(t *testing.T) {
	api := &MockAuthAPI{}
	svc := NewAuthService(api, validate.New(), nil)
	ctx, a := newSession()

	form := RegisterForm{Email: "not-an-email", Password: "123", ConfirmPassword: "456"}
	_, err := svc.Register(ctx, form)
	errs, ok := validate.AsErrors(err)
	require.True(t, ok)
	assert.Equal(t, "First name is required", errs["firstName"])
	assert.Equal(t, "Last name is required", errs["lastName"])
	assert.Equal(t, "Invalid email format", errs["email"])
	assert.Equal(t, "Password must be at least 6 characters", errs["password"])
	assert.Equal(t, "Passwords do not match", errs["confirmPassword"])

	form = validRegistration()
	form.ConfirmPassword = ""
	_, err = svc.Register(ctx, form)
	errs, _ = validate.AsErrors(err)
	assert.Equal(t, "Please confirm your password", errs["confirmPassword"])

	api.AssertNotCalled(t, "Register", mock.Anything, mock.Anything)
	assert.False(t, a.IsAuthenticated(ctx))
}

func TestAuthService_LoginRejected(t *testing.T) {
	api := &MockAuthAPI{}
	svc := NewAuthService(api, validate.New(), nil)
	ctx, a := newSession()
	rejected := &backend.APIError{Status: 401, Message: "Invalid email or password"}

	api.On("Login", ctx, domain.Credentials{Email: "asha@example.com", Password: "nope"}).Return(nil, rejected)

	_, err := svc.Login(ctx, LoginForm{Email: " asha@example.com ", Password: "nope"})
	assert.ErrorIs(t, err, rejected)
	assert.False(t, a.IsAuthenticated(ctx))
}

func TestAuthService_LoginRequiresFields(t *testing.T) {
	svc := NewAuthService(&MockAuthAPI{}, validate.New(), nil)
	ctx, _ := newSession()

	_, err := svc.Login(ctx, LoginForm{})
	errs, ok := validate.AsErrors(err)
	require.True(t, ok)
	assert.Equal(t, "Email is required", errs["email"])
	assert.Equal(t, "Password is required", errs["password"])
}

func TestAuthService_LoginAndLogout(t *testing.T) {
	api := &MockAuthAPI{}
	activity := &MockActivity{}
	svc := NewAuthService(api, validate.New(), activity)
	ctx, a := newSession()

	api.On("Login", ctx, mock.Anything).Return(&domain.AuthResult{Token: "tok", User: domain.User{ID: "u1"}}, nil)
	activity.On("Record", ctx, mock.MatchedBy(func(ev kafka.ActivityEvent) bool { return ev.Type == kafka.EventLogin })).Once()

	_, err := svc.Login(ctx, LoginForm{Email: "a@b.co", Password: "pw"})
	require.NoError(t, err)
	require.True(t, a.IsAuthenticated(ctx))

	require.NoError(t, svc.Logout(ctx))
	assert.False(t, a.IsAuthenticated(ctx))
	assert.Nil(t, a.User(ctx))

	require.NoError(t, svc.Logout(ctx))
	activity.AssertExpectations(t)
	activity.AssertNumberOfCalls(t, "Record", 1)
}

func TestAuthService_NoSession(t *testing.T) {
	svc := NewAuthService(&MockAuthAPI{}, validate.New(), nil)
	_, err := svc.Login(context.Background(), LoginForm{Email: "a", Password: "b"})
	assert.ErrorIs(t, err, ErrNoSession)
	assert.NoError(t, svc.Logout(context.Background()))
}
