package backend

import (
	"context"
	"errors"
	"net/http"

	"github.com/Domenick1991/airbooking-web/internal/domain"
	"github.com/go-resty/resty/v2"
)

var errEmptyAuth = errors.New("backend: auth response carried no token")

func (c *Client) Register(ctx context.Context, reg domain.Registration) (*domain.AuthResult, error) {
	return c.authenticate(ctx, "/api/auth/register", reg)
}

func (c *Client) Login(ctx context.Context, creds domain.Credentials) (*domain.AuthResult, error) {
	return c.authenticate(ctx, "/api/auth/login", creds)
}

func (c *Client) authenticate(ctx context.Context, path string, body any) (*domain.AuthResult, error) {
	env, err := call[*domain.AuthResult](public(ctx), c, http.MethodPost, path, func(r *resty.Request) {
		r.SetBody(body)
	})
	if err != nil {
		return nil, err
	}
	if env.Data == nil || env.Data.Token == "" {
		return nil, errEmptyAuth
	}
	return env.Data, nil
}
