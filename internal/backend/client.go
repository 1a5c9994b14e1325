// Package backend is the client for the flight booking REST API. Every call
// goes through one resty client whose hooks attach the session's bearer token
// and clear the session when the backend answers 401.
package backend

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/Domenick1991/airbooking-web/config"
	"github.com/Domenick1991/airbooking-web/internal/domain"
	"github.com/Domenick1991/airbooking-web/internal/session"
	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"
)

type Client struct {
	http *resty.Client
	log  *zap.Logger
}

func New(cfg config.BackendConfig, log *zap.Logger) *Client {
	if log == nil {
		log = zap.NewNop()
	}
	rc := resty.New().
		SetBaseURL(strings.TrimRight(cfg.BaseURL, "/")).
		SetRetryCount(0).
		SetHeader("Accept", "application/json").
		SetLogger(log.Sugar())
	if t := cfg.Timeout(); t > 0 {
		rc.SetTimeout(t)
	}

	c := &Client{http: rc, log: log}
	rc.OnBeforeRequest(c.attachToken)
	rc.OnAfterResponse(c.afterResponse)
	return c
}

type publicKey struct{}

// public marks ctx as belonging to an unauthenticated call (login, register).
func public(ctx context.Context) context.Context {
	return context.WithValue(ctx, publicKey{}, true)
}

func isPublic(ctx context.Context) bool {
	v, _ := ctx.Value(publicKey{}).(bool)
	return v
}

func (c *Client) attachToken(_ *resty.Client, r *resty.Request) error {
	ctx := r.Context()
	if isPublic(ctx) {
		return nil
	}
	a, ok := session.FromContext(ctx)
	if !ok {
		return ErrUnauthorized
	}
	token := a.Token(ctx)
	if token == "" {
		return ErrUnauthorized
	}
	r.SetAuthToken(token)
	return nil
}

// afterResponse is the single place where a 401 invalidates the session.
func (c *Client) afterResponse(_ *resty.Client, resp *resty.Response) error {
	ctx := resp.Request.Context()
	c.log.Debug("backend call",
		zap.String("method", resp.Request.Method),
		zap.String("url", resp.Request.URL),
		zap.Int("status", resp.StatusCode()),
		zap.Duration("latency", resp.Time()),
	)
	if resp.StatusCode() != http.StatusUnauthorized || isPublic(ctx) {
		return nil
	}
	a, ok := session.FromContext(ctx)
	if !ok {
		return nil
	}
	if err := a.Logout(ctx); err != nil {
		c.log.Error("clear session after 401", zap.String("session_id", a.ID()), zap.Error(err))
		return nil
	}
	c.log.Info("backend rejected session token, session cleared", zap.String("session_id", a.ID()))
	return nil
}

type envelope[T any] struct {
	Success    *bool              `json:"success"`
	Data       T                  `json:"data"`
	Pagination *domain.Pagination `json:"pagination"`
}

type errorBody struct {
	Success *bool           `json:"success"`
	Message string          `json:"message"`
	Error   string          `json:"error"`
	Details json.RawMessage `json:"details"`
}

// call executes one request and decodes the response envelope.
func call[T any](ctx context.Context, c *Client, method, path string, build func(*resty.Request)) (*envelope[T], error) {
	r := c.http.R().SetContext(ctx)
	if build != nil {
		build(r)
	}
	op := method + " " + path

	resp, err := r.Execute(method, path)
	if err != nil {
		if errors.Is(err, ErrUnauthorized) {
			return nil, ErrUnauthorized
		}
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		return nil, &NetworkError{Op: op, Err: err}
	}

	status := resp.StatusCode()
	if status == http.StatusUnauthorized && !isPublic(ctx) {
		return nil, ErrUnauthorized
	}
	if status >= http.StatusBadRequest {
		return nil, apiError(status, resp.Body())
	}

	var env envelope[T]
	if err := json.Unmarshal(resp.Body(), &env); err != nil {
		return nil, fmt.Errorf("decode %s: %w", op, err)
	}
	if env.Success != nil && !*env.Success {
		return nil, apiError(status, resp.Body())
	}
	return &env, nil
}

func apiError(status int, body []byte) *APIError {
	e := &APIError{Status: status}
	var eb errorBody
	if err := json.Unmarshal(body, &eb); err == nil {
		e.Message = eb.Message
		if e.Message == "" {
			e.Message = eb.Error
		}
		e.Details = detailsText(eb.Details)
	}
	if e.Message == "" {
		e.Message = http.StatusText(status)
	}
	return e
}

func detailsText(raw json.RawMessage) string {
	if len(raw) == 0 || string(raw) == "null" {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	return string(raw)
}
