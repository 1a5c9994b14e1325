package api

import (
	"context"
	"errors"
	"fmt"
	"html/template"
	"net/http"
	"strings"
	"time"

	"github.com/Domenick1991/airbooking-web/internal/backend"
	"github.com/Domenick1991/airbooking-web/internal/gate"
	"github.com/Domenick1991/airbooking-web/internal/middleware"
	"github.com/Domenick1991/airbooking-web/internal/service/flights"
	"github.com/Domenick1991/airbooking-web/internal/service/results"
	"github.com/Domenick1991/airbooking-web/internal/validate"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// User-facing messages.
const (
	MsgNetwork    = "Network error. Please try again."
	MsgSuperseded = "A newer request replaced this one."
	MsgUnexpected = "Something went wrong. Please try again."
)

// FuncMap is what templates can call. Dates, times and prices go through fm.
func FuncMap(fm *results.Formatter) template.FuncMap {
	title := cases.Title(language.English)
	return template.FuncMap{
		"price":    fm.Price,
		"time":     fm.Time,
		"date":     fm.Date,
		"longDate": fm.LongDate,
		"duration": fm.Duration,
		"add":      func(a, b int) int { return a + b },
		"title":    func(s string) string { return title.String(strings.ToLower(s)) },
		"fieldError": func(errs any, field string) string {
			e, _ := errs.(validate.Errors)
			return e[field]
		},
		"passengerKey": passengerKey,
	}
}

// passengerKey names passenger i, or one of its fields, in validation errors.
func passengerKey(i int, field string) string {
	if field == "" {
		return fmt.Sprintf("passengers[%d]", i)
	}
	return fmt.Sprintf("passengers[%d].%s", i, field)
}

// renderer is embedded in every page handler.
type renderer struct {
	log *zap.Logger
	now func() time.Time
}

func newRenderer(log *zap.Logger) renderer {
	if log == nil {
		log = zap.NewNop()
	}
	return renderer{log: log, now: time.Now}
}

// page renders a template, adding the signed-in user for the header.
func (r renderer) page(c *gin.Context, status int, name string, data gin.H) {
	if data == nil {
		data = gin.H{}
	}
	if a := gate.Accessor(c); a != nil {
		if u := a.User(c.Request.Context()); u != nil {
			data["User"] = u
		}
	}
	c.HTML(status, name, data)
}

// fail is the one place errors become responses. A rejected token sends the
// browser to the login page; any other error re-renders name with a message.
func (r renderer) fail(c *gin.Context, err error, name string, data gin.H) {
	if data == nil {
		data = gin.H{}
	}
	ctx := c.Request.Context()
	log := r.log.With(zap.String("request_id", middleware.GetRequestID(ctx)), zap.Error(err))

	var apiErr *backend.APIError
	var status int
	switch {
	case errors.Is(err, backend.ErrUnauthorized):
		log.Info("session rejected, sending to login")
		gate.Redirect(c, gate.LoginPath)
		return
	case errors.Is(err, flights.ErrSuperseded):
		status, data["Error"] = http.StatusConflict, MsgSuperseded
	case errors.Is(err, context.Canceled) && ctx.Err() != nil:
		log.Debug("client went away")
		c.Abort()
		return
	case backend.IsNetwork(err):
		log.Warn("backend unreachable")
		status, data["Error"] = http.StatusBadGateway, MsgNetwork
	case errors.As(err, &apiErr):
		status, data["Error"] = apiStatus(apiErr), apiMessage(apiErr)
	default:
		if errs, ok := validate.AsErrors(err); ok {
			data["Errors"] = errs
			status = http.StatusUnprocessableEntity
			break
		}
		log.Error("request failed")
		status, data["Error"] = http.StatusInternalServerError, MsgUnexpected
	}
	_ = c.Error(err)
	r.page(c, status, name, data)
}

func apiStatus(e *backend.APIError) int {
	if e.Status >= http.StatusBadRequest {
		return e.Status
	}
	return http.StatusBadGateway
}

func apiMessage(e *backend.APIError) string {
	if e.Details != "" {
		return e.Message + "\n" + e.Details
	}
	return e.Message
}
