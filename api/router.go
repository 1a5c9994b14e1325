// Package api serves the site's pages over gin.
package api

import (
	"fmt"

	"github.com/Domenick1991/airbooking-web/internal/gate"
	"github.com/Domenick1991/airbooking-web/internal/middleware"
	"github.com/Domenick1991/airbooking-web/internal/service/auth"
	"github.com/Domenick1991/airbooking-web/internal/service/booking"
	"github.com/Domenick1991/airbooking-web/internal/service/flights"
	"github.com/Domenick1991/airbooking-web/internal/service/results"
	"github.com/Domenick1991/airbooking-web/internal/session"
	"github.com/Domenick1991/airbooking-web/internal/validate"
	"github.com/Domenick1991/airbooking-web/web"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type Deps struct {
	Log       *zap.Logger
	Sessions  *session.Manager
	Cookie    gate.CookieConfig
	Flights   flights.FlightUseCase
	Bookings  booking.BookingUseCase
	Auth      auth.AuthUseCase
	Formatter *results.Formatter
	Validator *validate.Validator
}

// NewRouter wires middleware, gates and handlers. Unknown paths go to "/".
func NewRouter(d Deps) (*gin.Engine, error) {
	if d.Log == nil {
		d.Log = zap.NewNop()
	}
	tmpl, err := web.Templates(FuncMap(d.Formatter))
	if err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}

	r := gin.New()
	r.SetHTMLTemplate(tmpl)
	r.Use(
		middleware.RequestID(),
		middleware.Logger(d.Log),
		middleware.Recovery(d.Log),
		gate.Attach(d.Sessions, d.Cookie),
	)

	public := r.Group("/", gate.Public(gate.DefaultPublicRedirect))
	protected := r.Group("/", gate.Protected())

	NewPageHandler(d.Log).Register(public)
	NewAuthHandler(d.Auth, d.Log).Register(public, r)
	NewFlightHandler(d.Flights, d.Formatter, d.Validator, d.Log).Register(protected)
	NewBookingHandler(d.Bookings, d.Log).Register(protected)

	r.NoRoute(func(c *gin.Context) {
		gate.Redirect(c, "/")
	})
	return r, nil
}
