// Package gate decides, on every request, whether a page may render for the
// current session or the browser must be sent elsewhere.
package gate

import (
	"net/http"
	"strings"
	"time"

	"github.com/Domenick1991/airbooking-web/internal/session"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type Kind int

const (
	// KindPublic pages are for signed-out visitors only.
	KindPublic Kind = iota
	// KindProtected pages need a signed-in session.
	KindProtected
)

const (
	DefaultPublicRedirect = "/home"
	LoginPath             = "/login"
)

// Decide reports whether a page of the given kind renders. When it does not,
// target is where to go instead.
func Decide(kind Kind, authenticated bool, redirectTo string) (render bool, target string) {
	switch kind {
	case KindPublic:
		if authenticated {
			if redirectTo == "" {
				redirectTo = DefaultPublicRedirect
			}
			return false, redirectTo
		}
	case KindProtected:
		if !authenticated {
			return false, LoginPath
		}
	}
	return true, ""
}

// Public sends signed-in users to redirectTo ("/home" when empty).
func Public(redirectTo string) gin.HandlerFunc {
	return guard(KindPublic, redirectTo)
}

// Protected sends signed-out visitors to the login page.
func Protected() gin.HandlerFunc {
	return guard(KindProtected, "")
}

func guard(kind Kind, redirectTo string) gin.HandlerFunc {
	return func(c *gin.Context) {
		authenticated := false
		if a, ok := session.FromContext(c.Request.Context()); ok {
			authenticated = a.IsAuthenticated(c.Request.Context())
		}
		if render, target := Decide(kind, authenticated, redirectTo); !render {
			Redirect(c, target)
			c.Abort()
			return
		}
		c.Next()
	}
}

// Redirect answers GET and HEAD with 302 and everything else with 303 so the
// browser follows up with a GET.
func Redirect(c *gin.Context, target string) {
	code := http.StatusSeeOther
	if c.Request.Method == http.MethodGet || c.Request.Method == http.MethodHead {
		code = http.StatusFound
	}
	c.Redirect(code, target)
}

type CookieConfig struct {
	Name   string
	Secure bool
	TTL    time.Duration
}

const cookieConfigKey = "gate.cookie"

// Attach resolves the session cookie, issuing a fresh opaque id when it is
// missing or malformed, and puts the session accessor into the request context.
func Attach(m *session.Manager, cfg CookieConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := c.Cookie(cfg.Name)
		if err != nil || uuid.Validate(id) != nil {
			id = uuid.NewString()
		}
		c.Set(cookieConfigKey, cfg)
		setCookie(c, cfg, id)

		a := m.Accessor(id)
		c.Request = c.Request.WithContext(session.NewContext(c.Request.Context(), a))
		c.Next()
	}
}

// Reissue replaces the session cookie of the pending response with the
// accessor's current id. Call it after a login, which moves the session to a
// new id, and before anything is written.
func Reissue(c *gin.Context) {
	a := Accessor(c)
	v, ok := c.Get(cookieConfigKey)
	if a == nil || !ok {
		return
	}
	cfg := v.(CookieConfig)

	h := c.Writer.Header()
	prefix := cfg.Name + "="
	var kept []string
	for _, line := range h.Values("Set-Cookie") {
		if !strings.HasPrefix(line, prefix) {
			kept = append(kept, line)
		}
	}
	h.Del("Set-Cookie")
	for _, line := range kept {
		h.Add("Set-Cookie", line)
	}
	setCookie(c, cfg, a.ID())
}

func setCookie(c *gin.Context, cfg CookieConfig, id string) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(cfg.Name, id, int(cfg.TTL.Seconds()), "/", "", cfg.Secure, true)
}

// Accessor returns the session accessor Attach stored for this request.
func Accessor(c *gin.Context) *session.Accessor {
	a, _ := session.FromContext(c.Request.Context())
	return a
}
