package api

import (
	"net/http"

	"github.com/Domenick1991/airbooking-web/internal/gate"
	"github.com/Domenick1991/airbooking-web/internal/service/auth"
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"go.uber.org/zap"
)

type AuthHandler struct {
	renderer
	service auth.AuthUseCase
}

func NewAuthHandler(service auth.AuthUseCase, log *zap.Logger) *AuthHandler {
	return &AuthHandler{renderer: newRenderer(log), service: service}
}

// Register mounts the sign-in pages on public and logout on open.
func (h *AuthHandler) Register(public, open gin.IRoutes) {
	public.GET("/login", h.loginPage)
	public.POST("/login", h.login)
	public.GET("/register", h.registerPage)
	public.POST("/register", h.register)
	open.POST("/logout", h.logout)
}

func (h *AuthHandler) loginPage(c *gin.Context) {
	h.page(c, http.StatusOK, "login.html", gin.H{"Title": "Sign in", "Form": auth.LoginForm{}})
}

func (h *AuthHandler) login(c *gin.Context) {
	var form auth.LoginForm
	_ = c.ShouldBindWith(&form, binding.Form)

	if _, err := h.service.Login(c.Request.Context(), form); err != nil {
		form.Password = ""
		h.fail(c, err, "login.html", gin.H{"Title": "Sign in", "Form": form})
		return
	}
	gate.Reissue(c)
	gate.Redirect(c, gate.DefaultPublicRedirect)
}

func (h *AuthHandler) registerPage(c *gin.Context) {
	h.page(c, http.StatusOK, "register.html", gin.H{"Title": "Register", "Form": auth.RegisterForm{}})
}

func (h *AuthHandler) register(c *gin.Context) {
	var form auth.RegisterForm
	_ = c.ShouldBindWith(&form, binding.Form)

	if _, err := h.service.Register(c.Request.Context(), form); err != nil {
		form.Password, form.ConfirmPassword = "", ""
		h.fail(c, err, "register.html", gin.H{"Title": "Register", "Form": form})
		return
	}
	gate.Reissue(c)
	gate.Redirect(c, gate.DefaultPublicRedirect)
}

func (h *AuthHandler) logout(c *gin.Context) {
	if err := h.service.Logout(c.Request.Context()); err != nil {
		h.log.Error("logout failed", zap.Error(err))
	}
	gate.Redirect(c, gate.LoginPath)
}
