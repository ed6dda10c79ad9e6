package handlers

import (
	"errors"
	"net/http"

	"github.com/brokeradda/adda-admin/internal/apierror"
	"github.com/brokeradda/adda-admin/internal/logger"
	"github.com/brokeradda/adda-admin/internal/models"
	"github.com/brokeradda/adda-admin/internal/service"
	"github.com/brokeradda/adda-admin/internal/session"
	"github.com/brokeradda/adda-admin/pkg/adda"
	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	auth   *service.Auth
	secure bool
}

// NewAuthHandler creates a new auth handler. secure marks the session
// cookie Secure (production behind TLS).
func NewAuthHandler(auth *service.Auth, secure bool) *AuthHandler {
	return &AuthHandler{auth: auth, secure: secure}
}

// Login handles POST /api/v1/auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var in models.LoginInput
	if !bindJSON(c, &in) {
		return
	}

	errs, err := h.auth.Login(c.Request.Context(), in)
	if writeFieldErrors(c, errs) {
		return
	}
	if err != nil {
		requestID := apierror.GetRequestID(c)
		status := adda.StatusCode(err)
		switch {
		case status == http.StatusUnauthorized || status == http.StatusBadRequest:
			p := apierror.NewUnauthorizedError(requestID)
			p.UserMessage = "Invalid email or password"
			apierror.WriteProblem(c, p)
		case errors.Is(err, session.ErrNoTokenInResponse):
			logger.Ctx(c.Request.Context()).Error("login response carried no token")
			apierror.WriteProblem(c, apierror.NewUpstreamError(requestID, "Login failed. Please try again."))
		default:
			apierror.WriteClientError(c, err, "admin", apierror.OpItem)
		}
		return
	}

	sess := h.auth.Session()
	http.SetCookie(c.Writer, sess.Cookie(h.secure))
	c.JSON(http.StatusOK, gin.H{"logged_in": true, "token": sess.Token()})
}

// Logout handles POST /api/v1/auth/logout
func (h *AuthHandler) Logout(c *gin.Context) {
	h.auth.Logout(c.Request.Context())
	http.SetCookie(c.Writer, h.auth.Session().ClearCookie(h.secure))
	c.JSON(http.StatusOK, gin.H{"message": "logged out successfully"})
}

// Status handles GET /api/v1/auth/session
func (h *AuthHandler) Status(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"logged_in": h.auth.Session().LoggedIn()})
}
