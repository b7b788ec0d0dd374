package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/fundvault/fundvault/backend/go-services/internal/admins"
	"github.com/fundvault/fundvault/backend/go-services/internal/config"
	"github.com/fundvault/fundvault/backend/go-services/internal/sessions"
	"github.com/fundvault/fundvault/backend/go-services/internal/tokens"
	"github.com/fundvault/fundvault/backend/go-services/pkg/logger"
	"github.com/gin-gonic/gin"
)

// AuthHandler serves admin login, logout and status endpoints
type AuthHandler struct {
	cfg      *config.Config
	admins   *admins.Service
	sessions *sessions.Service
}

func NewAuthHandler(cfg *config.Config, adminSvc *admins.Service, sessionSvc *sessions.Service) *AuthHandler {
	return &AuthHandler{cfg: cfg, admins: adminSvc, sessions: sessionSvc}
}

// Register mounts the auth routes on the given router group
func (h *AuthHandler) Register(r gin.IRouter) {
	auth := r.Group("/auth")
	{
		auth.POST("/login", h.Login)
		auth.POST("/logout", h.Logout)
		auth.GET("/status", h.Status)
	}
}

type loginRequest struct {
	Name     string `json:"name" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// Login authenticates the admin, sets the session cookie and returns an
// access token usable as a Bearer credential.
func (h *AuthHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "name and password are required"})
		return
	}

	admin, err := h.admins.Authenticate(c.Request.Context(), req.Name, req.Password)
	if err != nil {
		if errors.Is(err, admins.ErrInvalidCredentials) {
			c.JSON(http.StatusUnauthorized, gin.H{"success": false, "error": "invalid name or password"})
			return
		}
		logger.Errorf("login failed for %q: %v", req.Name, err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "login failed"})
		return
	}

	token, err := h.sessions.Create(c.Request.Context(), admin.ID, admin.Name, h.cfg.Session.TTL)
	if err != nil {
		logger.Errorf("session create failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "login failed"})
		return
	}

	accessToken, err := tokens.GenerateAccessToken(h.cfg, admin, h.cfg.JWT.AccessTokenTTL)
	if err != nil {
		logger.Errorf("access token generation failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "login failed"})
		return
	}

	c.SetCookie(h.cfg.Session.CookieName, token, int(h.cfg.Session.TTL.Seconds()), "/", "", false, true)
	c.JSON(http.StatusOK, gin.H{
		"success":     true,
		"user":        gin.H{"id": admin.ID, "name": admin.Name},
		"accessToken": accessToken,
	})
}

// Logout deletes the server-side session, clears the cookie and blacklists
// the Bearer token when one was supplied.
func (h *AuthHandler) Logout(c *gin.Context) {
	if token, err := c.Cookie(h.cfg.Session.CookieName); err == nil && token != "" {
		if err := h.sessions.Delete(c.Request.Context(), token); err != nil {
			logger.Warnf("session delete failed: %v", err)
		}
	}
	if auth := c.GetHeader("Authorization"); strings.HasPrefix(auth, "Bearer ") {
		raw := strings.TrimPrefix(auth, "Bearer ")
		if err := sessions.BlacklistAccessToken(c.Request.Context(), raw, h.cfg.JWT.AccessTokenTTL); err != nil {
			logger.Warnf("access token blacklist failed: %v", err)
		}
	}
	c.SetCookie(h.cfg.Session.CookieName, "", -1, "/", "", false, true)
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// Status reports whether the caller holds a valid session or access token.
// It never returns 401: an unauthenticated caller simply gets user: null.
func (h *AuthHandler) Status(c *gin.Context) {
	if token, err := c.Cookie(h.cfg.Session.CookieName); err == nil && token != "" {
		sess, err := h.sessions.Validate(c.Request.Context(), token)
		if err == nil && sess != nil {
			c.JSON(http.StatusOK, gin.H{"success": true, "user": gin.H{"id": sess.UserID, "name": sess.Name}})
			return
		}
	}
	if auth := c.GetHeader("Authorization"); strings.HasPrefix(auth, "Bearer ") {
		raw := strings.TrimPrefix(auth, "Bearer ")
		if black, err := sessions.IsAccessTokenBlacklisted(c.Request.Context(), raw); err == nil && !black {
			if id, name, err := tokens.ParseAccessToken(h.cfg, raw); err == nil {
				c.JSON(http.StatusOK, gin.H{"success": true, "user": gin.H{"id": id, "name": name}})
				return
			}
		}
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "user": nil})
}
