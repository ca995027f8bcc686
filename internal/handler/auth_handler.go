// Package handler provides HTTP handlers for API endpoints.
package handler

import (
	"net/http"

	"mun-chits/internal/services"
	"mun-chits/internal/transport/httpdto"
	"mun-chits/pkg/logger"

	"github.com/gin-gonic/gin"
)

// CookieName is the cookie carrying the access token for browser clients.
const CookieName = "jwt"

type AuthHandler struct {
	service      AuthService
	log          *logger.Logger
	secureCookie bool
}

func NewAuthHandler(service AuthService, log *logger.Logger, secureCookie bool) *AuthHandler {
	return &AuthHandler{service: service, log: log, secureCookie: secureCookie}
}

// Login issues a token in the body and as an http-only cookie.
func (h *AuthHandler) Login(c *gin.Context) {
	var req httpdto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid request")
		return
	}

	res, err := h.service.Login(c.Request.Context(), services.LoginInput{
		Username: req.Username,
		Password: req.Password,
	})
	if err != nil {
		writeError(c, h.log, err)
		return
	}

	c.SetSameSite(http.SameSiteStrictMode)
	c.SetCookie(CookieName, res.AccessToken, int(res.ExpiresIn), "/", "", h.secureCookie, true)
	c.JSON(http.StatusOK, httpdto.NewSuccessResponse(res))
}

func (h *AuthHandler) Logout(c *gin.Context) {
	c.SetSameSite(http.SameSiteStrictMode)
	c.SetCookie(CookieName, "", -1, "/", "", h.secureCookie, true)
	c.JSON(http.StatusOK, httpdto.NewMessageResponse[any]("Logged out", nil))
}

func (h *AuthHandler) Me(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}

	profile, err := h.service.Me(c.Request.Context(), actor)
	if err != nil {
		writeError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, httpdto.NewSuccessResponse(profile))
}
