package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/GTDGit/duckwolf_api/internal/middleware"
	"github.com/GTDGit/duckwolf_api/internal/service"
	"github.com/GTDGit/duckwolf_api/internal/utils"
)

type AuthHandler struct {
	authService *service.AdminAuthService
	limiter     *middleware.FailureRateLimiter
}

func NewAuthHandler(authService *service.AdminAuthService, limiter *middleware.FailureRateLimiter) *AuthHandler {
	return &AuthHandler{authService: authService, limiter: limiter}
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req struct {
		Email    string `json:"email" binding:"required,email"`
		Password string `json:"password" binding:"required"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BindError(c, err)
		return
	}

	ip := c.ClientIP()
	if h.limiter.Blocked(ip) {
		utils.Error(c, http.StatusTooManyRequests, utils.CodeTooManyRequests, "Too many failed login attempts")
		return
	}

	res, err := h.authService.Login(req.Email, req.Password)
	if err != nil {
		h.limiter.Allow(ip)
		utils.Error(c, http.StatusUnauthorized, "INVALID_CREDENTIALS", "Invalid email or password")
		return
	}

	utils.Success(c, http.StatusOK, "Login successful", res)
}
