package handler

import (
	"errors"

	"anoa.com/sccams/internal/middleware"
	"anoa.com/sccams/internal/modules/auth/dto"
	auth "anoa.com/sccams/internal/modules/auth/service"
	"anoa.com/sccams/pkg/apperror"
	"anoa.com/sccams/pkg/response"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type AuthHandler struct {
	authService auth.AuthService
	logger      *zap.Logger
}

func NewAuthHandler(authService auth.AuthService, logger *zap.Logger) *AuthHandler {
	return &AuthHandler{authService: authService, logger: logger}
}

func (h *AuthHandler) AdminLogin(c *gin.Context) {
	var input dto.LoginInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Fail(c, response.Legacy, h.logger, apperror.ErrMissingFields)
		return
	}

	res, err := h.authService.AdminLogin(c.Request.Context(), input)
	if err != nil {
		response.Fail(c, response.Legacy, h.logger, err)
		return
	}

	payload := gin.H{"token": res.Token}
	if res.SearchToken != "" {
		payload["searchToken"] = res.SearchToken
	}
	response.Success(c, payload)
}

func (h *AuthHandler) TeacherLogin(c *gin.Context) {
	var input dto.LoginInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Fail(c, response.Legacy, h.logger, apperror.ErrMissingFields)
		return
	}

	res, err := h.authService.TeacherLogin(c.Request.Context(), input)
	if err != nil {
		response.Fail(c, response.Legacy, h.logger, err)
		return
	}

	response.Success(c, gin.H{"token": res.Token})
}

func (h *AuthHandler) TeacherProfile(c *gin.Context) {
	principal, ok := middleware.PrincipalFrom(c)
	if !ok {
		response.Fail(c, response.Strict, h.logger, apperror.ErrUnauthorized)
		return
	}

	teacher, err := h.authService.TeacherProfile(c.Request.Context(), principal.Subject)
	if err != nil {
		if errors.Is(err, apperror.ErrNotFound) {
			err = apperror.NotFound("Teacher not found")
		}
		response.Fail(c, response.Strict, h.logger, err)
		return
	}

	response.Success(c, gin.H{"profileData": teacher})
}
