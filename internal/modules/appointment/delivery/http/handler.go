package handler

import (
	"anoa.com/sccams/internal/modules/appointment/dto"
	appointment "anoa.com/sccams/internal/modules/appointment/service"
	"anoa.com/sccams/pkg/apperror"
	"anoa.com/sccams/pkg/response"
	"anoa.com/sccams/pkg/validator"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type AppointmentHandler struct {
	service appointment.AppointmentService
	logger  *zap.Logger
}

func NewAppointmentHandler(service appointment.AppointmentService, logger *zap.Logger) *AppointmentHandler {
	return &AppointmentHandler{service: service, logger: logger}
}

func (h *AppointmentHandler) List(c *gin.Context) {
	appointments, err := h.service.List(c.Request.Context())
	if err != nil {
		response.Fail(c, response.Legacy, h.logger, err)
		return
	}

	response.Success(c, gin.H{"appointments": appointments})
}

func (h *AppointmentHandler) Cancel(c *gin.Context) {
	var input dto.CancelAppointmentInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Fail(c, response.Legacy, h.logger, validator.BindingError(err, apperror.ErrMissingFields))
		return
	}

	if err := h.service.Cancel(c.Request.Context(), input.AppointmentID); err != nil {
		response.Fail(c, response.Legacy, h.logger, err)
		return
	}

	response.Success(c, gin.H{"message": "Appointment Cancelled"})
}
