package http

import (
	statService "anoa.com/sccams/internal/modules/stat/service"
	"anoa.com/sccams/pkg/response"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type StatHandler struct {
	statService statService.StatService
	logger      *zap.Logger
}

func NewStatHandler(statService statService.StatService, logger *zap.Logger) *StatHandler {
	return &StatHandler{
		statService: statService,
		logger:      logger,
	}
}

func (h *StatHandler) Dashboard(c *gin.Context) {
	data, err := h.statService.Dashboard(c.Request.Context())
	if err != nil {
		response.Fail(c, response.Legacy, h.logger, err)
		return
	}

	response.Success(c, gin.H{"dashData": data})
}
