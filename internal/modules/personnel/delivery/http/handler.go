package handler

import (
	"errors"
	"net/http"

	"anoa.com/sccams/internal/entity"
	"anoa.com/sccams/internal/modules/personnel/dto"
	personnel "anoa.com/sccams/internal/modules/personnel/service"
	"anoa.com/sccams/pkg/apperror"
	"anoa.com/sccams/pkg/response"
	"anoa.com/sccams/pkg/validator"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// PersonnelHandler serves the admin routes of one personnel kind.
type PersonnelHandler[T entity.Record] struct {
	service personnel.Service[T]
	kind    entity.Kind
	logger  *zap.Logger
}

func NewPersonnelHandler[T entity.Record](service personnel.Service[T], logger *zap.Logger) *PersonnelHandler[T] {
	return &PersonnelHandler[T]{
		service: service,
		kind:    entity.KindOf[T](),
		logger:  logger,
	}
}

// Register mounts add-*, all-*, PUT and DELETE routes for the kind on rg.
func (h *PersonnelHandler[T]) Register(rg *gin.RouterGroup) {
	rg.POST("/add-"+string(h.kind), h.Add)
	rg.GET("/all-"+h.kind.Plural(), h.List)
	rg.PUT("/"+h.kind.Plural()+"/:id", h.Update)
	rg.DELETE("/"+h.kind.Plural()+"/:id", h.Delete)
}

func (h *PersonnelHandler[T]) Add(c *gin.Context) {
	var input dto.CreatePersonnelInput
	if err := c.ShouldBind(&input); err != nil {
		response.Fail(c, response.Legacy, h.logger, apperror.ErrMissingFields)
		return
	}

	var image *dto.ImageFile
	if fileHeader, err := c.FormFile("image"); err == nil && fileHeader != nil {
		file, err := fileHeader.Open()
		if err != nil {
			response.Fail(c, response.Legacy, h.logger, err)
			return
		}
		defer file.Close()

		image = &dto.ImageFile{
			Reader:   file,
			FileName: fileHeader.Filename,
		}
	}

	if _, err := h.service.Add(c.Request.Context(), input, image); err != nil {
		response.Fail(c, response.Legacy, h.logger, err)
		return
	}

	response.Success(c, gin.H{"message": h.kind.Title() + " Added"})
}

func (h *PersonnelHandler[T]) List(c *gin.Context) {
	recs, err := h.service.List(c.Request.Context())
	if err != nil {
		response.Fail(c, response.Legacy, h.logger, err)
		return
	}

	response.Success(c, gin.H{h.kind.Plural(): recs})
}

// FindByCode backs the RFID scan route.
func (h *PersonnelHandler[T]) FindByCode(c *gin.Context) {
	rec, err := h.service.FindByCode(c.Request.Context(), c.Param("code"))
	if err != nil {
		response.Fail(c, response.Strict, h.logger, h.notFound(err))
		return
	}

	response.Success(c, gin.H{string(h.kind): rec})
}

func (h *PersonnelHandler[T]) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Fail(c, response.Strict, h.logger, h.notFound(apperror.ErrNotFound))
		return
	}

	var input dto.UpdatePersonnelInput
	if err := c.ShouldBindJSON(&input); err != nil {
		invalid := apperror.New(http.StatusBadRequest, "Invalid update payload", apperror.ErrBadRequest)
		response.Fail(c, response.Strict, h.logger, validator.BindingError(err, invalid))
		return
	}

	rec, err := h.service.Update(c.Request.Context(), id, input)
	if err != nil {
		response.Fail(c, response.Strict, h.logger, h.notFound(err))
		return
	}

	response.Success(c, gin.H{string(h.kind): rec})
}

func (h *PersonnelHandler[T]) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Fail(c, response.Strict, h.logger, h.notFound(apperror.ErrNotFound))
		return
	}

	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		response.Fail(c, response.Strict, h.logger, h.notFound(err))
		return
	}

	response.Success(c, gin.H{"message": h.kind.Title() + " deleted successfully"})
}

func (h *PersonnelHandler[T]) notFound(err error) error {
	if errors.Is(err, apperror.ErrNotFound) {
		return apperror.NotFound(h.kind.Title() + " not found")
	}
	return err
}

// LookupHandler serves the cross-kind code lookup.
type LookupHandler struct {
	service personnel.LookupService
	logger  *zap.Logger
}

func NewLookupHandler(service personnel.LookupService, logger *zap.Logger) *LookupHandler {
	return &LookupHandler{service: service, logger: logger}
}

func (h *LookupHandler) FindUserByCode(c *gin.Context) {
	user, err := h.service.FindUserByCode(c.Request.Context(), c.Param("code"))
	if err != nil {
		if errors.Is(err, apperror.ErrNotFound) {
			err = apperror.NotFound("User not found")
		}
		response.Fail(c, response.Strict, h.logger, err)
		return
	}

	response.Success(c, gin.H{"user": user})
}
