package service

import (
	"context"
	"errors"
	"strings"

	"anoa.com/sccams/internal/entity"
	"anoa.com/sccams/internal/modules/appointment/repository"
	"anoa.com/sccams/pkg/apperror"
	"github.com/google/uuid"
)

type AppointmentService interface {
	List(ctx context.Context) ([]*entity.Appointment, error)
	Cancel(ctx context.Context, appointmentID string) error
}

type appointmentService struct {
	repo repository.AppointmentRepository
}

func NewAppointmentService(repo repository.AppointmentRepository) AppointmentService {
	return &appointmentService{repo: repo}
}

func (s *appointmentService) List(ctx context.Context) ([]*entity.Appointment, error) {
	return s.repo.FindAll(ctx)
}

// Cancel marks the appointment cancelled. An id that cannot name a stored
// appointment is reported as not found.
func (s *appointmentService) Cancel(ctx context.Context, appointmentID string) error {
	id, err := uuid.Parse(strings.TrimSpace(appointmentID))
	if err != nil {
		return apperror.NotFound("Appointment not found")
	}
	if err := s.repo.Cancel(ctx, id); err != nil {
		if errors.Is(err, apperror.ErrNotFound) {
			return apperror.NotFound("Appointment not found")
		}
		return err
	}
	return nil
}
