package repository

import (
	"context"
	"errors"
	"fmt"

	"anoa.com/sccams/internal/entity"
	"anoa.com/sccams/pkg/apperror"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type AppointmentRepository interface {
	FindAll(ctx context.Context) ([]*entity.Appointment, error)
	Cancel(ctx context.Context, id uuid.UUID) error
}

type appointmentRepository struct {
	db *gorm.DB
}

func NewAppointmentRepository(db *gorm.DB) AppointmentRepository {
	return &appointmentRepository{db: db}
}

// FindAll returns appointments in booking order.
func (r *appointmentRepository) FindAll(ctx context.Context) ([]*entity.Appointment, error) {
	var appointments []*entity.Appointment
	if err := r.db.WithContext(ctx).Order("date ASC").Find(&appointments).Error; err != nil {
		return nil, fmt.Errorf("%w: %v", apperror.ErrPersistence, err)
	}
	return appointments, nil
}

func (r *appointmentRepository) Cancel(ctx context.Context, id uuid.UUID) error {
	res := r.db.WithContext(ctx).
		Model(&entity.Appointment{}).
		Where("id = ?", id).
		Update("cancelled", true)
	if res.Error != nil {
		if errors.Is(res.Error, gorm.ErrRecordNotFound) {
			return apperror.ErrNotFound
		}
		return fmt.Errorf("%w: %v", apperror.ErrPersistence, res.Error)
	}
	if res.RowsAffected == 0 {
		return apperror.ErrNotFound
	}
	return nil
}

