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

const secretColumn = "password"

// Repository persists one personnel kind. Reads never load the password
// column, except FindByEmailWithSecret which exists for credential checks.
type Repository[T entity.Record] interface {
	Create(ctx context.Context, rec *T) error
	FindAll(ctx context.Context) ([]*T, error)
	FindByCode(ctx context.Context, code string) (*T, error)
	FindByID(ctx context.Context, id uuid.UUID) (*T, error)
	FindByEmailWithSecret(ctx context.Context, email string) (*T, error)
	Update(ctx context.Context, rec *T, columns ...string) error
	DeleteByID(ctx context.Context, id uuid.UUID) (*T, error)
	Count(ctx context.Context) (int64, error)
}

type repository[T entity.Record] struct {
	db *gorm.DB
}

func NewRepository[T entity.Record](db *gorm.DB) Repository[T] {
	return &repository[T]{db: db}
}

func (r *repository[T]) Create(ctx context.Context, rec *T) error {
	return translate(r.db.WithContext(ctx).Create(rec).Error)
}

func (r *repository[T]) FindAll(ctx context.Context) ([]*T, error) {
	var recs []*T
	if err := r.db.WithContext(ctx).
		Omit(secretColumn).
		Order("date ASC").
		Find(&recs).Error; err != nil {
		return nil, translate(err)
	}
	return recs, nil
}

func (r *repository[T]) FindByCode(ctx context.Context, code string) (*T, error) {
	var rec T
	if err := r.db.WithContext(ctx).
		Omit(secretColumn).
		Where("code = ?", code).
		First(&rec).Error; err != nil {
		return nil, translate(err)
	}
	return &rec, nil
}

func (r *repository[T]) FindByID(ctx context.Context, id uuid.UUID) (*T, error) {
	var rec T
	if err := r.db.WithContext(ctx).
		Omit(secretColumn).
		First(&rec, "id = ?", id).Error; err != nil {
		return nil, translate(err)
	}
	return &rec, nil
}

func (r *repository[T]) FindByEmailWithSecret(ctx context.Context, email string) (*T, error) {
	var rec T
	if err := r.db.WithContext(ctx).
		Where("email = ?", email).
		Order("date ASC").
		First(&rec).Error; err != nil {
		return nil, translate(err)
	}
	return &rec, nil
}

// Update writes only the named columns of rec, identified by its primary key.
func (r *repository[T]) Update(ctx context.Context, rec *T, columns ...string) error {
	if len(columns) == 0 {
		return nil
	}
	res := r.db.WithContext(ctx).Model(rec).Select(columns).Updates(rec)
	if res.Error != nil {
		return translate(res.Error)
	}
	if res.RowsAffected == 0 {
		return apperror.ErrNotFound
	}
	return nil
}

// DeleteByID removes the row and returns it as it was before deletion.
func (r *repository[T]) DeleteByID(ctx context.Context, id uuid.UUID) (*T, error) {
	var rec T
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(secretColumn).First(&rec, "id = ?", id).Error; err != nil {
			return err
		}
		return tx.Delete(new(T), "id = ?", id).Error
	})
	if err != nil {
		return nil, translate(err)
	}
	return &rec, nil
}

func (r *repository[T]) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(new(T)).Count(&count).Error; err != nil {
		return 0, translate(err)
	}
	return count, nil
}

func translate(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return apperror.ErrNotFound
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return apperror.ErrDuplicateCode
	default:
		return fmt.Errorf("%w: %v", apperror.ErrPersistence, err)
	}
}
