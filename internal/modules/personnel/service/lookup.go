package service

import (
	"context"
	"errors"
	"strings"

	"anoa.com/sccams/internal/entity"
	repo "anoa.com/sccams/internal/modules/personnel/repository"
	"anoa.com/sccams/pkg/apperror"
)

// LookupService resolves a scanned code to whichever kind owns it.
type LookupService interface {
	// FindUserByCode searches kinds in entity.LookupOrder and returns the
	// first match. A storage fault on any kind stops the search.
	FindUserByCode(ctx context.Context, code string) (entity.Personnel, error)
}

type codeFinder func(ctx context.Context, code string) (entity.Personnel, error)

type lookupService struct {
	finders map[entity.Kind]codeFinder
}

func NewLookupService(
	students repo.Repository[entity.Student],
	teachers repo.Repository[entity.Teacher],
	administrators repo.Repository[entity.Administrator],
	utilities repo.Repository[entity.Utility],
) LookupService {
	return &lookupService{
		finders: map[entity.Kind]codeFinder{
			entity.KindStudent:       finderFor(students),
			entity.KindTeacher:       finderFor(teachers),
			entity.KindAdministrator: finderFor(administrators),
			entity.KindUtility:       finderFor(utilities),
		},
	}
}

func finderFor[T entity.Record](r repo.Repository[T]) codeFinder {
	return func(ctx context.Context, code string) (entity.Personnel, error) {
		rec, err := r.FindByCode(ctx, code)
		if err != nil {
			return nil, err
		}
		return entity.AsPersonnel(rec), nil
	}
}

func (s *lookupService) FindUserByCode(ctx context.Context, code string) (entity.Personnel, error) {
	code = strings.TrimSpace(code)
	for _, kind := range entity.LookupOrder {
		p, err := s.finders[kind](ctx, code)
		if err == nil {
			return p, nil
		}
		if !errors.Is(err, apperror.ErrNotFound) {
			return nil, err
		}
	}
	return nil, apperror.ErrNotFound
}
