package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"anoa.com/sccams/internal/entity"
	"anoa.com/sccams/internal/modules/personnel/dto"
	repo "anoa.com/sccams/internal/modules/personnel/repository"
	search "anoa.com/sccams/internal/modules/search/service"
	"anoa.com/sccams/pkg/apperror"
	"anoa.com/sccams/pkg/hash"
	"anoa.com/sccams/pkg/storage"
	"anoa.com/sccams/pkg/validator"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Service manages one personnel kind.
type Service[T entity.Record] interface {
	Add(ctx context.Context, input dto.CreatePersonnelInput, image *dto.ImageFile) (*T, error)
	List(ctx context.Context) ([]*T, error)
	FindByCode(ctx context.Context, code string) (*T, error)
	Update(ctx context.Context, id uuid.UUID, input dto.UpdatePersonnelInput) (*T, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type service[T entity.Record] struct {
	repo         repo.Repository[T]
	hasher       hash.Hasher
	imageStorage storage.ImageStorage
	indexer      search.Indexer
	logger       *zap.Logger
	now          func() time.Time
}

func NewService[T entity.Record](
	repository repo.Repository[T],
	hasher hash.Hasher,
	imageStorage storage.ImageStorage,
	indexer search.Indexer,
	logger *zap.Logger,
) Service[T] {
	if indexer == nil {
		indexer = search.NewNoopIndexer()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &service[T]{
		repo:         repository,
		hasher:       hasher,
		imageStorage: imageStorage,
		indexer:      indexer,
		logger:       logger.With(zap.String("kind", string(entity.KindOf[T]()))),
		now:          time.Now,
	}
}

// Add runs validate, hash, upload and create in that order. Nothing after a
// failing step is attempted. If create fails the uploaded image is removed.
func (s *service[T]) Add(ctx context.Context, input dto.CreatePersonnelInput, image *dto.ImageFile) (*T, error) {
	kind := entity.KindOf[T]()
	role := input.RoleFor(kind)

	if err := validator.ValidateCredentials(validator.Credentials{
		Code:     input.Code,
		Name:     input.Name,
		Email:    input.Email,
		Password: input.Password,
		Number:   input.Number,
		Address:  input.Address,
		Role:     role,
		HasImage: image != nil && image.Reader != nil,
	}); err != nil {
		return nil, err
	}

	address, err := entity.ParseAddress(input.Address)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apperror.ErrInvalidAddress, err)
	}

	hashed, err := s.hasher.Hash(input.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	imageURL, err := s.imageStorage.UploadImage(ctx, image.Reader, kind.Plural(), image.FileName)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apperror.ErrUploadFailed, err)
	}

	var rec T
	p := entity.AsPersonnel(&rec)
	base := p.Base()
	base.Code = strings.TrimSpace(input.Code)
	base.Name = strings.TrimSpace(input.Name)
	base.Email = strings.TrimSpace(input.Email)
	base.Number = strings.TrimSpace(input.Number)
	base.Address = address
	base.Image = imageURL
	base.Password = hashed
	base.Date = s.now()
	p.SetRole(strings.TrimSpace(role))

	if err := s.repo.Create(ctx, &rec); err != nil {
		if delErr := s.imageStorage.DeleteImage(ctx, imageURL); delErr != nil {
			s.logger.Warn("failed to remove orphaned image", zap.String("url", imageURL), zap.Error(delErr))
		}
		return nil, err
	}

	s.index(p)
	base.Password = ""
	return &rec, nil
}

func (s *service[T]) List(ctx context.Context) ([]*T, error) {
	return s.repo.FindAll(ctx)
}

func (s *service[T]) FindByCode(ctx context.Context, code string) (*T, error) {
	return s.repo.FindByCode(ctx, strings.TrimSpace(code))
}

// Update merges the supplied fields into the stored record. Password, image,
// date and id are never touched.
func (s *service[T]) Update(ctx context.Context, id uuid.UUID, input dto.UpdatePersonnelInput) (*T, error) {
	rec, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	p := entity.AsPersonnel(rec)
	base := p.Base()
	var columns []string

	if input.Code != nil {
		code := strings.TrimSpace(*input.Code)
		if code == "" {
			return nil, apperror.ErrMissingFields
		}
		base.Code = code
		columns = append(columns, "code")
	}
	if input.Name != nil {
		base.Name = strings.TrimSpace(*input.Name)
		columns = append(columns, "name")
	}
	if input.Email != nil {
		email := strings.TrimSpace(*input.Email)
		if err := validator.ValidateEmail(email); err != nil {
			return nil, err
		}
		base.Email = email
		columns = append(columns, "email")
	}
	if input.Number != nil {
		base.Number = strings.TrimSpace(*input.Number)
		columns = append(columns, "number")
	}
	if input.HasAddress() {
		address, err := entity.DecodeAddress(input.Address)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", apperror.ErrInvalidAddress, err)
		}
		base.Address = address
		columns = append(columns, "address")
	}
	kind := p.Kind()
	if role := input.RoleFor(kind); role != nil {
		p.SetRole(strings.TrimSpace(*role))
		columns = append(columns, kind.RoleField())
	}

	if len(columns) == 0 {
		return rec, nil
	}
	if err := s.repo.Update(ctx, rec, columns...); err != nil {
		return nil, err
	}

	s.index(p)
	return rec, nil
}

// Delete removes the record, then its image and search entry. Only the
// record removal can fail the call.
func (s *service[T]) Delete(ctx context.Context, id uuid.UUID) error {
	rec, err := s.repo.DeleteByID(ctx, id)
	if err != nil {
		return err
	}

	if imageURL := entity.AsPersonnel(rec).Base().Image; imageURL != "" {
		if err := s.imageStorage.DeleteImage(ctx, imageURL); err != nil {
			s.logger.Warn("failed to delete image", zap.String("url", imageURL), zap.Error(err))
		}
	}
	if err := s.indexer.DeletePerson(id.String()); err != nil {
		s.logger.Warn("failed to remove from search index", zap.String("id", id.String()), zap.Error(err))
	}
	return nil
}

func (s *service[T]) index(p entity.Personnel) {
	if err := s.indexer.IndexPerson(p); err != nil {
		s.logger.Warn("failed to index personnel", zap.String("id", p.Base().ID.String()), zap.Error(err))
	}
}
