package service

import (
	"context"
	"crypto/subtle"
	"errors"
	"strings"
	"time"

	"anoa.com/sccams/internal/entity"
	"anoa.com/sccams/internal/modules/auth/dto"
	personnelRepo "anoa.com/sccams/internal/modules/personnel/repository"
	search "anoa.com/sccams/internal/modules/search/service"
	"anoa.com/sccams/pkg/apperror"
	"anoa.com/sccams/pkg/hash"
	"anoa.com/sccams/pkg/token"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// AdminIdentity is the single privileged login, injected from config.
type AdminIdentity struct {
	Email    string
	Password string
}

type AuthService interface {
	AdminLogin(ctx context.Context, input dto.LoginInput) (*dto.AdminAuthResponse, error)
	TeacherLogin(ctx context.Context, input dto.LoginInput) (*dto.TeacherAuthResponse, error)
	TeacherProfile(ctx context.Context, teacherID string) (*entity.Teacher, error)
}

type authService struct {
	admin    AdminIdentity
	tokens   *token.Manager
	teachers personnelRepo.Repository[entity.Teacher]
	hasher   hash.Hasher
	indexer  search.Indexer
	logger   *zap.Logger
	now      func() time.Time
}

func NewAuthService(
	admin AdminIdentity,
	tokens *token.Manager,
	teachers personnelRepo.Repository[entity.Teacher],
	hasher hash.Hasher,
	indexer search.Indexer,
	logger *zap.Logger,
) AuthService {
	if indexer == nil {
		indexer = search.NewNoopIndexer()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &authService{
		admin:    admin,
		tokens:   tokens,
		teachers: teachers,
		hasher:   hasher,
		indexer:  indexer,
		logger:   logger,
		now:      time.Now,
	}
}

func (s *authService) AdminLogin(ctx context.Context, input dto.LoginInput) (*dto.AdminAuthResponse, error) {
	email := strings.TrimSpace(input.Email)
	if email == "" || input.Password == "" {
		return nil, apperror.ErrMissingFields
	}
	if s.admin.Email == "" || s.admin.Password == "" {
		return nil, apperror.ErrInvalidCredentials
	}

	emailOK := subtle.ConstantTimeCompare([]byte(email), []byte(s.admin.Email)) == 1
	passwordOK := subtle.ConstantTimeCompare([]byte(input.Password), []byte(s.admin.Password)) == 1
	if !emailOK || !passwordOK {
		return nil, apperror.ErrInvalidCredentials
	}

	signed, expiresAt, err := s.tokens.IssueAdmin(s.admin.Email)
	if err != nil {
		return nil, err
	}

	res := &dto.AdminAuthResponse{
		Token:     signed,
		ExpiresIn: int64(expiresAt.Sub(s.now()).Seconds()),
	}
	if searchToken, err := s.indexer.GenerateSearchToken(); err != nil {
		s.logger.Warn("failed to generate search token", zap.Error(err))
	} else {
		res.SearchToken = searchToken
	}
	return res, nil
}

func (s *authService) TeacherLogin(ctx context.Context, input dto.LoginInput) (*dto.TeacherAuthResponse, error) {
	email := strings.TrimSpace(input.Email)
	if email == "" || input.Password == "" {
		return nil, apperror.ErrMissingFields
	}

	teacher, err := s.teachers.FindByEmailWithSecret(ctx, email)
	if err != nil {
		if errors.Is(err, apperror.ErrNotFound) {
			return nil, apperror.ErrInvalidCredentials
		}
		return nil, err
	}
	if !s.hasher.Verify(input.Password, teacher.Password) {
		return nil, apperror.ErrInvalidCredentials
	}

	signed, expiresAt, err := s.tokens.IssueTeacher(teacher.ID.String())
	if err != nil {
		return nil, err
	}

	return &dto.TeacherAuthResponse{
		Token:     signed,
		ExpiresIn: int64(expiresAt.Sub(s.now()).Seconds()),
	}, nil
}

func (s *authService) TeacherProfile(ctx context.Context, teacherID string) (*entity.Teacher, error) {
	id, err := uuid.Parse(teacherID)
	if err != nil {
		return nil, apperror.ErrUnauthorized
	}
	return s.teachers.FindByID(ctx, id)
}
