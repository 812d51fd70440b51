// Package testutil holds in-memory stand-ins for the storage collaborators,
// shared by service and HTTP tests.
package testutil

import (
	"context"
	"errors"
	"io"
	"strings"
	"sync"
	"time"

	"anoa.com/sccams/internal/entity"
	"anoa.com/sccams/pkg/apperror"
	"github.com/google/uuid"
)

// MemRepository is an ordered in-memory personnel repository.
type MemRepository[T entity.Record] struct {
	mu      sync.Mutex
	records []*T

	// CreateErr, when set, is returned by Create instead of storing.
	CreateErr error
	Creates   int
}

func NewMemRepository[T entity.Record]() *MemRepository[T] {
	return &MemRepository[T]{}
}

// Seed stores rec as-is, assigning an id and date when missing.
func (m *MemRepository[T]) Seed(rec *T) *T {
	base := entity.AsPersonnel(rec).Base()
	if base.ID == uuid.Nil {
		base.ID = uuid.New()
	}
	if base.Date.IsZero() {
		base.Date = time.Now()
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *rec
	m.records = append(m.records, &cp)
	return rec
}

// Stored returns the stored copy including the password, for assertions.
func (m *MemRepository[T]) Stored(id uuid.UUID) (*T, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, rec := range m.records {
		if entity.AsPersonnel(rec).Base().ID == id {
			cp := *rec
			return &cp, true
		}
	}
	return nil, false
}

func (m *MemRepository[T]) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.records)
}

func (m *MemRepository[T]) Create(ctx context.Context, rec *T) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Creates++
	if m.CreateErr != nil {
		return m.CreateErr
	}
	base := entity.AsPersonnel(rec).Base()
	for _, existing := range m.records {
		if entity.AsPersonnel(existing).Base().Code == base.Code {
			return apperror.ErrDuplicateCode
		}
	}
	if base.ID == uuid.Nil {
		base.ID = uuid.New()
	}
	cp := *rec
	m.records = append(m.records, &cp)
	return nil
}

func (m *MemRepository[T]) FindAll(ctx context.Context) ([]*T, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]*T, 0, len(m.records))
	for _, rec := range m.records {
		out = append(out, withoutSecret(rec))
	}
	return out, nil
}

func (m *MemRepository[T]) FindByCode(ctx context.Context, code string) (*T, error) {
	return m.find(func(p *entity.Person) bool { return p.Code == code }, false)
}

func (m *MemRepository[T]) FindByID(ctx context.Context, id uuid.UUID) (*T, error) {
	return m.find(func(p *entity.Person) bool { return p.ID == id }, false)
}

func (m *MemRepository[T]) FindByEmailWithSecret(ctx context.Context, email string) (*T, error) {
	return m.find(func(p *entity.Person) bool { return p.Email == email }, true)
}

func (m *MemRepository[T]) Update(ctx context.Context, rec *T, columns ...string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	src := entity.AsPersonnel(rec)
	for i, existing := range m.records {
		dst := entity.AsPersonnel(existing)
		if dst.Base().ID != src.Base().ID {
			continue
		}
		for _, col := range columns {
			if col == "code" {
				for j, other := range m.records {
					if j != i && entity.AsPersonnel(other).Base().Code == src.Base().Code {
						return apperror.ErrDuplicateCode
					}
				}
			}
		}
		for _, col := range columns {
			switch col {
			case "code":
				dst.Base().Code = src.Base().Code
			case "name":
				dst.Base().Name = src.Base().Name
			case "email":
				dst.Base().Email = src.Base().Email
			case "number":
				dst.Base().Number = src.Base().Number
			case "address":
				dst.Base().Address = src.Base().Address
			case "level", "position":
				dst.SetRole(src.Role())
			}
		}
		return nil
	}
	return apperror.ErrNotFound
}

func (m *MemRepository[T]) DeleteByID(ctx context.Context, id uuid.UUID) (*T, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i, rec := range m.records {
		if entity.AsPersonnel(rec).Base().ID == id {
			m.records = append(m.records[:i], m.records[i+1:]...)
			return withoutSecret(rec), nil
		}
	}
	return nil, apperror.ErrNotFound
}

func (m *MemRepository[T]) Count(ctx context.Context) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return int64(len(m.records)), nil
}

func (m *MemRepository[T]) find(match func(*entity.Person) bool, withSecret bool) (*T, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, rec := range m.records {
		if match(entity.AsPersonnel(rec).Base()) {
			if withSecret {
				cp := *rec
				return &cp, nil
			}
			return withoutSecret(rec), nil
		}
	}
	return nil, apperror.ErrNotFound
}

func withoutSecret[T entity.Record](rec *T) *T {
	cp := *rec
	entity.AsPersonnel(&cp).Base().Password = ""
	return &cp
}

// FakeStorage records uploads and deletions in memory.
type FakeStorage struct {
	mu        sync.Mutex
	Uploaded  []string
	Deleted   []string
	UploadErr error
	DeleteErr error
}

func (s *FakeStorage) UploadImage(ctx context.Context, r io.Reader, folder, fileName string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.UploadErr != nil {
		return "", s.UploadErr
	}
	if _, err := io.Copy(io.Discard, r); err != nil {
		return "", err
	}
	url := "https://res.cloudinary.com/test/image/upload/" + strings.Trim(folder, "/") + "/" + fileName
	s.Uploaded = append(s.Uploaded, url)
	return url, nil
}

func (s *FakeStorage) DeleteImage(ctx context.Context, fileURL string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.DeleteErr != nil {
		return s.DeleteErr
	}
	s.Deleted = append(s.Deleted, fileURL)
	return nil
}

func (s *FakeStorage) Uploads() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.Uploaded)
}

// CountingHasher is a cheap deterministic hasher that counts Hash calls.
type CountingHasher struct {
	mu     sync.Mutex
	Calls  int
	HashFn func(string) (string, error)
}

func (h *CountingHasher) Hash(plain string) (string, error) {
	h.mu.Lock()
	h.Calls++
	h.mu.Unlock()
	if h.HashFn != nil {
		return h.HashFn(plain)
	}
	return "hashed:" + plain, nil
}

func (h *CountingHasher) Verify(plain, hashed string) bool {
	return hashed == "hashed:"+plain
}

// MemAppointments is an ordered in-memory appointment store.
type MemAppointments struct {
	mu    sync.Mutex
	items []*entity.Appointment
}

func (m *MemAppointments) Seed(a *entity.Appointment) *entity.Appointment {
	m.mu.Lock()
	defer m.mu.Unlock()
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	cp := *a
	m.items = append(m.items, &cp)
	return a
}

func (m *MemAppointments) FindAll(ctx context.Context) ([]*entity.Appointment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]*entity.Appointment, 0, len(m.items))
	for _, a := range m.items {
		cp := *a
		out = append(out, &cp)
	}
	return out, nil
}

func (m *MemAppointments) Cancel(ctx context.Context, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, a := range m.items {
		if a.ID == id {
			a.Cancelled = true
			return nil
		}
	}
	return apperror.ErrNotFound
}

// ErrBoom is a generic storage fault for failure-path tests.
var ErrBoom = errors.New("boom")
