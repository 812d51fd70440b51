package service

import (
	"fmt"
	"html"
	"strings"
	"time"

	"anoa.com/sccams/internal/entity"
	"github.com/meilisearch/meilisearch-go"
	"github.com/microcosm-cc/bluemonday"
	"go.uber.org/zap"
)

const (
	personnelIndex = "personnel"
	signingKeyName = "PersonnelTokenSigner"
)

// Indexer keeps the personnel search index in step with writes. Index
// failures are reported to the caller, who logs them; they never fail a
// request.
type Indexer interface {
	IndexPerson(p entity.Personnel) error
	DeletePerson(id string) error
	// GenerateSearchToken returns a short-lived tenant token the admin panel
	// uses to query the index directly.
	GenerateSearchToken() (string, error)
}

type personnelDoc struct {
	ID     string `json:"id"`
	Kind   string `json:"kind"`
	Code   string `json:"code"`
	Name   string `json:"name"`
	Email  string `json:"email"`
	Number string `json:"number"`
	Role   string `json:"role"`
	Image  string `json:"image"`
	Date   int64  `json:"date"`
}

type meiliIndexer struct {
	client        meilisearch.ServiceManager
	logger        *zap.Logger
	sanitizer     *bluemonday.Policy
	signingKeyUID string
	signingKey    string
}

func NewMeiliIndexer(client meilisearch.ServiceManager, logger *zap.Logger) Indexer {
	s := &meiliIndexer{
		client:    client,
		logger:    logger,
		sanitizer: bluemonday.StrictPolicy(),
	}
	s.initIndex()
	s.initSigningKey()
	return s
}

func (s *meiliIndexer) initIndex() {
	filterable := []any{"kind", "code"}
	if _, err := s.client.Index(personnelIndex).UpdateFilterableAttributes(&filterable); err != nil {
		s.logger.Warn("failed to update personnel filterable attributes", zap.Error(err))
	}

	sortable := []string{"date", "name"}
	if _, err := s.client.Index(personnelIndex).UpdateSortableAttributes(&sortable); err != nil {
		s.logger.Warn("failed to update personnel sortable attributes", zap.Error(err))
	}
}

func (s *meiliIndexer) initSigningKey() {
	resp, err := s.client.GetKeys(&meilisearch.KeysQuery{Limit: 20})
	if err != nil {
		s.logger.Warn("failed to list meilisearch keys", zap.Error(err))
		return
	}

	for _, key := range resp.Results {
		if key.Name == signingKeyName {
			s.signingKeyUID = key.UID
			s.signingKey = key.Key
			return
		}
	}

	key, err := s.client.CreateKey(&meilisearch.Key{
		Name:        signingKeyName,
		Description: "Signs admin panel search tokens for the personnel index",
		Actions:     []string{"search"},
		Indexes:     []string{personnelIndex},
		ExpiresAt:   time.Now().AddDate(100, 0, 0),
	})
	if err != nil {
		s.logger.Warn("failed to create meilisearch signing key", zap.Error(err))
		return
	}

	s.signingKeyUID = key.UID
	s.signingKey = key.Key
}

func (s *meiliIndexer) clean(text string) string {
	text = html.UnescapeString(s.sanitizer.Sanitize(text))
	return strings.Join(strings.Fields(text), " ")
}

func (s *meiliIndexer) IndexPerson(p entity.Personnel) error {
	base := p.Base()
	doc := personnelDoc{
		ID:     base.ID.String(),
		Kind:   string(p.Kind()),
		Code:   s.clean(base.Code),
		Name:   s.clean(base.Name),
		Email:  base.Email,
		Number: s.clean(base.Number),
		Role:   s.clean(p.Role()),
		Image:  base.Image,
		Date:   base.Date.Unix(),
	}

	primaryKey := "id"
	task, err := s.client.Index(personnelIndex).AddDocuments([]personnelDoc{doc}, &primaryKey)
	if err != nil {
		return fmt.Errorf("index %s %s: %w", doc.Kind, doc.ID, err)
	}
	s.logger.Debug("indexed personnel", zap.String("id", doc.ID), zap.Any("task", task.TaskUID))
	return nil
}

func (s *meiliIndexer) DeletePerson(id string) error {
	_, err := s.client.Index(personnelIndex).DeleteDocument(id)
	return err
}

func (s *meiliIndexer) GenerateSearchToken() (string, error) {
	if s.signingKeyUID == "" || s.signingKey == "" {
		return "", fmt.Errorf("signing key not initialized")
	}

	rules := map[string]any{personnelIndex: map[string]any{"filter": nil}}
	return s.client.GenerateTenantToken(s.signingKeyUID, rules, &meilisearch.TenantTokenOptions{
		APIKey:    s.signingKey,
		ExpiresAt: time.Now().Add(time.Hour),
	})
}

type noopIndexer struct{}

// NewNoopIndexer is used when no search backend is configured.
func NewNoopIndexer() Indexer { return noopIndexer{} }

func (noopIndexer) IndexPerson(entity.Personnel) error { return nil }
func (noopIndexer) DeletePerson(string) error { return nil }
func (noopIndexer) GenerateSearchToken() (string, error) { return "", nil }
