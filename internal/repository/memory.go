package repository

import (
	"context"
	"slices"
	"sort"
	"sync"
	"time"

	"github.com/segyhp/placement-engine/internal/domain"
)

// DocumentRepositoryMemory is an in-memory implementation of DocumentRepository.
// UpdateStatus checks the precondition under the same lock as the write, giving
// it the same compare-and-set behaviour as the Postgres implementation.
type DocumentRepositoryMemory struct {
	mu   sync.Mutex
	data map[string]domain.ApprovableDocument
}

// NewDocumentRepositoryMemory creates a new in-memory document repository.
func NewDocumentRepositoryMemory(docs ...domain.ApprovableDocument) *DocumentRepositoryMemory {
	r := &DocumentRepositoryMemory{data: make(map[string]domain.ApprovableDocument)}
	for _, doc := range docs {
		r.data[doc.ID] = doc
	}
	return r
}

func (r *DocumentRepositoryMemory) Create(ctx context.Context, doc *domain.ApprovableDocument) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.data[doc.ID] = *doc
	return nil
}

func (r *DocumentRepositoryMemory) GetByID(ctx context.Context, id string) (*domain.ApprovableDocument, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	doc, ok := r.data[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &doc, nil
}

func (r *DocumentRepositoryMemory) List(ctx context.Context, filter domain.DocumentFilter) ([]*domain.ApprovableDocument, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	docs := []*domain.ApprovableDocument{}
	for _, doc := range r.data {
		if filter.OwnerID != "" && doc.OwnerID != filter.OwnerID {
			continue
		}
		if filter.Status != "" && doc.Status != filter.Status {
			continue
		}
		docs = append(docs, &doc)
	}

	sort.Slice(docs, func(i, j int) bool {
		return docs[i].CreatedAt.After(docs[j].CreatedAt)
	})
	return docs, nil
}

func (r *DocumentRepositoryMemory) UpdateStatus(ctx context.Context, doc *domain.ApprovableDocument, allowedFrom []domain.DocumentStatus) (*domain.ApprovableDocument, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored, ok := r.data[doc.ID]
	if !ok || !slices.Contains(allowedFrom, stored.Status) || stored.Version != doc.Version {
		return nil, ErrPreconditionFailed
	}

	stored.Status = doc.Status
	stored.RejectionReason = doc.RejectionReason
	stored.PaidAt = doc.PaidAt
	stored.UpdatedAt = doc.UpdatedAt
	stored.Version++
	r.data[doc.ID] = stored

	return &stored, nil
}

// ContractRepositoryMemory is an in-memory implementation of ContractRepository.
type ContractRepositoryMemory struct {
	mu   sync.RWMutex
	data map[string]domain.Contract
}

// NewContractRepositoryMemory creates a new in-memory contract repository.
func NewContractRepositoryMemory(contracts ...domain.Contract) *ContractRepositoryMemory {
	r := &ContractRepositoryMemory{data: make(map[string]domain.Contract)}
	for _, c := range contracts {
		r.data[c.ID] = c
	}
	return r
}

func (r *ContractRepositoryMemory) GetByID(ctx context.Context, id string) (*domain.Contract, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	c, ok := r.data[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &c, nil
}

func (r *ContractRepositoryMemory) ListByStatus(ctx context.Context, status domain.ContractStatus) ([]*domain.Contract, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	contracts := []*domain.Contract{}
	for _, c := range r.data {
		if c.Status == status {
			contracts = append(contracts, &c)
		}
	}

	sort.Slice(contracts, func(i, j int) bool {
		return contracts[i].ID < contracts[j].ID
	})
	return contracts, nil
}

// MemoryCache is an in-memory CacheRepository honouring TTLs.
type MemoryCache struct {
	mu   sync.Mutex
	data map[string]time.Time
	now  func() time.Time
}

func NewMemoryCache() *MemoryCache {
	return &MemoryCache{
		data: make(map[string]time.Time),
		now:  time.Now,
	}
}

func (m *MemoryCache) MarkOnce(ctx context.Context, key string, ttl time.Duration) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.now()
	if expiresAt, ok := m.data[key]; ok && (expiresAt.IsZero() || now.Before(expiresAt)) {
		return false, nil
	}

	var expiresAt time.Time
	if ttl > 0 {
		expiresAt = now.Add(ttl)
	}
	m.data[key] = expiresAt
	return true, nil
}
