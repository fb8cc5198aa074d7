package memory

import (
	"LinkGate-Backend/internal/domain"
	"LinkGate-Backend/internal/repository"
	"context"
	"sync"
	"time"
)

// MemStorage хранит ссылки в памяти процесса. Ссылки копируются на входе и выходе,
// поэтому вызывающий код не может изменить сохраненную запись.
type MemStorage struct {
	mu     sync.RWMutex
	links  map[string]*domain.Link
	nextID int64
}

func New() *MemStorage {
	return &MemStorage{
		links: make(map[string]*domain.Link),
	}
}

func (s *MemStorage) Insert(ctx context.Context, link *domain.Link) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	// Проверяем, существует ли уже такой short id
	if _, exists := s.links[link.ShortID]; exists {
		return repository.ErrShortIDExists
	}

	s.nextID++
	stored := link.Clone()
	stored.ID = s.nextID
	if stored.CreatedAt.IsZero() {
		stored.CreatedAt = time.Now()
	}
	s.links[link.ShortID] = stored

	link.ID = stored.ID
	link.CreatedAt = stored.CreatedAt
	return nil
}

func (s *MemStorage) Lookup(ctx context.Context, shortID string) (*domain.Link, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	link, ok := s.links[shortID]
	if !ok {
		return nil, repository.ErrShortIDNotFound
	}
	return link.Clone(), nil
}

func (s *MemStorage) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	var deleted int64
	for shortID, link := range s.links {
		if link.IsExpired(now) {
			delete(s.links, shortID)
			deleted++
		}
	}
	return deleted, nil
}

func (s *MemStorage) Delete(ctx context.Context, shortID string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.links[shortID]; !ok {
		return repository.ErrShortIDNotFound
	}
	delete(s.links, shortID)
	return nil
}

func (s *MemStorage) Ping(ctx context.Context) error {
	return ctx.Err()
}

// Len возвращает количество сохраненных ссылок
func (s *MemStorage) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.links)
}
