package repository

import (
	"LinkGate-Backend/internal/domain"
	"context"
	"errors"
	"time"
)

var (
	ErrShortIDNotFound = errors.New("short id not found")
	ErrShortIDExists   = errors.New("short id already exists")
)

// Storage - авторитетное хранилище ссылок. Уникальность ShortID обеспечивается здесь.
type Storage interface {
	// Insert атомарно сохраняет ссылку. Если ShortID занят, возвращает ErrShortIDExists
	// и ничего не изменяет.
	Insert(ctx context.Context, link *domain.Link) error
	// Lookup возвращает ссылку или ErrShortIDNotFound. Срок жизни не проверяется.
	Lookup(ctx context.Context, shortID string) (*domain.Link, error)
	// DeleteExpired удаляет все ссылки с expires_at <= now и возвращает их количество.
	DeleteExpired(ctx context.Context, now time.Time) (int64, error)
	// Delete удаляет одну ссылку (административная операция).
	Delete(ctx context.Context, shortID string) error
	// Ping проверяет доступность хранилища.
	Ping(ctx context.Context) error
}
