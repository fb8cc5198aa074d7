package relational

import (
	"LinkGate-Backend/internal/domain"
	"LinkGate-Backend/internal/repository"
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Storage реализует repository.Storage поверх GORM (PostgreSQL или MySQL).
// Соединение должно быть открыто с TranslateError: true, чтобы нарушение
// уникального индекса приходило как gorm.ErrDuplicatedKey.
type Storage struct {
	db  *gorm.DB
	log *zap.Logger
}

// New создает новый экземпляр хранилища
func New(db *gorm.DB, log *zap.Logger) *Storage {
	return &Storage{
		db:  db,
		log: log,
	}
}

// Insert сохраняет новую ссылку одним INSERT; конфликт определяет уникальный индекс short_id
func (s *Storage) Insert(ctx context.Context, link *domain.Link) error {
	link.ExpiresAt = link.ExpiresAt.UTC()

	err := s.db.WithContext(ctx).Create(link).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return repository.ErrShortIDExists
	}
	if err != nil {
		s.log.Error("failed to insert link", zap.String("short_id", link.ShortID), zap.Error(err))
		return fmt.Errorf("failed to insert link: %w", err)
	}

	s.log.Debug("inserted link", zap.String("short_id", link.ShortID), zap.Time("expires_at", link.ExpiresAt))
	return nil
}

// Lookup получает ссылку по short id без фильтрации по сроку жизни
func (s *Storage) Lookup(ctx context.Context, shortID string) (*domain.Link, error) {
	var link domain.Link

	err := s.db.WithContext(ctx).Where("short_id = ?", shortID).First(&link).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, repository.ErrShortIDNotFound
	}
	if err != nil {
		s.log.Error("failed to lookup link", zap.String("short_id", shortID), zap.Error(err))
		return nil, fmt.Errorf("failed to lookup link: %w", err)
	}

	return &link, nil
}

// DeleteExpired удаляет все ссылки, срок которых наступил к моменту now.
// Удаление по предикату идемпотентно, его можно прервать и повторить.
func (s *Storage) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	result := s.db.WithContext(ctx).Where("expires_at <= ?", now.UTC()).Delete(&domain.Link{})
	if result.Error != nil {
		s.log.Error("failed to delete expired links", zap.Time("now", now), zap.Error(result.Error))
		return 0, fmt.Errorf("failed to delete expired links: %w", result.Error)
	}

	return result.RowsAffected, nil
}

// Delete удаляет ссылку по short id
func (s *Storage) Delete(ctx context.Context, shortID string) error {
	result := s.db.WithContext(ctx).Where("short_id = ?", shortID).Delete(&domain.Link{})
	if result.Error != nil {
		s.log.Error("failed to delete link", zap.String("short_id", shortID), zap.Error(result.Error))
		return fmt.Errorf("failed to delete link: %w", result.Error)
	}

	if result.RowsAffected == 0 {
		return repository.ErrShortIDNotFound
	}

	s.log.Info("deleted link", zap.String("short_id", shortID))
	return nil
}

// Ping проверяет соединение с базой данных
func (s *Storage) Ping(ctx context.Context) error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return fmt.Errorf("failed to get sql.DB instance: %w", err)
	}
	if err := sqlDB.PingContext(ctx); err != nil {
		return fmt.Errorf("database ping failed: %w", err)
	}
	return nil
}
