package database

import (
	"LinkGate-Backend/internal/domain"
	"fmt"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// mysqlShortIDBinary - сортировка MySQL по умолчанию (utf8mb4_0900_ai_ci) не различает регистр,
// а short id из 62 символов регистрозависимы
const mysqlShortIDBinary = "ALTER TABLE links MODIFY short_id VARCHAR(64) CHARACTER SET utf8mb4 COLLATE utf8mb4_bin NOT NULL"

// dialectStatements возвращает DDL, который AutoMigrate не умеет выразить для данного диалекта
func dialectStatements(dialect string) []string {
	switch dialect {
	case DriverMySQL:
		return []string{mysqlShortIDBinary}
	default:
		return nil
	}
}

// AutoMigrate выполняет автоматические миграции для всех доменных моделей.
// Создает уникальный индекс по short_id и обычный индекс по expires_at.
func AutoMigrate(db *gorm.DB, log *zap.Logger) error {
	log.Info("starting database auto-migration")

	models := []interface{}{
		&domain.Link{},
	}

	for i, model := range models {
		modelName := fmt.Sprintf("%T", model)
		log.Info("migrating model",
			zap.String("model", modelName),
			zap.Int("step", i+1),
			zap.Int("total", len(models)))

		if err := db.AutoMigrate(model); err != nil {
			log.Error("failed to migrate model",
				zap.String("model", modelName),
				zap.Error(err))
			return fmt.Errorf("failed to migrate model %s: %w", modelName, err)
		}
	}

	for _, stmt := range dialectStatements(db.Dialector.Name()) {
		if err := db.Exec(stmt).Error; err != nil {
			log.Error("failed to apply dialect migration", zap.String("statement", stmt), zap.Error(err))
			return fmt.Errorf("failed to apply dialect migration: %w", err)
		}
	}

	log.Info("database auto-migration completed successfully", zap.Int("migrated_models", len(models)))
	return nil
}
