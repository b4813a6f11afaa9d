package store

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"laboura/internal/models"
)

// currentRow holds the single persisted in-progress session. At most one
// row exists at a time.
type currentRow struct {
	ID      uint `gorm:"primaryKey"`
	Section string
	Sub     string
	StartTS float64
}

func (currentRow) TableName() string { return "current_session" }

// SQLiteStore persists the snapshot in a SQLite database instead of the
// JSON file. It implements the same contract: totals are still rebuilt from
// the stored sessions on every load.
type SQLiteStore struct {
	db  *gorm.DB
	log zerolog.Logger
}

// NewSQLiteStore opens (and migrates) the database at path.
func NewSQLiteStore(path string, log zerolog.Logger) (*SQLiteStore, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("create database directory: %w", err)
	}

	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	if err := db.AutoMigrate(&models.Session{}, &currentRow{}); err != nil {
		return nil, fmt.Errorf("migrate database: %w", err)
	}

	return &SQLiteStore{db: db, log: log.With().Str("component", "sqlite").Logger()}, nil
}

// Load reads every stored session plus the current row, backfills missing
// session ids and rebuilds the totals map.
func (s *SQLiteStore) Load() (models.Totals, *models.CurrentSession, []models.Session, error) {
	var sessions []models.Session
	if err := s.db.Order("rowid ASC").Find(&sessions).Error; err != nil {
		return nil, nil, nil, fmt.Errorf("load sessions: %w", err)
	}

	for i := range sessions {
		if sessions[i].ID == "" {
			sessions[i].ID = uuid.NewString()
		}
	}

	var current *models.CurrentSession
	var row currentRow
	if err := s.db.First(&row).Error; err == nil {
		current = &models.CurrentSession{Section: row.Section, Sub: row.Sub, StartTS: row.StartTS}
	}

	return models.RecalcTotals(sessions), current, sessions, nil
}

// Save replaces the stored snapshot wholesale inside one transaction,
// mirroring the overwrite semantics of the JSON store.
func (s *SQLiteStore) Save(totals models.Totals, current *models.CurrentSession, sessions []models.Session) error {
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(&models.Session{}).Error; err != nil {
			return err
		}
		if len(sessions) > 0 {
			if err := tx.Create(&sessions).Error; err != nil {
				return err
			}
		}
		if err := tx.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(&currentRow{}).Error; err != nil {
			return err
		}
		if current != nil {
			row := currentRow{Section: current.Section, Sub: current.Sub, StartTS: current.StartTS}
			if err := tx.Create(&row).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("save snapshot: %w", err)
	}
	return nil
}

// Close releases the underlying database handle.
func (s *SQLiteStore) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
