package migrations

import (
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Migration struct {
	ID        uint      `gorm:"primaryKey"`
	Name      string    `gorm:"unique;not null"`
	Batch     int       `gorm:"not null"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
}

type MigrationFunc func(*gorm.DB) error

type MigrationDefinition struct {
	Name string
	Up   MigrationFunc
	Down MigrationFunc
}

type Migrator struct {
	db         *gorm.DB
	logger     *zap.SugaredLogger
	migrations []MigrationDefinition
}

func NewMigrator(db *gorm.DB, logger *zap.SugaredLogger) (*Migrator, error) {
	if err := db.AutoMigrate(&Migration{}); err != nil {
		return nil, fmt.Errorf("failed to create migrations table: %w", err)
	}
	return &Migrator{
		db:         db,
		logger:     logger,
		migrations: []MigrationDefinition{},
	}, nil
}

// NewCoreMigrator returns a migrator loaded with every schema migration.
func NewCoreMigrator(db *gorm.DB, logger *zap.SugaredLogger) (*Migrator, error) {
	m, err := NewMigrator(db, logger)
	if err != nil {
		return nil, err
	}
	for _, migration := range GetCoreMigrations() {
		m.AddMigration(migration)
	}
	return m, nil
}

func (m *Migrator) AddMigration(migration MigrationDefinition) {
	m.migrations = append(m.migrations, migration)
}

// Migrate runs pending migrations. Running it again is a no-op.
func (m *Migrator) Migrate() error {
	batch, err := m.getLatestBatch()
	if err != nil {
		return err
	}
	batch++

	for _, migration := range m.migrations {
		ran, err := m.hasRun(migration.Name)
		if err != nil {
			return err
		}
		if ran {
			continue
		}

		m.logger.Infof("Migrating: %s", migration.Name)

		err = m.db.Transaction(func(tx *gorm.DB) error {
			if err := migration.Up(tx); err != nil {
				return fmt.Errorf("migration %s failed: %w", migration.Name, err)
			}
			record := Migration{Name: migration.Name, Batch: batch}
			if err := tx.Create(&record).Error; err != nil {
				return fmt.Errorf("failed to record migration %s: %w", migration.Name, err)
			}
			return nil
		})
		if err != nil {
			return err
		}

		m.logger.Infof("Migrated: %s", migration.Name)
	}

	return nil
}

func (m *Migrator) Rollback(steps int) error {
	if steps <= 0 {
		steps = 1
	}

	batch, err := m.getLatestBatch()
	if err != nil {
		return err
	}

	for i := 0; i < steps && batch > 0; i++ {
		var toRollback []Migration
		if err := m.db.Where("batch = ?", batch).Order("id DESC").Find(&toRollback).Error; err != nil {
			return err
		}

		for _, record := range toRollback {
			migration := m.findMigration(record.Name)
			if migration == nil {
				return fmt.Errorf("migration definition not found: %s", record.Name)
			}
			if migration.Down == nil {
				return fmt.Errorf("rollback not defined for migration: %s", record.Name)
			}

			m.logger.Infof("Rolling back: %s", record.Name)

			err := m.db.Transaction(func(tx *gorm.DB) error {
				if err := migration.Down(tx); err != nil {
					return fmt.Errorf("rollback failed for %s: %w", record.Name, err)
				}
				if err := tx.Delete(&record).Error; err != nil {
					return fmt.Errorf("failed to remove migration record %s: %w", record.Name, err)
				}
				return nil
			})
			if err != nil {
				return err
			}

			m.logger.Infof("Rolled back: %s", record.Name)
		}

		batch--
	}

	return nil
}

// Reset drops every table the migrations manage and migrates again. Tables
// are dropped even when the migrations table has no record of them.
func (m *Migrator) Reset() error {
	err := m.db.Transaction(func(tx *gorm.DB) error {
		for i := len(m.migrations) - 1; i >= 0; i-- {
			migration := m.migrations[i]
			if migration.Down == nil {
				continue
			}
			m.logger.Infof("Dropping: %s", migration.Name)
			if err := migration.Down(tx); err != nil {
				return fmt.Errorf("reset failed for %s: %w", migration.Name, err)
			}
		}
		return tx.Where("1 = 1").Delete(&Migration{}).Error
	})
	if err != nil {
		return err
	}
	return m.Migrate()
}

// Status lists applied migrations in the order they ran.
func (m *Migrator) Status() ([]Migration, error) {
	var applied []Migration
	err := m.db.Order("batch ASC, id ASC").Find(&applied).Error
	return applied, err
}

func (m *Migrator) hasRun(name string) (bool, error) {
	var count int64
	err := m.db.Model(&Migration{}).Where("name = ?", name).Count(&count).Error
	return count > 0, err
}

func (m *Migrator) getLatestBatch() (int, error) {
	var migration Migration
	err := m.db.Order("batch DESC").First(&migration).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	return migration.Batch, nil
}

func (m *Migrator) findMigration(name string) *MigrationDefinition {
	for i := range m.migrations {
		if m.migrations[i].Name == name {
			return &m.migrations[i]
		}
	}
	return nil
}

// InitializeDatabase creates the schema if it is missing. With force, both
// tables are dropped and recreated first.
func InitializeDatabase(db *gorm.DB, logger *zap.SugaredLogger, force bool) error {
	m, err := NewCoreMigrator(db, logger)
	if err != nil {
		return err
	}
	if force {
		return m.Reset()
	}
	return m.Migrate()
}
