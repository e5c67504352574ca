package database

import (
	"errors"
	"fmt"
	"log"
	"time"

	migrateV4 "github.com/golang-migrate/migrate/v4"
	migratePostgres "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	gormPostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// DefaultMigrationsSource - папка с SQL-миграциями в рабочем каталоге
const DefaultMigrationsSource = "file://migrations"

// NewPostgresDB создает новое подключение к PostgreSQL.
// debug включает логирование SQL-запросов.
func NewPostgresDB(dsn string, debug bool) (*gorm.DB, error) {
	logLevel := logger.Warn
	if debug {
		logLevel = logger.Info
	}

	db, err := gorm.Open(gormPostgres.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logLevel),
		TranslateError: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get sql.DB: %w", err)
	}
	sqlDB.SetMaxOpenConns(25)
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetConnMaxLifetime(time.Hour)

	return db, nil
}

func newMigrator(db *gorm.DB, source string) (*migrateV4.Migrate, error) {
	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("не удалось получить *sql.DB из *gorm.DB: %w", err)
	}
	if err := sqlDB.Ping(); err != nil {
		return nil, fmt.Errorf("не удалось проверить подключение к БД перед миграцией: %w", err)
	}

	driver, err := migratePostgres.WithInstance(sqlDB, &migratePostgres.Config{})
	if err != nil {
		return nil, fmt.Errorf("не удалось создать драйвер postgres для migrate: %w", err)
	}

	if source == "" {
		source = DefaultMigrationsSource
	}
	m, err := migrateV4.NewWithDatabaseInstance(source, "postgres", driver)
	if err != nil {
		return nil, fmt.Errorf("не удалось создать экземпляр migrate: %w", err)
	}
	return m, nil
}

// MigrateDB применяет SQL-миграции "вверх"
func MigrateDB(db *gorm.DB, source string) error {
	log.Println("Запуск применения миграций базы данных...")

	m, err := newMigrator(db, source)
	if err != nil {
		return err
	}

	err = m.Up()
	switch {
	case errors.Is(err, migrateV4.ErrNoChange):
		log.Println("Изменений в миграциях не найдено, база данных уже актуальна.")
	case err != nil:
		log.Printf("Ошибка применения миграций: %v", err)
		return fmt.Errorf("ошибка применения миграций 'up': %w", err)
	default:
		log.Println("Миграции успешно применены.")
	}
	return nil
}

// ForceMigrationVersion снимает флаг dirty, выставляя версию вручную
func ForceMigrationVersion(db *gorm.DB, source string, version int) error {
	m, err := newMigrator(db, source)
	if err != nil {
		return err
	}

	before, dirty, err := m.Version()
	if err != nil && !errors.Is(err, migrateV4.ErrNilVersion) {
		return fmt.Errorf("не удалось прочитать версию миграций: %w", err)
	}
	log.Printf("Текущая версия миграций: %d (dirty: %t), устанавливаем %d", before, dirty, version)

	if err := m.Force(version); err != nil {
		return fmt.Errorf("не удалось установить версию миграций %d: %w", version, err)
	}
	return nil
}
