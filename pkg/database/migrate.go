package database

import (
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"go.uber.org/zap"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// migrationsTable 评估库的迁移版本表
const migrationsTable = "evaluation_schema_migrations"

// RunMigrations 应用评估库所有未执行的迁移，并记录当前版本对应的迁移名
func RunMigrations(db *sql.DB, logger *zap.Logger) error {
	source, err := iofs.New(migrationsFS, "migrations")
	if err != nil {
		return fmt.Errorf("加载迁移文件失败: %w", err)
	}

	driver, err := postgres.WithInstance(db, &postgres.Config{MigrationsTable: migrationsTable})
	if err != nil {
		return fmt.Errorf("创建迁移驱动失败: %w", err)
	}

	m, err := migrate.NewWithInstance("iofs", source, "postgres", driver)
	if err != nil {
		return fmt.Errorf("初始化迁移实例失败: %w", err)
	}

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("执行迁移失败: %w", err)
	}

	version, dirty, err := m.Version()
	if err != nil && !errors.Is(err, migrate.ErrNilVersion) {
		return fmt.Errorf("读取迁移版本失败: %w", err)
	}
	fields := []zap.Field{
		zap.Uint("version", version),
		zap.String("migration", migrationName(migrationsFS, version)),
	}
	if dirty {
		logger.Warn("数据库迁移处于 dirty 状态", fields...)
	} else {
		logger.Info("数据库迁移完成", fields...)
	}

	return nil
}

// migrationName 由版本号找到对应 up 迁移文件名中的描述部分，如 1 → "init_schema"
func migrationName(fsys fs.FS, version uint) string {
	entries, err := fs.ReadDir(fsys, "migrations")
	if err != nil {
		return ""
	}
	prefix := fmt.Sprintf("%06d_", version)
	for _, e := range entries {
		name := e.Name()
		if strings.HasPrefix(name, prefix) && strings.HasSuffix(name, ".up.sql") {
			return strings.TrimSuffix(strings.TrimPrefix(name, prefix), ".up.sql")
		}
	}
	return ""
}
