package persistence

import (
	"errors"

	"github.com/jackc/pgx/v5/stdlib"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// NewReportingDB opens a gorm handle that shares the pgx pool. Reports only
// read through it.
func NewReportingDB(pg *Postgres, logger *zap.Logger) (*gorm.DB, error) {
	if pg == nil || pg.Pool == nil {
		return nil, errors.New("postgres pool not configured")
	}
	sqlDB := stdlib.OpenDBFromPool(pg.Pool)
	db, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{
		Logger:                 gormlogger.Default.LogMode(gormlogger.Silent),
		SkipDefaultTransaction: true,
	})
	if err != nil {
		_ = sqlDB.Close()
		return nil, err
	}
	logger.Info("reporting projection ready")
	return db, nil
}
