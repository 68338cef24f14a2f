package database

import (
	"log"
	"os"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/totegamma/sendlog/internal/infra/database/models"
)

func newGormLogger() logger.Interface {
	return logger.New(
		log.New(os.Stdout, "\r\n", log.LstdFlags),
		logger.Config{
			SlowThreshold:             300 * time.Millisecond,
			LogLevel:                  logger.Warn,
			IgnoreRecordNotFoundError: true,
			Colorful:                  true,
		},
	)
}

// NewGormConfig is shared by the postgres connection and the sqlite test databases
// so both translate driver errors into gorm.ErrDuplicatedKey and friends.
func NewGormConfig() *gorm.Config {
	return &gorm.Config{
		TranslateError: true,
		Logger:         newGormLogger(),
	}
}

func NewPostgres(dsn string) (*gorm.DB, error) {
	return gorm.Open(postgres.Open(dsn), NewGormConfig())
}

func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.Climber{},
		&models.Company{},
		&models.Gym{},
		&models.Location{},
		&models.Colour{},
		&models.GradeSystem{},
		&models.Grade{},
		&models.Mode{},
		&models.Result{},
		&models.Route{},
		&models.Attempt{},
	)
}
