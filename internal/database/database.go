package database

import (
	"context"
	"log"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var DB *gorm.DB

func Connect(dsn string) {
	var err error
	DB, err = gorm.Open(postgres.New(postgres.Config{
		DSN:                  dsn,
		PreferSimpleProtocol: true,
	}), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
		// Les violations de contraintes deviennent gorm.ErrDuplicatedKey
		TranslateError: true,
	})
	if err != nil {
		log.Fatalf("Erreur de connexion à PostgreSQL: %v", err)
	}
}

// WithCtx retourne un handle lié au contexte de la requête, pour qu'une
// requête abandonnée libère son travail en cours
func WithCtx(ctx context.Context) *gorm.DB {
	return DB.WithContext(ctx)
}
