package db

import (
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"

	dbmodels "job-application-backend/models/db"
)

func AutoMigrateDB() error {
	DB.Exec("CREATE EXTENSION IF NOT EXISTS \"uuid-ossp\";")
	log.Info("Запуск миграций")
	if err := DB.AutoMigrate(&dbmodels.Candidate{}); err != nil {
		return errors.Wrap(err, "ошибка создания структуры Candidate")
	}
	if err := DB.AutoMigrate(&dbmodels.StatusHistory{}); err != nil {
		return errors.Wrap(err, "ошибка создания структуры StatusHistory")
	}
	if err := DB.AutoMigrate(&dbmodels.NotificationLog{}); err != nil {
		return errors.Wrap(err, "ошибка создания структуры NotificationLog")
	}
	log.Info("Миграция прошла успешно")
	return nil
}
