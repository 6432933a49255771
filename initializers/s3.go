package initializers

import (
	"context"

	log "github.com/sirupsen/logrus"

	"job-application-backend/config"
	s3client "job-application-backend/s3"
)

// InitS3 вызывается только когда файловое хранилище настроено на s3
func InitS3() {
	minioClient, err := s3client.NewClient()
	if err != nil {
		log.WithError(err).Error("ошибка инициализации клиента S3")
		return
	}

	// Проверка соединения
	_, err = minioClient.ListBuckets(context.Background())
	if err != nil {
		log.WithError(err).
			WithField("endpoint", config.Conf.S3.Endpoint).
			Error("S3 соединение не удалось")
	}

	s3client.Client = minioClient
	log.Info("S3 клиент успешно инициализирован")
}
