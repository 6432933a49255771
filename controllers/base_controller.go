package controllers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"

	"job-application-backend/models"
	apimodels "job-application-backend/models/api"
)

type BaseAPIController struct{}

func (c *BaseAPIController) BodyParser(ctx *fiber.Ctx, out interface{}) error {
	if err := ctx.BodyParser(out); err != nil {
		log.WithError(err).Error("ошибка распознавания запроса")
		return errors.New("не удалось получить данные из запроса")
	}
	return nil
}

func (c *BaseAPIController) GetID(ctx *fiber.Ctx) (string, error) {
	id := ctx.Params("id")
	if id == "" {
		return "", errors.New("не указан идентификатор записи")
	}
	if _, err := uuid.Parse(id); err != nil {
		return "", errors.New("некорректный идентификатор записи")
	}
	return id, nil
}

// SendError - единое преобразование ошибок обработчиков в http-ответ.
// Ошибки валидации и отсутствия записи отдаются как есть,
// остальные скрываются за общим сообщением.
func (c *BaseAPIController) SendError(ctx *fiber.Ctx, err error, logMsg string) error {
	vErr := &models.ValidationError{}
	if errors.As(err, &vErr) {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewValidationError(vErr.Fields))
	}
	if errors.Is(err, models.ErrNotFound) {
		return ctx.Status(fiber.StatusNotFound).JSON(apimodels.NewError(models.ErrNotFound.Error()))
	}
	log.WithError(err).WithField("path", ctx.Path()).Error(logMsg)
	return ctx.Status(fiber.StatusInternalServerError).JSON(apimodels.NewError("операция не выполнена"))
}
