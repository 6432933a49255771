package apiv1

import (
	"github.com/gofiber/fiber/v2"
	log "github.com/sirupsen/logrus"

	"job-application-backend/controllers"
	"job-application-backend/lib/candidate"
	resumevalidator "job-application-backend/lib/resume-validator"
	statushistoryhandler "job-application-backend/lib/status-history"
	apimodels "job-application-backend/models/api"
	candidateapimodels "job-application-backend/models/api/candidate"
)

type candidateApiController struct {
	controllers.BaseAPIController
}

func InitCandidateApiRouters(app *fiber.App) {
	controller := candidateApiController{}
	app.Route("candidates", func(router fiber.Router) {
		router.Post("register", controller.register)
		router.Get("status", controller.getStatusByEmail) // статус по email (?email=)
		router.Route(":id", func(idRouter fiber.Router) {
			idRouter.Get("status", controller.getStatus)
			idRouter.Get("history", controller.getHistory)
		})
	})
}

// @Summary Регистрация кандидата
// @Tags Кандидат
// @Description Подача заявки кандидатом: анкета и файл резюме
// @Accept multipart/form-data
// @Param   full_name			formData	string	true	"ФИО"
// @Param   email				formData	string	true	"Email"
// @Param   phone_number		formData	string	true	"Номер телефона"
// @Param   date_of_birth		formData	string	true	"Дата рождения (YYYY-MM-DD)"
// @Param   years_of_experience	formData	int		true	"Опыт работы в годах"
// @Param   department			formData	string	true	"Отдел (IT, HR, FINANCE)"
// @Param   resume				formData	file	true	"Файл резюме (PDF или DOCX)"
// @Success 201 {object} apimodels.Response{data=candidateapimodels.RegistrationView}
// @Failure 400 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/candidates/register [post]
func (c *candidateApiController) register(ctx *fiber.Ctx) error {
	var payload candidateapimodels.RegistrationData
	if err := c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}

	file, err := ctx.FormFile("resume")
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewValidationError(map[string]string{
			"resume": "файл резюме обязателен",
		}))
	}
	buffer, err := file.Open()
	if err != nil {
		log.WithError(err).Error("ошибка при получении файла резюме")
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError("не удалось прочитать файл резюме"))
	}
	defer buffer.Close()

	view, err := candidate.Instance.Register(ctx.UserContext(), payload, buffer, resumevalidator.FileInfo{
		Name: file.Filename,
		Size: file.Size,
	})
	if err != nil {
		return c.SendError(ctx, err, "ошибка регистрации кандидата")
	}
	return ctx.Status(fiber.StatusCreated).JSON(apimodels.NewResponse(view))
}

// @Summary Статус заявки кандидата
// @Tags Кандидат
// @Description Текущий статус заявки с последним комментарием
// @Param   id	path	string	true	"ID кандидата"
// @Success 200 {object} apimodels.Response{data=candidateapimodels.StatusView}
// @Failure 400 {object} apimodels.Response
// @Failure 404 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/candidates/{id}/status [get]
func (c *candidateApiController) getStatus(ctx *fiber.Ctx) error {
	candidateID, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	view, err := candidate.Instance.GetStatus(candidateID)
	if err != nil {
		return c.SendError(ctx, err, "ошибка получения статуса кандидата")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(view))
}

// @Summary Статус заявки кандидата по email
// @Tags Кандидат
// @Description Текущий статус заявки по адресу электронной почты
// @Param   email	query	string	true	"Email кандидата"
// @Success 200 {object} apimodels.Response{data=candidateapimodels.StatusView}
// @Failure 400 {object} apimodels.Response
// @Failure 404 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/candidates/status [get]
func (c *candidateApiController) getStatusByEmail(ctx *fiber.Ctx) error {
	email := ctx.Query("email")
	if email == "" {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewValidationError(map[string]string{
			"email": "не указан email",
		}))
	}
	view, err := candidate.Instance.GetStatusByEmail(email)
	if err != nil {
		return c.SendError(ctx, err, "ошибка получения статуса кандидата по email")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(view))
}

// @Summary История статусов заявки
// @Tags Кандидат
// @Description Полная история смен статуса, новые записи первыми
// @Param   id	path	string	true	"ID кандидата"
// @Success 200 {object} apimodels.Response{data=candidateapimodels.HistoryListView}
// @Failure 400 {object} apimodels.Response
// @Failure 404 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/candidates/{id}/history [get]
func (c *candidateApiController) getHistory(ctx *fiber.Ctx) error {
	candidateID, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	view, err := statushistoryhandler.Instance.List(candidateID)
	if err != nil {
		return c.SendError(ctx, err, "ошибка получения истории статусов")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(view))
}
