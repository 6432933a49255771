package apiv1

import (
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"

	"job-application-backend/controllers"
	"job-application-backend/lib/candidate"
	xlsexport "job-application-backend/lib/export/xls"
	statushistoryhandler "job-application-backend/lib/status-history"
	"job-application-backend/middleware"
	apimodels "job-application-backend/models/api"
	candidateapimodels "job-application-backend/models/api/candidate"
)

type adminApiController struct {
	controllers.BaseAPIController
}

func InitAdminApiRouters(app *fiber.App) {
	controller := adminApiController{}
	app.Route("admin", func(router fiber.Router) {
		router.Use(middleware.AdminRequired())
		router.Route("candidates", func(candidateRouter fiber.Router) {
			candidateRouter.Get("", controller.list)
			candidateRouter.Get("export", controller.exportXls) // выгрузка списка в xlsx
			candidateRouter.Route(":id", func(idRouter fiber.Router) {
				idRouter.Get("", controller.get)
				idRouter.Patch("status", controller.changeStatus)
				idRouter.Get("download", controller.downloadResume)
				idRouter.Get("profile-pdf", controller.profilePdf)
			})
		})
	})
}

// @Summary Список кандидатов
// @Tags Админка
// @Description Список кандидатов с фильтрами и пагинацией
// @Param   X-ADMIN		header	string	true	"1"
// @Param   department	query	string	false	"Фильтр по отделу"
// @Param   status		query	string	false	"Фильтр по статусу"
// @Param   search		query	string	false	"Поиск по имени или email"
// @Param   page		query	int		false	"Страница"
// @Param   limit		query	int		false	"Записей на странице"
// @Success 200 {object} apimodels.ScrollerResponse{data=[]candidateapimodels.ListItemView}
// @Failure 400 {object} apimodels.Response
// @Failure 403 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/admin/candidates [get]
func (c *adminApiController) list(ctx *fiber.Ctx) error {
	var filter candidateapimodels.ListFilter
	if err := ctx.QueryParser(&filter); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError("не удалось получить параметры запроса"))
	}
	list, rowCount, err := candidate.Instance.List(filter)
	if err != nil {
		return c.SendError(ctx, err, "ошибка получения списка кандидатов")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewScrollerResponse(list, rowCount))
}

// @Summary Карточка кандидата
// @Tags Админка
// @Description Данные кандидата вместе с историей статусов
// @Param   X-ADMIN	header	string	true	"1"
// @Param   id		path	string	true	"ID кандидата"
// @Success 200 {object} apimodels.Response{data=candidateapimodels.DetailView}
// @Failure 400 {object} apimodels.Response
// @Failure 403 {object} apimodels.Response
// @Failure 404 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/admin/candidates/{id} [get]
func (c *adminApiController) get(ctx *fiber.Ctx) error {
	candidateID, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	view, err := candidate.Instance.GetDetail(candidateID)
	if err != nil {
		return c.SendError(ctx, err, "ошибка получения карточки кандидата")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(view))
}

// @Summary Смена статуса заявки
// @Tags Админка
// @Description Перевод заявки кандидата в новый статус с записью в историю
// @Param   X-ADMIN	header	string	true	"1"
// @Param   id		path	string	true	"ID кандидата"
// @Param	body	body	candidateapimodels.StatusUpdateRequest	true	"request body"
// @Success 200 {object} apimodels.Response{data=candidateapimodels.TransitionView}
// @Failure 400 {object} apimodels.Response
// @Failure 403 {object} apimodels.Response
// @Failure 404 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/admin/candidates/{id}/status [patch]
func (c *adminApiController) changeStatus(ctx *fiber.Ctx) error {
	candidateID, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	var payload candidateapimodels.StatusUpdateRequest
	if err := c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	view, err := statushistoryhandler.Instance.ChangeStatus(candidateID, payload)
	if err != nil {
		return c.SendError(ctx, err, "ошибка смены статуса заявки")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(view))
}

// @Summary Скачать резюме кандидата
// @Tags Админка
// @Description Файл резюме кандидата
// @Param   X-ADMIN	header	string	true	"1"
// @Param   id		path	string	true	"ID кандидата"
// @Success 200
// @Failure 400 {object} apimodels.Response
// @Failure 403 {object} apimodels.Response
// @Failure 404 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/admin/candidates/{id}/download [get]
func (c *adminApiController) downloadResume(ctx *fiber.Ctx) error {
	candidateID, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	body, fileName, contentType, err := candidate.Instance.GetResumeFile(ctx.UserContext(), candidateID)
	if err != nil {
		return c.SendError(ctx, err, "ошибка скачивания резюме")
	}
	ctx.Set(fiber.HeaderContentType, contentType)
	ctx.Set(fiber.HeaderContentDisposition, `attachment; filename="`+fileName+`"`)
	return ctx.Send(body)
}

// @Summary Выгрузка списка кандидатов в Excel
// @Tags Админка
// @Description Список кандидатов с учетом фильтров в формате xlsx
// @Param   X-ADMIN		header	string	true	"1"
// @Param   department	query	string	false	"Фильтр по отделу"
// @Param   status		query	string	false	"Фильтр по статусу"
// @Param   search		query	string	false	"Поиск по имени или email"
// @Success 200
// @Failure 400 {object} apimodels.Response
// @Failure 403 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/admin/candidates/export [get]
func (c *adminApiController) exportXls(ctx *fiber.Ctx) error {
	var filter candidateapimodels.ListFilter
	if err := ctx.QueryParser(&filter); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError("не удалось получить параметры запроса"))
	}
	list, err := candidate.Instance.ListAll(filter)
	if err != nil {
		return c.SendError(ctx, err, "ошибка получения кандидатов для выгрузки в Excel")
	}
	data, err := xlsexport.Instance.ExportCandidateList(list)
	if err != nil {
		return c.SendError(ctx, err, "ошибка формирования выгрузки в Excel")
	}
	fileName := fmt.Sprintf("candidates-%v.xlsx", time.Now().Format("20060102-150405"))
	ctx.Set(fiber.HeaderContentType, "application/vnd.ms-excel")
	ctx.Set(fiber.HeaderContentDisposition, `attachment; filename="`+fileName+`"`)
	return ctx.SendStream(data)
}

// @Summary Профиль кандидата в PDF
// @Tags Админка
// @Description Сводный профиль кандидата с историей статусов в формате pdf
// @Param   X-ADMIN	header	string	true	"1"
// @Param   id		path	string	true	"ID кандидата"
// @Success 200
// @Failure 400 {object} apimodels.Response
// @Failure 403 {object} apimodels.Response
// @Failure 404 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/admin/candidates/{id}/profile-pdf [get]
func (c *adminApiController) profilePdf(ctx *fiber.Ctx) error {
	candidateID, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	pdfFile, err := candidate.Instance.GenerateProfilePDF(candidateID)
	if err != nil {
		return c.SendError(ctx, err, "ошибка формирования профиля кандидата в pdf")
	}
	fileName := fmt.Sprintf("candidate-profile-%v.pdf", candidateID)
	ctx.Set(fiber.HeaderContentType, "application/pdf")
	ctx.Set(fiber.HeaderContentDisposition, `attachment; filename="`+fileName+`"`)
	return ctx.Send(pdfFile)
}
