package apiv1

import (
	"fmt"
	"time"

	"attendance-backend/controllers"
	xlsexport "attendance-backend/lib/export/xls"
	requesthandler "attendance-backend/lib/request"
	"attendance-backend/middleware"
	apimodels "attendance-backend/models/api"
	requestapimodels "attendance-backend/models/api/request"

	"github.com/gofiber/fiber/v2"
)

type requestReviewApiController struct {
	controllers.BaseAPIController
}

func InitRequestReviewApiRouters(app *fiber.App) {
	controller := requestReviewApiController{}
	app.Route("request", func(router fiber.Router) {
		router.Post("list", controller.list)
		router.Get("pending-count", controller.pendingCount)
		router.Put("export", controller.export)
		router.Route(":id", func(idRoute fiber.Router) {
			idRoute.Get("", controller.get)
			idRoute.Put("approve", controller.approve)
			idRoute.Put("reject", controller.reject)
		})
	})
}

// @Summary Request list
// @Tags Request review
// @Description Request list with status and kind filter
// @Param   Authorization		header		string	true	"Authorization token"
// @Param	body body	 requestapimodels.RequestFilter	true	"request body"
// @Success 200 {object} apimodels.ScrollerResponse{data=[]requestapimodels.RequestView}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/review/request/list [post]
func (c *requestReviewApiController) list(ctx *fiber.Ctx) error {
	var payload requestapimodels.RequestFilter
	if err := c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}

	if err := payload.Validate(); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	list, rowCount, err := requesthandler.Instance.List(ctx.UserContext(), payload)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "request listing failed")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewScrollerResponse(list, rowCount))
}

// @Summary Pending request counter
// @Tags Request review
// @Description Number of requests awaiting review
// @Param   Authorization		header		string	true	"Authorization token"
// @Success 200 {object} apimodels.Response{data=requestapimodels.PendingCountView}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/review/request/pending-count [get]
func (c *requestReviewApiController) pendingCount(ctx *fiber.Ctx) error {
	count, err := requesthandler.Instance.PendingCount(ctx.UserContext())
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "pending count failed")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(requestapimodels.PendingCountView{Count: count}))
}

// @Summary Request details
// @Tags Request review
// @Description Request details by id
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    string  	true	"rec ID"
// @Success 200 {object} apimodels.Response{data=requestapimodels.RequestView}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 404 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/review/request/{id} [get]
func (c *requestReviewApiController) get(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}

	resp, err := requesthandler.Instance.GetByID(ctx.UserContext(), id)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "request fetch failed")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(resp))
}

// @Summary Approve request
// @Tags Request review
// @Description Approve a pending request
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    string  	true	"rec ID"
// @Success 200 {object} apimodels.Response
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 404 {object} apimodels.Response
// @Failure 409 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/review/request/{id}/approve [put]
func (c *requestReviewApiController) approve(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}

	actor := middleware.GetUserID(ctx)
	err = requesthandler.Instance.Approve(ctx.UserContext(), id, actor)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "request approval failed")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(nil))
}

// @Summary Reject request
// @Tags Request review
// @Description Reject a pending request with a reason
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    string  	true	"rec ID"
// @Param	body body	 requestapimodels.ResolutionData	true	"request body"
// @Success 200 {object} apimodels.Response
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 404 {object} apimodels.Response
// @Failure 409 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/review/request/{id}/reject [put]
func (c *requestReviewApiController) reject(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}

	var payload requestapimodels.ResolutionData
	if err = c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}

	actor := middleware.GetUserID(ctx)
	err = requesthandler.Instance.Reject(ctx.UserContext(), id, actor, payload.Reason)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "request rejection failed")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(nil))
}

// @Summary Export requests to Excel
// @Tags Request review
// @Description Export the filtered request list to Excel
// @Param   Authorization		header	string	true	"Authorization token"
// @Param	body body	requestapimodels.RequestFilter	true	"request body"
// @Success 200
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/review/request/export [put]
func (c *requestReviewApiController) export(ctx *fiber.Ctx) error {
	var payload requestapimodels.RequestFilter
	if err := c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	if err := payload.Validate(); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}

	list, _, err := requesthandler.Instance.List(ctx.UserContext(), payload)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "request listing failed")
	}
	data, err := xlsexport.Instance.ExportRequestList(list)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "request export failed")
	}
	fileName := fmt.Sprintf("requests-%v.xlsx", time.Now().Format("20060102-150405"))
	ctx.Set("Content-Type", "application/vnd.ms-excel")
	ctx.Set(fiber.HeaderContentDisposition, `attachment; filename="`+fileName+`"`)
	return ctx.SendStream(data)
}
