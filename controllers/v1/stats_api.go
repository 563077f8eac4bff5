package apiv1

import (
	"attendance-backend/controllers"
	requeststats "attendance-backend/lib/request/stats"
	"attendance-backend/models"
	apimodels "attendance-backend/models/api"

	"github.com/gofiber/fiber/v2"
)

type statsApiController struct {
	controllers.BaseAPIController
}

func InitStatsApiRouters(app *fiber.App) {
	controller := statsApiController{}
	app.Route("stats", func(router fiber.Router) {
		router.Get("status", controller.statusStats)
		router.Get("work-mode", controller.workModeStats)
		router.Get("pending/:kind", controller.pendingByKind)
	})
}

// @Summary Request counts by status
// @Tags Statistics
// @Description Request counts by status
// @Param   Authorization		header		string	true	"Authorization token"
// @Success 200 {object} apimodels.Response{data=requestapimodels.StatusStatsView}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/review/stats/status [get]
func (c *statsApiController) statusStats(ctx *fiber.Ctx) error {
	resp, err := requeststats.Instance.StatusStats(ctx.UserContext())
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "status stats failed")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(resp))
}

// @Summary Requested work mode distribution
// @Tags Statistics
// @Description Requested work mode distribution over change requests
// @Param   Authorization		header		string	true	"Authorization token"
// @Success 200 {object} apimodels.Response{data=requestapimodels.WorkModeStatsView}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/review/stats/work-mode [get]
func (c *statsApiController) workModeStats(ctx *fiber.Ctx) error {
	resp, err := requeststats.Instance.WorkModeStats(ctx.UserContext())
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "work mode stats failed")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(resp))
}

// @Summary Pending requests by kind
// @Tags Statistics
// @Description Pending requests of one kind, newest first
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   kind          		path    string  	true	"request kind"
// @Success 200 {object} apimodels.Response{data=[]requestapimodels.RequestView}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/review/stats/pending/{kind} [get]
func (c *statsApiController) pendingByKind(ctx *fiber.Ctx) error {
	kind := models.RequestKind(ctx.Params("kind"))
	resp, err := requeststats.Instance.PendingByKind(ctx.UserContext(), kind)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "pending list failed")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(resp))
}
