package apiv1

import (
	"attendance-backend/controllers"
	requesthandler "attendance-backend/lib/request"
	"attendance-backend/middleware"
	apimodels "attendance-backend/models/api"
	requestapimodels "attendance-backend/models/api/request"

	"github.com/gofiber/fiber/v2"
)

type workModeRequestApiController struct {
	controllers.BaseAPIController
}

// InitWorkModeRequestApiRouters registers the authenticated submission
// surface. An employee files a change for their own record.
func InitWorkModeRequestApiRouters(app *fiber.App) {
	controller := workModeRequestApiController{}
	app.Route("work_mode_request", func(router fiber.Router) {
		router.Post("", controller.create)
	})
}

// @Summary Submit work mode change request
// @Tags Work mode requests
// @Description Submit a work mode change request for review
// @Param   Authorization		header		string	true	"Authorization token"
// @Param	body body	 requestapimodels.WorkModeChangeData	true	"request body"
// @Success 200 {object} apimodels.Response{data=string}
// @Failure 400 {object} apimodels.Response
// @Failure 409 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/work_mode_request [post]
func (c *workModeRequestApiController) create(ctx *fiber.Ctx) error {
	var payload requestapimodels.WorkModeChangeData
	if err := c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	// non-reviewers can only file for their own record
	if payload.EmployeeID == "" || !middleware.GetUserRole(ctx).CanReviewRequests() {
		payload.EmployeeID = middleware.GetUserID(ctx)
	}

	if err := payload.Validate(); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	id, err := requesthandler.Instance.SubmitWorkModeChange(ctx.UserContext(), payload)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "work mode request submission failed")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(id))
}
