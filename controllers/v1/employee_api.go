package apiv1

import (
	"attendance-backend/controllers"
	employeehandler "attendance-backend/lib/employee"
	apimodels "attendance-backend/models/api"

	"github.com/gofiber/fiber/v2"
)

type employeeApiController struct {
	controllers.BaseAPIController
}

func InitEmployeeApiRouters(app *fiber.App) {
	controller := employeeApiController{}
	app.Route("employee", func(router fiber.Router) {
		router.Get("", controller.list)
		router.Get(":username", controller.get)
	})
}

// @Summary Employee list
// @Tags Employees
// @Description Employee list from the identity directory
// @Param   Authorization		header		string	true	"Authorization token"
// @Success 200 {object} apimodels.Response{data=[]identityapimodels.UserDoc}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/review/employee [get]
func (c *employeeApiController) list(ctx *fiber.Ctx) error {
	resp, err := employeehandler.Instance.List(ctx.UserContext())
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "employee listing failed")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(resp))
}

// @Summary Employee details
// @Tags Employees
// @Description Employee details by username
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   username       		path    string  	true	"username"
// @Success 200 {object} apimodels.Response{data=identityapimodels.UserDoc}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 404 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/review/employee/{username} [get]
func (c *employeeApiController) get(ctx *fiber.Ctx) error {
	username := ctx.Params("username")
	if username == "" {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError("username is required"))
	}
	resp, err := employeehandler.Instance.GetByUsername(ctx.UserContext(), username)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "employee fetch failed")
	}
	if resp == nil {
		return ctx.Status(fiber.StatusNotFound).JSON(apimodels.NewError("employee not found"))
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(resp))
}
