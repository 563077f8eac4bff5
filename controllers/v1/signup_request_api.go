package apiv1

import (
	"attendance-backend/controllers"
	requesthandler "attendance-backend/lib/request"
	apimodels "attendance-backend/models/api"
	requestapimodels "attendance-backend/models/api/request"

	"github.com/gofiber/fiber/v2"
)

type signupRequestApiController struct {
	controllers.BaseAPIController
}

// InitSignupRequestApiRouters registers the public submission surface.
// Signup requests come from people who do not have an account yet.
func InitSignupRequestApiRouters(app *fiber.App) {
	controller := signupRequestApiController{}
	app.Route("signup_request", func(router fiber.Router) {
		router.Post("", controller.create)
	})
}

// @Summary Submit signup request
// @Tags Signup requests
// @Description Submit an account signup request for review
// @Param	body body	 requestapimodels.SignupData	true	"request body"
// @Success 200 {object} apimodels.Response{data=string}
// @Failure 400 {object} apimodels.Response
// @Failure 409 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/signup_request [post]
func (c *signupRequestApiController) create(ctx *fiber.Ctx) error {
	var payload requestapimodels.SignupData
	if err := c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}

	if err := payload.Validate(); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	id, err := requesthandler.Instance.SubmitSignup(ctx.UserContext(), payload)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "signup request submission failed")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(id))
}
