package apiv1

import (
	"attendance-backend/controllers"
	authhandler "attendance-backend/lib/auth"
	"attendance-backend/middleware"
	apimodels "attendance-backend/models/api"
	authapimodels "attendance-backend/models/api/auth"

	"github.com/gofiber/fiber/v2"
)

type authApiController struct {
	controllers.BaseAPIController
}

func InitAuthApiRouters(app *fiber.App) {
	controller := authApiController{}
	app.Route("auth", func(router fiber.Router) {
		router.Post("login", controller.login)
		router.Get("check-username/:username", controller.checkUsername)
		router.Use(middleware.AuthorizationRequired()).Get("me", controller.me)
	})
}

// @Summary User authentication
// @Tags User authentication
// @Description User authentication
// @Param	body				body		authapimodels.LoginData	true	"request body"
// @Success 200 {object} apimodels.Response{data=authapimodels.LoginResponse}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/auth/login [post]
func (c *authApiController) login(ctx *fiber.Ctx) error {
	var payload authapimodels.LoginData
	if err := c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}

	if err := payload.Validate(); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	resp, err := authhandler.Instance.Login(ctx.UserContext(), payload)
	if err != nil {
		return ctx.SendStatus(fiber.StatusUnauthorized)
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(resp))
}

// @Summary Username availability check
// @Tags User authentication
// @Description Username availability check against the identity directory
// @Param   username       		path    string  	true	"username"
// @Success 200 {object} apimodels.Response{data=authapimodels.UsernameCheckView}
// @Failure 400 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/auth/check-username/{username} [get]
func (c *authApiController) checkUsername(ctx *fiber.Ctx) error {
	username := ctx.Params("username")
	available, err := authhandler.Instance.CheckUsername(ctx.UserContext(), username)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "username check failed")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(authapimodels.UsernameCheckView{
		Username: username,
		Exists:   !available,
	}))
}

// @Summary Current user info
// @Tags User authentication
// @Description Current user info from the token claims
// @Param   Authorization		header		string	true	"Authorization token"
// @Success 200 {object} apimodels.Response{data=authapimodels.LoginResponse}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/auth/me [get]
func (c *authApiController) me(ctx *fiber.Ctx) error {
	resp := authapimodels.LoginResponse{
		Username: middleware.GetUserID(ctx),
		Name:     middleware.GetUserName(ctx),
		Role:     middleware.GetUserRole(ctx),
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(resp))
}
