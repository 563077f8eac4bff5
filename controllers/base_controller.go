package controllers

import (
	"attendance-backend/models"
	apimodels "attendance-backend/models/api"

	"github.com/gofiber/fiber/v2"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

type BaseAPIController struct{}

func (c *BaseAPIController) BodyParser(ctx *fiber.Ctx, out interface{}) error {
	if err := ctx.BodyParser(out); err != nil {
		log.WithError(err).Error("request body parsing failed")
		return errors.New("could not read request data")
	}
	return nil
}

func (c *BaseAPIController) GetID(ctx *fiber.Ctx) (string, error) {
	id := ctx.Params("id")
	if id == "" {
		return "", errors.New("record id is required")
	}
	return id, nil
}

func (c *BaseAPIController) GetLogger(ctx *fiber.Ctx) *log.Entry {
	return log.
		WithField("method", ctx.Method()).
		WithField("path", ctx.Path())
}

// SendError maps workflow errors to HTTP statuses. Typed errors carry their
// own user-facing message, anything else gets the fallback and a 500.
func (c *BaseAPIController) SendError(ctx *fiber.Ctx, logger *log.Entry, err error, fallbackMsg string) error {
	var invalidInput models.InvalidInputError
	if errors.As(err, &invalidInput) {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(invalidInput.Error()))
	}
	if errors.Is(err, models.ErrUsernameTaken) || errors.Is(err, models.ErrDuplicateActiveRequest) {
		return ctx.Status(fiber.StatusConflict).JSON(apimodels.NewError(err.Error()))
	}
	if errors.Is(err, models.ErrRequestNotFound) {
		return ctx.Status(fiber.StatusNotFound).JSON(apimodels.NewError(err.Error()))
	}
	var alreadyResolved models.AlreadyResolvedError
	if errors.As(err, &alreadyResolved) {
		return ctx.Status(fiber.StatusConflict).JSON(apimodels.NewError(alreadyResolved.Error()))
	}
	var sideEffect models.SideEffectError
	if errors.As(err, &sideEffect) {
		return ctx.Status(fiber.StatusBadGateway).JSON(apimodels.NewError(sideEffect.Error()))
	}
	var directory models.DirectoryError
	if errors.As(err, &directory) {
		if directory.Kind == models.DirectoryErrUnavailable {
			return ctx.Status(fiber.StatusServiceUnavailable).JSON(apimodels.NewError(directory.Error()))
		}
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(directory.Error()))
	}
	logger.WithError(err).Error(fallbackMsg)
	return ctx.Status(fiber.StatusInternalServerError).JSON(apimodels.NewError(fallbackMsg))
}
