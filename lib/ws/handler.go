package ws

import (
	"context"
	"strconv"

	requesthandler "attendance-backend/lib/request"
	wsclient "attendance-backend/lib/ws/client"
	connectionhub "attendance-backend/lib/ws/hub/connection-hub"
	"attendance-backend/middleware"

	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	log "github.com/sirupsen/logrus"
)

func InitWs(app *fiber.App) {
	app.Use("", func(ctx *fiber.Ctx) error {
		userID := middleware.GetUserID(ctx)
		ctx.Locals("userID", userID)
		return ctx.Next()
	})
	app.Get("/", websocket.New(pushHandler))
}

// @Summary System pushes
// @Tags Websocket system pushes
// @Description Pending request counter pushes for reviewers
// @Param   Authorization		header		string		true		"Authorization token"
// @Success 200 {object} wsmodels.ServerMessage
// @Failure 400
// @Failure 403
// @Failure 500
// @router /ws [get]
func pushHandler(c *websocket.Conn) {
	userID := c.Locals("userID").(string)
	client := wsclient.NewClient(userID, c)
	connectionhub.Instance.AddClient(userID, c)
	defer func() {
		connectionhub.Instance.DeleteClient(userID)
	}()
	go sendInitialCount(userID)
	client.Dispatch()
}

// sendInitialCount pushes the current counter right after connect, so the
// reviewer badge is correct before the first workflow event.
func sendInitialCount(userID string) {
	count, err := requesthandler.Instance.PendingCount(context.Background())
	if err != nil {
		log.WithError(err).Error("pending count refresh failed")
		return
	}
	msg := connectionhub.PendingCountMessage(strconv.Itoa(count))
	msg.ToUserID = userID
	connectionhub.Instance.SendMessage(msg)
}
