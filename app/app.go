package app

import (
	"fmt"

	"ltptracker"
	"ltptracker/app/handler"
	"ltptracker/app/middleware"

	"github.com/gofiber/fiber/v2"
)

// Run serves the local status app the Telegram bot forwards slash-commands
// to. Blocks on Listen.
func Run(port int, passkey string, tracker *ltptracker.Tracker, poller *ltptracker.Poller) {

	app := fiber.New()

	middleware.SetupMiddleware(app, passkey)

	handler.NewQuoteHandler(tracker, poller).InitRoute(app)

	app.Listen(fmt.Sprintf(":%d", port))
}
