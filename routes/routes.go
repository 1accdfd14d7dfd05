package routes

import (
	"github.com/gofiber/fiber/v2"

	"loyalty/config"
	"loyalty/controllers/ambassador"
	"loyalty/controllers/client"
	"loyalty/controllers/partner"
	"loyalty/controllers/promotion"
	"loyalty/controllers/ton"
	"loyalty/controllers/transaction"
	"loyalty/middlewares"
)

func Setup(app *fiber.App, cfg config.Config) {
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	app.Get("/clients/:id/balance", client.Balance)
	app.Get("/clients/:id/transactions", client.Transactions)
	app.Post("/transactions", transaction.Create)

	app.Get("/partners/:id/cashback-stats", partner.CashbackStats)

	api := app.Group("/api")
	api.Post("/redeem-promotion", promotion.Redeem)
	api.Post("/ambassador/can-add-partner", ambassador.CanAddPartner)
	api.Post("/ambassador/add-partner", ambassador.AddPartner)

	tonroutes := api.Group("/ton")
	tonroutes.Get("/deposit-info", ton.DepositInfo)
	tonroutes.Post("/webhook", middlewares.TonWebhookAuth(cfg.TonWebhookSecret), ton.Webhook)
}
