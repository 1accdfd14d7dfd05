package main

import (
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/joho/godotenv"

	"loyalty/config"
	"loyalty/controllers/ton"
	"loyalty/controllers/transaction"
	"loyalty/database"
	"loyalty/providers/tonapi"
	"loyalty/routes"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using process environment")
	}

	cfg := config.Load()
	database.Connect()

	transaction.Configure(cfg)
	ton.Configure(cfg, tonapi.NewClient(cfg.TonAPIBaseURL, cfg.TonAPIKey))

	app := fiber.New()
	app.Use(cors.New())
	routes.Setup(app, cfg)

	addr := fmt.Sprintf("%s:%s", cfg.Host, cfg.Port)
	log.Println("Server running at", addr)

	go func() {
		if err := app.Listen(addr); err != nil {
			log.Panicf("Failed to start server: %v", err)
		}
	}()

	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)
	<-c

	log.Println("Gracefully shutting down...")
	if err := app.Shutdown(); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}
	log.Println("Server exited cleanly")
}
