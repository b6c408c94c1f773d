package main

import (
	"context"
	"log"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"github.com/ready-network/prepguide/internal/api"
	"github.com/ready-network/prepguide/internal/config"
	"github.com/ready-network/prepguide/internal/guide"
	"github.com/ready-network/prepguide/internal/llm"
	"github.com/ready-network/prepguide/internal/logging"
	"github.com/ready-network/prepguide/internal/notify"
	"github.com/ready-network/prepguide/internal/profile"
	"github.com/ready-network/prepguide/internal/sitecontext"
)

func main() {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	cfg := config.Load()
	logger := logging.New(cfg.LogLevel)
	schema := profile.ByName(cfg.IntakeSchema)

	ctx := context.Background()

	var completer llm.Completer
	if cfg.GeminiAPIKey != "" {
		client, err := llm.NewGeminiClient(ctx, cfg.GeminiAPIKey, cfg.GeminiModel)
		if err != nil {
			log.Fatalf("Failed to create completion client: %v", err)
		}
		defer client.Close()
		completer = client
	} else {
		logger.Warn("GEMINI_API_KEY not set, chat replies fall back to canned questions")
	}

	sender := buildSender(cfg, logger)
	fetcher := sitecontext.NewFetcher(cfg.SiteContextURL, logger)
	composer := guide.NewComposer(completer, fetcher, logger)
	handler := api.NewHandler(schema, completer, composer, sender, logger)

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(api.RequestLogger(logger))
	router.Use(cors.Default())
	handler.Register(router)

	logger.Info("prepguide server starting",
		"port", cfg.Port,
		"schema", schema.Name,
		"delivery", cfg.DeliveryDriver,
	)

	if err := router.Run(":" + cfg.Port); err != nil {
		log.Fatalf("Server failed to start: %v", err)
	}
}

// buildSender picks the delivery backend from config, degrading to the stub
// when the chosen backend has no credentials.
func buildSender(cfg *config.Config, logger *logging.Logger) notify.Sender {
	switch cfg.DeliveryDriver {
	case config.DeliverySMTP:
		sender, err := notify.NewSMTPSender(notify.SMTPConfig{
			Host:      cfg.SMTPHost,
			Port:      cfg.SMTPPort,
			User:      cfg.SMTPUser,
			Password:  cfg.SMTPPassword,
			FromEmail: cfg.SMTPFromEmail,
		}, logger)
		if err != nil {
			log.Fatalf("Failed to create SMTP sender: %v", err)
		}
		if sender != nil {
			return sender
		}
		logger.Warn("smtp delivery not configured, guide emails are disabled")
	case config.DeliverySendGrid:
		if sender := notify.NewSendGridSender(notify.SendGridConfig{
			APIKey:    cfg.SendGridAPIKey,
			ListID:    cfg.SendGridListID,
			FromEmail: cfg.SendGridFromEmail,
			FromName:  cfg.SendGridFromName,
		}, logger); sender != nil {
			return sender
		}
		logger.Warn("sendgrid delivery not configured, guide emails are disabled")
	}
	return notify.NewStubSender(logger)
}
