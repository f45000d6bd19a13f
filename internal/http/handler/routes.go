package handler

import (
	"database/sql"
	"time"

	"github.com/gofiber/fiber/v2"

	"dognft/internal/service"
	"dognft/internal/storage"
)

// RegisterRoutes attaches the NFT API, health probes and root routes to app.
func RegisterRoutes(app *fiber.App, db *sql.DB, nftSvc service.NFTService, images storage.ImageLocator, loc *time.Location) {
	v := NewValidator()

	app.Get("/", Root())
	app.Get("/health", HealthCheck(db, images))
	app.Get("/healthz", LivenessProbe())

	api := app.Group("/api/nft")
	api.Post("/check-name", CheckName(nftSvc, v, loc))
	api.Post("/check-key", CheckKey(nftSvc, v, loc))
	api.Post("/generate", GenerateNFT(nftSvc, v, loc))
	api.Get("/status/:id", GetStatus(nftSvc, loc))
	api.Get("/collection/:walletAddress", GetCollection(nftSvc, loc))
}
