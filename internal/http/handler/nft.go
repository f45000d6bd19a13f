package handler

import (
	"errors"
	"time"

	validatorv10 "github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"dognft/internal/logger"
	"dognft/internal/model"
	"dognft/internal/service"
)

type checkNameRequest struct {
	Name          string `json:"name" validate:"required"`
	WalletAddress string `json:"walletAddress" validate:"required"`
}

type checkKeyRequest struct {
	DogKey        string `json:"dogKey" validate:"required"`
	WalletAddress string `json:"walletAddress" validate:"required"`
}

type generateRequest struct {
	Name          string            `json:"name" validate:"required"`
	Description   *string           `json:"description"`
	DogKey        string            `json:"dogKey" validate:"required"`
	WalletAddress string            `json:"walletAddress" validate:"required"`
	Attributes    []model.Attribute `json:"attributes"`
}

type generateResponse struct {
	model.NFT
	Message string `json:"message"`
}

type statusResponse struct {
	ID              string       `json:"id"`
	Status          model.Status `json:"status"`
	Progress        int          `json:"progress"`
	ImageURL        *string      `json:"imageUrl"`
	WalletAddress   string       `json:"walletAddress"`
	ContractAddress *string      `json:"contractAddress"`
	TokenID         *string      `json:"tokenId"`
	Message         string       `json:"message"`
}

type collectionResponse struct {
	NFTs []model.NFT `json:"nfts"`
}

// CheckName reports whether an NFT name is still free.
//
// @Summary  Check NFT name availability
// @Tags     nft
// @Accept   json
// @Produce  json
// @Param    body  body      checkNameRequest  true  "name to check"
// @Success  200   {object}  service.NameAvailability
// @Failure  400   {object}  errorPayload
// @Router   /api/nft/check-name [post]
func CheckName(svc service.NFTService, v *validatorv10.Validate, loc *time.Location) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req checkNameRequest
		if ok, err := bindAndValidate(c, &req, v); !ok {
			return err
		}

		res, err := svc.CheckName(c.UserContext(), req.Name)
		if err != nil {
			return internalError(c, loc, "check_name_failed", err)
		}
		return c.JSON(res)
	}
}

// CheckKey reports whether a dog key is unused.
//
// @Summary  Check dog key validity
// @Tags     nft
// @Accept   json
// @Produce  json
// @Param    body  body      checkKeyRequest  true  "dog key to check"
// @Success  200   {object}  service.KeyValidity
// @Failure  400   {object}  errorPayload
// @Router   /api/nft/check-key [post]
func CheckKey(svc service.NFTService, v *validatorv10.Validate, loc *time.Location) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req checkKeyRequest
		if ok, err := bindAndValidate(c, &req, v); !ok {
			return err
		}

		res, err := svc.CheckKey(c.UserContext(), req.DogKey)
		if err != nil {
			return internalError(c, loc, "check_key_failed", err)
		}
		return c.JSON(res)
	}
}

// GenerateNFT starts generation of a new NFT.
//
// @Summary  Generate NFT
// @Tags     nft
// @Accept   json
// @Produce  json
// @Param    body  body      generateRequest  true  "new NFT"
// @Success  200   {object}  generateResponse
// @Failure  400   {object}  errorPayload
// @Failure  500   {object}  errorPayload
// @Router   /api/nft/generate [post]
func GenerateNFT(svc service.NFTService, v *validatorv10.Validate, loc *time.Location) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req generateRequest
		if ok, err := bindAndValidate(c, &req, v); !ok {
			return err
		}

		nft, err := svc.Create(c.UserContext(), service.CreateInput{
			Name:          req.Name,
			Description:   req.Description,
			DogKey:        req.DogKey,
			WalletAddress: req.WalletAddress,
			Attributes:    req.Attributes,
		})
		if err != nil {
			switch {
			case errors.Is(err, service.ErrDuplicateKey):
				return writeError(c, fiber.StatusBadRequest, "DUPLICATE_KEY", "Dog key must be unique")
			case errors.Is(err, service.ErrWalletRequired):
				return writeValidationError(c, map[string]string{"walletAddress": "walletAddress is required"})
			default:
				return internalError(c, loc, "generate_failed", err)
			}
		}

		logger.Info(loc, "nft_generation_started", map[string]any{
			"request_id":     requestIDFromCtx(c),
			"nft_id":         nft.ID,
			"wallet_address": nft.WalletAddress,
		})
		return c.Status(fiber.StatusOK).JSON(generateResponse{NFT: *nft, Message: "NFT generation started"})
	}
}

// GetStatus advances generation by one step and returns the record status.
//
// @Summary  Get NFT status
// @Tags     nft
// @Produce  json
// @Param    id             path      string  true  "NFT id"
// @Param    walletAddress  query     string  true  "owner wallet"
// @Success  200            {object}  statusResponse
// @Failure  400            {object}  errorPayload
// @Failure  404            {object}  errorPayload
// @Router   /api/nft/status/{id} [get]
func GetStatus(svc service.NFTService, loc *time.Location) fiber.Handler {
	return func(c *fiber.Ctx) error {
		wallet := c.Query("walletAddress")
		if wallet == "" {
			return writeValidationError(c, map[string]string{"walletAddress": "walletAddress is required"})
		}

		nft, err := svc.AdvanceStatus(c.UserContext(), c.Params("id"), wallet)
		if err != nil {
			switch {
			case errors.Is(err, service.ErrNotFound):
				return writeError(c, fiber.StatusNotFound, "NFT_NOT_FOUND", "NFT not found")
			case errors.Is(err, service.ErrIDRequired):
				return writeValidationError(c, map[string]string{"id": "id is required"})
			default:
				return internalError(c, loc, "status_failed", err)
			}
		}

		return c.JSON(statusResponse{
			ID:              nft.ID,
			Status:          nft.Status,
			Progress:        nft.Progress,
			ImageURL:        nft.ImageURL,
			WalletAddress:   nft.WalletAddress,
			ContractAddress: nft.ContractAddress,
			TokenID:         nft.TokenID,
			Message:         "NFT status retrieved",
		})
	}
}

// GetCollection lists every NFT owned by a wallet.
//
// @Summary  List wallet collection
// @Tags     nft
// @Produce  json
// @Param    walletAddress  path      string  true  "owner wallet"
// @Success  200            {object}  collectionResponse
// @Failure  404            {object}  errorPayload
// @Router   /api/nft/collection/{walletAddress} [get]
func GetCollection(svc service.NFTService, loc *time.Location) fiber.Handler {
	return func(c *fiber.Ctx) error {
		items, err := svc.ListByOwner(c.UserContext(), c.Params("walletAddress"))
		if err != nil {
			switch {
			case errors.Is(err, service.ErrNoNFTs):
				return writeError(c, fiber.StatusNotFound, "NO_NFTS", "No NFTs found for this wallet")
			case errors.Is(err, service.ErrWalletRequired):
				return writeValidationError(c, map[string]string{"walletAddress": "walletAddress is required"})
			default:
				return internalError(c, loc, "collection_failed", err)
			}
		}
		return c.JSON(collectionResponse{NFTs: items})
	}
}

// internalError logs err with the request id and answers 500 without internal details.
func internalError(c *fiber.Ctx, loc *time.Location, event string, err error) error {
	logger.Error(loc, event, err, map[string]any{
		"request_id": requestIDFromCtx(c),
		"path":       c.Path(),
	})
	return writeError(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
}
