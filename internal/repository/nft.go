package repository

import (
	"context"
	"errors"

	"dognft/internal/model"
)

// ErrDuplicateKey is returned by Create when the store rejects a dog key that already exists.
var ErrDuplicateKey = errors.New("duplicate dog key")

// NFTRepository defines data access for NFT records using SQL queries only.
// No business logic here; strictly persistence operations.
// Lookups that find nothing return sql.ErrNoRows.
type NFTRepository interface {
	// Create inserts a new record and returns it as stored.
	// A unique violation on dog_key is reported as ErrDuplicateKey.
	Create(ctx context.Context, nft *model.NFT) (*model.NFT, error)

	// ExistsByName reports whether any record has exactly this name.
	ExistsByName(ctx context.Context, name string) (bool, error)

	// ExistsByDogKey reports whether any record has exactly this dog key.
	ExistsByDogKey(ctx context.Context, dogKey string) (bool, error)

	// FindByIDAndOwner returns the record matching both id and wallet address.
	FindByIDAndOwner(ctx context.Context, id, walletAddress string) (*model.NFT, error)

	// UpdateProgress writes status, progress and image URL of next only if the stored
	// record is still generating at fromProgress. It reports whether the row was updated.
	UpdateProgress(ctx context.Context, next *model.NFT, fromProgress int) (bool, error)

	// ListByOwner returns every record of walletAddress in insertion order.
	ListByOwner(ctx context.Context, walletAddress string) ([]model.NFT, error)
}
