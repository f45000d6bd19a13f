package postgres

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jackc/pgx/v5/pgconn"

	"dognft/internal/model"
	"dognft/internal/repository"
)

const (
	uniqueViolation  = "23505"
	dogKeyConstraint = "uq_nfts_dog_key"
	nftColumns       = `id, name, description, dog_key, wallet_address, attributes, status, progress, image_url, contract_address, token_id, created_at, minted_at`
)

// NFTPostgres is a PostgreSQL implementation of repository.NFTRepository.
// It uses database/sql with parameterized queries and contains no business logic.
type NFTPostgres struct {
	db *sql.DB
}

// NewNFTPostgres creates a new NFTPostgres repository.
func NewNFTPostgres(db *sql.DB) *NFTPostgres {
	return &NFTPostgres{db: db}
}

var _ repository.NFTRepository = (*NFTPostgres)(nil)

type rowScanner interface {
	Scan(dest ...any) error
}

func scanNFT(row rowScanner) (*model.NFT, error) {
	var n model.NFT
	if err := row.Scan(
		&n.ID,
		&n.Name,
		&n.Description,
		&n.DogKey,
		&n.WalletAddress,
		&n.Attributes,
		&n.Status,
		&n.Progress,
		&n.ImageURL,
		&n.ContractAddress,
		&n.TokenID,
		&n.CreatedAt,
		&n.MintedAt,
	); err != nil {
		return nil, err
	}
	return &n, nil
}

// Create inserts a new NFT row and returns the stored record.
func (r *NFTPostgres) Create(ctx context.Context, nft *model.NFT) (*model.NFT, error) {
	const q = `
		INSERT INTO nfts (` + nftColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		RETURNING ` + nftColumns
	row := r.db.QueryRowContext(ctx, q,
		nft.ID,
		nft.Name,
		nft.Description,
		nft.DogKey,
		nft.WalletAddress,
		nft.Attributes,
		string(nft.Status),
		nft.Progress,
		nft.ImageURL,
		nft.ContractAddress,
		nft.TokenID,
		nft.CreatedAt,
		nft.MintedAt,
	)
	out, err := scanNFT(row)
	if err != nil {
		if isDogKeyViolation(err) {
			return nil, repository.ErrDuplicateKey
		}
		return nil, err
	}
	return out, nil
}

// ExistsByName reports whether a row with the exact name exists.
func (r *NFTPostgres) ExistsByName(ctx context.Context, name string) (bool, error) {
	const q = `SELECT EXISTS (SELECT 1 FROM nfts WHERE name = $1)`
	var exists bool
	if err := r.db.QueryRowContext(ctx, q, name).Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}

// ExistsByDogKey reports whether a row with the exact dog key exists.
func (r *NFTPostgres) ExistsByDogKey(ctx context.Context, dogKey string) (bool, error) {
	const q = `SELECT EXISTS (SELECT 1 FROM nfts WHERE dog_key = $1)`
	var exists bool
	if err := r.db.QueryRowContext(ctx, q, dogKey).Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}

// FindByIDAndOwner fetches a single NFT owned by walletAddress.
func (r *NFTPostgres) FindByIDAndOwner(ctx context.Context, id, walletAddress string) (*model.NFT, error) {
	const q = `
		SELECT ` + nftColumns + `
		FROM nfts
		WHERE id = $1 AND wallet_address = $2
	`
	return scanNFT(r.db.QueryRowContext(ctx, q, id, walletAddress))
}

// UpdateProgress is a compare-and-swap on (id, progress, status = generating).
func (r *NFTPostgres) UpdateProgress(ctx context.Context, next *model.NFT, fromProgress int) (bool, error) {
	const q = `
		UPDATE nfts
		SET status = $1, progress = $2, image_url = $3
		WHERE id = $4 AND progress = $5 AND status = 'generating'
	`
	res, err := r.db.ExecContext(ctx, q, string(next.Status), next.Progress, next.ImageURL, next.ID, fromProgress)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n == 1, nil
}

// ListByOwner returns the wallet's records oldest first.
func (r *NFTPostgres) ListByOwner(ctx context.Context, walletAddress string) ([]model.NFT, error) {
	const q = `
		SELECT ` + nftColumns + `
		FROM nfts
		WHERE wallet_address = $1
		ORDER BY created_at ASC, id ASC
	`
	rows, err := r.db.QueryContext(ctx, q, walletAddress)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]model.NFT, 0)
	for rows.Next() {
		n, err := scanNFT(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, *n)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

func isDogKeyViolation(err error) bool {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return false
	}
	return pgErr.Code == uniqueViolation && pgErr.ConstraintName == dogKeyConstraint
}
