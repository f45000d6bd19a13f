// Package sqlite implements repository.NFTRepository on an embedded SQLite file.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	msqlite "modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"

	"dognft/internal/model"
	"dognft/internal/repository"
)

const nftColumns = `id, name, description, dog_key, wallet_address, attributes, status, progress, image_url, contract_address, token_id, created_at, minted_at`

// NFTSQLite stores NFT records in SQLite through database/sql.
type NFTSQLite struct {
	db *sql.DB
}

// NewNFTSQLite creates a new NFTSQLite repository.
func NewNFTSQLite(db *sql.DB) *NFTSQLite {
	return &NFTSQLite{db: db}
}

var _ repository.NFTRepository = (*NFTSQLite)(nil)

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

// Create inserts the row, then reads it back so DATETIME columns come out parsed.
func (r *NFTSQLite) Create(ctx context.Context, nft *model.NFT) (*model.NFT, error) {
	const q = `
		INSERT INTO nfts (` + nftColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`
	_, err := r.db.ExecContext(ctx, q,
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
	if err != nil {
		if isDogKeyViolation(err) {
			return nil, repository.ErrDuplicateKey
		}
		return nil, err
	}

	const sel = `SELECT ` + nftColumns + ` FROM nfts WHERE id = ?`
	return scanNFT(r.db.QueryRowContext(ctx, sel, nft.ID))
}

func (r *NFTSQLite) ExistsByName(ctx context.Context, name string) (bool, error) {
	return r.exists(ctx, `SELECT EXISTS (SELECT 1 FROM nfts WHERE name = ?)`, name)
}

func (r *NFTSQLite) ExistsByDogKey(ctx context.Context, dogKey string) (bool, error) {
	return r.exists(ctx, `SELECT EXISTS (SELECT 1 FROM nfts WHERE dog_key = ?)`, dogKey)
}

func (r *NFTSQLite) exists(ctx context.Context, q string, arg string) (bool, error) {
	var exists bool
	if err := r.db.QueryRowContext(ctx, q, arg).Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}

func (r *NFTSQLite) FindByIDAndOwner(ctx context.Context, id, walletAddress string) (*model.NFT, error) {
	const q = `SELECT ` + nftColumns + ` FROM nfts WHERE id = ? AND wallet_address = ?`
	return scanNFT(r.db.QueryRowContext(ctx, q, id, walletAddress))
}

func (r *NFTSQLite) UpdateProgress(ctx context.Context, next *model.NFT, fromProgress int) (bool, error) {
	const q = `
		UPDATE nfts
		SET status = ?, progress = ?, image_url = ?
		WHERE id = ? AND progress = ? AND status = 'generating'
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

// ListByOwner returns the wallet's records in rowid (insertion) order.
func (r *NFTSQLite) ListByOwner(ctx context.Context, walletAddress string) ([]model.NFT, error) {
	const q = `SELECT ` + nftColumns + ` FROM nfts WHERE wallet_address = ? ORDER BY rowid`
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
	var se *msqlite.Error
	if !errors.As(err, &se) {
		return false
	}
	return se.Code() == sqlite3.SQLITE_CONSTRAINT_UNIQUE && strings.Contains(se.Error(), "nfts.dog_key")
}
