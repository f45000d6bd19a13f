package model

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

// Status is the generation state of an NFT record.
type Status string

const (
	StatusGenerating Status = "generating"
	StatusReady      Status = "ready"
)

// MaxProgress is the progress value of a fully generated record.
const MaxProgress = 100

// NFT is the single record kept by the service.
// ContractAddress, TokenID and MintedAt are reserved for a minting phase and never set here.
type NFT struct {
	ID              string     `json:"id"`
	Name            string     `json:"name"`
	Description     *string    `json:"description"`
	DogKey          string     `json:"dogKey"`
	WalletAddress   string     `json:"walletAddress"`
	Attributes      Attributes `json:"attributes"`
	Status          Status     `json:"status"`
	Progress        int        `json:"progress"`
	ImageURL        *string    `json:"imageUrl"`
	ContractAddress *string    `json:"contractAddress"`
	TokenID         *string    `json:"tokenId"`
	CreatedAt       time.Time  `json:"createdAt"`
	MintedAt        *time.Time `json:"mintedAt"`
}

// Attribute is one trait pair attached to an NFT.
type Attribute struct {
	Type  string `json:"type"`
	Value string `json:"value"`
}

// Attributes is stored as a JSON document column. A nil slice maps to NULL.
type Attributes []Attribute

// Value implements driver.Valuer.
func (a Attributes) Value() (driver.Value, error) {
	if a == nil {
		return nil, nil
	}
	b, err := json.Marshal([]Attribute(a))
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

// Scan implements sql.Scanner.
func (a *Attributes) Scan(src any) error {
	var raw []byte
	switch v := src.(type) {
	case nil:
		*a = nil
		return nil
	case []byte:
		raw = v
	case string:
		raw = []byte(v)
	default:
		return fmt.Errorf("attributes: unsupported source type %T", src)
	}
	if len(raw) == 0 || string(raw) == "null" {
		*a = nil
		return nil
	}
	var out []Attribute
	if err := json.Unmarshal(raw, &out); err != nil {
		return fmt.Errorf("attributes: %w", err)
	}
	*a = out
	return nil
}
