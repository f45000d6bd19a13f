package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"dognft/internal/model"
	"dognft/internal/repository"
	"dognft/internal/storage"
)

var (
	ErrIDRequired     = errors.New("id is required")
	ErrWalletRequired = errors.New("wallet address is required")
	ErrDuplicateKey   = errors.New("dog key must be unique")
	ErrNotFound       = errors.New("NFT not found")
	ErrNoNFTs         = errors.New("no NFTs found for this wallet")
)

const (
	// InitialProgress is the progress a record reports right after creation.
	InitialProgress = 50
	// ProgressStep is added on every status poll until MaxProgress.
	ProgressStep = 25

	idPrefix = "nft_"
)

// NameAvailability is the result of CheckName.
type NameAvailability struct {
	Available bool   `json:"available"`
	Message   string `json:"message"`
}

// KeyValidity is the result of CheckKey. Valid is always true; no format rule exists for dog keys.
type KeyValidity struct {
	Valid   bool   `json:"valid"`
	Unique  bool   `json:"unique"`
	Message string `json:"message"`
}

// CreateInput carries the caller-supplied fields of a new record.
type CreateInput struct {
	Name          string
	Description   *string
	DogKey        string
	WalletAddress string
	Attributes    model.Attributes
}

// NFTService defines the record lifecycle use cases.
type NFTService interface {
	// CheckName reports whether no record uses exactly this name. It never writes.
	CheckName(ctx context.Context, name string) (*NameAvailability, error)

	// CheckKey reports whether no record uses exactly this dog key. It never writes.
	CheckKey(ctx context.Context, dogKey string) (*KeyValidity, error)

	// Create stores a new generating record. Only the dog key is checked for uniqueness;
	// names are checked by CheckName alone, so two records may share a name.
	Create(ctx context.Context, in CreateInput) (*model.NFT, error)

	// AdvanceStatus moves a generating record one ProgressStep forward and returns it.
	// id and walletAddress must both match, otherwise ErrNotFound.
	AdvanceStatus(ctx context.Context, id, walletAddress string) (*model.NFT, error)

	// ListByOwner returns all records of a wallet, or ErrNoNFTs when there are none.
	ListByOwner(ctx context.Context, walletAddress string) ([]model.NFT, error)
}

// nftService is a concrete implementation of NFTService.
type nftService struct {
	repo   repository.NFTRepository
	images storage.ImageLocator
	tracer trace.Tracer
	now    func() time.Time
}

// NewNFTService constructs a new NFTService.
func NewNFTService(repo repository.NFTRepository, images storage.ImageLocator) NFTService {
	return &nftService{
		repo:   repo,
		images: images,
		tracer: otel.Tracer("dognft/internal/service"),
		now:    time.Now,
	}
}

func (s *nftService) CheckName(ctx context.Context, name string) (*NameAvailability, error) {
	ctx, span := s.tracer.Start(ctx, "NFTService.CheckName")
	defer span.End()

	taken, err := s.repo.ExistsByName(ctx, name)
	if err != nil {
		return nil, fail(span, fmt.Errorf("check name: %w", err))
	}
	if taken {
		return &NameAvailability{Available: false, Message: "NFT name is already taken"}, nil
	}
	return &NameAvailability{Available: true, Message: "NFT name is available"}, nil
}

func (s *nftService) CheckKey(ctx context.Context, dogKey string) (*KeyValidity, error) {
	ctx, span := s.tracer.Start(ctx, "NFTService.CheckKey")
	defer span.End()

	exists, err := s.repo.ExistsByDogKey(ctx, dogKey)
	if err != nil {
		return nil, fail(span, fmt.Errorf("check dog key: %w", err))
	}
	if exists {
		return &KeyValidity{Valid: true, Unique: false, Message: "Dog key is valid but not unique"}, nil
	}
	return &KeyValidity{Valid: true, Unique: true, Message: "Dog key is valid and unique"}, nil
}

func (s *nftService) Create(ctx context.Context, in CreateInput) (*model.NFT, error) {
	ctx, span := s.tracer.Start(ctx, "NFTService.Create",
		trace.WithAttributes(attribute.String("nft.wallet_address", in.WalletAddress)))
	defer span.End()

	if in.WalletAddress == "" {
		return nil, ErrWalletRequired
	}

	exists, err := s.repo.ExistsByDogKey(ctx, in.DogKey)
	if err != nil {
		return nil, fail(span, fmt.Errorf("check dog key: %w", err))
	}
	if exists {
		return nil, ErrDuplicateKey
	}

	// Generation is simulated: the record is born half done.
	nft := &model.NFT{
		ID:            idPrefix + uuid.NewString(),
		Name:          in.Name,
		Description:   in.Description,
		DogKey:        in.DogKey,
		WalletAddress: in.WalletAddress,
		Attributes:    in.Attributes,
		Status:        model.StatusGenerating,
		Progress:      InitialProgress,
		CreatedAt:     s.now().UTC(),
	}
	span.SetAttributes(attribute.String("nft.id", nft.ID))

	stored, err := s.repo.Create(ctx, nft)
	if err != nil {
		if errors.Is(err, repository.ErrDuplicateKey) {
			return nil, ErrDuplicateKey
		}
		return nil, fail(span, fmt.Errorf("db save failed: %w", err))
	}
	return stored, nil
}

func (s *nftService) AdvanceStatus(ctx context.Context, id, walletAddress string) (*model.NFT, error) {
	ctx, span := s.tracer.Start(ctx, "NFTService.AdvanceStatus",
		trace.WithAttributes(
			attribute.String("nft.id", id),
			attribute.String("nft.wallet_address", walletAddress),
		))
	defer span.End()

	if id == "" {
		return nil, ErrIDRequired
	}
	if walletAddress == "" {
		return nil, ErrWalletRequired
	}

	// Each lost swap means another poll already moved progress forward,
	// so the loop ends once the record is ready.
	for {
		cur, err := s.repo.FindByIDAndOwner(ctx, id, walletAddress)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return nil, ErrNotFound
			}
			return nil, fail(span, fmt.Errorf("find nft: %w", err))
		}
		if cur.Status != model.StatusGenerating {
			return cur, nil
		}

		next := advance(*cur, s.images.ImageURL(cur.ID))
		swapped, err := s.repo.UpdateProgress(ctx, &next, cur.Progress)
		if err != nil {
			return nil, fail(span, fmt.Errorf("update progress: %w", err))
		}
		if swapped {
			span.SetAttributes(attribute.Int("nft.progress", next.Progress))
			return &next, nil
		}
		span.AddEvent("progress_swap_lost", trace.WithAttributes(attribute.Int("nft.progress", cur.Progress)))
	}
}

func (s *nftService) ListByOwner(ctx context.Context, walletAddress string) ([]model.NFT, error) {
	ctx, span := s.tracer.Start(ctx, "NFTService.ListByOwner",
		trace.WithAttributes(attribute.String("nft.wallet_address", walletAddress)))
	defer span.End()

	if walletAddress == "" {
		return nil, ErrWalletRequired
	}

	items, err := s.repo.ListByOwner(ctx, walletAddress)
	if err != nil {
		return nil, fail(span, fmt.Errorf("list nfts: %w", err))
	}
	if len(items) == 0 {
		return nil, ErrNoNFTs
	}
	return items, nil
}

// advance returns n moved one step forward. Reaching MaxProgress makes it ready with imageURL.
func advance(n model.NFT, imageURL string) model.NFT {
	n.Progress = min(n.Progress+ProgressStep, model.MaxProgress)
	if n.Progress == model.MaxProgress {
		n.Status = model.StatusReady
		n.ImageURL = &imageURL
	}
	return n
}

func fail(span trace.Span, err error) error {
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
	return err
}
