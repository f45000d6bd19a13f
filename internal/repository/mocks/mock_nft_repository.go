package mocks

import (
	"context"

	"dognft/internal/model"
	"github.com/stretchr/testify/mock"
)

type MockNFTRepository struct {
	mock.Mock
}

func (m *MockNFTRepository) Create(ctx context.Context, nft *model.NFT) (*model.NFT, error) {
	args := m.Called(ctx, nft)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.NFT), args.Error(1)
}

func (m *MockNFTRepository) ExistsByName(ctx context.Context, name string) (bool, error) {
	args := m.Called(ctx, name)
	return args.Bool(0), args.Error(1)
}

func (m *MockNFTRepository) ExistsByDogKey(ctx context.Context, dogKey string) (bool, error) {
	args := m.Called(ctx, dogKey)
	return args.Bool(0), args.Error(1)
}

func (m *MockNFTRepository) FindByIDAndOwner(ctx context.Context, id, walletAddress string) (*model.NFT, error) {
	args := m.Called(ctx, id, walletAddress)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.NFT), args.Error(1)
}

func (m *MockNFTRepository) UpdateProgress(ctx context.Context, next *model.NFT, fromProgress int) (bool, error) {
	args := m.Called(ctx, next, fromProgress)
	return args.Bool(0), args.Error(1)
}

func (m *MockNFTRepository) ListByOwner(ctx context.Context, walletAddress string) ([]model.NFT, error) {
	args := m.Called(ctx, walletAddress)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.NFT), args.Error(1)
}
