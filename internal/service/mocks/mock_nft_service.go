package mocks

import (
	"context"

	"dognft/internal/model"
	"dognft/internal/service"
	"github.com/stretchr/testify/mock"
)

type MockNFTService struct {
	mock.Mock
}

func (m *MockNFTService) CheckName(ctx context.Context, name string) (*service.NameAvailability, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.NameAvailability), args.Error(1)
}

func (m *MockNFTService) CheckKey(ctx context.Context, dogKey string) (*service.KeyValidity, error) {
	args := m.Called(ctx, dogKey)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.KeyValidity), args.Error(1)
}

func (m *MockNFTService) Create(ctx context.Context, in service.CreateInput) (*model.NFT, error) {
	args := m.Called(ctx, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.NFT), args.Error(1)
}

func (m *MockNFTService) AdvanceStatus(ctx context.Context, id, walletAddress string) (*model.NFT, error) {
	args := m.Called(ctx, id, walletAddress)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.NFT), args.Error(1)
}

func (m *MockNFTService) ListByOwner(ctx context.Context, walletAddress string) ([]model.NFT, error) {
	args := m.Called(ctx, walletAddress)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.NFT), args.Error(1)
}
