package handler

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/osse101/FarmBot_Go/internal/domain"
	"github.com/osse101/FarmBot_Go/internal/farm"
	"github.com/osse101/FarmBot_Go/internal/identity"
)

type mockVerifier struct {
	mock.Mock
}

func (m *mockVerifier) Verify(raw string) (identity.VerifiedIdentity, error) {
	args := m.Called(raw)
	return args.Get(0).(identity.VerifiedIdentity), args.Error(1)
}

type mockGame struct {
	mock.Mock
}

func (m *mockGame) snapshot(args mock.Arguments) (*farm.Snapshot, error) {
	if snap := args.Get(0); snap != nil {
		return snap.(*farm.Snapshot), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockGame) State(ctx context.Context, player identity.VerifiedIdentity) (*farm.Snapshot, error) {
	return m.snapshot(m.Called(ctx, player))
}

func (m *mockGame) Harvest(ctx context.Context, player identity.VerifiedIdentity, crop domain.CropKind) (*farm.Snapshot, error) {
	return m.snapshot(m.Called(ctx, player, crop))
}

func (m *mockGame) PurchaseAnimal(ctx context.Context, player identity.VerifiedIdentity, kind domain.AnimalKind) (*farm.Snapshot, error) {
	return m.snapshot(m.Called(ctx, player, kind))
}

type mockPinger struct {
	mock.Mock
}

func (m *mockPinger) Ping(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

type mockInvoices struct {
	mock.Mock
}

func (m *mockInvoices) CreateInvoiceLink(product farm.Product) (string, error) {
	args := m.Called(product)
	return args.String(0), args.Error(1)
}

type mockLister struct {
	mock.Mock
}

func (m *mockLister) ListUnsettled(ctx context.Context, limit int) ([]domain.PaymentRecord, error) {
	args := m.Called(ctx, limit)
	records, _ := args.Get(0).([]domain.PaymentRecord)
	return records, args.Error(1)
}
