// Package mocks holds testify mocks shared by the service and handler
// tests.
package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/deppfellow/villains-api/internal/model"
)

type VillainStore struct {
	mock.Mock
}

func (m *VillainStore) FindAll(ctx context.Context) ([]model.Villain, error) {
	args := m.Called(ctx)
	villains, _ := args.Get(0).([]model.Villain)
	return villains, args.Error(1)
}

func (m *VillainStore) FindBySlug(ctx context.Context, slug string) (model.Villain, bool, error) {
	args := m.Called(ctx, slug)
	villain, _ := args.Get(0).(model.Villain)
	return villain, args.Bool(1), args.Error(2)
}

func (m *VillainStore) Create(ctx context.Context, v model.Villain) (*model.VillainRecord, error) {
	args := m.Called(ctx, v)
	record, _ := args.Get(0).(*model.VillainRecord)
	return record, args.Error(1)
}

type VillainCreatedNotifier struct {
	mock.Mock
}

func (m *VillainCreatedNotifier) EnqueueVillainCreated(ctx context.Context, v model.Villain) error {
	return m.Called(ctx, v).Error(0)
}
