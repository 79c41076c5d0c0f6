package service

import (
	"context"
	"time"

	"lead_scoring/internal/model"

	"github.com/stretchr/testify/mock"
)

type mockUserRepo struct{ mock.Mock }

func (m *mockUserRepo) Create(ctx context.Context, user *model.User) error {
	return m.Called(ctx, user).Error(0)
}

func (m *mockUserRepo) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	args := m.Called(ctx, email)
	u, _ := args.Get(0).(*model.User)
	return u, args.Error(1)
}

func (m *mockUserRepo) FindByID(ctx context.Context, id string) (*model.User, error) {
	args := m.Called(ctx, id)
	u, _ := args.Get(0).(*model.User)
	return u, args.Error(1)
}

func (m *mockUserRepo) List(ctx context.Context) ([]model.User, error) {
	args := m.Called(ctx)
	users, _ := args.Get(0).([]model.User)
	return users, args.Error(1)
}

func (m *mockUserRepo) Update(ctx context.Context, user *model.User) error {
	return m.Called(ctx, user).Error(0)
}

func (m *mockUserRepo) Delete(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

type mockLeadRepo struct{ mock.Mock }

func (m *mockLeadRepo) List(ctx context.Context, filter model.LeadFilter) ([]model.Lead, error) {
	args := m.Called(ctx, filter)
	leads, _ := args.Get(0).([]model.Lead)
	return leads, args.Error(1)
}

func (m *mockLeadRepo) FindByID(ctx context.Context, id int64) (*model.Lead, error) {
	args := m.Called(ctx, id)
	l, _ := args.Get(0).(*model.Lead)
	return l, args.Error(1)
}

func (m *mockLeadRepo) UpdateStatus(ctx context.Context, id int64, status, userID string) (*model.LeadStatusUpdate, error) {
	args := m.Called(ctx, id, status, userID)
	u, _ := args.Get(0).(*model.LeadStatusUpdate)
	return u, args.Error(1)
}

func (m *mockLeadRepo) UpdateNotes(ctx context.Context, id int64, notes string) (*model.LeadNotesUpdate, error) {
	args := m.Called(ctx, id, notes)
	u, _ := args.Get(0).(*model.LeadNotesUpdate)
	return u, args.Error(1)
}

type mockScoreRepo struct{ mock.Mock }

func (m *mockScoreRepo) CountSince(ctx context.Context, since time.Time) (int64, error) {
	args := m.Called(ctx, since)
	return args.Get(0).(int64), args.Error(1)
}

type mockRunner struct{ mock.Mock }

func (m *mockRunner) Run(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

func strPtr(s string) *string { return &s }
