package handler

import (
	"context"
	"errors"

	"lead_scoring/internal/model"

	"github.com/stretchr/testify/mock"
)

type mockAuthService struct{ mock.Mock }

func (m *mockAuthService) Login(ctx context.Context, email, password string) (*model.LoginResponse, error) {
	args := m.Called(ctx, email, password)
	resp, _ := args.Get(0).(*model.LoginResponse)
	return resp, args.Error(1)
}

type mockUserService struct{ mock.Mock }

func (m *mockUserService) List(ctx context.Context) ([]model.User, error) {
	args := m.Called(ctx)
	users, _ := args.Get(0).([]model.User)
	return users, args.Error(1)
}

func (m *mockUserService) Get(ctx context.Context, id string) (*model.User, error) {
	args := m.Called(ctx, id)
	user, _ := args.Get(0).(*model.User)
	return user, args.Error(1)
}

func (m *mockUserService) Create(ctx context.Context, req model.CreateUserRequest) (*model.User, error) {
	args := m.Called(ctx, req)
	user, _ := args.Get(0).(*model.User)
	return user, args.Error(1)
}

func (m *mockUserService) Update(ctx context.Context, id string, req model.UpdateUserRequest) (*model.User, error) {
	args := m.Called(ctx, id, req)
	user, _ := args.Get(0).(*model.User)
	return user, args.Error(1)
}

func (m *mockUserService) Delete(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

type mockLeadService struct{ mock.Mock }

func (m *mockLeadService) List(ctx context.Context, filter model.LeadFilter) ([]model.Lead, error) {
	args := m.Called(ctx, filter)
	leads, _ := args.Get(0).([]model.Lead)
	return leads, args.Error(1)
}

func (m *mockLeadService) Get(ctx context.Context, id int64) (*model.Lead, error) {
	args := m.Called(ctx, id)
	lead, _ := args.Get(0).(*model.Lead)
	return lead, args.Error(1)
}

func (m *mockLeadService) UpdateStatus(ctx context.Context, id int64, req model.UpdateLeadStatusRequest) (*model.LeadStatusUpdate, error) {
	args := m.Called(ctx, id, req)
	u, _ := args.Get(0).(*model.LeadStatusUpdate)
	return u, args.Error(1)
}

func (m *mockLeadService) UpdateNotes(ctx context.Context, id int64, notes string) (*model.LeadNotesUpdate, error) {
	args := m.Called(ctx, id, notes)
	u, _ := args.Get(0).(*model.LeadNotesUpdate)
	return u, args.Error(1)
}

func (m *mockLeadService) RefreshScores(ctx context.Context) (*model.RefreshResult, error) {
	args := m.Called(ctx)
	res, _ := args.Get(0).(*model.RefreshResult)
	return res, args.Error(1)
}

type fakePinger struct{ err error }

func (p fakePinger) Ping(context.Context) error { return p.err }

var errDB = errors.New("connection refused")
