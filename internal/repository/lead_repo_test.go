package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"lead_scoring/internal/model"

	"github.com/jackc/pgx/v5"
	"github.com/pashagolub/pgxmock/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var leadColumns = []string{
	"nasabah_id", "name", "email", "phone", "age", "job", "marital", "education",
	"balance", "housing", "loan", "contact", "campaign", "poutcome",
	"status", "contacted_at", "notes", "user_id", "contacted_by_name", "predicted_score",
}

func strPtr(s string) *string { return &s }
func int32Ptr(n int32) *int32 { return &n }

func leadRow(id int64, status string, owner *string, score float64) []any {
	var ownerName *string
	if owner != nil {
		ownerName = strPtr("Sales " + *owner)
	}
	return []any{
		id, "Budi", strPtr("budi@mail.com"), strPtr("0812"), int32Ptr(41), strPtr("management"), strPtr("married"), strPtr("tertiary"),
		1500.5, strPtr("yes"), strPtr("no"), strPtr("cellular"), int32Ptr(2), strPtr("success"),
		status, nil, nil, owner, ownerName, score,
	}
}

func TestLeadRepository_List_Admin(t *testing.T) {
	mock := newMock(t)
	repo := NewLeadRepository(mock)

	mock.ExpectQuery("ORDER BY hp.predicted_score DESC NULLS LAST").
		WillReturnRows(pgxmock.NewRows(leadColumns).
			AddRow(leadRow(1, model.LeadStatusConverted, strPtr("u2"), 0.93)...).
			AddRow(leadRow(2, model.LeadStatusPending, nil, 0.41)...))

	leads, err := repo.List(context.Background(), model.LeadFilter{Role: model.RoleAdmin, UserID: "u1"})
	require.NoError(t, err)
	require.Len(t, leads, 2)
	assert.Equal(t, int64(1), leads[0].ID)
	assert.Equal(t, "u2", *leads[0].UserID)
	assert.Equal(t, "Sales u2", *leads[0].ContactedByName)
	assert.Equal(t, 0.93, leads[0].PredictedScore)
	assert.Equal(t, int32(41), *leads[0].Age)
	assert.Nil(t, leads[1].UserID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLeadRepository_List_SalesFiltersByCaller(t *testing.T) {
	mock := newMock(t)
	repo := NewLeadRepository(mock)

	mock.ExpectQuery(`WHERE \(n.status = 'pending' AND n.user_id IS NULL\) OR n.user_id = \$1`).
		WithArgs("u1").
		WillReturnRows(pgxmock.NewRows(leadColumns).
			AddRow(leadRow(3, model.LeadStatusContacted, strPtr("u1"), 0.7)...))

	leads, err := repo.List(context.Background(), model.LeadFilter{Role: model.RoleSales, UserID: "u1"})
	require.NoError(t, err)
	require.Len(t, leads, 1)
	assert.Equal(t, model.LeadStatusContacted, leads[0].Status)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLeadRepository_List_Empty(t *testing.T) {
	mock := newMock(t)
	repo := NewLeadRepository(mock)

	mock.ExpectQuery("FROM nasabah n").WithArgs("").WillReturnRows(pgxmock.NewRows(leadColumns))

	leads, err := repo.List(context.Background(), model.LeadFilter{})
	require.NoError(t, err)
	assert.NotNil(t, leads)
	assert.Empty(t, leads)
}

func TestLeadRepository_List_QueryError(t *testing.T) {
	mock := newMock(t)
	repo := NewLeadRepository(mock)

	mock.ExpectQuery("FROM nasabah n").WillReturnError(errors.New("pool closed"))

	_, err := repo.List(context.Background(), model.LeadFilter{Role: model.RoleAdmin})
	assert.ErrorContains(t, err, "pool closed")
}

func TestLeadRepository_FindByID(t *testing.T) {
	mock := newMock(t)
	repo := NewLeadRepository(mock)

	mock.ExpectQuery(`WHERE n.nasabah_id = \$1`).
		WithArgs(int64(42)).
		WillReturnRows(pgxmock.NewRows(leadColumns).AddRow(leadRow(42, model.LeadStatusPending, nil, 0)...))

	lead, err := repo.FindByID(context.Background(), 42)
	require.NoError(t, err)
	require.NotNil(t, lead)
	assert.Equal(t, int64(42), lead.ID)
	assert.Equal(t, 1500.5, lead.Balance)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLeadRepository_FindByID_NotFound(t *testing.T) {
	mock := newMock(t)
	repo := NewLeadRepository(mock)

	mock.ExpectQuery(`WHERE n.nasabah_id = \$1`).WithArgs(int64(999)).WillReturnError(pgx.ErrNoRows)

	lead, err := repo.FindByID(context.Background(), 999)
	assert.NoError(t, err)
	assert.Nil(t, lead)
}

// statusUpdateSQL pins the clauses that keep the first contact time and the first owner
const statusUpdateSQL = `contacted_at = CASE\s+WHEN \$1::text = 'pending' THEN contacted_at\s+` +
	`ELSE COALESCE\(contacted_at, NOW\(\)\)\s+END,\s+` +
	`user_id = CASE\s+WHEN \$1::text <> 'pending' AND user_id IS NULL THEN \$2\s+ELSE user_id\s+END`

var statusColumns = []string{"nasabah_id", "status", "contacted_at", "user_id"}

func TestLeadRepository_UpdateStatus(t *testing.T) {
	mock := newMock(t)
	repo := NewLeadRepository(mock)
	now := time.Now()

	mock.ExpectQuery(statusUpdateSQL).
		WithArgs(model.LeadStatusContacted, "u1", int64(42)).
		WillReturnRows(pgxmock.NewRows(statusColumns).
			AddRow(int64(42), model.LeadStatusContacted, &now, strPtr("u1")))

	u, err := repo.UpdateStatus(context.Background(), 42, model.LeadStatusContacted, "u1")
	require.NoError(t, err)
	require.NotNil(t, u)
	assert.Equal(t, int64(42), u.ID)
	assert.Equal(t, "u1", *u.UserID)
	assert.Equal(t, now, *u.ContactedAt)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLeadRepository_UpdateStatus_LaterCallerKeepsOwner(t *testing.T) {
	mock := newMock(t)
	repo := NewLeadRepository(mock)
	firstContact := time.Date(2026, 10, 1, 9, 0, 0, 0, time.UTC)

	mock.ExpectQuery(statusUpdateSQL).
		WithArgs(model.LeadStatusConverted, "u2", int64(42)).
		WillReturnRows(pgxmock.NewRows(statusColumns).
			AddRow(int64(42), model.LeadStatusConverted, &firstContact, strPtr("u1")))

	u, err := repo.UpdateStatus(context.Background(), 42, model.LeadStatusConverted, "u2")
	require.NoError(t, err)
	assert.Equal(t, "u1", *u.UserID)
	assert.Equal(t, firstContact, *u.ContactedAt)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLeadRepository_UpdateStatus_PendingLeavesClaimAlone(t *testing.T) {
	mock := newMock(t)
	repo := NewLeadRepository(mock)

	mock.ExpectQuery(statusUpdateSQL).
		WithArgs(model.LeadStatusPending, "u2", int64(43)).
		WillReturnRows(pgxmock.NewRows(statusColumns).
			AddRow(int64(43), model.LeadStatusPending, nil, nil))

	u, err := repo.UpdateStatus(context.Background(), 43, model.LeadStatusPending, "u2")
	require.NoError(t, err)
	assert.Equal(t, model.LeadStatusPending, u.Status)
	assert.Nil(t, u.UserID)
	assert.Nil(t, u.ContactedAt)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLeadRepository_UpdateStatus_NotFound(t *testing.T) {
	mock := newMock(t)
	repo := NewLeadRepository(mock)

	mock.ExpectQuery(statusUpdateSQL).
		WithArgs(model.LeadStatusRejected, "u1", int64(7)).
		WillReturnError(pgx.ErrNoRows)

	u, err := repo.UpdateStatus(context.Background(), 7, model.LeadStatusRejected, "u1")
	assert.NoError(t, err)
	assert.Nil(t, u)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLeadRepository_UpdateNotes(t *testing.T) {
	mock := newMock(t)
	repo := NewLeadRepository(mock)

	mock.ExpectQuery("UPDATE nasabah SET notes").
		WithArgs("call back friday", int64(5)).
		WillReturnRows(pgxmock.NewRows([]string{"nasabah_id", "notes"}).AddRow(int64(5), "call back friday"))

	u, err := repo.UpdateNotes(context.Background(), 5, "call back friday")
	require.NoError(t, err)
	assert.Equal(t, &model.LeadNotesUpdate{ID: 5, Notes: "call back friday"}, u)

	mock.ExpectQuery("UPDATE nasabah SET notes").WithArgs("", int64(6)).WillReturnError(pgx.ErrNoRows)
	u, err = repo.UpdateNotes(context.Background(), 6, "")
	assert.NoError(t, err)
	assert.Nil(t, u)

	assert.NoError(t, mock.ExpectationsWereMet())
}
