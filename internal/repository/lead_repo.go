package repository

import (
	"context"
	"errors"
	"fmt"

	"lead_scoring/internal/model"

	"github.com/jackc/pgx/v5"
)

// LeadRepository defines read and update operations on leads (table nasabah)
type LeadRepository interface {
	List(ctx context.Context, filter model.LeadFilter) ([]model.Lead, error)
	FindByID(ctx context.Context, id int64) (*model.Lead, error)
	UpdateStatus(ctx context.Context, id int64, status, userID string) (*model.LeadStatusUpdate, error)
	UpdateNotes(ctx context.Context, id int64, notes string) (*model.LeadNotesUpdate, error)
}

type leadRepository struct {
	db DBTX
}

// NewLeadRepository creates a new LeadRepository
func NewLeadRepository(db DBTX) LeadRepository {
	return &leadRepository{db: db}
}

const leadSelect = `SELECT
    n.nasabah_id,
    COALESCE(n.name, ''),
    n.email,
    n.phone,
    n.age::int4,
    n.job,
    n.marital,
    n.education,
    COALESCE(n.balance, 0)::float8,
    n.housing,
    n.loan,
    n.contact,
    n.campaign::int4,
    n.poutcome,
    COALESCE(n.status, 'pending'),
    n.contacted_at,
    n.notes,
    n.user_id,
    u.name,
    COALESCE(hp.predicted_score, 0)::float8
FROM nasabah n
LEFT JOIN users u ON u.user_id = n.user_id
LEFT JOIN LATERAL (
    SELECT predicted_score
    FROM hasil_perhitungan_probabilitas
    WHERE nasabah_id = n.nasabah_id
    ORDER BY calculation_date DESC
    LIMIT 1
) hp ON TRUE`

const leadOrder = ` ORDER BY hp.predicted_score DESC NULLS LAST, n.nasabah_id`

func scanLead(row rowScanner, l *model.Lead) error {
	return row.Scan(
		&l.ID, &l.Name, &l.Email, &l.Phone, &l.Age, &l.Job, &l.Marital, &l.Education,
		&l.Balance, &l.Housing, &l.Loan, &l.Contact, &l.Campaign, &l.PreviousOutcome,
		&l.Status, &l.ContactedAt, &l.Notes, &l.UserID, &l.ContactedByName, &l.PredictedScore,
	)
}

// List returns leads ranked by their latest score. Admins see everything; other
// roles see unclaimed pending leads plus the ones they claimed.
func (r *leadRepository) List(ctx context.Context, filter model.LeadFilter) ([]model.Lead, error) {
	sql := leadSelect + leadOrder
	var args []any
	if filter.Role != model.RoleAdmin {
		sql = leadSelect + `
WHERE (n.status = 'pending' AND n.user_id IS NULL) OR n.user_id = $1` + leadOrder
		args = append(args, filter.UserID)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query leads: %w", err)
	}
	defer rows.Close()

	leads := []model.Lead{}
	for rows.Next() {
		var l model.Lead
		if err := scanLead(rows, &l); err != nil {
			return nil, fmt.Errorf("failed to scan lead row: %w", err)
		}
		leads = append(leads, l)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating lead rows: %w", err)
	}
	return leads, nil
}

// FindByID retrieves a single lead with its latest score
func (r *leadRepository) FindByID(ctx context.Context, id int64) (*model.Lead, error) {
	l := &model.Lead{}
	err := scanLead(r.db.QueryRow(ctx, leadSelect+`
WHERE n.nasabah_id = $1`, id), l)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil // Not found
		}
		return nil, fmt.Errorf("failed to find lead by ID: %w", err)
	}
	return l, nil
}

// UpdateStatus sets the status in a single statement. Leaving pending stamps
// contacted_at once and claims the lead for userID only if nobody owns it yet.
func (r *leadRepository) UpdateStatus(ctx context.Context, id int64, status, userID string) (*model.LeadStatusUpdate, error) {
	sql := `UPDATE nasabah
            SET
                status = $1::text,
                contacted_at = CASE
                    WHEN $1::text = 'pending' THEN contacted_at
                    ELSE COALESCE(contacted_at, NOW())
                END,
                user_id = CASE
                    WHEN $1::text <> 'pending' AND user_id IS NULL THEN $2
                    ELSE user_id
                END
            WHERE nasabah_id = $3
            RETURNING nasabah_id, status, contacted_at, user_id`
	u := &model.LeadStatusUpdate{}
	err := r.db.QueryRow(ctx, sql, status, userID, id).Scan(&u.ID, &u.Status, &u.ContactedAt, &u.UserID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to update lead status: %w", err)
	}
	return u, nil
}

// UpdateNotes overwrites the free-text notes of a lead
func (r *leadRepository) UpdateNotes(ctx context.Context, id int64, notes string) (*model.LeadNotesUpdate, error) {
	sql := `UPDATE nasabah SET notes = $1 WHERE nasabah_id = $2 RETURNING nasabah_id, COALESCE(notes, '')`
	u := &model.LeadNotesUpdate{}
	err := r.db.QueryRow(ctx, sql, notes, id).Scan(&u.ID, &u.Notes)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to update lead notes: %w", err)
	}
	return u, nil
}
