package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"lead_scoring/internal/model"
	"lead_scoring/internal/repository"
	"lead_scoring/internal/scoring"

	log "github.com/sirupsen/logrus"
)

var (
	ErrLeadNotFound  = errors.New("lead not found")
	ErrScoringFailed = errors.New("failed to refresh ML scores")
)

// LeadService defines operations on leads
type LeadService interface {
	List(ctx context.Context, filter model.LeadFilter) ([]model.Lead, error)
	Get(ctx context.Context, id int64) (*model.Lead, error)
	UpdateStatus(ctx context.Context, id int64, req model.UpdateLeadStatusRequest) (*model.LeadStatusUpdate, error)
	UpdateNotes(ctx context.Context, id int64, notes string) (*model.LeadNotesUpdate, error)
	RefreshScores(ctx context.Context) (*model.RefreshResult, error)
}

type leadService struct {
	leads  repository.LeadRepository
	scores repository.ScoreRepository
	runner scoring.Runner
	now    func() time.Time
}

// NewLeadService creates a new LeadService
func NewLeadService(leads repository.LeadRepository, scores repository.ScoreRepository, runner scoring.Runner) LeadService {
	return &leadService{leads: leads, scores: scores, runner: runner, now: time.Now}
}

func (s *leadService) List(ctx context.Context, filter model.LeadFilter) ([]model.Lead, error) {
	leads, err := s.leads.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list leads: %w", err)
	}
	return leads, nil
}

func (s *leadService) Get(ctx context.Context, id int64) (*model.Lead, error) {
	lead, err := s.leads.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get lead: %w", err)
	}
	if lead == nil {
		return nil, ErrLeadNotFound
	}
	return lead, nil
}

// UpdateStatus applies a status change. No transition rules are enforced here.
func (s *leadService) UpdateStatus(ctx context.Context, id int64, req model.UpdateLeadStatusRequest) (*model.LeadStatusUpdate, error) {
	updated, err := s.leads.UpdateStatus(ctx, id, req.Status, req.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to update lead status: %w", err)
	}
	if updated == nil {
		return nil, ErrLeadNotFound
	}

	entry := log.WithFields(log.Fields{"lead_id": id, "status": updated.Status, "caller": req.UserID})
	if updated.UserID != nil && *updated.UserID != req.UserID {
		entry = entry.WithField("owner", *updated.UserID)
	}
	entry.Info("Lead status updated")
	return updated, nil
}

func (s *leadService) UpdateNotes(ctx context.Context, id int64, notes string) (*model.LeadNotesUpdate, error) {
	updated, err := s.leads.UpdateNotes(ctx, id, notes)
	if err != nil {
		return nil, fmt.Errorf("failed to update lead notes: %w", err)
	}
	if updated == nil {
		return nil, ErrLeadNotFound
	}
	return updated, nil
}

// RefreshScores runs the scoring job to completion and reports how many score
// rows it wrote. The job keeps running if the caller goes away.
func (s *leadService) RefreshScores(ctx context.Context) (*model.RefreshResult, error) {
	started := s.now()
	if err := s.runner.Run(context.WithoutCancel(ctx)); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrScoringFailed, err)
	}

	result := &model.RefreshResult{Message: "ML scores refreshed"}
	n, err := s.scores.CountSince(ctx, started)
	if err != nil {
		log.WithError(err).Warn("Scoring finished but written rows could not be counted")
		return result, nil
	}
	result.TotalProcessed = n
	return result, nil
}
