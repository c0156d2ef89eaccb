package persistence

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/andrescamacho/cardquest-go/internal/domain/run"
)

// GormRunRepository implements run.Repository using GORM
type GormRunRepository struct {
	db *gorm.DB
}

// NewGormRunRepository creates a new GORM run repository
func NewGormRunRepository(db *gorm.DB) *GormRunRepository {
	return &GormRunRepository{db: db}
}

// Save upserts the run record
func (r *GormRunRepository) Save(ctx context.Context, rec *run.Run) error {
	model := &RunModel{
		ID:          rec.ID(),
		Scenario:    rec.Scenario(),
		Seed:        rec.Seed(),
		Status:      string(rec.Status()),
		Ticks:       rec.Ticks(),
		SimulatedMs: rec.SimulatedMs(),
		EventCount:  rec.EventCount(),
		CreatedAt:   rec.CreatedAt(),
		StartedAt:   rec.StartedAt(),
		EndedAt:     rec.EndedAt(),
	}
	if err := rec.LastError(); err != nil {
		model.ExitReason = err.Error()
	}

	result := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"status", "ticks", "simulated_ms", "event_count", "started_at", "ended_at", "exit_reason",
		}),
	}).Create(model)
	if result.Error != nil {
		return fmt.Errorf("failed to save run: %w", result.Error)
	}
	return nil
}

// FindByID returns the stored run or nil when it does not exist
func (r *GormRunRepository) FindByID(ctx context.Context, id string) (*run.Summary, error) {
	var model RunModel
	result := r.db.WithContext(ctx).Where("id = ?", id).First(&model)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find run: %w", result.Error)
	}
	return modelToSummary(&model), nil
}

// List returns the most recent runs first
func (r *GormRunRepository) List(ctx context.Context, limit int) ([]*run.Summary, error) {
	var models []RunModel
	query := r.db.WithContext(ctx).Order("created_at DESC")
	if limit > 0 {
		query = query.Limit(limit)
	}
	if err := query.Find(&models).Error; err != nil {
		return nil, fmt.Errorf("failed to list runs: %w", err)
	}

	summaries := make([]*run.Summary, len(models))
	for i := range models {
		summaries[i] = modelToSummary(&models[i])
	}
	return summaries, nil
}

func modelToSummary(m *RunModel) *run.Summary {
	return &run.Summary{
		ID:          m.ID,
		Scenario:    m.Scenario,
		Seed:        m.Seed,
		Status:      m.Status,
		Ticks:       m.Ticks,
		SimulatedMs: m.SimulatedMs,
		EventCount:  m.EventCount,
		StartedAt:   m.StartedAt,
		EndedAt:     m.EndedAt,
		ExitReason:  m.ExitReason,
	}
}
