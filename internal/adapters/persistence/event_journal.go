package persistence

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"gorm.io/gorm"

	"github.com/andrescamacho/cardquest-go/internal/domain/events"
	"github.com/andrescamacho/cardquest-go/internal/domain/run"
	"github.com/andrescamacho/cardquest-go/internal/domain/shared"
)

// GormEventJournal implements run.Journal using GORM
type GormEventJournal struct {
	db    *gorm.DB
	clock shared.Clock

	// Identical events inside the window are stored once
	dedupCache   map[string]time.Time
	dedupMu      sync.Mutex
	dedupWindow  time.Duration
	dedupMaxSize int
}

// NewGormEventJournal creates a journal. A zero window disables deduplication.
// If clock is nil, uses RealClock.
func NewGormEventJournal(db *gorm.DB, clock shared.Clock, dedupWindow time.Duration) *GormEventJournal {
	if clock == nil {
		clock = shared.NewRealClock()
	}
	return &GormEventJournal{
		db:           db,
		clock:        clock,
		dedupCache:   make(map[string]time.Time),
		dedupWindow:  dedupWindow,
		dedupMaxSize: 10000,
	}
}

// Append stores one event for the run
func (j *GormEventJournal) Append(ctx context.Context, runID string, e events.Event) error {
	if j.isDuplicate(runID, e) {
		return nil
	}

	var dataJSON string
	if len(e.Data) > 0 {
		if raw, err := json.Marshal(e.Data); err == nil {
			dataJSON = string(raw)
		}
	}

	timestamp := e.Timestamp
	if timestamp.IsZero() {
		timestamp = j.clock.Now()
	}

	model := &EventJournalModel{
		RunID:     runID,
		EventID:   e.ID,
		Type:      string(e.Type),
		CardID:    e.CardID,
		HeroID:    e.HeroID,
		ItemID:    e.ItemID,
		Amount:    e.Amount,
		Message:   e.Message,
		Data:      dataJSON,
		Timestamp: timestamp,
	}
	return j.db.WithContext(ctx).Create(model).Error
}

func (j *GormEventJournal) isDuplicate(runID string, e events.Event) bool {
	if j.dedupWindow <= 0 {
		return false
	}
	now := j.clock.Now()
	key := runID + "|" + string(e.Type) + "|" + e.CardID + "|" + e.HeroID + "|" + e.Message

	j.dedupMu.Lock()
	defer j.dedupMu.Unlock()

	if last, ok := j.dedupCache[key]; ok && now.Sub(last) < j.dedupWindow {
		return true
	}
	if len(j.dedupCache) >= j.dedupMaxSize {
		j.cleanupDedupCache(now)
	}
	j.dedupCache[key] = now
	return false
}

// cleanupDedupCache must be called while holding dedupMu
func (j *GormEventJournal) cleanupDedupCache(now time.Time) {
	cutoff := now.Add(-j.dedupWindow)
	for key, ts := range j.dedupCache {
		if ts.Before(cutoff) {
			delete(j.dedupCache, key)
		}
	}
}

// Tail returns the newest entries of a run, newest first
func (j *GormEventJournal) Tail(ctx context.Context, runID string, limit int, eventType *events.Type, since *time.Time) ([]run.JournalEntry, error) {
	var models []EventJournalModel

	query := j.db.WithContext(ctx).Where("run_id = ?", runID)
	if eventType != nil {
		query = query.Where("type = ?", string(*eventType))
	}
	if since != nil {
		query = query.Where("timestamp > ?", *since)
	}
	query = query.Order("timestamp DESC").Order("id DESC")
	if limit > 0 {
		query = query.Limit(limit)
	}

	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}

	entries := make([]run.JournalEntry, len(models))
	for i, m := range models {
		var data map[string]interface{}
		if m.Data != "" {
			if err := json.Unmarshal([]byte(m.Data), &data); err != nil {
				data = nil
			}
		}
		entries[i] = run.JournalEntry{
			ID:        m.ID,
			RunID:     m.RunID,
			EventID:   m.EventID,
			Type:      events.Type(m.Type),
			CardID:    m.CardID,
			HeroID:    m.HeroID,
			ItemID:    m.ItemID,
			Amount:    m.Amount,
			Message:   m.Message,
			Data:      data,
			Timestamp: m.Timestamp,
		}
	}
	return entries, nil
}

// Recorder adapts the journal to an events.Handler bound to one run.
// Failures are reported to onError and never reach the publisher.
func (j *GormEventJournal) Recorder(runID string, onError func(error)) events.Handler {
	return func(e events.Event) {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := j.Append(ctx, runID, e); err != nil && onError != nil {
			onError(err)
		}
	}
}
