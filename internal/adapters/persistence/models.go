package persistence

import "time"

// RunModel represents the runs table
type RunModel struct {
	ID          string     `gorm:"column:id;primaryKey"`
	Scenario    string     `gorm:"column:scenario"`
	Seed        int64      `gorm:"column:seed;not null"`
	Status      string     `gorm:"column:status;not null;default:'pending'"`
	Ticks       int        `gorm:"column:ticks;default:0"`
	SimulatedMs float64    `gorm:"column:simulated_ms;default:0"`
	EventCount  int        `gorm:"column:event_count;default:0"`
	CreatedAt   time.Time  `gorm:"column:created_at;not null"`
	StartedAt   *time.Time `gorm:"column:started_at"`
	EndedAt     *time.Time `gorm:"column:ended_at"`
	ExitReason  string     `gorm:"column:exit_reason"`
}

func (RunModel) TableName() string {
	return "runs"
}

// EventJournalModel represents the event_journal table
type EventJournalModel struct {
	ID        int       `gorm:"column:id;primaryKey;autoIncrement"`
	RunID     string    `gorm:"column:run_id;not null;index:idx_journal_run_time"`
	EventID   string    `gorm:"column:event_id"`
	Type      string    `gorm:"column:type;not null;index"`
	CardID    string    `gorm:"column:card_id"`
	HeroID    string    `gorm:"column:hero_id"`
	ItemID    string    `gorm:"column:item_id"`
	Amount    int       `gorm:"column:amount"`
	Message   string    `gorm:"column:message;type:text"`
	Data      string    `gorm:"column:data;type:text"`
	Timestamp time.Time `gorm:"column:timestamp;not null;index:idx_journal_run_time"`
}

func (EventJournalModel) TableName() string {
	return "event_journal"
}
