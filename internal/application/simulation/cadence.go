package simulation

import (
	"github.com/andrescamacho/cardquest-go/internal/application/logging"
	"github.com/andrescamacho/cardquest-go/internal/domain/card"
	"github.com/andrescamacho/cardquest-go/internal/domain/hero"
	"github.com/andrescamacho/cardquest-go/internal/domain/progress"
)

// advanceCycle drives the work-cycle cadence shared by exploration, collection
// groups and projects. Progress only accumulates while at least one unmet
// requirement has stock; each full cycle spends energy and runs one
// consumption pass. It reports whether the ledger is now complete.
func (e *Engine) advanceCycle(c *card.Card, h *hero.Hero, cycle *float64, ledger progress.Ledger, reqs progress.Requirements, deltaMs float64) bool {
	if ledger.Complete() && len(reqs) == len(ledger) {
		return true
	}
	if !progress.CanMakeProgress(ledger, reqs, e.stock, nil) {
		e.setStatus(c, card.StatusPaused)
		return false
	}
	e.setStatus(c, card.StatusActive)

	*cycle += deltaMs
	if *cycle < e.bal.WorkCycleMs {
		return false
	}
	*cycle = 0

	if !h.SpendEnergy(e.bal.CycleEnergyCost) {
		return false
	}

	result := progress.ConsumeCycle(ledger, reqs, e.stock, nil)
	current, required := ledger.Totals()
	e.logger.Log(logging.LevelDebug, "work cycle consumed", map[string]interface{}{
		"card_id":  c.ID(),
		"consumed": result.Consumed,
		"current":  current,
		"required": required,
	})
	return result.Complete
}
