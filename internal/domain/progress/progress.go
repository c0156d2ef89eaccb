// Package progress implements gradual multi-resource consumption: a requirement
// set is satisfied over several cycles, taking at most one unit of every unmet
// key per cycle.
package progress

import (
	"math"
	"sort"

	"github.com/andrescamacho/cardquest-go/internal/domain/content"
)

// Requirements maps a requirement key (item id or tag:<tag>) to the units needed
type Requirements map[string]int

// Entry tracks one key. 0 <= Current <= Required always holds.
type Entry struct {
	Current  int
	Required int
}

// Satisfied reports whether the entry needs no more units
func (e *Entry) Satisfied() bool {
	return e.Current >= e.Required
}

// Ledger records partial fulfilment of a Requirements set
type Ledger map[string]*Entry

// Stock is the subset of the inventory the consumer touches
type Stock interface {
	Has(itemID string, n int) bool
	Remove(itemID string, n int) bool
	FirstWithTag(tag string) (string, bool)
}

// TagResolver maps a tag key to the concrete item that should satisfy it
type TagResolver func(key string) (itemID string, ok bool)

// CycleResult describes one consumption pass
type CycleResult struct {
	// Consumed maps concrete item ids to units removed this pass
	Consumed map[string]int
	// Complete is true when every key is satisfied after the pass
	Complete bool
	// Blocked is true when nothing was consumed and requirements remain
	Blocked bool
}

// InitProgress creates a zeroed ledger for reqs
func InitProgress(reqs Requirements) Ledger {
	ledger := make(Ledger, len(reqs))
	for key, required := range reqs {
		if required < 0 {
			required = 0
		}
		ledger[key] = &Entry{Required: required}
	}
	return ledger
}

// Complete reports whether every entry is satisfied
func (l Ledger) Complete() bool {
	for _, entry := range l {
		if !entry.Satisfied() {
			return false
		}
	}
	return true
}

// Totals returns consumed and required units summed across keys
func (l Ledger) Totals() (current, required int) {
	for _, entry := range l {
		current += entry.Current
		required += entry.Required
	}
	return current, required
}

// CanMakeProgress reports whether at least one unmet key has a unit in stock
func CanMakeProgress(ledger Ledger, reqs Requirements, stock Stock, resolve TagResolver) bool {
	syncLedger(ledger, reqs)
	for _, key := range sortedKeys(ledger) {
		if ledger[key].Satisfied() {
			continue
		}
		if itemID, ok := resolveKey(key, stock, resolve); ok && stock.Has(itemID, 1) {
			return true
		}
	}
	return false
}

// ConsumeCycle removes one unit for every unmet key that has stock
func ConsumeCycle(ledger Ledger, reqs Requirements, stock Stock, resolve TagResolver) CycleResult {
	syncLedger(ledger, reqs)
	result := CycleResult{Consumed: make(map[string]int)}

	for _, key := range sortedKeys(ledger) {
		entry := ledger[key]
		if entry.Satisfied() {
			continue
		}
		itemID, ok := resolveKey(key, stock, resolve)
		if !ok {
			continue
		}
		if stock.Remove(itemID, 1) {
			entry.Current++
			result.Consumed[itemID]++
		}
	}

	result.Complete = ledger.Complete()
	result.Blocked = len(result.Consumed) == 0 && !result.Complete
	return result
}

// ApplyMultiplier scales every requirement by factor, rounding up
func ApplyMultiplier(reqs Requirements, factor float64) Requirements {
	out := make(Requirements, len(reqs))
	for key, amount := range reqs {
		scaled := int(math.Ceil(float64(amount)*factor - 1e-9))
		if scaled < 0 {
			scaled = 0
		}
		out[key] = scaled
	}
	return out
}

// syncLedger adds entries for keys the ledger has not seen yet
func syncLedger(ledger Ledger, reqs Requirements) {
	for key, required := range reqs {
		if _, ok := ledger[key]; !ok {
			ledger[key] = &Entry{Required: required}
		}
	}
}

func resolveKey(key string, stock Stock, resolve TagResolver) (string, bool) {
	tag, isTag := content.TagOf(key)
	if !isTag {
		return key, true
	}
	if resolve != nil {
		if itemID, ok := resolve(key); ok {
			return itemID, true
		}
	}
	return stock.FirstWithTag(tag)
}

func sortedKeys(ledger Ledger) []string {
	keys := make([]string, 0, len(ledger))
	for key := range ledger {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}
