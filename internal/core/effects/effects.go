// Package effects defines effect types as data structures representing I/O operations.
// This is the foundation of the Functional Core / Imperative Shell pattern.
// Effects are pure data - they describe what should happen, not how.
package effects

// Entity names understood by the executor.
const (
	EntitySalaryHistory = "salary_history"
	EntityEmployee      = "employee"
)

// Persist operations.
const (
	OpCreate = "create"
	OpUpdate = "update"
	OpClose  = "close"
)

// Effect is the base interface for all effects.
type Effect interface {
	// EffectType returns a string identifier for the effect type.
	EffectType() string
}

// LogEffect represents a logging operation.
type LogEffect struct {
	Level   string // "debug", "info", "warn"
	Message string
	Fields  map[string]string
}

func (e LogEffect) EffectType() string { return "log" }

// PersistEffect represents a database persistence operation.
type PersistEffect struct {
	Entity    string // e.g., "salary_history", "employee"
	Operation string // e.g., "create", "update", "close"
	Data      any    // The entity data
}

func (e PersistEffect) EffectType() string { return "persist" }

// CompositeEffect holds multiple effects to be executed in sequence.
// Execution stops at the first failing effect.
type CompositeEffect struct {
	Effects []Effect
}

func (e CompositeEffect) EffectType() string { return "composite" }
