// Package session keeps the append-only history of successful
// derivations for one interactive session.
package session

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/7noue/Indefinite-Integration-Generator-Basic-Patterns/internal/types"
)

// Entry pairs one input expression with its derivation record.
type Entry struct {
	ID        string        `json:"id"`
	Input     string        `json:"input"`
	Result    *types.Result `json:"result"`
	CreatedAt time.Time     `json:"created_at"`
}

// Log is an append-only history of derivations. Re-submitting the
// input that produced the most recent entry does not grow the log;
// older duplicates are kept. A Log is safe for concurrent use.
type Log struct {
	mu      sync.RWMutex
	entries []Entry
}

// NewLog returns an empty history.
func NewLog() *Log { return &Log{} }

// Append records a derivation unless it repeats the immediately
// preceding input. It returns the stored entry and whether a new entry
// was created.
func (l *Log) Append(input string, result *types.Result) (Entry, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if n := len(l.entries); n > 0 && l.entries[n-1].Input == input {
		return l.entries[n-1], false
	}
	entry := Entry{
		ID:        uuid.NewString(),
		Input:     input,
		Result:    result,
		CreatedAt: time.Now(),
	}
	l.entries = append(l.entries, entry)
	return entry, true
}

// Entries returns a snapshot of the history in insertion order.
func (l *Log) Entries() []Entry {
	l.mu.RLock()
	defer l.mu.RUnlock()

	out := make([]Entry, len(l.entries))
	copy(out, l.entries)
	return out
}

// Last returns the most recent entry, if any.
func (l *Log) Last() (Entry, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	if len(l.entries) == 0 {
		return Entry{}, false
	}
	return l.entries[len(l.entries)-1], true
}

// Len reports the number of stored entries.
func (l *Log) Len() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.entries)
}

// Clear drops every entry.
func (l *Log) Clear() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.entries = nil
}
