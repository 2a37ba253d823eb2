package state

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// Severity levels for findings.
type Severity string

const (
	SeverityLow    Severity = "low"
	SeverityMedium Severity = "medium"
	SeverityHigh   Severity = "high"
)

// Finding statuses.
const (
	StatusOpen     = "open"
	StatusResolved = "resolved"
)

// Finding is a lifecycle-tracked suggestion from a prior review, distinct
// from the raw review artifact it came from.
type Finding struct {
	ID           string     `json:"id"`
	Severity     Severity   `json:"severity"`
	Section      string     `json:"section"`
	Suggestion   string     `json:"suggestion"`
	Evidence     string     `json:"evidence,omitempty"`
	Status       string     `json:"status"`
	IntroducedAt time.Time  `json:"introducedAt"`
	ResolvedAt   *time.Time `json:"resolvedAt,omitempty"`
}

// State is the persisted auracoil record for one repository.
type State struct {
	LastReviewedCommit string     `json:"lastReviewedCommit,omitempty"`
	LastReviewedAt     *time.Time `json:"lastReviewedAt,omitempty"`
	ContentHash        string     `json:"contentHash,omitempty"`
	Findings           []Finding  `json:"findings"`
}

// Dir is the tool-private directory name under the repository root.
const Dir = ".auracoil"

const stateFile = "state.json"

// Store persists State as a single JSON file with whole-object rewrites.
// It assumes a single invocation runs at a time against a repository;
// concurrent writers are last-writer-wins, though the atomic rename means
// the file is never torn.
type Store struct {
	dir string
}

// NewStore returns a Store rooted at repoRoot/.auracoil.
func NewStore(repoRoot string) *Store {
	return &Store{dir: filepath.Join(repoRoot, Dir)}
}

// Path returns the state file location.
func (s *Store) Path() string {
	return filepath.Join(s.dir, stateFile)
}

// Load reads the persisted state. A missing or corrupt file yields the
// empty default state, never an error.
func (s *Store) Load() State {
	data, err := os.ReadFile(s.Path())
	if err != nil {
		return State{}
	}
	var st State
	if err := json.Unmarshal(data, &st); err != nil {
		return State{}
	}
	return st
}

// Save writes the whole state object.
func (s *Store) Save(st State) error {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return fmt.Errorf("creating state directory: %w", err)
	}
	data, err := json.MarshalIndent(st, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling state: %w", err)
	}
	return atomicWriteFile(s.Path(), data, 0o644)
}

// Update loads the state, applies mutate, and writes the result back as a
// single whole-object rewrite.
func (s *Store) Update(mutate func(*State)) error {
	st := s.Load()
	mutate(&st)
	return s.Save(st)
}

// AddFinding inserts a finding. Insertion is idempotent on ID: adding a
// finding whose ID already exists is a no-op.
func (s *Store) AddFinding(f Finding) error {
	return s.Update(func(st *State) {
		for _, existing := range st.Findings {
			if existing.ID == f.ID {
				return
			}
		}
		if f.Status == "" {
			f.Status = StatusOpen
		}
		if f.IntroducedAt.IsZero() {
			f.IntroducedAt = time.Now().UTC()
		}
		st.Findings = append(st.Findings, f)
	})
}

// ResolveFinding marks the finding with the given ID resolved. Unknown IDs
// are a no-op, not an error.
func (s *Store) ResolveFinding(id string) error {
	return s.Update(func(st *State) {
		for i := range st.Findings {
			if st.Findings[i].ID == id && st.Findings[i].Status != StatusResolved {
				now := time.Now().UTC()
				st.Findings[i].Status = StatusResolved
				st.Findings[i].ResolvedAt = &now
			}
		}
	})
}

// OpenFindings returns the findings still open, preserving insertion order.
func (st State) OpenFindings() []Finding {
	var open []Finding
	for _, f := range st.Findings {
		if f.Status != StatusResolved {
			open = append(open, f)
		}
	}
	return open
}
