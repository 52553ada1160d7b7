package domain

import (
	"maps"
	"time"
)

// Submission records a member's write-once submission for a period.
type Submission struct {
	Submitted   bool      `json:"submitted"`
	SubmittedAt time.Time `json:"submittedAt"`
}

// LedgerRecord is the per-period submission and leave state.
// Maps are keyed by member ID.
type LedgerRecord struct {
	PeriodKey   string                `json:"weekOf"`
	DocumentID  string                `json:"pageId,omitempty"`
	Submissions map[string]Submission `json:"submissions"`
	Leaves      map[string]bool       `json:"leaves"`
}

// NewLedgerRecord returns an empty record for the period.
func NewLedgerRecord(periodKey string) *LedgerRecord {
	return &LedgerRecord{
		PeriodKey:   periodKey,
		Submissions: make(map[string]Submission),
		Leaves:      make(map[string]bool),
	}
}

// Clone returns a deep copy so callers can mutate without aliasing stored state.
func (r *LedgerRecord) Clone() *LedgerRecord {
	if r == nil {
		return nil
	}
	c := &LedgerRecord{
		PeriodKey:   r.PeriodKey,
		DocumentID:  r.DocumentID,
		Submissions: maps.Clone(r.Submissions),
		Leaves:      maps.Clone(r.Leaves),
	}
	if c.Submissions == nil {
		c.Submissions = make(map[string]Submission)
	}
	if c.Leaves == nil {
		c.Leaves = make(map[string]bool)
	}
	return c
}

// IsSubmitted reports whether the member has submitted in this record.
func (r *LedgerRecord) IsSubmitted(member string) bool {
	return r.Submissions[member].Submitted
}

// OnLeave reports whether the member is flagged on leave in this record.
func (r *LedgerRecord) OnLeave(member string) bool {
	return r.Leaves[member]
}

// Member identifies a team member. Name is the heading label in the shared document.
type Member struct {
	ID   string `json:"id" yaml:"id"`
	Name string `json:"name" yaml:"name"`
}

// MemberStatus is a member joined with the ledger state of the current period.
type MemberStatus struct {
	ID          string     `json:"id"`
	Name        string     `json:"name"`
	Submitted   bool       `json:"submitted"`
	SubmittedAt *time.Time `json:"submittedAt"`
	OnLeave     bool       `json:"onLeave"`
}
