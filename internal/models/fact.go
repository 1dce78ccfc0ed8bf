// Package models defines the fact domain types shared by storage, services
// and transports.
package models

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Fact is a published, approved content record.
type Fact struct {
	ID          string    `json:"id"`
	Text        string    `json:"text"`
	Category    string    `json:"category"`
	SubmittedBy string    `json:"submittedBy,omitempty"`
	Source      string    `json:"source,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
	Approved    bool      `json:"approved"`
}

// SubmittedFact is a pending content record awaiting moderation. Approved is
// always false while the record sits in the pending collection.
type SubmittedFact struct {
	ID          string    `json:"id"`
	Text        string    `json:"text"`
	Category    string    `json:"category"`
	SubmittedBy string    `json:"submittedBy"`
	Source      string    `json:"source,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
	Approved    bool      `json:"approved"`
}

// Record is the persisted row shape. Both collections store records; which
// collection a record lives in is what makes it published or pending.
type Record struct {
	ID          string    `json:"id"`
	Text        string    `json:"text"`
	Category    string    `json:"category"`
	SubmittedBy string    `json:"submittedBy,omitempty"`
	Source      string    `json:"source,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
	Approved    bool      `json:"approved"`
}

func (f Fact) Record() Record {
	return Record(f)
}

func (s SubmittedFact) Record() Record {
	return Record(s)
}

// FactFromRecord converts a stored record into a Fact.
func FactFromRecord(r Record) Fact {
	return Fact(r)
}

// SubmittedFromRecord converts a stored record into a SubmittedFact.
func SubmittedFromRecord(r Record) SubmittedFact {
	s := SubmittedFact(r)
	s.Approved = false
	return s
}

// NewID returns a fresh time-ordered identifier (UUIDv7).
func NewID() (string, error) {
	id, err := uuid.NewV7()
	if err != nil {
		return "", fmt.Errorf("generate id: %w", err)
	}
	return id.String(), nil
}
