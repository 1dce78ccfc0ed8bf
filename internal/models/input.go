package models

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/dmitrijs2005/factkeeper/internal/common"
)

// Text length bounds, counted in characters after trimming.
const (
	MinTextLength = 10
	MaxTextLength = 500
)

// FactInput is what an admin supplies to create a published fact.
type FactInput struct {
	Text        string `json:"text"`
	Category    string `json:"category"`
	Source      string `json:"source,omitempty"`
	SubmittedBy string `json:"submittedBy,omitempty"`
}

// SubmissionInput is what the public supplies to suggest a fact.
type SubmissionInput struct {
	Text        string `json:"text"`
	Category    string `json:"category"`
	SubmittedBy string `json:"submittedBy"`
	Source      string `json:"source,omitempty"`
}

// FactPatch carries a partial update. Nil fields are left unchanged.
type FactPatch struct {
	Text        *string `json:"text,omitempty"`
	Category    *string `json:"category,omitempty"`
	Source      *string `json:"source,omitempty"`
	SubmittedBy *string `json:"submittedBy,omitempty"`
}

func (i FactInput) Normalize() FactInput {
	return FactInput{
		Text:        strings.TrimSpace(i.Text),
		Category:    strings.TrimSpace(i.Category),
		Source:      strings.TrimSpace(i.Source),
		SubmittedBy: strings.TrimSpace(i.SubmittedBy),
	}
}

func (i FactInput) Validate() error {
	return validate(i.Text, i.Category)
}

func (i SubmissionInput) Normalize() SubmissionInput {
	return SubmissionInput{
		Text:        strings.TrimSpace(i.Text),
		Category:    strings.TrimSpace(i.Category),
		SubmittedBy: strings.TrimSpace(i.SubmittedBy),
		Source:      strings.TrimSpace(i.Source),
	}
}

func (i SubmissionInput) Validate() error {
	if err := validate(i.Text, i.Category); err != nil {
		return err
	}
	if strings.TrimSpace(i.SubmittedBy) == "" {
		return fmt.Errorf("%w: submittedBy is required", common.ErrorValidation)
	}
	return nil
}

// Apply merges the non-nil fields of p into f.
func (p FactPatch) Apply(f Fact) Fact {
	if p.Text != nil {
		f.Text = strings.TrimSpace(*p.Text)
	}
	if p.Category != nil {
		f.Category = strings.TrimSpace(*p.Category)
	}
	if p.Source != nil {
		f.Source = strings.TrimSpace(*p.Source)
	}
	if p.SubmittedBy != nil {
		f.SubmittedBy = strings.TrimSpace(*p.SubmittedBy)
	}
	return f
}

// IsEmpty reports whether the patch changes nothing.
func (p FactPatch) IsEmpty() bool {
	return p.Text == nil && p.Category == nil && p.Source == nil && p.SubmittedBy == nil
}

// Normalize trims the free-text fields of f.
func (f Fact) Normalize() Fact {
	f.ID = strings.TrimSpace(f.ID)
	f.Text = strings.TrimSpace(f.Text)
	f.Category = strings.TrimSpace(f.Category)
	f.Source = strings.TrimSpace(f.Source)
	f.SubmittedBy = strings.TrimSpace(f.SubmittedBy)
	return f
}

// ValidateFact checks a complete fact record, e.g. after a patch was merged
// or before a batch import.
func ValidateFact(f Fact) error {
	return validate(f.Text, f.Category)
}

func validate(text, category string) error {
	n := utf8.RuneCountInString(strings.TrimSpace(text))
	if n < MinTextLength || n > MaxTextLength {
		return fmt.Errorf("%w: text must be between %d and %d characters, got %d",
			common.ErrorValidation, MinTextLength, MaxTextLength, n)
	}
	category = strings.TrimSpace(category)
	if category == "" {
		return fmt.Errorf("%w: category is required", common.ErrorValidation)
	}
	if !IsCategory(category) {
		return fmt.Errorf("%w: unknown category %q", common.ErrorValidation, category)
	}
	return nil
}
