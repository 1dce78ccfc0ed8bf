package models

import (
	"errors"
	"strings"
	"testing"

	"github.com/dmitrijs2005/factkeeper/internal/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

func TestFactInput_Validate(t *testing.T) {
	tests := []struct {
		name    string
		in      FactInput
		wantErr bool
	}{
		{name: "ok", in: FactInput{Text: "Honey never spoils at all.", Category: "Food"}},
		{name: "too short", in: FactInput{Text: "short", Category: "Food"}, wantErr: true},
		{name: "short after trim", in: FactInput{Text: "   abc      ", Category: "Food"}, wantErr: true},
		{name: "too long", in: FactInput{Text: strings.Repeat("a", MaxTextLength+1), Category: "Food"}, wantErr: true},
		{name: "max length", in: FactInput{Text: strings.Repeat("a", MaxTextLength), Category: "Food"}},
		{name: "runes not bytes", in: FactInput{Text: strings.Repeat("é", MaxTextLength), Category: "Food"}},
		{name: "missing category", in: FactInput{Text: "Honey never spoils at all."}, wantErr: true},
		{name: "unknown category", in: FactInput{Text: "Honey never spoils at all.", Category: "Cooking"}, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.in.Validate()
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, errors.Is(err, common.ErrorValidation))
				return
			}
			require.NoError(t, err)
		})
	}
}

func TestSubmissionInput_ValidateRequiresSubmitter(t *testing.T) {
	in := SubmissionInput{Text: "Octopuses have three hearts.", Category: "Animals", SubmittedBy: "  "}
	err := in.Validate()
	require.ErrorIs(t, err, common.ErrorValidation)
	assert.Contains(t, err.Error(), "submittedBy")

	in.SubmittedBy = "Ann"
	require.NoError(t, in.Validate())
}

func TestNormalize_TrimsFields(t *testing.T) {
	in := SubmissionInput{Text: "  Octopuses have three hearts.  ", Category: " Animals ", SubmittedBy: " Ann ", Source: " wiki "}
	got := in.Normalize()
	assert.Equal(t, SubmissionInput{Text: "Octopuses have three hearts.", Category: "Animals", SubmittedBy: "Ann", Source: "wiki"}, got)

	fi := FactInput{Text: " a fact text here ", Category: " Space "}.Normalize()
	assert.Equal(t, "a fact text here", fi.Text)
	assert.Equal(t, "Space", fi.Category)
}

func TestFactPatch_Apply(t *testing.T) {
	base := Fact{ID: "1", Text: "Old text for the fact.", Category: "Science", Source: "book", Approved: true}

	got := FactPatch{Text: strPtr(" New text for the fact. ")}.Apply(base)
	assert.Equal(t, "New text for the fact.", got.Text)
	assert.Equal(t, "Science", got.Category)
	assert.Equal(t, "book", got.Source)
	assert.Equal(t, "1", got.ID)

	got = FactPatch{Category: strPtr("Space"), Source: strPtr("")}.Apply(base)
	assert.Equal(t, "Space", got.Category)
	assert.Empty(t, got.Source)

	assert.True(t, FactPatch{}.IsEmpty())
	assert.False(t, FactPatch{SubmittedBy: strPtr("x")}.IsEmpty())
}

func TestValidateFact(t *testing.T) {
	require.NoError(t, ValidateFact(Fact{Text: "Venus spins backwards.", Category: "Space"}))
	require.ErrorIs(t, ValidateFact(Fact{Text: "Venus spins backwards.", Category: "Trivia"}), common.ErrorValidation)
}

func TestFact_Normalize(t *testing.T) {
	f := Fact{ID: " a ", Text: " Venus spins backwards. ", Category: " Space ", Source: " NASA ", SubmittedBy: " Ann "}.Normalize()

	assert.Equal(t, Fact{ID: "a", Text: "Venus spins backwards.", Category: "Space", Source: "NASA", SubmittedBy: "Ann"}, f)
}
