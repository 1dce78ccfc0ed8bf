// Package seed holds the built-in fact set and the YAML format used to
// import facts in bulk.
package seed

import (
	"bytes"
	_ "embed"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/dmitrijs2005/factkeeper/internal/models"
	"gopkg.in/yaml.v3"
)

//go:embed facts.yaml
var factsYAML []byte

type document struct {
	Facts []entry `yaml:"facts"`
}

type entry struct {
	ID          string `yaml:"id"`
	Text        string `yaml:"text"`
	Category    string `yaml:"category"`
	Source      string `yaml:"source,omitempty"`
	SubmittedBy string `yaml:"submittedBy,omitempty"`
}

var builtin = sync.OnceValues(func() ([]models.Fact, error) {
	return Load(bytes.NewReader(factsYAML))
})

// Facts returns a fresh copy of the built-in facts. CreatedAt is zero; the
// storage layer stamps it when the set is first written.
func Facts() []models.Fact {
	facts, err := builtin()
	if err != nil {
		panic(fmt.Sprintf("seed: embedded facts are invalid: %v", err))
	}
	out := make([]models.Fact, len(facts))
	copy(out, facts)
	return out
}

// Load decodes a YAML document of the form
//
//	facts:
//	  - id: "1"
//	    category: Food
//	    text: Honey never spoils.
//
// Every fact is validated and marked approved. Ids are optional; the
// caller assigns fresh ones where empty.
func Load(r io.Reader) ([]models.Fact, error) {
	var doc document
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&doc); err != nil {
		if err == io.EOF {
			return []models.Fact{}, nil
		}
		return nil, fmt.Errorf("decode facts: %w", err)
	}

	out := make([]models.Fact, 0, len(doc.Facts))
	for i, e := range doc.Facts {
		f := models.Fact{
			ID:          strings.TrimSpace(e.ID),
			Text:        strings.TrimSpace(e.Text),
			Category:    strings.TrimSpace(e.Category),
			Source:      strings.TrimSpace(e.Source),
			SubmittedBy: strings.TrimSpace(e.SubmittedBy),
			Approved:    true,
		}
		if err := models.ValidateFact(f); err != nil {
			return nil, fmt.Errorf("fact #%d: %w", i+1, err)
		}
		out = append(out, f)
	}
	return out, nil
}
