// Package trivia builds true-or-false rounds that mix published facts with
// well-known misconceptions.
package trivia

import (
	_ "embed"
	"fmt"
	"math/rand/v2"

	"github.com/dmitrijs2005/factkeeper/internal/models"
	"gopkg.in/yaml.v3"
)

// RoundSize is the number of questions in a full round, half real and half
// fake.
const RoundSize = 10

//go:embed fakes.yaml
var fakesYAML []byte

// Question is one statement the player marks true or false.
type Question struct {
	ID       string `json:"id"`
	Text     string `json:"text"`
	Category string `json:"category"`
	IsTrue   bool   `json:"isTrue"`
}

type Round struct {
	Questions []Question `json:"questions"`
}

type Builder struct {
	fakes   []string
	shuffle func(n int, swap func(i, j int))
}

// NewBuilder loads the embedded list of false statements.
func NewBuilder() (*Builder, error) {
	var fakes []string
	if err := yaml.Unmarshal(fakesYAML, &fakes); err != nil {
		return nil, fmt.Errorf("decode fake statements: %w", err)
	}
	return &Builder{fakes: fakes, shuffle: rand.Shuffle}, nil
}

// NewRound picks up to RoundSize/2 real facts and as many fake statements,
// then shuffles them together. With fewer real facts the round is shorter.
func (b *Builder) NewRound(facts []models.Fact) Round {
	half := RoundSize / 2

	picked := append([]models.Fact(nil), facts...)
	b.shuffle(len(picked), func(i, j int) { picked[i], picked[j] = picked[j], picked[i] })
	if len(picked) > half {
		picked = picked[:half]
	}

	fakes := append([]string(nil), b.fakes...)
	b.shuffle(len(fakes), func(i, j int) { fakes[i], fakes[j] = fakes[j], fakes[i] })
	if len(fakes) > half {
		fakes = fakes[:half]
	}

	questions := make([]Question, 0, len(picked)+len(fakes))
	for _, f := range picked {
		questions = append(questions, Question{ID: f.ID, Text: f.Text, Category: f.Category, IsTrue: true})
	}
	for i, text := range fakes {
		questions = append(questions, Question{
			ID:       fmt.Sprintf("fake-%d", i),
			Text:     text,
			Category: models.TriviaCategory,
		})
	}
	b.shuffle(len(questions), func(i, j int) { questions[i], questions[j] = questions[j], questions[i] })

	return Round{Questions: questions}
}

// Score counts the answers that match the questions. Missing answers count
// as wrong.
func Score(round Round, answers []bool) int {
	score := 0
	for i, q := range round.Questions {
		if i < len(answers) && answers[i] == q.IsTrue {
			score++
		}
	}
	return score
}

// Verdict returns the headline and message for a final score.
func Verdict(score, total int) (title, message string) {
	switch {
	case total > 0 && score == total:
		return "Perfect Score!", "You're a fact master! You got every question right!"
	case total > 0 && score*10 >= total*7:
		return "Great Job!", "You really know your facts! Just a few mistakes."
	case total > 0 && score*2 >= total:
		return "Good Effort!", "You got more than half right. Keep learning!"
	default:
		return "Better Luck Next Time!", "Don't worry, facts can be tricky. Try again to improve your score!"
	}
}
