package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/factkeeper/internal/models"
	"github.com/dmitrijs2005/factkeeper/internal/trivia"
	"github.com/spf13/cobra"
)

// newTriviaBuilder is a test seam for trivia.NewBuilder.
var newTriviaBuilder = trivia.NewBuilder

func (a *app) triviaCommand() *cobra.Command {
	var category string

	cmd := &cobra.Command{
		Use:   "trivia",
		Short: "Play a fact-or-fiction round in the terminal",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			var pool []models.Fact
			err := a.withClient(cmd, func(ctx context.Context, c Admin) error {
				facts, err := c.Facts(ctx, category, "")
				pool = facts
				return err
			})
			if err != nil {
				return err
			}

			b, err := newTriviaBuilder()
			if err != nil {
				return err
			}
			return a.play(cmd, b.NewRound(pool))
		},
	}
	cmd.Flags().StringVar(&category, "category", "", "draw real facts from this category only")
	return cmd
}

func parseAnswer(s string) (bool, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "t", "true", "y", "yes":
		return true, true
	case "f", "false", "n", "no":
		return false, true
	}
	return false, false
}

func (a *app) play(cmd *cobra.Command, round trivia.Round) error {
	w := out(cmd)
	total := len(round.Questions)
	answers := make([]bool, 0, total)

	for i, q := range round.Questions {
		prompt := fmt.Sprintf("Question %d/%d: %s\nTrue or false? [t/f]", i+1, total, q.Text)
		for {
			line, err := GetSimpleText(a.in, prompt, w)
			if err != nil {
				return err
			}
			answer, ok := parseAnswer(line)
			if !ok {
				fmt.Fprintln(w, "Please answer t or f.")
				continue
			}
			answers = append(answers, answer)
			if answer == q.IsTrue {
				fmt.Fprintln(w, "You got it right!")
			} else {
				fmt.Fprintln(w, "Better luck next time!")
			}
			break
		}
	}

	score := trivia.Score(round, answers)
	title, message := trivia.Verdict(score, total)
	fmt.Fprintf(w, "\nYou scored %d out of %d\n%s\n%s\n", score, total, title, message)
	return nil
}
