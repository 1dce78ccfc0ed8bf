package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/dmitrijs2005/factkeeper/internal/models"
	"github.com/dmitrijs2005/factkeeper/internal/seed"
	"github.com/spf13/cobra"
)

func (a *app) factsCommand() *cobra.Command {
	var category, query string

	cmd := &cobra.Command{
		Use:   "facts",
		Short: "List published facts, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.withClient(cmd, func(ctx context.Context, c Admin) error {
				facts, err := c.Facts(ctx, category, query)
				if err != nil {
					return err
				}
				printFacts(cmd, facts)
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&category, "category", "", "only facts in this category")
	cmd.Flags().StringVarP(&query, "query", "q", "", "case-insensitive search in text and category")
	return cmd
}

func (a *app) addCommand() *cobra.Command {
	var in models.FactInput

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Publish a new fact",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if in.Text == "" {
				text, err := GetMultiline(a.in, "Fact text:", cmd.ErrOrStderr())
				if err != nil {
					return err
				}
				in.Text = text
			}
			return a.withClient(cmd, func(ctx context.Context, c Admin) error {
				f, err := c.CreateFact(ctx, in)
				if err != nil {
					return err
				}
				fmt.Fprintf(out(cmd), "Created fact %s\n", f.ID)
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&in.Text, "text", "", "fact text (prompted for when empty)")
	cmd.Flags().StringVar(&in.Category, "category", "", "one of the known categories")
	cmd.Flags().StringVar(&in.Source, "source", "", "where the fact comes from")
	cmd.Flags().StringVar(&in.SubmittedBy, "by", "", "credited author")
	_ = cmd.MarkFlagRequired("category")
	return cmd
}

func (a *app) editCommand() *cobra.Command {
	var text, category, source, by string

	cmd := &cobra.Command{
		Use:   "edit <fact-id>",
		Short: "Change fields of a published fact",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var patch models.FactPatch
			flags := cmd.Flags()
			if flags.Changed("text") {
				patch.Text = &text
			}
			if flags.Changed("category") {
				patch.Category = &category
			}
			if flags.Changed("source") {
				patch.Source = &source
			}
			if flags.Changed("by") {
				patch.SubmittedBy = &by
			}
			if patch.IsEmpty() {
				return errors.New("nothing to change: pass at least one of --text, --category, --source, --by")
			}

			return a.withClient(cmd, func(ctx context.Context, c Admin) error {
				f, err := c.UpdateFact(ctx, args[0], patch)
				if err != nil {
					return err
				}
				fmt.Fprintf(out(cmd), "Updated fact %s\n", f.ID)
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&text, "text", "", "new text")
	cmd.Flags().StringVar(&category, "category", "", "new category")
	cmd.Flags().StringVar(&source, "source", "", "new source")
	cmd.Flags().StringVar(&by, "by", "", "new credited author")
	return cmd
}

func (a *app) deleteCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <fact-id>",
		Short: "Remove a published fact",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withClient(cmd, func(ctx context.Context, c Admin) error {
				if err := c.DeleteFact(ctx, args[0]); err != nil {
					return err
				}
				fmt.Fprintf(out(cmd), "Deleted %s\n", args[0])
				return nil
			})
		},
	}
}

func (a *app) importCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "import <facts.yaml>",
		Short: "Replace all published facts with the ones in a YAML file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := os.Open(args[0])
			if err != nil {
				return err
			}
			defer f.Close()

			facts, err := seed.Load(f)
			if err != nil {
				return fmt.Errorf("read %s: %w", args[0], err)
			}

			return a.withClient(cmd, func(ctx context.Context, c Admin) error {
				n, err := c.ImportFacts(ctx, facts)
				if err != nil {
					return err
				}
				fmt.Fprintf(out(cmd), "Imported %d facts\n", n)
				return nil
			})
		},
	}
}

func printFacts(cmd *cobra.Command, facts []models.Fact) {
	if len(facts) == 0 {
		fmt.Fprintln(out(cmd), "No facts")
		return
	}
	tw := tabwriter.NewWriter(out(cmd), 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tCATEGORY\tTEXT")
	for _, f := range facts {
		fmt.Fprintf(tw, "%s\t%s\t%s\n", f.ID, f.Category, f.Text)
	}
	_ = tw.Flush()
}
