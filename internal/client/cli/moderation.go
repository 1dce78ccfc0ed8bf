package cli

import (
	"context"
	"fmt"
	"text/tabwriter"

	"github.com/dmitrijs2005/factkeeper/internal/models"
	"github.com/spf13/cobra"
)

func (a *app) pendingCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "pending",
		Short: "List submissions waiting for review, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.withClient(cmd, func(ctx context.Context, c Admin) error {
				subs, err := c.Pending(ctx)
				if err != nil {
					return err
				}
				printSubmissions(cmd, subs)
				return nil
			})
		},
	}
}

func (a *app) approveCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "approve <submission-id>",
		Short: "Publish a pending submission",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withClient(cmd, func(ctx context.Context, c Admin) error {
				f, err := c.Approve(ctx, args[0])
				if err != nil {
					return err
				}
				fmt.Fprintf(out(cmd), "Approved %s as fact %s\n", args[0], f.ID)
				return nil
			})
		},
	}
}

func (a *app) rejectCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "reject <submission-id>",
		Short: "Discard a pending submission",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withClient(cmd, func(ctx context.Context, c Admin) error {
				if err := c.Reject(ctx, args[0]); err != nil {
					return err
				}
				fmt.Fprintf(out(cmd), "Rejected %s\n", args[0])
				return nil
			})
		},
	}
}

func printSubmissions(cmd *cobra.Command, subs []models.SubmittedFact) {
	if len(subs) == 0 {
		fmt.Fprintln(out(cmd), "No pending submissions")
		return
	}
	tw := tabwriter.NewWriter(out(cmd), 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tCATEGORY\tBY\tSUBMITTED\tTEXT")
	for _, s := range subs {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n", s.ID, s.Category, s.SubmittedBy,
			s.CreatedAt.Format("2006-01-02 15:04"), s.Text)
	}
	_ = tw.Flush()
}
