package cli

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/factkeeper/internal/filex"
	"github.com/dmitrijs2005/factkeeper/internal/netx"
	"github.com/spf13/cobra"
)

// download is a test seam for netx.DownloadPresignedURL.
var download = netx.DownloadPresignedURL

func (a *app) passwdCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "passwd",
		Short: "Change the admin password",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.withClient(cmd, func(ctx context.Context, c Admin) error {
				pw, err := GetPassword("New password: ", cmd.ErrOrStderr())
				if err != nil {
					return err
				}
				confirm, err := GetPassword("Confirm password: ", cmd.ErrOrStderr())
				if err != nil {
					return err
				}
				if err := c.ChangePassword(ctx, pw, confirm); err != nil {
					return err
				}
				fmt.Fprintln(out(cmd), "Password changed")
				return nil
			})
		},
	}
}

func (a *app) backupCommand() *cobra.Command {
	var save string

	cmd := &cobra.Command{
		Use:   "backup",
		Short: "Snapshot all facts and submissions to object storage",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.withClient(cmd, func(ctx context.Context, c Admin) error {
				key, url, err := c.Backup(ctx)
				if err != nil {
					return err
				}
				fmt.Fprintf(out(cmd), "Stored %s\nDownload: %s\n", key, url)
				if save == "" {
					return nil
				}

				body, err := download(ctx, url)
				if err != nil {
					return fmt.Errorf("download snapshot: %w", err)
				}
				if err := filex.WriteFile(save, body); err != nil {
					return err
				}
				fmt.Fprintf(out(cmd), "Saved %s\n", save)
				return nil
			})
		},
	}
	cmd.Flags().StringVarP(&save, "output", "o", "", "also download the snapshot to this file")
	return cmd
}
