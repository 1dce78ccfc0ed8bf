package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"

	"github.com/dmitrijs2005/factkeeper/internal/client/client"
	"github.com/dmitrijs2005/factkeeper/internal/client/config"
	"github.com/dmitrijs2005/factkeeper/internal/models"
	"github.com/spf13/cobra"
)

// Admin is the part of client.Client the commands use.
type Admin interface {
	Login(ctx context.Context, password string) error
	ChangePassword(ctx context.Context, newPassword, confirmation string) error
	Pending(ctx context.Context) ([]models.SubmittedFact, error)
	Approve(ctx context.Context, id string) (*models.Fact, error)
	Reject(ctx context.Context, id string) error
	Facts(ctx context.Context, category, query string) ([]models.Fact, error)
	CreateFact(ctx context.Context, in models.FactInput) (*models.Fact, error)
	UpdateFact(ctx context.Context, id string, patch models.FactPatch) (*models.Fact, error)
	DeleteFact(ctx context.Context, id string) error
	ImportFacts(ctx context.Context, facts []models.Fact) (int, error)
	Backup(ctx context.Context) (string, string, error)
	Close() error
}

// dial is a test seam for client.New.
var dial = func(addr string) (Admin, error) {
	return client.New(addr)
}

type app struct {
	configPath string
	server     string
	password   string
	cfg        *config.Config
	in         *bufio.Reader
}

// NewRootCommand builds the factctl command tree.
func NewRootCommand() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:           "factctl",
		Short:         "Moderate and curate a factkeeper server",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load(a.configPath)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("server") {
				cfg.ServerEndpointAddr = a.server
			}
			if cmd.Flags().Changed("password") {
				cfg.Password = a.password
			}
			a.cfg = cfg
			a.in = bufio.NewReader(cmd.InOrStdin())
			return nil
		},
	}

	pf := root.PersistentFlags()
	pf.StringVarP(&a.configPath, "config", "c", "", "path to a JSON config file")
	pf.StringVarP(&a.server, "server", "s", "", "admin gRPC endpoint (host:port)")
	pf.StringVar(&a.password, "password", "", "admin password (prompted for when empty)")

	root.AddCommand(
		a.pendingCommand(),
		a.approveCommand(),
		a.rejectCommand(),
		a.factsCommand(),
		a.addCommand(),
		a.editCommand(),
		a.deleteCommand(),
		a.importCommand(),
		a.passwdCommand(),
		a.backupCommand(),
		a.triviaCommand(),
	)
	return root
}

// withClient connects, logs in and runs fn under the configured timeout.
func (a *app) withClient(cmd *cobra.Command, fn func(ctx context.Context, c Admin) error) error {
	password := a.cfg.Password
	if password == "" {
		pw, err := GetPassword("Admin password: ", cmd.ErrOrStderr())
		if err != nil {
			return fmt.Errorf("read password: %w", err)
		}
		password = pw
	}

	c, err := dial(a.cfg.ServerEndpointAddr)
	if err != nil {
		return err
	}
	defer c.Close()

	ctx, cancel := context.WithTimeout(cmd.Context(), a.cfg.Timeout)
	defer cancel()

	if err := c.Login(ctx, password); err != nil {
		return fmt.Errorf("login: %w", err)
	}
	return fn(ctx, c)
}

func out(cmd *cobra.Command) io.Writer {
	return cmd.OutOrStdout()
}
