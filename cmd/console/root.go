// cmd/console/root.go
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	app "bank-console/internal"

	"github.com/spf13/cobra"
)

// execute runs the root command and maps its outcome to an exit code.
func execute(args []string) int {
	rootCmd := newRootCmd()
	rootCmd.SetArgs(args)
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

func newRootCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "bank-console",
		Short: "Interactive banking console",
		Long: "Single-operator banking console. Customers register, apply for accounts\n" +
			"and move funds; employees review applications; admins manage everything.\n" +
			"The backend is selected with BANK_STORE (text, sqlite, postgres).",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runConsole(cmd.Context())
		},
	}
}

func runConsole(ctx context.Context) (err error) {
	application := app.NewApplication()
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if shutdownErr := application.Shutdown(shutdownCtx); shutdownErr != nil && err == nil {
			err = shutdownErr
		}
	}()

	if err := application.Initialize(ctx); err != nil {
		return err
	}
	return application.Run(ctx)
}
