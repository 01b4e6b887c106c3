package cli

import (
	"context"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/dmitrijs2005/drivequiz/internal/buildinfo"
	"github.com/dmitrijs2005/drivequiz/internal/client/config"
)

// Execute runs the CLI.
func Execute() error {
	return newRootCmd(os.Stdin, os.Stdout).ExecuteContext(context.Background())
}

func newRootCmd(in io.Reader, out io.Writer) *cobra.Command {
	cmd := &cobra.Command{
		Use:           buildinfo.AppName,
		Short:         "Driving-test quiz client",
		Long:          "Interactive client for the driving-test quiz service: generate quizzes from driving videos, answer them and follow your progress.",
		SilenceUsage:  true,
		SilenceErrors: false,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := openApp(cmd)
			if err != nil {
				return err
			}
			defer app.Close()

			buildinfo.PrintBanner(cmd.OutOrStdout())
			app.Run(cmd.Context())
			return nil
		},
	}
	cmd.SetIn(in)
	cmd.SetOut(out)

	config.RegisterFlags(cmd.PersistentFlags())
	cmd.AddCommand(newLogoutCmd(), newWhoAmICmd(), newVersionCmd())
	return cmd
}

// openApp loads the configuration from the parsed flags and builds the App.
func openApp(cmd *cobra.Command) (*App, error) {
	path, err := cmd.Flags().GetString(config.FlagConfig)
	if err != nil {
		return nil, err
	}
	cfg, err := config.LoadConfig(path, cmd.Flags())
	if err != nil {
		return nil, err
	}
	return NewApp(cmd.Context(), cfg, cmd.InOrStdin(), cmd.OutOrStdout())
}

func newLogoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Forget the stored token",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := openApp(cmd)
			if err != nil {
				return err
			}
			defer app.Close()
			return app.Logout(cmd.Context(), nil)
		},
	}
}

func newWhoAmICmd() *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the stored session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := openApp(cmd)
			if err != nil {
				return err
			}
			defer app.Close()

			ctx := cmd.Context()
			if app.session.HasCredential(ctx) {
				if err := app.session.Restore(ctx); err != nil {
					app.printErr(err)
				}
			}
			return app.WhoAmI(ctx, nil)
		},
	}
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print build information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			buildinfo.PrintBuildData(cmd.OutOrStdout())
		},
	}
}
