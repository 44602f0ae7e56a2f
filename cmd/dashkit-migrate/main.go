// Command dashkit-migrate applies the embedded schema migrations.
// The database url comes from --db or SERVICE_PGSQL_DBURL
package main

import (
	"fmt"
	"os"
	"strconv"

	"dashkit/internal/platform/config"
	"dashkit/internal/platform/logger"
	"dashkit/internal/platform/store/migrate"

	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var dbURL string

	root := &cobra.Command{
		Use:          "dashkit-migrate",
		Short:        "Apply dashkit schema migrations",
		SilenceUsage: true,
	}
	root.PersistentFlags().StringVarP(&dbURL, "db", "d", "", "Postgres url (default: $SERVICE_PGSQL_DBURL)")

	open := func() (*migrate.Migrator, error) {
		u := dbURL
		if u == "" {
			u = config.New().Prefix("SERVICE_PGSQL_").MayString("DBURL", "")
		}
		if u == "" {
			return nil, fmt.Errorf("no database url: pass --db or set SERVICE_PGSQL_DBURL")
		}
		return migrate.New(u, logger.Named("migrate"))
	}

	with := func(fn func(cmd *cobra.Command, m *migrate.Migrator, args []string) error) func(*cobra.Command, []string) error {
		return func(cmd *cobra.Command, args []string) error {
			m, err := open()
			if err != nil {
				return err
			}
			defer m.Close()
			return fn(cmd, m, args)
		}
	}

	root.AddCommand(
		&cobra.Command{
			Use:   "up",
			Short: "Apply every pending migration",
			Args:  cobra.NoArgs,
			RunE: with(func(cmd *cobra.Command, m *migrate.Migrator, _ []string) error {
				if err := m.Up(); err != nil {
					return err
				}
				return printVersion(cmd, m)
			}),
		},
		&cobra.Command{
			Use:   "down [steps]",
			Short: "Revert the last steps migrations, or all of them",
			Args:  cobra.MaximumNArgs(1),
			RunE: with(func(cmd *cobra.Command, m *migrate.Migrator, args []string) error {
				steps := 0
				if len(args) == 1 {
					n, err := strconv.Atoi(args[0])
					if err != nil || n < 1 {
						return fmt.Errorf("steps must be a positive integer, got %q", args[0])
					}
					steps = n
				}
				if err := m.Down(steps); err != nil {
					return err
				}
				return printVersion(cmd, m)
			}),
		},
		&cobra.Command{
			Use:   "version",
			Short: "Print the applied migration version",
			Args:  cobra.NoArgs,
			RunE: with(func(cmd *cobra.Command, m *migrate.Migrator, _ []string) error {
				return printVersion(cmd, m)
			}),
		},
		&cobra.Command{
			Use:   "force <version>",
			Short: "Mark a version as applied and clear the dirty flag",
			Args:  cobra.ExactArgs(1),
			RunE: with(func(cmd *cobra.Command, m *migrate.Migrator, args []string) error {
				v, err := strconv.Atoi(args[0])
				if err != nil {
					return fmt.Errorf("version must be an integer, got %q", args[0])
				}
				if err := m.Force(v); err != nil {
					return err
				}
				return printVersion(cmd, m)
			}),
		},
	)
	return root
}

func printVersion(cmd *cobra.Command, m *migrate.Migrator) error {
	v, dirty, ok, err := m.Version()
	if err != nil {
		return err
	}
	if !ok {
		cmd.Println("no migrations applied")
		return nil
	}
	if dirty {
		cmd.Printf("version %d (dirty)\n", v)
		return nil
	}
	cmd.Printf("version %d\n", v)
	return nil
}
