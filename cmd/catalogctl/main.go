// Command catalogctl runs catalog use cases against Spanner from the shell.
package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/prometheus/common/expfmt"
	"github.com/spf13/cobra"

	"github.com/light-bringer/tracked-catalog/internal/config"
	"github.com/light-bringer/tracked-catalog/internal/services"
)

func main() {
	log.SetFlags(0)

	a := &app{out: os.Stdout}
	if err := a.execute(context.Background(), os.Args[1:]); err != nil {
		log.Fatal(err)
	}
}

// app carries state shared by every subcommand.
type app struct {
	out         io.Writer
	configPath  string
	database    string
	dumpMetrics bool

	cfg *config.Config
	svc *services.ServiceOptions
}

// execute runs one command line. The Spanner client is closed on every
// path, including a failed subcommand.
func (a *app) execute(ctx context.Context, args []string) (err error) {
	defer func() {
		if cerr := a.close(); err == nil {
			err = cerr
		}
	}()

	cmd := a.rootCmd()
	cmd.SetArgs(args)
	return cmd.ExecuteContext(ctx)
}

func newRootCmd(out io.Writer) *cobra.Command {
	return (&app{out: out}).rootCmd()
}

func (a *app) rootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "catalogctl",
		Short:         "Manage catalog products stored in Spanner",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	flags := cmd.PersistentFlags()
	flags.StringVarP(&a.configPath, "config", "c", "", "YAML config file")
	flags.StringVar(&a.database, "database", "", "Spanner database path (overrides config and SPANNER_DATABASE)")
	flags.BoolVar(&a.dumpMetrics, "dump-metrics", false, "print commit metrics on exit")

	cmd.AddCommand(
		newCreateCmd(a),
		newEditCmd(a),
		newStatusCmd(a, true),
		newStatusCmd(a, false),
		newArchiveCmd(a),
		newGetCmd(a),
		newListCmd(a),
		newEventsCmd(a),
	)

	return cmd
}

// services loads configuration and connects on first use.
func (a *app) services(ctx context.Context) (*services.ServiceOptions, error) {
	if a.svc != nil {
		return a.svc, nil
	}

	cfg, err := config.Load(a.configPath)
	if err != nil {
		return nil, err
	}
	if a.database != "" {
		cfg.Spanner.Database = a.database
		if err := cfg.Validate(); err != nil {
			return nil, err
		}
	}
	if cfg.Spanner.EmulatorHost != "" {
		log.Printf("Using Spanner emulator at %s", cfg.Spanner.EmulatorHost)
	}

	svc, err := services.NewServiceOptions(ctx, cfg)
	if err != nil {
		return nil, err
	}

	a.cfg, a.svc = cfg, svc
	return svc, nil
}

func (a *app) close() error {
	if a.svc == nil {
		return nil
	}
	svc := a.svc
	a.svc = nil
	defer svc.Close()

	if !a.dumpMetrics && (a.cfg == nil || !a.cfg.Metrics.Dump) {
		return nil
	}

	families, err := svc.Registry.Gather()
	if err != nil {
		return fmt.Errorf("failed to gather metrics: %w", err)
	}
	for _, mf := range families {
		if _, err := expfmt.MetricFamilyToText(a.out, mf); err != nil {
			return err
		}
	}
	return nil
}
