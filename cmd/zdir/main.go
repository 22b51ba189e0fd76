package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/jbweber/zdir/internal/config"
	"github.com/jbweber/zdir/internal/ctxlog"
	"github.com/jbweber/zdir/internal/libvirt"
	"github.com/jbweber/zdir/internal/makevm"
	"github.com/jbweber/zdir/internal/naming"
	"github.com/jbweber/zdir/internal/output"
)

var (
	version = "dev"
	commit  = "unknown"
)

// configEnv names the environment variable consulted when --config is not given.
const configEnv = "ZDIR_CONFIG"

// exitError carries a process exit status out of a command without an
// error message; the command has already reported the failure.
type exitError struct {
	code int
}

func (e *exitError) Error() string { return fmt.Sprintf("exit status %d", e.code) }

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

// run executes the CLI and returns the process exit status.
func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	root := newRootCmd(stdout, stderr)
	root.SetArgs(args)

	err := root.ExecuteContext(ctx)
	if err == nil {
		return 0
	}

	var exitErr *exitError
	if errors.As(err, &exitErr) {
		return exitErr.code
	}
	_, _ = fmt.Fprintf(stderr, "Error: %v\n", err)
	return 1
}

// rootOptions are the persistent flags shared by every subcommand.
type rootOptions struct {
	configPath string
	logLevel   string
	logFormat  string
}

// loadConfig reads the configuration named by --config or $ZDIR_CONFIG,
// falling back to the defaults, and applies the logging flag overrides.
func (o *rootOptions) loadConfig() (*config.Config, error) {
	path := o.configPath
	if path == "" {
		path = os.Getenv(configEnv)
	}

	cfg := config.Default()
	if path != "" {
		var err error
		if cfg, err = config.LoadFromFile(path); err != nil {
			return nil, fmt.Errorf("failed to load configuration %s: %w", path, err)
		}
	}

	if o.logLevel != "" {
		cfg.Logging.Level = o.logLevel
	}
	if o.logFormat != "" {
		cfg.Logging.Format = o.logFormat
	}
	return cfg, nil
}

// setup loads the configuration and returns a context carrying the logger.
func (o *rootOptions) setup(ctx context.Context, stderr io.Writer) (context.Context, *config.Config, error) {
	cfg, err := o.loadConfig()
	if err != nil {
		return nil, nil, err
	}

	logger, err := ctxlog.New(stderr, cfg.Logging.Level, cfg.Logging.Format)
	if err != nil {
		return nil, nil, err
	}
	return ctxlog.WithLogger(ctx, logger), cfg, nil
}

func newRootCmd(stdout, stderr io.Writer) *cobra.Command {
	opts := &rootOptions{}

	root := &cobra.Command{
		Use:   "zdir",
		Short: "zdir - z/VM user directory provisioning",
		Long: `zdir creates z/VM guests by building their user directory entry from
MakeVM operands and submitting it through SMAPI.

Guests can alternatively be defined as s390x libvirt domains when the
configuration selects the libvirt backend.`,
		Version:       fmt.Sprintf("%s (commit: %s)", version, commit),
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.SetOut(stdout)
	root.SetErr(stderr)

	root.PersistentFlags().StringVar(&opts.configPath, "config", "", "configuration file (default $"+configEnv+")")
	root.PersistentFlags().StringVar(&opts.logLevel, "log-level", "", "log level: debug, info, warn, error")
	root.PersistentFlags().StringVar(&opts.logFormat, "log-format", "", "log format: text or json")

	root.AddCommand(newMakeVMCmd(opts, stdout, stderr))
	root.AddCommand(newShowCmd(opts, stdout, stderr))
	root.AddCommand(newTestConnCmd(opts, stdout, stderr))
	return root
}

func newMakeVMCmd(opts *rootOptions, stdout, stderr io.Writer) *cobra.Command {
	var (
		dryRun    bool
		format    string
		noHeaders bool
	)

	cmd := &cobra.Command{
		Use:   "makevm <userid> <subfunction> [operands...]",
		Short: "Create a virtual machine in the z/VM user directory",
		Long: `Build a z/VM user directory entry from MakeVM operands and submit it.

Flags for zdir itself must come before the userid; everything after it is
passed to MakeVM unchanged. Run "zdir makevm help" for the operand list.

The exit status is the request's overall return code.`,
		Example: `  zdir makevm LINUX01 directory PASSW0RD 2G G --cpus 2 --ipl 0100
  zdir makevm --dry-run -o yaml LINUX01 directory PASSW0RD 2G G --maxMemSize 8G --setReservedMem
  zdir makevm help`,
		Args: cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := output.ValidateFormat(format); err != nil {
				return err
			}
			formatter, err := output.NewFormatter(output.Options{Format: output.Format(format), NoHeaders: noHeaders})
			if err != nil {
				return err
			}

			ctx, cfg, err := opts.setup(cmd.Context(), stderr)
			if err != nil {
				return err
			}

			tokens := append([]string{makevm.FunctionName}, args...)
			results := makevm.Run(ctx, tokens, cfg, makevm.Options{DryRun: dryRun, Out: stdout})

			if !quiet(output.Format(format), results) {
				text, err := formatter.FormatResults(results)
				if err != nil {
					return err
				}
				_, _ = fmt.Fprint(stdout, text)
			}

			if !results.OK() {
				return &exitError{code: results.OverallRC}
			}
			return nil
		},
	}

	cmd.Flags().SetInterspersed(false)
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "print the directory entry instead of submitting it")
	cmd.Flags().StringVarP(&format, "output", "o", string(output.FormatTable), "output format: table, yaml, json")
	cmd.Flags().BoolVar(&noHeaders, "no-headers", false, "omit the header row in table output")
	return cmd
}

// quiet reports whether a table-format result has nothing worth printing,
// as after HELP and VERSION.
func quiet(format output.Format, r makevm.Results) bool {
	return format == output.FormatTable && r.OK() && len(r.Response) == 0 && len(r.Directory) == 0
}

func newShowCmd(opts *rootOptions, stdout, stderr io.Writer) *cobra.Command {
	return &cobra.Command{
		Use:   "show <userid>",
		Short: "Show the directory entry a libvirt domain was defined from",
		Long: `Print the z/VM directory entry stored in the metadata of the libvirt
domain for a userid. Requires the libvirt backend.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cfg, err := opts.setup(cmd.Context(), stderr)
			if err != nil {
				return err
			}
			if cfg.Backend != config.BackendLibvirt {
				return fmt.Errorf("show requires the %s backend, configured backend is %s", config.BackendLibvirt, cfg.Backend)
			}

			userID, err := naming.NormalizeUserID(args[0])
			if err != nil {
				return err
			}

			entry, err := libvirt.NewSubmitter(cfg.Libvirt.Socket, cfg.Libvirt.Timeout).Lookup(ctx, userID)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprint(stdout, entry.String())
			return nil
		},
	}
}

func newTestConnCmd(opts *rootOptions, stdout, stderr io.Writer) *cobra.Command {
	return &cobra.Command{
		Use:   "test-conn",
		Short: "Test the configured backend",
		Long: `Check that the configured submission backend is usable.

For the smcli backend this checks that the SMAPI client exists. For the
libvirt backend it connects to the daemon and displays version information.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cfg, err := opts.setup(cmd.Context(), stderr)
			if err != nil {
				return err
			}

			if cfg.Backend != config.BackendLibvirt {
				info, err := os.Stat(cfg.SMCLI.Path)
				if err != nil {
					return fmt.Errorf("SMAPI client not available: %w", err)
				}
				if info.IsDir() || info.Mode()&0o111 == 0 {
					return fmt.Errorf("SMAPI client %s is not executable", cfg.SMCLI.Path)
				}
				_, _ = fmt.Fprintf(stdout, "✓ SMAPI client: %s\n", cfg.SMCLI.Path)
				return nil
			}

			client, err := libvirt.ConnectWithContext(ctx, cfg.Libvirt.Socket, cfg.Libvirt.Timeout)
			if err != nil {
				return fmt.Errorf("failed to connect to libvirt: %w", err)
			}
			defer func() {
				if closeErr := client.Close(); closeErr != nil {
					ctxlog.FromContext(ctx).Warn("failed to close libvirt connection", "error", closeErr)
				}
			}()

			_, _ = fmt.Fprintln(stdout, "✓ Connected to libvirt daemon")

			libVersion, err := client.Ping()
			if err != nil {
				return fmt.Errorf("connection test failed: %w", err)
			}
			_, _ = fmt.Fprintf(stdout, "✓ Libvirt version: %s\n", libVersion)

			hostname, err := client.Libvirt().ConnectGetHostname()
			if err != nil {
				return fmt.Errorf("failed to get hostname: %w", err)
			}
			_, _ = fmt.Fprintf(stdout, "✓ Hypervisor hostname: %s\n", hostname)

			_, _ = fmt.Fprintln(stdout, "\nConnection test successful!")
			return nil
		},
	}
}
