package cmd

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/jpfielding/lut.go/pkg/config"
	"github.com/jpfielding/lut.go/pkg/logging"
	"github.com/spf13/cobra"
)

// Env carries state loaded once by the root command
type Env struct {
	Config *config.Config
	logOut io.Closer
}

// NewEnv returns an Env holding the default config
func NewEnv() *Env {
	return &Env{Config: config.Default()}
}

// Close releases the log file opened by setup, if any
func (e *Env) Close() error {
	if e.logOut == nil {
		return nil
	}
	err := e.logOut.Close()
	e.logOut = nil
	return err
}

// Execute runs the command tree on args and closes the log file whether or
// not the command failed
func Execute(ctx context.Context, gitsha string, args []string) error {
	env := NewEnv()
	defer env.Close()
	root := newRoot(ctx, gitsha, env)
	root.SetArgs(args)
	return root.ExecuteContext(ctx)
}

func NewRoot(ctx context.Context, gitsha string) *cobra.Command {
	return newRoot(ctx, gitsha, NewEnv())
}

func newRoot(ctx context.Context, gitsha string, env *Env) *cobra.Command {
	cmd := &cobra.Command{
		Use:           "lutctl",
		Short:         "a CLI to synthesize and preview 3D colour LUTs",
		Long:          "lutctl turns colour adjustment records into .cube LUTs and renders previews of them on photos.",
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return env.setup(ctx, cmd)
		},
		Run: func(cmd *cobra.Command, args []string) {
			printCommandTree(cmd, 0)
		},
	}
	cmd.AddCommand(
		NewVersionCmd(ctx, gitsha),
		NewExportCmd(ctx, env),
		NewPreviewCmd(ctx, env),
		NewApplyCmd(ctx, env),
		NewInspectCmd(ctx, env),
		NewProbeCmd(ctx, env),
	)
	pf := cmd.PersistentFlags()
	pf.String("config", "", "YAML config file (default: $"+config.EnvConfig+")")
	pf.String("log-level", "INFO", "Log level (DEBUG, INFO, WARN, ERROR)")
	pf.String("log-format", "text", "Log format (text|json)")
	pf.String("log-file", "", "Rotated log file instead of stderr")
	return cmd
}

// setup loads the config file, lets log flags override it and installs the default logger
func (e *Env) setup(ctx context.Context, cmd *cobra.Command) error {
	path, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(path)
	if err != nil {
		return err
	}
	flags := cmd.Flags()
	if flags.Changed("log-level") {
		cfg.Log.Level, _ = flags.GetString("log-level")
	}
	if flags.Changed("log-format") {
		cfg.Log.Format, _ = flags.GetString("log-format")
	}
	if flags.Changed("log-file") {
		cfg.Log.File, _ = flags.GetString("log-file")
	}
	e.Config = cfg

	json, err := logging.IsJSON(cfg.Log.Format)
	if err != nil {
		return err
	}
	if err := e.Close(); err != nil {
		return fmt.Errorf("closing log file: %w", err)
	}
	var out io.Writer = os.Stderr
	if cfg.Log.File != "" {
		w := logging.RotatingFile(cfg.Log.File, cfg.Log.MaxSizeMB, cfg.Log.MaxBackups)
		e.logOut, out = w, w
	}
	level, lerr := logging.ParseLevel(cfg.Log.Level)
	slog.SetDefault(logging.Logger(out, json, level))
	if lerr != nil {
		slog.WarnContext(ctx, "Invalid log level, defaulting to INFO", "level", cfg.Log.Level, "error", lerr)
	}
	slog.DebugContext(ctx, "Loaded config", slog.String("path", path), slog.Any("config", cfg))
	return nil
}

func printCommandTree(cmd *cobra.Command, indent int) {
	fmt.Println(strings.Repeat("\t", indent), cmd.Use+":", cmd.Short)
	for _, subCmd := range cmd.Commands() {
		printCommandTree(subCmd, indent+1)
	}
}

func NewVersionCmd(ctx context.Context, gitsha string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "version",
		Short: "git sha for this build",
		Long:  "git sha for this build",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintln(cmd.OutOrStdout(), gitsha)
		},
	}
	return cmd
}
