package commands

import (
	"errors"
	"io"
	"io/fs"
	"os"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"pairing/internal/app"
	"pairing/internal/domain"
)

var (
	home       string
	configPath string
	passphrase string
	relayURL   string
	logLevel   string
	timeout    time.Duration

	wire *app.Wire
)

// Execute runs the CLI with os.Args.
func Execute() error {
	return newRootCmd().Execute()
}

// ExitCode maps an Execute error onto a process exit status.
func ExitCode(err error) int {
	switch domain.Classify(err) {
	case domain.KindNone:
		return 0
	case domain.KindNetworking:
		return 2
	default:
		return 1
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:          "pairing",
		Short:        "Pair devices through a session directory",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			wire, err = app.NewWire(cfg, app.WithConsole(cmd.ErrOrStderr(), !isTerminal(cmd.ErrOrStderr())))
			return err
		},
	}

	root.PersistentFlags().StringVar(&home, "home", "", "state dir (default $PAIRING_HOME or ~/.pairing)")
	root.PersistentFlags().StringVar(&configPath, "config", "", "config file (default <home>/config.toml)")
	root.PersistentFlags().StringVarP(&passphrase, "passphrase", "p", "", "passphrase protecting the device key")
	root.PersistentFlags().StringVar(&relayURL, "relay", "", "directory base URL (e.g. http://127.0.0.1:8000/)")
	root.PersistentFlags().StringVar(&logLevel, "log-level", "", "trace, debug, info, warn, error or off")
	root.PersistentFlags().DurationVar(&timeout, "timeout", 0, "per-request timeout")

	root.AddCommand(
		initCmd(),
		fingerprintCmd(),
		startCmd(),
		joinCmd(),
		participantsCmd(),
		ackCmd(),
		deleteCmd(),
		refreshCmd(),
	)
	return root
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// loadConfig layers defaults, the config file and flags, in that order.
func loadConfig(cmd *cobra.Command) (app.Config, error) {
	cfg := app.DefaultConfig()
	if home != "" {
		cfg.Home = home
	}

	path := configPath
	if path == "" {
		path = app.ConfigPath(cfg.Home)
	}
	if _, err := os.Stat(path); err == nil {
		loaded, err := app.LoadConfig(path)
		if err != nil {
			return app.Config{}, err
		}
		if home != "" {
			loaded.Home = home
		}
		cfg = loaded
	} else if configPath != "" || !errors.Is(err, fs.ErrNotExist) {
		return app.Config{}, err
	}

	flags := cmd.Flags()
	if flags.Changed("relay") {
		cfg.RelayURL = relayURL
	}
	if flags.Changed("log-level") {
		cfg.LogLevel = logLevel
	}
	if flags.Changed("timeout") {
		cfg.RequestTimeout = timeout
	}
	return cfg, nil
}
