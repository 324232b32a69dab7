package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/gdamore/tcell/v2"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/mircot/bubble-popper/internal/app"
	"github.com/mircot/bubble-popper/internal/config"
	"github.com/mircot/bubble-popper/internal/observability"
	"github.com/mircot/bubble-popper/pkg"
	"github.com/mircot/bubble-popper/term"
)

var (
	cfgFile string
	mute    bool
)

// rootCmd starts a game when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:          "bubble-popper",
	Short:        "Chase and pop 25 bouncing circles.",
	Version:      Version,
	Args:         cobra.NoArgs,
	SilenceUsage: true,
	RunE:         runGame,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		if logger := observability.GetLogger(); logger != nil {
			logger.Error("Command execution failed", zap.Error(err))
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file (default is ./config.yaml)")
	rootCmd.SetVersionTemplate(`{{printf "%s\n" .Version}}`)

	flags := rootCmd.Flags()
	flags.String("backend", config.BackendWindow, "where to play: window or terminal")
	flags.Uint64("seed", 0, "random seed, 0 picks one from the clock")
	flags.String("theme", "", "path to a tengo theme script")
	flags.Bool("fullscreen", false, "start in fullscreen mode")
	flags.Bool("debug", false, "show the debug overlay")
	flags.String("log-level", "info", "log level (debug, info, warn, error)")
	flags.BoolVar(&mute, "mute", false, "disable sound")

	for key, name := range map[string]string{
		"window.backend":    "backend",
		"window.fullscreen": "fullscreen",
		"game.seed":         "seed",
		"game.theme":        "theme",
		"game.debug":        "debug",
		"logger.level":      "log-level",
	} {
		if err := viper.BindPFlag(key, flags.Lookup(name)); err != nil {
			panic(err)
		}
	}
}

// initializeConfig reads in config file and ENV variables if set.
func initializeConfig() error {
	config.SetDefaults(viper.GetViper())

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.AddConfigPath(".")
		viper.SetConfigName("config")
		viper.SetConfigType("yaml")
	}

	viper.SetEnvPrefix("POPPER")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return fmt.Errorf("error reading config file: %w", err)
		}
	}

	if mute {
		viper.Set("audio.enabled", false)
	}

	return nil
}

func runGame(cmd *cobra.Command, args []string) error {
	if err := initializeConfig(); err != nil {
		return err
	}

	cfg, err := config.Load(viper.GetViper())
	if err != nil {
		return err
	}

	// The terminal front end owns stdout, so console logs are dropped
	// there and only the log file (if any) receives them.
	console := zapcore.Lock(os.Stdout)
	if cfg.Window.Backend == config.BackendTerminal {
		console = zapcore.AddSync(io.Discard)
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	a, err := app.New(ctx, cfg, console)
	if err != nil {
		return err
	}
	defer func() { _ = a.Logger.Sync() }()

	a.Logger.Info("Starting bubble-popper", zap.String("version", Version))

	if cfg.Window.Backend == config.BackendTerminal {
		return runTerminal(ctx, a)
	}

	return pkg.Run(pkg.Options{
		Width:      cfg.Window.Width,
		Height:     cfg.Window.Height,
		Title:      cfg.Window.Title,
		Fullscreen: cfg.Window.Fullscreen,
		Debug:      cfg.Game.Debug,
		Theme:      a.Theme,
		Rand:       a.Rand,
		Sounds:     a.Sounds,
		Logger:     a.Logger,
	})
}

func runTerminal(ctx context.Context, a *app.App) error {
	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("opening terminal: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("initialising terminal: %w", err)
	}

	g := term.New(screen, term.Options{
		Theme:  a.Theme,
		Rand:   a.Rand,
		Logger: a.Logger,
	})

	return g.Run(ctx)
}
