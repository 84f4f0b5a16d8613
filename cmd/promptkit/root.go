package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"promptkit/internal/extension"
)

var (
	apiURL       string
	configDir    string
	outputFormat string
	verbose      bool
)

var rootCmd = &cobra.Command{
	Use:   "promptkit",
	Short: "Browse and copy your PromptKit prompts from the terminal",
	Long: `promptkit is the command-line companion to the PromptKit web app.

Sign in with a token issued by the web app, then list the prompts you
created or liked, narrow them by folder and category tags, and copy a
prompt's content to stdout.

Examples:
  promptkit login <token> --username ada
  promptkit prompts created --tag <folder-id>
  promptkit copy <prompt-id> | pbcopy`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		switch outputFormat {
		case "yaml", "json":
		default:
			return fmt.Errorf("unknown output format %q (want yaml or json)", outputFormat)
		}
		return nil
	},
}

func init() {
	rootCmd.SilenceUsage = true

	rootCmd.PersistentFlags().StringVar(
		&apiURL, "api", "", "PromptKit server URL (default: $PROMPTKIT_API_URL or http://localhost:8080)",
	)
	rootCmd.PersistentFlags().StringVar(
		&configDir, "config-dir", "", "directory holding the session file (default: $PROMPTKIT_CONFIG_DIR or ~/.promptkit)",
	)
	rootCmd.PersistentFlags().StringVarP(
		&outputFormat, "output", "o", "yaml", "output format: yaml or json",
	)
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log requests to stderr")

	viper.SetEnvPrefix("PROMPTKIT")
	viper.SetDefault("api_url", "http://localhost:8080")
	viper.BindEnv("api_url")
	viper.BindPFlag("api_url", rootCmd.PersistentFlags().Lookup("api"))

	rootCmd.AddCommand(loginCmd)
	rootCmd.AddCommand(logoutCmd)
	rootCmd.AddCommand(statusCmd)
	rootCmd.AddCommand(promptsCmd)
	rootCmd.AddCommand(copyCmd)
	rootCmd.AddCommand(foldersCmd)
}

// env bundles the pieces every command needs.
type env struct {
	client *extension.Client
	store  *extension.ViperStore
	bus    *extension.Bus
	logger *slog.Logger
}

func newEnv(cmd *cobra.Command) (*env, error) {
	dir := configDir
	if dir == "" {
		var err error
		if dir, err = extension.DefaultDir(); err != nil {
			return nil, err
		}
	}

	var logOut io.Writer = io.Discard
	if verbose {
		logOut = cmd.ErrOrStderr()
	}
	logger := slog.New(slog.NewTextHandler(logOut, &slog.HandlerOptions{Level: slog.LevelDebug}))

	return &env{
		client: extension.NewClient(viper.GetString("api_url"), ""),
		store:  extension.NewViperStore(dir),
		bus:    extension.NewBus(),
		logger: logger,
	}, nil
}

// signedInPopup loads and validates the stored session.
func (e *env) signedInPopup(cmd *cobra.Command) (*extension.Popup, error) {
	popup := extension.NewPopup(e.client, e.store, e.bus, e.logger)
	ok, err := popup.Init(cmd.Context())
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, errNotSignedIn
	}
	return popup, nil
}

var errNotSignedIn = errors.New("not signed in: run 'promptkit login <token>' first")
