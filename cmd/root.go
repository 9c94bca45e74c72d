package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"connectorauth/internal/authform"
	"connectorauth/internal/config"
	"connectorauth/pkg/logging"
)

// Exit codes for CLI commands.
const (
	// ExitCodeSuccess indicates successful execution.
	ExitCodeSuccess = 0
	// ExitCodeError indicates a general error (command failed, invalid arguments).
	ExitCodeError = 1
	// ExitCodeConfig indicates the configuration file could not be used.
	ExitCodeConfig = 2
	// ExitCodeInvalidHeaders indicates header rows that cannot be serialized.
	ExitCodeInvalidHeaders = 3
)

var (
	configPath string
	logLevel   string

	// appConfig is loaded before any subcommand runs.
	appConfig = config.GetDefaultConfig()
)

// rootCmd represents the base command for the connectorauth application.
var rootCmd = newRootCmd()

// newRootCmd builds the command tree.
func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "connectorauth",
		Short: "Edit and validate authentication settings of gateways and agents",
		Long: `connectorauth drives the authentication section of gateway and agent
forms: it selects the authentication scheme and OAuth grant type, masks and
reveals secrets, edits custom header lists and serializes them into the
JSON payload submitted to the backend.

Form states are YAML files that can be rendered, validated, watched or
edited interactively.`,
		// SilenceUsage prevents Cobra from printing the usage message on errors that are handled by the application.
		SilenceUsage:      true,
		PersistentPreRunE: initApp,
	}

	cmd.PersistentFlags().StringVar(&configPath, "config", config.GetDefaultConfigPathOrPanic(), "Configuration directory")
	cmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level: debug, info, warn or error (default: from config)")

	cmd.AddCommand(newVersionCmd())
	cmd.AddCommand(newRenderCmd())
	cmd.AddCommand(newHeadersCmd())
	cmd.AddCommand(newREPLCmd())
	cmd.AddCommand(newWatchCmd())
	return cmd
}

// SetVersion sets the version for the root command.
func SetVersion(v string) {
	rootCmd.Version = v
}

// GetVersion returns the current version of the application.
func GetVersion() string {
	return rootCmd.Version
}

// Execute is the main entry point for the CLI application. It is called by main.main().
func Execute() {
	rootCmd.SetVersionTemplate(`{{printf "connectorauth version %s\n" .Version}}`)

	err := rootCmd.Execute()
	if err != nil {
		os.Exit(getExitCode(err))
	}
}

// getExitCode determines the appropriate exit code based on the error type.
func getExitCode(err error) int {
	var configErrs config.ConfigurationErrorCollection
	if errors.As(err, &configErrs) {
		return ExitCodeConfig
	}

	var headersErr *HeadersInvalidError
	if errors.As(err, &headersErr) {
		return ExitCodeInvalidHeaders
	}

	return ExitCodeError
}

// initApp loads the configuration and initializes logging. The --log-level
// flag wins over the configured level.
func initApp(cmd *cobra.Command, args []string) error {
	logging.InitForCLI(logging.LevelWarn, cmd.ErrOrStderr())

	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		var configErrs config.ConfigurationErrorCollection
		if errors.As(err, &configErrs) {
			fmt.Fprintln(cmd.ErrOrStderr(), configErrs.GetDetailedReport())
		}
		return err
	}
	appConfig = cfg

	level := cfg.LogLevel()
	if logLevel != "" {
		level, err = logging.ParseLevel(logLevel)
		if err != nil {
			return err
		}
	}
	logging.InitForCLI(level, cmd.ErrOrStderr())
	return nil
}

// newEditor creates an editor configured from appConfig.
func newEditor() (*authform.Editor, error) {
	opts, err := authform.OptionsFromConfig(appConfig)
	if err != nil {
		return nil, err
	}
	return authform.NewEditor(opts), nil
}
