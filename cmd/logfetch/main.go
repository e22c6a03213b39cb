// logfetch - pick a log file on an SFTP server and download it
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/Bibi40k/sftp-logfetch/internal/prompt"
	"github.com/spf13/cobra"
)

var cfgFile string
var debugLogs bool

var cfgViper = newViper()

var rootCmd = &cobra.Command{
	Use:           "logfetch",
	Short:         "Pick a log file on an SFTP server and download it",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		_ = initDebugLogger()
		return readConfigFile(cfgViper, cfgFile)
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return runWith(cmd.Context(), (*app).runFetch)
	},
}

var fetchCmd = &cobra.Command{
	Use:           "fetch",
	Short:         "Ask for server, credentials and directory, then pick a log to download",
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runWith(cmd.Context(), (*app).runFetch)
	},
}

var lastCmd = &cobra.Command{
	Use:           "last",
	Short:         "Download the previously fetched log again (asks only for the password)",
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runWith(cmd.Context(), (*app).runLast)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.logfetch.yaml)")
	rootCmd.PersistentFlags().BoolVar(&debugLogs, "debug", false, "Enable debug logging to "+debugLogPath)
	if err := addFlags(rootCmd, cfgViper); err != nil {
		panic(err)
	}
	rootCmd.AddCommand(fetchCmd)
	rootCmd.AddCommand(lastCmd)
}

func runWith(ctx context.Context, run func(*app, context.Context) error) error {
	cfg, err := loadSettings(cfgViper)
	if err != nil {
		return err
	}
	if !cfg.NonInteractive && !prompt.IsInteractive() {
		return &userError{
			msg:  "no terminal attached",
			hint: "pass --non-interactive with --host, --user, --path and --file (password via LOGFETCH_PASSWORD)",
		}
	}
	a, err := newApp(cfg, getLogger())
	if err != nil {
		return err
	}
	return run(a, ctx)
}

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	restoreTTY := prompt.CaptureTTY()

	// Prompts read Ctrl+C as a key; a signal only arrives outside them.
	// The first one cancels the running download, the second exits.
	sigCh := make(chan os.Signal, 2)
	signal.Notify(sigCh, os.Interrupt)
	go func() {
		<-sigCh
		restoreTTY()
		cancel()
		<-sigCh
		fmt.Println("\nCancelled.")
		os.Exit(0)
	}()

	err := rootCmd.ExecuteContext(ctx)
	cancel()
	code := report(os.Stdout, os.Stderr, err)
	if debugCleanup != nil {
		debugCleanup()
	}
	if code != 0 {
		os.Exit(code)
	}
}

// report prints err the way users see it and returns the exit status.
func report(stdout, stderr io.Writer, err error) int {
	if err == nil {
		return 0
	}
	if errors.Is(err, context.Canceled) {
		_, _ = fmt.Fprintln(stdout, "\nCancelled.")
		return 0
	}

	const (
		red    = "\033[31m"
		yellow = "\033[33m"
		cyan   = "\033[36m"
		reset  = "\033[0m"
	)
	var ue *userError
	if errors.As(err, &ue) {
		_, _ = fmt.Fprintf(stderr, "%sError:%s %s\n", red, reset, ue.Error())
		if hint := ue.Hint(); hint != "" {
			_, _ = fmt.Fprintf(stderr, "%sHint:%s %s%s%s\n", yellow, reset, cyan, hint, reset)
		}
	} else {
		_, _ = fmt.Fprintf(stderr, "%sError:%s %v\n", red, reset, err)
	}
	return 1
}
