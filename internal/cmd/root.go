package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// Exit codes.
// These match the expectations of shell scripts:
//
//	0 = selection made (use the result)
//	1 = cancelled by user
//	2 = fallback (no TTY, bad input, etc.)
const (
	exitSuccess   = 0
	exitCancelled = 1
	exitFallback  = 2
)

// Command groups for help output.
const (
	groupPick  = "pick"
	groupSetup = "setup"
)

// errCancelled is returned when the user leaves a picker without choosing.
var errCancelled = errors.New("cancelled")

var rootCmd = &cobra.Command{
	Use:   "itempicker",
	Short: "Pick one item from a list with a scroll wheel",
	Long: `itempicker - a scroll wheel picker for the terminal

Items come from arguments, a config list, a file or stdin. The picker draws
on the terminal; the chosen item is printed to stdout so it can be captured:

  choice=$(printf 'red\ngreen\nblue\n' | itempicker pick)`,
	SilenceErrors: true,
	SilenceUsage:  true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		applyColorMode()
	},
}

// Execute runs the root command and returns the process exit code.
func Execute() int {
	err := rootCmd.Execute()
	code := ExitCode(err)
	if err != nil && code != exitCancelled {
		fmt.Fprintf(os.Stderr, "%sitempicker:%s %v\n", colorRed, colorReset, err)
	}
	return code
}

// ExitCode maps a command error to a process exit code.
func ExitCode(err error) int {
	switch {
	case err == nil:
		return exitSuccess
	case errors.Is(err, errCancelled):
		return exitCancelled
	default:
		return exitFallback
	}
}

func init() {
	rootCmd.AddGroup(
		&cobra.Group{ID: groupPick, Title: "Pickers:"},
		&cobra.Group{ID: groupSetup, Title: "Setup:"},
	)
	rootCmd.PersistentFlags().StringVar(&colorMode, "color", "auto", "color output: auto, always, or never")
	rootCmd.PersistentFlags().BoolVar(&debugFlag, "debug", false, "write debug logs to the log file")

	rootCmd.AddCommand(pickCmd)
	rootCmd.AddCommand(numberCmd)
	rootCmd.AddCommand(dateCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(versionCmd)
}
