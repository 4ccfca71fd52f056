package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/1broseidon/tagwm/internal/ipc"
)

var queueCmd = &cobra.Command{
	Use:   "queue <window> [class] [instance] [title]",
	Short: "Hide a window behind the next window that matches",
	Long: `queue registers a swallow intent: the next new window whose WM_CLASS class,
instance and title contain the given substrings takes the place of <window>.
Empty filters match anything. Use "self" for <window> to take $WINDOWID.`,
	Args: cobra.RangeArgs(1, 4),
	RunE: runQueue,
}

var swallowCmd = &cobra.Command{
	Use:   "swallow <hidden> <visible>",
	Short: "Hide a managed window behind another managed window",
	Args:  cobra.ExactArgs(2),
	RunE:  runSwallow,
}

func init() {
	rootCmd.AddCommand(queueCmd)
	rootCmd.AddCommand(swallowCmd)
}

func windowArg(s string) (uint32, error) {
	if s == "self" {
		s = os.Getenv("WINDOWID")
		if s == "" {
			return 0, fmt.Errorf("self: WINDOWID is not set")
		}
	}
	return ipc.ParseWindowID(s)
}

func runQueue(cmd *cobra.Command, args []string) error {
	win, err := windowArg(args[0])
	if err != nil {
		return err
	}
	filters := make([]string, 3)
	copy(filters, args[1:])

	command, err := ipc.FormatSwallowQueue(win, filters[0], filters[1], filters[2])
	if err != nil {
		return err
	}
	return publish(cmd.OutOrStdout(), command)
}

func runSwallow(cmd *cobra.Command, args []string) error {
	hidden, err := windowArg(args[0])
	if err != nil {
		return err
	}
	visible, err := windowArg(args[1])
	if err != nil {
		return err
	}
	if hidden == visible {
		return fmt.Errorf("a window cannot swallow itself")
	}

	command, err := ipc.FormatSwallow(hidden, visible)
	if err != nil {
		return err
	}
	return publish(cmd.OutOrStdout(), command)
}
