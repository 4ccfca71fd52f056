package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/1broseidon/tagwm/internal/ipc"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Print the status text shown in the bar",
	Args:  cobra.NoArgs,
	RunE:  runStatus,
}

var setStatusCmd = &cobra.Command{
	Use:   "set-status <text>",
	Short: "Set the status text shown in the bar",
	Long:  "set-status writes plain text to the root window name, like xsetroot -name.",
	Args:  cobra.ExactArgs(1),
	RunE:  runSetStatus,
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the tagwmctl version",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "tagwmctl-%s\n", version)
	},
}

func init() {
	rootCmd.AddCommand(statusCmd)
	rootCmd.AddCommand(setStatusCmd)
	rootCmd.AddCommand(versionCmd)
}

func runStatus(cmd *cobra.Command, args []string) error {
	conn, err := openRoot(displayName)
	if err != nil {
		return err
	}
	defer conn.Close()

	out := cmd.OutOrStdout()
	text, ok := ipc.NewClient(conn).Status()
	if !ok {
		warnColor.Fprint(out, "pending command: ")
		fmt.Fprintln(out, text)
		return nil
	}
	fmt.Fprintln(out, text)
	return nil
}

func runSetStatus(cmd *cobra.Command, args []string) error {
	if strings.HasPrefix(args[0], ipc.Prefix) {
		return fmt.Errorf("status text must not start with the command prefix")
	}
	conn, err := openRoot(displayName)
	if err != nil {
		return err
	}
	defer conn.Close()
	return conn.SetRootName(args[0])
}
