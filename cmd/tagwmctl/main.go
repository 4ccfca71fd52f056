package main

import (
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/1broseidon/tagwm/internal/ipc"
	"github.com/1broseidon/tagwm/internal/x11"
)

var version = "6.4"

var (
	displayName string
	printOnly   bool
	noColor     bool

	successColor = color.New(color.FgGreen, color.Bold)
	errorColor   = color.New(color.FgRed, color.Bold)
	infoColor    = color.New(color.FgCyan)
	warnColor    = color.New(color.FgYellow)
)

// rootConn is the part of the display connection tagwmctl needs.
type rootConn interface {
	ipc.RootNamer
	Close()
}

// openRoot connects to the display. Replaced in tests.
var openRoot = func(display string) (rootConn, error) {
	conn, err := x11.NewConnection(display)
	if err != nil {
		return nil, err
	}
	return conn, nil
}

var rootCmd = &cobra.Command{
	Use:   "tagwmctl",
	Short: "Send commands to a running tagwm",
	Long: `tagwmctl writes commands to the root window name, where tagwm picks them
up, and reads the status text back.

Window ids are accepted in decimal or 0x-prefixed hex, as printed by xprop
and xdotool.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	Version:       version,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&displayName, "display", "", "X display (default: $DISPLAY)")
	rootCmd.PersistentFlags().BoolVar(&printOnly, "print", false, "Print the encoded command instead of publishing it")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "Disable colored output")

	cobra.OnInitialize(func() {
		if noColor || !term.IsTerminal(int(os.Stdout.Fd())) {
			color.NoColor = true
		}
	})
}

// publish writes an encoded command to the root window, or prints it with
// --print.
func publish(out io.Writer, command string) error {
	if printOnly {
		fmt.Fprintln(out, command)
		return nil
	}
	conn, err := openRoot(displayName)
	if err != nil {
		return err
	}
	defer conn.Close()

	if err := ipc.NewClient(conn).Publish(command); err != nil {
		return err
	}
	successColor.Fprint(out, "published ")
	infoColor.Fprintln(out, command)
	return nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		errorColor.Fprint(os.Stderr, "error: ")
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
