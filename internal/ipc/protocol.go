package ipc

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Commands travel through the root window's WM_NAME as
// <Prefix><command>[<Separator><arg>]...
const (
	Prefix      = "#!"
	Separator   = "###"
	MaxSegments = 16
)

// CommandType represents different root-name command types
type CommandType string

const (
	CommandSwallowQueue CommandType = "swallowqueue"
	CommandSwallow      CommandType = "swallow"
)

var (
	ErrNoPrefix       = errors.New("not a command")
	ErrUnknownCommand = errors.New("unknown command")
	ErrTooFewArgs     = errors.New("too few arguments")
	ErrBadWindowID    = errors.New("invalid window id")
	ErrSeparatorInArg = errors.New("argument contains the command separator")
)

// Request is one decoded root-name command.
type Request struct {
	Command CommandType
	Args    []string
}

// Arg returns argument i, or "" when it was not supplied.
func (r Request) Arg(i int) string {
	if i < 0 || i >= len(r.Args) {
		return ""
	}
	return r.Args[i]
}

// Validate checks the command name and argument count. Nothing beyond that
// is checked.
func (r Request) Validate() error {
	switch r.Command {
	case CommandSwallowQueue:
		if len(r.Args) < 1 {
			return fmt.Errorf("%s: %w", r.Command, ErrTooFewArgs)
		}
	case CommandSwallow:
		if len(r.Args) < 2 {
			return fmt.Errorf("%s: %w", r.Command, ErrTooFewArgs)
		}
	default:
		return fmt.Errorf("%q: %w", r.Command, ErrUnknownCommand)
	}
	return nil
}

// Parse decodes a root window name. ok is false when name does not carry the
// command prefix and should be shown as status text instead.
func Parse(name string) (req Request, ok bool) {
	if !strings.HasPrefix(name, Prefix) {
		return Request{}, false
	}
	segments := strings.SplitN(strings.TrimPrefix(name, Prefix), Separator, MaxSegments)
	req.Command = CommandType(segments[0])
	req.Args = segments[1:]
	return req, true
}

// Decode parses and validates name in one step.
func Decode(name string) (Request, error) {
	req, ok := Parse(name)
	if !ok {
		return Request{}, ErrNoPrefix
	}
	if err := req.Validate(); err != nil {
		return req, err
	}
	return req, nil
}

// Format encodes a command for publishing on the root window.
func Format(cmd CommandType, args ...string) (string, error) {
	if len(args)+1 > MaxSegments {
		return "", fmt.Errorf("%s: at most %d arguments", cmd, MaxSegments-1)
	}
	var b strings.Builder
	b.WriteString(Prefix)
	b.WriteString(string(cmd))
	for _, a := range args {
		if strings.Contains(a, Separator) {
			return "", fmt.Errorf("%q: %w", a, ErrSeparatorInArg)
		}
		b.WriteString(Separator)
		b.WriteString(a)
	}
	return b.String(), nil
}

// FormatSwallowQueue encodes a swallowqueue command. Trailing empty filters
// are omitted.
func FormatSwallowQueue(win uint32, class, instance, title string) (string, error) {
	args := []string{FormatWindowID(win), class, instance, title}
	for len(args) > 1 && args[len(args)-1] == "" {
		args = args[:len(args)-1]
	}
	return Format(CommandSwallowQueue, args...)
}

// FormatSwallow encodes a swallow command: hidden is swallowed by visible.
func FormatSwallow(hidden, visible uint32) (string, error) {
	return Format(CommandSwallow, FormatWindowID(hidden), FormatWindowID(visible))
}

// ParseWindowID accepts decimal, 0x-prefixed hex or 0-prefixed octal ids.
func ParseWindowID(s string) (uint32, error) {
	v, err := strconv.ParseUint(strings.TrimSpace(s), 0, 32)
	if err != nil {
		return 0, fmt.Errorf("%q: %w", s, ErrBadWindowID)
	}
	return uint32(v), nil
}

// FormatWindowID renders a window id the way xprop and xdotool print it.
func FormatWindowID(win uint32) string {
	return fmt.Sprintf("0x%x", win)
}
