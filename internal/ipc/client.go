package ipc

import "fmt"

// RootNamer reads and writes the root window's WM_NAME.
type RootNamer interface {
	RootName() string
	SetRootName(name string) error
}

// Client publishes commands to a running window manager by storing them in
// the root window name.
type Client struct {
	root RootNamer
}

// NewClient creates a client writing through root.
func NewClient(root RootNamer) *Client {
	return &Client{root: root}
}

// Publish stores an already formatted command.
func (c *Client) Publish(command string) error {
	if err := c.root.SetRootName(command); err != nil {
		return fmt.Errorf("failed to publish command: %w", err)
	}
	return nil
}

// Queue asks the window manager to hide win behind the next window that
// matches the given filters.
func (c *Client) Queue(win uint32, class, instance, title string) error {
	cmd, err := FormatSwallowQueue(win, class, instance, title)
	if err != nil {
		return err
	}
	return c.Publish(cmd)
}

// Swallow hides hidden behind the already managed window visible.
func (c *Client) Swallow(hidden, visible uint32) error {
	cmd, err := FormatSwallow(hidden, visible)
	if err != nil {
		return err
	}
	return c.Publish(cmd)
}

// Status returns the current root name. ok is false when it still holds a
// command that was not consumed.
func (c *Client) Status() (text string, ok bool) {
	name := c.root.RootName()
	if _, isCmd := Parse(name); isCmd {
		return name, false
	}
	return name, true
}
