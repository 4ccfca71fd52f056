package ipc

import (
	"errors"
	"testing"
)

type fakeRoot struct {
	name string
	err  error
}

func (f *fakeRoot) RootName() string { return f.name }

func (f *fakeRoot) SetRootName(name string) error {
	if f.err != nil {
		return f.err
	}
	f.name = name
	return nil
}

func TestClient_Queue(t *testing.T) {
	root := &fakeRoot{}
	c := NewClient(root)

	if err := c.Queue(0x1a00003, "", "", "st"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if root.name != "#!swallowqueue###0x1a00003#########st" {
		t.Fatalf("unexpected root name %q", root.name)
	}
	if _, ok := c.Status(); ok {
		t.Fatalf("expected pending command to be reported")
	}
}

func TestClient_Swallow(t *testing.T) {
	root := &fakeRoot{}
	c := NewClient(root)

	if err := c.Swallow(1, 2); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if root.name != "#!swallow###0x1###0x2" {
		t.Fatalf("unexpected root name %q", root.name)
	}
}

func TestClient_PublishError(t *testing.T) {
	boom := errors.New("boom")
	c := NewClient(&fakeRoot{err: boom})
	if err := c.Swallow(1, 2); !errors.Is(err, boom) {
		t.Fatalf("expected wrapped error, got %v", err)
	}
}

func TestClient_Status(t *testing.T) {
	c := NewClient(&fakeRoot{name: "vol 40%"})
	text, ok := c.Status()
	if !ok || text != "vol 40%" {
		t.Fatalf("expected status text, got %q ok=%v", text, ok)
	}
}
