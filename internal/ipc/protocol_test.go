package ipc

import (
	"errors"
	"testing"
)

func TestParse_StatusTextIsNotACommand(t *testing.T) {
	if _, ok := Parse("Mon 12:00 | 42%"); ok {
		t.Fatalf("expected plain status text to be rejected")
	}
	if _, ok := Parse(""); ok {
		t.Fatalf("expected empty name to be rejected")
	}
}

func TestParse_SwallowQueue(t *testing.T) {
	req, ok := Parse("#!swallowqueue###0x1a00003###Zathura######paper")
	if !ok {
		t.Fatalf("expected command prefix to be recognised")
	}
	if req.Command != CommandSwallowQueue {
		t.Fatalf("expected swallowqueue, got %q", req.Command)
	}
	if err := req.Validate(); err != nil {
		t.Fatalf("unexpected validation error: %v", err)
	}
	if req.Arg(0) != "0x1a00003" || req.Arg(1) != "Zathura" || req.Arg(2) != "" || req.Arg(3) != "paper" {
		t.Fatalf("unexpected args %q", req.Args)
	}
	if req.Arg(9) != "" {
		t.Fatalf("expected missing argument to read as empty")
	}
}

func TestParse_TooFewArgs(t *testing.T) {
	req, ok := Parse("#!swallow###0x1")
	if !ok {
		t.Fatalf("expected prefix match")
	}
	if err := req.Validate(); !errors.Is(err, ErrTooFewArgs) {
		t.Fatalf("expected ErrTooFewArgs, got %v", err)
	}

	req, _ = Parse("#!swallowqueue")
	if err := req.Validate(); !errors.Is(err, ErrTooFewArgs) {
		t.Fatalf("expected ErrTooFewArgs for bare swallowqueue, got %v", err)
	}
}

func TestParse_UnknownCommandStillConsumed(t *testing.T) {
	req, ok := Parse("#!reboot###now")
	if !ok {
		t.Fatalf("expected prefixed name to be consumed as a command")
	}
	if err := req.Validate(); !errors.Is(err, ErrUnknownCommand) {
		t.Fatalf("expected ErrUnknownCommand, got %v", err)
	}
}

func TestParse_SegmentLimit(t *testing.T) {
	name := "#!swallowqueue"
	for i := 0; i < 20; i++ {
		name += "###x"
	}
	req, _ := Parse(name)
	if len(req.Args) != MaxSegments-1 {
		t.Fatalf("expected %d args, got %d", MaxSegments-1, len(req.Args))
	}
}

func TestFormat_RoundTrip(t *testing.T) {
	name, err := FormatSwallowQueue(0x1a00003, "", "st", "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if name != "#!swallowqueue###0x1a00003######st" {
		t.Fatalf("unexpected encoding %q", name)
	}

	req, ok := Parse(name)
	if !ok || req.Command != CommandSwallowQueue || req.Arg(2) != "st" {
		t.Fatalf("unexpected decode %+v", req)
	}

	name, err = FormatSwallow(1, 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if name != "#!swallow###0x1###0x2" {
		t.Fatalf("unexpected encoding %q", name)
	}
}

func TestFormat_RejectsSeparatorInArgs(t *testing.T) {
	if _, err := FormatSwallowQueue(1, "a###b", "", ""); !errors.Is(err, ErrSeparatorInArg) {
		t.Fatalf("expected ErrSeparatorInArg, got %v", err)
	}
}

func TestParseWindowID(t *testing.T) {
	cases := map[string]uint32{
		"0x1a00003": 0x1a00003,
		"27262979":  27262979,
		"017":       15,
		" 0x10 ":    16,
	}
	for in, want := range cases {
		got, err := ParseWindowID(in)
		if err != nil {
			t.Fatalf("ParseWindowID(%q): unexpected error: %v", in, err)
		}
		if got != want {
			t.Fatalf("ParseWindowID(%q): expected %d, got %d", in, want, got)
		}
	}
	if _, err := ParseWindowID("window"); !errors.Is(err, ErrBadWindowID) {
		t.Fatalf("expected ErrBadWindowID, got %v", err)
	}
}

func TestDecode(t *testing.T) {
	if _, err := Decode("hello"); !errors.Is(err, ErrNoPrefix) {
		t.Fatalf("expected ErrNoPrefix, got %v", err)
	}
	if _, err := Decode("#!swallowqueue"); !errors.Is(err, ErrTooFewArgs) {
		t.Fatalf("expected ErrTooFewArgs, got %v", err)
	}
	req, err := Decode("#!swallow###0x1###0x2")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if req.Command != CommandSwallow || len(req.Args) != 2 {
		t.Fatalf("unexpected request %+v", req)
	}
}
