package main

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"icnview/internal/codec"
)

func TestRun(t *testing.T) {
	lid := strings.Repeat("0", 7) + "1" + strings.Repeat("0", 120)

	tests := []struct {
		name string
		args []string
		want string
	}{
		{"lid to ipv6", []string{lid}, "::1\n"},
		{"ipv6 to lid", []string{"-reverse", "::1"}, lid + "\n"},
		{"several values", []string{lid, strings.Repeat("0", 128)}, "::1\n::\n"},
		{"link id", []string{"-link", strings.Repeat("0", 128) + lid}, "link 00...01" + strings.Repeat("0", 120) + "\n  dst -\n  src ::1\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer
			if err := run(tt.args, &out); err != nil {
				t.Fatalf("run() error = %v", err)
			}
			if out.String() != tt.want {
				t.Errorf("run() output = %q, want %q", out.String(), tt.want)
			}
		})
	}
}

func TestRunErrors(t *testing.T) {
	var out bytes.Buffer
	if err := run(nil, &out); err == nil {
		t.Error("expected usage error without arguments")
	}
	if err := run([]string{"0101"}, &out); !errors.Is(err, codec.ErrInvalidLIDFormat) {
		t.Errorf("expected ErrInvalidLIDFormat, got %v", err)
	}
	if err := run([]string{"-reverse", "1::2::3"}, &out); !errors.Is(err, codec.ErrInvalidIPv6Format) {
		t.Errorf("expected ErrInvalidIPv6Format, got %v", err)
	}
}
