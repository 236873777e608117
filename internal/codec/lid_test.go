package codec

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

// lidWithBits returns a LID with the given bit offsets set
func lidWithBits(offsets ...int) string {
	b := []byte(strings.Repeat("0", LIDLength))
	for _, off := range offsets {
		b[off] = '1'
	}
	return string(b)
}

func lidFromBytes(raw []uint8) string {
	var sb strings.Builder
	for _, b := range raw {
		fmt.Fprintf(&sb, "%08b", b)
	}
	return sb.String()
}

func TestLIDToIPv6(t *testing.T) {
	tests := []struct {
		name string
		lid  string
		want string
	}{
		{"all zero", lidWithBits(), "::"},
		{"lowest bit of first byte", lidWithBits(7), "::1"},
		{"highest bit of first byte", lidWithBits(0), "::80"},
		{"lowest bit of last byte", lidWithBits(127), "100::"},
		{"middle byte", lidWithBits(56, 57, 58, 59, 60, 61, 62, 63), "::ff00:0:0:0"},
		{"second hextet with trailing run", lidWithBits(103), "0:1::"},
		{"no zero run at the edges", strings.Repeat("1", LIDLength), "ffff:ffff:ffff:ffff:ffff:ffff:ffff:ffff"},
		{"inner zero run is kept", lidWithBits(7, 127), "100:0:0:0:0:0:0:1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := LIDToIPv6(tt.lid)
			if err != nil {
				t.Fatalf("LIDToIPv6() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("LIDToIPv6() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestLIDToIPv6Invalid(t *testing.T) {
	tests := []struct {
		name string
		lid  string
	}{
		{"empty", ""},
		{"too short", strings.Repeat("0", LIDLength-1)},
		{"too long", strings.Repeat("0", LIDLength+1)},
		{"non binary", strings.Repeat("0", LIDLength-1) + "2"},
		{"link id", strings.Repeat("0", LinkIDLength)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LIDToIPv6(tt.lid)
			if !errors.Is(err, ErrInvalidLIDFormat) {
				t.Errorf("expected ErrInvalidLIDFormat, got %v", err)
			}
		})
	}
}

func TestIPv6ToLID(t *testing.T) {
	tests := []struct {
		addr string
		want string
	}{
		{"::", lidWithBits()},
		{"::1", lidWithBits(7)},
		{"100::", lidWithBits(127)},
		{"0:1::", lidWithBits(103)},
		{"100:0:0:0:0:0:0:1", lidWithBits(7, 127)},
		{"0:0:0:0:0:0:0:1", lidWithBits(7)},
		{"::FF00:0:0:0", lidWithBits(56, 57, 58, 59, 60, 61, 62, 63)},
	}

	for _, tt := range tests {
		t.Run(tt.addr, func(t *testing.T) {
			got, err := IPv6ToLID(tt.addr)
			if err != nil {
				t.Fatalf("IPv6ToLID(%q) error = %v", tt.addr, err)
			}
			if got != tt.want {
				t.Errorf("IPv6ToLID(%q) = %s, want %s", tt.addr, got, tt.want)
			}
		})
	}
}

func TestIPv6ToLIDInvalid(t *testing.T) {
	tests := []string{
		"",
		"1:2:3",
		"1:2:3:4:5:6:7:8:9",
		"1::2::3",
		"1:2:3:4::5:6:7:8",
		"12345::",
		"g::",
		":1:2:3:4:5:6:7",
		":::",
		"::ffff:10.0.0.1",
	}

	for _, addr := range tests {
		t.Run(addr, func(t *testing.T) {
			_, err := IPv6ToLID(addr)
			if !errors.Is(err, ErrInvalidIPv6Format) {
				t.Errorf("IPv6ToLID(%q): expected ErrInvalidIPv6Format, got %v", addr, err)
			}
		})
	}
}

func TestLIDRoundTrip(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 1000

	properties := gopter.NewProperties(parameters)

	properties.Property("IPv6ToLID inverts LIDToIPv6", prop.ForAll(
		func(raw []uint8) bool {
			lid := lidFromBytes(raw)
			addr, err := LIDToIPv6(lid)
			if err != nil {
				return false
			}
			back, err := IPv6ToLID(addr)
			if err != nil {
				return false
			}
			return back == lid
		},
		gen.SliceOfN(16, gen.UInt8()),
	))

	properties.Property("sparse values survive compression", prop.ForAll(
		func(offset int) bool {
			lid := lidWithBits(offset)
			addr, err := LIDToIPv6(lid)
			if err != nil {
				return false
			}
			back, err := IPv6ToLID(addr)
			return err == nil && back == lid
		},
		gen.IntRange(0, LIDLength-1),
	))

	properties.TestingRun(t)
}

func TestIsZeroLID(t *testing.T) {
	if !IsZeroLID(lidWithBits()) {
		t.Error("expected all-zero LID to be zero")
	}
	if IsZeroLID(lidWithBits(64)) {
		t.Error("expected LID with a set bit to be non-zero")
	}
}

func TestCompressLinkID(t *testing.T) {
	tests := []struct {
		name string
		id   string
		want string
	}{
		{"longest run only", "1" + strings.Repeat("0", 10) + "1" + strings.Repeat("0", 6), "100...01000000"},
		{"short runs untouched", "1000010000", "1000010000"},
		{"exactly five zeros", "1000001", "100...01"},
		{"tie keeps first", "100000100000", "100...0100000"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CompressLinkID(tt.id); got != tt.want {
				t.Errorf("CompressLinkID(%q) = %q, want %q", tt.id, got, tt.want)
			}
		})
	}
}

func TestSplitLinkID(t *testing.T) {
	t.Run("splits dst and src lanes", func(t *testing.T) {
		dst := lidWithBits(3)
		src := lidWithBits(100)
		gotDst, gotSrc, err := SplitLinkID(dst + src)
		if err != nil {
			t.Fatalf("SplitLinkID() error = %v", err)
		}
		if gotDst != dst || gotSrc != src {
			t.Error("lanes returned in the wrong order")
		}
	})

	t.Run("rejects a single lane", func(t *testing.T) {
		_, _, err := SplitLinkID(lidWithBits(3))
		if !errors.Is(err, ErrInvalidLIDFormat) {
			t.Errorf("expected ErrInvalidLIDFormat, got %v", err)
		}
	})

	t.Run("rejects non binary lanes", func(t *testing.T) {
		_, _, err := SplitLinkID(lidWithBits() + strings.Repeat("x", LIDLength))
		if !errors.Is(err, ErrInvalidLIDFormat) {
			t.Errorf("expected ErrInvalidLIDFormat, got %v", err)
		}
	})
}
