package codec

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

const (
	// LIDLength is the number of binary digits in a locator identifier
	LIDLength = 128
	// LinkIDLength is the number of binary digits in a registry link id
	// (a dst LID lane followed by a src LID lane)
	LinkIDLength = 2 * LIDLength

	lidBytes = LIDLength / 8
	hextets  = 8
)

var (
	// ErrInvalidLIDFormat is returned for input that is not 128 binary digits
	ErrInvalidLIDFormat = errors.New("invalid LID format")
	// ErrInvalidIPv6Format is returned for input that is not a LID-encoded IPv6 address
	ErrInvalidIPv6Format = errors.New("invalid IPv6 format")

	zeroRunPattern     = regexp.MustCompile(`^(0:)+|(:0)+$`)
	linkIDZeroPattern  = regexp.MustCompile(`0{5,}`)
	linkIDZeroEllipsis = "00...0"
)

// ValidateLID checks that lid is exactly 128 characters of '0' and '1'
func ValidateLID(lid string) error {
	if len(lid) != LIDLength {
		return fmt.Errorf("%w: length %d, want %d", ErrInvalidLIDFormat, len(lid), LIDLength)
	}
	for i := 0; i < len(lid); i++ {
		if lid[i] != '0' && lid[i] != '1' {
			return fmt.Errorf("%w: character %q at offset %d", ErrInvalidLIDFormat, lid[i], i)
		}
	}
	return nil
}

// IsZeroLID reports whether a valid LID has no bit set
func IsZeroLID(lid string) bool {
	return !strings.ContainsRune(lid, '1')
}

// LIDToIPv6 renders a LID as compressed IPv6 text. The controller stores
// LIDs least significant byte first, so the byte order is reversed before
// the hextets are formed. Only a leading or trailing run of zero hextets is
// collapsed to "::".
func LIDToIPv6(lid string) (string, error) {
	if err := ValidateLID(lid); err != nil {
		return "", err
	}

	var raw [lidBytes]byte
	for i := 0; i < lidBytes; i++ {
		b, err := strconv.ParseUint(lid[i*8:i*8+8], 2, 8)
		if err != nil {
			return "", fmt.Errorf("%w: %v", ErrInvalidLIDFormat, err)
		}
		raw[lidBytes-1-i] = byte(b)
	}

	parts := make([]string, hextets)
	allZero := true
	for i := 0; i < hextets; i++ {
		v := uint16(raw[2*i])<<8 | uint16(raw[2*i+1])
		if v != 0 {
			allZero = false
		}
		parts[i] = strconv.FormatUint(uint64(v), 16)
	}
	if allZero {
		return "::", nil
	}

	return LargestMatchReplace(strings.Join(parts, ":"), zeroRunPattern, "::"), nil
}

// IPv6ToLID is the inverse of LIDToIPv6
func IPv6ToLID(addr string) (string, error) {
	groups, err := expandIPv6(addr)
	if err != nil {
		return "", err
	}

	var raw [lidBytes]byte
	for i, g := range groups {
		v, err := strconv.ParseUint(g, 16, 16)
		if err != nil {
			return "", fmt.Errorf("%w: group %q", ErrInvalidIPv6Format, g)
		}
		raw[2*i] = byte(v >> 8)
		raw[2*i+1] = byte(v)
	}

	var sb strings.Builder
	sb.Grow(LIDLength)
	for i := lidBytes - 1; i >= 0; i-- {
		fmt.Fprintf(&sb, "%08b", raw[i])
	}
	return sb.String(), nil
}

// expandIPv6 splits addr into exactly eight hextet strings, filling a single
// "::" with zero groups
func expandIPv6(addr string) ([]string, error) {
	if addr == "" {
		return nil, fmt.Errorf("%w: empty address", ErrInvalidIPv6Format)
	}

	var groups []string
	switch strings.Count(addr, "::") {
	case 0:
		groups = strings.Split(addr, ":")
	case 1:
		head, tail, _ := strings.Cut(addr, "::")
		var left, right []string
		if head != "" {
			left = strings.Split(head, ":")
		}
		if tail != "" {
			right = strings.Split(tail, ":")
		}
		missing := hextets - len(left) - len(right)
		if missing < 1 {
			return nil, fmt.Errorf("%w: %q has too many groups", ErrInvalidIPv6Format, addr)
		}
		groups = make([]string, 0, hextets)
		groups = append(groups, left...)
		for i := 0; i < missing; i++ {
			groups = append(groups, "0")
		}
		groups = append(groups, right...)
	default:
		return nil, fmt.Errorf("%w: %q contains more than one \"::\"", ErrInvalidIPv6Format, addr)
	}

	if len(groups) != hextets {
		return nil, fmt.Errorf("%w: %q has %d groups, want %d", ErrInvalidIPv6Format, addr, len(groups), hextets)
	}
	for _, g := range groups {
		if len(g) == 0 || len(g) > 4 {
			return nil, fmt.Errorf("%w: group %q in %q", ErrInvalidIPv6Format, g, addr)
		}
	}
	return groups, nil
}

// CompressLinkID shortens the longest run of five or more zeros in a link
// id to "00...0" for display
func CompressLinkID(id string) string {
	return LargestMatchReplace(id, linkIDZeroPattern, linkIDZeroEllipsis)
}

// SplitLinkID returns the dst and src LID lanes of a 256-digit link id
func SplitLinkID(id string) (dst, src string, err error) {
	if len(id) != LinkIDLength {
		return "", "", fmt.Errorf("%w: link id length %d, want %d", ErrInvalidLIDFormat, len(id), LinkIDLength)
	}
	dst, src = id[:LIDLength], id[LIDLength:]
	if err := ValidateLID(dst); err != nil {
		return "", "", err
	}
	if err := ValidateLID(src); err != nil {
		return "", "", err
	}
	return dst, src, nil
}
