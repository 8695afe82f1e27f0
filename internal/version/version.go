// Package version parses, compares, and formats dot-separated numeric version identifiers.
package version

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/conn-castle/stepup/internal/messages"
)

// Version is an ordered sequence of non-negative integer segments.
// The zero value is Invalid and never satisfies any ordering comparison.
type Version struct {
	segments []int
	text     string
}

// Invalid is the Version returned for unparseable input.
var Invalid = Version{}

// ParseError reports why a version string was rejected by ParseStrict.
type ParseError struct {
	Input  string
	Reason string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf(messages.VersionParseErrorFmt, e.Input, e.Reason)
}

// Parse converts raw into a Version. Any failure yields Invalid.
func Parse(raw string) Version {
	v, err := ParseStrict(raw)
	if err != nil {
		return Invalid
	}
	return v
}

// ParseStrict converts raw into a Version and explains any rejection.
// Surrounding whitespace is ignored; every segment must be ASCII digits.
func ParseStrict(raw string) (Version, error) {
	text := strings.TrimSpace(raw)
	if text == "" {
		return Invalid, &ParseError{Input: raw, Reason: messages.VersionReasonEmpty}
	}
	parts := strings.Split(text, ".")
	segments := make([]int, 0, len(parts))
	for _, part := range parts {
		if part == "" {
			return Invalid, &ParseError{Input: raw, Reason: messages.VersionReasonEmptySegment}
		}
		for _, r := range part {
			if r < '0' || r > '9' {
				return Invalid, &ParseError{Input: raw, Reason: fmt.Sprintf(messages.VersionReasonNonNumericFmt, part)}
			}
		}
		n, err := strconv.Atoi(part)
		if err != nil {
			return Invalid, &ParseError{Input: raw, Reason: fmt.Sprintf(messages.VersionReasonOutOfRangeFmt, part)}
		}
		segments = append(segments, n)
	}
	return Version{segments: segments, text: text}, nil
}

// Valid reports whether v was parsed successfully.
func (v Version) Valid() bool {
	return len(v.segments) > 0
}

// String returns the text v was parsed from, or "" for Invalid.
// Leading zeros are kept so package URLs match what the server published.
func (v Version) String() string {
	return v.text
}

// Format joins the segments of v with '.'; it is the inverse of Parse.
func Format(v Version) string {
	return v.String()
}

// Compare orders a and b segment by segment, padding the shorter one with zeros,
// so "1.2" and "1.2.0" compare equal. ok is false when either side is Invalid.
func Compare(a Version, b Version) (cmp int, ok bool) {
	if !a.Valid() || !b.Valid() {
		return 0, false
	}
	n := len(a.segments)
	if len(b.segments) > n {
		n = len(b.segments)
	}
	for i := 0; i < n; i++ {
		left, right := segmentAt(a.segments, i), segmentAt(b.segments, i)
		if left < right {
			return -1, true
		}
		if left > right {
			return 1, true
		}
	}
	return 0, true
}

func segmentAt(segments []int, i int) int {
	if i < len(segments) {
		return segments[i]
	}
	return 0
}

// Less reports whether a < b. It is false whenever either side is Invalid.
func Less(a Version, b Version) bool {
	cmp, ok := Compare(a, b)
	return ok && cmp < 0
}

// LessOrEqual reports whether a <= b. It is false whenever either side is Invalid.
func LessOrEqual(a Version, b Version) bool {
	cmp, ok := Compare(a, b)
	return ok && cmp <= 0
}

// Equal reports whether a and b denote the same release. Invalid equals nothing.
func Equal(a Version, b Version) bool {
	cmp, ok := Compare(a, b)
	return ok && cmp == 0
}

// Sort orders versions ascending in place. Equal versions keep their input order
// and Invalid entries sink to the end.
func Sort(versions []Version) {
	sort.SliceStable(versions, func(i, j int) bool {
		if !versions[j].Valid() {
			return versions[i].Valid()
		}
		return Less(versions[i], versions[j])
	})
}

// ParseList parses a newline-separated version list. Blank and unparseable lines
// are dropped; the surviving order matches the input.
func ParseList(body string) []Version {
	lines := strings.Split(body, "\n")
	out := make([]Version, 0, len(lines))
	for _, line := range lines {
		v := Parse(line)
		if !v.Valid() {
			continue
		}
		out = append(out, v)
	}
	return out
}

// Strings formats each version in order.
func Strings(versions []Version) []string {
	out := make([]string, len(versions))
	for i, v := range versions {
		out[i] = v.String()
	}
	return out
}
