// Package textenc decodes package-supplied text that may not be UTF-8: delete-lists
// written by legacy editors and zip entry names stored without the UTF-8 flag.
package textenc

import (
	"fmt"
	"io"
	"strings"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/ianaindex"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"github.com/conn-castle/stepup/internal/messages"
)

// Default is the encoding used when none is configured: UTF-8 with an optional BOM.
var Default encoding.Encoding = unicode.UTF8BOM

// Lookup resolves an IANA encoding name such as "utf-8", "gbk", or "windows-1252".
// An empty name yields Default.
func Lookup(name string) (encoding.Encoding, error) {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" || strings.EqualFold(trimmed, "utf-8") || strings.EqualFold(trimmed, "utf8") {
		return Default, nil
	}
	enc, err := ianaindex.IANA.Encoding(trimmed)
	if err != nil {
		return nil, fmt.Errorf(messages.TextEncodingUnknownFmt, name, err)
	}
	if enc == nil {
		return nil, fmt.Errorf(messages.TextEncodingUnsupportedFmt, name)
	}
	return enc, nil
}

// IsUTF8 reports whether enc decodes as plain UTF-8.
func IsUTF8(enc encoding.Encoding) bool {
	return enc == nil || enc == Default || enc == unicode.UTF8
}

// NewReader wraps r so that reads yield UTF-8 decoded from enc.
func NewReader(r io.Reader, enc encoding.Encoding) io.Reader {
	if enc == nil {
		enc = Default
	}
	return transform.NewReader(r, enc.NewDecoder())
}

// DecodeString converts s from enc to UTF-8.
func DecodeString(s string, enc encoding.Encoding) (string, error) {
	if IsUTF8(enc) {
		return s, nil
	}
	out, err := enc.NewDecoder().String(s)
	if err != nil {
		return "", fmt.Errorf(messages.TextDecodeFailedFmt, s, err)
	}
	return out, nil
}

// NormalizePath returns p in Unicode NFC so that names produced on different
// platforms compare equal.
func NormalizePath(p string) string {
	return norm.NFC.String(p)
}
