package escape

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"

	"github.com/sibikrish3000/startscript/pkg/launch"
)

// ResolveCharset maps a charset name to a golang.org/x/text Encoding.
// A nil Encoding means the script is written as UTF-8.
func ResolveCharset(name string) (encoding.Encoding, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case launch.CharsetUTF8, "utf-8", "":
		return nil, nil
	case launch.CharsetCP1252, "windows-1252":
		return charmap.Windows1252, nil
	case launch.CharsetCP850, "ibm850":
		return charmap.CodePage850, nil
	case launch.CharsetCP437, "ibm437":
		return charmap.CodePage437, nil
	case launch.CharsetLatin1, "iso-8859-1":
		return charmap.ISO8859_1, nil
	default:
		return nil, fmt.Errorf("unsupported charset: %q (supported: utf8, cp1252, cp850, cp437, latin1)", name)
	}
}

func charsetName(p launch.Platform) string {
	if p.Charset == "" {
		return launch.CharsetUTF8
	}
	return p.Charset
}

// CheckRepresentable reports whether value can appear in a script generated
// for p. It returns a *launch.EncodingError for invalid UTF-8, NUL bytes,
// characters missing from the platform charset, and line breaks in batch
// scripts, where every value ends up on a single line.
func CheckRepresentable(field, value string, p launch.Platform) error {
	fail := func(reason string) error {
		return &launch.EncodingError{Field: field, Value: value, Charset: charsetName(p), Reason: reason}
	}

	if !utf8.ValidString(value) {
		return fail("invalid UTF-8")
	}
	if strings.IndexByte(value, 0) >= 0 {
		return fail("contains NUL")
	}
	if p.OS == launch.Windows && strings.ContainsAny(value, "\r\n") {
		return fail("batch values cannot contain line breaks")
	}

	enc, err := ResolveCharset(p.Charset)
	if err != nil {
		return fail(err.Error())
	}
	if enc == nil {
		return nil
	}

	encoder := enc.NewEncoder()
	for _, r := range value {
		if _, err := encoder.String(string(r)); err != nil {
			return fail(fmt.Sprintf("character %q (%U) is not in the charset", r, r))
		}
	}
	return nil
}

// CheckIdentifier is CheckRepresentable plus a ban on line breaks for every
// platform. Identifiers are substituted outside quotes or inside comments,
// where a line break would start a new script command.
func CheckIdentifier(field, value string, p launch.Platform) error {
	if err := CheckRepresentable(field, value, p); err != nil {
		return err
	}
	if strings.ContainsAny(value, "\r\n") {
		return &launch.EncodingError{Field: field, Value: value, Charset: charsetName(p), Reason: "line breaks are not allowed"}
	}
	return nil
}

// Transcode converts UTF-8 script text to the platform charset.
func Transcode(text string, p launch.Platform) ([]byte, error) {
	enc, err := ResolveCharset(p.Charset)
	if err != nil {
		return nil, &launch.EncodingError{Charset: charsetName(p), Reason: err.Error()}
	}
	if enc == nil {
		if !utf8.ValidString(text) {
			return nil, &launch.EncodingError{Charset: charsetName(p), Reason: "invalid UTF-8"}
		}
		return []byte(text), nil
	}

	out, err := enc.NewEncoder().String(text)
	if err != nil {
		return nil, &launch.EncodingError{Charset: charsetName(p), Reason: err.Error()}
	}
	return []byte(out), nil
}
