// Package escape turns arbitrary option strings into tokens that a POSIX
// shell or the Windows command interpreter reads back as exactly one argument.
package escape

import (
	"strings"

	"github.com/sibikrish3000/startscript/pkg/launch"
)

// Encoder is the per-platform argument encoding.
type Encoder interface {
	// Encode applies the character-level transformation.
	Encode(s string) string

	// Quote returns s as a complete script token, ready to be space-joined
	// with other tokens.
	Quote(s string) string
}

// For returns the encoder for the interpreter family.
func For(os launch.OS) Encoder {
	if os == launch.Windows {
		return Batch
	}
	return POSIX
}

// QuoteAll quotes each option and joins the tokens with single spaces,
// preserving order. No options give an empty string.
func QuoteAll(enc Encoder, opts []string) string {
	if len(opts) == 0 {
		return ""
	}
	tokens := make([]string, len(opts))
	for i, opt := range opts {
		tokens[i] = enc.Quote(opt)
	}
	return strings.Join(tokens, " ")
}
