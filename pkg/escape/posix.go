package escape

import "strings"

// POSIX single-quotes arguments for sh-compatible shells.
var POSIX Encoder = posixEncoder{}

type posixEncoder struct{}

// Encode wraps s in single quotes. Nothing is special inside single quotes
// except the quote itself, which is written as '\'' (close, escaped quote,
// reopen).
func (posixEncoder) Encode(s string) string {
	return "'" + strings.ReplaceAll(s, "'", `'\''`) + "'"
}

// Quote is Encode: the single quotes already delimit the token.
func (e posixEncoder) Quote(s string) string {
	return e.Encode(s)
}
