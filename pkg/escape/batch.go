package escape

import "strings"

// Batch escapes arguments placed inside double quotes in a Windows batch file.
var Batch Encoder = batchEncoder{}

type batchEncoder struct{}

type batchState int

const (
	stateNormal batchState = iota
	stateAfterBackslash
)

// Encode escapes s for a double-quoted batch argument:
//
//   - % becomes %% so the batch parser does not expand variables.
//   - " becomes \".
//   - a " that follows a run of backslashes also doubles that run, so the
//     pair \" becomes \\\" and the backslash cannot swallow the quote escape.
//   - everything else, including a lone backslash, is copied.
//
// The scan is byte-wise; every significant character is ASCII and never part
// of a multi-byte UTF-8 sequence.
func (batchEncoder) Encode(s string) string {
	var b strings.Builder
	b.Grow(len(s) + 8)

	state := stateNormal
	run := 0
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch c {
		case '%':
			b.WriteString("%%")
		case '"':
			if state == stateAfterBackslash {
				b.WriteString(strings.Repeat(`\`, run))
			}
			b.WriteString(`\"`)
		default:
			b.WriteByte(c)
		}

		if c == '\\' {
			state = stateAfterBackslash
			run++
		} else {
			state = stateNormal
			run = 0
		}
	}
	return b.String()
}

// Quote wraps the encoded value in double quotes. A run of backslashes at the
// end of s is doubled first, otherwise it would escape the closing quote.
func (e batchEncoder) Quote(s string) string {
	trailing := len(s) - len(strings.TrimRight(s, `\`))
	return `"` + e.Encode(s) + strings.Repeat(`\`, trailing) + `"`
}
