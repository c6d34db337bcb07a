package escape

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

// parseBatchLine reverses what a batch file and java.exe do to a line of
// quoted arguments: the batch parser turns %% into %, then the MSVCRT argv
// rules split the line. Backslashes are literal unless they precede a quote;
// 2n backslashes + " give n backslashes and toggle quoting, 2n+1 give n
// backslashes and a literal quote.
func parseBatchLine(line string) []string {
	line = strings.ReplaceAll(line, "%%", "%")

	var args []string
	var cur strings.Builder
	inQuotes, have := false, false

	for i := 0; i < len(line); {
		c := line[i]
		switch {
		case c == '\\':
			n := 0
			for i < len(line) && line[i] == '\\' {
				n++
				i++
			}
			if i < len(line) && line[i] == '"' {
				cur.WriteString(strings.Repeat(`\`, n/2))
				if n%2 == 1 {
					cur.WriteByte('"')
					i++
				}
			} else {
				cur.WriteString(strings.Repeat(`\`, n))
			}
			have = true
		case c == '"':
			inQuotes = !inQuotes
			have = true
			i++
		case (c == ' ' || c == '\t') && !inQuotes:
			if have {
				args = append(args, cur.String())
				cur.Reset()
				have = false
			}
			i++
		default:
			cur.WriteByte(c)
			have = true
			i++
		}
	}
	if have {
		args = append(args, cur.String())
	}
	return args
}

func TestBatchEncode(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"plain", "-Xmx512m", "-Xmx512m"},
		{"spaces", "-Dname=two words", "-Dname=two words"},
		{"single quote", "-Dq=it's", "-Dq=it's"},
		{"percent", "-Dfoo=%PATH%", "-Dfoo=%%PATH%%"},
		{"lone percent", "100%", "100%%"},
		{"quote", `-Dq="x"`, `-Dq=\"x\"`},
		{"backslash then quote", `a\"b`, `a\\\"b`},
		{"two backslashes then quote", `a\\"b`, `a\\\\\"b`},
		{"backslash not before quote", `C:\dir\file`, `C:\dir\file`},
		{"trailing backslash", `C:\dir\`, `C:\dir\`},
		{"backslash quote percent", `\"%`, `\\\"%%`},
		{"unicode", "-Dname=héllo", "-Dname=héllo"},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Batch.Encode(tt.input))
		})
	}
}

func TestBatchEncode_NoSpecialCharsUnchanged(t *testing.T) {
	inputs := []string{"-Xmx1g", "-Dkey=value with spaces", "it's", "$HOME `cmd` & | < > ^ !", "tab\there"}
	for _, in := range inputs {
		assert.Equal(t, in, Batch.Encode(in))
	}
}

func TestBatchEncode_PercentOnlyDoubled(t *testing.T) {
	in := "a%b%%c%"
	got := Batch.Encode(in)
	assert.Equal(t, "a%%b%%%%c%%", got)
	assert.Equal(t, in, strings.ReplaceAll(got, "%%", "%"))
}

func TestBatchQuote(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"-Xmx512m", `"-Xmx512m"`},
		{"-Dfoo=%PATH%", `"-Dfoo=%%PATH%%"`},
		{`C:\dir\`, `"C:\dir\\"`},
		{`x\\`, `"x\\\\"`},
		{"", `""`},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Batch.Quote(tt.input), "Quote(%q)", tt.input)
	}
}

func TestBatchQuote_RoundTrip(t *testing.T) {
	inputs := []string{
		"-Xmx512m",
		"-Dfoo=%PATH%",
		`-Dq="quoted value"`,
		`a\"b`,
		`a\\"b`,
		`a\\\"b`,
		`C:\Program Files\app\`,
		`\`,
		`\\`,
		`"`,
		`""`,
		`\"`,
		"",
		"two words",
		"%%",
		"-Dname=héllo wörld",
	}

	for _, in := range inputs {
		got := parseBatchLine(Batch.Quote(in))
		assert.Equal(t, []string{in}, got, "round trip of %q via %q", in, Batch.Quote(in))
	}
}

func TestQuoteAll_Batch(t *testing.T) {
	opts := []string{"-Xmx512m", "-Dfoo=%PATH%"}
	joined := QuoteAll(Batch, opts)

	assert.Equal(t, `"-Xmx512m" "-Dfoo=%%PATH%%"`, joined)
	assert.Equal(t, opts, parseBatchLine(joined))
	assert.Equal(t, "", QuoteAll(Batch, nil))
}

func FuzzBatchQuoteRoundTrip(f *testing.F) {
	for _, seed := range []string{"", "%", `\"`, `a\\`, `"x" y`, "-Dfoo=%PATH%"} {
		f.Add(seed)
	}
	f.Fuzz(func(t *testing.T, s string) {
		got := parseBatchLine(Batch.Quote(s))
		if len(got) != 1 || got[0] != s {
			t.Fatalf("Quote(%q) = %q decodes to %q", s, Batch.Quote(s), got)
		}
	})
}
