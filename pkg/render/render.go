// Package render expands start script templates against a binding and writes
// the resulting scripts.
package render

import (
	_ "embed"
	"fmt"
	"io"
	"strings"

	"github.com/valyala/fasttemplate"
	"mvdan.cc/sh/v3/syntax"

	"github.com/sibikrish3000/startscript/pkg/escape"
	"github.com/sibikrish3000/startscript/pkg/launch"
	"github.com/sibikrish3000/startscript/pkg/startscript"
)

// Template placeholder delimiters: ${name}.
const (
	startTag = "${"
	endTag   = "}"
)

//go:embed templates/unixStartScript.txt
var unixTemplate string

//go:embed templates/windowsStartScript.txt
var windowsTemplate string

// Renderer turns bindings into script bytes.
type Renderer struct {
	templates map[launch.OS]string
}

// Option configures a Renderer.
type Option func(*Renderer)

// WithTemplate replaces the embedded template for os.
func WithTemplate(os launch.OS, text string) Option {
	return func(r *Renderer) {
		r.templates[os] = text
	}
}

// New returns a Renderer using the embedded templates unless overridden.
func New(opts ...Option) *Renderer {
	r := &Renderer{
		templates: map[launch.OS]string{
			launch.Unix:    unixTemplate,
			launch.Windows: windowsTemplate,
		},
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Template returns the template text used for os, empty if there is none.
func (r *Renderer) Template(os launch.OS) string {
	return r.templates[os]
}

// Render substitutes b into the platform's template, converts line endings,
// checks POSIX output parses as shell, and transcodes to the platform charset.
func (r *Renderer) Render(b startscript.Binding, p launch.Platform) ([]byte, error) {
	text := r.Template(p.OS)
	if text == "" {
		return nil, fmt.Errorf("no template for platform %s", p)
	}

	t, err := fasttemplate.NewTemplate(text, startTag, endTag)
	if err != nil {
		return nil, fmt.Errorf("invalid %s template: %w", p.OS, err)
	}

	out, err := t.ExecuteFuncStringWithErr(func(w io.Writer, tag string) (int, error) {
		v, ok := b[strings.TrimSpace(tag)]
		if !ok {
			return 0, fmt.Errorf("template references unknown placeholder %q", tag)
		}
		return io.WriteString(w, v)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to render %s script: %w", p.OS, err)
	}

	out = ConvertLineEndings(out, p.LineSeparator())

	if p.OS == launch.Unix {
		if err := CheckPOSIX(out); err != nil {
			return nil, err
		}
	}

	return escape.Transcode(out, p)
}

// Generate assembles the binding for d and renders it.
func (r *Renderer) Generate(d launch.Descriptor, p launch.Platform) ([]byte, error) {
	b, err := startscript.Assemble(d, p)
	if err != nil {
		return nil, err
	}
	return r.Render(b, p)
}

// ConvertLineEndings normalises every line break in s to sep.
func ConvertLineEndings(s, sep string) string {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	if sep == "\n" {
		return s
	}
	return strings.ReplaceAll(s, "\n", sep)
}

// CheckPOSIX parses script as POSIX shell.
func CheckPOSIX(script string) error {
	parser := syntax.NewParser(syntax.Variant(syntax.LangPOSIX))
	if _, err := parser.Parse(strings.NewReader(script), ""); err != nil {
		return fmt.Errorf("rendered script is not valid POSIX shell: %w", err)
	}
	return nil
}
