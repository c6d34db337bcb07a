// Package startscript assembles the placeholder binding a start script
// template is rendered against. Assembly is a pure function of the launch
// descriptor and the target platform.
package startscript

import (
	"sort"
	"strings"

	"github.com/sibikrish3000/startscript/internal/distpath"
	"github.com/sibikrish3000/startscript/pkg/escape"
	"github.com/sibikrish3000/startscript/pkg/launch"
)

// Placeholder names exposed to templates.
const (
	KeyApplicationName       = "applicationName"
	KeyOptsEnvironmentVar    = "optsEnvironmentVar"
	KeyExitEnvironmentVar    = "exitEnvironmentVar"
	KeyMainClassName         = "mainClassName"
	KeyDefaultJvmOpts        = "defaultJvmOpts"
	KeyAppNameSystemProperty = "appNameSystemProperty"
	KeyAppHomeRelativePath   = "appHomeRelativePath"
	KeyClasspath             = "classpath"
)

// Binding maps placeholder names to final, platform-escaped values.
type Binding map[string]string

// Keys returns the placeholder names in sorted order.
func (b Binding) Keys() []string {
	keys := make([]string, 0, len(b))
	for k := range b {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Assemble builds the binding for d on platform p. Every input string is
// checked for representability first, so either a complete binding or an
// error is returned. d is only read.
func Assemble(d launch.Descriptor, p launch.Platform) (Binding, error) {
	if err := checkDescriptor(d, p); err != nil {
		return nil, err
	}

	homePath, err := distpath.Relativize(d.ScriptRelativePath)
	if err != nil {
		return nil, err
	}

	return Binding{
		KeyApplicationName:       d.ApplicationName,
		KeyOptsEnvironmentVar:    d.OptsEnvironmentVar,
		KeyExitEnvironmentVar:    d.ExitEnvironmentVar,
		KeyMainClassName:         d.MainClassName,
		KeyDefaultJvmOpts:        JoinDefaultJvmOpts(d.DefaultJvmOpts, p),
		KeyAppNameSystemProperty: d.AppNameSystemProperty,
		KeyAppHomeRelativePath:   distpath.ToNative(homePath, p),
		KeyClasspath:             JoinClasspath(d.Classpath, p),
	}, nil
}

// JoinDefaultJvmOpts quotes each option with the platform encoder and joins
// them with spaces, in order.
func JoinDefaultJvmOpts(opts []string, p launch.Platform) string {
	return escape.QuoteAll(escape.For(p.OS), opts)
}

// JoinClasspath prefixes each entry with the home reference, converts it to
// native separators and joins the entries with the classpath separator.
func JoinClasspath(entries []string, p launch.Platform) string {
	home := p.HomeReference()
	native := make([]string, len(entries))
	for i, entry := range entries {
		native[i] = home + distpath.ToNative(entry, p)
	}
	return strings.Join(native, p.ClasspathSeparator())
}

func checkDescriptor(d launch.Descriptor, p launch.Platform) error {
	fields := []struct {
		name  string
		value string
	}{
		{KeyApplicationName, d.ApplicationName},
		{KeyOptsEnvironmentVar, d.OptsEnvironmentVar},
		{KeyExitEnvironmentVar, d.ExitEnvironmentVar},
		{KeyMainClassName, d.MainClassName},
		{KeyAppNameSystemProperty, d.AppNameSystemProperty},
		{"scriptRelativePath", d.ScriptRelativePath},
	}
	for _, f := range fields {
		if err := escape.CheckIdentifier(f.name, f.value, p); err != nil {
			return err
		}
	}
	for _, opt := range d.DefaultJvmOpts {
		if err := escape.CheckRepresentable(KeyDefaultJvmOpts, opt, p); err != nil {
			return err
		}
	}
	for _, entry := range d.Classpath {
		if err := escape.CheckIdentifier(KeyClasspath, entry, p); err != nil {
			return err
		}
	}
	return nil
}
