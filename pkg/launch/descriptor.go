// Package launch defines the launch descriptor a start script is generated
// from, the platforms scripts are generated for, and the error kinds shared by
// the generation pipeline.
package launch

import (
	"errors"
	"fmt"
	"regexp"
	"slices"
	"strings"
	"unicode"

	"github.com/go-playground/validator/v10"
)

// Descriptor describes how a generated script launches the application.
// Operations in this module treat it as immutable; derived values are always
// new strings and slices.
type Descriptor struct {
	// ApplicationName is the display name, also used for derived defaults.
	ApplicationName string `toml:"application_name" validate:"required"`

	// MainClassName is the entry point handed to the runtime.
	MainClassName string `toml:"main_class_name" validate:"required"`

	// OptsEnvironmentVar names the variable users set for extra options.
	OptsEnvironmentVar string `toml:"opts_environment_var" validate:"required,envvar"`

	// ExitEnvironmentVar names the variable controlling console exit on Windows.
	ExitEnvironmentVar string `toml:"exit_environment_var" validate:"required,envvar"`

	// DefaultJvmOpts are passed to the runtime before user options, in order.
	DefaultJvmOpts []string `toml:"default_jvm_opts"`

	// AppNameSystemProperty receives the script's base name at run time.
	AppNameSystemProperty string `toml:"app_name_system_property"`

	// Classpath entries relative to the installation root, forward-slash separated.
	Classpath []string `toml:"classpath" validate:"dive,required"`

	// ScriptRelativePath is where the script lives inside the distribution.
	ScriptRelativePath string `toml:"script_relative_path" validate:"required"`
}

var envVarPattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	_ = v.RegisterValidation("envvar", func(fl validator.FieldLevel) bool {
		return envVarPattern.MatchString(fl.Field().String())
	})
	return v
}

// WithDefaults returns a copy of d with empty derived fields filled in from
// the application name: NAME_OPTS, NAME_EXIT_CONSOLE and bin/<name>.
func (d Descriptor) WithDefaults() Descriptor {
	out := d.Clone()
	constant := ToConstant(d.ApplicationName)
	if out.OptsEnvironmentVar == "" && constant != "" {
		out.OptsEnvironmentVar = constant + "_OPTS"
	}
	if out.ExitEnvironmentVar == "" && constant != "" {
		out.ExitEnvironmentVar = constant + "_EXIT_CONSOLE"
	}
	if out.ScriptRelativePath == "" && d.ApplicationName != "" {
		out.ScriptRelativePath = "bin/" + d.ApplicationName
	}
	return out
}

// Clone returns a deep copy of d.
func (d Descriptor) Clone() Descriptor {
	out := d
	out.DefaultJvmOpts = slices.Clone(d.DefaultJvmOpts)
	out.Classpath = slices.Clone(d.Classpath)
	return out
}

// ScriptName is the last segment of ScriptRelativePath.
func (d Descriptor) ScriptName() string {
	p := d.ScriptRelativePath
	if i := strings.LastIndex(p, "/"); i >= 0 {
		return p[i+1:]
	}
	return p
}

// Validate checks the fields a generated script cannot work without.
func (d Descriptor) Validate() error {
	err := validate.Struct(d)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return fmt.Errorf("%w: %w", ErrInvalidDescriptor, err)
	}

	msgs := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		switch fe.Tag() {
		case "required":
			msgs = append(msgs, fmt.Sprintf("%s is required", fe.Namespace()))
		case "envvar":
			msgs = append(msgs, fmt.Sprintf("%s %q is not a valid environment variable name", fe.Namespace(), fe.Value()))
		default:
			msgs = append(msgs, fmt.Sprintf("%s failed %q", fe.Namespace(), fe.Tag()))
		}
	}
	return fmt.Errorf("%w: %s", ErrInvalidDescriptor, strings.Join(msgs, "; "))
}

// ToConstant converts a display name to an upper-case constant name:
// "myApp" and "my-app" both become "MY_APP". A leading digit gets an
// underscore prefix so the result is a valid environment variable name.
func ToConstant(name string) string {
	var b strings.Builder
	b.Grow(len(name) + 4)

	pendingSep := false
	var prev rune
	for _, r := range name {
		isWord := unicode.IsLetter(r) || unicode.IsDigit(r)
		if !isWord || r > unicode.MaxASCII {
			pendingSep = b.Len() > 0
			prev = 0
			continue
		}
		if unicode.IsUpper(r) && (unicode.IsLower(prev) || unicode.IsDigit(prev)) {
			pendingSep = true
		}
		if pendingSep {
			b.WriteByte('_')
			pendingSep = false
		}
		b.WriteRune(unicode.ToUpper(r))
		prev = r
	}
	out := b.String()
	if out != "" && out[0] >= '0' && out[0] <= '9' {
		return "_" + out
	}
	return out
}
