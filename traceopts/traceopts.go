// Package traceopts is the evaluator's tuning record: "all evaluator tuning
// (debug IP, log directory, etc.) is a simple record passed into state;
// there is no global configuration." It loads from YAML the way
// core/program.go loads YAMLRoot, and builds programmatically with the same
// fluent WithX idiom as core/builder.go and config/config.go.
package traceopts

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// ExprFormat holds the expression-formatting knobs consumed by the
// (out-of-scope) query renderer: how many fractional digits to print for
// FLit values, and whether to elide long Struct/Intrinsic argument lists.
type ExprFormat struct {
	Precision int  `yaml:"precision"`
	Elide     bool `yaml:"elide"`
}

// Options is the evaluator's full configuration record.
type Options struct {
	debugIP    uint64
	hasDebugIP bool

	logDir string

	interesting map[string]bool

	exprFormat ExprFormat
}

// yamlOptions mirrors Options' fields for YAML (de)serialization; Options
// itself keeps its fields unexported so DebugIP's "unset" state can't be
// represented by the zero value alone.
type yamlOptions struct {
	DebugIP     *uint64  `yaml:"debug_ip"`
	LogDir      string   `yaml:"log_dir"`
	Interesting []string `yaml:"interesting"`
	ExprFormat  ExprFormat `yaml:"expr_format"`
}

// New returns an empty Options: no debug IP, no log directory, every
// function considered interesting.
func New() Options {
	return Options{interesting: nil}
}

// Load reads Options from a YAML file at path.
func Load(path string) (Options, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Options{}, fmt.Errorf("traceopts: reading %s: %w", path, err)
	}

	var y yamlOptions
	if err := yaml.Unmarshal(data, &y); err != nil {
		return Options{}, fmt.Errorf("traceopts: parsing %s: %w", path, err)
	}

	o := New().WithLogDir(y.LogDir).WithExprFormat(y.ExprFormat)
	if y.DebugIP != nil {
		o = o.WithDebugIP(*y.DebugIP)
	}
	if len(y.Interesting) > 0 {
		o = o.WithInteresting(y.Interesting...)
	}
	return o, nil
}

// WithDebugIP sets the guest IP that enables debug-IP tracing.
func (o Options) WithDebugIP(ip uint64) Options {
	o.debugIP = ip
	o.hasDebugIP = true
	return o
}

// WithLogDir sets the diagnostic log directory.
func (o Options) WithLogDir(dir string) Options {
	o.logDir = dir
	return o
}

// WithInteresting sets the associator's interesting-function allowlist.
// Calling it with no names sets an empty allowlist under which no function
// is interesting; only Options built without WithInteresting treat every
// function as interesting.
func (o Options) WithInteresting(names ...string) Options {
	m := make(map[string]bool, len(names))
	for _, n := range names {
		m[n] = true
	}
	o.interesting = m
	return o
}

// WithExprFormat sets the expression-formatting knobs.
func (o Options) WithExprFormat(f ExprFormat) Options {
	o.exprFormat = f
	return o
}

// DebugIP returns the configured debug IP, and false if none was set.
func (o Options) DebugIP() (uint64, bool) { return o.debugIP, o.hasDebugIP }

// LogDir returns the configured diagnostic log directory.
func (o Options) LogDir() string { return o.logDir }

// ExprFormat returns the configured expression-formatting knobs.
func (o Options) ExprFormat() ExprFormat { return o.exprFormat }

// Interesting reports whether fn is in the allowlist. An unset allowlist
// (Options built without WithInteresting) treats every function as
// interesting, matching the associator's "interesting" contract when the
// caller does not want to filter at all.
func (o Options) Interesting(fn string) bool {
	if o.interesting == nil {
		return true
	}
	return o.interesting[fn]
}

// InterestingSet returns the raw allowlist, for passing straight to
// assoc.Associate.
func (o Options) InterestingSet() map[string]bool {
	if o.interesting == nil {
		return nil
	}
	out := make(map[string]bool, len(o.interesting))
	for k, v := range o.interesting {
		out[k] = v
	}
	return out
}
