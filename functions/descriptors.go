package functions

import (
	_ "embed"
	"os"
	"path/filepath"
	"sync"

	"github.com/adrg/xdg"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/rapidpro/expressions/context"
)

//go:embed descriptors.yaml
var builtinDescriptorsYAML []byte

// yamlParam mirrors one entry of descriptors.yaml's params list.
type yamlParam struct {
	Name     string      `yaml:"name"`
	Optional bool        `yaml:"optional"`
	Variadic bool        `yaml:"variadic"`
	Default  interface{} `yaml:"default"`
}

// yamlDescriptor mirrors one top-level entry of descriptors.yaml.
type yamlDescriptor struct {
	Name   string      `yaml:"name"`
	Doc    string       `yaml:"doc"`
	Params []yamlParam `yaml:"params"`
}

// implementations is populated by registerImpl calls in this package's
// library files (text.go, datetimefn.go, mathfn.go, logical.go,
// custom.go) at package init. It is never mutated after init.
var implementations = map[string]Func{}

func registerImpl(name string, fn Func) {
	implementations[name] = fn
}

// loadDescriptors parses the embedded descriptor table and, if present,
// overlays a user config file at $XDG_CONFIG_HOME/excellent/functions.yaml,
// the same "ship a default, let the user override from their config
// directory" shape as aretext/app.LoadOrCreateConfig (github.com/adrg/xdg
// for the directory, gopkg.in/yaml.v3 for the format). A missing,
// unreadable or unparsable override file is skipped silently.
func loadDescriptors() (map[string]yamlDescriptor, error) {
	var builtin []yamlDescriptor
	if err := yaml.Unmarshal(builtinDescriptorsYAML, &builtin); err != nil {
		return nil, errors.Wrap(err, "yaml.Unmarshal builtin function descriptors")
	}

	base := make(map[string]yamlDescriptor, len(builtin))
	for _, d := range builtin {
		base[d.Name] = d
	}

	overridePath, err := xdg.SearchConfigFile(filepath.Join("excellent", "functions.yaml"))
	if err == nil {
		if data, readErr := os.ReadFile(overridePath); readErr == nil {
			var overrides []yamlDescriptor
			if yamlErr := yaml.Unmarshal(data, &overrides); yamlErr == nil {
				// Descriptor overlay is a flat, single-level replace by
				// function name - the user's functions.yaml either fully
				// redefines a builtin or adds a new one, there's no nested
				// structure to merge beneath it.
				for _, d := range overrides {
					base[d.Name] = d
				}
			}
		}
	}

	return base, nil
}

func signatureFrom(d yamlDescriptor) (Signature, error) {
	sig := Signature{}
	for _, p := range d.Params {
		param := Param{Name: p.Name, Optional: p.Optional, Variadic: p.Variadic}
		sig.Params = append(sig.Params, param)
		if p.Optional {
			def, err := context.FromInterface(p.Default)
			if err != nil {
				return Signature{}, errors.Wrapf(err, "default for %s.%s", d.Name, p.Name)
			}
			sig.Defaults = append(sig.Defaults, def)
		}
	}
	return sig, nil
}

// Build assembles a Registry from the descriptor table and the
// implementations registered by this package's library files. A
// descriptor with no matching implementation, or an implementation with
// no matching descriptor, is a startup error - spec.md §4.3 requires
// every declared function to have both.
func Build() (*Registry, error) {
	descs, err := loadDescriptors()
	if err != nil {
		return nil, err
	}

	reg := newRegistry()
	seen := make(map[string]bool, len(descs))

	for name, d := range descs {
		fn, ok := implementations[name]
		if !ok {
			return nil, errors.Errorf("function %s has a descriptor but no implementation", name)
		}
		sig, err := signatureFrom(d)
		if err != nil {
			return nil, err
		}
		reg.Register(name, d.Doc, sig, fn)
		seen[name] = true
	}

	for name := range implementations {
		if !seen[name] {
			return nil, errors.Errorf("function %s has an implementation but no descriptor", name)
		}
	}

	return reg, nil
}

var (
	defaultOnce sync.Once
	defaultReg  *Registry
	defaultErr  error
)

// Default returns the process-wide function registry, built once
// (sync.Once-guarded, per spec.md §5's "built once and then read-only")
// from the embedded descriptor table and the registered implementations.
// It panics on the startup errors Build can return - a descriptor and
// implementation out of sync is a programming error, not a runtime one.
func Default() *Registry {
	defaultOnce.Do(func() {
		defaultReg, defaultErr = Build()
	})
	if defaultErr != nil {
		panic(defaultErr)
	}
	return defaultReg
}
