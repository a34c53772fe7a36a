package switchboard

import (
	"errors"
	"io"
	"io/fs"
	"os"

	"gopkg.in/yaml.v3"
)

// LoadOption configures a single document load.
type LoadOption interface {
	apply(*loadOptions)
}

type loadOptions struct {
	optional bool
}

type loadOptionFunc func(*loadOptions)

func (f loadOptionFunc) apply(o *loadOptions) {
	f(o)
}

// Optional marks a document source as optional: a missing file is silently
// skipped instead of failing the load.
func Optional() LoadOption {
	return loadOptionFunc(func(o *loadOptions) {
		o.optional = true
	})
}

// LoadFile reads one YAML file of service definitions and merges it into
// the container. Files loaded later override earlier ones per name. A
// multi-document file is merged in document order.
func (c *Container) LoadFile(path string, opts ...LoadOption) error {
	var options loadOptions
	for _, opt := range opts {
		opt.apply(&options)
	}

	f, err := os.Open(path)
	if err != nil {
		if options.optional && errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return ConfigError{Source: path, Cause: err}
	}
	defer f.Close()

	return c.loadYAML(f, path)
}

// LoadReader reads YAML service definitions from a stream and merges them
// into the container.
func (c *Container) LoadReader(r io.Reader) error {
	return c.loadYAML(r, "stream")
}

func (c *Container) loadYAML(r io.Reader, source string) error {
	dec := yaml.NewDecoder(r)
	for {
		var doc any
		if err := dec.Decode(&doc); err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			return ConfigError{Source: source, Cause: err}
		}

		mapping, ok := doc.(map[string]any)
		if !ok {
			return ConfigError{Source: source, Reason: "top-level document is not a mapping"}
		}
		c.Load(mapping)
	}
}
