package properties

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/0xalexb/hjarta-extras/properties/yaml"

	"github.com/joho/godotenv"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/rawbytes"
	koanf "github.com/knadh/koanf/v2"
)

// ErrMalformedPair is returned when a key=value pair has no "=" or an empty key.
var ErrMalformedPair = errors.New("malformed key=value pair")

// delimiter splits nested keys for koanf. Index tokens stay attached to their key.
const delimiter = "."

// source is one layer applied by the Loader.
type source struct {
	name string
	load func(k *koanf.Koanf) error
}

// Loader layers configuration sources into a Store.
type Loader struct {
	sources []source
}

// LoaderOption configures a Loader.
type LoaderOption func(*Loader)

// NewLoader creates a Loader applying the given sources in order.
func NewLoader(opts ...LoaderOption) *Loader {
	loader := &Loader{sources: nil}

	for _, apply := range opts {
		apply(loader)
	}

	return loader
}

// WithFile adds a YAML file source.
func WithFile(path string) LoaderOption {
	return WithFileSection(path, "")
}

// WithFileSection adds a YAML file source restricted to a colon-separated section.
func WithFileSection(path, section string) LoaderOption {
	return func(l *Loader) {
		l.sources = append(l.sources, source{
			name: "file " + path,
			load: func(k *koanf.Koanf) error {
				err := k.Load(file.Provider(path), yaml.NewParser().At(section))
				if err != nil {
					return fmt.Errorf("loading file %q: %w", path, err)
				}

				return nil
			},
		})
	}
}

// WithYAML adds an in-memory YAML document.
func WithYAML(data []byte) LoaderOption {
	return func(l *Loader) {
		l.sources = append(l.sources, source{
			name: "yaml",
			load: func(k *koanf.Koanf) error {
				err := k.Load(rawbytes.Provider(data), yaml.NewParser())
				if err != nil {
					return fmt.Errorf("loading yaml: %w", err)
				}

				return nil
			},
		})
	}
}

// WithEnv adds process environment variables starting with prefix.
func WithEnv(prefix string) LoaderOption {
	return func(l *Loader) {
		l.sources = append(l.sources, source{
			name: "env " + prefix,
			load: func(k *koanf.Koanf) error {
				err := k.Load(env.Provider(prefix, delimiter, EnvKeyMapper(prefix)), nil)
				if err != nil {
					return fmt.Errorf("loading env %q: %w", prefix, err)
				}

				return nil
			},
		})
	}
}

// WithDotEnv adds the variables of a .env file that start with prefix.
// The process environment is left untouched.
func WithDotEnv(path, prefix string) LoaderOption {
	return func(l *Loader) {
		l.sources = append(l.sources, source{
			name: "dotenv " + path,
			load: func(k *koanf.Koanf) error {
				vars, err := godotenv.Read(path)
				if err != nil {
					return fmt.Errorf("reading dotenv %q: %w", path, err)
				}

				mapKey := EnvKeyMapper(prefix)
				values := map[string]any{}

				for name, value := range vars {
					if !strings.HasPrefix(name, prefix) {
						continue
					}

					if key := mapKey(name); key != "" {
						values[key] = value
					}
				}

				err = k.Load(confmap.Provider(values, delimiter), nil)
				if err != nil {
					return fmt.Errorf("loading dotenv %q: %w", path, err)
				}

				return nil
			},
		})
	}
}

// WithPairs adds literal "key=value" pairs, e.g. "property[0].sub-property1=value1".
func WithPairs(pairs ...string) LoaderOption {
	return func(l *Loader) {
		l.sources = append(l.sources, source{
			name: "pairs",
			load: func(k *koanf.Koanf) error {
				values, err := ParsePairs(pairs...)
				if err != nil {
					return err
				}

				err = k.Load(confmap.Provider(values, delimiter), nil)
				if err != nil {
					return fmt.Errorf("loading pairs: %w", err)
				}

				return nil
			},
		})
	}
}

// Load applies every source and returns the flattened snapshot.
func (l *Loader) Load() (*Store, error) {
	k := koanf.New(delimiter)

	for _, src := range l.sources {
		err := src.load(k)
		if err != nil {
			slog.Error("property source failed", slog.String("source", src.name), slog.Any("error", err))

			return nil, err
		}

		slog.Debug("property source loaded", slog.String("source", src.name))
	}

	store := New(Flatten(k.Raw()))

	slog.Debug("properties loaded", slog.Int("sources", len(l.sources)), slog.Int("properties", store.Len()))

	return store, nil
}

// ParsePairs converts "key=value" strings into a map. Whitespace around the key is trimmed.
func ParsePairs(pairs ...string) (map[string]any, error) {
	values := make(map[string]any, len(pairs))

	for _, pair := range pairs {
		key, value, found := strings.Cut(pair, "=")
		key = strings.TrimSpace(key)

		if !found || key == "" {
			return nil, fmt.Errorf("%w: %q", ErrMalformedPair, pair)
		}

		values[key] = value
	}

	return values, nil
}

// EnvKeyMapper returns the koanf key callback that maps environment names to
// property paths: the prefix is stripped, "__" separates segments, "_" becomes
// "-" and numeric segments become indices. Names mapping to nothing return "".
func EnvKeyMapper(prefix string) func(string) string {
	return func(name string) string {
		parts := strings.Split(strings.ToLower(strings.TrimPrefix(name, prefix)), "__")

		var builder strings.Builder

		for _, part := range parts {
			if part == "" {
				continue
			}

			if isOrdinal(part) && builder.Len() > 0 {
				builder.WriteString(Index(part))

				continue
			}

			if builder.Len() > 0 {
				builder.WriteString(delimiter)
			}

			builder.WriteString(strings.ReplaceAll(part, "_", "-"))
		}

		return builder.String()
	}
}
