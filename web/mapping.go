package web

import (
	"errors"
	"fmt"
	"path"
	"sort"
	"strings"
)

// ErrInvalidMapping is returned for URL patterns outside the supported forms.
var ErrInvalidMapping = errors.New("invalid url mapping")

// MappingKind tells how a Mapping matches request paths.
type MappingKind int

const (
	// MappingExact matches one path, e.g. "/status".
	MappingExact MappingKind = iota
	// MappingPrefix matches a path and everything below it, e.g. "/api/*".
	MappingPrefix
	// MappingExtension matches paths by their final extension, e.g. "*.do".
	MappingExtension
	// MappingDefault matches every path not matched otherwise ("/").
	MappingDefault
)

func (k MappingKind) String() string {
	switch k {
	case MappingExact:
		return "exact"
	case MappingPrefix:
		return "prefix"
	case MappingExtension:
		return "extension"
	case MappingDefault:
		return "default"
	default:
		return fmt.Sprintf("MappingKind(%d)", int(k))
	}
}

// Mapping is one servlet-style URL pattern.
type Mapping struct {
	Pattern string
	Kind    MappingKind
	// value is the exact path, the prefix without "/*" or the extension without "*.".
	value string
}

// ParseMapping parses a URL pattern:
//   - "" maps the root path "/" exactly
//   - "/" is the default mapping
//   - "/a/*" maps "/a" and everything below it; "/*" maps everything
//   - "*.ext" maps paths ending in ".ext"
//   - any other pattern starting with "/" and without "*" maps exactly
func ParseMapping(pattern string) (Mapping, error) {
	switch {
	case pattern == "":
		return Mapping{Pattern: pattern, Kind: MappingExact, value: "/"}, nil
	case pattern == "/":
		return Mapping{Pattern: pattern, Kind: MappingDefault, value: ""}, nil
	case strings.HasPrefix(pattern, "*."):
		ext := strings.TrimPrefix(pattern, "*.")
		if ext == "" || strings.ContainsAny(ext, "/*") {
			return Mapping{}, fmt.Errorf("%w: %q", ErrInvalidMapping, pattern)
		}

		return Mapping{Pattern: pattern, Kind: MappingExtension, value: ext}, nil
	case strings.HasPrefix(pattern, "/") && strings.HasSuffix(pattern, "/*"):
		prefix := strings.TrimSuffix(pattern, "/*")
		if strings.Contains(prefix, "*") {
			return Mapping{}, fmt.Errorf("%w: %q", ErrInvalidMapping, pattern)
		}

		return Mapping{Pattern: pattern, Kind: MappingPrefix, value: prefix}, nil
	case strings.HasPrefix(pattern, "/") && !strings.Contains(pattern, "*"):
		return Mapping{Pattern: pattern, Kind: MappingExact, value: pattern}, nil
	default:
		return Mapping{}, fmt.Errorf("%w: %q", ErrInvalidMapping, pattern)
	}
}

// Mappings is a set of URL patterns resolved with servlet precedence:
// exact, then longest prefix, then extension, then default.
type Mappings struct {
	exact      map[string]Mapping
	prefixes   []Mapping
	extensions map[string]Mapping
	fallback   *Mapping
}

// ParseMappings parses every pattern. Duplicate patterns are ignored.
func ParseMappings(patterns ...string) (*Mappings, error) {
	mappings := &Mappings{
		exact:      map[string]Mapping{},
		prefixes:   nil,
		extensions: map[string]Mapping{},
		fallback:   nil,
	}

	for _, pattern := range patterns {
		mapping, err := ParseMapping(pattern)
		if err != nil {
			return nil, err
		}

		switch mapping.Kind {
		case MappingExact:
			mappings.exact[mapping.value] = mapping
		case MappingPrefix:
			if !mappings.hasPrefix(mapping.value) {
				mappings.prefixes = append(mappings.prefixes, mapping)
			}
		case MappingExtension:
			mappings.extensions[mapping.value] = mapping
		case MappingDefault:
			mappings.fallback = &mapping
		}
	}

	sort.SliceStable(mappings.prefixes, func(i, j int) bool {
		return len(mappings.prefixes[i].value) > len(mappings.prefixes[j].value)
	})

	return mappings, nil
}

func (m *Mappings) hasPrefix(value string) bool {
	for _, existing := range m.prefixes {
		if existing.value == value {
			return true
		}
	}

	return false
}

// Match returns the mapping of highest precedence for the request path.
func (m *Mappings) Match(requestPath string) (Mapping, bool) {
	if requestPath == "" {
		requestPath = "/"
	}

	if mapping, ok := m.exact[requestPath]; ok {
		return mapping, true
	}

	for _, mapping := range m.prefixes {
		if requestPath == mapping.value || strings.HasPrefix(requestPath, mapping.value+"/") {
			return mapping, true
		}
	}

	if ext := strings.TrimPrefix(path.Ext(requestPath), "."); ext != "" {
		if mapping, ok := m.extensions[ext]; ok {
			return mapping, true
		}
	}

	if m.fallback != nil {
		return *m.fallback, true
	}

	return Mapping{}, false
}

// PathWithin returns the part of requestPath below a prefix mapping, or "/"
// when nothing remains. Other mapping kinds return requestPath unchanged.
func (m Mapping) PathWithin(requestPath string) string {
	if m.Kind != MappingPrefix {
		return requestPath
	}

	rest := strings.TrimPrefix(requestPath, m.value)
	if rest == "" {
		return "/"
	}

	return rest
}
