package properties

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrInvalidPath is returned when a path string does not follow the dotted/bracketed grammar.
var ErrInvalidPath = errors.New("invalid property path")

// Segment is one element of a Path: either a named key or an index token.
type Segment struct {
	Value string
	Index bool
}

// Path is a parsed property path such as "a.b[0].c".
type Path []Segment

// ParsePath parses a dotted/bracketed path.
// Named segments must be non-empty and index tokens must be non-empty and must not nest.
// The first segment must be a named key.
func ParsePath(raw string) (Path, error) {
	if raw == "" {
		return nil, fmt.Errorf("%w: empty path", ErrInvalidPath)
	}

	key, pos := readKey(raw, 0)
	if key == "" {
		return nil, fmt.Errorf("%w: %q must start with a key", ErrInvalidPath, raw)
	}

	path := Path{{Value: key, Index: false}}

	for pos < len(raw) {
		switch raw[pos] {
		case '.':
			key, pos = readKey(raw, pos+1)
			if key == "" {
				return nil, fmt.Errorf("%w: empty segment in %q", ErrInvalidPath, raw)
			}

			path = append(path, Segment{Value: key, Index: false})
		case '[':
			end := strings.IndexByte(raw[pos+1:], ']')
			if end < 0 {
				return nil, fmt.Errorf("%w: unbalanced bracket in %q", ErrInvalidPath, raw)
			}

			token := raw[pos+1 : pos+1+end]
			if token == "" || strings.ContainsRune(token, '[') {
				return nil, fmt.Errorf("%w: bad index %q in %q", ErrInvalidPath, token, raw)
			}

			path = append(path, Segment{Value: token, Index: true})
			pos += end + 2
		default:
			return nil, fmt.Errorf("%w: unexpected %q in %q", ErrInvalidPath, raw[pos], raw)
		}
	}

	return path, nil
}

// readKey returns the named segment starting at from and the offset just past it.
func readKey(raw string, from int) (string, int) {
	end := from
	for end < len(raw) && raw[end] != '.' && raw[end] != '[' && raw[end] != ']' {
		end++
	}

	return raw[from:end], end
}

// String renders the canonical form of the path.
func (p Path) String() string {
	var builder strings.Builder

	for i, segment := range p {
		if segment.Index {
			builder.WriteString(Index(segment.Value))

			continue
		}

		if i > 0 {
			builder.WriteByte('.')
		}

		builder.WriteString(segment.Value)
	}

	return builder.String()
}

// Join appends a named key to a base path. An empty base yields the key alone.
func Join(base, key string) string {
	switch {
	case base == "":
		return key
	case key == "":
		return base
	case strings.HasPrefix(key, "["):
		return base + key
	default:
		return base + "." + key
	}
}

// Index renders an index token in bracket form.
func Index(token string) string {
	return "[" + token + "]"
}

// ValidKey reports whether name can be used as a single named segment.
func ValidKey(name string) bool {
	return name != "" && !strings.ContainsAny(name, ".[]")
}

func isOrdinal(token string) bool {
	if token == "" {
		return false
	}

	_, err := strconv.ParseUint(token, 10, 64)

	return err == nil
}
