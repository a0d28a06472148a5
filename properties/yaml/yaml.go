package yaml

import (
	"bytes"
	"errors"
	"fmt"
	"strings"

	"github.com/goccy/go-yaml"
)

// ErrEmptyData is returned when the input data is empty.
var ErrEmptyData = errors.New("empty data")

// ErrPathNotFound is returned when the specified path is not found in the YAML document.
var ErrPathNotFound = errors.New("path not found")

// Parser decodes YAML documents, optionally restricted to one section.
// It implements koanf.Parser.
type Parser struct {
	section string
}

// NewParser creates a new YAML parser instance that reads whole documents.
func NewParser() *Parser {
	return &Parser{section: ""}
}

// At returns a parser that only reads the given colon-separated section.
func (p *Parser) At(section string) *Parser {
	return &Parser{section: section}
}

// Section returns the colon-separated section this parser reads.
func (p *Parser) Section() string {
	return p.section
}

// Unmarshal decodes data into a nested tree. Empty data yields an empty tree.
func (p *Parser) Unmarshal(data []byte) (map[string]any, error) {
	tree := map[string]any{}

	if len(bytes.TrimSpace(data)) == 0 {
		return tree, nil
	}

	err := p.Parse(data, &tree, p.section)
	if err != nil {
		return nil, err
	}

	if tree == nil {
		tree = map[string]any{}
	}

	return tree, nil
}

// Marshal encodes a nested tree back into YAML.
func (p *Parser) Marshal(tree map[string]any) ([]byte, error) {
	data, err := yaml.Marshal(tree)
	if err != nil {
		return nil, fmt.Errorf("marshal error: %w", err)
	}

	return data, nil
}

// Parse parses YAML data and unmarshals it into the target.
// The path parameter specifies a navigation path using colon (:) as separator.
// Empty path parses the entire document.
func (p *Parser) Parse(data []byte, target any, path string) error {
	if len(data) == 0 {
		return ErrEmptyData
	}

	if path == "" {
		err := yaml.Unmarshal(data, target)
		if err != nil {
			return fmt.Errorf("unmarshal error: %w", err)
		}

		return nil
	}

	pathObj, err := yaml.PathString(convertToYAMLPath(path))
	if err != nil {
		return fmt.Errorf("invalid path %q: %w", path, err)
	}

	err = pathObj.Read(bytes.NewReader(data), target)
	if err != nil {
		if yaml.IsNotFoundNodeError(err) {
			return fmt.Errorf("%w: %s", ErrPathNotFound, path)
		}

		return fmt.Errorf("reading path %q: %w", path, err)
	}

	return nil
}

// convertToYAMLPath converts a colon-separated path to goccy/go-yaml PathString format.
func convertToYAMLPath(path string) string {
	return "$." + strings.Join(strings.Split(path, ":"), ".")
}
