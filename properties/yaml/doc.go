// Package yaml provides the YAML parser used to load property documents.
//
// This package uses github.com/goccy/go-yaml for decoding with native
// PathString support. A Parser satisfies koanf.Parser, so it plugs directly
// into koanf providers, and it can restrict a document to one section using a
// colon-separated path (e.g., "app:settings" becomes "$.app.settings").
//
// Usage:
//
//	parser := yaml.NewParser().At("app:settings")
//	tree, err := parser.Unmarshal(data)
//
// Path Conversion:
//   - Empty path "" -> entire document
//   - Single key "key" -> "$.key"
//   - Nested path "api:permissions" -> "$.api.permissions"
package yaml
