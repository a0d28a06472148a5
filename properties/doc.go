// Package properties provides an immutable, flat view of hierarchical configuration.
//
// A Store maps path strings to scalar string values. Paths use dots between
// named segments and brackets for index tokens:
//
//	server.address                 -> ":8080"
//	property[0].sub-property1      -> "value1"
//	my.other.feature[one].p1       -> "value1"
//
// Nested documents (YAML files, environment overlays, key=value pairs) are
// layered by a Loader built on koanf and flattened into this form once. The
// resulting Store is never mutated, so it can be shared between goroutines and
// handed to conditions and binders without copying.
//
// # Loading
//
//	store, err := properties.NewLoader(
//	    properties.WithFile("conf/app.yaml"),
//	    properties.WithEnv("APP_"),
//	).Load()
//
// Sources are applied in order; later sources override earlier ones.
//
// # Environment keys
//
// Environment variables are mapped to paths by stripping the prefix, lowering
// the case, splitting segments on "__", turning "_" into "-" and rendering
// numeric segments as indices:
//
//	APP_WEB__URL_MAPPINGS__0 -> web.url-mappings[0]
package properties
