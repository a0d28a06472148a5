// Package web provides a front controller that lets two HTTP routers share
// one root path behind a single listener.
//
// Requests whose path matches one of the configured servlet-style URL
// mappings go to the primary handler; everything else goes to the fallback.
// The primary handler sees the full request path unless servlet-relative
// paths are enabled, so a router such as chi can declare its routes with the
// mapping prefix included:
//
//	fx.New(
//		fx.Supply(
//			fx.Annotate(apiRouter, fx.As(new(http.Handler)), fx.ResultTags(web.PrimaryTag("front"))),
//			fx.Annotate(siteMux, fx.As(new(http.Handler)), fx.ResultTags(web.FallbackTag("front"))),
//		),
//		web.NewModule("front", web.WithAddress(":8080"), web.WithURLMappings("/api/*")),
//	)
//
// Mapping precedence follows the servlet rules: exact match, then the longest
// path prefix, then extension, then the default mapping "/".
package web
