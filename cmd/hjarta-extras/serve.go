package main

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"

	extras "github.com/0xalexb/hjarta-extras"
	"github.com/0xalexb/hjarta-extras/condition"
	"github.com/0xalexb/hjarta-extras/conditional"
	"github.com/0xalexb/hjarta-extras/exclude"
	"github.com/0xalexb/hjarta-extras/properties"
	"github.com/0xalexb/hjarta-extras/web"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"
	"go.uber.org/fx"
)

const (
	frontController = "front"
	frontProfile    = "front-controller"
	webPrefix       = "web"

	siteRoutesGroup  = "site.routes"
	siteRoutesServed = "site.routes.served"
	debugQualifier   = "debug"
)

type serveFlags struct {
	sourceFlags

	logLevel    string
	logFile     string
	debugRoutes bool
}

// siteRoute is one fallback route; debug routes carry the "debug" qualifier.
type siteRoute struct {
	pattern   string
	handler   http.Handler
	qualifier string
}

func (r siteRoute) Qualifier() string {
	return r.qualifier
}

func newServeCommand() *cobra.Command {
	flags := &serveFlags{}

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the API router and the site mux behind one front controller",
		Long: "Starts the front controller when the " + frontProfile + " profile is active.\n" +
			"Paths matching web.url-mappings go to the API router with their full path,\n" +
			"everything else to the site mux, which also exposes /metrics.",
		Args: cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			store, err := flags.load()
			if err != nil {
				return err
			}

			// With debug routes enabled the exclusion targets a qualifier no route carries.
			excluded := debugQualifier
			if flags.debugRoutes {
				excluded = "-"
			}

			app := extras.NewApp(
				extras.WithProperties(store),
				extras.WithLogLevel(flags.logLevel),
				extras.WithLogFile(flags.logFile),
				extras.WithConditionalModule(frontController, condition.NewOnProfile(frontProfile),
					fx.Provide(
						fx.Annotate(newAPIRouter, fx.As(new(http.Handler)), fx.ResultTags(web.PrimaryTag(frontController))),
						fx.Annotate(newSiteMux,
							fx.ParamTags(fmt.Sprintf(`name:"%s"`, siteRoutesServed)),
							fx.As(new(http.Handler)),
							fx.ResultTags(web.FallbackTag(frontController)),
						),
						fx.Annotate(newSiteRoutes, fx.ResultTags(fmt.Sprintf(`group:"%s,flatten"`, siteRoutesGroup))),
					),
					exclude.Provide[siteRoute](siteRoutesGroup, excluded, siteRoutesServed),
					web.ConfigFromProperties(frontController, webPrefix),
					web.NewModule(frontController),
				),
			)

			if err := app.Err(); err != nil {
				return err //nolint:wrapcheck // fx names the failing constructor.
			}

			app.Run()

			return nil
		},
	}

	flags.register(cmd)
	cmd.Flags().StringVar(&flags.logLevel, "log-level", "", "debug, info, warn or error; overrides logging.level")
	cmd.Flags().StringVar(&flags.logFile, "log-file", "", "rotated log file; overrides logging.file")
	cmd.Flags().BoolVar(&flags.debugRoutes, "debug-routes", false, "serve /debug/properties on the site mux")

	return cmd
}

// newAPIRouter serves the mapped paths. Routes carry the mapping prefix because
// the front controller passes the full request path.
func newAPIRouter(store *properties.Store, report *conditional.Report) *chi.Mux {
	router := chi.NewRouter()
	router.Use(middleware.RequestID, middleware.Recoverer)

	router.Route("/api", func(r chi.Router) {
		r.Get("/conditions", func(w http.ResponseWriter, _ *http.Request) {
			writeJSON(w, http.StatusOK, report.Entries())
		})
		r.Get("/properties/{key}", func(w http.ResponseWriter, req *http.Request) {
			key := chi.URLParam(req, "key")

			value, ok := store.Get(key)
			if !ok {
				writeJSON(w, http.StatusNotFound, map[string]string{"error": "property not found", "key": key})

				return
			}

			writeJSON(w, http.StatusOK, map[string]string{"key": key, "value": value})
		})
	})

	return router
}

// newSiteRoutes lists every fallback route, debug ones included.
func newSiteRoutes(store *properties.Store) []siteRoute {
	return []siteRoute{
		{pattern: "GET /metrics", handler: promhttp.Handler(), qualifier: ""},
		{pattern: "GET /{$}", handler: http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			writeJSON(w, http.StatusOK, map[string]string{"version": extras.Version, "compiled_at": extras.CompiledAt})
		}), qualifier: ""},
		{pattern: "GET /debug/properties", handler: http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			writeJSON(w, http.StatusOK, store.Map())
		}), qualifier: debugQualifier},
	}
}

// newSiteMux serves every path the API router does not own.
func newSiteMux(routes []siteRoute) *http.ServeMux {
	mux := http.NewServeMux()

	for _, route := range routes {
		mux.Handle(route.pattern, route.handler)
	}

	return mux
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	err := json.NewEncoder(w).Encode(body)
	if err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}
