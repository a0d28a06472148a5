package extras_test

import (
	"fmt"

	extras "github.com/0xalexb/hjarta-extras"
	"github.com/0xalexb/hjarta-extras/condition"
	"github.com/0xalexb/hjarta-extras/properties"

	"go.uber.org/fx"
)

// DataSource is one configured database connection.
type DataSource struct {
	Name string
	URL  string
}

// DataSources binds the indexed datasources collection from the properties.
func DataSources(store *properties.Store) []DataSource {
	elements := store.SubProperties("datasources")
	result := make([]DataSource, 0, len(elements))

	for _, index := range store.Indices("datasources") {
		result = append(result, DataSource{
			Name: elements[index]["name"],
			URL:  elements[index]["url"],
		})
	}

	return result
}

// Example_conditionalModule registers the datasource module only when every
// element of the collection carries both a name and a url.
func Example_conditionalModule() {
	store, err := properties.NewLoader(properties.WithFile("testdata/app.yaml")).Load()
	if err != nil {
		fmt.Printf("Error loading properties: %v\n", err)

		return
	}

	var sources []DataSource

	app := extras.NewApp(
		extras.WithProperties(store),
		extras.WithConditionalModule("datasources",
			condition.MustOnPropertiesCollection("datasources", "name", "url"),
			fx.Provide(DataSources),
			fx.Invoke(func(ds []DataSource) { sources = ds }),
		),
	)

	err = app.Start()
	if err != nil {
		fmt.Printf("Error starting app: %v\n", err)

		return
	}

	defer func() { _ = app.Stop() }()

	for _, source := range sources {
		fmt.Printf("%s: %s\n", source.Name, source.URL)
	}

	fmt.Println(app.Report().Matched()[0].Outcome.Message)
	// Output:
	// primary: mysql://db-1/app
	// replica: mysql://db-2/app
	// found property collection datasources (2 elements)
}
