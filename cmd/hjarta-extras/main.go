// Command hjarta-extras checks property collections and runs a front controller
// configured from the same properties.
package main

import (
	"os"

	"github.com/0xalexb/hjarta-extras/properties"

	"github.com/spf13/cobra"
)

// sourceFlags are the property sources shared by every subcommand.
type sourceFlags struct {
	files     []string
	section   string
	envPrefix string
	dotEnv    string
	pairs     []string
}

func (f *sourceFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringArrayVarP(&f.files, "file", "f", nil, "YAML property file, may be repeated")
	cmd.Flags().StringVar(&f.section, "section", "", "colon-separated section of the YAML files to load")
	cmd.Flags().StringVar(&f.envPrefix, "env", "", "load environment variables with this prefix")
	cmd.Flags().StringVar(&f.dotEnv, "dotenv", "", ".env file read with the --env prefix")
	cmd.Flags().StringArrayVar(&f.pairs, "set", nil, "key=value property override, may be repeated")
}

// load layers files, then .env, then environment, then overrides.
func (f *sourceFlags) load() (*properties.Store, error) {
	opts := make([]properties.LoaderOption, 0, len(f.files)+3)

	for _, path := range f.files {
		opts = append(opts, properties.WithFileSection(path, f.section))
	}

	if f.dotEnv != "" {
		opts = append(opts, properties.WithDotEnv(f.dotEnv, f.envPrefix))
	}

	if f.envPrefix != "" {
		opts = append(opts, properties.WithEnv(f.envPrefix))
	}

	if len(f.pairs) > 0 {
		opts = append(opts, properties.WithPairs(f.pairs...))
	}

	return properties.NewLoader(opts...).Load() //nolint:wrapcheck // loader errors name their source.
}

func newRootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:           "hjarta-extras",
		Short:         "Property collection checks and front controller",
		SilenceUsage:  true,
		SilenceErrors: false,
	}

	root.AddCommand(newCheckCommand(), newServeCommand())

	return root
}

func main() {
	if err := newRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}
