package main

import (
	"errors"
	"fmt"

	"github.com/0xalexb/hjarta-extras/condition"

	"github.com/spf13/cobra"
)

var errNoMatch = errors.New("condition did not match")

type checkFlags struct {
	sourceFlags

	name string
	subs []string
}

func newCheckCommand() *cobra.Command {
	flags := &checkFlags{}

	cmd := &cobra.Command{
		Use:   "check",
		Short: "Check that every element of a property collection defines the given sub-properties",
		Example: "  hjarta-extras check -f app.yaml --name datasources --sub name --sub url\n" +
			"  hjarta-extras check --env APP_ --name servers --sub host",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runCheck(cmd, flags)
		},
	}

	flags.register(cmd)
	cmd.Flags().StringVar(&flags.name, "name", "", "collection path, e.g. datasources")
	cmd.Flags().StringSliceVar(&flags.subs, "sub", nil, "required sub-property, may be repeated")

	_ = cmd.MarkFlagRequired("name")
	_ = cmd.MarkFlagRequired("sub")

	return cmd
}

func runCheck(cmd *cobra.Command, flags *checkFlags) error {
	cond, err := condition.NewOnPropertiesCollection(flags.name, flags.subs...)
	if err != nil {
		return err //nolint:wrapcheck // condition errors describe the bad argument.
	}

	store, err := flags.load()
	if err != nil {
		return err
	}

	outcome := cond.Evaluate(store)

	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s: %s\n", cond.Name(), outcome)

	for _, missing := range outcome.Missing {
		_, _ = fmt.Fprintf(cmd.OutOrStdout(), "  missing %s\n", missing)
	}

	if !outcome.Matched {
		return errNoMatch
	}

	return nil
}
