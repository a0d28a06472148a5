package conditional_test

import (
	"testing"

	"github.com/0xalexb/hjarta-extras/condition"
	"github.com/0xalexb/hjarta-extras/conditional"
	"github.com/0xalexb/hjarta-extras/properties"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/fx"
	"go.uber.org/fx/fxtest"
)

var allSubPropertiesRequired = condition.MustOnPropertiesCollection("property", "sub-property1", "sub-property2")

func TestEvaluator_Module_RegistersWhenMatched(t *testing.T) {
	t.Parallel()

	store := properties.New(map[string]string{
		"property[0].sub-property1": "value1",
		"property[0].sub-property2": "value2",
	})

	var foo string

	app := fxtest.New(t,
		conditional.Module("foo-registered", store, allSubPropertiesRequired,
			fx.Provide(func() string { return "foo" }),
		),
		fx.Invoke(func(value string) { foo = value }),
	)

	app.RequireStart()
	app.RequireStop()

	assert.Equal(t, "foo", foo)
}

func TestEvaluator_Module_SkipsWhenNotMatched(t *testing.T) {
	t.Parallel()

	store := properties.New(map[string]string{
		"property[0].sub-property2": "value2",
	})

	var foo *string

	app := fxtest.New(t,
		conditional.Module("foo-skipped", store, allSubPropertiesRequired,
			fx.Provide(func() *string {
				value := "foo"

				return &value
			}),
		),
		fx.Invoke(fx.Annotate(func(value *string) { foo = value }, fx.ParamTags(`optional:"true"`))),
	)

	app.RequireStart()
	app.RequireStop()

	assert.Nil(t, foo, "provider of a skipped module must not be registered")
}

func TestEvaluator_Module_SkippedInvokesDoNotRun(t *testing.T) {
	t.Parallel()

	invoked := false

	app := fxtest.New(t,
		conditional.Module("invoke-skipped", properties.Empty(), allSubPropertiesRequired,
			fx.Invoke(func() { invoked = true }),
		),
	)

	app.RequireStart()
	app.RequireStop()

	assert.False(t, invoked)
}

func TestEvaluator_Report(t *testing.T) {
	t.Parallel()

	store := properties.New(map[string]string{
		"property[0].sub-property1": "value01",
		"property[0].sub-property2": "value02",
		"property[1].sub-property1": "value11",
	})
	evaluator := conditional.NewEvaluator(store)

	_ = evaluator.Module("report-collection", allSubPropertiesRequired)
	_ = evaluator.Module("report-always", condition.All())

	entries := evaluator.Report().Entries()
	require.Len(t, entries, 2)

	assert.Equal(t, "report-collection", entries[0].Module)
	assert.Equal(t, allSubPropertiesRequired.Name(), entries[0].Condition)
	assert.False(t, entries[0].Outcome.Matched)
	assert.Equal(t, []string{"property[1].sub-property2"}, entries[0].Outcome.Missing)

	assert.Equal(t, "report-always", entries[1].Module)
	assert.True(t, entries[1].Outcome.Matched)

	skipped := evaluator.Report().Skipped()
	require.Len(t, skipped, 1)
	assert.Equal(t, "report-collection", skipped[0].Module)

	matched := evaluator.Report().Matched()
	require.Len(t, matched, 1)
	assert.Equal(t, "report-always", matched[0].Module)
}

func TestEvaluator_Metrics(t *testing.T) {
	t.Parallel()

	evaluator := conditional.NewEvaluator(properties.Empty())

	_ = evaluator.Module("metrics-module", allSubPropertiesRequired)
	_ = evaluator.Module("metrics-module", allSubPropertiesRequired)
	_ = evaluator.Module("metrics-module", condition.All())

	assert.InDelta(t, 2, testutil.ToFloat64(conditional.Evaluations.WithLabelValues("metrics-module", "skipped")), 0)
	assert.InDelta(t, 1, testutil.ToFloat64(conditional.Evaluations.WithLabelValues("metrics-module", "matched")), 0)
}

func TestEvaluator_NilStoreIsEmpty(t *testing.T) {
	t.Parallel()

	evaluator := conditional.NewEvaluator(nil)

	require.NotNil(t, evaluator.Store())
	assert.Equal(t, 0, evaluator.Store().Len())
}

func TestEvaluator_Module_InvalidArguments(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name     string
		module   string
		cond     condition.Condition
		expected error
	}{
		{name: "empty name", module: "", cond: condition.All(), expected: conditional.ErrEmptyName},
		{name: "nil condition", module: "nil-condition", cond: nil, expected: conditional.ErrNilCondition},
	}

	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			app := fx.New(
				conditional.Module(testCase.module, properties.Empty(), testCase.cond),
				fx.NopLogger,
			)

			err := app.Err()
			require.Error(t, err)
			assert.ErrorIs(t, err, testCase.expected)
		})
	}
}
