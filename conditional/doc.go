// Package conditional registers Fx modules only when a condition matches the
// application's properties.
//
// Conditions are evaluated once, when the module option is built, against an
// immutable properties.Store. Every evaluation is logged, recorded in a Report
// that can be injected for diagnostics, and counted in the
// hjarta_condition_evaluations_total Prometheus counter.
//
//	evaluator := conditional.NewEvaluator(store)
//	app := fx.New(
//	    evaluator.Module("billing",
//	        condition.MustOnPropertiesCollection("billing.accounts", "id", "secret"),
//	        fx.Provide(newBillingClient),
//	    ),
//	    fx.Supply(evaluator.Report()),
//	)
package conditional
