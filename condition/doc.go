// Package condition provides predicates over a properties.Store that decide
// whether a module should be registered.
//
// The central condition is OnPropertiesCollection: it matches when every
// element of an indexed collection defines a required set of sub-properties.
//
//	property[0].sub-property1=value01
//	property[0].sub-property2=value02
//	property[1].sub-property1=value11
//
// Evaluating OnPropertiesCollection("property", "sub-property1", "sub-property2")
// on the store above does not match, and reports property[1].sub-property2 as
// missing. When no property[...] entry exists at all the outcome is flagged
// Absent and lists property[].sub-property1 and property[].sub-property2.
//
// Conditions compose with All, which mirrors stacking several gates on the
// same module.
package condition
