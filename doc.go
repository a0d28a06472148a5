// Package extras wires an Fx application around a flat properties store:
// a JSON slog logger, modules registered only when their conditions match
// the properties, and front controllers sharing one listener between two
// routers.
package extras
