// Package observability provides the Prometheus collectors recorded by the layout engine.
//
// Collectors are registered on a caller-supplied registerer so tests and embedding
// applications can keep them isolated from the global default registry.
package observability
