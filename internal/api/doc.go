// Package api defines the contracts shared by all simulators and the MCP
// server layer: the tool metadata model, the Simulator interface, the
// simulator registry, and the domain error taxonomy.
//
// # Service Locator Pattern
//
// Simulators register themselves through RegisterSimulator during
// application startup. The server layer discovers them through
// ListSimulators without importing any simulator package, which keeps the
// dependency direction one-way: simulators depend on api, the server depends
// on api, and nothing depends on a concrete simulator except the messages
// simulator's sanctioned live read of the contacts store.
//
// # Error Taxonomy
//
// Handlers never return raw fmt.Errorf errors for domain conditions. They
// return one of the typed errors defined here (NotFoundError,
// ValidationError, InvalidInputError, InvalidStateError, DuplicateError) so
// the server layer can render them uniformly as MCP tool errors and tests
// can assert on the condition rather than the message text.
package api
