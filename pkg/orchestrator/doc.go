// Package orchestrator wires configuration, the registration schema, the form
// controller and the renderer registry behind a single entry point used by
// the CLI and embedding applications.
package orchestrator
