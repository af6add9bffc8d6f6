// Package patch implements the *** Begin Patch description language and its
// application engine.
//
// The package parses a patch payload into per-file actions, materializes those
// actions against a snapshot of the current file contents, and applies the
// resulting changes through caller-supplied read/write/remove operations. The
// engine itself performs no filesystem I/O, which keeps it embeddable in
// agents, editors and testing utilities that bring their own storage.
package patch
