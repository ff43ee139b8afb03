// Package tools owns subprocess execution primitives shared by spellctl modules.
//
// Ownership boundary:
// - command execution helpers
//
// - exit-code mapping for started and unstartable processes
package tools
