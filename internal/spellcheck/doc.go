// Package spellcheck owns the installer-runner lifecycle for the wrapped
// spell-check tool.
//
// Ownership boundary:
// - exact-version presence check and conditional install
//
// - tool invocation with exit-code propagation
//
// Spellcheck does not interpret the tool's output or configuration; the tool
// is an opaque subprocess.
package spellcheck
