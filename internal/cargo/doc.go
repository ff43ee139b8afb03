// Package cargo owns the package-manager adapter used to provision the
// spell-check tool.
//
// Ownership boundary:
// - installed-crate listing and parsing
//
// - exact-version crate installation
package cargo
