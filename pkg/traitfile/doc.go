// Package traitfile loads trait definitions from YAML files.
//
// A trait file declares named traits with their field requirements, plus
// derived expressions built from union, intersect, and minus over earlier
// names. Parsing accumulates every problem it finds into an ErrorList
// rather than stopping at the first, so a single lint pass reports all
// issues in a file.
//
// The Registry holds the loaded expressions behind a versioned,
// copy-on-write snapshot, and the Manager ties parsing, registration, and
// optional hot-reload via file watching together.
package traitfile
