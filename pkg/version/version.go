// Package version carries build-time version information for the tracefang
// binary, injected via -ldflags.
package version

// Version is the release version of the executing binary.
var Version = "<unknown>"

// Commit is the Git hash the binary was built from.
var Commit = "<unknown>"

// Date is the build timestamp.
var Date = "<unknown>"
