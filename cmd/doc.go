// Package cmd implements the command-line interface of dWire.
//
// The package is organized into several subpackages:
//
//   - bench: Runs the serializer benchmark and writes its report
//   - inspect: Prints the encoding of the sample packet
//   - util: Shared utilities for command-line processing and configuration (internal use)
//
// See dwire -help for a list of all commands.
package cmd
