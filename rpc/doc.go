// Package rpc holds the message level layer of dWire, on top of the wire format in lib/wire.
//
// The package is organized into several subpackages:
//
//   - common: Configuration structures and the logging implementation shared by
//     all commands.
//
//   - serializer: Interchangeable packet serializers (GOB, JSON, Net, Binary) that
//     all write into a wire.Writer and read from a wire.Reader, so they can be
//     compared on equal terms.
package rpc
