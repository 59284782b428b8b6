// Package transport defines the handle the writer uses to post encoded
// batches to the collection agent.
//
// A [Handle] is a small capability set: configure the endpoint once,
// accumulate headers, set the body for the current request, perform it.
// Implementations are not required to be safe for concurrent use; the
// writer hands the handle to its worker goroutine at construction and no
// other goroutine touches it afterwards.
//
// [AgentHandle] is the net/http-backed implementation. Inject a custom
// [HTTPClient] for testing or alternative transports:
//
//	handle := transport.NewAgentHandle(mockClient)
//
// # Version
//
// Current version: 1.0.0
// Minimum compatible version: 1.0.0
//
// See version.go for version constants that can be used programmatically.
package transport
