// Package codec serializes record batches into the wire payload posted
// to the collection agent.
//
// The agent's ingest endpoint accepts a list of traces, each of which is
// a list of spans. The writer ships one trace-list per request, so every
// encoder implementation must wrap the drained batch in exactly one extra
// single-element sequence before serializing. The provided [Msgpack]
// encoder does this with msgpack, the format the agent speaks.
//
// # Custom Encoders
//
// Implement [Encoder] to ship records in an alternative format:
//
//	type jsonEncoder[R any] struct{}
//
//	func (jsonEncoder[R]) Encode(records []R) ([]byte, error) {
//	    return json.Marshal([][]R{records})
//	}
//
//	func (jsonEncoder[R]) ContentType() string { return "application/json" }
//
// # Version
//
// Current version: 1.0.0
// Minimum compatible version: 1.0.0
//
// See version.go for version constants that can be used programmatically.
package codec
