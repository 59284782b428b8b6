// Package domain contains the core domain entities for spanship.
//
// This package represents the innermost layer of the module. It has no
// dependencies on infrastructure concerns (HTTP, encoding, logging) and
// contains only the telemetry record types shipped by the writer.
//
// # Entities
//
//   - [Span]: One finished telemetry unit, the default record type the
//     writer is instantiated with.
package domain
