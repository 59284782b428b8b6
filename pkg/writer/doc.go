// Package writer provides the asynchronous batching writer that ships
// telemetry records to a local collection agent.
//
// A [Writer] owns a bounded in-memory queue and a single worker
// goroutine. Producers hand records to [Writer.Write], which never
// blocks: once the queue is full, new records are dropped. The worker
// wakes on a fixed period (or on an explicit [Writer.Flush]), drains the
// queue, encodes the batch, and posts it to the agent. Encoding and
// transport failures drop that cycle's batch and are logged; they never
// reach the instrumented application.
//
// # Usage
//
//	w, err := writer.New[myRecord](writer.Config{
//	    Host: "localhost",
//	    Port: 8126,
//	})
//	if err != nil {
//	    return err
//	}
//	defer w.Stop()
//
//	w.Write(rec)   // hot path, never blocks
//	w.Flush()      // blocks until queued records were attempted
//
// Stop does not flush: records queued but not yet drained are discarded.
// Call Flush before Stop when delivery of everything queued matters.
//
// # Version
//
// Current version: 1.0.0
// Minimum compatible version: 1.0.0
//
// See version.go for version constants that can be used programmatically.
package writer
