package writer

import (
	"fmt"
	"strconv"
	"sync"
	"sync/atomic"
	"time"

	"github.com/bft-labs/spanship/pkg/codec"
	"github.com/bft-labs/spanship/pkg/log"
	"github.com/bft-labs/spanship/pkg/transport"
)

// Writer accumulates records and ships them to the collection agent in
// batches from a dedicated worker goroutine.
//
// All methods are safe for concurrent use. Write never blocks; Flush
// and Stop block until the worker acknowledges.
type Writer[R any] struct {
	cfg     Config
	queue   *boundedQueue[R]
	encoder codec.Encoder[R]
	handle  transport.Handle
	logger  log.Logger

	// flushCh carries one reply channel per blocked Flush caller; the
	// worker closes the reply once the covering cycle completes.
	flushCh  chan chan struct{}
	stopCh   chan struct{}
	done     chan struct{}
	stopOnce sync.Once

	enqueued    atomic.Uint64
	droppedFull atomic.Uint64
	droppedSend atomic.Uint64
	batchesSent atomic.Uint64
}

// Stats is a snapshot of the writer's counters.
type Stats struct {
	// Enqueued counts records accepted by Write.
	Enqueued uint64

	// DroppedFull counts records rejected because the queue was at
	// capacity.
	DroppedFull uint64

	// DroppedSend counts records lost to failed encode or send cycles.
	DroppedSend uint64

	// BatchesSent counts batches the agent accepted.
	BatchesSent uint64
}

// New creates a Writer and starts its worker goroutine.
//
// Construction is the only fatal error path: an invalid configuration or
// a handle that rejects the endpoint or static headers fails New. After
// that, nothing the writer does surfaces an error to callers.
func New[R any](cfg Config, opts ...Option[R]) (*Writer[R], error) {
	cfg.SetDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	o := defaultOptions[R]()
	for _, opt := range opts {
		opt(&o)
	}
	handle := o.handle
	if handle == nil {
		handle = transport.NewAgentHandle(o.client)
	}

	if err := handle.SetEndpoint(cfg.endpoint()); err != nil {
		return nil, fmt.Errorf("set agent endpoint: %w", err)
	}
	staticHeaders := []string{
		"Content-Type: " + o.encoder.ContentType(),
		headerLang + ": go",
		headerTracerVersion + ": " + cfg.TracerVersion,
	}
	if err := handle.AppendHeaders(staticHeaders); err != nil {
		return nil, fmt.Errorf("set agent headers: %w", err)
	}

	w := &Writer[R]{
		cfg:     cfg,
		queue:   newBoundedQueue[R](cfg.MaxQueuedRecords),
		encoder: o.encoder,
		handle:  handle,
		logger:  o.logger,
		flushCh: make(chan chan struct{}),
		stopCh:  make(chan struct{}),
		done:    make(chan struct{}),
	}
	go w.run()
	return w, nil
}

// Write enqueues a record for the next batch. It never blocks: the
// record is silently dropped when the writer is stopped or the queue is
// at capacity. The worker is not woken; the record rides along on the
// next periodic or explicit flush.
func (w *Writer[R]) Write(record R) {
	select {
	case <-w.stopCh:
		return
	default:
	}
	if !w.queue.Offer(record) {
		w.droppedFull.Add(1)
		return
	}
	w.enqueued.Add(1)
}

// Flush wakes the worker and blocks until every record enqueued strictly
// before the call has been handed to the encoder and transport at least
// once, or until the writer stops. Delivery is still best effort: a
// failed send during the cycle does not fail the Flush.
func (w *Writer[R]) Flush() {
	reply := make(chan struct{})
	select {
	case w.flushCh <- reply:
	case <-w.done:
		return
	}
	select {
	case <-reply:
	case <-w.done:
	}
}

// Stop terminates the worker and waits for it to exit. Idempotent.
//
// Stop does not flush: records queued but not yet drained are discarded.
// An in-flight send is not cancelled; Stop returns once the current
// cycle, if any, completes. Call Flush first when delivery of everything
// queued matters.
func (w *Writer[R]) Stop() {
	w.stopOnce.Do(func() {
		close(w.stopCh)
	})
	<-w.done
}

// Stats returns a snapshot of the writer's counters.
func (w *Writer[R]) Stats() Stats {
	return Stats{
		Enqueued:    w.enqueued.Load(),
		DroppedFull: w.droppedFull.Load(),
		DroppedSend: w.droppedSend.Load(),
		BatchesSent: w.batchesSent.Load(),
	}
}

// run is the worker loop. It waits for one of three wakeups: the write
// period elapsing, an explicit flush request, or stop. On the first two
// it drains the queue and, when nonempty, encodes and sends the batch
// with no lock held. Stop is terminal.
func (w *Writer[R]) run() {
	defer close(w.done)

	ticker := time.NewTicker(w.cfg.WritePeriod)
	defer ticker.Stop()

	for {
		var waiters []chan struct{}
		select {
		case <-w.stopCh:
			if abandoned := w.queue.Len(); abandoned > 0 {
				w.logger.Warn("stopping with undrained records", log.Int("records", abandoned))
			}
			w.logger.Debug("writer stopped",
				log.Uint64("enqueued", w.enqueued.Load()),
				log.Uint64("dropped_full", w.droppedFull.Load()),
				log.Uint64("dropped_send", w.droppedSend.Load()),
				log.Uint64("batches_sent", w.batchesSent.Load()),
			)
			return
		case reply := <-w.flushCh:
			waiters = append(waiters, reply)
			// Flushers that queued up behind this one are covered by
			// the same cycle.
		pending:
			for {
				select {
				case extra := <-w.flushCh:
					waiters = append(waiters, extra)
				default:
					break pending
				}
			}
		case <-ticker.C:
		}

		if records := w.queue.Drain(); len(records) > 0 {
			w.send(records)
		}
		for _, reply := range waiters {
			close(reply)
		}
		// The period is measured from the end of the last cycle, not
		// from a fixed schedule.
		ticker.Reset(w.cfg.WritePeriod)
	}
}

// send encodes and posts one batch. Every failure is contained here:
// the batch is dropped, the error logged, and the loop continues.
func (w *Writer[R]) send(records []R) {
	// A panicking custom Encoder or Handle must not take down the
	// worker or the host application.
	defer func() {
		if r := recover(); r != nil {
			w.droppedSend.Add(uint64(len(records)))
			w.logger.Error("batch dropped after panic", log.Any("panic", r))
		}
	}()

	payload, err := w.encoder.Encode(records)
	if err != nil {
		w.droppedSend.Add(uint64(len(records)))
		w.logger.Error("encode batch", log.Err(err), log.Int("records", len(records)))
		return
	}

	if err := w.handle.AppendHeaders([]string{headerSpanCount + ": " + strconv.Itoa(len(records))}); err != nil {
		w.droppedSend.Add(uint64(len(records)))
		w.logger.Error("set batch headers", log.Err(err))
		return
	}
	if err := w.handle.SetBody(payload); err != nil {
		w.droppedSend.Add(uint64(len(records)))
		w.logger.Error("set batch body", log.Err(err))
		return
	}
	if err := w.handle.Perform(); err != nil {
		w.droppedSend.Add(uint64(len(records)))
		w.logger.Error("send batch",
			log.Err(err),
			log.Int("records", len(records)),
			log.Int("bytes", len(payload)),
			log.String("last_error", w.handle.LastError()),
		)
		return
	}

	w.batchesSent.Add(1)
	w.logger.Debug("sent batch", log.Int("records", len(records)), log.Int("bytes", len(payload)))
}
