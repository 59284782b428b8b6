package codec

// Encoder serializes an ordered batch of records into the wire payload
// for one request. Implementations apply the batch framing the agent
// protocol requires (see the package documentation) and report the
// Content-Type of the payload they produce.
//
// Implementations are not required to be safe for concurrent use; the
// writer only calls an Encoder from its worker goroutine.
type Encoder[R any] interface {
	// Encode serializes the batch, preserving record order.
	Encode(records []R) ([]byte, error)

	// ContentType returns the MIME type of the encoded payload.
	ContentType() string
}
