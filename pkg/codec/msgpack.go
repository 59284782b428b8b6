package codec

import "github.com/vmihailenco/msgpack/v5"

// Msgpack encodes record batches as msgpack, the format the collection
// agent ingests.
type Msgpack[R any] struct{}

// NewMsgpack creates a msgpack encoder for records of type R.
func NewMsgpack[R any]() Msgpack[R] {
	return Msgpack[R]{}
}

// Encode serializes the batch. The batch is nested in a single-element
// outer array: the agent wants a list of trace-lists, not a bare list
// of records.
func (Msgpack[R]) Encode(records []R) ([]byte, error) {
	return msgpack.Marshal([][]R{records})
}

// ContentType returns the msgpack MIME type.
func (Msgpack[R]) ContentType() string {
	return "application/msgpack"
}
