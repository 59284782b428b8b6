package codec

import (
	"testing"

	"github.com/vmihailenco/msgpack/v5"
)

type testRecord struct {
	Name string `msgpack:"name"`
	Seq  int    `msgpack:"seq"`
}

func TestMsgpack_EncodeWrapsBatchOnce(t *testing.T) {
	enc := NewMsgpack[testRecord]()

	records := []testRecord{
		{Name: "first", Seq: 1},
		{Name: "second", Seq: 2},
	}

	payload, err := enc.Encode(records)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}

	var decoded [][]testRecord
	if err := msgpack.Unmarshal(payload, &decoded); err != nil {
		t.Fatalf("payload does not decode as a list of record lists: %v", err)
	}

	if len(decoded) != 1 {
		t.Fatalf("outer list length = %d, want 1", len(decoded))
	}
	inner := decoded[0]
	if len(inner) != len(records) {
		t.Fatalf("inner list length = %d, want %d", len(inner), len(records))
	}
	for i, r := range records {
		if inner[i] != r {
			t.Errorf("record %d = %+v, want %+v", i, inner[i], r)
		}
	}
}

func TestMsgpack_EncodeEmptyBatch(t *testing.T) {
	enc := NewMsgpack[testRecord]()

	payload, err := enc.Encode(nil)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}

	var decoded [][]testRecord
	if err := msgpack.Unmarshal(payload, &decoded); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if len(decoded) != 1 || len(decoded[0]) != 0 {
		t.Errorf("decoded = %v, want one empty inner list", decoded)
	}
}

func TestMsgpack_ContentType(t *testing.T) {
	enc := NewMsgpack[testRecord]()
	if got := enc.ContentType(); got != "application/msgpack" {
		t.Errorf("ContentType() = %q, want application/msgpack", got)
	}
}
