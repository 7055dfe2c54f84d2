package avro

import (
	"fmt"

	"github.com/linkedin/goavro/v2"

	"orderdesk/internal/domain/order"
)

// Encoder serializes order records to Avro binary. The underlying goavro
// codec is safe for concurrent use.
type Encoder struct {
	codec *goavro.Codec
}

// NewEncoder compiles the order record schema.
func NewEncoder() (*Encoder, error) {
	codec, err := goavro.NewCodec(OrderRecordSchema)
	if err != nil {
		return nil, fmt.Errorf("failed to create avro codec: %w", err)
	}
	return &Encoder{codec: codec}, nil
}

// Encode converts a record to Avro binary format.
func (e *Encoder) Encode(rec order.Record) ([]byte, error) {
	binary, err := e.codec.BinaryFromNative(nil, recordNative(rec))
	if err != nil {
		return nil, fmt.Errorf("failed to encode to avro binary: %w", err)
	}
	return binary, nil
}

// Decode converts Avro binary back to the goavro native form. It is used by
// tests and debugging tooling, not by the publish path.
func (e *Encoder) Decode(data []byte) (map[string]interface{}, error) {
	native, _, err := e.codec.NativeFromBinary(data)
	if err != nil {
		return nil, fmt.Errorf("failed to decode avro binary: %w", err)
	}
	out, ok := native.(map[string]interface{})
	if !ok {
		return nil, fmt.Errorf("avro payload is not a record")
	}
	return out, nil
}
