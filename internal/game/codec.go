package game

import (
	"errors"
	"fmt"

	"github.com/fxamacker/cbor/v2"
)

var ErrEmptySnapshot = errors.New("empty snapshot")

type Codec interface {
	Encode(s State) ([]byte, error)
	Decode(data []byte) (State, error)
}

// CBORCodec кодирует состояние в CBOR.
type CBORCodec struct{}

func (CBORCodec) Encode(s State) ([]byte, error) {
	data, err := cbor.Marshal(s)
	if err != nil {
		return nil, fmt.Errorf("encode state: %w", err)
	}
	return data, nil
}

func (CBORCodec) Decode(data []byte) (State, error) {
	if len(data) == 0 {
		return State{}, ErrEmptySnapshot
	}
	var s State
	if err := cbor.Unmarshal(data, &s); err != nil {
		return State{}, fmt.Errorf("decode state: %w", err)
	}
	return s, nil
}
