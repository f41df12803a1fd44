// Package wire implements the fixed 13-byte inbound order record, the
// matching engine's only external collaborator at the wire boundary.
package wire

import (
	"encoding/binary"
	"errors"
	"io"
	"math"

	"github.com/arvindmenon/lobx/internal/engine"
)

var (
	ErrMessageTooShort = errors.New("wire: record shorter than 13 bytes")
	ErrInvalidSide     = errors.New("wire: side byte is neither 0x01 nor 0x02")
)

// RecordLen is the fixed size of one inbound order record:
// 4 (id) + 1 (side) + 4 (price) + 4 (qty).
const RecordLen = 4 + 1 + 4 + 4

const (
	sideBuy  byte = 0x01
	sideSell byte = 0x02
)

// Decode parses exactly one RecordLen-byte record into an Order.
func Decode(rec []byte) (engine.Order, error) {
	if len(rec) < RecordLen {
		return engine.Order{}, ErrMessageTooShort
	}

	id := binary.BigEndian.Uint32(rec[0:4])

	var side engine.Side
	switch rec[4] {
	case sideBuy:
		side = engine.Buy
	case sideSell:
		side = engine.Sell
	default:
		return engine.Order{}, ErrInvalidSide
	}

	price := math.Float32frombits(binary.BigEndian.Uint32(rec[5:9]))
	qty := binary.BigEndian.Uint32(rec[9:13])

	return engine.Order{ID: id, Side: side, Price: price, Qty: qty}, nil
}

// Encode is the inverse of Decode, used by the load generator.
func Encode(o engine.Order) []byte {
	buf := make([]byte, RecordLen)
	binary.BigEndian.PutUint32(buf[0:4], o.ID)
	if o.Side == engine.Buy {
		buf[4] = sideBuy
	} else {
		buf[4] = sideSell
	}
	binary.BigEndian.PutUint32(buf[5:9], math.Float32bits(o.Price))
	binary.BigEndian.PutUint32(buf[9:13], o.Qty)
	return buf
}

// DecodeStream reads r to EOF and decodes the concatenation of full records
// it finds, in order. A trailing partial record or an invalid side byte
// stops decoding and reports an error, but every record decoded before the
// bad one is still returned: per spec, orders already accepted are not
// rolled back just because a later one on the same connection is malformed.
func DecodeStream(r io.Reader) ([]engine.Order, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}

	orders := make([]engine.Order, 0, len(raw)/RecordLen)
	off := 0
	for ; off+RecordLen <= len(raw); off += RecordLen {
		order, err := Decode(raw[off : off+RecordLen])
		if err != nil {
			return orders, err
		}
		orders = append(orders, order)
	}
	if off != len(raw) {
		return orders, ErrMessageTooShort
	}
	return orders, nil
}
