package wire

import (
	"bytes"
	"testing"

	"github.com/arvindmenon/lobx/internal/engine"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeDecode_RoundTrip(t *testing.T) {
	cases := []engine.Order{
		{ID: 1, Side: engine.Buy, Price: 12.2, Qty: 100},
		{ID: 0xFFFFFFFF, Side: engine.Sell, Price: 0, Qty: 1},
		{ID: 42, Side: engine.Sell, Price: 9999.875, Qty: 65535},
	}

	for _, want := range cases {
		got, err := Decode(Encode(want))
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}
}

func TestDecode_TooShort(t *testing.T) {
	_, err := Decode(make([]byte, RecordLen-1))
	assert.ErrorIs(t, err, ErrMessageTooShort)
}

func TestDecode_InvalidSide(t *testing.T) {
	rec := Encode(engine.Order{ID: 1, Side: engine.Buy, Price: 1, Qty: 1})
	rec[4] = 0x03
	_, err := Decode(rec)
	assert.ErrorIs(t, err, ErrInvalidSide)
}

func TestDecodeStream_MultipleRecords(t *testing.T) {
	orders := []engine.Order{
		{ID: 1, Side: engine.Buy, Price: 12.2, Qty: 100},
		{ID: 2, Side: engine.Sell, Price: 12.5, Qty: 25},
	}

	var buf bytes.Buffer
	for _, o := range orders {
		buf.Write(Encode(o))
	}

	decoded, err := DecodeStream(&buf)
	require.NoError(t, err)
	assert.Equal(t, orders, decoded)
}

func TestDecodeStream_TrailingPartialRecord(t *testing.T) {
	var buf bytes.Buffer
	buf.Write(Encode(engine.Order{ID: 1, Side: engine.Buy, Price: 1, Qty: 1}))
	buf.Write([]byte{0x00, 0x01})

	_, err := DecodeStream(&buf)
	assert.ErrorIs(t, err, ErrMessageTooShort)
}
