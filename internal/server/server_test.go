package server

import (
	"context"
	"net"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
	tomb "gopkg.in/tomb.v2"

	"github.com/arvindmenon/lobx/internal/engine"
	"github.com/arvindmenon/lobx/internal/metrics"
	"github.com/arvindmenon/lobx/internal/wire"
)

// TestServer_HandleConnection_SweepAcrossLevels drives a record stream
// through handleConnection directly, bypassing the TCP listener, and
// asserts the resulting book state.
func TestServer_HandleConnection_SweepAcrossLevels(t *testing.T) {
	book := engine.NewOrderBook("AAPL")
	reg := metrics.NewRegistry()
	s := New("unused", book, reg, zerolog.Nop())

	var tmb tomb.Tomb
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	tmb.Go(func() error {
		s.pool.run(&tmb, s.handleConnection)
		return nil
	})
	tmb.Go(func() error {
		return s.engineLoop(&tmb)
	})

	client, remote := net.Pipe()

	orders := []engine.Order{
		{ID: 1, Side: engine.Buy, Price: 12.2, Qty: 100},
		{ID: 2, Side: engine.Buy, Price: 12.2, Qty: 25},
		{ID: 3, Side: engine.Buy, Price: 12.5, Qty: 25},
		{ID: 4, Side: engine.Buy, Price: 12.7, Qty: 25},
		{ID: 5, Side: engine.Sell, Price: 12.2, Qty: 100},
	}

	writeDone := make(chan struct{})
	go func() {
		defer close(writeDone)
		for _, o := range orders {
			_, err := client.Write(wire.Encode(o))
			require.NoError(t, err)
		}
		client.Close()
	}()

	s.pool.addTask(remote)

	select {
	case <-writeDone:
	case <-time.After(2 * time.Second):
		t.Fatal("timed out writing orders")
	}

	require.Eventually(t, func() bool {
		bid, ok := book.BestBid()
		return ok && bid.TotalQty == 75
	}, time.Second, time.Millisecond)

	_, ok := book.BestAsk()
	require.False(t, ok)

	tmb.Kill(nil)
	_ = ctx
}
