// Package server exposes the matching engine over the fixed-record TCP
// wire protocol defined in internal/wire, using a worker pool to accept and
// decode many connections concurrently while serializing every Submit onto
// a single goroutine that owns the OrderBook.
package server

import (
	"context"
	"fmt"
	"net"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	tomb "gopkg.in/tomb.v2"

	"github.com/arvindmenon/lobx/internal/engine"
	"github.com/arvindmenon/lobx/internal/metrics"
	"github.com/arvindmenon/lobx/internal/wire"
)

const (
	defaultWorkers     = 10
	defaultConnTimeout = 30 * time.Second
)

// submission is one decoded order waiting to be applied to the book by the
// engine goroutine. done is closed once Submit has returned, so the worker
// that decoded the order can move on to the next one in its connection's
// stream without racing the engine.
type submission struct {
	order engine.Order
	done  chan struct{}
}

// Server accepts TCP connections carrying streams of wire.RecordLen-byte
// order records and applies them to a single OrderBook in submission order.
type Server struct {
	addr    string
	book    *engine.OrderBook
	metrics *metrics.Registry
	log     zerolog.Logger
	pool    *workerPool

	submissions chan submission
	cancel      context.CancelFunc
}

// New builds a Server listening on addr (host:port) that applies decoded
// orders to book.
func New(addr string, book *engine.OrderBook, reg *metrics.Registry, log zerolog.Logger) *Server {
	return &Server{
		addr:        addr,
		book:        book,
		metrics:     reg,
		log:         log,
		pool:        newWorkerPool(defaultWorkers, log),
		submissions: make(chan submission, 1),
	}
}

// Run listens on s.addr until ctx is cancelled or a fatal error occurs. It
// blocks until shutdown completes.
func (s *Server) Run(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	s.cancel = cancel
	defer cancel()

	t, ctx := tomb.WithContext(ctx)

	var lc net.ListenConfig
	listener, err := lc.Listen(ctx, "tcp", s.addr)
	if err != nil {
		return fmt.Errorf("server: listen on %s: %w", s.addr, err)
	}
	defer listener.Close()

	// Accept does not watch ctx, so close the listener on cancellation to
	// unblock it.
	go func() {
		<-ctx.Done()
		listener.Close()
	}()

	t.Go(func() error {
		s.pool.run(t, s.handleConnection)
		return nil
	})
	t.Go(func() error {
		return s.engineLoop(t)
	})

	s.log.Info().Str("addr", s.addr).Msg("server listening")

	for {
		select {
		case <-ctx.Done():
			return t.Wait()
		default:
			conn, err := listener.Accept()
			if err != nil {
				select {
				case <-ctx.Done():
					return t.Wait()
				default:
					s.log.Error().Err(err).Msg("accept failed")
					continue
				}
			}
			s.pool.addTask(conn)
		}
	}
}

// Shutdown cancels the server's context, unwinding the accept loop, worker
// pool, and engine loop.
func (s *Server) Shutdown() {
	if s.cancel != nil {
		s.cancel()
	}
}

// engineLoop is the single goroutine that ever touches s.book, preserving
// the matching engine's non-reentrant invariant regardless of how many
// connections are being read concurrently.
func (s *Server) engineLoop(t *tomb.Tomb) error {
	for {
		select {
		case <-t.Dying():
			return nil
		case sub := <-s.submissions:
			trades := s.book.Submit(sub.order)
			s.metrics.ObserveSubmit(sub.order.Side.String(), len(trades))
			close(sub.done)
		}
	}
}

// handleConnection decodes every record on conn and submits the resulting
// orders to the engine loop one at a time, in the order they appeared on
// the wire. It logs the book summary once the connection reaches EOF.
func (s *Server) handleConnection(t *tomb.Tomb, task any) error {
	conn, ok := task.(net.Conn)
	if !ok {
		return fmt.Errorf("server: unexpected task type %T", task)
	}
	defer conn.Close()

	session := uuid.New()
	log := s.log.With().Str("session", session.String()).Logger()

	if err := conn.SetDeadline(time.Now().Add(defaultConnTimeout)); err != nil {
		log.Error().Err(err).Msg("failed to set connection deadline")
		return nil
	}

	orders, err := wire.DecodeStream(conn)
	if err != nil {
		log.Error().Err(err).Int("decoded", len(orders)).Msg("order stream ended with a decode error; already-decoded orders are still submitted")
	}

	log.Info().Int("orders", len(orders)).Msg("decoded order stream")

	for _, order := range orders {
		done := make(chan struct{})
		select {
		case <-t.Dying():
			return nil
		case s.submissions <- submission{order: order, done: done}:
		}
		select {
		case <-t.Dying():
			return nil
		case <-done:
		}
	}

	log.Info().Str("summary", s.book.Summary()).Msg("connection processed")
	return nil
}
