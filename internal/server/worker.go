package server

import (
	"github.com/rs/zerolog"
	tomb "gopkg.in/tomb.v2"
)

const taskChanSize = 100

// workerFunc handles one queued connection. Any error it returns is logged;
// the worker that ran it then goes on to the next task.
type workerFunc func(t *tomb.Tomb, task any) error

// workerPool runs a fixed number of goroutines pulling tasks off a shared
// channel, supervised by a tomb so the server can tear the whole pool down
// on shutdown.
type workerPool struct {
	n     int
	tasks chan any
	log   zerolog.Logger
}

func newWorkerPool(size int, log zerolog.Logger) *workerPool {
	return &workerPool{
		n:     size,
		tasks: make(chan any, taskChanSize),
		log:   log,
	}
}

func (p *workerPool) addTask(task any) {
	p.tasks <- task
}

// run starts size long-lived workers, each looping on tasks until the tomb
// is dying. Unlike a pool that respawns one goroutine per task, these
// workers persist for the pool's lifetime.
func (p *workerPool) run(t *tomb.Tomb, work workerFunc) {
	p.log.Info().Int("workers", p.n).Msg("starting worker pool")
	for i := 0; i < p.n; i++ {
		t.Go(func() error {
			return p.worker(t, work)
		})
	}
}

func (p *workerPool) worker(t *tomb.Tomb, work workerFunc) error {
	for {
		select {
		case <-t.Dying():
			return nil
		case task := <-p.tasks:
			if err := work(t, task); err != nil {
				p.log.Error().Err(err).Msg("worker task failed")
			}
		}
	}
}
