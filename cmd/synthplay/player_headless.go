//go:build headless

package main

import (
	"io"
	"sync"
	"time"
)

type player interface {
	Play()
	Close() error
}

// headlessPlayer pulls audio at the real-time rate and discards it.
type headlessPlayer struct {
	r     io.Reader
	chunk int
	stop  chan struct{}
	once  sync.Once
	wg    sync.WaitGroup
}

func newPlayer(sampleRate int, r io.Reader) (player, error) {
	return &headlessPlayer{
		r:     r,
		chunk: 4 * max(1, sampleRate/100),
		stop:  make(chan struct{}),
	}, nil
}

func (h *headlessPlayer) Play() {
	h.wg.Add(1)

	go func() {
		defer h.wg.Done()

		buf := make([]byte, h.chunk)
		tick := time.NewTicker(10 * time.Millisecond)
		defer tick.Stop()

		for {
			select {
			case <-h.stop:
				return
			case <-tick.C:
				if _, err := h.r.Read(buf); err != nil {
					return
				}
			}
		}
	}()
}

func (h *headlessPlayer) Close() error {
	h.once.Do(func() { close(h.stop) })
	h.wg.Wait()

	return nil
}
