package cancel

import (
	"os"
	"os/signal"
	"sync"
)

// SignalWatch cancels a token when the process receives one of a set of
// signals.
type SignalWatch struct {
	ch   chan os.Signal
	quit chan struct{}
	done chan struct{}

	mu   sync.Mutex
	sig  os.Signal
	once sync.Once
}

// OnSignal cancels c on the first of sigs. The watch must be stopped to
// release the signal subscription.
func OnSignal(c Canceler, sigs ...os.Signal) *SignalWatch {
	w := &SignalWatch{
		ch:   make(chan os.Signal, 1),
		quit: make(chan struct{}),
		done: make(chan struct{}),
	}
	signal.Notify(w.ch, sigs...)

	go func() {
		defer close(w.done)
		select {
		case s := <-w.ch:
			w.mu.Lock()
			w.sig = s
			w.mu.Unlock()
			c.Cancel()
		case <-w.quit:
		}
	}()
	return w
}

// Signal returns the signal that cancelled the token, or nil.
func (w *SignalWatch) Signal() os.Signal {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.sig
}

// Stop unsubscribes from the signals. Safe to call multiple times.
func (w *SignalWatch) Stop() {
	w.once.Do(func() {
		signal.Stop(w.ch)
		close(w.quit)
		<-w.done
	})
}
