// Package sync forwards view-state changes into the Bubble Tea runtime.
package sync

import (
	gosync "sync"

	tea "github.com/charmbracelet/bubbletea"
)

// Source is anything that signals state changes on a channel, such as a
// view-state container.
type Source interface {
	Changes() <-chan struct{}
}

// ChangedMsg is a tea.Msg sent when a registered source changed.
type ChangedMsg struct {
	Name string
}

// Watcher fans the change channels of registered sources into a single
// channel that the UI drains one message at a time.
type Watcher struct {
	sources  map[string]Source
	order    []string
	resultCh chan ChangedMsg
	stopCh   chan struct{}
	wg       gosync.WaitGroup
	mu       gosync.Mutex
	running  bool
}

// New creates an empty Watcher.
func New() *Watcher {
	return &Watcher{
		sources:  make(map[string]Source),
		resultCh: make(chan ChangedMsg, 16),
		stopCh:   make(chan struct{}),
	}
}

// Register adds a named source. Sources registered after Start are ignored.
func (w *Watcher) Register(name string, src Source) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.running {
		return
	}
	if _, ok := w.sources[name]; !ok {
		w.order = append(w.order, name)
	}
	w.sources[name] = src
}

// Start launches one forwarding goroutine per source and returns a
// command waiting for the first change.
func (w *Watcher) Start() tea.Cmd {
	w.mu.Lock()
	if w.running {
		w.mu.Unlock()
		return nil
	}
	w.running = true
	for _, name := range w.order {
		w.wg.Add(1)
		go w.forward(name, w.sources[name])
	}
	w.mu.Unlock()

	return w.waitForChange()
}

// Stop halts the forwarding goroutines and waits for them to exit.
func (w *Watcher) Stop() {
	w.mu.Lock()
	if !w.running {
		w.mu.Unlock()
		return
	}
	w.running = false
	close(w.stopCh)
	w.mu.Unlock()

	w.wg.Wait()
}

// WaitForNext returns a tea.Cmd that waits for the next change. Call it
// after handling a ChangedMsg to keep listening.
func (w *Watcher) WaitForNext() tea.Cmd {
	return w.waitForChange()
}

func (w *Watcher) forward(name string, src Source) {
	defer w.wg.Done()

	changes := src.Changes()
	for {
		select {
		case <-w.stopCh:
			return
		case _, ok := <-changes:
			if !ok {
				return
			}
			select {
			case w.resultCh <- ChangedMsg{Name: name}:
			case <-w.stopCh:
				return
			}
		}
	}
}

func (w *Watcher) waitForChange() tea.Cmd {
	return func() tea.Msg {
		select {
		case msg := <-w.resultCh:
			return msg
		case <-w.stopCh:
			return nil
		}
	}
}
