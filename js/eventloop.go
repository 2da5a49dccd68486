// Package js embeds a goja JavaScript runtime over the dom package: it
// exposes a document global, bridges script functions into traversal
// filters and mutation observer callbacks, and drives the microtask
// checkpoint that delivers observer records.
package js

import (
	"sync"

	"github.com/nightjarhq/nightjar/dom"
)

// EventLoop sequences script work: macrotasks run one per turn, and every
// turn ends with a microtask checkpoint that also drains the document's
// scheduler, where mutation observer deliveries queue.
type EventLoop struct {
	mu         sync.Mutex
	macrotasks []func()
	microtasks []func()
	doc        *dom.Document
}

// NewEventLoop creates an event loop bound to doc.
func NewEventLoop(doc *dom.Document) *EventLoop {
	return &EventLoop{doc: doc}
}

// QueueTask appends a macrotask.
func (el *EventLoop) QueueTask(task func()) {
	el.mu.Lock()
	el.macrotasks = append(el.macrotasks, task)
	el.mu.Unlock()
}

// QueueMicrotask appends a microtask to run at the next checkpoint.
func (el *EventLoop) QueueMicrotask(task func()) {
	el.mu.Lock()
	el.microtasks = append(el.microtasks, task)
	el.mu.Unlock()
}

// RunOnce runs a single macrotask followed by a microtask checkpoint.
// Returns false when no macrotask was pending.
func (el *EventLoop) RunOnce() bool {
	el.mu.Lock()
	if len(el.macrotasks) == 0 {
		el.mu.Unlock()
		el.Checkpoint()
		return false
	}
	task := el.macrotasks[0]
	el.macrotasks = el.macrotasks[1:]
	el.mu.Unlock()

	task()
	el.Checkpoint()
	return true
}

// Run drains all queued macrotasks.
func (el *EventLoop) Run() {
	for el.RunOnce() {
	}
}

// Checkpoint drains the microtask queue, interleaved with the document's
// scheduler so observer deliveries run with microtask timing.
func (el *EventLoop) Checkpoint() {
	for {
		el.mu.Lock()
		var task func()
		if len(el.microtasks) > 0 {
			task = el.microtasks[0]
			el.microtasks = el.microtasks[1:]
		}
		el.mu.Unlock()

		if task != nil {
			task()
			continue
		}
		if el.doc != nil && el.doc.Scheduler().HasPending() {
			el.doc.Scheduler().Flush()
			continue
		}
		return
	}
}
