package dom

import "sync"

// Scheduler is the document's microtask queue. Observer deliveries are
// queued here and run when the host drains the queue; Flush also runs
// tasks enqueued by earlier tasks in the same drain.
type Scheduler struct {
	mu    sync.Mutex
	tasks []func()
}

func newScheduler() *Scheduler {
	return &Scheduler{}
}

// QueueMicrotask appends a task to the queue.
func (s *Scheduler) QueueMicrotask(task func()) {
	s.mu.Lock()
	s.tasks = append(s.tasks, task)
	s.mu.Unlock()
}

// HasPending reports whether any tasks are queued.
func (s *Scheduler) HasPending() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.tasks) > 0
}

// Flush runs queued tasks until the queue is empty, including tasks queued
// while flushing.
func (s *Scheduler) Flush() {
	for {
		s.mu.Lock()
		if len(s.tasks) == 0 {
			s.mu.Unlock()
			return
		}
		task := s.tasks[0]
		s.tasks = s.tasks[1:]
		s.mu.Unlock()
		task()
	}
}
