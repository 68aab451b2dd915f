package crawler

import (
	"container/list"
	"sync"
)

// EnqueueStatus is the outcome of a Frontier.TryEnqueue call.
type EnqueueStatus int

const (
	Accepted EnqueueStatus = iota
	AlreadyVisited
	BudgetExhausted
)

func (s EnqueueStatus) String() string {
	switch s {
	case Accepted:
		return "accepted"
	case AlreadyVisited:
		return "already visited"
	case BudgetExhausted:
		return "budget exhausted"
	}
	return "unknown"
}

// Frontier is the pending-work queue of not-yet-fetched internal URLs. It
// owns the visited set and the page budget, and detects crawl termination:
// once the queue is empty and no dequeued page is still being processed, it
// closes itself and wakes every blocked Dequeue.
//
// URLs handed to the Frontier must already be normalized; the visited check
// and insert happen under one lock so a URL enters the queue at most once no
// matter how many workers race on it.
type Frontier struct {
	mu       sync.Mutex
	cond     *sync.Cond
	queue    *list.List
	visited  map[string]struct{}
	dequeued int // page budget, counted at dequeue
	maxPages int
	inflight int
	closed   bool
}

// NewFrontier creates a Frontier capped at maxPages dequeues.
func NewFrontier(maxPages int) *Frontier {
	f := &Frontier{
		queue:    list.New(),
		visited:  make(map[string]struct{}),
		maxPages: maxPages,
	}
	f.cond = sync.NewCond(&f.mu)
	return f
}

// TryEnqueue adds a normalized URL to the queue unless it was ever enqueued
// before or the page budget is spent. The check and insert are atomic with
// respect to concurrent callers.
func (f *Frontier) TryEnqueue(u string) EnqueueStatus {
	f.mu.Lock()
	defer f.mu.Unlock()

	if _, ok := f.visited[u]; ok {
		return AlreadyVisited
	}
	if f.closed || f.dequeued >= f.maxPages {
		return BudgetExhausted
	}
	f.visited[u] = struct{}{}
	f.queue.PushBack(u)
	f.cond.Signal()
	return Accepted
}

// seed bypasses the budget check so the starting URL is always admitted.
func (f *Frontier) seed(u string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.visited[u] = struct{}{}
	f.queue.PushBack(u)
	f.cond.Signal()
}

// Dequeue blocks until a URL is available or the frontier shuts down. The
// second return value is false once the crawl is over: budget spent, queue
// drained with nothing in flight, or Close called. Every successful Dequeue
// must be paired with a Done call.
func (f *Frontier) Dequeue() (string, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()

	for {
		if f.closed {
			return "", false
		}
		if f.dequeued >= f.maxPages {
			f.closeLocked()
			return "", false
		}
		if f.queue.Len() > 0 {
			break
		}
		f.cond.Wait()
	}

	u := f.queue.Remove(f.queue.Front()).(string)
	f.dequeued++
	f.inflight++
	return u, true
}

// Done marks the end of processing for one dequeued URL. When the last
// in-flight page finishes with the queue empty, the crawl is over: a worker
// between finishing a fetch and enqueueing its links holds the in-flight
// count up, so an empty queue alone never terminates the crawl.
func (f *Frontier) Done() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.inflight--
	if f.inflight == 0 && f.queue.Len() == 0 {
		f.closeLocked()
	}
}

// Close shuts the frontier down, waking all blocked Dequeue calls. Safe to
// call more than once.
func (f *Frontier) Close() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.closeLocked()
}

func (f *Frontier) closeLocked() {
	if !f.closed {
		f.closed = true
		f.cond.Broadcast()
	}
}

// PagesDequeued reports how many pages were handed to workers.
func (f *Frontier) PagesDequeued() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.dequeued
}
