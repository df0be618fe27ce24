// Package suspend converts asynchronous computations into synchronously
// pollable tri-state results, deduplicated by call signature. A computation
// registered once runs exactly once on a shared worker pool; every caller
// with the same (function, arguments) pair observes the same pending,
// fulfilled, or rejected entry. Terminal states are permanent: entries are
// never retried or evicted, so key domains must stay bounded (IDs, closed
// enums). A caller that needs fresher data must route the retry through a
// new argument combination.
package suspend

import (
	"context"
	"encoding/json"
	"fmt"
	"reflect"
	"runtime"
	"sync"

	"github.com/panjf2000/ants/v2"
)

// State is the lifecycle of one cached computation.
type State int

const (
	// Pending means the computation has not settled yet.
	Pending State = iota
	// Fulfilled means the computation produced a value.
	Fulfilled
	// Rejected means the computation failed; the failure is permanent.
	Rejected
)

func (s State) String() string {
	switch s {
	case Pending:
		return "pending"
	case Fulfilled:
		return "fulfilled"
	case Rejected:
		return "rejected"
	default:
		return "unknown"
	}
}

// RejectedError wraps a producer failure exactly once. Every observer of the
// entry receives the same wrapped error.
type RejectedError struct {
	Fn  string
	Err error
}

func (e *RejectedError) Error() string {
	return fmt.Sprintf("suspend: %s: %v", e.Fn, e.Err)
}

func (e *RejectedError) Unwrap() error {
	return e.Err
}

// entry is the shared settled-or-not record behind every task for one
// (function, arguments) pair. value and err are written once, before done is
// closed, and read only after done is observed closed.
type entry struct {
	done  chan struct{}
	value any
	err   error
}

func newEntry() *entry {
	return &entry{done: make(chan struct{})}
}

func (e *entry) settle(value any, err error) {
	e.value = value
	e.err = err
	close(e.done)
}

// Cache deduplicates computations two levels deep: producing-function
// identity, then a deterministic serialization of the argument list.
type Cache struct {
	mu      sync.Mutex
	entries map[string]map[string]*entry
	pool    *ants.Pool
}

// NewCache builds a cache whose producers run on a worker pool of the given
// size, bounding concurrent upstream fetches.
func NewCache(poolSize int) (*Cache, error) {
	pool, err := ants.NewPool(poolSize)
	if err != nil {
		return nil, fmt.Errorf("failed to create suspend worker pool: %w", err)
	}
	return &Cache{
		entries: make(map[string]map[string]*entry),
		pool:    pool,
	}, nil
}

// Close releases the worker pool. In-flight producers run to completion;
// there is deliberately no cancellation primitive.
func (c *Cache) Close() {
	c.pool.Release()
}

// Running reports the number of producers currently executing.
func (c *Cache) Running() int {
	return c.pool.Running()
}

// size reports the number of cached entries across all functions.
func (c *Cache) size() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	n := 0
	for _, byArgs := range c.entries {
		n += len(byArgs)
	}
	return n
}

// Task is a typed view onto one cache entry.
type Task[T any] struct {
	fn string
	e  *entry
}

// Do registers fn under its identity and the serialized args, or joins the
// entry already registered there. The producer is invoked at most once per
// key; it runs detached on the cache's pool with a background context and is
// never cancelled. args must capture everything the computation's result
// depends on: two closures with the same body but different captured state
// share an identity and must be discriminated through args. Arguments that
// cannot be serialized deterministically are out of contract and yield an
// immediately rejected task.
func Do[T any](c *Cache, fn func(context.Context) (T, error), args ...any) *Task[T] {
	name := funcIdentity(fn)

	argKey, err := encodeArgs(args)
	if err != nil {
		e := newEntry()
		e.settle(nil, &RejectedError{Fn: name, Err: err})
		return &Task[T]{fn: name, e: e}
	}

	c.mu.Lock()
	byArgs := c.entries[name]
	if byArgs == nil {
		byArgs = make(map[string]*entry)
		c.entries[name] = byArgs
	}
	e, ok := byArgs[argKey]
	if !ok {
		e = newEntry()
		byArgs[argKey] = e
		submitErr := c.pool.Submit(func() {
			value, err := fn(context.Background())
			if err != nil {
				e.settle(nil, &RejectedError{Fn: name, Err: err})
				return
			}
			e.settle(value, nil)
		})
		if submitErr != nil {
			e.settle(nil, &RejectedError{Fn: name, Err: submitErr})
		}
	}
	c.mu.Unlock()

	return &Task[T]{fn: name, e: e}
}

// Poll inspects the entry without blocking. Pending returns the zero value;
// Fulfilled returns the produced value; Rejected returns the permanent
// wrapped error. Repeated calls after settlement always return the identical
// outcome.
func (t *Task[T]) Poll() (T, State, error) {
	var zero T
	select {
	case <-t.e.done:
	default:
		return zero, Pending, nil
	}
	if t.e.err != nil {
		return zero, Rejected, t.e.err
	}
	value, ok := t.e.value.(T)
	if !ok {
		return zero, Rejected, &RejectedError{
			Fn:  t.fn,
			Err: fmt.Errorf("cached value is %T, not %T", t.e.value, zero),
		}
	}
	return value, Fulfilled, nil
}

// Await blocks until the entry settles or ctx is done. Cancelling ctx
// abandons only this observer; the producer keeps running and the entry
// settles for everyone else.
func (t *Task[T]) Await(ctx context.Context) (T, error) {
	select {
	case <-t.e.done:
	case <-ctx.Done():
		var zero T
		return zero, ctx.Err()
	}
	value, _, err := t.Poll()
	return value, err
}

// funcIdentity resolves the producing function's symbol name. Distinct named
// functions and distinct closure bodies get distinct identities.
func funcIdentity(fn any) string {
	pc := reflect.ValueOf(fn).Pointer()
	if f := runtime.FuncForPC(pc); f != nil {
		return f.Name()
	}
	return fmt.Sprintf("func@%#x", pc)
}

// encodeArgs serializes the argument list deterministically.
// encoding/json writes map keys in sorted order, which keeps the encoding
// structurally stable; order across arguments is preserved by the slice.
func encodeArgs(args []any) (string, error) {
	if len(args) == 0 {
		return "[]", nil
	}
	data, err := json.Marshal(args)
	if err != nil {
		return "", fmt.Errorf("unserializable suspend arguments: %w", err)
	}
	return string(data), nil
}
