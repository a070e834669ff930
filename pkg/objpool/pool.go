// Package objpool implements the object-pool heap of §4.2: stable integer
// handles, freed-id reuse on allocate, and a static root permanently resident
// at slot 0, grounded in `_examples/original_source/src/object_pool.rs`.
package objpool

import (
	"github.com/jazz-lang/jazz/pkg/object"
	"github.com/jazz-lang/jazz/pkg/vmerror"
)

// Pool is the heap of live Object residents, addressed by a stable int
// handle. A handle is never reused while its resident is live; once
// deallocated, the handle id is pushed onto a free list and handed back out
// by the next Allocate.
type Pool struct {
	slots      []object.Object
	freed      []int
	allocCount int
}

// New returns a Pool with the static root already resident at handle 0.
func New() *Pool {
	p := &Pool{}
	root := NewStaticRoot()
	root.Initialize(nil)
	p.slots = append(p.slots, root)
	return p
}

// Allocate runs obj.Initialize(m) and gives it a pool slot, reusing a freed
// id if one is available, matching ObjectPool::allocate.
func (p *Pool) Allocate(m object.Machine, obj object.Object) int {
	obj.Initialize(m)
	if n := len(p.freed); n > 0 {
		id := p.freed[n-1]
		p.freed = p.freed[:n-1]
		p.slots[id] = obj
		p.allocCount++
		return id
	}
	id := len(p.slots)
	p.slots = append(p.slots, obj)
	p.allocCount++
	return id
}

// Deallocate frees handle id, making it available for reuse. Deallocating an
// already-empty or out-of-range slot is a programming error and panics.
func (p *Pool) Deallocate(id int) {
	if id < 0 || id >= len(p.slots) || p.slots[id] == nil {
		panic("objpool: deallocate of unoccupied slot")
	}
	p.slots[id] = nil
	p.freed = append(p.freed, id)
}

// Get returns the resident at handle id. A miss is a programming error -
// mirroring the Rust `.expect(...)` on an empty Option slot - and panics
// rather than returning an error, per §4.2.
func (p *Pool) Get(id int) object.Object {
	if id < 0 || id >= len(p.slots) || p.slots[id] == nil {
		panic("objpool: get of unoccupied slot")
	}
	return p.slots[id]
}

// GetTyped downcasts the resident at id to T, reporting ok=false on a type
// mismatch instead of panicking (mirrors get_direct_typed).
func GetTyped[T any](p *Pool, id int) (T, bool) {
	obj := p.Get(id)
	t, ok := obj.(T)
	return t, ok
}

// MustGetTyped downcasts the resident at id to T, throwing an Expected
// error on mismatch (mirrors must_get_direct_typed).
func MustGetTyped[T any](p *Pool, id int, typeName string) T {
	t, ok := GetTyped[T](p, id)
	if !ok {
		vmerror.Throw(vmerror.Expected(typeName, p.Get(id).TypeName()))
	}
	return t
}

// StaticRoot returns the resident permanently held at handle 0.
func (p *Pool) StaticRoot() *StaticRoot {
	return p.slots[0].(*StaticRoot)
}

// AllocCount reports how many allocations have happened since the pool was
// created or last reset, matching get_alloc_count.
func (p *Pool) AllocCount() int { return p.allocCount }

// ResetAllocCount zeroes the allocation counter, matching reset_alloc_count
// (used by benchmarks to measure allocation pressure per run).
func (p *Pool) ResetAllocCount() { p.allocCount = 0 }
