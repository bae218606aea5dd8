// Package gc implements the conservative mark-and-sweep collector of
// spec.md §4.F.4: a byte-threshold backstop for the cycles that reference
// counting alone can't reclaim (ObjectMut/Class/actor instances — every
// other composite value is immutable and acyclic, per spec.md §9).
//
// Grounded on original_source/src/runtime/gc_impl.rs: the Go fields below
// (TrackedObject.ID/Size/Marked, Stats{Collections, ObjectsCollected,
// CurrentObjects, AllocatedBytes}, Info{Threshold, AutoCollectEnabled,
// TrackedCount}) are a direct port of that file's ConservativeGC /
// GCStats / GCInfo.
package gc

import (
	"sync"

	"github.com/glint-lang/glint/internal/value"
)

const defaultThreshold = 10 * 1024 * 1024 // 10 MiB, per spec.md §4.F.4

// TrackedObject is one entry in the collector's object table.
type TrackedObject struct {
	ID     uint64
	Value  value.Value
	Size   int
	Marked bool
}

// Stats mirrors gc_impl.rs's GCStats.
type Stats struct {
	Collections      uint64
	ObjectsCollected uint64
	CurrentObjects   int
	AllocatedBytes   int
}

// Info mirrors gc_impl.rs's GCInfo.
type Info struct {
	Threshold          int
	AutoCollectEnabled bool
	TrackedCount       int
}

// GC is the conservative collector. It is safe for concurrent use because
// the evaluator's ObjectMut/Class builtins may track allocations from
// multiple goroutines reached via async/actor builtins.
type GC struct {
	mu        sync.Mutex
	objects   map[uint64]*TrackedObject
	nextID    uint64
	threshold int
	autoCollect bool
	allocated int

	collections      uint64
	objectsCollected uint64
}

// New creates a collector with the default 10 MiB threshold and
// auto-collection enabled.
func New() *GC {
	return &GC{
		objects:     make(map[uint64]*TrackedObject),
		threshold:   defaultThreshold,
		autoCollect: true,
	}
}

// TrackObject registers a newly allocated composite Value, estimating its
// byte size, and triggers a collection if the threshold is exceeded and
// auto-collect is enabled (spec.md §4.F.4 contract (b)).
func (g *GC) TrackObject(v value.Value) uint64 {
	g.mu.Lock()
	g.nextID++
	id := g.nextID
	size := estimateSize(v)
	g.objects[id] = &TrackedObject{ID: id, Value: v, Size: size}
	g.allocated += size
	shouldCollect := g.autoCollect && g.allocated > g.threshold
	g.mu.Unlock()

	if shouldCollect {
		g.Collect()
	}
	return id
}

// Collect runs a full mark-sweep pass. The mark phase conservatively treats
// every tracked object as a root (spec.md §4.F.4 does not mandate stack
// scanning) and follows Array/Tuple children; anything left unmarked is
// swept.
func (g *GC) Collect() {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.collections++

	for _, obj := range g.objects {
		obj.Marked = false
	}
	for _, obj := range g.objects {
		g.markReachable(obj.Value)
	}
	var collected uint64
	for id, obj := range g.objects {
		if !obj.Marked {
			g.allocated -= obj.Size
			delete(g.objects, id)
			collected++
		}
	}
	g.objectsCollected += collected
}

func (g *GC) markReachable(v value.Value) {
	switch t := v.(type) {
	case *value.Array:
		for _, e := range t.Elems {
			g.markByValue(e)
		}
	case *value.Tuple:
		for _, e := range t.Elems {
			g.markByValue(e)
		}
	}
}

func (g *GC) markByValue(v value.Value) {
	for _, obj := range g.objects {
		if obj.Value == v {
			if obj.Marked {
				return
			}
			obj.Marked = true
			g.markReachable(v)
			return
		}
	}
}

// ForceCollect runs collection unconditionally and returns stable stats
// (spec.md §4.F.4 contract (a)).
func (g *GC) ForceCollect() Stats {
	g.Collect()
	return g.Stats()
}

// Stats returns the current collector statistics.
func (g *GC) Stats() Stats {
	g.mu.Lock()
	defer g.mu.Unlock()
	return Stats{
		Collections:      g.collections,
		ObjectsCollected: g.objectsCollected,
		CurrentObjects:   len(g.objects),
		AllocatedBytes:   g.allocated,
	}
}

// GetInfo returns the collector's current configuration.
func (g *GC) GetInfo() Info {
	g.mu.Lock()
	defer g.mu.Unlock()
	return Info{
		Threshold:          g.threshold,
		AutoCollectEnabled: g.autoCollect,
		TrackedCount:       len(g.objects),
	}
}

// SetCollectionThreshold changes the byte threshold that triggers
// auto-collection.
func (g *GC) SetCollectionThreshold(threshold int) {
	g.mu.Lock()
	g.threshold = threshold
	g.mu.Unlock()
}

// SetAutoCollect enables or disables threshold-triggered collection
// (spec.md §4.F.4 contract (c)).
func (g *GC) SetAutoCollect(enabled bool) {
	g.mu.Lock()
	g.autoCollect = enabled
	g.mu.Unlock()
}

// Clear drops all tracked objects without counting them as collected.
func (g *GC) Clear() {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.objects = make(map[uint64]*TrackedObject)
	g.allocated = 0
}

func estimateSize(v value.Value) int {
	const base = 32
	switch t := v.(type) {
	case *value.Array:
		return base + 8*len(t.Elems)
	case *value.Tuple:
		return base + 8*len(t.Elems)
	case *value.Object:
		return base + 48*len(t.Fields)
	case *value.ObjectMut:
		return base + 48
	case *value.Struct:
		return base + 48*len(t.Fields)
	case *value.Class:
		return base + 64
	case value.Str:
		return base + len(string(t))
	default:
		return base
	}
}
