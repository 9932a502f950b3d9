package alloc

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Instrumented wraps an allocator and exposes its activity as prometheus metrics:
//
//	vecmem_<name>_allocations_total
//	vecmem_<name>_deallocations_total
//	vecmem_<name>_allocation_failures_total
//	vecmem_<name>_bytes_in_use
//
// Metrics are registered at the registerer given to NewInstrumented. Passing a nil
// registerer creates unregistered metrics, which is handy for tests.
type Instrumented[T any] struct {
	inner       Allocator[T]
	allocs      prometheus.Counter
	deallocs    prometheus.Counter
	failures    prometheus.Counter
	bytesInUse  prometheus.Gauge
	elementSize float64
}

var _ Allocator[int] = (*Instrumented[int])(nil)

// NewInstrumented wraps inner. name becomes the metrics subsystem and must be a
// valid prometheus metric name component. If inner is nil, a GoAllocator is used.
func NewInstrumented[T any](inner Allocator[T], reg prometheus.Registerer, name string) *Instrumented[T] {
	if inner == nil {
		inner = NewGoAllocator[T]()
	}
	f := promauto.With(reg)
	return &Instrumented[T]{
		inner: inner,
		allocs: f.NewCounter(prometheus.CounterOpts{
			Namespace: "vecmem",
			Subsystem: name,
			Name:      "allocations_total",
			Help:      "Total number of buffers allocated.",
		}),
		deallocs: f.NewCounter(prometheus.CounterOpts{
			Namespace: "vecmem",
			Subsystem: name,
			Name:      "deallocations_total",
			Help:      "Total number of buffers deallocated.",
		}),
		failures: f.NewCounter(prometheus.CounterOpts{
			Namespace: "vecmem",
			Subsystem: name,
			Name:      "allocation_failures_total",
			Help:      "Total number of allocation requests which could not be satisfied.",
		}),
		bytesInUse: f.NewGauge(prometheus.GaugeOpts{
			Namespace: "vecmem",
			Subsystem: name,
			Name:      "bytes_in_use",
			Help:      "Number of bytes held by allocated buffers.",
		}),
		elementSize: float64(ElementSize[T]()),
	}
}

// Allocate implements Allocator.
func (a *Instrumented[T]) Allocate(n int) ([]T, error) {
	buf, err := a.inner.Allocate(n)
	if err != nil {
		a.failures.Inc()
		tracer().Errorf("allocation of %d elements failed: %v", n, err)
		return nil, err
	}
	a.allocs.Inc()
	a.bytesInUse.Add(float64(len(buf)) * a.elementSize)
	return buf, nil
}

// Deallocate implements Allocator.
func (a *Instrumented[T]) Deallocate(buf []T) {
	if buf == nil {
		return
	}
	a.deallocs.Inc()
	a.bytesInUse.Sub(float64(len(buf)) * a.elementSize)
	a.inner.Deallocate(buf)
}

// Release implements Releaser, forwarding to the underlying allocator.
func (a *Instrumented[T]) Release() {
	if r, ok := a.inner.(Releaser); ok {
		r.Release()
	}
}
