package memory

import (
	"sync"
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/npillmayer/vecmem/alloc"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassify(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "vecmem.memory")
	defer teardown()
	//
	type mixed struct {
		N    int
		Name string
	}
	type flags [4]bool
	type ptrs [2]*int
	cases := []struct {
		name     string
		category Category
		got      Category
	}{
		{"int", Trivial, Classify[int]()},
		{"float64", Trivial, Classify[float64]()},
		{"complex128", Trivial, Classify[complex128]()},
		{"point", Trivial, Classify[point]()},
		{"flags", Trivial, Classify[flags]()},
		{"empty struct", Trivial, Classify[struct{}]()},
		{"string", NonTrivial, Classify[string]()},
		{"mixed", NonTrivial, Classify[mixed]()},
		{"ptrs", NonTrivial, Classify[ptrs]()},
		{"[]int", NonTrivial, Classify[[]int]()},
		{"any", NonTrivial, Classify[any]()},
		{"handle", NonTrivial, Classify[handle]()},
		{"counted", NonTrivial, Classify[counted]()},
	}
	for _, c := range cases {
		if c.got != c.category {
			t.Errorf("expected %s to be %s, is %s", c.name, c.category, c.got)
		}
	}
	if Classify[point]() != Trivial {
		t.Error("expected cached classification of point to be trivial")
	}
}

func TestClassifyConcurrently(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "vecmem.memory")
	defer teardown()
	//
	type cell struct {
		A, B uint32
	}
	var wg sync.WaitGroup
	results := make([]Category, 8)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i] = Classify[cell]()
		}(i)
	}
	wg.Wait()
	for i, c := range results {
		assert.Equal(t, Trivial, c, "goroutine %d", i)
	}
	stored, ok := categories.Load(typeOf[cell]())
	require.True(t, ok)
	assert.Equal(t, Trivial, stored)
}

func TestNewForcedCategory(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "vecmem.memory")
	defer teardown()
	//
	_, err := New[string](WithCategory[string](Trivial))
	assert.ErrorIs(t, err, ErrCategoryMismatch)
	m, err := New[int](WithCategory[int](NonTrivial))
	require.NoError(t, err)
	assert.Equal(t, NonTrivial, m.Category())
	_, err = New[int](WithCategory[int](Category(7)))
	assert.ErrorIs(t, err, ErrCategoryMismatch)
	assert.Panics(t, func() {
		Must(New[[]byte](WithCategory[[]byte](Trivial)))
	})
}

func TestAllocationFailure(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "vecmem.memory")
	defer teardown()
	//
	budget := alloc.NewBudget[uint64](nil, 64)
	m := Must(New[uint64](WithAllocator[uint64](budget)))
	assert.Same(t, budget, m.Allocator())
	buf, err := m.Allocate(9)
	assert.ErrorIs(t, err, alloc.ErrOutOfMemory)
	assert.Nil(t, buf)
	_, err = m.Allocate(-1)
	assert.ErrorIs(t, err, alloc.ErrOutOfMemory)
	buf, err = m.Allocate(8)
	require.NoError(t, err)
	assert.Len(t, buf, 8)
	assert.Equal(t, 64, budget.InUse())
}

func TestDeallocateTwice(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "vecmem.memory")
	defer teardown()
	//
	budget := alloc.NewBudget[counted](nil, 1<<10)
	m := Must(New[counted](WithAllocator[counted](budget)))
	buf, err := m.Allocate(4)
	require.NoError(t, err)
	used := budget.InUse()
	assert.Greater(t, used, 0)
	m.Deallocate(&buf)
	assert.Nil(t, buf)
	assert.Equal(t, 0, budget.InUse())
	assert.NotPanics(t, func() {
		m.Deallocate(&buf)
		m.Deallocate(nil)
	})
	assert.Equal(t, 0, budget.InUse(), "second deallocation must not touch the allocator")
}

type releaseRecorder[T any] struct {
	alloc.GoAllocator[T]
	released int
}

func (r *releaseRecorder[T]) Release() {
	r.released++
}

func TestReleaseEndsAllocatorLifecycle(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "vecmem.memory")
	defer teardown()
	//
	rec := &releaseRecorder[float32]{}
	m := NewScalar[float32](WithAllocator[float32](rec))
	buf, err := m.Allocate(3)
	require.NoError(t, err)
	m.Deallocate(&buf)
	m.Release()
	assert.Equal(t, 1, rec.released)
	//
	pooled := Must(New[string](WithAllocator[string](alloc.NewPoolAllocator[string](4, 64, 2))))
	s, err := pooled.Allocate(10)
	require.NoError(t, err)
	pooled.Deallocate(&s)
	assert.NotPanics(t, pooled.Release)
}

func TestCategoryString(t *testing.T) {
	assert.Equal(t, "trivial", Trivial.String())
	assert.Equal(t, "non-trivial", NonTrivial.String())
	assert.Equal(t, "invalid", Category(3).String())
}
