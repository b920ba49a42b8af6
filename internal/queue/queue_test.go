package queue

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQueue_DrainAll(t *testing.T) {
	q := New[int](0)
	assert.Nil(t, q.Drain(0))

	q.Push(1, 2)
	q.Push(3)
	assert.Equal(t, 3, q.Len())
	assert.Equal(t, []int{1, 2, 3}, q.Drain(0))
	assert.Equal(t, 0, q.Len())
}

func TestQueue_DrainBatches(t *testing.T) {
	q := New[int](0)
	q.Push(1, 2, 3, 4, 5)

	assert.Equal(t, []int{1, 2}, q.Drain(2))
	assert.Equal(t, []int{3, 4}, q.Drain(2))
	assert.Equal(t, []int{5}, q.Drain(2))
	assert.Nil(t, q.Drain(2))
}

func TestQueue_DrainedSliceIsDetached(t *testing.T) {
	q := New[int](0)
	q.Push(1, 2, 3)
	batch := q.Drain(1)
	q.Push(4)
	batch[0] = 99

	assert.Equal(t, []int{2, 3, 4}, q.Drain(0))
}

func TestQueue_RequeueKeepsOrder(t *testing.T) {
	q := New[string](0)
	q.Push("a", "b", "c")
	failed := q.Drain(2)
	q.Push("d")

	q.Requeue(failed)
	assert.Equal(t, []string{"a", "b", "c", "d"}, q.Drain(0))

	q.Requeue(nil)
	assert.Equal(t, 0, q.Len())
}

func TestQueue_ReadyAtHighWater(t *testing.T) {
	q := New[int](3)
	q.Push(1, 2)
	select {
	case <-q.Ready():
		t.Fatal("ready below high water")
	default:
	}

	q.Push(3)
	select {
	case <-q.Ready():
	default:
		t.Fatal("expected ready signal")
	}

	// signal does not pile up
	q.Push(4)
	q.Push(5)
	<-q.Ready()
	select {
	case <-q.Ready():
		t.Fatal("signal should coalesce")
	default:
	}
}

func TestQueue_ReadyDisabled(t *testing.T) {
	q := New[int](0)
	q.Push(make([]int, 100)...)
	select {
	case <-q.Ready():
		t.Fatal("ready with high water disabled")
	default:
	}
}

func TestQueue_ConcurrentPush(t *testing.T) {
	q := New[int](0)
	var wg sync.WaitGroup
	for g := 0; g < 8; g++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < 100; i++ {
				q.Push(i)
			}
		}()
	}
	wg.Wait()

	require.Equal(t, 800, q.Len())
	assert.Len(t, q.Drain(0), 800)
}
