package bench

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSchedulerAddInput(t *testing.T) {
	s := NewScheduler(DefaultConfig())

	s.AddInput(Input{Name: "a", Weight: 1})
	s.AddInput(Input{Name: "b", Weight: 2})
	s.AddInput(Input{Name: "c"})

	assert.Equal(t, 3, s.InputCount())
	assert.Equal(t, 4, s.totalWeight)
}

func TestSchedulerSelectInput(t *testing.T) {
	s := NewScheduler(DefaultConfig())
	s.AddInput(Input{Name: "only"})

	for i := 0; i < 10; i++ {
		in := s.SelectInput()
		require.NotNil(t, in)
		assert.Equal(t, "only", in.Name)
	}
}

func TestSchedulerSelectInputWeighted(t *testing.T) {
	s := NewScheduler(DefaultConfig())
	s.AddInput(Input{Name: "heavy", Weight: 90})
	s.AddInput(Input{Name: "light", Weight: 10})

	counts := make(map[string]int)
	iterations := 10000
	for i := 0; i < iterations; i++ {
		in := s.SelectInput()
		require.NotNil(t, in)
		counts[in.Name]++
	}

	assert.InDelta(t, 0.9, float64(counts["heavy"])/float64(iterations), 0.05)
	assert.InDelta(t, 0.1, float64(counts["light"])/float64(iterations), 0.05)
}

func TestSchedulerSelectInputEmpty(t *testing.T) {
	s := NewScheduler(DefaultConfig())
	assert.Nil(t, s.SelectInput())
}

func TestSchedulerWaitRateMode(t *testing.T) {
	s := NewScheduler(&Config{Mode: RateMode, Rate: 100, Workers: 1})
	ctx := context.Background()

	start := time.Now()
	require.NoError(t, s.Wait(ctx))
	assert.Less(t, time.Since(start), 5*time.Millisecond)

	start = time.Now()
	require.NoError(t, s.Wait(ctx))
	assert.GreaterOrEqual(t, time.Since(start), 5*time.Millisecond)
}

func TestSchedulerWaitCancelled(t *testing.T) {
	s := NewScheduler(&Config{Mode: RateMode, Rate: 1, Workers: 1})

	ctx, cancel := context.WithCancel(context.Background())
	_ = s.Wait(ctx)
	cancel()

	assert.Error(t, s.Wait(ctx))
}

func TestSchedulerWaitWorkerMode(t *testing.T) {
	s := NewScheduler(DefaultConfig())
	assert.Nil(t, s.limiter)
	assert.NoError(t, s.Wait(context.Background()))
}

func TestSchedulerAcquireRelease(t *testing.T) {
	s := NewScheduler(&Config{Workers: 2})
	ctx := context.Background()

	require.NoError(t, s.Acquire(ctx))
	require.NoError(t, s.Acquire(ctx))

	ctx2, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()
	assert.Error(t, s.Acquire(ctx2))

	s.Release()

	ctx3, cancel2 := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel2()
	assert.NoError(t, s.Acquire(ctx3))
}

func TestSchedulerGetCurrentRate(t *testing.T) {
	s := NewScheduler(&Config{Rate: 100, RampUp: 10 * time.Second, Workers: 1})

	assert.InDelta(t, 0, s.GetCurrentRate(0), 0.1)
	assert.InDelta(t, 50, s.GetCurrentRate(5*time.Second), 1)
	assert.InDelta(t, 100, s.GetCurrentRate(10*time.Second), 0.1)
	assert.InDelta(t, 100, s.GetCurrentRate(15*time.Second), 0.1)
}

func TestSchedulerGetCurrentWorkers(t *testing.T) {
	s := NewScheduler(&Config{Workers: 10, RampUp: 10 * time.Second})

	assert.Equal(t, 0, s.GetCurrentWorkers(0))
	assert.Equal(t, 5, s.GetCurrentWorkers(5*time.Second))
	assert.Equal(t, 10, s.GetCurrentWorkers(10*time.Second))
}

func TestSchedulerUpdateRate(t *testing.T) {
	s := NewScheduler(&Config{Mode: RateMode, Rate: 10, Workers: 1})
	s.UpdateRate(100)
	assert.NoError(t, s.Wait(context.Background()))
}

func TestWorkerPoolScale(t *testing.T) {
	s := NewScheduler(&Config{Workers: 4})
	s.AddInput(Input{Name: "doc"})
	m := NewMetrics()

	var parses atomic.Int64
	pool := NewWorkerPool(s, m, func(in *Input) bool {
		parses.Add(1)
		time.Sleep(time.Millisecond)
		return true
	})

	pool.Start(context.Background())
	assert.Equal(t, 4, pool.Count())

	pool.Scale(2)
	assert.Equal(t, 2, pool.Count())

	pool.Scale(3)
	assert.Equal(t, 3, pool.Count())

	time.Sleep(20 * time.Millisecond)
	pool.Stop()
	pool.Wait()

	assert.Greater(t, parses.Load(), int64(0))
	assert.Equal(t, int32(0), m.GetCurrentStats().ActiveWorkers)
}

func TestWorkerPoolWorkerStops(t *testing.T) {
	s := NewScheduler(&Config{Workers: 1})
	s.AddInput(Input{Name: "doc"})

	calls := 0
	pool := NewWorkerPool(s, NewMetrics(), func(in *Input) bool {
		calls++
		return calls < 3
	})
	pool.Start(context.Background())
	pool.Wait()
	pool.Stop()

	assert.Equal(t, 3, calls)
}
