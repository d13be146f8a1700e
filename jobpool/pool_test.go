package jobpool

import (
	"runtime"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

func TestPoolCreate(t *testing.T) {
	p := New(4)
	defer p.Close()

	if p.Workers() != 4 {
		t.Errorf("Workers() = %d, want 4", p.Workers())
	}
	if !p.IsRunning() {
		t.Error("pool should be running after creation")
	}
}

func TestPoolCreateZeroOrNegativeUsesGOMAXPROCS(t *testing.T) {
	want := runtime.GOMAXPROCS(0)

	for _, n := range []int{0, -5} {
		p := New(n)
		if p.Workers() != want {
			t.Errorf("New(%d).Workers() = %d, want %d", n, p.Workers(), want)
		}
		p.Close()
	}
}

func TestPoolRunAll(t *testing.T) {
	p := New(4)
	defer p.Close()

	var counter atomic.Int64
	jobs := make([]func(), 100)
	for i := range jobs {
		jobs[i] = func() { counter.Add(1) }
	}

	p.RunAll(jobs)

	if counter.Load() != int64(len(jobs)) {
		t.Errorf("counter = %d, want %d", counter.Load(), len(jobs))
	}
}

func TestPoolRunAllEmpty(t *testing.T) {
	p := New(4)
	defer p.Close()

	p.RunAll(nil)
	p.RunAll([]func(){})
}

func TestPoolSubmit(t *testing.T) {
	p := New(4)
	defer p.Close()

	var counter atomic.Int64
	numJobs := 20
	done := make(chan struct{})

	for i := 0; i < numJobs; i++ {
		p.Submit(func() {
			if counter.Add(1) == int64(numJobs) {
				close(done)
			}
		})
	}

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatalf("timeout waiting for submitted jobs, counter = %d", counter.Load())
	}
}

func TestPoolSubmitNil(t *testing.T) {
	p := New(4)
	defer p.Close()

	p.Submit(nil)
}

func TestPoolClose(t *testing.T) {
	p := New(4)
	if !p.IsRunning() {
		t.Fatal("pool should be running before close")
	}
	p.Close()
	if p.IsRunning() {
		t.Error("pool should not be running after close")
	}
}

func TestPoolCloseIdempotent(t *testing.T) {
	p := New(4)
	p.Close()
	p.Close()
	p.Close()
	if p.IsRunning() {
		t.Error("pool should not be running after repeated close")
	}
}

func TestPoolOperationsAfterCloseAreNoop(t *testing.T) {
	p := New(4)
	p.Close()

	var executed atomic.Bool
	p.RunAll([]func(){func() { executed.Store(true) }})
	p.Submit(func() { executed.Store(true) })

	time.Sleep(50 * time.Millisecond)
	if executed.Load() {
		t.Error("job ran against a closed pool")
	}
}

func TestPoolConcurrentCallers(t *testing.T) {
	p := New(4)
	defer p.Close()

	var counter atomic.Int64
	numCallers := 10
	jobsPerCaller := 50

	var wg sync.WaitGroup
	wg.Add(numCallers)
	for g := 0; g < numCallers; g++ {
		go func() {
			defer wg.Done()
			jobs := make([]func(), jobsPerCaller)
			for i := range jobs {
				jobs[i] = func() { counter.Add(1) }
			}
			p.RunAll(jobs)
		}()
	}
	wg.Wait()

	want := int64(numCallers * jobsPerCaller)
	if counter.Load() != want {
		t.Errorf("counter = %d, want %d", counter.Load(), want)
	}
}

func TestPoolSingleWorker(t *testing.T) {
	p := New(1)
	defer p.Close()

	var counter atomic.Int64
	jobs := make([]func(), 50)
	for i := range jobs {
		jobs[i] = func() { counter.Add(1) }
	}
	p.RunAll(jobs)

	if counter.Load() != 50 {
		t.Errorf("counter = %d, want 50", counter.Load())
	}
}
