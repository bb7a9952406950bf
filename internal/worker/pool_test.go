package worker_test

import (
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/quizpractice/backend/internal/worker"
)

func TestPool_RunsEveryJob(t *testing.T) {
	const jobs = 25
	pool := worker.NewPool[int](4, jobs)

	for i := 0; i < jobs; i++ {
		n := i
		pool.Submit(strconv.Itoa(n), func() int { return n * n })
	}
	pool.Close()
	pool.Close()

	got := make(map[string]int)
	for res := range pool.Results() {
		got[res.JobID] = res.Output
	}

	assert.Len(t, got, jobs)
	for i := 0; i < jobs; i++ {
		assert.Equal(t, i*i, got[strconv.Itoa(i)])
	}
}

func TestPool_ZeroWorkersStillRuns(t *testing.T) {
	pool := worker.NewPool[string](0, 1)
	pool.Submit("only", func() string { return "done" })
	pool.Close()

	res, ok := <-pool.Results()
	assert.True(t, ok)
	assert.Equal(t, "done", res.Output)
}
