package events

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/fakenewsverificaton/verificaton-api/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDispatcherRunsTasks(t *testing.T) {
	d := NewDispatcher(DispatcherConfig{Workers: 2, QueueSize: 10})

	var count atomic.Int32
	for i := 0; i < 5; i++ {
		ok := d.Submit(Task{Name: "conta", Run: func(context.Context) error {
			count.Add(1)
			return nil
		}})
		require.True(t, ok)
	}

	require.NoError(t, d.Close(context.Background()))
	assert.EqualValues(t, 5, count.Load())
}

func TestDispatcherReportsFailuresAndPanics(t *testing.T) {
	var mu sync.Mutex
	failed := map[string]bool{}
	d := NewDispatcher(DispatcherConfig{
		Workers:   1,
		QueueSize: 4,
		OnFailure: func(task string, err error) {
			mu.Lock()
			defer mu.Unlock()
			failed[task] = true
		},
	})

	d.Submit(Task{Name: "erro", Run: func(context.Context) error { return errors.New("falhou") }})
	d.Submit(Task{Name: "panico", Run: func(context.Context) error { panic("boom") }})
	d.Submit(Task{Name: "ok", Run: func(context.Context) error { return nil }})

	require.NoError(t, d.Close(context.Background()))
	assert.Equal(t, map[string]bool{"erro": true, "panico": true}, failed)
}

func TestDispatcherDropsWhenFull(t *testing.T) {
	release := make(chan struct{})
	started := make(chan struct{})
	var dropped atomic.Int32
	d := NewDispatcher(DispatcherConfig{
		Workers:   1,
		QueueSize: 1,
		OnFailure: func(string, error) { dropped.Add(1) },
	})

	block := Task{Name: "bloqueia", Run: func(context.Context) error {
		close(started)
		<-release
		return nil
	}}
	require.True(t, d.Submit(block))
	<-started

	assert.True(t, d.Submit(Task{Name: "fila", Run: func(context.Context) error { return nil }}))
	assert.False(t, d.Submit(Task{Name: "descartada", Run: func(context.Context) error { return nil }}))
	assert.EqualValues(t, 1, dropped.Load())

	close(release)
	require.NoError(t, d.Close(context.Background()))
	assert.False(t, d.Submit(Task{Name: "depois", Run: func(context.Context) error { return nil }}))
}

func TestDispatcherCloseRespectsDeadline(t *testing.T) {
	d := NewDispatcher(DispatcherConfig{Workers: 1, QueueSize: 1})
	release := make(chan struct{})
	defer close(release)
	d.Submit(Task{Name: "lenta", Run: func(context.Context) error {
		<-release
		return nil
	}})

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	assert.Error(t, d.Close(ctx))
}

func TestInlineDispatcher(t *testing.T) {
	var failures []string
	d := NewInlineDispatcher(func(task string, err error) { failures = append(failures, task) })

	ran := false
	d.Submit(Task{Name: "a", Run: func(context.Context) error { ran = true; return nil }})
	d.Submit(Task{Name: "b", Run: func(context.Context) error { panic("x") }})

	assert.True(t, ran)
	assert.Equal(t, []string{"b"}, failures)
	require.NoError(t, d.Close(context.Background()))
}

func TestNewAnalysisEvent(t *testing.T) {
	result := &models.AnalysisResult{
		Meta:    models.Meta{ID: "id", InputType: models.InputLink, Mode: models.ModeNormal, Fingerprint: "fp"},
		Scores:  models.Scores{FakeProbability: 75},
		Summary: models.Summary{Verdict: models.VerdictFake},
	}
	ev := NewAnalysisEvent(result)
	assert.Equal(t, TypeAnalysisCompleted, ev.Type)
	assert.True(t, ev.Flagged)
	assert.Equal(t, models.VerdictFake, ev.Verdict)
}
