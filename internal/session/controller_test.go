package session

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/harutok/readapt/internal/adapt"
	"github.com/harutok/readapt/internal/provider"
)

// fakeBackend records transform requests and can block until released so
// tests can observe the controller mid-flight.
type fakeBackend struct {
	mu       sync.Mutex
	requests []adapt.Request
	result   string
	err      error
	release  chan struct{}
}

func (f *fakeBackend) Transform(ctx context.Context, req adapt.Request) (string, error) {
	f.mu.Lock()
	f.requests = append(f.requests, req)
	release := f.release
	f.mu.Unlock()

	if release != nil {
		<-release
	}
	if f.err != nil {
		return "", f.err
	}
	return f.result, nil
}

func (f *fakeBackend) calls() []adapt.Request {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]adapt.Request, len(f.requests))
	copy(out, f.requests)
	return out
}

type fakeVoices struct {
	mu    sync.Mutex
	voice *provider.Voice
}

func (f *fakeVoices) Selected() *provider.Voice {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.voice
}

func (f *fakeVoices) set(v *provider.Voice) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.voice = v
}

type fakeStopper struct {
	mu    sync.Mutex
	stops int
}

func (f *fakeStopper) Stop() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.stops++
}

func (f *fakeStopper) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.stops
}

func newTestController(backend *fakeBackend) (*Controller, *fakeVoices, *fakeStopper) {
	voices := &fakeVoices{}
	stopper := &fakeStopper{}
	return NewController(backend, voices, stopper), voices, stopper
}

func TestRunSuccess(t *testing.T) {
	backend := &fakeBackend{result: "**Adapted** output"}
	c, voices, stopper := newTestController(backend)
	voices.set(&provider.Voice{URI: "polly:Joanna", Language: "en-US"})

	c.SetSource("some study text")
	c.SetMode(adapt.ModeDyslexia)
	c.Run(context.Background())

	assert.False(t, c.Loading())
	assert.Equal(t, "**Adapted** output", c.Result())
	assert.NoError(t, c.Err())
	assert.Equal(t, 1, stopper.count(), "playback stops before a new transformation")

	calls := backend.calls()
	require.Len(t, calls, 1)
	assert.Equal(t, "some study text", calls[0].SourceText)
	assert.Equal(t, adapt.ModeDyslexia, calls[0].Mode)
	assert.Equal(t, "en-US", calls[0].TargetLanguage)
}

func TestRunFailure(t *testing.T) {
	backend := &fakeBackend{err: errors.New("rate limited")}
	c, _, _ := newTestController(backend)

	c.SetSource("text")
	c.Run(context.Background())

	assert.False(t, c.Loading())
	assert.Empty(t, c.Result())
	assert.ErrorIs(t, c.Err(), ErrGenerationFailed)

	// A later success clears the error.
	backend.err = nil
	backend.result = "recovered"
	c.Run(context.Background())

	assert.Equal(t, "recovered", c.Result())
	assert.NoError(t, c.Err())
}

func TestRunEmptySourceIsNoOp(t *testing.T) {
	backend := &fakeBackend{result: "never"}
	c, _, stopper := newTestController(backend)

	c.Run(context.Background())

	assert.Empty(t, backend.calls())
	assert.Zero(t, stopper.count(), "playback untouched when nothing runs")
	assert.False(t, c.Loading())
	assert.NoError(t, c.Err())
}

func TestRunSingleFlight(t *testing.T) {
	backend := &fakeBackend{result: "done", release: make(chan struct{})}
	c, _, _ := newTestController(backend)
	c.SetSource("text")

	first := make(chan struct{})
	go func() {
		defer close(first)
		c.Run(context.Background())
	}()

	// Wait for the first run to claim the flight.
	require.Eventually(t, c.Loading, time.Second, time.Millisecond)

	// Overlapping runs are refused, not queued.
	var wg sync.WaitGroup
	for range 5 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			c.Run(context.Background())
		}()
	}
	wg.Wait()

	close(backend.release)
	<-first

	assert.Len(t, backend.calls(), 1)
	assert.False(t, c.Loading())
	assert.Equal(t, "done", c.Result())
}

func TestRunNoVoiceMeansNoTargetLanguage(t *testing.T) {
	backend := &fakeBackend{result: "out"}
	c, _, _ := newTestController(backend)

	c.SetSource("text")
	c.Run(context.Background())

	calls := backend.calls()
	require.Len(t, calls, 1)
	assert.Empty(t, calls[0].TargetLanguage)
}

func TestRunUsesVoiceLanguageAtCallTime(t *testing.T) {
	backend := &fakeBackend{result: "out"}
	c, voices, _ := newTestController(backend)
	c.SetSource("text")

	voices.set(&provider.Voice{URI: "gcp:fr-FR-Neural2-A", Language: "fr-FR"})
	c.Run(context.Background())

	voices.set(&provider.Voice{URI: "polly:Joanna", Language: "en-US"})
	c.Run(context.Background())

	calls := backend.calls()
	require.Len(t, calls, 2)
	assert.Equal(t, "fr-FR", calls[0].TargetLanguage)
	assert.Equal(t, "en-US", calls[1].TargetLanguage)
}
