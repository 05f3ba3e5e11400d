package surrogate_test

import (
	"errors"
	"fmt"
	"sync"
	"testing"

	"codeberg.org/mutker/sqlfault/internal/surrogate"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type alphaError struct {
	msg   string
	cause error
}

func (e *alphaError) Error() string { return e.msg }
func (e *alphaError) Unwrap() error { return e.cause }

type betaError struct {
	msg string
}

func (e *betaError) Error() string { return e.msg }

func rebuildAlpha(template, cause error) error {
	orig := template.(*alphaError)
	return &alphaError{msg: orig.msg, cause: cause}
}

func TestReconstructRegistered(t *testing.T) {
	r := surrogate.NewRegistry()
	r.Register(&alphaError{}, rebuildAlpha)

	cause := errors.New("disk full")
	rebuilt, ok := r.Reconstruct(&alphaError{msg: "bad data"}, cause)
	require.True(t, ok)

	var alpha *alphaError
	require.True(t, errors.As(rebuilt, &alpha))
	assert.Equal(t, "bad data", alpha.msg)
	assert.Same(t, cause, alpha.cause)
}

func TestReconstructUnregistered(t *testing.T) {
	r := surrogate.NewRegistry()
	r.Register(&alphaError{}, rebuildAlpha)

	rebuilt, ok := r.Reconstruct(&betaError{msg: "other"}, errors.New("cause"))
	assert.False(t, ok)
	assert.Nil(t, rebuilt)
}

func TestReconstructNilTemplate(t *testing.T) {
	r := surrogate.NewRegistry()

	rebuilt, ok := r.Reconstruct(nil, errors.New("cause"))
	assert.False(t, ok)
	assert.Nil(t, rebuilt)
}

func TestRegisterIdempotent(t *testing.T) {
	r := surrogate.NewRegistry()
	r.Register(&alphaError{}, rebuildAlpha)

	assert.NotPanics(t, func() {
		r.Register(&alphaError{}, rebuildAlpha)
	})
}

func TestRegisterConflictPanics(t *testing.T) {
	r := surrogate.NewRegistry()
	r.Register(&alphaError{}, rebuildAlpha)

	assert.Panics(t, func() {
		r.Register(&alphaError{}, func(template, cause error) error {
			return template
		})
	})
}

func TestRethrowFallback(t *testing.T) {
	r := surrogate.NewRegistry()

	orig := &betaError{msg: "unclassified"}
	cause := errors.New("timeout")
	rethrown := r.Rethrow(orig, cause)

	var wrapped *surrogate.Wrapped
	require.True(t, errors.As(rethrown, &wrapped))
	assert.Same(t, orig, wrapped.Original)

	// The chain stays intact in both directions.
	assert.True(t, errors.Is(rethrown, orig))
	assert.True(t, errors.Is(rethrown, cause))
	assert.Equal(t, "unclassified: timeout", rethrown.Error())
}

func TestRethrowRegistered(t *testing.T) {
	r := surrogate.NewRegistry()
	r.Register(&alphaError{}, rebuildAlpha)

	cause := errors.New("io failure")
	rethrown := r.Rethrow(&alphaError{msg: "row gone"}, cause)

	var alpha *alphaError
	require.True(t, errors.As(rethrown, &alpha))
	assert.Same(t, cause, alpha.cause)
}

func TestConcurrentReconstruct(t *testing.T) {
	r := surrogate.NewRegistry()
	r.Register(&alphaError{}, rebuildAlpha)

	const workers = 100
	const iterations = 50

	var wg sync.WaitGroup
	failures := make(chan string, workers)

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(worker int) {
			defer wg.Done()
			for j := 0; j < iterations; j++ {
				template := &alphaError{msg: fmt.Sprintf("w%d-i%d", worker, j)}
				cause := errors.New("cause")

				rebuilt, ok := r.Reconstruct(template, cause)
				if !ok {
					failures <- "factory not found"
					return
				}
				alpha, isAlpha := rebuilt.(*alphaError)
				if !isAlpha || alpha.msg != template.msg || alpha.cause != cause {
					failures <- "wrong reconstruction"
					return
				}
			}
		}(i)
	}

	wg.Wait()
	close(failures)
	for failure := range failures {
		t.Fatal(failure)
	}
}
