package errors_test

import (
	"fmt"
	"testing"

	"github.com/keyboardio/testplan/internal/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type customError struct{ path string }

func (err customError) Error() string { return "bad path " + err.path }

func TestNewKeepsExistingStackTrace(t *testing.T) {
	t.Parallel()

	first := errors.New(customError{path: "a"})
	require.True(t, errors.ContainsStackTrace(first))

	second := errors.New(first)
	assert.Same(t, first, second)
	assert.NoError(t, errors.New(nil))

	var target customError
	require.True(t, errors.As(second, &target))
	assert.Equal(t, "a", target.path)
}

func TestExitCode(t *testing.T) {
	t.Parallel()

	assert.Equal(t, 1, errors.ExitCode(errors.New("plain")))
	assert.Equal(t, 3, errors.ExitCode(fmt.Errorf("wrapped: %w", errors.ErrorWithExitCode{Err: errors.New("x"), ExitCode: 3})))
}

func TestMultiError(t *testing.T) {
	t.Parallel()

	var errs *errors.MultiError
	require.NoError(t, errs.ErrorOrNil())
	assert.Equal(t, 0, errs.Len())

	errs = errs.Append(customError{path: "a"})
	errs = errs.Append(customError{path: "b"})

	require.Error(t, errs.ErrorOrNil())
	assert.Equal(t, 2, errs.Len())
	assert.Contains(t, errs.Error(), "2 errors occurred")
	assert.Contains(t, errs.Error(), "* bad path a")
	assert.Contains(t, errs.Error(), "* bad path b")
	assert.Len(t, errors.UnwrapMultiErrors(errs), 2)
}

func TestRecover(t *testing.T) {
	t.Parallel()

	var recovered error

	func() {
		defer errors.Recover(func(cause error) { recovered = cause })

		panic("boom")
	}()

	require.Error(t, recovered)
	assert.Contains(t, recovered.Error(), "boom")
}
