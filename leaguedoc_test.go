package leaguedoc_test

import (
	"errors"
	"testing"

	"github.com/leaguedoc/leaguedoc"
	"github.com/stretchr/testify/assert"
)

func TestErrorf(t *testing.T) {
	t.Parallel()

	err := leaguedoc.Errorf(leaguedoc.ENOTFOUND, "chunk %q not found", "test")

	assert.Equal(t, leaguedoc.ENOTFOUND, leaguedoc.ErrorCode(err))
	assert.Equal(t, "chunk \"test\" not found", leaguedoc.ErrorMessage(err))
}

func TestErrorCode_NilError(t *testing.T) {
	t.Parallel()

	assert.Empty(t, leaguedoc.ErrorCode(nil))
}

func TestErrorCode_NonApplicationError(t *testing.T) {
	t.Parallel()

	assert.Equal(t, leaguedoc.EINTERNAL, leaguedoc.ErrorCode(errors.New("boom")))
}

func TestErrorMessage_NilError(t *testing.T) {
	t.Parallel()

	assert.Empty(t, leaguedoc.ErrorMessage(nil))
}

func TestErrorMessage_Wrapped(t *testing.T) {
	t.Parallel()

	inner := leaguedoc.Errorf(leaguedoc.EINVALID, "bad input")
	wrapped := errors.Join(errors.New("stage failed"), inner)

	assert.Equal(t, leaguedoc.EINVALID, leaguedoc.ErrorCode(wrapped))
	assert.Equal(t, "bad input", leaguedoc.ErrorMessage(wrapped))
}
