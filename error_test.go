package sammelband_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/sammelband/sammelband"
	"github.com/stretchr/testify/assert"
)

func TestErrorf(t *testing.T) {
	t.Parallel()

	err := sammelband.Errorf(sammelband.ENOTFOUND, "document %q not found", "abc")

	assert.Equal(t, sammelband.ENOTFOUND, sammelband.ErrorCode(err))
	assert.Equal(t, "document \"abc\" not found", sammelband.ErrorMessage(err))
}

func TestErrorCode_NilError(t *testing.T) {
	t.Parallel()

	assert.Empty(t, sammelband.ErrorCode(nil))
}

func TestErrorMessage_NilError(t *testing.T) {
	t.Parallel()

	assert.Empty(t, sammelband.ErrorMessage(nil))
}

func TestErrorCode_WrappedError(t *testing.T) {
	t.Parallel()

	err := fmt.Errorf("saving: %w", sammelband.Errorf(sammelband.ECONFLICT, "taken"))

	assert.Equal(t, sammelband.ECONFLICT, sammelband.ErrorCode(err))
	assert.Equal(t, "taken", sammelband.ErrorMessage(err))
}

func TestErrorCode_NonApplicationError(t *testing.T) {
	t.Parallel()

	err := errors.New("disk full")

	assert.Equal(t, sammelband.EINTERNAL, sammelband.ErrorCode(err))
	assert.Equal(t, "Internal error.", sammelband.ErrorMessage(err))
}
