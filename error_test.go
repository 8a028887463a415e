package spicedocs_test

import (
	"errors"
	"testing"

	"github.com/fwojciec/spicedocs"
	"github.com/stretchr/testify/assert"
)

func TestErrorf(t *testing.T) {
	t.Parallel()

	err := spicedocs.Errorf(spicedocs.ENOTFOUND, "page %q not found", "test.html")

	assert.Equal(t, spicedocs.ENOTFOUND, spicedocs.ErrorCode(err))
	assert.Equal(t, "page \"test.html\" not found", spicedocs.ErrorMessage(err))
}

func TestErrorCode_NilError(t *testing.T) {
	t.Parallel()

	assert.Empty(t, spicedocs.ErrorCode(nil))
}

func TestErrorCode_NonApplicationError(t *testing.T) {
	t.Parallel()

	assert.Equal(t, spicedocs.EINTERNAL, spicedocs.ErrorCode(errors.New("boom")))
}

func TestErrorMessage_NilError(t *testing.T) {
	t.Parallel()

	assert.Empty(t, spicedocs.ErrorMessage(nil))
}
