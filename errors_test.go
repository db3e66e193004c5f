package clean_test

import (
	"fmt"
	"testing"

	"github.com/civicdata/clean"
	"github.com/stretchr/testify/assert"
)

func TestErrorf(t *testing.T) {
	t.Parallel()

	err := clean.Errorf(clean.ENOTFOUND, "metadata index %q not found", "ca_oakland_pd.json")

	assert.Equal(t, clean.ENOTFOUND, clean.ErrorCode(err))
	assert.Equal(t, "metadata index \"ca_oakland_pd.json\" not found", clean.ErrorMessage(err))
}

func TestErrorCode_NilError(t *testing.T) {
	t.Parallel()

	assert.Empty(t, clean.ErrorCode(nil))
}

func TestErrorCode_NonApplicationError(t *testing.T) {
	t.Parallel()

	assert.Equal(t, clean.EINTERNAL, clean.ErrorCode(fmt.Errorf("boom")))
}

func TestErrorMessage_NilError(t *testing.T) {
	t.Parallel()

	assert.Empty(t, clean.ErrorMessage(nil))
}

func TestErrorCode_WrappedError(t *testing.T) {
	t.Parallel()

	err := fmt.Errorf("fetch listing: %w", clean.Errorf(clean.EUNAVAILABLE, "HTTP 503"))

	assert.Equal(t, clean.EUNAVAILABLE, clean.ErrorCode(err))
}
