package result

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFrom(t *testing.T) {
	ok := From("style", nil)
	assert.True(t, ok.IsOk())
	assert.Equal(t, "style", ok.Unwrap())

	failed := From("ignored", errors.New("boom"))
	assert.True(t, failed.IsErr())
	assert.EqualError(t, failed.Err(), "boom")
	assert.Panics(t, func() { failed.Unwrap() })
}
