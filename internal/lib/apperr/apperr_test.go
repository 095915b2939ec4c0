package apperr

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKindOf(t *testing.T) {
	t.Parallel()

	cause := errors.New("connection reset")
	wrapped := fmt.Errorf("checkout: %w", Wrap(KindUpstream, "failed to create checkout session", cause))

	assert.Equal(t, KindUpstream, KindOf(wrapped))
	assert.Equal(t, "failed to create checkout session", Message(wrapped))
	assert.ErrorIs(t, wrapped, cause)
	assert.Equal(t, "failed to create checkout session: connection reset", Wrap(KindUpstream, "failed to create checkout session", cause).Error())

	assert.Equal(t, KindNotFound, KindOf(New(KindNotFound, "booking not found")))
	assert.Equal(t, KindInternal, KindOf(errors.New("plain")))
	assert.Equal(t, "plain", Message(errors.New("plain")))
}
