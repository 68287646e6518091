package notice

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPushAndDismiss(t *testing.T) {
	c := NewCenter(0)

	id := c.Push(KindWarning, "slot taken", time.Minute)
	require.Len(t, c.Active(), 1)
	assert.Equal(t, KindWarning, c.Active()[0].Kind)
	assert.Equal(t, "slot taken", c.Active()[0].Text)

	c.Dismiss(id)
	assert.Empty(t, c.Active())

	// Dismissing twice is harmless.
	c.Dismiss(id)
	assert.Empty(t, c.Active())
}

func TestAutoDismiss(t *testing.T) {
	c := NewCenter(0)
	c.Push(KindSuccess, "saved", 20*time.Millisecond)

	require.Len(t, c.Active(), 1)
	assert.Eventually(t, func() bool {
		return len(c.Active()) == 0
	}, time.Second, 10*time.Millisecond)
}

func TestConfiguredDefaultTTLApplies(t *testing.T) {
	c := NewCenter(20 * time.Millisecond)
	c.Push(KindSuccess, "saved", 0)

	require.Len(t, c.Active(), 1)
	assert.Eventually(t, func() bool {
		return len(c.Active()) == 0
	}, time.Second, 10*time.Millisecond)
}

func TestActiveReturnsCopyInOrder(t *testing.T) {
	c := NewCenter(0)
	c.Push(KindInfo, "first", time.Minute)
	c.Push(KindError, "second", time.Minute)

	active := c.Active()
	require.Len(t, active, 2)
	assert.Equal(t, "first", active[0].Text)
	assert.Equal(t, "second", active[1].Text)

	active[0].Text = "mutated"
	assert.Equal(t, "first", c.Active()[0].Text)
}
