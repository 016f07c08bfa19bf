package kbd

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newHoldTestKSM() *HoldKSM[int, int] {
	return NewHoldKSM[int, int](1,
		NewKeyActionSet(SendKeyAction(10)),
		NewKeyActionSet(SendKeyAction(20)),
		2*time.Millisecond,
	)
}

func TestHoldKSMTimeoutCommitsToHold(t *testing.T) {
	t0 := time.Unix(0, 0)
	k := newHoldTestKSM()

	_, emitted := k.Transition(KeyPress(1), t0)
	assert.False(t, emitted)

	set, emitted := k.Transition(PollEvent[int](), t0.Add(3*time.Millisecond))
	require.True(t, emitted)
	assert.Equal(t, []KeyAction[int]{SendKeyAction(20)}, set.Actions())
	assert.False(t, k.Finished())

	_, emitted = k.Transition(KeyRelease(1), t0.Add(3*time.Millisecond))
	assert.False(t, emitted)
	require.True(t, k.Finished())
	assert.Equal(t, []KeyAction[int]{StopKeyAction(20)}, k.CleanupActions()[0].Actions())
}

func TestHoldKSMQuickReleaseTaps(t *testing.T) {
	t0 := time.Unix(0, 0)
	k := newHoldTestKSM()

	k.Transition(KeyPress(1), t0)
	set, emitted := k.Transition(KeyRelease(1), t0)
	require.True(t, emitted)
	assert.Equal(t, []KeyAction[int]{SendKeyAction(10)}, set.Actions())
	assert.False(t, k.Finished())
	assert.Equal(t, []KeyAction[int]{StopKeyAction(10)}, k.CleanupActions()[0].Actions())

	_, emitted = k.Transition(PollEvent[int](), t0)
	assert.False(t, emitted)
	assert.True(t, k.Finished())
}

func TestHoldKSMInterruptedByOtherKeyCommitsToHold(t *testing.T) {
	t0 := time.Unix(0, 0)
	k := newHoldTestKSM()

	k.Transition(KeyPress(1), t0)
	set, emitted := k.Transition(KeyPress(255), t0)
	require.True(t, emitted)
	assert.Equal(t, []KeyAction[int]{SendKeyAction(20)}, set.Actions())

	_, emitted = k.Transition(KeyRelease(1), t0)
	assert.False(t, emitted)
	assert.True(t, k.Finished())
}
