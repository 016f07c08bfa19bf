package kbd

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeClock is a manually advanced Clock, letting scenario tests control
// exactly when threshold-dependent transitions fire without sleeping.
type fakeClock struct {
	now time.Time
}

func (c *fakeClock) Clock() time.Time {
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.now = c.now.Add(d)
}

// specScenarioMapper builds the mapper shared by the scenario tests below:
// key 1 -> Hold{tap:10, hold:20}; key 2 -> Tap{PushLayer(1)};
// (1, 3) -> Tap{SendKey(33)}; (0, 3) -> Tap{SendKey(30)};
// (0, 255) -> Tap{SendKey(255)}, an interrupting key used to exercise
// Hold's "another key pressed" commit path.
func specScenarioMapper() *TableMapper[int, int] {
	m := NewTableMapper[int, int]()
	m.Set(0, 1, Hold(NewKeyActionSet(SendKeyAction(10)), NewKeyActionSet(SendKeyAction(20))))
	m.Set(0, 2, Tap(NewKeyActionSet(PushLayerAction[int](1))))
	m.Set(1, 3, Tap(NewKeyActionSet(SendKeyAction(33))))
	m.Set(0, 3, Tap(NewKeyActionSet(SendKeyAction(30))))
	m.Set(0, 255, Tap(NewKeyActionSet(SendKeyAction(255))))
	return m
}

func newSpecEngine(mapper Mapper[int, int], clock *fakeClock) *Engine[int, int] {
	return NewEngine[int, int](0, mapper, WithSettings(Settings{
		HoldDelay:               2 * time.Millisecond,
		DoubleTapRetapDelay:     100 * time.Millisecond,
		DoubleTapHoldDelay:      100 * time.Millisecond,
		DoubleTapHoldRetapDelay: 100 * time.Millisecond,
		DoubleTapHoldHoldDelay:  100 * time.Millisecond,
	}), WithClock(clock.Clock))
}

// TestScenarioHoldTimeout presses and holds a Hold key past its threshold,
// then releases it, expecting the hold action committed and retracted.
func TestScenarioHoldTimeout(t *testing.T) {
	clock := &fakeClock{now: time.Unix(0, 0)}
	e := newSpecEngine(specScenarioMapper(), clock)

	var out []Action[int]
	out = append(out, e.Transition(KeyPress(1))...)
	clock.Advance(3 * time.Millisecond)
	out = append(out, e.Transition(PollEvent[int]())...)
	out = append(out, e.Transition(KeyRelease(1))...)

	assert.Equal(t, []Action[int]{SendCode(20), StopCode(20)}, out)
	assert.Empty(t, e.order)
}

// TestScenarioHoldTap releases a Hold key before its threshold elapses,
// expecting the tap action instead of the hold action.
func TestScenarioHoldTap(t *testing.T) {
	clock := &fakeClock{now: time.Unix(0, 0)}
	e := newSpecEngine(specScenarioMapper(), clock)

	var out []Action[int]
	out = append(out, e.Transition(KeyPress(1))...)
	out = append(out, e.Transition(KeyRelease(1))...)
	out = append(out, e.Transition(PollEvent[int]())...)

	assert.Equal(t, []Action[int]{SendCode(10), StopCode(10)}, out)
}

// TestScenarioHoldInterruptedByOtherKey presses another key while a Hold
// key is still waiting, which should commit the hold action immediately,
// before the interrupting key's own actions.
func TestScenarioHoldInterruptedByOtherKey(t *testing.T) {
	clock := &fakeClock{now: time.Unix(0, 0)}
	e := newSpecEngine(specScenarioMapper(), clock)

	var out []Action[int]
	out = append(out, e.Transition(KeyPress(1))...)
	out = append(out, e.Transition(KeyPress(255))...)
	out = append(out, e.Transition(KeyRelease(255))...)
	out = append(out, e.Transition(KeyRelease(1))...)

	assert.Equal(t, []Action[int]{SendCode(20), SendCode(255), StopCode(255), StopCode(20)}, out)

	holdIdx := indexOfAction(out, SendCode(20))
	require.GreaterOrEqual(t, holdIdx, 0)
	for i, a := range out {
		if a.Code == 255 {
			assert.Less(t, holdIdx, i)
		}
	}
}

// TestScenarioEagerHoldEarlyRelease releases an Eager-Hold key before its
// threshold elapses, expecting the eagerly-committed hold action retracted
// and replaced by the tap action.
func TestScenarioEagerHoldEarlyRelease(t *testing.T) {
	clock := &fakeClock{now: time.Unix(0, 0)}
	m := NewTableMapper[int, int]()
	m.Set(0, 1, EagerHold(NewKeyActionSet(SendKeyAction(10)), NewKeyActionSet(SendKeyAction(20))))
	e := newSpecEngine(m, clock)

	var out []Action[int]
	out = append(out, e.Transition(KeyPress(1))...)
	out = append(out, e.Transition(KeyRelease(1))...)
	out = append(out, e.Transition(PollEvent[int]())...)

	assert.Equal(t, []Action[int]{SendCode(20), StopCode(20), SendCode(10), StopCode(10)}, out)
}

// TestScenarioLayerPushPop presses a layer-push key, taps a key that only
// exists on the pushed layer, then releases the layer-push key, expecting
// the stack empty again afterward.
func TestScenarioLayerPushPop(t *testing.T) {
	clock := &fakeClock{now: time.Unix(0, 0)}
	e := newSpecEngine(specScenarioMapper(), clock)

	var out []Action[int]
	out = append(out, e.Transition(KeyPress(2))...)
	out = append(out, e.Transition(KeyPress(3))...)
	out = append(out, e.Transition(KeyRelease(3))...)
	out = append(out, e.Transition(KeyRelease(2))...)

	assert.Equal(t, []Action[int]{SendCode(33), StopCode(33)}, out)
	assert.Empty(t, e.layers.snapshot())
}

// TestScenarioUnmappedPress presses and releases a key with no configuration
// at the active layer, expecting no machine created and no actions emitted.
func TestScenarioUnmappedPress(t *testing.T) {
	clock := &fakeClock{now: time.Unix(0, 0)}
	e := newSpecEngine(specScenarioMapper(), clock)

	var out []Action[int]
	out = append(out, e.Transition(KeyPress(9))...)
	out = append(out, e.Transition(KeyRelease(9))...)

	assert.Empty(t, out)
	assert.Empty(t, e.order)
}

// TestInvariantAtMostOneMachinePerKey asserts that re-pressing a key with a
// live machine forwards the press to that machine rather than creating a
// second one.
func TestInvariantAtMostOneMachinePerKey(t *testing.T) {
	clock := &fakeClock{now: time.Unix(0, 0)}
	e := newSpecEngine(specScenarioMapper(), clock)

	e.Transition(KeyPress(1))
	e.Transition(KeyPress(1)) // duplicate press, forwarded to the existing machine

	assert.Len(t, e.order, 1)
	assert.Len(t, e.machines, 1)
}

// TestInvariantOrderAndMapAgree asserts that the creation-order list and the
// machine map always track the same set of keys.
func TestInvariantOrderAndMapAgree(t *testing.T) {
	clock := &fakeClock{now: time.Unix(0, 0)}
	e := newSpecEngine(specScenarioMapper(), clock)

	e.Transition(KeyPress(1))
	e.Transition(KeyPress(3))

	require.Len(t, e.order, len(e.machines))
	for _, id := range e.order {
		_, ok := e.machines[id]
		assert.True(t, ok)
	}
}

func indexOfAction(actions []Action[int], target Action[int]) int {
	for i, a := range actions {
		if a == target {
			return i
		}
	}
	return -1
}
