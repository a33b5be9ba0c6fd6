package motor

import (
	"testing"

	"glimmer/hal"
	"glimmer/kernel/kerneltest"

	"github.com/stretchr/testify/require"
)

type fakeMotor struct {
	enabled bool
	dir     hal.Direction
	speed   uint8
	reverse int
}

func (m *fakeMotor) SetEnabled(on bool) { m.enabled = on }
func (m *fakeMotor) SetSpeed(d uint8)   { m.speed = d }

func (m *fakeMotor) SetDirection(d hal.Direction) {
	if d != m.dir {
		m.reverse++
	}
	m.dir = d
}

var testConfig = Config{Max: 100, Step: 40, StepEvery: 10, Hold: 50, Rest: 20}

func TestCycle(t *testing.T) {
	h := kerneltest.New(t)
	m := &fakeMotor{}
	task, err := New(h.RT, m, nil, testConfig, nil)
	require.NoError(t, err)

	h.Start(task)
	require.True(t, m.enabled)
	require.Equal(t, uint8(40), m.speed)

	h.Advance(task, 20)
	require.Equal(t, uint8(100), m.speed, "speed saturates at max")
	require.Equal(t, PhaseRampUp, task.Phase())

	h.Advance(task, 10)
	require.Equal(t, PhaseHold, task.Phase())

	h.Advance(task, 50) // hold ends, first ramp-down step
	require.Equal(t, PhaseRampDown, task.Phase())
	require.Equal(t, uint8(60), m.speed)

	h.Advance(task, 30) // 20, 0, then rest
	require.Equal(t, uint8(0), m.speed)
	require.Equal(t, PhaseRest, task.Phase())
	require.False(t, m.enabled)

	h.Advance(task, 20)
	require.Equal(t, hal.Reverse, m.dir)
	require.Equal(t, 1, m.reverse)
	require.True(t, m.enabled)
	require.Equal(t, PhaseRampUp, task.Phase())
	require.Equal(t, uint8(40), m.speed)
}

func TestPauseResume(t *testing.T) {
	h := kerneltest.New(t)
	m := &fakeMotor{}
	task, err := New(h.RT, m, nil, testConfig, nil)
	require.NoError(t, err)
	h.Start(task)

	ctl := task.Controller()
	require.True(t, ctl.Toggle())
	h.RT.Wake()
	h.Drain(task)
	require.False(t, m.enabled)
	require.Equal(t, 0, h.RT.Stats().Pending, "paused task holds no timer")

	h.Advance(task, 100)
	require.Equal(t, uint8(40), m.speed, "no progress while paused")

	require.False(t, ctl.Toggle())
	h.Drain(task)
	require.True(t, m.enabled)
	require.Equal(t, uint8(80), m.speed)
}

func TestConfigValidate(t *testing.T) {
	require.NoError(t, DefaultConfig().Validate())
	bad := testConfig
	bad.Step = 0
	_, err := New(nil, &fakeMotor{}, nil, bad, nil)
	require.ErrorIs(t, err, ErrConfig)
}
