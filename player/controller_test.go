package player

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPlayTickToLastFrame(t *testing.T) {
	c := NewController(5)
	assert.Equal(t, Stopped, c.State())

	c.Play()
	assert.Equal(t, Playing, c.State())
	for i := 0; i < 4; i++ {
		c.Tick()
	}
	assert.Equal(t, 4, c.Frame())
	assert.Equal(t, Playing, c.State())
}

func TestTickAtEndWithoutLoopPauses(t *testing.T) {
	c := NewController(5)
	c.Play()
	for i := 0; i < 4; i++ {
		c.Tick()
	}
	c.Tick()
	assert.Equal(t, Paused, c.State())
	assert.Equal(t, 4, c.Frame(), "stays on the last frame")
}

func TestTickAtEndWithLoopWraps(t *testing.T) {
	c := NewController(5)
	c.SetLoop(true)
	c.Play()
	for i := 0; i < 4; i++ {
		c.Tick()
	}
	c.Tick()
	assert.Equal(t, 0, c.Frame())
	assert.Equal(t, Playing, c.State())
}

func TestTickOnlyEffectiveWhilePlaying(t *testing.T) {
	c := NewController(5)
	c.Tick()
	assert.Equal(t, 0, c.Frame())
	c.Play()
	c.Tick()
	c.Pause()
	c.Tick()
	assert.Equal(t, 1, c.Frame())
}

func TestSeekClampsAndKeepsState(t *testing.T) {
	c := NewController(5)
	assert.Equal(t, 4, c.Seek(99), "clamped high")
	assert.Equal(t, 0, c.Seek(-3), "clamped low")
	assert.Equal(t, Stopped, c.State(), "seek does not change play state")

	c.Play()
	c.Seek(2)
	assert.Equal(t, Playing, c.State())
	assert.Equal(t, 2, c.Frame())
}

func TestStopResetsFrame(t *testing.T) {
	c := NewController(5)
	c.Play()
	c.Tick()
	c.Tick()
	c.Stop()
	assert.Equal(t, Stopped, c.State())
	assert.Equal(t, 0, c.Frame())
}

func TestPlayAtEndRestarts(t *testing.T) {
	c := NewController(3)
	c.Seek(2)
	c.Play()
	assert.Equal(t, 0, c.Frame())
	assert.Equal(t, Playing, c.State())
}

func TestFrameChangedNotifications(t *testing.T) {
	c := NewController(4)
	var got []int
	c.OnFrameChanged(func(f int) { got = append(got, f) })

	c.Play()
	c.Tick()  // -> 1
	c.Seek(3) // -> 3
	c.Seek(3) // no change, no notification
	c.Tick()  // at end, no loop: pause, no frame change
	c.Stop()  // -> 0
	assert.Equal(t, []int{1, 3, 0}, got)
}

func TestResetRebindsLength(t *testing.T) {
	c := NewController(10)
	c.SetLoop(true)
	c.Play()
	c.Seek(7)
	c.Reset(3)
	assert.Equal(t, Stopped, c.State())
	assert.Equal(t, 0, c.Frame())
	assert.Equal(t, 3, c.FrameCount())
	assert.True(t, c.Loop(), "loop preference survives a reset")
}

func TestEmptyControllerIsInert(t *testing.T) {
	c := NewController(0)
	c.Play()
	c.Tick()
	assert.Equal(t, Stopped, c.State())
	assert.Equal(t, 0, c.Seek(5))
}
