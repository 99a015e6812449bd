package player

// State is the playback state of the animation controller
type State int

const (
	Stopped State = iota
	Playing
	Paused
)

func (s State) String() string {
	return [...]string{"Stopped", "Playing", "Paused"}[s]
}

// FrameFunc receives the new frame index after every effective seek/tick
type FrameFunc func(frame int)

// Controller owns the current frame index and play/pause/loop state. It
// holds no timer: the host drives it with Tick() at whatever interval it
// chooses, which keeps playback deterministic and testable without real
// time.
type Controller struct {
	state      State
	frame      int
	frameCount int
	loop       bool
	listeners  []FrameFunc
}

func NewController(frameCount int) *Controller {
	return &Controller{frameCount: frameCount}
}

func (c *Controller) State() State    { return c.state }
func (c *Controller) Frame() int      { return c.frame }
func (c *Controller) FrameCount() int { return c.frameCount }
func (c *Controller) Loop() bool      { return c.loop }

func (c *Controller) SetLoop(loop bool) { c.loop = loop }

// OnFrameChanged registers a listener for frame-changed notifications
func (c *Controller) OnFrameChanged(fn FrameFunc) {
	c.listeners = append(c.listeners, fn)
}

func (c *Controller) notify() {
	for _, fn := range c.listeners {
		fn(c.frame)
	}
}

// Reset rebinds the controller to a new series length: frame 0, Stopped
func (c *Controller) Reset(frameCount int) {
	c.state = Stopped
	c.frame = 0
	c.frameCount = frameCount
}

// Play starts or resumes playback. Pressing play while parked on the
// last frame without loop restarts from frame 0.
func (c *Controller) Play() {
	if c.frameCount == 0 || c.state == Playing {
		return
	}
	if !c.loop && c.frame == c.frameCount-1 {
		c.frame = 0
		c.notify()
	}
	c.state = Playing
}

func (c *Controller) Pause() {
	if c.state == Playing {
		c.state = Paused
	}
}

// Stop halts playback and resets the frame to 0
func (c *Controller) Stop() {
	changed := c.frame != 0
	c.state = Stopped
	c.frame = 0
	if changed {
		c.notify()
	}
}

// Seek jumps to the given frame, clamped to the valid range, without
// changing the play/pause state. Returns the frame actually landed on.
func (c *Controller) Seek(frame int) int {
	if c.frameCount == 0 {
		return 0
	}
	if frame < 0 {
		frame = 0
	}
	if frame > c.frameCount-1 {
		frame = c.frameCount - 1
	}
	if frame != c.frame {
		c.frame = frame
		c.notify()
	}
	return c.frame
}

// Tick advances one frame while Playing. At the last frame it wraps to 0
// when looping, otherwise transitions to Paused and stays put.
func (c *Controller) Tick() {
	if c.state != Playing {
		return
	}
	next := c.frame + 1
	if next >= c.frameCount {
		if !c.loop {
			c.state = Paused
			return
		}
		next = 0
	}
	c.frame = next
	c.notify()
}
