package loop

import "time"

// Clock caps the loop at one tick per frame duration.
type Clock struct {
	frame time.Duration
	now   func() time.Time
	sleep func(time.Duration)
	start time.Time
}

// NewClock creates a clock with the given frame duration.
func NewClock(frame time.Duration) *Clock {
	return &Clock{
		frame: frame,
		now:   time.Now,
		sleep: time.Sleep,
	}
}

// Begin marks the start of a tick.
func (c *Clock) Begin() {
	c.start = c.now()
}

// Wait sleeps for whatever is left of the frame since Begin.
func (c *Clock) Wait() {
	elapsed := c.now().Sub(c.start)
	if elapsed < c.frame {
		c.sleep(c.frame - elapsed)
	}
}

// Sleep pauses for d.
func (c *Clock) Sleep(d time.Duration) {
	if d > 0 {
		c.sleep(d)
	}
}
