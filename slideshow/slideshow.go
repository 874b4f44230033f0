// Package slideshow cycles the hero background images with a different
// transition on every automatic advance.
package slideshow

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"
)

const DefaultInterval = 6 * time.Second

var ErrIndexOutOfRange = errors.New("slide index out of range")

type Direction int

const (
	Forward  Direction = 1
	Backward Direction = -1
)

func (d Direction) String() string {
	if d == Backward {
		return "backward"
	}
	return "forward"
}

// State is a snapshot of a cycler.
type State struct {
	Index      int        `json:"index"`
	Direction  Direction  `json:"direction"`
	Transition Transition `json:"transition"`
}

// Cycler owns the position in a fixed list of slides. It is safe for
// concurrent use: the ticker goroutine started by Run and viewer requests
// calling GoTo may race.
type Cycler struct {
	size     int
	interval time.Duration

	mu    sync.Mutex
	state State

	updates chan State
}

func NewCycler(size int, interval time.Duration) (*Cycler, error) {
	if size <= 0 {
		return nil, fmt.Errorf("slideshow needs at least one slide, got %d", size)
	}
	if interval <= 0 {
		interval = DefaultInterval
	}
	return &Cycler{
		size:     size,
		interval: interval,
		state: State{
			Index:      0,
			Direction:  Forward,
			Transition: TransitionSlide,
		},
		updates: make(chan State, 1),
	}, nil
}

func (c *Cycler) Len() int {
	return c.size
}

func (c *Cycler) Interval() time.Duration {
	return c.interval
}

func (c *Cycler) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Tick advances to the next slide and the next transition.
func (c *Cycler) Tick() State {
	c.mu.Lock()
	c.state.Index = (c.state.Index + 1) % c.size
	c.state.Direction = Forward
	c.state.Transition = c.state.Transition.Next()
	s := c.state
	c.publish(s)
	c.mu.Unlock()

	return s
}

// GoTo jumps to index. The transition is left as is.
func (c *Cycler) GoTo(index int) (State, error) {
	if index < 0 || index >= c.size {
		return c.State(), fmt.Errorf("goto %d of %d slides: %w", index, c.size, ErrIndexOutOfRange)
	}

	c.mu.Lock()
	if index > c.state.Index {
		c.state.Direction = Forward
	} else {
		c.state.Direction = Backward
	}
	c.state.Index = index
	s := c.state
	c.publish(s)
	c.mu.Unlock()

	return s, nil
}

// Updates delivers the newest state after each change. A reader that falls
// behind only sees the latest state.
func (c *Cycler) Updates() <-chan State {
	return c.updates
}

// publish must be called with mu held so that states reach the channel in
// the order they were made.
func (c *Cycler) publish(s State) {
	for {
		select {
		case c.updates <- s:
			return
		default:
		}
		// drop the stale state and retry
		select {
		case <-c.updates:
		default:
		}
	}
}

// Run ticks every interval until ctx is done. The ticker is stopped before
// Run returns.
func (c *Cycler) Run(ctx context.Context) {
	ticker := time.NewTicker(c.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			c.Tick()
		}
	}
}
