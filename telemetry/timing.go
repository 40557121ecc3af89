package telemetry

import (
	"io"
	"sync"
	"time"
)

// TimingCollector records a forest of timers. A timer started on the
// collector nests under the innermost timer that is still running, or begins
// a new tree when none is.
type TimingCollector struct {
	mu      sync.Mutex
	roots   []*timerNode
	running []*timerNode
}

type timerNode struct {
	name     string
	start    time.Time
	end      time.Time
	children []*timerNode
}

func (n *timerNode) duration() time.Duration {
	if n.end.IsZero() {
		return 0
	}
	return n.end.Sub(n.start)
}

// NewTimingCollector creates an empty collector.
func NewTimingCollector() *TimingCollector {
	return &TimingCollector{}
}

// Start begins timing an operation.
func (c *TimingCollector) Start(name string) Timer {
	c.mu.Lock()
	defer c.mu.Unlock()

	node := &timerNode{name: name, start: time.Now()}
	if n := len(c.running); n > 0 {
		parent := c.running[n-1]
		parent.children = append(parent.children, node)
	} else {
		c.roots = append(c.roots, node)
	}
	c.running = append(c.running, node)

	return &timingTimer{collector: c, node: node}
}

// Report writes every recorded tree to w, one after the other.
func (c *TimingCollector) Report(w io.Writer, styles interface{}) {
	c.mu.Lock()
	defer c.mu.Unlock()

	for _, root := range c.roots {
		formatTimingTree(w, root, styles)
	}
}

// Durations returns the duration of every ended timer keyed by its path,
// with the names of nested timers joined by "/". Timers sharing a path are
// summed.
func (c *TimingCollector) Durations() map[string]time.Duration {
	c.mu.Lock()
	defer c.mu.Unlock()

	durations := make(map[string]time.Duration)
	var walk func(prefix string, nodes []*timerNode)
	walk = func(prefix string, nodes []*timerNode) {
		for _, node := range nodes {
			path := prefix + node.name
			durations[path] += node.duration()
			walk(path+"/", node.children)
		}
	}
	walk("", c.roots)
	return durations
}

func (c *TimingCollector) stop(node *timerNode) {
	for i := len(c.running) - 1; i >= 0; i-- {
		if c.running[i] == node {
			c.running = append(c.running[:i], c.running[i+1:]...)
			return
		}
	}
}

type timingTimer struct {
	collector *TimingCollector
	node      *timerNode
}

// End stops the timer. Ending a timer twice keeps the first end time.
func (t *timingTimer) End() {
	t.collector.mu.Lock()
	defer t.collector.mu.Unlock()

	if t.node.end.IsZero() {
		t.node.end = time.Now()
	}
	t.collector.stop(t.node)
}

// Child starts a timer nested under t regardless of which timers are running.
func (t *timingTimer) Child(name string) Timer {
	t.collector.mu.Lock()
	defer t.collector.mu.Unlock()

	node := &timerNode{name: name, start: time.Now()}
	t.node.children = append(t.node.children, node)

	return &timingTimer{collector: t.collector, node: node}
}
