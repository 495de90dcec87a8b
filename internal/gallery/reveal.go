package gallery

// DefaultPageSize is how many images are revealed initially and per step.
const DefaultPageSize = 12

type RevealState int

const (
	RevealIdle RevealState = iota
	RevealLoading
	RevealExhausted
)

func (s RevealState) String() string {
	switch s {
	case RevealIdle:
		return "idle"
	case RevealLoading:
		return "loading"
	case RevealExhausted:
		return "exhausted"
	default:
		return "unknown"
	}
}

// ProximitySource reports when the end of the revealed list nears the viewport.
// Implementations call the registered function; they own the observation.
type ProximitySource interface {
	NotifyNear(fn func())
}

// RevealController tracks how many items of the visible set are exposed to
// the renderer. Exposed never exceeds Total.
type RevealController struct {
	pageSize int
	exposed  int
	total    int
	state    RevealState
	onChange func(RevealState)
}

func NewRevealController(pageSize int) *RevealController {
	if pageSize < 1 {
		pageSize = DefaultPageSize
	}
	c := &RevealController{pageSize: pageSize}
	c.Reset(0)
	return c
}

// Attach registers RevealMore as src's proximity callback.
func (c *RevealController) Attach(src ProximitySource) {
	if src == nil {
		return
	}
	src.NotifyNear(func() { c.RevealMore() })
}

// OnStateChange registers fn to observe every state transition.
func (c *RevealController) OnStateChange(fn func(RevealState)) {
	c.onChange = fn
}

// Reset starts over for a visible set of total items. Any previous progress,
// including exhaustion, is discarded.
func (c *RevealController) Reset(total int) {
	if total < 0 {
		total = 0
	}
	c.total = total
	c.exposed = min(c.pageSize, total)
	c.settle()
}

// RevealMore exposes one more page. It reports whether the exposed count
// grew; once exhausted it is a no-op.
func (c *RevealController) RevealMore() bool {
	if c.state == RevealExhausted {
		return false
	}
	c.transition(RevealLoading)
	before := c.exposed
	c.exposed = min(c.exposed+c.pageSize, c.total)
	c.settle()
	return c.exposed > before
}

func (c *RevealController) settle() {
	if c.exposed >= c.total {
		c.transition(RevealExhausted)
		return
	}
	c.transition(RevealIdle)
}

func (c *RevealController) transition(next RevealState) {
	if c.state == next {
		return
	}
	c.state = next
	if c.onChange != nil {
		c.onChange(next)
	}
}

func (c *RevealController) PageSize() int {
	return c.pageSize
}

func (c *RevealController) Exposed() int {
	return c.exposed
}

func (c *RevealController) Total() int {
	return c.total
}

func (c *RevealController) State() RevealState {
	return c.state
}

func (c *RevealController) IsExhausted() bool {
	return c.exposed == c.total
}
