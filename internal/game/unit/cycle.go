package unit

// DefaultAction is used by monsters that declare no action cycle.
const DefaultAction = "fight"

// Cycle is a circular queue of ability names driving a monster's turns.
//
// Invariant: the queue is never empty.
type Cycle struct {
	queue []string
}

// NewCycle returns a cycle over names; an empty list yields a fight-only cycle.
//
// Postcondition: Peek() returns names[0], or DefaultAction when names is empty.
func NewCycle(names []string) *Cycle {
	if len(names) == 0 {
		return &Cycle{queue: []string{DefaultAction}}
	}
	q := make([]string, len(names))
	copy(q, names)
	return &Cycle{queue: q}
}

// Next pops the front name, appends it to the back, and returns it.
func (c *Cycle) Next() string {
	name := c.queue[0]
	c.queue = append(c.queue[1:], name)
	return name
}

// Peek returns the name Next would return without advancing.
func (c *Cycle) Peek() string { return c.queue[0] }

// Order returns a copy of the current queue, front first.
func (c *Cycle) Order() []string {
	out := make([]string, len(c.queue))
	copy(out, c.queue)
	return out
}

// Len returns the cycle length.
func (c *Cycle) Len() int { return len(c.queue) }
