package sim

import "log"

// Commands buffers side effects that must not run in the middle of a tick. Queued functions
// run in order on Flush; a panic in one is logged and the rest still run.
type Commands struct {
	defers []deferCommand
	logger *log.Logger
}

type deferCommand struct {
	label string
	fn    func()
}

func newCommands(logger *log.Logger) *Commands {
	if logger == nil {
		logger = log.Default()
	}
	return &Commands{logger: logger}
}

// NewCommands returns an empty buffer that reports recovered panics to logger.
func NewCommands(logger *log.Logger) *Commands {
	return newCommands(logger)
}

// Defer queues fn under a label used when reporting failures.
func (c *Commands) Defer(label string, fn func()) {
	c.defers = append(c.defers, deferCommand{label: label, fn: fn})
}

// Len returns the number of queued commands.
func (c *Commands) Len() int {
	return len(c.defers)
}

// Flush runs every queued command and resets the buffer. Commands queued while flushing run
// in the same flush.
func (c *Commands) Flush() {
	for i := 0; i < len(c.defers); i++ {
		c.run(c.defers[i])
	}
	clear(c.defers)
	c.defers = c.defers[:0]
}

func (c *Commands) run(cmd deferCommand) {
	defer func() {
		if r := recover(); r != nil {
			c.logger.Printf("sim: deferred %q failed: %v", cmd.label, r)
		}
	}()
	cmd.fn()
}
