package sessionstate

import (
	"fmt"
	"slices"
)

// Checklist tracks completed deployment checklist items.
type Checklist struct {
	Completed []string
}

// ChecklistKey identifies an item of a deployment phase.
func ChecklistKey(phase int, item string) string {
	return fmt.Sprintf("%d:%s", phase, item)
}

// Toggle flips key and reports whether it is now completed.
func (c *Checklist) Toggle(key string) bool {
	var done bool
	c.Completed, done = toggle(c.Completed, key)
	return done
}

func (c Checklist) Done(key string) bool {
	return slices.Contains(c.Completed, key)
}

// Progress is the completed share of total items in percent.
func (c Checklist) Progress(total int) int {
	if total <= 0 {
		return 0
	}
	return len(c.Completed) * 100 / total //nolint:mnd // percent
}
