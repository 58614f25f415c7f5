package sessionstate

import (
	"github.com/intinc/platformexplorer/internal/errors"
	"slices"
)

// MaxSelection is the number of platforms that can be compared side by side.
const MaxSelection = 4

var ErrSelectionFull = errors.NewSentinel("Maximum 4 platforms can be compared")

// Selection is the insertion-ordered set of platform ids picked for comparison.
type Selection struct {
	IDs []string
}

// Toggle adds id when it is not selected and removes it otherwise. Adding to a full selection returns
// ErrSelectionFull and leaves the selection unchanged.
func (s *Selection) Toggle(id string) (bool, error) {
	if !s.Contains(id) && s.Full() {
		return false, ErrSelectionFull
	}
	var selected bool
	s.IDs, selected = toggle(s.IDs, id)
	return selected, nil
}

func (s Selection) Contains(id string) bool {
	return slices.Contains(s.IDs, id)
}

func (s Selection) Full() bool {
	return len(s.IDs) >= MaxSelection
}

func (s Selection) Len() int {
	return len(s.IDs)
}

func (s *Selection) Clear() {
	s.IDs = nil
}
