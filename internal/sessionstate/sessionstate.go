// Package sessionstate holds the interactive UI state that lives in the user's session: the comparison
// selection, the assessment wizard and the deployment checklist.
//
// The types are registered with encoding/gob so that the session store can persist them.
package sessionstate

import (
	"encoding/gob"
	"slices"
)

func init() {
	gob.Register(Selection{})
	gob.Register(Wizard{})
	gob.Register(Checklist{})
}

// toggle removes value from set if present and appends it otherwise. It reports whether value is in the result.
func toggle(set []string, value string) ([]string, bool) {
	if i := slices.Index(set, value); i >= 0 {
		return slices.Delete(set, i, i+1), false
	}
	return append(set, value), true
}
