package cli

import (
	"fmt"

	"github.com/dmitrijs2005/schooldesk/internal/client/models"
)

// watchSession announces sign-in and sign-out transitions until ch closes.
// The first value is the state at subscription time and is not announced.
func watchSession(ch <-chan *models.Principal) {
	first := true
	var prev *models.Principal
	for p := range ch {
		if !first {
			if msg := transition(prev, p); msg != "" {
				printlnFn(msg)
			}
		}
		first = false
		prev = p
	}
}

func transition(prev, next *models.Principal) string {
	switch {
	case prev == nil && next == nil:
		return ""
	case next == nil:
		return "* signed out"
	case prev == nil || prev.Email != next.Email || prev.EffectiveRole() != next.EffectiveRole():
		return fmt.Sprintf("* signed in as %s (%s)", next.Email, next.EffectiveRole())
	}
	return ""
}
