package adminnav

import (
	"fmt"

	"github.com/kritikayadav/screener-backend/internal/apperrors"
)

// Event is an interaction that changes the sidebar.
type Event string

const (
	EventToggle       Event = "toggle"
	EventOpen         Event = "open"
	EventClose        Event = "close"
	EventOutsideClick Event = "outside_click"
)

// Sidebar is the mobile sidebar's visibility.
type Sidebar struct {
	Open bool `json:"open"`
}

func (s Sidebar) Toggle() Sidebar { return Sidebar{Open: !s.Open} }

func (s Sidebar) Show() Sidebar { return Sidebar{Open: true} }

func (s Sidebar) Hide() Sidebar { return Sidebar{Open: false} }

// OutsideClick handles a press outside the sidebar, which always closes it.
func (s Sidebar) OutsideClick() Sidebar { return s.Hide() }

// Apply returns the sidebar state after ev.
func (s Sidebar) Apply(ev Event) (Sidebar, error) {
	switch ev {
	case EventToggle:
		return s.Toggle(), nil
	case EventOpen:
		return s.Show(), nil
	case EventClose:
		return s.Hide(), nil
	case EventOutsideClick:
		return s.OutsideClick(), nil
	default:
		return s, fmt.Errorf("%w: %q", apperrors.ErrInvalidSidebarEvent, ev)
	}
}
