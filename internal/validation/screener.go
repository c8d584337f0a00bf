package validation

import (
	"strings"

	"github.com/kritikayadav/screener-backend/internal/adminnav"
	"github.com/kritikayadav/screener-backend/internal/api/request"
)

// ValidateSelectStock validates a stock selection request.
//
// Required fields:
//   - ticker: non-empty, without surrounding whitespace
func ValidateSelectStock(req request.SelectStockRequest) error {
	errors := make(map[string]string)

	if strings.TrimSpace(req.Ticker) == "" {
		errors["ticker"] = "ticker is required"
	} else if strings.TrimSpace(req.Ticker) != req.Ticker {
		errors["ticker"] = "ticker must not contain surrounding whitespace"
	}

	if len(errors) > 0 {
		return &Error{Fields: errors}
	}

	return nil
}

// ValidSidebarEvents lists the sidebar interactions the API accepts.
var ValidSidebarEvents = map[adminnav.Event]bool{
	adminnav.EventToggle:       true,
	adminnav.EventOpen:         true,
	adminnav.EventClose:        true,
	adminnav.EventOutsideClick: true,
}

// ValidateSidebar validates a sidebar interaction request.
func ValidateSidebar(req request.SidebarRequest) error {
	errors := make(map[string]string)

	if strings.TrimSpace(req.Event) == "" {
		errors["event"] = "event is required"
	} else if !ValidSidebarEvents[adminnav.Event(req.Event)] {
		errors["event"] = "invalid event: " + req.Event
	}

	if len(errors) > 0 {
		return &Error{Fields: errors}
	}

	return nil
}
