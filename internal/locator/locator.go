package locator

import (
	"strings"

	"github.com/Domenick1991/flightgateway/internal/requester"
)

// Locator maps the three backends to their base URLs and carries the
// Requester used to reach them. It is built once and only read afterwards,
// so one pointer is shared by every request.
type Locator struct {
	flights   string
	tickets   string
	privilege string
	requester requester.Requester
}

func New(flightsURL, ticketsURL, privilegeURL string, r requester.Requester) *Locator {
	return &Locator{
		flights:   strings.TrimRight(flightsURL, "/"),
		tickets:   strings.TrimRight(ticketsURL, "/"),
		privilege: strings.TrimRight(privilegeURL, "/"),
		requester: r,
	}
}

func (l *Locator) FlightsURL() string {
	return l.flights
}

func (l *Locator) TicketsURL() string {
	return l.tickets
}

func (l *Locator) PrivilegeURL() string {
	return l.privilege
}

func (l *Locator) Requester() requester.Requester {
	return l.requester
}
