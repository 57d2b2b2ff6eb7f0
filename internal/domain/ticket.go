package domain

type TicketStatus string

const (
	TicketStatusPaid      TicketStatus = "PAID"
	TicketStatusCancelled TicketStatus = "CANCELLED"
)

// Ticket is the reservation backend's record. Statuses other than PAID and
// CANCELLED are passed through untouched.
type Ticket struct {
	TicketUID    string       `json:"ticket_uid" validate:"required"`
	Username     string       `json:"username,omitempty"`
	FlightNumber string       `json:"flight_number" validate:"required"`
	Price        int          `json:"price"`
	Status       TicketStatus `json:"status" validate:"required"`
}

type TicketCreate struct {
	FlightNumber string `json:"flight_number"`
	Price        int    `json:"price"`
}

// TicketResponse is a ticket merged with its flight.
type TicketResponse struct {
	TicketUID    string       `json:"ticketUid"`
	FlightNumber string       `json:"flightNumber"`
	FromAirport  string       `json:"fromAirport"`
	ToAirport    string       `json:"toAirport"`
	Date         string       `json:"date"`
	Price        int          `json:"price"`
	Status       TicketStatus `json:"status"`
}

type PurchaseInput struct {
	FlightNumber    string
	Price           int
	PaidFromBalance bool
}

type CombinedPurchaseResponse struct {
	TicketUID     string       `json:"ticketUid"`
	FlightNumber  string       `json:"flightNumber"`
	FromAirport   string       `json:"fromAirport"`
	ToAirport     string       `json:"toAirport"`
	Date          string       `json:"date"`
	Price         int          `json:"price"`
	PaidByMoney   int          `json:"paidByMoney"`
	PaidByBonuses int          `json:"paidByBonuses"`
	Status        TicketStatus `json:"status"`
	Privilege     Balance      `json:"privilege"`
}
