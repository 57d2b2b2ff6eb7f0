package domain

type Flight struct {
	FlightNumber string `json:"flightNumber" validate:"required"`
	FromAirport  string `json:"fromAirport"`
	ToAirport    string `json:"toAirport"`
	Date         string `json:"date"`
	Price        int    `json:"price"`
}

type FlightPage struct {
	Page          int      `json:"page"`
	PageSize      int      `json:"pageSize"`
	TotalElements int      `json:"totalElements"`
	Items         []Flight `json:"items" validate:"dive"`
}
