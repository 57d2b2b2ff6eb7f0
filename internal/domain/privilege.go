package domain

// Balance is the loyalty record keyed by username.
type Balance struct {
	Balance int    `json:"balance"`
	Status  string `json:"status" validate:"required"`
}

type PurchaseRequest struct {
	TicketUID       string `json:"ticket_uid"`
	Price           int    `json:"price"`
	PaidFromBalance bool   `json:"paid_from_balance"`
}

type PurchaseResult struct {
	PaidByMoney   int    `json:"paid_by_money"`
	PaidByBonuses int    `json:"paid_by_bonuses"`
	Balance       int    `json:"balance"`
	Status        string `json:"status" validate:"required"`
}

// User is the aggregate returned by /me.
type User struct {
	Tickets   []TicketResponse `json:"tickets"`
	Privilege Balance          `json:"privilege"`
}
