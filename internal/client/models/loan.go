package models

type Loan struct {
	ID               string    `json:"id"`
	Name             string    `json:"name"`
	TotalAmount      float64   `json:"totalAmount"`
	EMI              float64   `json:"emi"`
	InterestRate     float64   `json:"interestRate"`
	NextDueDate      string    `json:"nextDueDate"`
	PaidAmount       float64   `json:"paidAmount"`
	RemainingBalance float64   `json:"remainingBalance"`
	Payments         []Payment `json:"payments"`
}

type Payment struct {
	ID     string  `json:"id"`
	Date   string  `json:"date"`
	Amount float64 `json:"amount"`
}

// Progress is the paid share of the loan in percent, capped at 100.
func (l Loan) Progress() float64 {
	if l.TotalAmount <= 0 {
		return 0
	}
	return min(l.PaidAmount/l.TotalAmount*100, 100)
}
