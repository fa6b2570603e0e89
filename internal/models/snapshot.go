package models

// Snapshot is the persisted document: five arrays in file order.
type Snapshot struct {
	Customers    []Customer    `json:"customers" yaml:"customers"`
	Accounts     []Account     `json:"accounts" yaml:"accounts"`
	Transactions []Transaction `json:"transactions" yaml:"transactions"`
	Loans        []Loan        `json:"loans" yaml:"loans"`
	CreditCards  []CreditCard  `json:"credit_cards" yaml:"credit_cards"`
}

// Counts summarizes the size of each collection
type Counts struct {
	Customers    int `json:"customers"`
	Accounts     int `json:"accounts"`
	Transactions int `json:"transactions"`
	Loans        int `json:"loans"`
	CreditCards  int `json:"credit_cards"`
}

// Counts returns the number of records per collection
func (s *Snapshot) Counts() Counts {
	return Counts{
		Customers:    len(s.Customers),
		Accounts:     len(s.Accounts),
		Transactions: len(s.Transactions),
		Loans:        len(s.Loans),
		CreditCards:  len(s.CreditCards),
	}
}
