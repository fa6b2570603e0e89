package models

import (
	"encoding/json"
	"strings"
	"testing"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/willfong/mockbank/internal/utils"
)

func TestAccountTypeUnmarshal(t *testing.T) {
	tests := []struct {
		input   string
		want    AccountType
		wantErr bool
	}{
		{"vadesiz_mevduat", AccountTypeChecking, false},
		{"checking", AccountTypeChecking, false},
		{"CHECKING", AccountTypeChecking, false},
		{" doviz_hesabi ", AccountTypeForeignCurrency, false},
		{"foreign_currency", AccountTypeForeignCurrency, false},
		{"brokerage", "", true},
		{"", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			var got AccountType
			err := got.UnmarshalText([]byte(tt.input))
			if (err != nil) != tt.wantErr {
				t.Fatalf("UnmarshalText(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("UnmarshalText(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestEnumerationsAreClosed(t *testing.T) {
	if n := countValid(accountTypeAliases); n != 8 {
		t.Errorf("account types reachable by alias = %d, want 8", n)
	}
	if n := countValid(loanTypeAliases); n != 9 {
		t.Errorf("loan types reachable by alias = %d, want 9", n)
	}

	types := []TransactionType{
		TxTypeDeposit, TxTypeWithdrawal, TxTypeTransferIn, TxTypeTransferOut, TxTypePayment,
		TxTypeFee, TxTypeInterest, TxTypeRefund, TxTypeEFT, TxTypeSWIFT, TxTypeGoldPurchase,
		TxTypeGoldSale, TxTypeForeignExchange, TxTypeCreditCardPayment, TxTypeLoanPayment,
	}
	seen := make(map[TransactionType]bool)
	for _, tt := range types {
		if !tt.Valid() {
			t.Errorf("%q should be valid", tt)
		}
		seen[tt] = true
	}
	if len(seen) != 15 {
		t.Errorf("distinct transaction types = %d, want 15", len(seen))
	}
	if TransactionType("bogus").Valid() {
		t.Error("unknown transaction type reported as valid")
	}
}

func countValid[T code](aliases map[string]T) int {
	distinct := make(map[T]bool)
	for _, v := range aliases {
		if v.Valid() {
			distinct[v] = true
		}
	}
	return len(distinct)
}

func TestStatusPredicates(t *testing.T) {
	for _, s := range []AccountStatus{AccountStatusInactive, AccountStatusFrozen, AccountStatusClosed, AccountStatusPendingApproval} {
		if s.CanTransact() {
			t.Errorf("%s.CanTransact() = true, want false", s)
		}
	}
	if !AccountStatusActive.CanTransact() {
		t.Error("active account should transact")
	}

	for _, s := range []LoanStatus{LoanStatusPaidOff, LoanStatusDefaulted, LoanStatusApproved} {
		if s.AcceptsPayments() {
			t.Errorf("%s.AcceptsPayments() = true, want false", s)
		}
	}
}

func TestLoanApplyPayment(t *testing.T) {
	loan := Loan{Status: LoanStatusActive, CurrentBalance: utils.Dollars(500)}

	loan.ApplyPayment(utils.Dollars(300))
	if loan.CurrentBalance != utils.Dollars(200) || loan.Status != LoanStatusActive {
		t.Fatalf("after partial payment: balance %s status %s", loan.CurrentBalance, loan.Status)
	}

	loan.ApplyPayment(utils.Dollars(250))
	if loan.CurrentBalance != 0 {
		t.Errorf("balance = %s, want 0.00", loan.CurrentBalance)
	}
	if loan.Status != LoanStatusPaidOff {
		t.Errorf("status = %s, want paid_off", loan.Status)
	}
}

func TestCreditCardApplyPayment(t *testing.T) {
	card := CreditCard{
		CreditLimit:     utils.Dollars(5000),
		CurrentBalance:  utils.Dollars(1800),
		AvailableCredit: utils.Dollars(3200),
	}
	card.ApplyPayment(utils.Dollars(150))

	if card.CurrentBalance != utils.Dollars(1650) {
		t.Errorf("CurrentBalance = %s, want 1650.00", card.CurrentBalance)
	}
	if card.AvailableCredit != utils.Dollars(3350) {
		t.Errorf("AvailableCredit = %s, want 3350.00", card.AvailableCredit)
	}
	if !card.Balanced() {
		t.Error("card should stay balanced")
	}
}

func TestDateEncoding(t *testing.T) {
	var d Date
	if err := json.Unmarshal([]byte(`"2024-01-15T10:30:00"`), &d); err != nil {
		t.Fatalf("unmarshal timestamp into date: %v", err)
	}
	if d.String() != "2024-01-15" {
		t.Errorf("date = %s, want 2024-01-15", d)
	}

	out, err := json.Marshal(struct {
		D  Date  `json:"d"`
		P  *Date `json:"p"`
		TS Timestamp
	}{D: d, TS: NewTimestamp(time.Date(2024, 3, 1, 9, 5, 7, 999, time.UTC))})
	if err != nil {
		t.Fatal(err)
	}
	want := `{"d":"2024-01-15","p":null,"TS":"2024-03-01T09:05:07"}`
	if string(out) != want {
		t.Errorf("json = %s, want %s", out, want)
	}

	if err := d.UnmarshalText([]byte("15/01/2024")); err == nil {
		t.Error("expected error for non-ISO date")
	}
}

func TestAccountYAML(t *testing.T) {
	src := `
account_id: account_2001
customer_id: customer_1001
account_type: checking
status: active
balance: 2500.00
available_balance: "2500.00"
created_date: 2020-01-15
freeze_reason: null
`
	var acct Account
	if err := yaml.Unmarshal([]byte(src), &acct); err != nil {
		t.Fatalf("yaml.Unmarshal: %v", err)
	}
	if acct.AccountType != AccountTypeChecking {
		t.Errorf("AccountType = %q", acct.AccountType)
	}
	if acct.Balance != utils.Dollars(2500) || acct.AvailableBalance != acct.Balance {
		t.Errorf("balances = %s / %s", acct.Balance, acct.AvailableBalance)
	}
	if acct.FreezeReason != nil {
		t.Error("freeze_reason should be nil")
	}

	out, err := yaml.Marshal(&acct)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(out), "account_type: vadesiz_mevduat") {
		t.Errorf("yaml output should carry the wire code:\n%s", out)
	}
}

func TestCustomerApplyDefaults(t *testing.T) {
	c := Customer{FirstName: "Ayşe", LastName: "Yılmaz", AccountIDs: []string{"account_2001"}}
	c.ApplyDefaults()

	if c.RiskScore != DefaultRiskScore || c.PreferredLanguage != "tr" || c.Address.Country != "Turkey" {
		t.Errorf("defaults not applied: %+v", c)
	}
	if c.FullName() != "Ayşe Yılmaz" {
		t.Errorf("FullName() = %q", c.FullName())
	}
	if !c.OwnsAccount("account_2001") || c.OwnsAccount("account_2002") {
		t.Error("OwnsAccount mismatch")
	}
}
