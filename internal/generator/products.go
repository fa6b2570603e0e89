package generator

import (
	"fmt"
	"strings"
	"time"

	"github.com/willfong/mockbank/internal/ledger"
	"github.com/willfong/mockbank/internal/models"
	"github.com/willfong/mockbank/internal/utils"
)

const routingNumber = "00062"

var freezeReasons = []string{"Şüpheli işlem", "Müşteri talebi", "Yasal takip"}

// generateAccounts gives every customer a checking account and some a
// savings account. Funded accounts get an opening deposit.
func (g *Generator) generateAccounts(c *models.Customer) {
	g.generateAccount(c, models.AccountTypeChecking)
	if g.rng.Probability(g.config.SavingsRate) {
		g.generateAccount(c, models.AccountTypeSavings)
	}
}

func (g *Generator) generateAccount(c *models.Customer, typ models.AccountType) {
	id := g.ids.Next(ledger.KindAccount)
	opened := g.daysAgo(1, int(g.base.Sub(c.CreatedDate.Time).Hours()/24)+1)

	acct := models.Account{
		AccountID:     id,
		CustomerID:    c.CustomerID,
		AccountType:   typ,
		AccountNumber: "****-****-" + suffix(id),
		RoutingNumber: routingNumber,
		Status:        models.AccountStatusActive,
		CreatedDate:   models.NewDate(opened),
	}

	switch typ {
	case models.AccountTypeSavings:
		acct.Balance = g.amount(1000, 250000, 50)
		acct.InterestRate = float64(g.rng.IntRange(3000, 4500)) / 100
		acct.MinimumBalance = utils.Dollars(1000)
	default:
		acct.Balance = g.amount(0, 50000, 10)
		if g.rng.Probability(0.2) {
			acct.OverdraftLimit = g.amount(1000, 10000, 500)
		}
	}
	acct.AvailableBalance = acct.Balance

	if acct.Balance.IsPositive() {
		tx := g.openingDeposit(&acct, opened)
		activity := models.NewDate(tx.TransactionDate.Time)
		acct.LastActivityDate = &activity
	}

	if g.rng.Probability(g.config.FrozenRate) {
		reason := utils.Pick(g.rng, freezeReasons)
		frozen := models.NewDate(g.daysAgo(0, 30))
		acct.Status = models.AccountStatusFrozen
		acct.FreezeReason = &reason
		acct.FreezeDate = &frozen
	}

	c.AccountIDs = append(c.AccountIDs, id)
	g.snap.Accounts = append(g.snap.Accounts, acct)
}

// openingDeposit records the deposit that explains an account's balance
func (g *Generator) openingDeposit(acct *models.Account, opened time.Time) models.Transaction {
	id := g.ids.Next(ledger.KindTransaction)
	ref := fmt.Sprintf("REF-%d-%s", opened.Year(), suffix(id))
	at := models.NewTimestamp(opened)

	tx := models.Transaction{
		TransactionID:   id,
		AccountID:       acct.AccountID,
		TransactionType: models.TxTypeDeposit,
		Amount:          acct.Balance,
		Description:     "Hesap açılış yatırımı",
		Status:          models.TxStatusCompleted,
		TransactionDate: at,
		PostedDate:      &at,
		ReferenceNumber: &ref,
		BalanceAfter:    acct.Balance,
	}
	g.snap.Transactions = append(g.snap.Transactions, tx)
	return tx
}

var loanTerms = []int{12, 24, 36, 48, 60}

var loanTypes = []models.LoanType{models.LoanTypePersonal, models.LoanTypeAuto, models.LoanTypeMortgage}

// generateLoan creates an active loan part way through its term, or
// occasionally one that is already paid off.
func (g *Generator) generateLoan(c *models.Customer) {
	id := g.ids.Next(ledger.KindLoan)
	typ := loanTypes[g.rng.WeightedPick([]int{60, 30, 10})]
	term := utils.Pick(g.rng, loanTerms)

	var principal utils.Money
	switch typ {
	case models.LoanTypeMortgage:
		principal = g.amount(500000, 3000000, 10000)
		term *= 2
	case models.LoanTypeAuto:
		principal = g.amount(100000, 800000, 5000)
	default:
		principal = g.amount(5000, 150000, 500)
	}

	rate := float64(g.rng.IntRange(150, 450)) / 100
	interest := utils.FromFloat(principal.ToDollars() * rate / 100 * float64(term) / 12)
	monthly := utils.Money(int64(principal.Add(interest)) / int64(term)).RoundToNearest(utils.Dollars(1))

	elapsed := g.rng.IntRange(1, term-1)
	start := g.base.AddDate(0, -elapsed, 0)
	start = time.Date(start.Year(), start.Month(), 1, 0, 0, 0, 0, time.UTC)
	remaining := principal.Mul(int64(term - elapsed))
	remaining = utils.Money(int64(remaining) / int64(term)).RoundToNearest(utils.Dollars(1))

	loan := models.Loan{
		LoanID:          id,
		CustomerID:      c.CustomerID,
		LoanType:        typ,
		LoanNumber:      fmt.Sprintf("LN-%d-%s", start.Year(), suffix(id)),
		Status:          models.LoanStatusActive,
		PrincipalAmount: principal,
		CurrentBalance:  remaining,
		InterestRate:    rate,
		MonthlyPayment:  monthly,
		TermMonths:      term,
		StartDate:       models.NewDate(start),
		MaturityDate:    models.NewDate(start.AddDate(0, term, 0)),
	}
	last := models.NewDate(start.AddDate(0, elapsed, 0))
	loan.LastPaymentDate = &last

	if g.rng.Probability(0.1) {
		loan.Status = models.LoanStatusPaidOff
		loan.CurrentBalance = 0
	} else {
		next := models.NewDate(start.AddDate(0, elapsed+1, 0))
		loan.NextPaymentDate = &next
	}
	if typ == models.LoanTypeAuto {
		desc := utils.Pick(g.rng, collateral)
		loan.CollateralDescription = &desc
	}

	c.LoanIDs = append(c.LoanIDs, id)
	g.snap.Loans = append(g.snap.Loans, loan)
}

// generateCard creates a card whose balance and available credit add up
// to the limit.
func (g *Generator) generateCard(c *models.Customer) {
	id := g.ids.Next(ledger.KindCreditCard)
	limit := g.amount(5000, 50000, 500)
	balance := utils.RandomAmount(g.rng, 0, limit.Mul(8)/10).RoundToNearest(utils.Dollars(1))

	card := models.CreditCard{
		CardID:          id,
		CustomerID:      c.CustomerID,
		CardNumber:      "****-****-****-" + suffix(id),
		Status:          models.AccountStatusActive,
		CreditLimit:     limit,
		AvailableCredit: limit.Sub(balance),
		CurrentBalance:  balance,
		MinimumPayment:  (balance / 5).RoundToNearest(utils.Dollars(1)),
		InterestRate:    float64(g.rng.IntRange(300, 500)) / 100,
		CreatedDate:     models.NewTimestamp(g.daysAgo(30, 5*365)),
	}
	if balance.IsPositive() {
		due := models.NewDate(g.base.AddDate(0, 0, g.rng.IntRange(5, 25)))
		card.PaymentDueDate = &due
	}

	c.CreditCardIDs = append(c.CreditCardIDs, id)
	g.snap.CreditCards = append(g.snap.CreditCards, card)
}

// suffix returns the numeric part of a "<kind>_<n>" identifier
func suffix(id string) string {
	return id[strings.LastIndexByte(id, '_')+1:]
}
