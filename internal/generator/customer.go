package generator

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/willfong/mockbank/internal/ledger"
	"github.com/willfong/mockbank/internal/models"
	"github.com/willfong/mockbank/internal/utils"
)

// generateCustomer creates a single customer with no products yet
func (g *Generator) generateCustomer() models.Customer {
	id := g.ids.Next(ledger.KindCustomer)

	first := utils.Pick(g.rng, femaleFirstNames)
	if g.rng.Bool() {
		first = utils.Pick(g.rng, maleFirstNames)
	}
	last := utils.Pick(g.rng, lastNames)
	c := cities[g.rng.WeightedPick(cityWeights)]

	born := g.daysAgo(18*365, 80*365)
	created := g.daysAgo(30, 10*365)

	occupation := utils.Pick(g.rng, occupations)
	income := g.amount(17000, 150000, 500)

	cust := models.Customer{
		CustomerID:  id,
		FirstName:   first,
		LastName:    last,
		DateOfBirth: born.Format("2006-01-02"),
		TCNo:        g.nationalID(),
		Email:       g.email(first, last),
		PhoneNumber: fmt.Sprintf("+90 %s %s %s %s",
			utils.Pick(g.rng, mobilePrefixes), g.digits(3), g.digits(2), g.digits(2)),
		Address: models.Address{
			Street:     fmt.Sprintf("%s No: %d Daire: %d", utils.Pick(g.rng, streets), g.rng.IntRange(1, 250), g.rng.IntRange(1, 40)),
			District:   utils.Pick(g.rng, c.districts),
			City:       c.name,
			PostalCode: fmt.Sprintf("%05d", c.postalBase+g.rng.IntRange(1, 999)),
			Country:    models.DefaultCountry,
		},
		Status:            models.CustomerStatusActive,
		AccountIDs:        []string{},
		LoanIDs:           []string{},
		CreditCardIDs:     []string{},
		CreatedDate:       models.NewTimestamp(created),
		KYCVerified:       g.rng.Probability(0.9),
		RiskScore:         g.rng.IntRange(300, 850),
		Occupation:        &occupation,
		MonthlyIncome:     &income,
		PreferredLanguage: models.DefaultPreferredLanguage,
	}
	if g.rng.Probability(0.8) {
		login := models.NewTimestamp(g.daysAgo(0, 60))
		cust.LastLoginDate = &login
	}
	return cust
}

// nationalID returns an 11-digit TC number that passes the checksum rules:
// no leading zero, the tenth digit from the odd/even sums, the eleventh
// from the sum of the first ten.
func (g *Generator) nationalID() string {
	var d [11]int
	d[0] = g.rng.IntRange(1, 9)
	for i := 1; i < 9; i++ {
		d[i] = g.rng.IntN(10)
	}
	odd := d[0] + d[2] + d[4] + d[6] + d[8]
	even := d[1] + d[3] + d[5] + d[7]
	d[9] = ((odd*7-even)%10 + 10) % 10

	sum := 0
	for i := 0; i < 10; i++ {
		sum += d[i]
	}
	d[10] = sum % 10

	var sb strings.Builder
	for _, n := range d {
		sb.WriteByte(byte('0' + n))
	}
	return sb.String()
}

func (g *Generator) email(first, last string) string {
	local := asciiLower(first) + "." + asciiLower(last)
	if g.rng.Probability(0.3) {
		local += fmt.Sprintf("%d", g.rng.IntRange(1, 99))
	}
	return local + "@email.com"
}

func (g *Generator) digits(n int) string {
	b := make([]byte, n)
	for i := range b {
		b[i] = byte('0' + g.rng.IntN(10))
	}
	return string(b)
}

func asciiLower(s string) string {
	var sb strings.Builder
	for _, r := range s {
		if repl, ok := emailSafe[r]; ok {
			sb.WriteString(repl)
			continue
		}
		if unicode.IsLetter(r) {
			sb.WriteRune(unicode.ToLower(r))
		}
	}
	return sb.String()
}
