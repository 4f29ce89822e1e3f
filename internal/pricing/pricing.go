// Package pricing computes displayable quote totals from the catalog.
// Every function here is pure: identical inputs always produce identical
// outputs, and nothing touches the network or storage.
package pricing

import (
	"fmt"
	"math"
	"strconv"

	"github.com/tukang-design/studio-api/internal/catalog"
)

// PaymentPlan selects how the quoted total is collected.
type PaymentPlan string

const (
	PlanUnset        PaymentPlan = ""
	PlanFull         PaymentPlan = "full"
	PlanInstallments PaymentPlan = "installments"
)

// Valid reports whether p is a recognised plan (unset counts as valid).
func (p PaymentPlan) Valid() bool {
	switch p {
	case PlanUnset, PlanFull, PlanInstallments:
		return true
	}
	return false
}

// DomainChoice is the user's answer to the domain question.
type DomainChoice string

const (
	DomainUnset    DomainChoice = ""
	DomainExisting DomainChoice = "existing"
	DomainNew      DomainChoice = "new"
)

// Valid reports whether d is a recognised choice (unset counts as valid).
func (d DomainChoice) Valid() bool {
	switch d {
	case DomainUnset, DomainExisting, DomainNew:
		return true
	}
	return false
}

const (
	// FullPaymentDiscountPct is applied when the whole amount is paid up front.
	FullPaymentDiscountPct = 10
	// InstallmentParts is the number of equal installment payments.
	InstallmentParts = 3
)

// Schedule describes how a quoted total is collected over time.
type Schedule struct {
	Plan     PaymentPlan `json:"plan"`
	DueNow   int64       `json:"dueNow"`
	DueLater []int64     `json:"dueLater"`
}

// ServicePrice returns the tabulated base price for a service in a region.
func ServicePrice(svc *catalog.ServiceOption, region catalog.Region) int64 {
	if svc == nil {
		return 0
	}
	return svc.Prices[region]
}

// AddOnPrice returns the tabulated price for an add-on in a region.
func AddOnPrice(addOn *catalog.AddOn, region catalog.Region) int64 {
	if addOn == nil {
		return 0
	}
	return addOn.Prices[region]
}

// DomainSurcharge is the fee added when the project needs a new domain.
// It is the domain add-on's tabulated price.
func DomainSurcharge(region catalog.Region) int64 {
	return AddOnPrice(catalog.AddOnByID(catalog.DomainAddOnID), region)
}

// Total computes the quote total: base service price, plus the domain
// surcharge when a new domain is requested, plus every selected add-on
// other than the domain add-on (which is priced once, via the surcharge).
func Total(svc *catalog.ServiceOption, region catalog.Region, domain DomainChoice, selectedAddOns []string) int64 {
	total := ServicePrice(svc, region)
	if domain == DomainNew {
		total += DomainSurcharge(region)
	}
	for _, id := range selectedAddOns {
		if id == catalog.DomainAddOnID {
			continue
		}
		total += AddOnPrice(catalog.AddOnByID(id), region)
	}
	return total
}

// ApplyPlan splits a total into a payment schedule.
// PlanFull takes FullPaymentDiscountPct off the total. PlanInstallments
// splits the total into InstallmentParts equal payments; each part is
// rounded half-up independently, so the recombined sum may differ from the
// total by at most rounding error.
func ApplyPlan(total int64, plan PaymentPlan) Schedule {
	switch plan {
	case PlanFull:
		discounted := roundHalfUp(float64(total) * (1 - float64(FullPaymentDiscountPct)/100))
		return Schedule{Plan: PlanFull, DueNow: discounted}
	case PlanInstallments:
		part := roundHalfUp(float64(total) / InstallmentParts)
		later := make([]int64, InstallmentParts-1)
		for i := range later {
			later[i] = part
		}
		return Schedule{Plan: PlanInstallments, DueNow: part, DueLater: later}
	default:
		return Schedule{Plan: plan, DueNow: total}
	}
}

// Format renders an amount with the region's currency prefix and simple
// thousands grouping, e.g. "RM4,500".
func Format(amount int64, region catalog.Region) string {
	return region.CurrencyPrefix() + group(amount)
}

func group(amount int64) string {
	if amount < 0 {
		return "-" + group(-amount)
	}
	s := strconv.FormatInt(amount, 10)
	if len(s) <= 3 {
		return s
	}
	var out []byte
	lead := len(s) % 3
	if lead > 0 {
		out = append(out, s[:lead]...)
	}
	for i := lead; i < len(s); i += 3 {
		if len(out) > 0 {
			out = append(out, ',')
		}
		out = append(out, s[i:i+3]...)
	}
	return string(out)
}

func roundHalfUp(v float64) int64 {
	return int64(math.Floor(v + 0.5))
}

// Describe renders a one-line schedule summary for notification emails.
func Describe(s Schedule, region catalog.Region) string {
	switch s.Plan {
	case PlanInstallments:
		return fmt.Sprintf("%s now, then %d payments of %s",
			Format(s.DueNow, region), len(s.DueLater), Format(s.DueNow, region))
	case PlanFull:
		return fmt.Sprintf("%s paid in full (%d%% discount applied)", Format(s.DueNow, region), FullPaymentDiscountPct)
	default:
		return Format(s.DueNow, region)
	}
}
