package domain

import (
	"strings"
	"time"
)

// QuoteTTL is how long an ephemeral quote seed stays usable. Anything older
// must be discarded on read even if the storage layer still has it.
const QuoteTTL = 24 * time.Hour

// QuoteSeed is the slice of a draft that survives a navigation boundary:
// the product/plan selection and payment frequency a user picked before
// being bounced through login. It deliberately has no premium field.
type QuoteSeed struct {
	ProductID        string           `json:"product_id,omitempty"`
	PlanID           string           `json:"plan_id,omitempty"`
	PaymentFrequency PaymentFrequency `json:"payment_frequency,omitempty"`
	CreatedAt        int64            `json:"created_at"` // epoch millis
}

// HasSelection reports whether the seed carries a usable product or plan.
func (q QuoteSeed) HasSelection() bool {
	return q.ProductID != "" || q.PlanID != ""
}

// Expired reports whether the seed is older than QuoteTTL at now.
func (q QuoteSeed) Expired(now time.Time) bool {
	if q.CreatedAt == 0 {
		return true
	}
	return now.UnixMilli()-q.CreatedAt > QuoteTTL.Milliseconds()
}

// CalculatorParams is the premium-calculator page's remembered input,
// stored alongside quote seeds but never consulted by draft restoration.
type CalculatorParams struct {
	ProductID        string           `json:"product_id,omitempty"`
	PlanID           string           `json:"plan_id,omitempty"`
	Line             InsuranceLine    `json:"line,omitempty"`
	PaymentFrequency PaymentFrequency `json:"payment_frequency,omitempty"`
	PremiumAmount    float64          `json:"premium_amount,omitempty"`
	Source           string           `json:"source,omitempty"`
	CreatedAt        int64            `json:"created_at"`
}

// NormalizeFrequency maps free-form frequency input to the internal enum.
// Unrecognized values fall back to annual.
func NormalizeFrequency(raw string) PaymentFrequency {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "monthly":
		return FrequencyMonthly
	case "quarterly":
		return FrequencyQuarterly
	case "semi-annual", "semi_annual", "semiannual":
		return FrequencySemiAnnual
	case "single", "lump-sum", "lump_sum", "lumpsum":
		return FrequencyLumpSum
	case "annual", "yearly":
		return FrequencyAnnual
	default:
		return FrequencyAnnual
	}
}
