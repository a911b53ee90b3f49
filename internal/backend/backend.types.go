package backend

import (
	"time"

	"portal-service/internal/domain"
)

// Product is a catalog entry from the insurance backend.
type Product struct {
	ID          string               `json:"id"`
	Name        string               `json:"name"`
	Line        domain.InsuranceLine `json:"type"`
	Description string               `json:"description,omitempty"`
	IsActive    bool                 `json:"is_active"`
}

// Plan is a coverage option under a product.
type Plan struct {
	ID             string  `json:"id"`
	ProductID      string  `json:"product_id"`
	Name           string  `json:"name"`
	CoverageAmount float64 `json:"coverage_amount"`
	BaseRate       float64 `json:"base_rate"`
	TermYears      int     `json:"term_years,omitempty"`
}

// PremiumRequest is the input to the backend premium calculation. Premiums
// depend on the applicant, which is why a stored premium is never trusted.
type PremiumRequest struct {
	PlanID           string                  `json:"planId"`
	Age              int                     `json:"age"`
	Gender           string                  `json:"gender,omitempty"`
	HealthStatus     string                  `json:"healthStatus,omitempty"`
	OccupationRisk   string                  `json:"occupationRisk,omitempty"`
	PaymentFrequency domain.PaymentFrequency `json:"paymentFrequency"`
}

type premiumResponse struct {
	CalculatedPremium float64 `json:"calculatedPremium"`
}

// Profile is the applicant profile kept by the backend.
type Profile struct {
	FirstName   string `json:"first_name,omitempty"`
	LastName    string `json:"last_name,omitempty"`
	Email       string `json:"email,omitempty"`
	Phone       string `json:"phone,omitempty"`
	IDNumber    string `json:"id_number,omitempty"`
	DateOfBirth string `json:"date_of_birth,omitempty"`
	Gender      string `json:"gender,omitempty"`
	Occupation  string `json:"occupation,omitempty"`
	Address     string `json:"address,omitempty"`
	City        string `json:"city,omitempty"`
	Country     string `json:"country,omitempty"`
}

// Applicant maps a backend profile onto the draft's applicant region.
func (p *Profile) Applicant() domain.Applicant {
	return domain.Applicant{
		FirstName:   p.FirstName,
		LastName:    p.LastName,
		Email:       p.Email,
		Phone:       p.Phone,
		IDNumber:    p.IDNumber,
		DateOfBirth: p.DateOfBirth,
		Gender:      p.Gender,
		Occupation:  p.Occupation,
		Address:     p.Address,
		City:        p.City,
		Country:     p.Country,
	}
}

// RemoteDraft is the backend's "latest draft" for a line. Only the selection
// fields are consumed; the backend also returns a premium_amount which is
// intentionally not represented here (stale premiums must not seed a wizard).
type RemoteDraft struct {
	ProductID        string `json:"product_id,omitempty"`
	PlanID           string `json:"plan_id,omitempty"`
	PaymentFrequency string `json:"payment_frequency,omitempty"`
}

// ApplicationReceipt is returned by the backend on successful creation.
type ApplicationReceipt struct {
	ID                string `json:"id"`
	ApplicationNumber string `json:"applicationNumber"`
}

// ApplicationSummary is a row in a user's or manager's application list.
type ApplicationSummary struct {
	ID                string                   `json:"id"`
	ApplicationNumber string                   `json:"application_number"`
	UserID            string                   `json:"user_id,omitempty"`
	Line              domain.InsuranceLine     `json:"type"`
	ProductName       string                   `json:"product_name,omitempty"`
	PlanName          string                   `json:"plan_name,omitempty"`
	PremiumAmount     float64                  `json:"premium_amount,omitempty"`
	Status            domain.ApplicationStatus `json:"status"`
	SubmittedAt       *time.Time               `json:"submitted_at,omitempty"`
}

// ApplicationDetail is the full backend view of one application.
type ApplicationDetail struct {
	ApplicationSummary
	Draft       domain.ApplicationDraft `json:"draft"`
	ReviewNotes string                  `json:"review_notes,omitempty"`
	ReviewedAt  *time.Time              `json:"reviewed_at,omitempty"`
}

// PaymentRequest executes a payment against an approved application.
type PaymentRequest struct {
	PaymentMethod string `json:"paymentMethod"`
	TransactionID string `json:"transactionId"`
	Notes         string `json:"notes,omitempty"`
}

// PaymentReceipt is the backend's confirmation of a payment.
type PaymentReceipt struct {
	ApplicationID string    `json:"application_id"`
	TransactionID string    `json:"transaction_id"`
	Status        string    `json:"status"`
	PaidAt        time.Time `json:"paid_at"`
}
