package domain

import "time"

// InsuranceLine identifies which product line an application belongs to.
// The line is fixed when a wizard session is created and never changes.
type InsuranceLine string

const (
	LineLife  InsuranceLine = "life"
	LineMotor InsuranceLine = "motor"
	LineHome  InsuranceLine = "home"
)

// ValidLine reports whether l is one of the supported insurance lines.
func ValidLine(l InsuranceLine) bool {
	switch l {
	case LineLife, LineMotor, LineHome:
		return true
	}
	return false
}

// PaymentFrequency is the normalized premium payment schedule.
type PaymentFrequency string

const (
	FrequencyMonthly    PaymentFrequency = "monthly"
	FrequencyQuarterly  PaymentFrequency = "quarterly"
	FrequencySemiAnnual PaymentFrequency = "semi_annual"
	FrequencyAnnual     PaymentFrequency = "annual"
	FrequencyLumpSum    PaymentFrequency = "lump_sum"
)

// Applicant holds the personal details collected in the first wizard step.
// Fields are prefilled from the profile service when a profile exists.
type Applicant struct {
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

// HealthDeclaration is the life-line detail region.
type HealthDeclaration struct {
	IsSmoker          bool   `json:"is_smoker"`
	HasChronicIllness bool   `json:"has_chronic_illness"`
	ChronicDetails    string `json:"chronic_details,omitempty"`
	HeightCM          int    `json:"height_cm,omitempty"`
	WeightKG          int    `json:"weight_kg,omitempty"`
	HealthStatus      string `json:"health_status,omitempty"`
}

// VehicleDetails is the motor-line detail region.
type VehicleDetails struct {
	RegistrationNo string `json:"registration_no,omitempty"`
	Make           string `json:"make,omitempty"`
	Model          string `json:"model,omitempty"`
	Year           int    `json:"year,omitempty"`
	ChassisNo      string `json:"chassis_no,omitempty"`
	EstimatedValue float64 `json:"estimated_value,omitempty"`
	UsageType      string `json:"usage_type,omitempty"`
}

// PropertyDetails is the home-line detail region.
type PropertyDetails struct {
	Address        string  `json:"address,omitempty"`
	PropertyType   string  `json:"property_type,omitempty"`
	YearBuilt      int     `json:"year_built,omitempty"`
	EstimatedValue float64 `json:"estimated_value,omitempty"`
	IsRented       bool    `json:"is_rented"`
}

// Beneficiary is a life-insurance nominee.
type Beneficiary struct {
	FullName     string  `json:"full_name"`
	Relationship string  `json:"relationship,omitempty"`
	IDNumber     string  `json:"id_number,omitempty"`
	SharePercent float64 `json:"share_percent,omitempty"`
}

// DocumentRef points at an uploaded supporting document.
type DocumentRef struct {
	Name       string    `json:"name"`
	URL        string    `json:"url"`
	UploadedAt time.Time `json:"uploaded_at"`
}

// ApplicationDraft is the record a wizard session accumulates across steps.
// Exactly one of the line detail regions is populated, matching Line.
// PremiumAmount is never restored from a persisted draft; it is written only
// by the premium quote path once enough applicant data is known.
type ApplicationDraft struct {
	Line             InsuranceLine      `json:"line"`
	ProductID        string             `json:"product_id,omitempty"`
	PlanID           string             `json:"plan_id,omitempty"`
	PaymentFrequency PaymentFrequency   `json:"payment_frequency"`
	PremiumAmount    float64            `json:"premium_amount,omitempty"`
	Applicant        Applicant          `json:"applicant"`
	HealthDeclaration *HealthDeclaration `json:"health_declaration,omitempty"`
	VehicleDetails    *VehicleDetails    `json:"vehicle_details,omitempty"`
	PropertyDetails   *PropertyDetails   `json:"property_details,omitempty"`
	Beneficiaries    []Beneficiary      `json:"beneficiaries,omitempty"`
	Documents        []DocumentRef      `json:"documents,omitempty"`
}

// NewDraft builds a blank draft for a line, with the matching detail region
// initialized and everything else empty. The seed carries product/plan and
// frequency only; a premium is never part of a seed.
func NewDraft(line InsuranceLine, seed QuoteSeed) ApplicationDraft {
	d := ApplicationDraft{
		Line:             line,
		ProductID:        seed.ProductID,
		PlanID:           seed.PlanID,
		PaymentFrequency: seed.PaymentFrequency,
	}
	if d.PaymentFrequency == "" {
		d.PaymentFrequency = FrequencyAnnual
	}
	switch line {
	case LineLife:
		d.HealthDeclaration = &HealthDeclaration{}
	case LineMotor:
		d.VehicleDetails = &VehicleDetails{}
	case LineHome:
		d.PropertyDetails = &PropertyDetails{}
	}
	return d
}

// ApplicationStatus mirrors the backend's application lifecycle.
type ApplicationStatus string

const (
	StatusDraft       ApplicationStatus = "Draft"
	StatusSubmitted   ApplicationStatus = "Submitted"
	StatusUnderReview ApplicationStatus = "UnderReview"
	StatusApproved    ApplicationStatus = "Approved"
	StatusRejected    ApplicationStatus = "Rejected"
)

// Decision is a manager's verdict on a submitted application.
type Decision struct {
	Status      ApplicationStatus `json:"status"`
	ReviewNotes string            `json:"review_notes,omitempty"`
}
