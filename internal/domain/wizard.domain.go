package domain

import (
	"sort"
	"time"

	"portal-service/pkg/xerrors"
)

// WizardStatus represents the lifecycle of a wizard session.
type WizardStatus string

const (
	WizardActive    WizardStatus = "active"
	WizardSubmitted WizardStatus = "submitted"
)

// StepCount returns the fixed number of wizard steps for a line.
func StepCount(line InsuranceLine) int {
	if line == LineLife {
		return 6
	}
	return 5
}

// WizardSession is the server-side state of one in-progress application.
// All transitions go through the methods below; handlers and step payloads
// never touch CurrentStep or the draft regions directly.
type WizardSession struct {
	ID             string            `json:"id"`
	UserID         string            `json:"user_id"`
	Draft          ApplicationDraft  `json:"draft"`
	CurrentStep    int               `json:"current_step"`
	CompletedSteps []int             `json:"completed_steps,omitempty"`
	Status         WizardStatus      `json:"status"`
	SeedSource     string            `json:"seed_source,omitempty"`
	CreatedAt      time.Time         `json:"created_at"`
	UpdatedAt      time.Time         `json:"updated_at"`
}

// StepPartial is one step's contribution to the draft. Each non-nil region
// replaces the corresponding draft region wholesale; nil regions are left
// untouched. There is deliberately no line and no premium field here.
type StepPartial struct {
	ProductID         *string            `json:"product_id,omitempty"`
	PlanID            *string            `json:"plan_id,omitempty"`
	PaymentFrequency  *PaymentFrequency  `json:"payment_frequency,omitempty"`
	Applicant         *Applicant         `json:"applicant,omitempty"`
	HealthDeclaration *HealthDeclaration `json:"health_declaration,omitempty"`
	VehicleDetails    *VehicleDetails    `json:"vehicle_details,omitempty"`
	PropertyDetails   *PropertyDetails   `json:"property_details,omitempty"`
	Beneficiaries     *[]Beneficiary     `json:"beneficiaries,omitempty"`
	Documents         *[]DocumentRef     `json:"documents,omitempty"`
}

// NewWizardSession starts a session at step 1 with the given draft.
func NewWizardSession(id, userID string, draft ApplicationDraft, seedSource string) *WizardSession {
	now := time.Now()
	return &WizardSession{
		ID:          id,
		UserID:      userID,
		Draft:       draft,
		CurrentStep: 1,
		Status:      WizardActive,
		SeedSource:  seedSource,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

// Advance marks the current step completed and moves forward. At the last
// step it is a no-op and returns false.
func (s *WizardSession) Advance() bool {
	if s.CurrentStep >= StepCount(s.Draft.Line) {
		return false
	}
	s.markCompleted(s.CurrentStep)
	s.CurrentStep++
	return true
}

// Retreat moves one step back without un-marking completion. At step 1 it
// is a no-op and returns false.
func (s *WizardSession) Retreat() bool {
	if s.CurrentStep <= 1 {
		return false
	}
	s.CurrentStep--
	return true
}

// Completed reports whether a step has been visited and passed.
func (s *WizardSession) Completed(step int) bool {
	for _, c := range s.CompletedSteps {
		if c == step {
			return true
		}
	}
	return false
}

func (s *WizardSession) markCompleted(step int) {
	if s.Completed(step) {
		return
	}
	s.CompletedSteps = append(s.CompletedSteps, step)
	sort.Ints(s.CompletedSteps)
}

// MergeStep overlays one step's region(s) onto the draft. A region that does
// not belong to the session's line is rejected rather than silently dropped.
func (s *WizardSession) MergeStep(p StepPartial) error {
	if p.HealthDeclaration != nil && s.Draft.Line != LineLife {
		return xerrors.ErrLineMismatch
	}
	if p.VehicleDetails != nil && s.Draft.Line != LineMotor {
		return xerrors.ErrLineMismatch
	}
	if p.PropertyDetails != nil && s.Draft.Line != LineHome {
		return xerrors.ErrLineMismatch
	}
	if p.Beneficiaries != nil && s.Draft.Line != LineLife {
		return xerrors.ErrLineMismatch
	}

	if p.ProductID != nil {
		s.Draft.ProductID = *p.ProductID
	}
	if p.PlanID != nil {
		s.Draft.PlanID = *p.PlanID
	}
	if p.PaymentFrequency != nil {
		s.Draft.PaymentFrequency = NormalizeFrequency(string(*p.PaymentFrequency))
	}
	if p.Applicant != nil {
		s.Draft.Applicant = *p.Applicant
	}
	if p.HealthDeclaration != nil {
		s.Draft.HealthDeclaration = p.HealthDeclaration
	}
	if p.VehicleDetails != nil {
		s.Draft.VehicleDetails = p.VehicleDetails
	}
	if p.PropertyDetails != nil {
		s.Draft.PropertyDetails = p.PropertyDetails
	}
	if p.Beneficiaries != nil {
		s.Draft.Beneficiaries = *p.Beneficiaries
	}
	if p.Documents != nil {
		s.Draft.Documents = *p.Documents
	}
	s.UpdatedAt = time.Now()
	return nil
}
