package domain

import (
	"context"
	"time"
)

// ConversationState is the closed set of states the intake flow moves through.
type ConversationState string

const (
	StateInitial             ConversationState = "initial"
	StateTerms               ConversationState = "terms"
	StateBasicData           ConversationState = "basic_data"
	StateHardFilters         ConversationState = "hard_filters"
	StateSalaryExpectation   ConversationState = "salary_expectation"
	StateLocationInput       ConversationState = "location_input"
	StateStoreList           ConversationState = "store_list"
	StateVacancySelection    ConversationState = "vacancy_selection"
	StateScreening           ConversationState = "screening"
	StateInterviewSlot       ConversationState = "interview_slot"
	StateConfirmationPending ConversationState = "confirmation_pending"
	StateConfirmed           ConversationState = "confirmed"
	StateCompleted           ConversationState = "completed"
	StateRejected            ConversationState = "rejected"
	StateError               ConversationState = "error"
)

// Terminal reports whether the state is absorbing: once reached, the
// conversation is deactivated and no further transitions happen.
func (s ConversationState) Terminal() bool {
	return s == StateCompleted || s == StateRejected
}

type MessageRole string

const (
	RoleUser      MessageRole = "user"
	RoleAssistant MessageRole = "assistant"
)

type Message struct {
	Role      MessageRole `json:"role"`
	Content   string      `json:"content"`
	Timestamp time.Time   `json:"timestamp"`
}

// CandidateData accumulates the fields extracted across conversation turns.
// All fields are optional pointers: nil means "not collected yet".
type CandidateData struct {
	Name                   *string      `json:"name,omitempty"`
	BirthDate              *string      `json:"birth_date,omitempty"`
	Age                    *int         `json:"age,omitempty"`
	DNI                    *string      `json:"dni,omitempty"`
	Email                  *string      `json:"email,omitempty"`
	TermsAccepted          *bool        `json:"terms_accepted,omitempty"`
	RotatingShifts         *bool        `json:"rotating_shifts,omitempty"`
	ClosingShiftsAvailable *bool        `json:"closing_shifts_available,omitempty"`
	SalaryExpectation      *float64     `json:"salary_expectation,omitempty"`
	MaxSalary              *float64     `json:"max_salary,omitempty"`
	District               *string      `json:"district,omitempty"`
	GPS                    *Coordinates `json:"gps,omitempty"`
	StoreSelection         *int         `json:"store_selection,omitempty"`
	VacancySelection       *int         `json:"vacancy_selection,omitempty"`
	SelectedStoreID        *string      `json:"selected_store_id,omitempty"`
	SelectedVacancy        *Vacancy     `json:"selected_vacancy,omitempty"`
}

// DeclaredAvailability derives the shift availability the candidate declared
// during the hard-filter stage: both flags true means fully flexible.
func (d *CandidateData) DeclaredAvailability() ShiftType {
	switch {
	case d.RotatingShifts != nil && *d.RotatingShifts &&
		d.ClosingShiftsAvailable != nil && *d.ClosingShiftsAvailable:
		return ShiftMixed
	case d.RotatingShifts != nil && *d.RotatingShifts:
		return ShiftRotating
	case d.ClosingShiftsAvailable != nil && *d.ClosingShiftsAvailable:
		return ShiftClosing
	default:
		return ""
	}
}

// Merge copies fields from in into d, filling only absent fields. Collected
// data is never overwritten; the store/vacancy selections are the exception
// since the candidate may revise them while in the selection states.
func (d *CandidateData) Merge(in CandidateData) {
	if d.Name == nil {
		d.Name = in.Name
	}
	if d.BirthDate == nil {
		d.BirthDate = in.BirthDate
	}
	if d.Age == nil {
		d.Age = in.Age
	}
	if d.DNI == nil {
		d.DNI = in.DNI
	}
	if d.Email == nil {
		d.Email = in.Email
	}
	if d.TermsAccepted == nil {
		d.TermsAccepted = in.TermsAccepted
	}
	if d.RotatingShifts == nil {
		d.RotatingShifts = in.RotatingShifts
	}
	if d.ClosingShiftsAvailable == nil {
		d.ClosingShiftsAvailable = in.ClosingShiftsAvailable
	}
	if d.SalaryExpectation == nil {
		d.SalaryExpectation = in.SalaryExpectation
	}
	if d.MaxSalary == nil {
		d.MaxSalary = in.MaxSalary
	}
	if d.District == nil {
		d.District = in.District
	}
	if d.GPS == nil {
		d.GPS = in.GPS
	}
	if in.StoreSelection != nil {
		d.StoreSelection = in.StoreSelection
	}
	if in.VacancySelection != nil {
		d.VacancySelection = in.VacancySelection
	}
	if in.SelectedStoreID != nil {
		d.SelectedStoreID = in.SelectedStoreID
	}
	if in.SelectedVacancy != nil {
		d.SelectedVacancy = in.SelectedVacancy
	}
}

// Conversation is keyed by phone number: one active conversation per phone
// across all tenants.
type Conversation struct {
	Phone         string            `json:"phone"`
	TenantID      string            `json:"tenant_id"`
	OriginID      string            `json:"origin_id"`
	State         ConversationState `json:"state"`
	CandidateData CandidateData     `json:"candidate_data"`
	Messages      []Message         `json:"messages"`
	Active        bool              `json:"active"`
	CreatedAt     time.Time         `json:"created_at"`
	UpdatedAt     time.Time         `json:"updated_at"`
}

// Reset clears accumulated state, used when a phone number switches tenants.
func (c *Conversation) Reset(tenantID, originID string) {
	c.TenantID = tenantID
	c.OriginID = originID
	c.State = StateInitial
	c.CandidateData = CandidateData{}
	c.Messages = nil
	c.Active = true
}

type ConversationRepository interface {
	GetByPhone(ctx context.Context, phone string) (*Conversation, error)
	Upsert(ctx context.Context, conv *Conversation) error
}

type ChatReply struct {
	Response string            `json:"response"`
	State    ConversationState `json:"state"`
	TenantID string            `json:"tenant_id"`
}

type ChatUsecase interface {
	HandleMessage(ctx context.Context, phone, message, originID string) (*ChatReply, error)
}
