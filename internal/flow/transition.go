package flow

import (
	"go-recruitment-chatbot/internal/domain"
	"go-recruitment-chatbot/pkg/geo"
)

// ActionType names a side effect the orchestrator must execute after a
// transition. Actions never mutate conversation state themselves.
type ActionType string

const (
	ActionRejected             ActionType = "rejected"
	ActionFindStores           ActionType = "find_stores"
	ActionScheduleInterview    ActionType = "schedule_interview"
	ActionConfirmInterview     ActionType = "confirm_interview"
	ActionCancelInterview      ActionType = "cancel_interview"
	ActionCompleteConversation ActionType = "complete_conversation"
)

// Rejection reasons carried on ActionRejected.
const (
	ReasonTermsDeclined      = "terms_declined"
	ReasonUnderage           = "underage"
	ReasonAvailabilityFilter = "availability_filter"
	ReasonSalaryExpectation  = "salary_expectation_high"
)

type Action struct {
	Type   ActionType
	Reason string
	Detail map[string]float64
}

// Engine evaluates state transitions. The salary threshold knobs are the
// only configuration; everything else is fixed by the flow itself.
type Engine struct {
	DefaultMaxSalary    float64
	SalaryMarginPercent float64
}

func NewEngine(defaultMaxSalary, salaryMarginPercent float64) *Engine {
	return &Engine{
		DefaultMaxSalary:    defaultMaxSalary,
		SalaryMarginPercent: salaryMarginPercent,
	}
}

// Transition maps (state, accumulated data, message) to the next state and
// the side-effect actions to run. It is deterministic and never errors:
// unknown input simply keeps the conversation in place.
func (e *Engine) Transition(state domain.ConversationState, data domain.CandidateData, message string) (domain.ConversationState, []Action) {
	switch state {
	case domain.StateInitial:
		return domain.StateTerms, nil

	case domain.StateTerms:
		if data.TermsAccepted == nil {
			return state, nil
		}
		if !*data.TermsAccepted {
			return domain.StateRejected, []Action{{Type: ActionRejected, Reason: ReasonTermsDeclined}}
		}
		return domain.StateBasicData, nil

	case domain.StateBasicData:
		if data.Age != nil && *data.Age < 18 {
			return domain.StateRejected, []Action{{Type: ActionRejected, Reason: ReasonUnderage}}
		}
		if data.Name != nil && data.Age != nil && data.DNI != nil && data.Email != nil {
			return domain.StateHardFilters, nil
		}
		return state, nil

	case domain.StateHardFilters:
		if (data.RotatingShifts != nil && !*data.RotatingShifts) ||
			(data.ClosingShiftsAvailable != nil && !*data.ClosingShiftsAvailable) {
			return domain.StateRejected, []Action{{Type: ActionRejected, Reason: ReasonAvailabilityFilter}}
		}
		if data.RotatingShifts != nil && *data.RotatingShifts &&
			data.ClosingShiftsAvailable != nil && *data.ClosingShiftsAvailable {
			return domain.StateSalaryExpectation, nil
		}
		return state, nil

	case domain.StateSalaryExpectation:
		if data.SalaryExpectation == nil {
			return state, nil
		}
		maxSalary := e.DefaultMaxSalary
		if data.MaxSalary != nil && *data.MaxSalary > 0 {
			maxSalary = *data.MaxSalary
		}
		threshold := maxSalary * (1 + e.SalaryMarginPercent/100)
		if *data.SalaryExpectation > threshold {
			return domain.StateRejected, []Action{{
				Type:   ActionRejected,
				Reason: ReasonSalaryExpectation,
				Detail: map[string]float64{
					"expected":   *data.SalaryExpectation,
					"maxAllowed": threshold,
				},
			}}
		}
		return domain.StateLocationInput, nil

	case domain.StateLocationInput:
		if data.District == nil {
			return state, nil
		}
		return domain.StateStoreList, []Action{{Type: ActionFindStores}}

	case domain.StateStoreList:
		if data.StoreSelection == nil {
			return state, nil
		}
		return domain.StateVacancySelection, nil

	case domain.StateVacancySelection:
		// The selection is assumed valid and the turn advances even when no
		// digit was extracted; the orchestrator resolves whatever index is
		// on record against the presented list.
		return domain.StateScreening, nil

	case domain.StateScreening:
		return domain.StateInterviewSlot, nil

	case domain.StateInterviewSlot:
		return domain.StateConfirmed, []Action{{Type: ActionScheduleInterview}}

	case domain.StateConfirmationPending:
		if affirmativeReply(message) {
			return domain.StateCompleted, []Action{{Type: ActionConfirmInterview}}
		}
		return domain.StateCompleted, []Action{{Type: ActionCancelInterview}}

	case domain.StateConfirmed:
		return domain.StateCompleted, []Action{{Type: ActionCompleteConversation}}

	case domain.StateRejected, domain.StateCompleted:
		return state, nil

	case domain.StateError:
		// Fall back toward the start of the flow on the next turn.
		return domain.StateInitial, nil
	}

	return state, nil
}

func affirmativeReply(message string) bool {
	normalized := geo.Normalize(message)
	if containsNegative(normalized) {
		return false
	}
	return containsAny(normalized, affirmativeKeywords)
}
