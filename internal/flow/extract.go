// Package flow holds the pure conversation logic: per-state data extraction
// and the state transition engine. Nothing here touches a repository or an
// external service, so every rule is unit-testable in isolation.
package flow

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"go-recruitment-chatbot/internal/domain"
	"go-recruitment-chatbot/pkg/geo"
	"go-recruitment-chatbot/pkg/validation"
)

var (
	dniTokenRegex   = regexp.MustCompile(`\b(\d{8,9})\b`)
	emailTokenRegex = regexp.MustCompile(`[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}`)
	birthTokenRegex = regexp.MustCompile(`\b(\d{1,2})[/\-. ](\d{1,2})[/\-. ](\d{4})\b`)
	selectionRegex  = regexp.MustCompile(`\b([1-9])\b`)
	salaryRegex     = regexp.MustCompile(`(?i)(?:s/\s*)?(\d{1,2},\d{3}|\d{3,5})\b`)
	digitRegex      = regexp.MustCompile(`\d`)
)

var affirmativeKeywords = []string{
	"si", "sí", "acepto", "de acuerdo", "ok", "okay", "claro", "está bien", "esta bien", "dale", "ya",
}

var negativeKeywords = []string{
	"no acepto", "no estoy", "no quiero", "no deseo", "no puedo", "rechazo",
}

// Extract inspects one inbound message and returns the partial candidate
// data it yields for the current state. Fields already present in existing
// are skipped (idempotent fill), except the store/vacancy selections which
// the candidate may revise each turn while in their respective states.
func Extract(message string, existing domain.CandidateData, state domain.ConversationState, now time.Time) domain.CandidateData {
	var out domain.CandidateData
	normalized := geo.Normalize(message)

	switch state {
	case domain.StateTerms:
		if existing.TermsAccepted == nil {
			out.TermsAccepted = extractTermsDecision(normalized)
		}

	case domain.StateBasicData:
		if existing.Name == nil {
			out.Name = extractName(message)
		}
		if existing.BirthDate == nil {
			if birthDate, age, ok := extractBirthDate(message, now); ok {
				out.BirthDate = &birthDate
				out.Age = &age
			}
		}
		if existing.DNI == nil {
			out.DNI = extractDNI(message)
		}
		if existing.Email == nil {
			out.Email = extractEmail(message)
		}

	case domain.StateHardFilters:
		decision := extractYesNo(normalized)
		if decision != nil {
			// The first unset flag is the one the question was about.
			if existing.RotatingShifts == nil {
				out.RotatingShifts = decision
			} else if existing.ClosingShiftsAvailable == nil {
				out.ClosingShiftsAvailable = decision
			}
		}

	case domain.StateSalaryExpectation:
		if existing.SalaryExpectation == nil {
			out.SalaryExpectation = extractSalary(message)
		}

	case domain.StateLocationInput:
		if existing.District == nil {
			district := strings.TrimSpace(message)
			if district != "" {
				out.District = &district
			}
		}

	case domain.StateStoreList:
		out.StoreSelection = extractSelection(message)

	case domain.StateVacancySelection:
		out.VacancySelection = extractSelection(message)
	}

	return out
}

// extractTermsDecision checks affirmative keywords first, then negative.
// When both sets match the same message, the negative decision wins: an
// explicit refusal embedded in an otherwise agreeable message must not be
// treated as acceptance.
func extractTermsDecision(normalized string) *bool {
	var decision *bool
	if containsAny(normalized, affirmativeKeywords) {
		decision = boolPtr(true)
	}
	if containsNegative(normalized) {
		decision = boolPtr(false)
	}
	return decision
}

// extractYesNo detects a yes/no answer for the hard-filter questions. A bare
// "no" must be an exact token or followed by a space so words containing
// "no" do not read as refusals.
func extractYesNo(normalized string) *bool {
	if containsNegative(normalized) {
		return boolPtr(false)
	}
	if containsAny(normalized, affirmativeKeywords) {
		return boolPtr(true)
	}
	return nil
}

// containsAny treats single-word keywords as whole tokens so short words
// like "si" do not match inside longer words; multi-word phrases use plain
// containment.
func containsAny(text string, keywords []string) bool {
	tokens := strings.Fields(text)
	for _, kw := range keywords {
		if strings.Contains(kw, " ") {
			if strings.Contains(text, kw) {
				return true
			}
			continue
		}
		for _, tok := range tokens {
			if strings.Trim(tok, ".,!?¡¿") == kw {
				return true
			}
		}
	}
	return false
}

func containsNegative(text string) bool {
	if text == "no" || strings.HasPrefix(text, "no ") {
		return true
	}
	return containsAny(text, negativeKeywords)
}

func extractName(message string) *string {
	candidate := strings.TrimSpace(message)
	if len(candidate) <= 3 || len(candidate) >= 60 {
		return nil
	}
	if digitRegex.MatchString(candidate) {
		return nil
	}
	if r := validation.ValidateName(candidate); r.Valid {
		return &r.Normalized
	}
	return nil
}

func extractBirthDate(message string, now time.Time) (string, int, bool) {
	m := birthTokenRegex.FindString(message)
	if m == "" {
		return "", 0, false
	}
	birth, normalized, ok := validation.ParseBirthDate(m)
	if !ok {
		return "", 0, false
	}
	return normalized, validation.AgeAt(birth, now), true
}

func extractDNI(message string) *string {
	m := dniTokenRegex.FindString(message)
	if m == "" {
		return nil
	}
	return &m
}

func extractEmail(message string) *string {
	m := emailTokenRegex.FindString(message)
	if m == "" {
		return nil
	}
	email := strings.ToLower(m)
	return &email
}

func extractSelection(message string) *int {
	m := selectionRegex.FindString(message)
	if m == "" {
		return nil
	}
	n, err := strconv.Atoi(m)
	if err != nil {
		return nil
	}
	return &n
}

func extractSalary(message string) *float64 {
	m := salaryRegex.FindStringSubmatch(message)
	if m == nil {
		return nil
	}
	raw := strings.ReplaceAll(m[1], ",", "")
	value, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil
	}
	if value < 500 || value > 10000 {
		return nil
	}
	return &value
}

func boolPtr(b bool) *bool { return &b }
