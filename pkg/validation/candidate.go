package validation

import (
	"fmt"
	"regexp"
	"strings"
	"time"
)

// FieldResult is the outcome of a single field validation. Validators never
// panic: invalid input produces Valid=false plus a re-promptable message.
type FieldResult struct {
	Valid      bool
	Message    string
	Normalized string
}

var (
	nonDigitRegex  = regexp.MustCompile(`\D`)
	fullNameRegex  = regexp.MustCompile(`^[a-zA-ZáéíóúÁÉÍÓÚñÑüÜ ]+$`)
	emailRegex     = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)
	birthDateRegex = regexp.MustCompile(`^(\d{1,2})[/\-. ](\d{1,2})[/\-. ](\d{4})$`)
)

// Age candidates must fall in, inclusive.
const (
	MinAge = 18
	MaxAge = 60
)

// ValidateDNI strips non-digits and accepts exactly 8 digits.
func ValidateDNI(input string) FieldResult {
	digits := nonDigitRegex.ReplaceAllString(input, "")
	if len(digits) != 8 {
		return FieldResult{Message: "El DNI debe tener exactamente 8 dígitos"}
	}
	return FieldResult{Valid: true, Normalized: digits}
}

// ValidatePhone strips non-digits and accepts a 9-digit mobile number
// starting with 9.
func ValidatePhone(input string) FieldResult {
	digits := nonDigitRegex.ReplaceAllString(input, "")
	if len(digits) != 9 || digits[0] != '9' {
		return FieldResult{Message: "El celular debe tener 9 dígitos y empezar con 9"}
	}
	return FieldResult{Valid: true, Normalized: digits}
}

// ValidateName requires a trimmed length of at least 3 characters, two or
// more whitespace-separated tokens, and letters or spaces only.
func ValidateName(input string) FieldResult {
	name := strings.TrimSpace(input)
	if len(name) < 3 {
		return FieldResult{Message: "El nombre es demasiado corto"}
	}
	if len(strings.Fields(name)) < 2 {
		return FieldResult{Message: "Ingresa tu nombre y apellido"}
	}
	if !fullNameRegex.MatchString(name) {
		return FieldResult{Message: "El nombre solo puede contener letras y espacios"}
	}
	return FieldResult{Valid: true, Normalized: name}
}

// ValidateEmail accepts a standard email-shaped token, lower-cased.
func ValidateEmail(input string) FieldResult {
	email := strings.ToLower(strings.TrimSpace(input))
	if !emailRegex.MatchString(email) {
		return FieldResult{Message: "El correo electrónico no es válido"}
	}
	return FieldResult{Valid: true, Normalized: email}
}

// ParseBirthDate parses D/M/YYYY with /, -, . or space separators and
// plausibility ranges (day 1-31, month 1-12, year 1950-2010). Returns the
// parsed date and the normalized DD/MM/YYYY string.
func ParseBirthDate(input string) (time.Time, string, bool) {
	m := birthDateRegex.FindStringSubmatch(strings.TrimSpace(input))
	if m == nil {
		return time.Time{}, "", false
	}
	var day, month, year int
	fmt.Sscanf(m[1], "%d", &day)
	fmt.Sscanf(m[2], "%d", &month)
	fmt.Sscanf(m[3], "%d", &year)
	if day < 1 || day > 31 || month < 1 || month > 12 || year < 1950 || year > 2010 {
		return time.Time{}, "", false
	}
	date := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	// Reject rollovers like 31/02
	if date.Day() != day || int(date.Month()) != month {
		return time.Time{}, "", false
	}
	return date, fmt.Sprintf("%02d/%02d/%04d", day, month, year), true
}

// AgeAt computes full years elapsed, decrementing when the birthday has not
// yet been reached this year.
func AgeAt(birth, now time.Time) int {
	age := now.Year() - birth.Year()
	if now.Month() < birth.Month() ||
		(now.Month() == birth.Month() && now.Day() < birth.Day()) {
		age--
	}
	return age
}

// ValidateAge parses a birth date and checks the derived age against the
// [MinAge, MaxAge] range as of now.
func ValidateAge(input string, now time.Time) FieldResult {
	birth, normalized, ok := ParseBirthDate(input)
	if !ok {
		return FieldResult{Message: "La fecha de nacimiento no es válida (usa DD/MM/AAAA)"}
	}
	age := AgeAt(birth, now)
	if age < MinAge || age > MaxAge {
		return FieldResult{Message: fmt.Sprintf("Debes tener entre %d y %d años (edad calculada: %d)", MinAge, MaxAge, age)}
	}
	return FieldResult{Valid: true, Normalized: normalized}
}

// Availability values a candidate can declare.
const (
	AvailabilityRotating = "rotating"
	AvailabilityClosing  = "closing"
	AvailabilityMixed    = "mixed"
)

// ValidateAvailability checks the declared shift availability against the
// closed set of accepted values.
func ValidateAvailability(input string) FieldResult {
	value := strings.ToLower(strings.TrimSpace(input))
	switch value {
	case AvailabilityRotating, AvailabilityClosing, AvailabilityMixed:
		return FieldResult{Valid: true, Normalized: value}
	}
	return FieldResult{Message: "La disponibilidad debe ser rotativa, de cierre o mixta"}
}

// CandidateInput is the full set of fields the composite validator covers.
type CandidateInput struct {
	Name         string
	BirthDate    string
	DNI          string
	Email        string
	Phone        string
	Availability string
}

// CandidateResult aggregates all field errors; Normalized is populated only
// when every field passed.
type CandidateResult struct {
	Valid      bool
	Errors     []string
	Normalized *CandidateInput
}

// ValidateCandidate runs every field validator and collects all error
// messages instead of stopping at the first failure.
func ValidateCandidate(in CandidateInput, now time.Time) CandidateResult {
	var errs []string
	normalized := CandidateInput{}

	if r := ValidateName(in.Name); r.Valid {
		normalized.Name = r.Normalized
	} else {
		errs = append(errs, r.Message)
	}
	if r := ValidateAge(in.BirthDate, now); r.Valid {
		normalized.BirthDate = r.Normalized
	} else {
		errs = append(errs, r.Message)
	}
	if r := ValidateDNI(in.DNI); r.Valid {
		normalized.DNI = r.Normalized
	} else {
		errs = append(errs, r.Message)
	}
	if r := ValidateEmail(in.Email); r.Valid {
		normalized.Email = r.Normalized
	} else {
		errs = append(errs, r.Message)
	}
	if r := ValidatePhone(in.Phone); r.Valid {
		normalized.Phone = r.Normalized
	} else {
		errs = append(errs, r.Message)
	}
	if r := ValidateAvailability(in.Availability); r.Valid {
		normalized.Availability = r.Normalized
	} else {
		errs = append(errs, r.Message)
	}

	if len(errs) > 0 {
		return CandidateResult{Errors: errs}
	}
	return CandidateResult{Valid: true, Normalized: &normalized}
}
