package flow

import (
	"testing"
	"time"

	"go-recruitment-chatbot/internal/domain"

	"github.com/stretchr/testify/assert"
)

var extractNow = time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

func TestExtractTerms(t *testing.T) {
	t.Run("affirmative variants", func(t *testing.T) {
		for _, msg := range []string{"si", "Sí", "acepto", "ok, de acuerdo", "claro"} {
			out := Extract(msg, domain.CandidateData{}, domain.StateTerms, extractNow)
			if assert.NotNil(t, out.TermsAccepted, msg) {
				assert.True(t, *out.TermsAccepted, msg)
			}
		}
	})

	t.Run("negative variants", func(t *testing.T) {
		for _, msg := range []string{"no", "no acepto", "no quiero continuar"} {
			out := Extract(msg, domain.CandidateData{}, domain.StateTerms, extractNow)
			if assert.NotNil(t, out.TermsAccepted, msg) {
				assert.False(t, *out.TermsAccepted, msg)
			}
		}
	})

	t.Run("negative wins when both match", func(t *testing.T) {
		out := Extract("sí entiendo pero no acepto", domain.CandidateData{}, domain.StateTerms, extractNow)
		if assert.NotNil(t, out.TermsAccepted) {
			assert.False(t, *out.TermsAccepted)
		}
	})

	t.Run("ambiguous yields nothing", func(t *testing.T) {
		out := Extract("cuales son los terminos?", domain.CandidateData{}, domain.StateTerms, extractNow)
		assert.Nil(t, out.TermsAccepted)
	})

	t.Run("already answered is idempotent", func(t *testing.T) {
		existing := domain.CandidateData{TermsAccepted: boolP(true)}
		out := Extract("no", existing, domain.StateTerms, extractNow)
		assert.Nil(t, out.TermsAccepted)
	})
}

func TestExtractBasicData(t *testing.T) {
	t.Run("name", func(t *testing.T) {
		out := Extract("Juan Perez", domain.CandidateData{}, domain.StateBasicData, extractNow)
		if assert.NotNil(t, out.Name) {
			assert.Equal(t, "Juan Perez", *out.Name)
		}
	})

	t.Run("name skipped when digits present", func(t *testing.T) {
		out := Extract("Juan Perez 2", domain.CandidateData{}, domain.StateBasicData, extractNow)
		assert.Nil(t, out.Name)
	})

	t.Run("birth date with derived age", func(t *testing.T) {
		out := Extract("15/03/1995", domain.CandidateData{}, domain.StateBasicData, extractNow)
		if assert.NotNil(t, out.BirthDate) {
			assert.Equal(t, "15/03/1995", *out.BirthDate)
		}
		if assert.NotNil(t, out.Age) {
			assert.Equal(t, 30, *out.Age)
		}
	})

	t.Run("dni standalone token", func(t *testing.T) {
		out := Extract("mi dni es 87654321", domain.CandidateData{}, domain.StateBasicData, extractNow)
		if assert.NotNil(t, out.DNI) {
			assert.Equal(t, "87654321", *out.DNI)
		}
	})

	t.Run("email lower-cased", func(t *testing.T) {
		out := Extract("Juan@Test.COM", domain.CandidateData{}, domain.StateBasicData, extractNow)
		if assert.NotNil(t, out.Email) {
			assert.Equal(t, "juan@test.com", *out.Email)
		}
	})

	t.Run("existing fields untouched", func(t *testing.T) {
		existing := domain.CandidateData{Name: strP("Juan Perez"), DNI: strP("11111111")}
		out := Extract("Pedro Gomez 22222222", existing, domain.StateBasicData, extractNow)
		assert.Nil(t, out.Name)
		assert.Nil(t, out.DNI)
	})
}

func TestExtractHardFilters(t *testing.T) {
	t.Run("fills rotating first", func(t *testing.T) {
		out := Extract("si", domain.CandidateData{}, domain.StateHardFilters, extractNow)
		if assert.NotNil(t, out.RotatingShifts) {
			assert.True(t, *out.RotatingShifts)
		}
		assert.Nil(t, out.ClosingShiftsAvailable)
	})

	t.Run("fills closing second", func(t *testing.T) {
		existing := domain.CandidateData{RotatingShifts: boolP(true)}
		out := Extract("no", existing, domain.StateHardFilters, extractNow)
		assert.Nil(t, out.RotatingShifts)
		if assert.NotNil(t, out.ClosingShiftsAvailable) {
			assert.False(t, *out.ClosingShiftsAvailable)
		}
	})

	t.Run("no inside a word is not a refusal", func(t *testing.T) {
		out := Extract("normalmente si puedo", domain.CandidateData{}, domain.StateHardFilters, extractNow)
		if assert.NotNil(t, out.RotatingShifts) {
			assert.True(t, *out.RotatingShifts)
		}
	})
}

func TestExtractSalary(t *testing.T) {
	cases := []struct {
		in    string
		want  float64
		found bool
	}{
		{"1500", 1500, true},
		{"S/ 1,500", 1500, true},
		{"quiero ganar 2000 al mes", 2000, true},
		{"450", 0, false},   // below range
		{"15000", 0, false}, // above range
		{"no se", 0, false},
	}
	for _, c := range cases {
		out := Extract(c.in, domain.CandidateData{}, domain.StateSalaryExpectation, extractNow)
		if c.found {
			if assert.NotNil(t, out.SalaryExpectation, c.in) {
				assert.Equal(t, c.want, *out.SalaryExpectation, c.in)
			}
		} else {
			assert.Nil(t, out.SalaryExpectation, c.in)
		}
	}
}

func TestExtractDistrictVerbatim(t *testing.T) {
	out := Extract("  San Juan de Lurigancho ", domain.CandidateData{}, domain.StateLocationInput, extractNow)
	if assert.NotNil(t, out.District) {
		assert.Equal(t, "San Juan de Lurigancho", *out.District)
	}
}

func TestExtractSelection(t *testing.T) {
	out := Extract("la 2 por favor", domain.CandidateData{}, domain.StateStoreList, extractNow)
	if assert.NotNil(t, out.StoreSelection) {
		assert.Equal(t, 2, *out.StoreSelection)
	}

	t.Run("selection is re-askable", func(t *testing.T) {
		existing := domain.CandidateData{StoreSelection: intP(1)}
		out := Extract("mejor la 3", existing, domain.StateStoreList, extractNow)
		if assert.NotNil(t, out.StoreSelection) {
			assert.Equal(t, 3, *out.StoreSelection)
		}
	})

	t.Run("no standalone digit", func(t *testing.T) {
		out := Extract("cualquiera", domain.CandidateData{}, domain.StateStoreList, extractNow)
		assert.Nil(t, out.StoreSelection)
	})
}

// Full intake walk from the happy-path scenario: each message fills its
// field and the engine advances only when the stage is complete.
func TestScenarioBasicDataCollection(t *testing.T) {
	e := testEngine()
	conv := domain.CandidateData{}
	state := domain.StateInitial

	step := func(msg string) domain.ConversationState {
		out := Extract(msg, conv, state, extractNow)
		conv.Merge(out)
		next, _ := e.Transition(state, conv, msg)
		state = next
		return next
	}

	assert.Equal(t, domain.StateTerms, step("Hola"))
	assert.Equal(t, domain.StateBasicData, step("Si"))
	assert.True(t, *conv.TermsAccepted)

	assert.Equal(t, domain.StateBasicData, step("Juan Perez"))
	assert.Equal(t, "Juan Perez", *conv.Name)

	assert.Equal(t, domain.StateBasicData, step("15/03/1995"))
	assert.Equal(t, 30, *conv.Age)

	assert.Equal(t, domain.StateBasicData, step("87654321"))
	assert.Equal(t, "87654321", *conv.DNI)

	assert.Equal(t, domain.StateHardFilters, step("juan@test.com"))
	assert.Equal(t, "juan@test.com", *conv.Email)
}
