package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go-recruitment-chatbot/internal/domain"
	"go-recruitment-chatbot/internal/flow"
	"go-recruitment-chatbot/pkg/apperror"
	"go-recruitment-chatbot/pkg/logger"

	"github.com/google/uuid"
)

const fallbackReply = "Lo sentimos, tuvimos un problema procesando tu mensaje. Por favor intenta de nuevo en unos minutos."

// ChatConfig tunes the text-generation retry policy and the scheduling
// horizon used when an interview is booked.
type ChatConfig struct {
	MaxAttempts       int
	BackoffFloor      time.Duration
	BackoffMax        time.Duration
	ScheduleDaysAhead int
}

type chatUsecase struct {
	convRepo      domain.ConversationRepository
	candidateRepo domain.CandidateRepository
	tenantUC      domain.TenantUsecase
	matchUC       domain.MatchUsecase
	interviewUC   domain.InterviewUsecase
	generator     domain.TextGenerator
	engine        *flow.Engine
	cfg           ChatConfig
	now           func() time.Time
}

func NewChatUsecase(
	convRepo domain.ConversationRepository,
	candidateRepo domain.CandidateRepository,
	tenantUC domain.TenantUsecase,
	matchUC domain.MatchUsecase,
	interviewUC domain.InterviewUsecase,
	generator domain.TextGenerator,
	engine *flow.Engine,
	cfg ChatConfig,
) domain.ChatUsecase {
	if cfg.MaxAttempts <= 0 {
		cfg.MaxAttempts = 4
	}
	if cfg.BackoffFloor <= 0 {
		cfg.BackoffFloor = 500 * time.Millisecond
	}
	if cfg.BackoffMax <= 0 {
		cfg.BackoffMax = 8 * time.Second
	}
	if cfg.ScheduleDaysAhead <= 0 {
		cfg.ScheduleDaysAhead = 5
	}
	return &chatUsecase{
		convRepo:      convRepo,
		candidateRepo: candidateRepo,
		tenantUC:      tenantUC,
		matchUC:       matchUC,
		interviewUC:   interviewUC,
		generator:     generator,
		engine:        engine,
		cfg:           cfg,
		now:           time.Now,
	}
}

// HandleMessage processes one inbound WhatsApp message end to end. Any
// processing failure is converted into an apologetic reply plus the error
// state: the candidate-facing conversation never hard-fails.
func (u *chatUsecase) HandleMessage(ctx context.Context, phone, message, originID string) (*domain.ChatReply, error) {
	tenantID, err := u.tenantUC.ResolveOrigin(ctx, originID)
	if err != nil {
		return nil, apperror.NotFound("Unknown origin")
	}

	conv, err := u.loadConversation(ctx, phone, tenantID, originID)
	if err != nil {
		return nil, apperror.Internal(err)
	}

	reply, next, err := u.processTurn(ctx, conv, message)
	if err != nil {
		logger.Log.Error("turn processing failed", "phone", phone, "tenant_id", tenantID, "error", err)
		reply = fallbackReply
		next = domain.StateError
	}

	conv.Messages = append(conv.Messages, domain.Message{Role: domain.RoleAssistant, Content: reply, Timestamp: u.now()})
	conv.State = next
	if next.Terminal() {
		conv.Active = false
	}
	conv.UpdatedAt = u.now()

	if err := u.convRepo.Upsert(ctx, conv); err != nil {
		logger.Log.Error("conversation persist failed", "phone", phone, "error", err)
	}

	return &domain.ChatReply{Response: reply, State: next, TenantID: tenantID}, nil
}

func (u *chatUsecase) loadConversation(ctx context.Context, phone, tenantID, originID string) (*domain.Conversation, error) {
	conv, err := u.convRepo.GetByPhone(ctx, phone)
	switch {
	case errors.Is(err, domain.ErrNotFound):
		now := u.now()
		conv = &domain.Conversation{
			Phone:     phone,
			TenantID:  tenantID,
			OriginID:  originID,
			State:     domain.StateInitial,
			Active:    true,
			CreatedAt: now,
		}
	case err != nil:
		return nil, err
	case conv.TenantID != tenantID:
		// A phone number cannot carry state across tenants.
		logger.Log.Info("conversation reset on tenant switch",
			"phone", phone, "old_tenant", conv.TenantID, "new_tenant", tenantID)
		conv.Reset(tenantID, originID)
	}
	return conv, nil
}

// processTurn runs extract -> merge -> transition -> generate, then the
// isolated side-effect actions.
func (u *chatUsecase) processTurn(ctx context.Context, conv *domain.Conversation, message string) (string, domain.ConversationState, error) {
	conv.Messages = append(conv.Messages, domain.Message{Role: domain.RoleUser, Content: message, Timestamp: u.now()})

	extracted := flow.Extract(message, conv.CandidateData, conv.State, u.now())
	conv.CandidateData.Merge(extracted)

	next, actions := u.engine.Transition(conv.State, conv.CandidateData, message)

	// find_stores feeds the reply itself, so it runs before generation;
	// the remaining actions are post-reply side effects.
	var matches []domain.StoreMatch
	for _, action := range actions {
		if action.Type == flow.ActionFindStores {
			var err error
			if matches, err = u.findStores(ctx, conv); err != nil {
				logger.Log.Error("store lookup failed",
					"phone", conv.Phone, "tenant_id", conv.TenantID, "error", err)
			}
		}
	}
	u.resolveSelections(ctx, conv)

	prompt := u.buildSystemPrompt(ctx, conv, next, matches)
	reply, err := u.generateWithRetry(ctx, prompt, conv.Messages)
	if err != nil {
		return "", conv.State, err
	}

	for _, action := range actions {
		if action.Type == flow.ActionFindStores {
			continue
		}
		if err := u.runAction(ctx, conv, action); err != nil {
			// Action failures never fail the turn or stop later actions.
			logger.Log.Error("side-effect action failed",
				"action", string(action.Type), "phone", conv.Phone, "error", err)
		}
	}

	return reply, next, nil
}

func (u *chatUsecase) findStores(ctx context.Context, conv *domain.Conversation) ([]domain.StoreMatch, error) {
	req := domain.MatchRequest{
		TenantID:             conv.TenantID,
		GPS:                  conv.CandidateData.GPS,
		DeclaredAvailability: conv.CandidateData.DeclaredAvailability(),
	}
	if conv.CandidateData.District != nil {
		req.District = *conv.CandidateData.District
	}
	return u.matchUC.FindMatchingStores(ctx, req)
}

// resolveSelections pins the numeric store/vacancy choices to concrete
// records by re-running the deterministic match for the candidate.
func (u *chatUsecase) resolveSelections(ctx context.Context, conv *domain.Conversation) {
	data := &conv.CandidateData
	if data.StoreSelection == nil || data.SelectedVacancy != nil {
		return
	}

	matches, err := u.findStores(ctx, conv)
	if err != nil || len(matches) == 0 {
		return
	}

	idx := *data.StoreSelection - 1
	if idx < 0 || idx >= len(matches) {
		return
	}
	match := matches[idx]
	data.SelectedStoreID = &match.Store.ID

	if data.VacancySelection == nil {
		return
	}
	vIdx := *data.VacancySelection - 1
	if vIdx < 0 || vIdx >= len(match.Vacancies) {
		return
	}
	vacancy := match.Vacancies[vIdx]
	data.SelectedVacancy = &vacancy
	if vacancy.MaxSalary > 0 {
		data.MaxSalary = &vacancy.MaxSalary
	}
}

func (u *chatUsecase) runAction(ctx context.Context, conv *domain.Conversation, action flow.Action) error {
	switch action.Type {
	case flow.ActionRejected:
		logger.Log.Info("candidate rejected",
			"phone", conv.Phone, "tenant_id", conv.TenantID, "reason", action.Reason, "detail", action.Detail)
		return nil

	case flow.ActionScheduleInterview:
		return u.scheduleInterview(ctx, conv)

	case flow.ActionConfirmInterview:
		return u.withCandidate(ctx, conv, func(tenant *domain.Tenant, candidateID string) error {
			return u.interviewUC.Confirm(ctx, tenant, candidateID)
		})

	case flow.ActionCancelInterview:
		logger.Log.Info("interview cancelled by candidate", "phone", conv.Phone, "tenant_id", conv.TenantID)
		return nil

	case flow.ActionCompleteConversation:
		conv.Active = false
		return nil
	}
	return nil
}

func (u *chatUsecase) scheduleInterview(ctx context.Context, conv *domain.Conversation) error {
	data := conv.CandidateData
	if data.SelectedStoreID == nil || data.SelectedVacancy == nil {
		return fmt.Errorf("schedule requested without a resolved store/vacancy selection")
	}

	tenant, err := u.tenantUC.GetTenant(ctx, conv.TenantID)
	if err != nil {
		return err
	}

	matches, err := u.findStores(ctx, conv)
	if err != nil {
		return err
	}
	var store *domain.Store
	for i := range matches {
		if matches[i].Store.ID == *data.SelectedStoreID {
			store = &matches[i].Store
			break
		}
	}
	if store == nil {
		return fmt.Errorf("selected store %s no longer matches", *data.SelectedStoreID)
	}

	slots, err := u.interviewUC.GenerateTimeSlots(ctx, tenant.ID, u.now(), u.cfg.ScheduleDaysAhead)
	if err != nil {
		return err
	}
	if len(slots) == 0 {
		return fmt.Errorf("no interview slots available")
	}

	req := domain.ScheduleRequest{
		StoreID:   store.ID,
		VacancyID: data.SelectedVacancy.ID,
		DateTime:  slots[0],
		Address:   store.Address,
		StoreName: store.Name,
		BrandName: store.BrandName,
		Position:  data.SelectedVacancy.Position,
	}

	candidate, err := u.ensureCandidate(ctx, conv)
	if err != nil {
		return err
	}

	_, err = u.interviewUC.Schedule(ctx, tenant, candidate.ID, req)
	if errors.Is(err, domain.ErrCandidateNotFound) {
		// The record vanished between lookup and write; recreate it and
		// retry exactly once. Other failures are not retried.
		if candidate, err = u.createCandidate(ctx, conv); err != nil {
			return err
		}
		_, err = u.interviewUC.Schedule(ctx, tenant, candidate.ID, req)
	}
	return err
}

func (u *chatUsecase) withCandidate(ctx context.Context, conv *domain.Conversation, fn func(*domain.Tenant, string) error) error {
	tenant, err := u.tenantUC.GetTenant(ctx, conv.TenantID)
	if err != nil {
		return err
	}
	candidate, err := u.candidateRepo.GetByPhone(ctx, conv.TenantID, conv.Phone)
	if err != nil {
		return err
	}
	return fn(tenant, candidate.ID)
}

func (u *chatUsecase) ensureCandidate(ctx context.Context, conv *domain.Conversation) (*domain.Candidate, error) {
	candidate, err := u.candidateRepo.GetByPhone(ctx, conv.TenantID, conv.Phone)
	if errors.Is(err, domain.ErrNotFound) || errors.Is(err, domain.ErrCandidateNotFound) {
		return u.createCandidate(ctx, conv)
	}
	if err != nil {
		return nil, err
	}
	return candidate, nil
}

func (u *chatUsecase) createCandidate(ctx context.Context, conv *domain.Conversation) (*domain.Candidate, error) {
	data := conv.CandidateData
	now := u.now()
	candidate := &domain.Candidate{
		ID:        uuid.NewString(),
		TenantID:  conv.TenantID,
		Phone:     conv.Phone,
		Status:    "active",
		CreatedAt: now,
		UpdatedAt: now,
	}
	if data.Name != nil {
		candidate.Name = *data.Name
	}
	if data.DNI != nil {
		candidate.DNI = *data.DNI
	}
	if data.Email != nil {
		candidate.Email = *data.Email
	}
	if err := u.candidateRepo.Create(ctx, candidate); err != nil {
		return nil, err
	}
	return candidate, nil
}

func (u *chatUsecase) generateWithRetry(ctx context.Context, systemPrompt string, history []domain.Message) (string, error) {
	backoff := u.cfg.BackoffFloor
	var lastErr error

	for attempt := 1; attempt <= u.cfg.MaxAttempts; attempt++ {
		reply, err := u.generator.Generate(ctx, systemPrompt, history)
		if err == nil {
			return reply, nil
		}
		lastErr = err
		if !errors.Is(err, domain.ErrRateLimited) {
			return "", err
		}

		logger.Log.Warn("text generation rate limited",
			"attempt", attempt, "backoff_ms", backoff.Milliseconds())
		time.Sleep(backoff)
		backoff *= 2
		if backoff > u.cfg.BackoffMax {
			backoff = u.cfg.BackoffMax
		}
	}
	return "", fmt.Errorf("text generation exhausted %d attempts: %w", u.cfg.MaxAttempts, lastErr)
}

func (u *chatUsecase) buildSystemPrompt(ctx context.Context, conv *domain.Conversation, state domain.ConversationState, matches []domain.StoreMatch) string {
	var b strings.Builder
	b.WriteString("Eres un asistente de reclutamiento por WhatsApp. Responde en español, breve y amable.\n")

	if tenant, err := u.tenantUC.GetTenant(ctx, conv.TenantID); err == nil {
		fmt.Fprintf(&b, "Empresa: %s (%s).\n", tenant.Name, tenant.Brand)
	}

	switch state {
	case domain.StateTerms:
		b.WriteString("Pide al candidato aceptar los términos y condiciones de tratamiento de datos (sí/no).")
	case domain.StateBasicData:
		b.WriteString("Solicita los datos personales que falten: nombre completo, fecha de nacimiento (DD/MM/AAAA), DNI y correo.")
		b.WriteString(missingBasicFields(conv.CandidateData))
	case domain.StateHardFilters:
		if conv.CandidateData.RotatingShifts == nil {
			b.WriteString("Pregunta si puede trabajar turnos rotativos (sí/no).")
		} else {
			b.WriteString("Pregunta si tiene disponibilidad para turnos de cierre (sí/no).")
		}
	case domain.StateSalaryExpectation:
		b.WriteString("Pregunta por su expectativa salarial mensual en soles.")
	case domain.StateLocationInput:
		b.WriteString("Pregunta en qué distrito vive para buscar tiendas cercanas.")
	case domain.StateStoreList:
		b.WriteString("Presenta las tiendas cercanas numeradas y pide elegir una:\n")
		b.WriteString(formatMatches(matches))
	case domain.StateVacancySelection:
		b.WriteString("Presenta las vacantes de la tienda elegida numeradas y pide elegir una.")
	case domain.StateScreening:
		b.WriteString("Haz una breve pregunta de experiencia previa en atención al cliente.")
	case domain.StateInterviewSlot:
		b.WriteString("Indica que coordinarás la entrevista y pide confirmar disponibilidad.")
	case domain.StateConfirmationPending:
		b.WriteString("Pide confirmar la asistencia a la entrevista agendada (sí/no).")
	case domain.StateConfirmed, domain.StateCompleted:
		b.WriteString("Agradece y despídete confirmando que la entrevista quedó agendada.")
	case domain.StateRejected:
		b.WriteString("Agradece el interés y comunica amablemente que no continuará en el proceso.")
	default:
		b.WriteString("Saluda y explica brevemente el proceso de postulación.")
	}

	return b.String()
}

func missingBasicFields(data domain.CandidateData) string {
	var missing []string
	if data.Name == nil {
		missing = append(missing, "nombre")
	}
	if data.BirthDate == nil {
		missing = append(missing, "fecha de nacimiento")
	}
	if data.DNI == nil {
		missing = append(missing, "DNI")
	}
	if data.Email == nil {
		missing = append(missing, "correo")
	}
	if len(missing) == 0 {
		return ""
	}
	return " Faltan: " + strings.Join(missing, ", ") + "."
}

func formatMatches(matches []domain.StoreMatch) string {
	if len(matches) == 0 {
		return "No se encontraron tiendas cercanas con vacantes compatibles; ofrece disculpas y sugiere intentar con otro distrito."
	}
	var b strings.Builder
	for i, m := range matches {
		fmt.Fprintf(&b, "%d. %s (%s) a %.2f km, %d vacantes\n",
			i+1, m.Store.Name, m.Store.District, m.DistanceKm, m.TotalSlots)
	}
	return b.String()
}
