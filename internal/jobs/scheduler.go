package jobs

import (
	"context"
	"fmt"
	"time"

	"go-recruitment-chatbot/internal/domain"
	"go-recruitment-chatbot/pkg/logger"

	"github.com/robfig/cron/v3"
)

// Scheduler owns the recurring jobs: the evening interview reminder and the
// morning unfilled-requisition alert scan.
type Scheduler struct {
	cron        *cron.Cron
	interviewUC domain.InterviewUsecase
	alertUC     domain.AlertUsecase
	sender      domain.MessageSender
	convRepo    domain.ConversationRepository
	jobTimeout  time.Duration
}

func NewScheduler(interviewUC domain.InterviewUsecase, alertUC domain.AlertUsecase, sender domain.MessageSender, convRepo domain.ConversationRepository) *Scheduler {
	return &Scheduler{
		cron:        cron.New(),
		interviewUC: interviewUC,
		alertUC:     alertUC,
		sender:      sender,
		convRepo:    convRepo,
		jobTimeout:  5 * time.Minute,
	}
}

// Start registers the jobs under the given cron specs and launches the
// scheduler goroutine.
func (s *Scheduler) Start(reminderSpec, alertSpec string) error {
	if _, err := s.cron.AddFunc(reminderSpec, s.runReminders); err != nil {
		return fmt.Errorf("register reminder job: %w", err)
	}
	if _, err := s.cron.AddFunc(alertSpec, s.runAlerts); err != nil {
		return fmt.Errorf("register alert job: %w", err)
	}
	s.cron.Start()
	logger.Log.Info("job scheduler started", "reminder_spec", reminderSpec, "alert_spec", alertSpec)
	return nil
}

// Stop halts the scheduler and waits for running jobs to finish.
func (s *Scheduler) Stop() {
	<-s.cron.Stop().Done()
	logger.Log.Info("job scheduler stopped")
}

// runReminders sends a WhatsApp reminder to every candidate interviewed the
// next day. Per-candidate failures are logged and skipped.
func (s *Scheduler) runReminders() {
	ctx, cancel := context.WithTimeout(context.Background(), s.jobTimeout)
	defer cancel()

	candidates, err := s.interviewUC.CandidatesForTomorrowReminder(ctx, "")
	if err != nil {
		logger.Log.Error("reminder job failed to fetch candidates", "error", err)
		return
	}

	sent := 0
	for _, candidate := range candidates {
		if candidate.Interview == nil {
			continue
		}
		body := reminderText(candidate)
		if err := s.sender.Send(ctx, candidate.Phone, body); err != nil {
			logger.Log.Error("reminder delivery failed",
				"candidate_id", candidate.ID, "phone", candidate.Phone, "error", err)
			continue
		}
		sent++
		s.markAwaitingConfirmation(ctx, candidate.Phone)
	}
	logger.Log.Info("reminder job finished", "candidates", len(candidates), "sent", sent)
}

// markAwaitingConfirmation moves the candidate's active conversation to the
// confirmation-pending state so the next inbound message is read as a
// confirm/cancel answer.
func (s *Scheduler) markAwaitingConfirmation(ctx context.Context, phone string) {
	conv, err := s.convRepo.GetByPhone(ctx, phone)
	if err != nil {
		logger.Log.Warn("reminder job could not load conversation", "phone", phone, "error", err)
		return
	}
	if conv.State == domain.StateConfirmationPending || conv.State == domain.StateRejected {
		return
	}
	conv.State = domain.StateConfirmationPending
	conv.Active = true
	if err := s.convRepo.Upsert(ctx, conv); err != nil {
		logger.Log.Warn("reminder job could not update conversation state", "phone", phone, "error", err)
	}
}

func (s *Scheduler) runAlerts() {
	ctx, cancel := context.WithTimeout(context.Background(), s.jobTimeout)
	defer cancel()

	summary, err := s.alertUC.RunUnfilledCheck(ctx, "")
	if err != nil {
		logger.Log.Error("alert job failed", "error", err)
		return
	}
	logger.Log.Info("alert job finished",
		"tenants_checked", summary.TenantsChecked,
		"flagged", summary.Flagged,
		"emails_sent", summary.EmailsSent)
}

func reminderText(candidate domain.Candidate) string {
	iv := candidate.Interview
	when := iv.DateTime.Format("02/01/2006 a las 15:04")
	body := fmt.Sprintf(
		"Hola %s, te recordamos tu entrevista mañana %s en %s.",
		candidate.Name, when, iv.Address)
	if iv.CalendarLink != "" {
		body += " Detalles: " + iv.CalendarLink
	}
	body += " ¡Te esperamos!"
	return body
}
