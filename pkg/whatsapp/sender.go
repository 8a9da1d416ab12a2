package whatsapp

import (
	"context"

	"go-recruitment-chatbot/pkg/logger"
)

// LogSender is the development MessageSender: it logs outbound messages
// instead of calling a WhatsApp provider. The real transport plugs in by
// replacing this implementation at wiring time.
type LogSender struct{}

func NewLogSender() *LogSender {
	return &LogSender{}
}

func (s *LogSender) Send(_ context.Context, phone, body string) error {
	logger.Log.Info("outbound whatsapp message", "phone", phone, "chars", len(body))
	return nil
}
