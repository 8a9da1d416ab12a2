package email

import (
	"bytes"
	"fmt"
	"html/template"
	"net/smtp"
	"time"

	"go-recruitment-chatbot/config"
	"go-recruitment-chatbot/internal/domain"
)

// EmailService sends recruiter notifications via SMTP
type EmailService struct {
	host      string
	port      string
	username  string
	password  string
	fromEmail string
}

// NewEmailService creates a new email service with Brevo SMTP configuration
func NewEmailService(cfg *config.Config) *EmailService {
	return &EmailService{
		host:      cfg.SMTPHost,
		port:      cfg.SMTPPort,
		username:  cfg.SMTPUsername,
		password:  cfg.SMTPPassword,
		fromEmail: cfg.SMTPFromEmail,
	}
}

type requisitionRow struct {
	Unit     string
	Brand    string
	Position string
	DaysOpen int
}

type alertEmailData struct {
	TenantName   string
	ContactEmail string
	Rows         []requisitionRow
}

// alertEmailTemplate is the HTML template for the unfilled-requisition digest
const alertEmailTemplate = `<!DOCTYPE html>
<html>
<head>
    <meta charset="UTF-8">
    <title>Requisiciones sin cubrir</title>
    <style>
        body { font-family: Arial, sans-serif; line-height: 1.6; color: #333; }
        .container { max-width: 600px; margin: 0 auto; padding: 20px; }
        .header { background: #0066cc; color: white; padding: 20px; text-align: center; }
        .content { padding: 20px; background: #f9f9f9; }
        table { width: 100%; border-collapse: collapse; background: white; }
        th, td { padding: 10px; border-bottom: 1px solid #ddd; text-align: left; }
        th { background: #eef3f9; }
        .days { font-weight: bold; color: #cc3300; }
        .footer { text-align: center; padding: 20px; color: #888; font-size: 12px; }
    </style>
</head>
<body>
    <div class="container">
        <div class="header">
            <h1>Requisiciones sin cubrir - {{.TenantName}}</h1>
        </div>
        <div class="content">
            <p>Las siguientes posiciones siguen abiertas más días de lo esperado:</p>
            <table>
                <tr><th>Unidad</th><th>Marca</th><th>Posición</th><th>Días abierta</th></tr>
                {{range .Rows}}
                <tr><td>{{.Unit}}</td><td>{{.Brand}}</td><td>{{.Position}}</td><td class="days">{{.DaysOpen}}</td></tr>
                {{end}}
            </table>
        </div>
        <div class="footer">
            <p>Alerta automática del asistente de reclutamiento.</p>
            {{if .ContactEmail}}<p>Consultas: {{.ContactEmail}}</p>{{end}}
        </div>
    </div>
</body>
</html>`

// SendRequisitionAlert sends the digest of stale requisitions to a recruiter
func (s *EmailService) SendRequisitionAlert(recipient string, tenant *domain.Tenant, requisitions []domain.Requisition) error {
	now := time.Now()
	data := alertEmailData{
		TenantName:   tenant.Name,
		ContactEmail: tenant.Branding.ContactEmail,
	}
	for _, r := range requisitions {
		data.Rows = append(data.Rows, requisitionRow{
			Unit:     r.Unit,
			Brand:    r.BrandName,
			Position: r.Position,
			DaysOpen: r.DaysOpen(now),
		})
	}

	tmpl, err := template.New("alert").Parse(alertEmailTemplate)
	if err != nil {
		return fmt.Errorf("failed to parse email template: %w", err)
	}

	var body bytes.Buffer
	if err := tmpl.Execute(&body, data); err != nil {
		return fmt.Errorf("failed to execute email template: %w", err)
	}

	subject := fmt.Sprintf("Requisiciones sin cubrir: %s (%d posiciones)", tenant.Name, len(requisitions))

	msg := []byte(fmt.Sprintf(
		"From: %s\r\n"+
			"To: %s\r\n"+
			"Subject: %s\r\n"+
			"MIME-Version: 1.0\r\n"+
			"Content-Type: text/html; charset=UTF-8\r\n"+
			"\r\n"+
			"%s",
		s.fromEmail,
		recipient,
		subject,
		body.String(),
	))

	auth := smtp.PlainAuth("", s.username, s.password, s.host)

	addr := fmt.Sprintf("%s:%s", s.host, s.port)
	if err := smtp.SendMail(addr, auth, s.fromEmail, []string{recipient}, msg); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}

	return nil
}

// IsConfigured checks if the email service has valid SMTP configuration
func (s *EmailService) IsConfigured() bool {
	return s.host != "" && s.username != "" && s.password != ""
}
