package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"html/template"
	"net/http"
	"time"

	"github.com/WilkerGw/LP-OTICA/models"
	"github.com/WilkerGw/LP-OTICA/utils"
)

const resendEndpoint = "https://api.resend.com/emails"

// EmailService tells the store about new quote leads through Resend.
type EmailService struct {
	apiKey     string
	fromEmail  string
	notifyTo   string
	endpoint   string
	httpClient *http.Client
}

func NewEmailService(apiKey, fromEmail, notifyTo string) *EmailService {
	return &EmailService{
		apiKey:     apiKey,
		fromEmail:  fromEmail,
		notifyTo:   notifyTo,
		endpoint:   resendEndpoint,
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
}

// Enabled is false when either the API key or the recipient is missing.
func (s *EmailService) Enabled() bool {
	return s != nil && s.apiKey != "" && s.notifyTo != ""
}

var quoteEmailTmpl = template.Must(template.New("quote").Parse(`<!DOCTYPE html>
<html>
<body style="font-family: sans-serif;">
  <h2>👓 Novo orçamento pelo site</h2>
  {{if .Name}}<p><strong>Cliente:</strong> {{.Name}}</p>{{end}}
  {{if .Phone}}<p><strong>Telefone:</strong> {{.Phone}}</p>{{end}}
  <table cellpadding="4">
  {{range .Lines}}<tr><td>{{.Label}}</td><td align="right">{{.Value}}</td></tr>{{end}}
  </table>
  <p>Valor original: {{.Original}}<br>Desconto: - {{.Discount}}<br><strong>Valor final: {{.Final}}</strong></p>
  <p><a href="{{.WhatsAppURL}}">Abrir conversa no WhatsApp</a></p>
  <p style="color:#888">Orçamento {{.ID}}</p>
</body>
</html>`))

type quoteEmailLine struct {
	Label string
	Value string
}

// RenderQuoteEmail builds the HTML body of the lead notification.
func RenderQuoteEmail(q *models.Quote, phone string) (string, error) {
	data := struct {
		ID, Name, Phone, WhatsAppURL string
		Original, Discount, Final    string
		Lines                        []quoteEmailLine
	}{
		ID:          q.ID,
		Name:        q.CustomerName,
		Phone:       phone,
		WhatsAppURL: q.WhatsAppURL,
		Original:    utils.FormatBRL(q.Summary.Original),
		Discount:    utils.FormatBRL(q.Summary.Discount),
		Final:       utils.FormatBRL(q.Summary.Final),
	}
	for _, line := range q.Budget.Breakdown {
		data.Lines = append(data.Lines, quoteEmailLine{Label: line.Label, Value: utils.FormatBRL(line.Value)})
	}

	var buf bytes.Buffer
	if err := quoteEmailTmpl.Execute(&buf, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}

func (s *EmailService) SendQuoteNotification(ctx context.Context, q *models.Quote, phone string) error {
	if s.apiKey == "" {
		return fmt.Errorf("RESEND_API_KEY not configured")
	}

	html, err := RenderQuoteEmail(q, phone)
	if err != nil {
		return fmt.Errorf("failed to render email: %w", err)
	}

	payload := map[string]interface{}{
		"from":    fmt.Sprintf("Óticas Vizz <%s>", s.fromEmail),
		"to":      []string{s.notifyTo},
		"subject": fmt.Sprintf("Novo orçamento: %s", utils.FormatBRL(q.Summary.Final)),
		"html":    html,
	}

	jsonData, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.endpoint, bytes.NewBuffer(jsonData))
	if err != nil {
		return err
	}

	req.Header.Set("Authorization", "Bearer "+s.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return fmt.Errorf("email API returned status: %d", resp.StatusCode)
	}

	utils.SafeInfo("✅ Quote notification sent to %s", s.notifyTo)
	return nil
}
