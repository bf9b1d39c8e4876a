package notifications

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/go-resty/resty/v2"
	"github.com/mentiontracker/brand-mentions/internal/config"
	"github.com/mentiontracker/brand-mentions/internal/models"
	"github.com/sirupsen/logrus"
	"gopkg.in/gomail.v2"
)

// maximum number of sample mentions rendered into an alert
const alertSampleSize = 5

// Service handles sending notifications via various channels
type Service struct {
	config *config.Config
	client *resty.Client
	dialer mailDialer
}

// Ensure Service implements NotificationInterface
var _ NotificationInterface = (*Service)(nil)

type mailDialer interface {
	DialAndSend(m ...*gomail.Message) error
}

// TeamsMessage represents a Microsoft Teams message
type TeamsMessage struct {
	Type       string         `json:"@type"`
	Context    string         `json:"@context"`
	ThemeColor string         `json:"themeColor,omitempty"`
	Title      string         `json:"title"`
	Text       string         `json:"text"`
	Sections   []TeamsSection `json:"sections,omitempty"`
}

type TeamsSection struct {
	ActivityTitle    string      `json:"activityTitle,omitempty"`
	ActivitySubtitle string      `json:"activitySubtitle,omitempty"`
	ActivityText     string      `json:"activityText,omitempty"`
	Facts            []TeamsFact `json:"facts,omitempty"`
	Markdown         bool        `json:"markdown,omitempty"`
}

type TeamsFact struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// NewService creates a new notification service
func NewService(cfg *config.Config) *Service {
	s := &Service{
		config: cfg,
		client: resty.New().SetTimeout(30 * time.Second),
	}
	if cfg.NotificationEmail != "" {
		s.dialer = gomail.NewDialer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUsername, cfg.SMTPPassword)
	}
	return s
}

// SendAlert sends an alert via every configured notification channel
func (s *Service) SendAlert(ctx context.Context, alert *models.Alert) error {
	var errors []string

	if s.config.TeamsWebhookURL != "" {
		if err := s.sendToTeams(ctx, alert); err != nil {
			logrus.Errorf("Failed to send Teams notification: %v", err)
			errors = append(errors, fmt.Sprintf("Teams: %v", err))
		} else {
			logrus.Info("Successfully sent alert to Teams")
		}
	}

	if s.config.NotificationEmail != "" && s.dialer != nil {
		if err := s.sendEmail(ctx, alert); err != nil {
			logrus.Errorf("Failed to send email notification: %v", err)
			errors = append(errors, fmt.Sprintf("Email: %v", err))
		} else {
			logrus.Info("Successfully sent alert via email")
		}
	}

	if len(errors) > 0 {
		return fmt.Errorf("notification errors: %s", strings.Join(errors, "; "))
	}

	return nil
}

func (s *Service) sendToTeams(ctx context.Context, alert *models.Alert) error {
	message := s.buildTeamsMessage(alert)

	resp, err := s.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(message).
		Post(s.config.TeamsWebhookURL)

	if err != nil {
		return fmt.Errorf("failed to send Teams message: %w", err)
	}

	if resp.StatusCode() != 200 {
		return fmt.Errorf("Teams webhook returned status %d: %s", resp.StatusCode(), string(resp.Body()))
	}

	return nil
}

func (s *Service) buildTeamsMessage(alert *models.Alert) *TeamsMessage {
	message := &TeamsMessage{
		Type:       "MessageCard",
		Context:    "https://schema.org/extensions",
		ThemeColor: "d13438",
		Title:      alert.Title,
		Text:       alert.Message,
	}

	message.Sections = append(message.Sections, TeamsSection{
		ActivityTitle: "Volume",
		Facts: []TeamsFact{
			{Name: "Brand", Value: alert.Brand},
			{Name: "Last hour", Value: fmt.Sprintf("%d", alert.Current)},
			{Name: "Previous hour", Value: fmt.Sprintf("%d", alert.Previous)},
			{Name: "Detected", Value: alert.CreatedAt.UTC().Format("2006-01-02 15:04:05 UTC")},
		},
		Markdown: true,
	})

	if len(alert.Mentions) > 0 {
		var lines []string
		for i, mention := range alert.Mentions {
			if i >= alertSampleSize {
				break
			}
			lines = append(lines, fmt.Sprintf("**[%s](%s)** - %s (%s)",
				mention.Text, mention.URL, mention.Source, mention.Sentiment))
		}

		message.Sections = append(message.Sections, TeamsSection{
			ActivityTitle: "Recent Mentions",
			ActivityText:  strings.Join(lines, "\n\n"),
			Markdown:      true,
		})
	}

	return message
}

// sendEmail checks ctx before dialing; gomail itself has no context support.
func (s *Service) sendEmail(ctx context.Context, alert *models.Alert) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("email not sent: %w", err)
	}

	subject := fmt.Sprintf("%s mentions spike (%d in the last hour)", alert.Brand, alert.Current)

	htmlBody, err := buildEmailHTML(alert)
	if err != nil {
		return fmt.Errorf("failed to build email HTML: %w", err)
	}

	m := gomail.NewMessage()
	m.SetHeader("From", s.config.SMTPUsername)
	m.SetHeader("To", s.config.NotificationEmail)
	m.SetHeader("Subject", subject)
	m.SetBody("text/plain", buildEmailText(alert))
	m.AddAlternative("text/html", htmlBody)

	if err := s.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}

	return nil
}

var emailTemplate = template.Must(template.New("email").Funcs(template.FuncMap{
	"truncate": truncate,
	"limit": func(mentions []models.Mention) []models.Mention {
		if len(mentions) > alertSampleSize {
			return mentions[:alertSampleSize]
		}
		return mentions
	},
}).Parse(`
<!DOCTYPE html>
<html>
<head>
    <meta charset="UTF-8">
    <title>{{.Title}}</title>
    <style>
        body { font-family: Arial, sans-serif; margin: 20px; }
        .header { background-color: #d13438; color: white; padding: 20px; border-radius: 5px; }
        .summary { background-color: #f5f5f5; padding: 15px; margin: 20px 0; border-radius: 5px; }
        .mention { border-left: 4px solid #0078d4; padding: 10px; margin: 10px 0; background-color: #fafafa; }
        .positive { border-left-color: #107c10; }
        .negative { border-left-color: #d13438; }
        .neutral { border-left-color: #605e5c; }
    </style>
</head>
<body>
    <div class="header">
        <h1>{{.Title}}</h1>
        <p>Detected on {{.CreatedAt.Format "January 2, 2006 at 3:04 PM UTC"}}</p>
    </div>

    <div class="summary">
        <p>{{.Message}}</p>
        <p><strong>Last hour:</strong> {{.Current}} | <strong>Previous hour:</strong> {{.Previous}}</p>
    </div>

    {{if .Mentions}}
    <h2>Recent Mentions</h2>
    {{range limit .Mentions}}
        <div class="mention {{.Sentiment}}">
            <a href="{{.URL}}" target="_blank">{{truncate .Text 200}}</a>
            <div>{{.Source}} | {{.Timestamp}} | {{.Sentiment}}</div>
        </div>
    {{end}}
    {{end}}

    <hr>
    <p><small>This alert was generated automatically by the brand mentions tracker.</small></p>
</body>
</html>
`))

func buildEmailHTML(alert *models.Alert) (string, error) {
	var buf bytes.Buffer
	if err := emailTemplate.Execute(&buf, alert); err != nil {
		return "", err
	}
	return buf.String(), nil
}

func buildEmailText(alert *models.Alert) string {
	var text strings.Builder

	text.WriteString(alert.Title + "\n")
	text.WriteString(fmt.Sprintf("Detected: %s\n\n", alert.CreatedAt.UTC().Format("2006-01-02 15:04:05 UTC")))
	text.WriteString(alert.Message + "\n")
	text.WriteString(fmt.Sprintf("Last hour: %d\nPrevious hour: %d\n", alert.Current, alert.Previous))

	if len(alert.Mentions) > 0 {
		text.WriteString("\nRECENT MENTIONS\n")
		text.WriteString("===============\n")

		for i, mention := range alert.Mentions {
			if i >= alertSampleSize {
				break
			}
			text.WriteString(fmt.Sprintf("\n%d. %s\n", i+1, truncate(mention.Text, 200)))
			text.WriteString(fmt.Sprintf("   Source: %s | Sentiment: %s | Date: %s\n",
				mention.Source, mention.Sentiment, mention.Timestamp))
			text.WriteString(fmt.Sprintf("   URL: %s\n", mention.URL))
		}
	}

	text.WriteString("\n---\nThis alert was generated automatically by the brand mentions tracker.\n")

	return text.String()
}

// truncate cuts s to at most length bytes without splitting a rune
func truncate(s string, length int) string {
	if len(s) <= length {
		return s
	}
	cut := length
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	return s[:cut] + "..."
}
