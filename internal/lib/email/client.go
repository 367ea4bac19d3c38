// Package email sends transactional email through Resend. Bodies are
// rendered from HTML templates embedded in the binary.
package email

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"

	"github.com/pkg/errors"
	"github.com/resend/resend-go/v2"
	"github.com/rs/zerolog"

	"github.com/deppfellow/villains-api/internal/config"
)

//go:embed templates/*.html
var templateFS embed.FS

const fromAddress = "Villains API <onboarding@resend.dev>"

// sender is the part of resend's EmailsSvc the client needs.
type sender interface {
	Send(params *resend.SendEmailRequest) (*resend.SendEmailResponse, error)
}

type Client struct {
	sender  sender
	enabled bool
	logger  *zerolog.Logger
}

func NewClient(cfg *config.Config, logger *zerolog.Logger) *Client {
	rc := resend.NewClient(cfg.Integration.ResendAPIKey)
	return &Client{
		sender:  rc.Emails,
		enabled: cfg.Integration.ResendAPIKey != "",
		logger:  logger,
	}
}

// Enabled reports whether an API key was configured.
func (c *Client) Enabled() bool {
	return c.enabled
}

// Render executes the named template with data.
func Render(name Template, data map[string]string) (string, error) {
	tmpl, err := template.ParseFS(templateFS, fmt.Sprintf("templates/%s.html", name))
	if err != nil {
		return "", errors.Wrapf(err, "failed to parse email template %s", name)
	}

	var body bytes.Buffer
	if err := tmpl.Execute(&body, data); err != nil {
		return "", errors.Wrapf(err, "failed to execute email template %s", name)
	}
	return body.String(), nil
}

// SendEmail renders templateName and sends it to a single recipient.
func (c *Client) SendEmail(to, subject string, templateName Template, data map[string]string) error {
	html, err := Render(templateName, data)
	if err != nil {
		return err
	}

	resp, err := c.sender.Send(&resend.SendEmailRequest{
		From:    fromAddress,
		To:      []string{to},
		Subject: subject,
		Html:    html,
	})
	if err != nil {
		return errors.Wrap(err, "failed to send email")
	}

	c.logger.Debug().
		Str("email_id", resp.Id).
		Str("template", string(templateName)).
		Msg("email sent")

	return nil
}
