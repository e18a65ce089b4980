// file: service/mail_service.go

package service

import (
	"bytes"
	"context"
	"grafik-auth-api/common"
	"grafik-auth-api/logger"
	"html/template"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ses"
	"github.com/aws/aws-sdk-go-v2/service/ses/types"
)

// MailTemplateData is the dynamic part of the auth mail template.
// Relative URLs are resolved against the configured frontend URL.
type MailTemplateData struct {
	Subject       string
	Preheader     string
	Title         string
	Text1         string
	TextAction    string
	TextActionURL string
	Text2         string
	ButtonText    string
	ButtonURL     string
}

// IMailService defines the contract for sending templated auth mail.
type IMailService interface {
	SendAuthTemplate(to string, data MailTemplateData) *common.Response
}

// ISESClient is the slice of the SES API the mail service uses.
type ISESClient interface {
	SendEmail(ctx context.Context, params *ses.SendEmailInput, optFns ...func(*ses.Options)) (*ses.SendEmailOutput, error)
}

// MailService sends the auth template over AWS SES.
type MailService struct {
	client      ISESClient
	fromEmail   string
	frontendURL string
	tmpl        *template.Template
}

var authMailTemplate = template.Must(template.New("auth").Parse(`<!DOCTYPE html>
<html>
  <body style="font-family: Helvetica, Arial, sans-serif; color: #1b1b1b;">
    <span style="display:none;">{{.Preheader}}</span>
    <h1>{{.Title}}</h1>
    <p>
      {{.Text1}}
      <a href="{{.TextActionURL}}">{{.TextAction}}</a>{{.Text2}}
    </p>
    <p>
      <a href="{{.ButtonURL}}" style="background:#0d6efd;color:#ffffff;padding:12px 24px;border-radius:4px;text-decoration:none;">{{.ButtonText}}</a>
    </p>
  </body>
</html>`))

// NewMailService creates a MailService. The template identifiers and
// frontend URL are resolved once here, not per send.
func NewMailService(client ISESClient, fromEmail, frontendURL string) *MailService {
	return &MailService{
		client:      client,
		fromEmail:   fromEmail,
		frontendURL: frontendURL,
		tmpl:        authMailTemplate,
	}
}

// SendAuthTemplate renders and sends one auth mail. Callers treat it as
// fire-and-forget: a send failure is reported but never rolls back the
// state change that preceded it.
func (s *MailService) SendAuthTemplate(to string, data MailTemplateData) *common.Response {
	data.TextActionURL = s.frontendURL + data.TextActionURL
	data.ButtonURL = s.frontendURL + data.ButtonURL

	var body bytes.Buffer
	if err := s.tmpl.Execute(&body, data); err != nil {
		logger.Log.WithError(err).Error("Failed to render mail template")
		return common.NewResponse(nil, "Error sending email", common.CodeError)
	}

	input := &ses.SendEmailInput{
		Source: aws.String(s.fromEmail),
		Destination: &types.Destination{
			ToAddresses: []string{to},
		},
		Message: &types.Message{
			Subject: &types.Content{
				Data:    aws.String(data.Subject),
				Charset: aws.String("UTF-8"),
			},
			Body: &types.Body{
				Html: &types.Content{
					Data:    aws.String(body.String()),
					Charset: aws.String("UTF-8"),
				},
			},
		},
	}

	if _, err := s.client.SendEmail(context.Background(), input); err != nil {
		logger.Log.WithError(err).WithField("to", to).Error("Failed to send email")
		return common.NewResponse(nil, "Error sending email", common.CodeError)
	}

	return common.NewResponse(true, "Email sent successfully", common.CodeSuccess)
}
