package email

import (
	"bytes"
	"context"
	"embed"
	"fmt"
	"html/template"

	"github.com/resend/resend-go/v3"

	"maple-blog/internal/config"
	"maple-blog/internal/pkg/i18n"
)

//go:embed templates/*.html
var templates embed.FS

type NewCommentNotice struct {
	AuthorName  string
	AuthorEmail string
	CommentType string
	Identifier  string
	Content     template.HTML
	Link        string
}

type Service interface {
	SendNewCommentEmail(ctx context.Context, toEmail string, notice NewCommentNotice) error
}

type service struct {
	client *resend.Client
	config *config.Config
}

func NewService(cfg *config.Config) Service {
	client := resend.NewClient(cfg.ResendAPIKey)
	return &service{
		client: client,
		config: cfg,
	}
}

func render(templateName string, data any) (string, error) {
	tmpl, err := template.ParseFS(templates, "templates/layout.html", "templates/"+templateName)
	if err != nil {
		return "", fmt.Errorf("failed to parse email templates: %w", err)
	}

	var body bytes.Buffer
	if err := tmpl.ExecuteTemplate(&body, "layout.html", data); err != nil {
		return "", fmt.Errorf("failed to execute email template: %w", err)
	}
	return body.String(), nil
}

func (s *service) sendEmail(toEmail, subject, templateName string, data any) error {
	html, err := render(templateName, data)
	if err != nil {
		return err
	}

	params := &resend.SendEmailRequest{
		From:    fmt.Sprintf("%s <%s>", s.config.SiteTitle, s.config.FromEmail),
		To:      []string{toEmail},
		Html:    html,
		Subject: subject,
	}

	_, err = s.client.Emails.Send(params)
	return err
}

func (s *service) SendNewCommentEmail(ctx context.Context, toEmail string, notice NewCommentNotice) error {
	subject := fmt.Sprintf(i18n.Translate(s.config.Locale, "NEW_COMMENT_SUBJECT"), notice.AuthorName)
	data := struct {
		NewCommentNotice
		Title     string
		SiteTitle string
	}{
		NewCommentNotice: notice,
		Title:            subject,
		SiteTitle:        s.config.SiteTitle,
	}
	return s.sendEmail(toEmail, subject, "new_comment.html", data)
}
