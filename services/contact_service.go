package services

import (
	"context"
	"fmt"
	"html"
	"net/http"
	"net/mail"
	"strings"
	"unicode/utf8"

	"github.com/rpupo63/bilingual-portfolio-backend/errs"
	"github.com/rpupo63/bilingual-portfolio-backend/metrics"
)

const maxContactMessageLength = 5000

// ContactMessage is a message sent through the public contact form.
type ContactMessage struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Subject string `json:"subject"`
	Message string `json:"message"`
}

func (m ContactMessage) validate() error {
	if err := firstError(
		required("name", m.Name),
		required("email", m.Email),
		required("message", m.Message),
	); err != nil {
		return err
	}
	if _, err := mail.ParseAddress(m.Email); err != nil {
		return errs.NewInvalidFieldError("email", "not a valid email address")
	}
	if utf8.RuneCountInString(m.Message) > maxContactMessageLength {
		return errs.NewInvalidFieldError("message", fmt.Sprintf("must be at most %d characters", maxContactMessageLength))
	}
	return nil
}

type ContactService struct {
	profile    *ProfileService
	mailer     Mailer
	fallbackTo string
}

// SendContactMessage emails msg to the profile owner, replying to the sender.
func (s *ContactService) SendContactMessage(ctx context.Context, msg ContactMessage) (Mutation[ContactMessage], error) {
	const entity, action = "contact", "send"
	fail := func(err error) (Mutation[ContactMessage], error) {
		metrics.RecordMutation(entity, action, resultError)
		return Mutation[ContactMessage]{}, errs.NewMutationError("send message", err)
	}

	if err := msg.validate(); err != nil {
		return fail(err)
	}
	if s.mailer == nil {
		return fail(errs.NewApiErr(http.StatusServiceUnavailable, "contact form is not configured"))
	}

	to := s.fallbackTo
	profile, err := s.profile.Get(ctx)
	if err != nil {
		return fail(err)
	}
	if profile != nil && profile.Email != nil && *profile.Email != "" {
		to = *profile.Email
	}
	if to == "" {
		return fail(errs.NewApiErr(http.StatusServiceUnavailable, "no recipient for contact messages"))
	}

	subject := strings.TrimSpace(msg.Subject)
	if subject == "" {
		subject = "New message from " + msg.Name
	}

	email := Email{
		To:      []string{to},
		ReplyTo: msg.Email,
		Subject: "[Portfolio] " + subject,
		HTML: fmt.Sprintf("<p><strong>%s</strong> &lt;%s&gt; wrote:</p><p>%s</p>",
			html.EscapeString(msg.Name),
			html.EscapeString(msg.Email),
			strings.ReplaceAll(html.EscapeString(msg.Message), "\n", "<br>")),
		Text: fmt.Sprintf("%s <%s> wrote:\n\n%s", msg.Name, msg.Email, msg.Message),
	}
	if err := s.mailer.Send(ctx, email); err != nil {
		return fail(errs.NewExternalServiceError("email", err))
	}

	metrics.RecordMutation(entity, action, resultSuccess)
	return Mutation[ContactMessage]{Data: msg, Message: "Message sent successfully"}, nil
}
