// Package email drafts emails from a short topic using keyword-matched
// templates.
package email

import (
	"bytes"
	"fmt"
	"io"
	"strings"
	"text/template"
	"time"

	"github.com/emersion/go-message/mail"
)

// Signature closes every draft.
const Signature = "Regards,\n[Your Name]"

// Draft is a rendered email.
type Draft struct {
	Kind         Kind
	Topic        string
	TopicTitle   string
	Subject      string
	Greeting     string
	Introduction string
	Body         string
	Closing      string
	Signature    string
}

var layout = template.Must(template.New("draft").Parse(
	"Subject: {{.Subject}}\n\n{{.Greeting}}\n\n{{.Introduction}}\n\n{{.Body}}\n\n{{.Closing}}\n\n{{.Signature}}" +
		"\nNOTE: This is a generated email draft about '{{.Topic}}'. Please review and personalize it before sending.",
))

// Classify returns the template kind for topic.
func Classify(topic string) Kind {
	return match(topic).Kind
}

func match(topic string) blueprint {
	lower := strings.ToLower(topic)
	for _, t := range blueprints {
		for _, kw := range t.Keywords {
			if strings.Contains(lower, kw) {
				return t
			}
		}
	}
	return blueprints[len(blueprints)-1]
}

// Compose fills the matching template for topic.
func Compose(topic string) (*Draft, error) {
	t := match(topic)
	d := &Draft{
		Kind:       t.Kind,
		Topic:      topic,
		TopicTitle: capitalize(topic),
		Signature:  Signature,
	}
	parts := []struct {
		src string
		dst *string
	}{
		{t.Subject, &d.Subject},
		{t.Greeting, &d.Greeting},
		{t.Introduction, &d.Introduction},
		{t.Body, &d.Body},
		{t.Closing, &d.Closing},
	}
	for _, p := range parts {
		s, err := render(p.src, d)
		if err != nil {
			return nil, fmt.Errorf("render %s draft: %w", t.Kind, err)
		}
		*p.dst = s
	}
	return d, nil
}

// Write returns the plain-text draft for topic.
func Write(topic string) string {
	d, err := Compose(topic)
	if err != nil {
		return fmt.Sprintf("I couldn't draft an email about '%s'. Error: %v", topic, err)
	}
	return d.String()
}

func (d *Draft) String() string {
	var b strings.Builder
	if err := layout.Execute(&b, d); err != nil {
		return ""
	}
	return b.String()
}

// EML renders the draft as an RFC 5322 message with a single text/plain part.
func (d *Draft) EML(date time.Time) ([]byte, error) {
	var h mail.Header
	h.SetDate(date)
	h.SetSubject(d.Subject)
	h.SetContentType("text/plain", map[string]string{"charset": "utf-8"})

	var buf bytes.Buffer
	w, err := mail.CreateSingleInlineWriter(&buf, h)
	if err != nil {
		return nil, fmt.Errorf("create message: %w", err)
	}
	text := strings.Join([]string{d.Greeting, d.Introduction, d.Body, d.Closing, d.Signature}, "\n\n")
	if _, err := io.WriteString(w, text+"\n"); err != nil {
		return nil, fmt.Errorf("write body: %w", err)
	}
	if err := w.Close(); err != nil {
		return nil, fmt.Errorf("close message: %w", err)
	}
	return buf.Bytes(), nil
}

func render(src string, d *Draft) (string, error) {
	if !strings.Contains(src, "{{") {
		return src, nil
	}
	t, err := template.New("part").Parse(src)
	if err != nil {
		return "", err
	}
	var b strings.Builder
	if err := t.Execute(&b, d); err != nil {
		return "", err
	}
	return b.String(), nil
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + strings.ToLower(s[1:])
}
