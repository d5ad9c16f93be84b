package email

import (
	"bytes"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/emersion/go-message/mail"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		topic string
		want  Kind
	}{
		{"job application", JobApplication},
		{"question about my order", Inquiry},
		{"thank my mentor", ThankYou},
		{"problem with delivery", Complaint},
		{"birthday party", Invitation},
		{"sorry for being late", Apology},
		{"need help with taxes", Request},
		{"quarterly budget", General},
		// Earlier templates win when several match.
		{"interview invitation", JobApplication},
	}
	for _, tt := range tests {
		t.Run(tt.topic, func(t *testing.T) {
			assert.Equal(t, tt.want, Classify(tt.topic))
		})
	}
}

func TestWrite_JobApplication(t *testing.T) {
	got := Write("job application")

	assert.True(t, strings.HasPrefix(got, "Subject: Application for [Position] - [Your Name]\n\nDear Hiring Manager,\n\n"))
	assert.Contains(t, got, "Thank you for considering my application.")
	assert.True(t, strings.HasSuffix(got, "Regards,\n[Your Name]\nNOTE: This is a generated email draft about 'job application'. Please review and personalize it before sending."))
}

func TestWrite_General(t *testing.T) {
	got := Write("quarterly budget")

	assert.True(t, strings.HasPrefix(got, "Subject: Regarding: Quarterly budget\n\nHello,\n\nI am writing to you regarding quarterly budget.\n\nI wanted to discuss the matter of quarterly budget with you."))
	assert.Contains(t, got, "[Main point 3 about the topic]")
}

func TestCompose_Fields(t *testing.T) {
	d, err := Compose("invite to team meeting")
	require.NoError(t, err)

	assert.Equal(t, Invitation, d.Kind)
	assert.Equal(t, "Invitation: [Event Name] - [Date]", d.Subject)
	assert.Equal(t, "Dear [Recipient],", d.Greeting)
	assert.Equal(t, Signature, d.Signature)
}

func TestDraft_EML(t *testing.T) {
	d, err := Compose("thank my mentor")
	require.NoError(t, err)

	date := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	raw, err := d.EML(date)
	require.NoError(t, err)

	r, err := mail.CreateReader(bytes.NewReader(raw))
	require.NoError(t, err)
	subject, err := r.Header.Subject()
	require.NoError(t, err)
	assert.Equal(t, "Thank You for [Reason]", subject)
	got, err := r.Header.Date()
	require.NoError(t, err)
	assert.True(t, date.Equal(got))

	part, err := r.NextPart()
	require.NoError(t, err)
	body, err := io.ReadAll(part.Body)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(body), "Dear [Recipient],\n\nI wanted to express my sincere gratitude"))
	assert.NotContains(t, string(body), "NOTE:")
}
