package email

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/gomail.v2"
)

type fakeDialer struct {
	sent []*gomail.Message
	err  error
}

func (f *fakeDialer) DialAndSend(m ...*gomail.Message) error {
	f.sent = append(f.sent, m...)
	return f.err
}

func TestSendStatusUpdate(t *testing.T) {
	d := &fakeDialer{}
	svc := newEmailService(d, "noreply@jobs.test")

	err := svc.SendStatusUpdate(StatusUpdateData{
		To:          "c@x.com",
		JobTitle:    "Backend <Engineer>",
		CompanyName: "Acme",
		Status:      "accepted",
	})
	require.NoError(t, err)
	require.Len(t, d.sent, 1)

	m := d.sent[0]
	assert.Equal(t, []string{"c@x.com"}, m.GetHeader("To"))
	assert.Equal(t, []string{"noreply@jobs.test"}, m.GetHeader("From"))

	assert.Equal(t, []string{"Application update: Backend <Engineer>"}, m.GetHeader("Subject"))

	var body bytes.Buffer
	require.NoError(t, svc.tmpl.Execute(&body, StatusUpdateData{JobTitle: "Backend <Engineer>", Status: "accepted"}))
	// the job title is HTML escaped
	assert.Contains(t, body.String(), "Backend &lt;Engineer&gt;")
}

func TestSendStatusUpdateDialError(t *testing.T) {
	svc := newEmailService(&fakeDialer{err: errors.New("connection refused")}, "noreply@jobs.test")
	err := svc.SendStatusUpdate(StatusUpdateData{To: "c@x.com", JobTitle: "Dev", Status: "rejected"})
	assert.ErrorContains(t, err, "connection refused")
}
