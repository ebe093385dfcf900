package usecase

import (
	"context"

	"go-jobboard-backend/internal/domain"
	"go-jobboard-backend/pkg/email"
)

// StatusMailer sends status-change emails.
type StatusMailer interface {
	SendStatusUpdate(data email.StatusUpdateData) error
}

type emailNotifier struct {
	mailer StatusMailer
}

// NewEmailNotifier adapts a StatusMailer to domain.StatusNotifier.
func NewEmailNotifier(mailer StatusMailer) domain.StatusNotifier {
	return &emailNotifier{mailer: mailer}
}

func (n *emailNotifier) NotifyStatusChange(ctx context.Context, c domain.StatusChange) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return n.mailer.SendStatusUpdate(email.StatusUpdateData{
		To:          c.CandidateEmail,
		JobTitle:    c.JobTitle,
		CompanyName: c.CompanyName,
		Status:      string(c.Status),
	})
}
