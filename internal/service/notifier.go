package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/Hicham1970/inspec/internal/model"
	"github.com/Hicham1970/inspec/pkg/mailer"
)

// MailSender is the subset of mailer.Client used for notifications.
type MailSender interface {
	Send(ctx context.Context, msg mailer.Message) (string, error)
}

// MailNotifier emails every new submission to a fixed recipient.
type MailNotifier struct {
	sender MailSender
	to     string
}

// NewMailNotifier creates a MailNotifier sending to recipient.
func NewMailNotifier(sender MailSender, recipient string) *MailNotifier {
	return &MailNotifier{sender: sender, to: recipient}
}

var _ Notifier = (*MailNotifier)(nil)

func (n *MailNotifier) NotifyContact(ctx context.Context, msg *model.ContactSubmission) error {
	_, err := n.sender.Send(ctx, mailer.Message{
		To:      []string{n.to},
		Subject: notificationSubject(msg),
		Text:    notificationBody(msg),
		ReplyTo: msg.Email,
	})
	return err
}

func notificationSubject(msg *model.ContactSubmission) string {
	if msg.IsQuotation() {
		if msg.VesselName != nil {
			return fmt.Sprintf("New quotation request from %s (%s)", msg.Name, *msg.VesselName)
		}
		return "New quotation request from " + msg.Name
	}
	if msg.Subject != nil {
		return fmt.Sprintf("New message from %s: %s", msg.Name, *msg.Subject)
	}
	return "New message from " + msg.Name
}

func notificationBody(msg *model.ContactSubmission) string {
	var b strings.Builder
	line := func(label string, v *string) {
		if v != nil {
			fmt.Fprintf(&b, "%s: %s\n", label, *v)
		}
	}

	fmt.Fprintf(&b, "Name: %s\n", msg.Name)
	fmt.Fprintf(&b, "Email: %s\n", msg.Email)
	line("Phone", msg.Phone)
	line("Company", msg.Company)
	line("Subject", msg.Subject)
	if msg.IsQuotation() {
		line("Service", msg.ServiceType)
		line("Vessel", msg.VesselName)
		line("Port", msg.Port)
		line("Planned date", msg.PlannedDate)
	}
	fmt.Fprintf(&b, "\n%s\n", msg.Message)
	return b.String()
}
