package notify

import "context"

// EmailSender delivers HTML email to a single recipient.
type EmailSender interface {
	SendEmail(ctx context.Context, to, subject, htmlBody string) error
}

// MessageSender delivers a short text message (WhatsApp) to a phone number.
type MessageSender interface {
	SendMessage(ctx context.Context, phone, text string) error
}
