package interfaces

import "context"

// Mail is one outbound email message
type Mail struct {
	To      []string
	Subject string
	HTML    string
}

// Mailer sends email. Send failures on the notification paths are recovered
// locally and never propagate to the caller of an entity update.
type Mailer interface {
	Send(ctx context.Context, mail Mail) error
}
