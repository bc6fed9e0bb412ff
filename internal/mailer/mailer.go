// Package mailer is the single outbound-email boundary. Every notification
// the shop sends goes through the Sender interface; the only concrete
// transport is SMTP.
package mailer

// Message is a rendered email ready for transport.
type Message struct {
	To      string
	Subject string
	Text    string
	HTML    string
}

// Sender delivers one rendered message. Implementations must return an
// error instead of panicking; callers decide whether delivery failure is
// fatal (it never is for storefront requests).
type Sender interface {
	Send(msg Message) error
}

// BulkResult reports the outcome of a sequential bulk send. One recipient's
// failure never aborts the remaining sends.
type BulkResult struct {
	SuccessCount int      `json:"successCount"`
	ErrorCount   int      `json:"errorCount"`
	Errors       []string `json:"errors"`
}

// SendToAll delivers a message to each recipient in order, awaiting each
// send before the next, and collects per-recipient failures.
func SendToAll(sender Sender, recipients []string, build func(to string) Message) BulkResult {
	result := BulkResult{Errors: []string{}}
	for _, to := range recipients {
		if err := sender.Send(build(to)); err != nil {
			result.ErrorCount++
			result.Errors = append(result.Errors, to+": "+err.Error())
			continue
		}
		result.SuccessCount++
	}
	return result
}
