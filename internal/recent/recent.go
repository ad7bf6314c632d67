// ABOUTME: Remembers the emails most recently used to sign in
// ABOUTME: Keeps the list in the state file so login forms can be prefilled

package recent

import (
	"encoding/json"
	"log/slog"
	"strings"

	"github.com/Moshe-ship/faris-ai-saas/internal/statefile"
)

// Key is the state file key holding the list
const Key = "recent_emails"

// MaxEmails is the maximum number of emails kept
const MaxEmails = 5

// Emails manages the list of recently used sign-in emails, newest first
type Emails struct {
	state  *statefile.File
	logger *slog.Logger
}

// New creates an Emails list backed by state
func New(state *statefile.File, logger *slog.Logger) *Emails {
	if logger == nil {
		logger = slog.Default()
	}
	return &Emails{state: state, logger: logger}
}

// List returns the remembered emails, newest first.
// An unreadable or invalid list reads as empty.
func (r *Emails) List() []string {
	raw, ok, err := r.state.Get(Key)
	if err != nil {
		r.logger.Warn("Failed to read recent emails", "error", err)
		return []string{}
	}
	if !ok {
		return []string{}
	}

	var emails []string
	if err := json.Unmarshal([]byte(raw), &emails); err != nil {
		// Invalid JSON, start fresh
		return []string{}
	}
	return emails
}

// Latest returns the most recently used email, or "" when none is known
func (r *Emails) Latest() string {
	if emails := r.List(); len(emails) > 0 {
		return emails[0]
	}
	return ""
}

// Add moves email to the front of the list, dropping the oldest past MaxEmails.
// Emails compare case-insensitively.
func (r *Emails) Add(email string) error {
	email = strings.TrimSpace(email)
	if email == "" {
		return nil
	}

	current := r.List()
	emails := make([]string, 0, len(current)+1)
	emails = append(emails, email)
	for _, e := range current {
		if !strings.EqualFold(e, email) {
			emails = append(emails, e)
		}
	}
	if len(emails) > MaxEmails {
		emails = emails[:MaxEmails]
	}
	return r.save(emails)
}

// Forget removes email from the list
func (r *Emails) Forget(email string) error {
	current := r.List()
	emails := make([]string, 0, len(current))
	for _, e := range current {
		if !strings.EqualFold(e, email) {
			emails = append(emails, e)
		}
	}
	if len(emails) == len(current) {
		return nil
	}
	if len(emails) == 0 {
		return r.state.Delete(Key)
	}
	return r.save(emails)
}

func (r *Emails) save(emails []string) error {
	data, err := json.Marshal(emails)
	if err != nil {
		return err
	}
	return r.state.Set(Key, string(data))
}
