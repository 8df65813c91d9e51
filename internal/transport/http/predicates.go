package httptransport

import (
	"time"

	"sessiongate/internal/identity"
)

// The identity provider does not acknowledge user updates explicitly; success
// is inferred from the shape of the returned user record. These predicates
// name each inherited heuristic so it stays visible and testable.

// emailChangeWindow bounds how old an email_change_sent_at timestamp may be
// and still count as produced by the current request.
const emailChangeWindow = time.Minute

// passwordChanged holds when a password update round-tripped a populated user
// record.
func passwordChanged(u *identity.User) bool {
	return u != nil && u.Email != ""
}

// emailChangeRequested holds when the provider recorded the submitted address
// as pending and stamped the change within the last minute.
func emailChangeRequested(u *identity.User, submitted string, now time.Time) bool {
	if u == nil || u.NewEmail != submitted {
		return false
	}
	if u.EmailChangeSentAt.IsZero() {
		return false
	}
	return now.Sub(u.EmailChangeSentAt) < emailChangeWindow
}

// emailChangeConfirmed holds when a pending change was applied: the pending
// address is cleared while the change timestamp remains.
func emailChangeConfirmed(u *identity.User) bool {
	return u != nil && !u.EmailChangeSentAt.IsZero() && u.NewEmail == ""
}
