package services

import (
	"github.com/yigit/refbase/internal/pkg/apperrors"
	"github.com/yigit/refbase/internal/pkg/auth"
)

// İş mantığı servisleri burada olacak

// Services defined in this package:
// - AuthService: Exchanges the admin secret for an access token
// - OfficialService: Roster CRUD, attachments, import and export
// - EventService: Event calendar CRUD
// - AvailabilityService: Availability form reads and submissions
// - AssignmentService: Nominations of officials to events
// - RosterService: Merged roster report and its export
// - IntegrityService: Cross-table deletes that keep references consistent

// requireAdmin gates mutating operations on the caller's session.
func requireAdmin(session auth.Session) error {
	if !session.Admin {
		return apperrors.ErrPermissionDenied
	}
	return nil
}
