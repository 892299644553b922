package repositories

import (
	"github.com/yigit/refbase/internal/pkg/filestore"
	"github.com/yigit/refbase/internal/pkg/tabular"
)

// Veri erişim katmanı burada olacak

// Repositories holds all the repository instances
type Repositories struct {
	OfficialRepository     *OfficialRepository
	EventRepository        *EventRepository
	AvailabilityRepository *AvailabilityRepository
	AssignmentRepository   *AssignmentRepository
}

// NewRepositories initializes all repositories over one shared store.
// The officials repository also gets the attachment store so roster
// reads can repopulate missing attachment files from the mirror.
func NewRepositories(store *tabular.Store, files *filestore.Store) *Repositories {
	return &Repositories{
		OfficialRepository:     NewOfficialRepository(store, files),
		EventRepository:        NewEventRepository(store),
		AvailabilityRepository: NewAvailabilityRepository(store),
		AssignmentRepository:   NewAssignmentRepository(store),
	}
}
