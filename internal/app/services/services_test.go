package services

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/yigit/refbase/internal/app/models"
	"github.com/yigit/refbase/internal/app/repositories"
	"github.com/yigit/refbase/internal/pkg/auth"
	"github.com/yigit/refbase/internal/pkg/filestore"
	"github.com/yigit/refbase/internal/pkg/remote"
	"github.com/yigit/refbase/internal/pkg/tabular"
)

// testEnv wires every service over real repositories on a throwaway data
// directory, with an in-memory mirror standing in for the remote side.
// Services here share one tabular store the same way the running app does.
type testEnv struct {
	dataDir string
	mirror  *remote.MemoryMirror
	repos   *repositories.Repositories
	files   *filestore.Store

	officials    OfficialService
	events       EventService
	availability AvailabilityService
	assignments  AssignmentService
	roster       RosterService
	integrity    IntegrityService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	dataDir := filepath.Join(t.TempDir(), "data")
	mirror := remote.NewMemoryMirror()

	store, err := tabular.NewStore(dataDir, mirror)
	require.NoError(t, err)
	files, err := filestore.NewStore(dataDir, mirror)
	require.NoError(t, err)

	repos := repositories.NewRepositories(store, files)

	env := &testEnv{
		dataDir: dataDir,
		mirror:  mirror,
		repos:   repos,
		files:   files,
	}
	env.officials = NewOfficialService(repos.OfficialRepository, files)
	env.events = NewEventService(repos.EventRepository)
	env.availability = NewAvailabilityService(repos.OfficialRepository, repos.EventRepository, repos.AvailabilityRepository)
	env.assignments = NewAssignmentService(repos.AssignmentRepository, repos.OfficialRepository, repos.EventRepository)
	env.roster = NewRosterService(repos.OfficialRepository, repos.EventRepository, repos.AvailabilityRepository, repos.AssignmentRepository)
	env.integrity = NewIntegrityService(repos.OfficialRepository, repos.EventRepository, repos.AvailabilityRepository, repos.AssignmentRepository, files, zerolog.Nop())
	return env
}

func adminSession() auth.Session {
	return auth.Session{ID: "test-admin", Admin: true}
}

func day(s string) models.Date {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return models.NewDate(t)
}

// addOfficial seeds a roster row directly through the repository,
// bypassing service validation.
func (env *testEnv) addOfficial(t *testing.T, o models.Official) models.Official {
	t.Helper()
	if o.ID == "" {
		o.ID = uuid.NewString()
	}
	require.NoError(t, env.repos.OfficialRepository.CreateOfficial(context.Background(), &o))
	return o
}

func (env *testEnv) addEvent(t *testing.T, e models.Event) models.Event {
	t.Helper()
	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	require.NoError(t, env.repos.EventRepository.CreateEvent(context.Background(), &e))
	return e
}

func (env *testEnv) addAssignment(t *testing.T, a models.Assignment) models.Assignment {
	t.Helper()
	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	require.NoError(t, env.repos.AssignmentRepository.CreateAssignment(context.Background(), &a))
	return a
}

func (env *testEnv) addAnswer(t *testing.T, a models.Availability) models.Availability {
	t.Helper()
	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	require.NoError(t, env.repos.AvailabilityRepository.AddAvailability(context.Background(), &a))
	return a
}
