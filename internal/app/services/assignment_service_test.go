package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yigit/refbase/internal/app/models"
	"github.com/yigit/refbase/internal/app/models/dto"
	"github.com/yigit/refbase/internal/pkg/apperrors"
	"github.com/yigit/refbase/internal/pkg/auth"
)

func TestAssignmentService_CreateAssignment(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	official := env.addOfficial(t, models.Official{FirstName: "Ana", LastName: "Silva"})
	event := env.addEvent(t, models.Event{Name: "Asian Championship", Season: "2025"})

	created, err := env.assignments.CreateAssignment(ctx, adminSession(), &dto.AssignmentRequest{
		OfficialID: official.ID,
		EventID:    event.ID,
		Position:   "  1st Referee ",
	})
	require.NoError(t, err)

	assert.NotEmpty(t, created.Assignment.ID)
	assert.Equal(t, "1st Referee", created.Assignment.Position)
	assert.Equal(t, "Ana Silva", created.Assignment.OfficialName)
	assert.Equal(t, "Asian Championship", created.Assignment.EventName)
	assert.Empty(t, created.Warning)
}

func TestAssignmentService_CreateDuplicateWarnsButSticks(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	official := env.addOfficial(t, models.Official{FirstName: "Ana", LastName: "Silva"})
	event := env.addEvent(t, models.Event{Name: "Asian Championship", Season: "2025"})
	req := &dto.AssignmentRequest{OfficialID: official.ID, EventID: event.ID, Position: "1st Referee"}

	_, err := env.assignments.CreateAssignment(ctx, adminSession(), req)
	require.NoError(t, err)

	second, err := env.assignments.CreateAssignment(ctx, adminSession(), req)
	require.NoError(t, err, "duplicates are allowed, not rejected")
	assert.Equal(t, "Ana Silva is already nominated for Asian Championship", second.Warning)

	all, err := env.assignments.GetAssignments(ctx, adminSession(), &dto.AssignmentFilterRequest{})
	require.NoError(t, err)
	assert.Len(t, all, 2, "both nominations stay on file")
}

func TestAssignmentService_SecondPositionIsNotADuplicate(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	official := env.addOfficial(t, models.Official{FirstName: "Ana", LastName: "Lima"})
	event := env.addEvent(t, models.Event{Name: "Open", Season: "2025"})

	_, err := env.assignments.CreateAssignment(ctx, adminSession(), &dto.AssignmentRequest{
		OfficialID: official.ID, EventID: event.ID, Position: "1st Referee",
	})
	require.NoError(t, err)

	second, err := env.assignments.CreateAssignment(ctx, adminSession(), &dto.AssignmentRequest{
		OfficialID: official.ID, EventID: event.ID, Position: "2nd Referee",
	})
	require.NoError(t, err)
	assert.Empty(t, second.Warning, "only the exact same nomination counts as a duplicate")

	third, err := env.assignments.CreateAssignment(ctx, adminSession(), &dto.AssignmentRequest{
		OfficialID: official.ID, EventID: event.ID, Position: " 2nd Referee ",
	})
	require.NoError(t, err)
	assert.Equal(t, "Ana Lima is already nominated for Open", third.Warning,
		"the position compares after trimming")
}

func TestAssignmentService_CreateUnknownReferences(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	official := env.addOfficial(t, models.Official{LastName: "Silva"})
	event := env.addEvent(t, models.Event{Name: "Cup", Season: "2025"})

	_, err := env.assignments.CreateAssignment(ctx, adminSession(), &dto.AssignmentRequest{
		OfficialID: "nobody", EventID: event.ID,
	})
	assert.ErrorIs(t, err, apperrors.ErrOfficialNotFound)

	_, err = env.assignments.CreateAssignment(ctx, adminSession(), &dto.AssignmentRequest{
		OfficialID: official.ID, EventID: "nowhere",
	})
	assert.ErrorIs(t, err, apperrors.ErrEventNotFound)
}

func TestAssignmentService_GetAssignmentsFilters(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	ana := env.addOfficial(t, models.Official{FirstName: "Ana", LastName: "Silva"})
	bo := env.addOfficial(t, models.Official{FirstName: "Bo", LastName: "Chen"})
	cup := env.addEvent(t, models.Event{Name: "Spring Cup", Season: "2025"})
	open := env.addEvent(t, models.Event{Name: "Summer Open", Season: "2025"})

	env.addAssignment(t, models.Assignment{OfficialID: ana.ID, EventID: cup.ID, Position: "1st Referee"})
	env.addAssignment(t, models.Assignment{OfficialID: bo.ID, EventID: cup.ID, Position: "2nd Referee"})
	env.addAssignment(t, models.Assignment{OfficialID: ana.ID, EventID: open.ID})

	byEvent, err := env.assignments.GetAssignments(ctx, adminSession(), &dto.AssignmentFilterRequest{EventID: cup.ID})
	require.NoError(t, err)
	assert.Len(t, byEvent, 2)

	byOfficial, err := env.assignments.GetAssignments(ctx, adminSession(), &dto.AssignmentFilterRequest{OfficialID: ana.ID})
	require.NoError(t, err)
	require.Len(t, byOfficial, 2)
	for _, a := range byOfficial {
		assert.Equal(t, "Ana Silva", a.OfficialName)
	}
}

func TestAssignmentService_GetAssignmentsKeepsDanglingRows(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	event := env.addEvent(t, models.Event{Name: "Cup", Season: "2025"})
	env.addAssignment(t, models.Assignment{OfficialID: "gone", EventID: event.ID, Position: "1st Referee"})

	all, err := env.assignments.GetAssignments(ctx, adminSession(), &dto.AssignmentFilterRequest{})
	require.NoError(t, err)

	require.Len(t, all, 1)
	assert.Empty(t, all[0].OfficialName, "deleted officials leave a blank name, not an error")
	assert.Equal(t, "Cup", all[0].EventName)
}

func TestAssignmentService_DeleteAssignment(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	official := env.addOfficial(t, models.Official{LastName: "Silva"})
	event := env.addEvent(t, models.Event{Name: "Cup", Season: "2025"})
	assignment := env.addAssignment(t, models.Assignment{OfficialID: official.ID, EventID: event.ID})

	require.NoError(t, env.assignments.DeleteAssignment(ctx, adminSession(), assignment.ID))

	all, err := env.assignments.GetAssignments(ctx, adminSession(), &dto.AssignmentFilterRequest{})
	require.NoError(t, err)
	assert.Empty(t, all)

	err = env.assignments.DeleteAssignment(ctx, adminSession(), assignment.ID)
	assert.ErrorIs(t, err, apperrors.ErrAssignmentNotFound)
}

func TestAssignmentService_RequiresAdmin(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	_, err := env.assignments.GetAssignments(ctx, auth.Anonymous(), &dto.AssignmentFilterRequest{})
	assert.ErrorIs(t, err, apperrors.ErrPermissionDenied)

	_, err = env.assignments.CreateAssignment(ctx, auth.Anonymous(), &dto.AssignmentRequest{OfficialID: "a", EventID: "b"})
	assert.ErrorIs(t, err, apperrors.ErrPermissionDenied)

	err = env.assignments.DeleteAssignment(ctx, auth.Anonymous(), "a")
	assert.ErrorIs(t, err, apperrors.ErrPermissionDenied)
}
