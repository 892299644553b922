package repositories

import (
	"context"
	"fmt"

	"github.com/yigit/refbase/internal/app/models"
	"github.com/yigit/refbase/internal/pkg/apperrors"
	"github.com/yigit/refbase/internal/pkg/tabular"
)

// AssignmentsFile is the nomination table name under the data directory.
const AssignmentsFile = "assignments.csv"

// AssignmentColumns is the canonical column order of the nomination table.
var AssignmentColumns = []string{
	"assign_id",
	"ref_id",
	"event_id",
	"position",
}

// AssignmentRepository handles nomination table operations
type AssignmentRepository struct {
	store *tabular.Store
}

// NewAssignmentRepository creates a new AssignmentRepository
func NewAssignmentRepository(store *tabular.Store) *AssignmentRepository {
	return &AssignmentRepository{store: store}
}

func rowToAssignment(row tabular.Row) models.Assignment {
	return models.Assignment{
		ID:         row["assign_id"],
		OfficialID: row["ref_id"],
		EventID:    row["event_id"],
		Position:   row["position"],
	}
}

func writeAssignment(row tabular.Row, a *models.Assignment) {
	row["assign_id"] = a.ID
	row["ref_id"] = a.OfficialID
	row["event_id"] = a.EventID
	row["position"] = a.Position
}

// GetAllAssignments retrieves every nomination in file order
func (r *AssignmentRepository) GetAllAssignments(ctx context.Context) ([]models.Assignment, error) {
	t := r.store.Load(ctx, AssignmentsFile, AssignmentColumns)
	assignments := make([]models.Assignment, 0, len(t.Rows))
	for _, row := range t.Rows {
		assignments = append(assignments, rowToAssignment(row))
	}
	return assignments, nil
}

// GetAssignmentByID retrieves a nomination by ID
func (r *AssignmentRepository) GetAssignmentByID(ctx context.Context, id string) (*models.Assignment, error) {
	t := r.store.Load(ctx, AssignmentsFile, AssignmentColumns)
	row := t.Find(func(row tabular.Row) bool { return row["assign_id"] == id })
	if row == nil {
		return nil, fmt.Errorf("%w: assignment %s", apperrors.ErrAssignmentNotFound, id)
	}
	a := rowToAssignment(row)
	return &a, nil
}

// HasAssignment reports whether the exact nomination is already on file.
// The same official in a different position is not a duplicate.
func (r *AssignmentRepository) HasAssignment(ctx context.Context, officialID, eventID, position string) (bool, error) {
	t := r.store.Load(ctx, AssignmentsFile, AssignmentColumns)
	row := t.Find(func(row tabular.Row) bool {
		return row["ref_id"] == officialID && row["event_id"] == eventID && row["position"] == position
	})
	return row != nil, nil
}

// CreateAssignment appends a new nomination
func (r *AssignmentRepository) CreateAssignment(ctx context.Context, a *models.Assignment) error {
	return r.store.Update(ctx, AssignmentsFile, AssignmentColumns, func(t *tabular.Table) error {
		row := tabular.Row{}
		writeAssignment(row, a)
		t.Append(row)
		return nil
	})
}

// DeleteAssignment removes a nomination row
func (r *AssignmentRepository) DeleteAssignment(ctx context.Context, id string) error {
	return r.store.Update(ctx, AssignmentsFile, AssignmentColumns, func(t *tabular.Table) error {
		if n := t.Delete(func(row tabular.Row) bool { return row["assign_id"] == id }); n == 0 {
			return fmt.Errorf("%w: assignment %s", apperrors.ErrAssignmentNotFound, id)
		}
		return nil
	})
}

// DeleteByOfficial removes every nomination of one official. Returns the
// number of rows removed.
func (r *AssignmentRepository) DeleteByOfficial(ctx context.Context, officialID string) (int, error) {
	return r.deleteMatching(ctx, func(row tabular.Row) bool { return row["ref_id"] == officialID })
}

// DeleteByEvent removes every nomination referencing one event. Returns
// the number of rows removed.
func (r *AssignmentRepository) DeleteByEvent(ctx context.Context, eventID string) (int, error) {
	return r.deleteMatching(ctx, func(row tabular.Row) bool { return row["event_id"] == eventID })
}

func (r *AssignmentRepository) deleteMatching(ctx context.Context, match func(tabular.Row) bool) (int, error) {
	removed := 0
	err := r.store.Update(ctx, AssignmentsFile, AssignmentColumns, func(t *tabular.Table) error {
		removed = t.Delete(match)
		return nil
	})
	return removed, err
}
