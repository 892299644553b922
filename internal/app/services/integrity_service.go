package services

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/yigit/refbase/internal/app/repositories"
	"github.com/yigit/refbase/internal/pkg/auth"
	"github.com/yigit/refbase/internal/pkg/filestore"
)

// IntegrityService owns the deletes that touch more than one table, so
// no other service has to know the full reference graph.
type IntegrityService interface {
	DeleteOfficial(ctx context.Context, session auth.Session, id string) error
	DeleteEvent(ctx context.Context, session auth.Session, id string) error
}

// integrityServiceImpl implements the IntegrityService interface
type integrityServiceImpl struct {
	officialRepo   *repositories.OfficialRepository
	eventRepo      *repositories.EventRepository
	availRepo      *repositories.AvailabilityRepository
	assignmentRepo *repositories.AssignmentRepository
	files          *filestore.Store
	logger         zerolog.Logger
}

// NewIntegrityService creates a new integrity service instance
func NewIntegrityService(
	officialRepo *repositories.OfficialRepository,
	eventRepo *repositories.EventRepository,
	availRepo *repositories.AvailabilityRepository,
	assignmentRepo *repositories.AssignmentRepository,
	files *filestore.Store,
	logger zerolog.Logger,
) IntegrityService {
	return &integrityServiceImpl{
		officialRepo:   officialRepo,
		eventRepo:      eventRepo,
		availRepo:      availRepo,
		assignmentRepo: assignmentRepo,
		files:          files,
		logger:         logger,
	}
}

// DeleteOfficial removes an official along with their availability
// answers, nominations and local attachment files. The roster row must
// go first; the cleanup steps each persist on their own and a failure
// there is logged rather than surfaced, so a half-finished cascade never
// resurrects the official. Mirrored attachment copies are kept as an
// archive.
func (s *integrityServiceImpl) DeleteOfficial(ctx context.Context, session auth.Session, id string) error {
	if err := requireAdmin(session); err != nil {
		return err
	}

	official, err := s.officialRepo.GetOfficialByID(ctx, id)
	if err != nil {
		return err
	}

	if err := s.officialRepo.DeleteOfficial(ctx, id); err != nil {
		return err
	}

	if n, err := s.availRepo.DeleteByOfficial(ctx, id); err != nil {
		s.logger.Warn().Err(err).Str("officialId", id).Msg("Failed to delete availability for official")
	} else if n > 0 {
		s.logger.Info().Int("rows", n).Str("officialId", id).Msg("Deleted availability for official")
	}

	if n, err := s.assignmentRepo.DeleteByOfficial(ctx, id); err != nil {
		s.logger.Warn().Err(err).Str("officialId", id).Msg("Failed to delete assignments for official")
	} else if n > 0 {
		s.logger.Info().Int("rows", n).Str("officialId", id).Msg("Deleted assignments for official")
	}

	for _, relPath := range []string{official.PhotoFile, official.PassportFile} {
		if relPath == "" {
			continue
		}
		if err := s.files.DeleteLocal(relPath); err != nil {
			s.logger.Warn().Err(err).Str("path", relPath).Msg("Failed to delete attachment file")
		}
	}

	s.logger.Info().Str("officialId", id).Str("name", official.DisplayName()).Msg("Official deleted")
	return nil
}

// DeleteEvent removes an event along with the availability answers and
// nominations that reference it, with the same step-by-step persistence
// as DeleteOfficial.
func (s *integrityServiceImpl) DeleteEvent(ctx context.Context, session auth.Session, id string) error {
	if err := requireAdmin(session); err != nil {
		return err
	}

	event, err := s.eventRepo.GetEventByID(ctx, id)
	if err != nil {
		return err
	}

	if err := s.eventRepo.DeleteEvent(ctx, id); err != nil {
		return err
	}

	if n, err := s.availRepo.DeleteByEvent(ctx, id); err != nil {
		s.logger.Warn().Err(err).Str("eventId", id).Msg("Failed to delete availability for event")
	} else if n > 0 {
		s.logger.Info().Int("rows", n).Str("eventId", id).Msg("Deleted availability for event")
	}

	if n, err := s.assignmentRepo.DeleteByEvent(ctx, id); err != nil {
		s.logger.Warn().Err(err).Str("eventId", id).Msg("Failed to delete assignments for event")
	} else if n > 0 {
		s.logger.Info().Int("rows", n).Str("eventId", id).Msg("Deleted assignments for event")
	}

	s.logger.Info().Str("eventId", id).Str("name", event.Name).Msg("Event deleted")
	return nil
}
