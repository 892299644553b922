package services

import (
	"context"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/google/uuid"

	"github.com/yigit/refbase/internal/app/models"
	"github.com/yigit/refbase/internal/app/models/dto"
	"github.com/yigit/refbase/internal/app/repositories"
	"github.com/yigit/refbase/internal/export"
	"github.com/yigit/refbase/internal/pkg/apperrors"
	"github.com/yigit/refbase/internal/pkg/auth"
	"github.com/yigit/refbase/internal/pkg/filestore"
	"github.com/yigit/refbase/internal/pkg/helpers"
)

// AttachmentUploadFunc is the shape shared by the photo and passport
// upload operations, so handlers can treat them uniformly.
type AttachmentUploadFunc func(ctx context.Context, session auth.Session, id, filename string, r io.Reader) (*models.Official, error)

// OfficialService defines the interface for roster operations
type OfficialService interface {
	GetOfficials(ctx context.Context, filter *dto.OfficialFilterRequest) (*dto.OfficialListResponse, error)
	GetOfficialByID(ctx context.Context, id string) (*models.Official, error)
	CreateOfficial(ctx context.Context, session auth.Session, req *dto.OfficialRequest) (*models.Official, error)
	UpdateOfficial(ctx context.Context, session auth.Session, id string, req *dto.OfficialRequest) (*models.Official, error)
	UploadPhoto(ctx context.Context, session auth.Session, id, filename string, r io.Reader) (*models.Official, error)
	UploadPassport(ctx context.Context, session auth.Session, id, filename string, r io.Reader) (*models.Official, error)
	OpenPhoto(ctx context.Context, id string) (io.ReadCloser, string, error)
	OpenPassport(ctx context.Context, session auth.Session, id string) (io.ReadCloser, string, error)
	ImportOfficials(ctx context.Context, session auth.Session, filename string, r io.Reader) (*dto.ImportReportResponse, error)
	ExportOfficials(ctx context.Context, session auth.Session) ([]byte, string, error)
}

// officialServiceImpl implements the OfficialService interface
type officialServiceImpl struct {
	officialRepo *repositories.OfficialRepository
	files        *filestore.Store
}

// NewOfficialService creates a new official service instance
func NewOfficialService(officialRepo *repositories.OfficialRepository, files *filestore.Store) OfficialService {
	return &officialServiceImpl{
		officialRepo: officialRepo,
		files:        files,
	}
}

// validateEnums checks every closed-list field of an official. The API is
// strict here; only imports get the reset-to-empty leniency.
func validateEnums(o *models.Official) error {
	checks := []struct {
		field   string
		value   string
		allowed []string
	}{
		{"gender", o.Gender, models.Genders},
		{"zone", o.Zone, models.Zones},
		{"positionType", o.PositionType, models.PositionTypes},
		{"ccRole", o.CCRole, models.CCRoles},
		{"refLevel", o.RefLevel, models.RefLevels},
		{"type", o.Type, models.RefTypes},
		{"shirtSize", o.ShirtSize, models.UniformSizes},
		{"shortsSize", o.ShortsSize, models.UniformSizes},
	}
	for _, c := range checks {
		if !models.InList(c.value, c.allowed) {
			return fmt.Errorf("%w: %s %q is not an allowed value", apperrors.ErrValidationFailed, c.field, c.value)
		}
	}
	return nil
}

// officialFromRequest merges request data over base. Base is nil on
// create; on update it supplies the identity and attachment paths, which
// requests can never change.
func officialFromRequest(req *dto.OfficialRequest, base *models.Official) (*models.Official, error) {
	o := models.Official{Active: true}
	if base != nil {
		o = *base
	}

	o.FirstName = strings.TrimSpace(req.FirstName)
	o.LastName = strings.TrimSpace(req.LastName)
	o.Gender = strings.TrimSpace(req.Gender)
	o.Nationality = strings.TrimSpace(req.Nationality)
	o.Zone = strings.TrimSpace(req.Zone)
	o.Birthdate = strings.TrimSpace(req.Birthdate)
	o.FIVBID = strings.TrimSpace(req.FIVBID)
	o.Email = strings.TrimSpace(req.Email)
	o.Phone = strings.TrimSpace(req.Phone)
	o.OriginAirport = strings.TrimSpace(req.OriginAirport)
	o.PositionType = strings.TrimSpace(req.PositionType)
	o.CCRole = strings.TrimSpace(req.CCRole)
	o.RefLevel = strings.TrimSpace(req.RefLevel)
	o.CourseYear = strings.TrimSpace(req.CourseYear)
	o.ShirtSize = strings.TrimSpace(req.ShirtSize)
	o.ShortsSize = strings.TrimSpace(req.ShortsSize)
	o.Type = strings.TrimSpace(req.Type)
	if req.Active != nil {
		o.Active = *req.Active
	}

	if o.DisplayName() == "" {
		return nil, fmt.Errorf("%w: official needs a first or last name", apperrors.ErrValidationFailed)
	}
	if err := validateEnums(&o); err != nil {
		return nil, err
	}
	return &o, nil
}

// sortOfficials orders the roster for display: position type, then last
// name, then first name.
func sortOfficials(officials []models.Official) {
	sort.SliceStable(officials, func(i, j int) bool {
		if officials[i].PositionType != officials[j].PositionType {
			return officials[i].PositionType < officials[j].PositionType
		}
		if officials[i].LastName != officials[j].LastName {
			return officials[i].LastName < officials[j].LastName
		}
		return officials[i].FirstName < officials[j].FirstName
	})
}

func matchesFilter(o *models.Official, filter *dto.OfficialFilterRequest) bool {
	if filter.Zone != "" && o.Zone != filter.Zone {
		return false
	}
	if filter.PositionType != "" && o.PositionType != filter.PositionType {
		return false
	}
	if filter.RefLevel != "" && o.RefLevel != filter.RefLevel {
		return false
	}
	if filter.Type != "" && o.Type != filter.Type {
		return false
	}
	if filter.Active != nil && o.Active != *filter.Active {
		return false
	}
	if q := strings.ToLower(strings.TrimSpace(filter.Query)); q != "" {
		hay := strings.ToLower(o.DisplayName() + " " + o.FIVBID + " " + o.Nationality + " " + o.Email)
		if !strings.Contains(hay, q) {
			return false
		}
	}
	return true
}

// GetOfficials retrieves a filtered, sorted, paginated roster page
func (s *officialServiceImpl) GetOfficials(ctx context.Context, filter *dto.OfficialFilterRequest) (*dto.OfficialListResponse, error) {
	officials, err := s.officialRepo.GetAllOfficials(ctx)
	if err != nil {
		return nil, err
	}

	matched := make([]models.Official, 0, len(officials))
	for i := range officials {
		if matchesFilter(&officials[i], filter) {
			matched = append(matched, officials[i])
		}
	}
	sortOfficials(matched)

	pagination := helpers.NewPaginationInfo(filter.Page, filter.PageSize, len(matched))
	start, end := helpers.CalculateSliceIndices(pagination.CurrentPage, pagination.PageSize, len(matched))

	page := make([]dto.OfficialResponse, 0, end-start)
	for i := start; i < end; i++ {
		page = append(page, dto.FromOfficial(&matched[i]))
	}

	return &dto.OfficialListResponse{
		Officials:  page,
		Pagination: pagination,
	}, nil
}

// GetOfficialByID retrieves an official by ID
func (s *officialServiceImpl) GetOfficialByID(ctx context.Context, id string) (*models.Official, error) {
	return s.officialRepo.GetOfficialByID(ctx, id)
}

// CreateOfficial adds a new official to the roster
func (s *officialServiceImpl) CreateOfficial(ctx context.Context, session auth.Session, req *dto.OfficialRequest) (*models.Official, error) {
	if err := requireAdmin(session); err != nil {
		return nil, err
	}

	official, err := officialFromRequest(req, nil)
	if err != nil {
		return nil, err
	}
	official.ID = uuid.NewString()

	if err := s.officialRepo.CreateOfficial(ctx, official); err != nil {
		return nil, fmt.Errorf("creating official: %w", err)
	}
	return official, nil
}

// UpdateOfficial replaces an existing official's editable fields
func (s *officialServiceImpl) UpdateOfficial(ctx context.Context, session auth.Session, id string, req *dto.OfficialRequest) (*models.Official, error) {
	if err := requireAdmin(session); err != nil {
		return nil, err
	}

	base, err := s.officialRepo.GetOfficialByID(ctx, id)
	if err != nil {
		return nil, err
	}

	official, err := officialFromRequest(req, base)
	if err != nil {
		return nil, err
	}

	if err := s.officialRepo.UpdateOfficial(ctx, official); err != nil {
		return nil, fmt.Errorf("updating official: %w", err)
	}
	return official, nil
}

// UploadPhoto stores a photo and records its path on the official
func (s *officialServiceImpl) UploadPhoto(ctx context.Context, session auth.Session, id, filename string, r io.Reader) (*models.Official, error) {
	return s.uploadAttachment(ctx, session, id, filename, r, filestore.KindPhoto)
}

// UploadPassport stores a passport scan and records its path on the official
func (s *officialServiceImpl) UploadPassport(ctx context.Context, session auth.Session, id, filename string, r io.Reader) (*models.Official, error) {
	return s.uploadAttachment(ctx, session, id, filename, r, filestore.KindPassport)
}

func (s *officialServiceImpl) uploadAttachment(ctx context.Context, session auth.Session, id, filename string, r io.Reader, kind filestore.Kind) (*models.Official, error) {
	if err := requireAdmin(session); err != nil {
		return nil, err
	}

	official, err := s.officialRepo.GetOfficialByID(ctx, id)
	if err != nil {
		return nil, err
	}

	relPath, err := s.files.Put(ctx, kind, id, filename, r)
	if err != nil {
		return nil, err
	}

	switch kind {
	case filestore.KindPhoto:
		err = s.officialRepo.SetPhotoFile(ctx, id, relPath)
		official.PhotoFile = relPath
	case filestore.KindPassport:
		err = s.officialRepo.SetPassportFile(ctx, id, relPath)
		official.PassportFile = relPath
	}
	if err != nil {
		return nil, fmt.Errorf("recording %s path: %w", kind, err)
	}
	return official, nil
}

// OpenPhoto streams an official's photo
func (s *officialServiceImpl) OpenPhoto(ctx context.Context, id string) (io.ReadCloser, string, error) {
	official, err := s.officialRepo.GetOfficialByID(ctx, id)
	if err != nil {
		return nil, "", err
	}
	if official.PhotoFile == "" {
		return nil, "", fmt.Errorf("%w: official %s has no photo", apperrors.ErrAttachmentNotFound, id)
	}
	return s.files.Open(ctx, official.PhotoFile)
}

// OpenPassport streams an official's passport scan. Passports are
// restricted to admins.
func (s *officialServiceImpl) OpenPassport(ctx context.Context, session auth.Session, id string) (io.ReadCloser, string, error) {
	if err := requireAdmin(session); err != nil {
		return nil, "", err
	}

	official, err := s.officialRepo.GetOfficialByID(ctx, id)
	if err != nil {
		return nil, "", err
	}
	if official.PassportFile == "" {
		return nil, "", fmt.Errorf("%w: official %s has no passport on file", apperrors.ErrAttachmentNotFound, id)
	}
	return s.files.Open(ctx, official.PassportFile)
}

// ExportOfficials renders the roster as a spreadsheet
func (s *officialServiceImpl) ExportOfficials(ctx context.Context, session auth.Session) ([]byte, string, error) {
	if err := requireAdmin(session); err != nil {
		return nil, "", err
	}

	officials, err := s.officialRepo.GetAllOfficials(ctx)
	if err != nil {
		return nil, "", err
	}
	sortOfficials(officials)

	data, err := export.OfficialsWorkbook(officials)
	if err != nil {
		return nil, "", fmt.Errorf("building roster workbook: %w", err)
	}
	return data, "referees.xlsx", nil
}
