package dto

import "github.com/yigit/refbase/internal/app/models"

// OfficialResponse represents one roster member
type OfficialResponse struct {
	ID            string `json:"id"`
	FirstName     string `json:"firstName"`
	LastName      string `json:"lastName"`
	DisplayName   string `json:"displayName"`
	Gender        string `json:"gender"`
	Nationality   string `json:"nationality"`
	Zone          string `json:"zone"`
	Birthdate     string `json:"birthdate"`
	FIVBID        string `json:"fivbId"`
	Email         string `json:"email"`
	Phone         string `json:"phone"`
	OriginAirport string `json:"originAirport"`
	PositionType  string `json:"positionType"`
	CCRole        string `json:"ccRole"`
	RefLevel      string `json:"refLevel"`
	CourseYear    string `json:"courseYear"`
	PhotoFile     string `json:"photoFile"`
	PassportFile  string `json:"passportFile"`
	ShirtSize     string `json:"shirtSize"`
	ShortsSize    string `json:"shortsSize"`
	Active        bool   `json:"active"`
	Type          string `json:"type"`
}

// FromOfficial converts a models.Official to an OfficialResponse
func FromOfficial(o *models.Official) OfficialResponse {
	return OfficialResponse{
		ID:            o.ID,
		FirstName:     o.FirstName,
		LastName:      o.LastName,
		DisplayName:   o.DisplayName(),
		Gender:        o.Gender,
		Nationality:   o.Nationality,
		Zone:          o.Zone,
		Birthdate:     o.Birthdate,
		FIVBID:        o.FIVBID,
		Email:         o.Email,
		Phone:         o.Phone,
		OriginAirport: o.OriginAirport,
		PositionType:  o.PositionType,
		CCRole:        o.CCRole,
		RefLevel:      o.RefLevel,
		CourseYear:    o.CourseYear,
		PhotoFile:     o.PhotoFile,
		PassportFile:  o.PassportFile,
		ShirtSize:     o.ShirtSize,
		ShortsSize:    o.ShortsSize,
		Active:        o.Active,
		Type:          o.Type,
	}
}

// OfficialRequest carries the editable fields of an official. Create and
// update both replace the whole record, so they share one shape.
type OfficialRequest struct {
	FirstName     string `json:"firstName"`
	LastName      string `json:"lastName"`
	Gender        string `json:"gender"`
	Nationality   string `json:"nationality"`
	Zone          string `json:"zone"`
	Birthdate     string `json:"birthdate"`
	FIVBID        string `json:"fivbId"`
	Email         string `json:"email"`
	Phone         string `json:"phone"`
	OriginAirport string `json:"originAirport"`
	PositionType  string `json:"positionType"`
	CCRole        string `json:"ccRole"`
	RefLevel      string `json:"refLevel"`
	CourseYear    string `json:"courseYear"`
	ShirtSize     string `json:"shirtSize"`
	ShortsSize    string `json:"shortsSize"`
	Active        *bool  `json:"active"`
	Type          string `json:"type"`
}

// OfficialFilterRequest represents list filter parameters
type OfficialFilterRequest struct {
	Query        string `form:"q"`
	Zone         string `form:"zone"`
	PositionType string `form:"positionType"`
	RefLevel     string `form:"refLevel"`
	Type         string `form:"type"`
	Active       *bool  `form:"active"`
	Page         int    `form:"page"`
	PageSize     int    `form:"size"`
}

// OfficialListResponse represents a page of officials
type OfficialListResponse struct {
	Officials  []OfficialResponse `json:"officials"`
	Pagination PaginationInfo     `json:"pagination"`
}

// ImportReportResponse summarizes a roster import
type ImportReportResponse struct {
	Added             int      `json:"added"`
	SkippedNoName     int      `json:"skippedNoName"`
	SkippedDuplicates int      `json:"skippedDuplicates"`
	Notes             []string `json:"notes,omitempty"`
}
