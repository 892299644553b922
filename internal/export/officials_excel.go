package export

import "github.com/yigit/refbase/internal/app/models"

// officialsHeader matches the stored column names so an exported sheet
// can be re-imported without renaming anything. Attachment paths are
// left out; they only mean something inside the data directory.
var officialsHeader = []string{
	"ref_id",
	"first_name",
	"last_name",
	"gender",
	"nationality",
	"zone",
	"birthdate",
	"fivb_id",
	"email",
	"phone",
	"origin_airport",
	"position_type",
	"cc_role",
	"ref_level",
	"course_year",
	"shirt_size",
	"shorts_size",
	"active",
	"type",
}

// OfficialsWorkbook renders the roster as a single-sheet workbook.
func OfficialsWorkbook(officials []models.Official) ([]byte, error) {
	rows := make([][]string, 0, len(officials))
	for i := range officials {
		o := &officials[i]
		rows = append(rows, []string{
			o.ID,
			o.FirstName,
			o.LastName,
			o.Gender,
			o.Nationality,
			o.Zone,
			o.Birthdate,
			o.FIVBID,
			o.Email,
			o.Phone,
			o.OriginAirport,
			o.PositionType,
			o.CCRole,
			o.RefLevel,
			o.CourseYear,
			o.ShirtSize,
			o.ShortsSize,
			models.FormatBool(o.Active),
			o.Type,
		})
	}

	return writeWorkbook([]SheetSpec{{
		Title:  "Referees",
		Header: officialsHeader,
		Rows:   rows,
	}})
}
