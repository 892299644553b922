package export

import (
	"github.com/yigit/refbase/internal/app/models/dto"
	"github.com/yigit/refbase/internal/pkg/helpers"
)

var rosterHeader = []string{
	"season",
	"start_date",
	"end_date",
	"event_name",
	"location",
	"ref_name",
	"position",
	"status",
	"airfare_estimate",
	"timestamp",
}

// RosterWorkbook renders the merged roster report as a single-sheet
// workbook, in the same row order the report came in.
func RosterWorkbook(rows []dto.RosterRowResponse) ([]byte, error) {
	sheetRows := make([][]string, 0, len(rows))
	for i := range rows {
		row := &rows[i]
		timestamp := ""
		if row.Timestamp != nil {
			timestamp = helpers.FormatTimestamp(*row.Timestamp)
		}
		sheetRows = append(sheetRows, []string{
			row.Season,
			row.StartDate.String(),
			row.EndDate.String(),
			row.EventName,
			row.Location,
			row.OfficialName,
			row.Position,
			string(row.Status),
			row.AirfareEstimate,
			timestamp,
		})
	}

	return writeWorkbook([]SheetSpec{{
		Title:  "Roster",
		Header: rosterHeader,
		Rows:   sheetRows,
	}})
}
