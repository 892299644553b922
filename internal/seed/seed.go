package seed

import (
	"context"
	"errors"

	"github.com/rs/zerolog"

	appRepos "github.com/yigit/refbase/internal/app/repositories"
	"github.com/yigit/refbase/internal/pkg/tabular"
)

// tables lists every table the app owns with its expected columns.
var tables = []struct {
	name    string
	columns []string
}{
	{appRepos.OfficialsFile, appRepos.OfficialColumns},
	{appRepos.EventsFile, appRepos.EventColumns},
	{appRepos.AvailabilityFile, appRepos.AvailabilityColumns},
	{appRepos.AssignmentsFile, appRepos.AssignmentColumns},
}

// CreateDefaultData materializes the local copy of every table the app owns.
// On a fresh machine this hydrates the data directory from the mirror, or
// creates header-only files when the mirror has nothing, so later requests
// keep working even if the mirror becomes unreachable. Problems are
// collected and reported but never stop the boot.
func CreateDefaultData(ctx context.Context, store *tabular.Store, lgr zerolog.Logger) error {
	lgr.Info().Str("dataDir", store.DataDir()).Msg("Checking/Creating local data files...")
	var finalErr error // To collect potential errors without stopping the process

	for _, tbl := range tables {
		if err := store.WarmLocal(ctx, tbl.name, tbl.columns); err != nil {
			lgr.Error().Err(err).Str("table", tbl.name).Msg("Error materializing local table copy")
			finalErr = errors.Join(finalErr, err)
		}
	}

	lgr.Info().Msg("Local data check/creation finished.")
	return finalErr // Return collected errors, if any
}
