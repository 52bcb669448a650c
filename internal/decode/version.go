package decode

import (
	"github.com/rs/zerolog"

	"github.com/danmuck/orcadec/internal/cursor"
	"github.com/danmuck/orcadec/internal/format"
)

// PredictVersion determines the file format version by trial decode:
// each candidate, newest first, gets a fresh cursor and decoder over
// the same bytes, and the first one whose trial parse succeeds wins.
// Trial runs are silenced; only the verdict is logged. Returns
// VersionUnknown when no candidate parses.
func PredictVersion(data []byte, tbl StringTable, log zerolog.Logger, trial func(*Decoder) error) format.Version {
	for _, v := range format.Candidates() {
		d := New(cursor.New(data, zerolog.Nop()), v, tbl, zerolog.Nop())
		if err := trial(d); err != nil {
			log.Trace().
				Stringer("version", v).
				Err(err).
				Msg("version candidate rejected")
			continue
		}
		log.Debug().
			Stringer("version", v).
			Msg("predicted file format version")
		return v
	}
	log.Warn().Msg("no file format version candidate parsed cleanly")
	return format.VersionUnknown
}
