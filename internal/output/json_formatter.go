package output

import (
	"encoding/json"

	"github.com/rpgo/networth-planner/internal/domain"
)

// JSONFormatter serializes the whole projection as pretty-printed JSON. The
// view does not apply: both record sequences are included.
var JSONFormatter = FormatterFunc{ID: "json", F: formatJSON}

func formatJSON(proj *domain.Projection, _ View) ([]byte, error) {
	if proj == nil {
		return nil, ErrNoProjection
	}
	return json.MarshalIndent(proj, "", "  ")
}
