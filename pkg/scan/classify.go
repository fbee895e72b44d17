package scan

import (
	"github.com/sdejongh/hashsentry/pkg/models"
)

// Classify annotates each record with its comparison status against the
// reference map. Records are classified independently: a key absent from
// the map is UNKNOWN, an exact hash match is MATCH, anything else is
// MISMATCH. Classification is total; every record receives exactly one
// status and no error path exists.
//
// The slice is mutated through its exclusive owner (the report); records
// must not be shared with concurrent readers while this runs.
func Classify(records []models.HashRecord, refs models.ReferenceMap) {
	for i := range records {
		expected, known := refs[records[i].Key]
		switch {
		case !known:
			records[i].Status = models.StatusUnknown
		case expected == records[i].Hash:
			records[i].Status = models.StatusMatch
		default:
			records[i].Status = models.StatusMismatch
		}
	}
}
