package export

import (
	"errors"

	"github.com/lawnchairsociety/galaxygen/internal/database"
)

// ErrNoPayload is returned when an archived record carries no document
var ErrNoPayload = errors.New("export: archived galaxy has no payload")

// Record builds the archive row for doc. The payload is the JSON document;
// size is the galaxy size preset the run was configured with.
func Record(doc *Document, size string) (*database.GalaxyRecord, error) {
	payload, err := Marshal(doc, JSON)
	if err != nil {
		return nil, err
	}
	fingerprint := ""
	if doc.Valid {
		if fingerprint, err = Fingerprint(doc); err != nil {
			return nil, err
		}
	}

	rec := &database.GalaxyRecord{
		Seed:        doc.Seed,
		Shape:       doc.Shape,
		Size:        size,
		Valid:       doc.Valid,
		Attempts:    doc.Attempts,
		Fingerprint: fingerprint,
		StarCount:   len(doc.Stars),
		Payload:     payload,
	}
	for _, d := range doc.Defects {
		rec.Defects = append(rec.Defects, database.DefectRecord{
			Attempt: d.Attempt,
			Stage:   d.Stage,
			Message: d.Message,
			Fatal:   d.Fatal,
		})
	}
	return rec, nil
}

// FromRecord decodes the document stored in an archived record
func FromRecord(rec *database.GalaxyRecord) (*Document, error) {
	if len(rec.Payload) == 0 {
		return nil, ErrNoPayload
	}
	return Unmarshal(rec.Payload)
}
