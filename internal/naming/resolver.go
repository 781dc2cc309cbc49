// Package naming derives the canonical human-readable identifiers used across
// the reporting databases: display ids for patients and trainers, session
// sequence numbers, and the formatted log ids for all four record kinds.
package naming

import (
	"fmt"

	"stairs/gym-reports/internal/domain"
)

// DefaultTrainerID is used when a workout carries no trainer relation.
const DefaultTrainerID = "T000"

// Candidate field names probed in order. The front-end has renamed these
// fields more than once, so all historical spellings are checked.
var (
	patientIDCandidates = []string{"ID", "Id", "Patient ID", "id"}
	trainerIDCandidates = []string{"ID", "Id", "Trainer ID", "id"}
)

// PatientDisplayID resolves a patient's 3-digit display id from its property
// bag. When no candidate field is present and populated, it falls back to the
// last 3 characters of the opaque store id. The fallback is NOT guaranteed
// unique across patients; callers accept that.
func PatientDisplayID(opaqueID string, props domain.Properties) string {
	if id, ok := resolveNumeric(patientIDCandidates, props); ok {
		return id
	}
	return suffix3(opaqueID)
}

// TrainerDisplayID resolves a trainer's display id, prefixed with T.
func TrainerDisplayID(opaqueID string, props domain.Properties) string {
	if id, ok := resolveNumeric(trainerIDCandidates, props); ok {
		return "T" + id
	}
	return "T" + suffix3(opaqueID)
}

// resolveNumeric probes the candidate list in order and returns the first
// populated numeric value, zero-padded to 3 digits. An unpopulated or
// text-typed candidate does not stop the probe. Never fails.
func resolveNumeric(candidates []string, props domain.Properties) (string, bool) {
	for _, name := range candidates {
		field, ok := props[name]
		if !ok {
			continue
		}
		switch field.Type {
		case domain.FieldTypeCounter:
			if field.Counter != nil && *field.Counter > 0 {
				return fmt.Sprintf("%03d", *field.Counter), true
			}
		case domain.FieldTypeNumber:
			if field.Number != nil && *field.Number != 0 {
				return fmt.Sprintf("%03d", int(*field.Number)), true
			}
		}
	}
	return "", false
}

// suffix3 returns the last 3 characters of the opaque id, or the whole id
// when shorter.
func suffix3(opaqueID string) string {
	if len(opaqueID) <= 3 {
		return opaqueID
	}
	return opaqueID[len(opaqueID)-3:]
}
