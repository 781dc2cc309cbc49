package naming

import (
	"fmt"
	"strings"
	"time"
)

// FormatError reports an identifier that cannot be built from its inputs.
// The offending record is skipped, never the batch.
type FormatError struct {
	Field  string
	Value  string
	Reason string
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("naming: invalid %s %q: %s", e.Field, e.Value, e.Reason)
}

// normalizeDate accepts a calendar date as YYYY-MM-DD or YYYYMMDD and returns
// the compact YYYYMMDD form used inside identifiers.
func normalizeDate(date string) (string, error) {
	for _, layout := range []string{"2006-01-02", "20060102"} {
		if t, err := time.Parse(layout, date); err == nil {
			return t.Format("20060102"), nil
		}
	}
	return "", &FormatError{Field: "date", Value: date, Reason: "not a YYYY-MM-DD or YYYYMMDD date"}
}

func checkPatientID(patientID string) error {
	if len(patientID) != 3 {
		return &FormatError{Field: "patient id", Value: patientID, Reason: "must be exactly 3 characters"}
	}
	return nil
}

// AssessmentID formats ASSESS-{patient}-{trainer}-{YYYYMMDD}.
func AssessmentID(patientID, trainerID, date string) (string, error) {
	if err := checkPatientID(patientID); err != nil {
		return "", err
	}
	day, err := normalizeDate(date)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("ASSESS-%s-%s-%s", patientID, trainerID, day), nil
}

// WorkoutID formats WO-{patient}-{trainer}-{YYYYMMDD}-{session:03d}.
func WorkoutID(patientID, trainerID, date string, session int) (string, error) {
	if err := checkPatientID(patientID); err != nil {
		return "", err
	}
	if session < 1 {
		return "", &FormatError{Field: "session", Value: fmt.Sprint(session), Reason: "must be positive"}
	}
	day, err := normalizeDate(date)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("WO-%s-%s-%s-%03d", patientID, trainerID, day, session), nil
}

// WeeklyID formats WEEKLY-{patient}-W{isoWeek:02d}-{year} from the week's
// start date. The year is the week start's calendar year, matching how the
// stored reports have always been named.
func WeeklyID(patientID string, weekStart time.Time) (string, error) {
	if err := checkPatientID(patientID); err != nil {
		return "", err
	}
	_, week := weekStart.ISOWeek()
	return fmt.Sprintf("WEEKLY-%s-W%02d-%d", patientID, week, weekStart.Year()), nil
}

// MonthlyID formats MONTHLY-{patient}-{MON}{year}, e.g. MONTHLY-001-OCT2025.
func MonthlyID(patientID string, monthStart time.Time) (string, error) {
	if err := checkPatientID(patientID); err != nil {
		return "", err
	}
	mon := strings.ToUpper(monthStart.Month().String()[:3])
	return fmt.Sprintf("MONTHLY-%s-%s%d", patientID, mon, monthStart.Year()), nil
}
