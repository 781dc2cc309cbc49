package naming

import "strings"

// Structural checks for stored identifiers, used by the verify pass. They
// validate shape only (segment count, digit widths, T prefix), not that the
// id matches the record it sits on.

// ValidAssessmentID reports whether id matches ASSESS-XXX-TXXX-YYYYMMDD.
func ValidAssessmentID(id string) bool {
	parts := strings.Split(id, "-")
	return len(parts) == 4 &&
		parts[0] == "ASSESS" &&
		isDigits(parts[1], 3) &&
		isTrainerPart(parts[2]) &&
		isDigits(parts[3], 8)
}

// ValidWorkoutID reports whether id matches WO-XXX-TXXX-YYYYMMDD-XXX.
func ValidWorkoutID(id string) bool {
	parts := strings.Split(id, "-")
	return len(parts) == 5 &&
		parts[0] == "WO" &&
		isDigits(parts[1], 3) &&
		isTrainerPart(parts[2]) &&
		isDigits(parts[3], 8) &&
		isDigits(parts[4], 3)
}

// ValidWeeklyID reports whether id matches WEEKLY-XXX-WNN-YYYY.
func ValidWeeklyID(id string) bool {
	parts := strings.Split(id, "-")
	return len(parts) == 4 &&
		parts[0] == "WEEKLY" &&
		isDigits(parts[1], 3) &&
		len(parts[2]) == 3 && parts[2][0] == 'W' && isDigits(parts[2][1:], 2) &&
		isDigits(parts[3], 4)
}

// ValidMonthlyID reports whether id matches MONTHLY-XXX-MONYYYY.
func ValidMonthlyID(id string) bool {
	parts := strings.Split(id, "-")
	if len(parts) != 3 || parts[0] != "MONTHLY" || !isDigits(parts[1], 3) {
		return false
	}
	tail := parts[2]
	if len(tail) != 7 {
		return false
	}
	mon, year := tail[:3], tail[3:]
	return isUpperAlpha(mon) && isDigits(year, 4)
}

func isDigits(s string, n int) bool {
	if len(s) != n {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

func isTrainerPart(s string) bool {
	return len(s) == 4 && s[0] == 'T' && isDigits(s[1:], 3)
}

func isUpperAlpha(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < 'A' || s[i] > 'Z' {
			return false
		}
	}
	return len(s) > 0
}
