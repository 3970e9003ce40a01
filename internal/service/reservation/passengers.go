package reservation

import (
	"fmt"
	"strings"
	"time"

	"github.com/aroya-air/seatwise/internal/domain"
)

// PassengerInput is a possibly incomplete passenger entry as supplied by
// the caller; validation decides what is usable.
type PassengerInput struct {
	Name   string `json:"name"`
	Age    *int   `json:"age"`
	Gender string `json:"gender"`
	DOB    string `json:"dob"`
	Email  string `json:"email"`
}

// Issue describes one validation problem on one passenger entry.
type Issue struct {
	Index   int    `json:"index"`
	Field   string `json:"field"`
	Message string `json:"message"`
}

const missingFieldMsg = "Required field is missing."

// parseDOB accepts a bare date or a full timestamp and reduces it to a
// date string.
func parseDOB(raw string) (string, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", false
	}
	for _, layout := range []string{"2006-01-02", time.RFC3339} {
		if t, err := time.Parse(layout, raw); err == nil {
			return t.Format("2006-01-02"), true
		}
	}
	return "", false
}

// ageMatchesDOB checks the stated age against the date of birth with a
// one-year tolerance for not-yet-passed birthdays.
func ageMatchesDOB(age int, dob string, now time.Time) (bool, int) {
	born, err := time.Parse("2006-01-02", dob)
	if err != nil {
		return false, 0
	}

	years := now.Year() - born.Year()
	if now.YearDay() < born.YearDay() {
		years--
	}
	if years < 0 {
		return false, years
	}

	diff := age - years
	if diff < 0 {
		diff = -diff
	}
	return diff <= 1, years
}

// validatePassengers checks each entry for completeness and consistency.
// Entries beyond the provided list (when count exceeds it) are reported
// as wholly missing. Valid passengers are returned in input order.
func validatePassengers(count int, entries []PassengerInput, now time.Time) ([]domain.Passenger, []Issue) {
	total := count
	if len(entries) > total {
		total = len(entries)
	}

	var valid []domain.Passenger
	var issues []Issue

	for idx := 0; idx < total; idx++ {
		var entry PassengerInput
		if idx < len(entries) {
			entry = entries[idx]
		}

		var missing []Issue
		if strings.TrimSpace(entry.Name) == "" {
			missing = append(missing, Issue{Index: idx, Field: "name", Message: missingFieldMsg})
		}
		if entry.Age == nil {
			missing = append(missing, Issue{Index: idx, Field: "age", Message: missingFieldMsg})
		}
		if strings.TrimSpace(entry.Gender) == "" {
			missing = append(missing, Issue{Index: idx, Field: "gender", Message: missingFieldMsg})
		}
		if strings.TrimSpace(entry.DOB) == "" {
			missing = append(missing, Issue{Index: idx, Field: "dob", Message: missingFieldMsg})
		}
		if strings.TrimSpace(entry.Email) == "" {
			missing = append(missing, Issue{Index: idx, Field: "email", Message: missingFieldMsg})
		}
		if len(missing) > 0 {
			issues = append(issues, missing...)
			continue
		}

		dob, ok := parseDOB(entry.DOB)
		if !ok {
			issues = append(issues, Issue{Index: idx, Field: "dob", Message: "Unrecognized date of birth."})
			continue
		}

		p := domain.Passenger{
			Name:   strings.TrimSpace(entry.Name),
			Age:    *entry.Age,
			Gender: strings.TrimSpace(entry.Gender),
			DOB:    dob,
			Email:  strings.TrimSpace(entry.Email),
		}

		if ok, calc := ageMatchesDOB(p.Age, p.DOB, now); !ok {
			issues = append(issues, Issue{
				Index:   idx,
				Field:   "age",
				Message: fmt.Sprintf("Age does not match DOB; expected approximately %d.", calc),
			})
		}

		valid = append(valid, p)
	}

	return valid, issues
}
