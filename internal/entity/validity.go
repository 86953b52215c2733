package domain

import "time"

// Validity is the derived lifetime view of a registration.
type Validity struct {
	ExpiryDate     time.Time
	RemainingDays  int
	IsExpired      bool
	IsExpiringSoon bool
}

// ComputeValidity derives expiry and remaining days for a registration.
// Expiry is a calendar-year addition (AddDate), so leap years are handled
// by the calendar and not a 365-day multiple. Remaining days is the
// ceiling of the time left; the exposed value is clamped at 0 while the
// expired flag is computed from the unclamped value.
func ComputeValidity(createdAt time.Time, termYears int, expiringSoonDays int, now time.Time) Validity {
	expiry := createdAt.AddDate(termYears, 0, 0)

	diff := expiry.Sub(now)
	days := int(diff / (24 * time.Hour))
	if diff%(24*time.Hour) > 0 {
		days++
	}

	v := Validity{
		ExpiryDate:     expiry,
		RemainingDays:  days,
		IsExpired:      days < 0,
		IsExpiringSoon: days > 0 && days <= expiringSoonDays,
	}
	if v.RemainingDays < 0 {
		v.RemainingDays = 0
	}
	return v
}
