package domain

import (
	"testing"
	"time"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestComputeValidity(t *testing.T) {
	const soonDays = 30

	tests := []struct {
		name       string
		createdAt  time.Time
		termYears  int
		now        time.Time
		wantExpiry time.Time
		wantDays   int
		expired    bool
		soon       bool
	}{
		{
			name:       "mid-term",
			createdAt:  date(2024, 1, 10),
			termYears:  2,
			now:        date(2024, 6, 1),
			wantExpiry: date(2026, 1, 10),
			wantDays:   588,
		},
		{
			name:       "expiring soon",
			createdAt:  date(2024, 1, 10),
			termYears:  1,
			now:        date(2024, 12, 20),
			wantExpiry: date(2025, 1, 10),
			wantDays:   21,
			soon:       true,
		},
		{
			name:       "expired yesterday clamps to zero",
			createdAt:  date(2023, 3, 1),
			termYears:  2,
			now:        date(2025, 3, 2),
			wantExpiry: date(2025, 3, 1),
			wantDays:   0,
			expired:    true,
		},
		{
			name:       "expires today is not expired",
			createdAt:  date(2023, 3, 1),
			termYears:  2,
			now:        date(2025, 3, 1),
			wantExpiry: date(2025, 3, 1),
			wantDays:   0,
		},
		{
			name:       "partial day rounds up",
			createdAt:  date(2024, 1, 10),
			termYears:  1,
			now:        time.Date(2025, 1, 9, 18, 0, 0, 0, time.UTC),
			wantExpiry: date(2025, 1, 10),
			wantDays:   1,
			soon:       true,
		},
		{
			name:       "leap day start lands on Feb 29 -> Mar 1",
			createdAt:  date(2024, 2, 29),
			termYears:  1,
			now:        date(2025, 2, 1),
			wantExpiry: date(2025, 3, 1),
			wantDays:   28,
			soon:       true,
		},
		{
			name:       "term spanning a leap year uses the calendar",
			createdAt:  date(2023, 6, 15),
			termYears:  2,
			now:        date(2023, 6, 15),
			wantExpiry: date(2025, 6, 15),
			wantDays:   731, // 2024 is a leap year
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := ComputeValidity(tt.createdAt, tt.termYears, soonDays, tt.now)
			if !v.ExpiryDate.Equal(tt.wantExpiry) {
				t.Errorf("ExpiryDate = %v, want %v", v.ExpiryDate, tt.wantExpiry)
			}
			if v.RemainingDays != tt.wantDays {
				t.Errorf("RemainingDays = %d, want %d", v.RemainingDays, tt.wantDays)
			}
			if v.IsExpired != tt.expired {
				t.Errorf("IsExpired = %v, want %v", v.IsExpired, tt.expired)
			}
			if v.IsExpiringSoon != tt.soon {
				t.Errorf("IsExpiringSoon = %v, want %v", v.IsExpiringSoon, tt.soon)
			}
		})
	}
}
