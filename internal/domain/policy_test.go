package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPricePolicies(t *testing.T) {
	t.Run("StandardFullPrice", func(t *testing.T) {
		assert.InDelta(t, 400.0, StandardPolicy{}.Price(200, 2), 1e-9)
		assert.Equal(t, PolicyTagStandard, StandardPolicy{}.Tag())
		assert.Equal(t, "Standard", StandardPolicy{}.DisplayName())
	})

	t.Run("StudentTwentyPercentOff", func(t *testing.T) {
		assert.InDelta(t, 320.0, StudentPolicy{}.Price(200, 2), 1e-9)
		assert.Equal(t, PolicyTagStudent, StudentPolicy{}.Tag())
		assert.Equal(t, "Student (20% rabatt)", StudentPolicy{}.DisplayName())
	})

	t.Run("ZeroHours", func(t *testing.T) {
		assert.Zero(t, StandardPolicy{}.Price(200, 0))
		assert.Zero(t, StudentPolicy{}.Price(200, 0))
	})
}

func TestPolicyFromTag(t *testing.T) {
	tests := []struct {
		name string
		tag  PolicyTag
		want PolicyTag
	}{
		{"Standard", PolicyTagStandard, PolicyTagStandard},
		{"Student", PolicyTagStudent, PolicyTagStudent},
		{"Empty", "", PolicyTagStandard},
		{"Unknown", "Senior", PolicyTagStandard},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, PolicyFromTag(tt.tag).Tag())
		})
	}
}
