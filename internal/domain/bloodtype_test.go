package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"bloodbridge-backend/internal/domain"
)

func TestIsValidBloodType(t *testing.T) {
	for _, bt := range domain.BloodTypes {
		assert.True(t, domain.IsValidBloodType(bt), bt)
	}
	for _, bt := range []string{"", "C+", "o-", "AB", "A +"} {
		assert.False(t, domain.IsValidBloodType(bt), bt)
	}
}

func TestBloodTypeRank_CanonicalOrder(t *testing.T) {
	for i := 1; i < len(domain.BloodTypes); i++ {
		assert.Less(t,
			domain.BloodTypeRank(domain.BloodTypes[i-1]),
			domain.BloodTypeRank(domain.BloodTypes[i]))
	}
	// Unknown types sort after every known one.
	assert.Equal(t, len(domain.BloodTypes), domain.BloodTypeRank("C+"))
}
