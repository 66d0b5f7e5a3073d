package booking

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSeatPlan(t *testing.T) {
	seats := SeatPlan()

	assert.Len(t, seats, 60)
	assert.Equal(t, "G-1", seats[0])
	assert.Equal(t, "G-20", seats[19])
	assert.Equal(t, "F-21", seats[20])
	assert.Equal(t, "F-40", seats[39])
	assert.Equal(t, "S-41", seats[40])
	assert.Equal(t, "S-60", seats[59])
}

func TestValidSeatNumber(t *testing.T) {
	assert.True(t, ValidSeatNumber("G-1"))
	assert.True(t, ValidSeatNumber("F-33"))
	assert.True(t, ValidSeatNumber("S-60"))
	assert.False(t, ValidSeatNumber("G-21"))
	assert.False(t, ValidSeatNumber("S-1"))
	assert.False(t, ValidSeatNumber("g-1"))
	assert.False(t, ValidSeatNumber(""))
}

func TestValidPlan(t *testing.T) {
	assert.True(t, ValidPlan(PlanWeekly))
	assert.True(t, ValidPlan(PlanMonthly))
	assert.True(t, ValidPlan(PlanYearly))
	assert.False(t, ValidPlan("DAILY"))
	assert.False(t, ValidPlan("monthly"))
	assert.False(t, ValidPlan(""))
}
