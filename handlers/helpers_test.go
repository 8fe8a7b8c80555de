package handlers

import (
	"encoding/json"
	"testing"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lmarchou/BENounou/models"
)

func TestNormalizeClock(t *testing.T) {
	got, ok := normalizeClock("08:30")
	require.True(t, ok)
	require.NotNil(t, got)
	assert.Equal(t, "08:30:00", *got)

	got, ok = normalizeClock("08:30:15")
	require.True(t, ok)
	assert.Equal(t, "08:30:15", *got)

	got, ok = normalizeClock("")
	require.True(t, ok)
	assert.Nil(t, got)

	_, ok = normalizeClock("25:00")
	assert.False(t, ok)

	_, ok = normalizeClock("abc")
	assert.False(t, ok)
}

func TestIsDateYYYYMMDD(t *testing.T) {
	assert.True(t, isDateYYYYMMDD("2025-10-08"))
	assert.False(t, isDateYYYYMMDD("2025-13-01"))
	assert.False(t, isDateYYYYMMDD("08/10/2025"))
	assert.False(t, isDateYYYYMMDD(""))
}

func TestSplitCSV(t *testing.T) {
	assert.Equal(t, []string{"present", "departed"}, splitCSV("present, departed"))
	assert.Empty(t, splitCSV(""))
	assert.Equal(t, []string{"a"}, splitCSV(",a,,"))
}

func TestAtoiOr(t *testing.T) {
	assert.Equal(t, 7, atoiOr("7", 0))
	assert.Equal(t, 3, atoiOr("", 3))
	assert.Equal(t, 3, atoiOr("x", 3))
}

func TestDaysPerWeek(t *testing.T) {
	schedule := []models.RegularScheduleEntry{
		{DayOfWeek: 5, StartTime: "08:00", EndTime: "17:00"},
		{DayOfWeek: 1, StartTime: "08:00", EndTime: "12:00"},
		{DayOfWeek: 1, StartTime: "13:00", EndTime: "17:00"},
		{DayOfWeek: 3, StartTime: "08:00", EndTime: "17:00"},
	}
	assert.Equal(t, pq.Int64Array{1, 3, 5}, daysPerWeek(schedule))
	assert.Nil(t, daysPerWeek(nil))
}

func TestContractPayloadSchedulesRoundTrip(t *testing.T) {
	p := &contractPayload{
		ChildID:   "child-a",
		StartDate: "2025-01-01",
		Type:      models.ContractCDI,
		Status:    models.ContractActive,
		RegularSchedule: []models.RegularScheduleEntry{
			{DayOfWeek: 1, StartTime: "08:30", EndTime: "16:30"},
			{DayOfWeek: 4, StartTime: "08:30", EndTime: "12:00"},
		},
		MonthlySchedule: []models.PlannedDay{
			{Date: "2025-01-06", StartTime: "08:30", EndTime: "16:30", Status: models.PlannedDayPlanned},
		},
	}

	ct, err := p.toModel("contract-1")
	require.NoError(t, err)

	var regular []models.RegularScheduleEntry
	require.NoError(t, json.Unmarshal(ct.RegularSchedule, &regular))
	assert.Equal(t, p.RegularSchedule, regular)

	var monthly []models.PlannedDay
	require.NoError(t, json.Unmarshal(ct.MonthlySchedule, &monthly))
	assert.Equal(t, p.MonthlySchedule, monthly)

	assert.Equal(t, pq.Int64Array{1, 4}, ct.DaysPerWeek)
}

func TestValidateContractSchedules(t *testing.T) {
	p := &contractPayload{
		ChildID:   "child-a",
		StartDate: "2025-01-01",
		Type:      models.ContractCDI,
		Status:    models.ContractActive,
		RegularSchedule: []models.RegularScheduleEntry{
			{DayOfWeek: 1, StartTime: "08:30", EndTime: "16:30"},
		},
	}
	assert.Nil(t, validateContract(p))

	p.RegularSchedule[0].StartTime = "99:00"
	errs := validateContract(p)
	require.NotNil(t, errs)
	assert.Contains(t, errs, "regular_schedule")

	p.RegularSchedule[0].StartTime = "08:30"
	p.MonthlySchedule = []models.PlannedDay{{Date: "2025-02-30x", Status: models.PlannedDayPlanned}}
	errs = validateContract(p)
	require.NotNil(t, errs)
	assert.Contains(t, errs, "monthly_schedule")
}
