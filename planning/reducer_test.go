package planning

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lmarchou/BENounou/models"
)

func strp(s string) *string { return &s }

func rec(id, childID, date string, arrival, departure *string, status string) models.Attendance {
	return models.Attendance{
		ID: id, ChildID: childID, Date: date,
		ArrivalTime: arrival, DepartureTime: departure, Status: status,
	}
}

var roster = []models.Child{
	{ID: "child-a", FirstName: "Emma", LastName: "Martin"},
	{ID: "child-b", FirstName: "Lucas", LastName: "Petit"},
	{ID: "child-c", FirstName: "Nina", LastName: "Roux"},
}

func TestSortDayRecords(t *testing.T) {
	recs := []models.Attendance{
		rec("r3", "child-a", "2025-03-10", nil, nil, models.AttendanceAbsent),
		rec("r2", "child-b", "2025-03-10", strp("09:15"), nil, models.AttendancePresent),
		rec("r1", "child-c", "2025-03-10", strp("08:00"), nil, models.AttendancePresent),
		rec("r4", "child-a", "2025-03-10", strp("08:00"), nil, models.AttendancePresent),
	}
	SortDayRecords(recs)

	ids := make([]string, 0, len(recs))
	for _, r := range recs {
		ids = append(ids, r.ID)
	}
	// 08:00 before 09:15, id tie-break among equal arrivals,
	// unparseable last.
	assert.Equal(t, []string{"r1", "r4", "r2", "r3"}, ids)
}

func TestSummarizeBasic(t *testing.T) {
	recs := []models.Attendance{
		rec("r1", "child-a", "2025-03-10", strp("08:00"), nil, models.AttendancePresent),
		rec("r2", "child-b", "2025-03-10", nil, nil, models.AttendanceAbsent),
	}
	sum := Summarize(recs, "2025-03-10", roster)

	require.Len(t, sum.Present, 1)
	assert.Equal(t, "child-a", sum.Present[0].ChildID)
	assert.Equal(t, "08:00", sum.Present[0].ArrivalTime)
	assert.Equal(t, 1, sum.PresentCount)
	assert.Equal(t, 1, sum.AbsentCount)
	assert.Equal(t, 0, sum.DepartedCount)
	assert.Equal(t, 3, sum.Expected)
}

func TestSummarizeLastRecordWins(t *testing.T) {
	// Same child twice on one day: the 10:30 record is authoritative,
	// so the child is currently present with no departure.
	recs := []models.Attendance{
		rec("r1", "child-a", "2025-03-10", strp("08:00"), strp("10:00"), models.AttendancePresent),
		rec("r2", "child-a", "2025-03-10", strp("10:30"), nil, models.AttendancePresent),
	}
	sum := Summarize(recs, "2025-03-10", roster)

	require.Len(t, sum.Present, 1)
	assert.Equal(t, "r2", sum.Present[0].AttendanceID)
	assert.Equal(t, "10:30", sum.Present[0].ArrivalTime)
}

func TestSummarizeRealDepartureRemoves(t *testing.T) {
	recs := []models.Attendance{
		rec("r1", "child-a", "2025-03-10", strp("08:00"), strp("16:45"), models.AttendanceDeparted),
	}
	sum := Summarize(recs, "2025-03-10", roster)

	assert.Empty(t, sum.Present)
	assert.Equal(t, 1, sum.DepartedCount)
	assert.Equal(t, 0, sum.AbsentCount)
}

func TestSummarizeLegacyMidnightSentinel(t *testing.T) {
	// "00:00:00" in the departure column is the legacy unset marker:
	// the child is still present.
	recs := []models.Attendance{
		rec("r1", "child-a", "2025-03-10", strp("08:00"), strp("00:00:00"), models.AttendancePresent),
	}
	sum := Summarize(recs, "2025-03-10", roster)

	require.Len(t, sum.Present, 1)
	assert.Equal(t, "child-a", sum.Present[0].ChildID)
}

func TestSummarizeIgnoresOtherDates(t *testing.T) {
	recs := []models.Attendance{
		rec("r1", "child-a", "2025-03-09", strp("08:00"), nil, models.AttendancePresent),
		rec("r2", "child-b", "2025-03-11", nil, nil, models.AttendanceAbsent),
	}
	sum := Summarize(recs, "2025-03-10", roster)

	assert.Empty(t, sum.Present)
	assert.Zero(t, sum.AbsentCount)
	assert.Zero(t, sum.DepartedCount)
}

func TestSummarizeUnknownChildSkipped(t *testing.T) {
	recs := []models.Attendance{
		rec("r1", "ghost", "2025-03-10", strp("08:00"), nil, models.AttendancePresent),
	}
	sum := Summarize(recs, "2025-03-10", roster)
	assert.Empty(t, sum.Present)
}

func TestLastRecordFor(t *testing.T) {
	recs := []models.Attendance{
		rec("r1", "child-a", "2025-03-10", strp("08:00"), strp("12:00"), models.AttendancePresent),
		rec("r2", "child-a", "2025-03-10", strp("13:30"), nil, models.AttendancePresent),
		rec("r3", "child-b", "2025-03-10", strp("09:00"), nil, models.AttendancePresent),
	}
	last := LastRecordFor(recs, "2025-03-10", "child-a")
	require.NotNil(t, last)
	assert.Equal(t, "r2", last.ID)

	assert.Nil(t, LastRecordFor(recs, "2025-03-10", "child-c"))
}
