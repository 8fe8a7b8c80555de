package planning

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lmarchou/BENounou/models"
)

func TestReportWindow(t *testing.T) {
	tests := []struct {
		name      string
		mode      string
		date      string
		wantStart string
		wantEnd   string
	}{
		{name: "day", mode: WindowDay, date: "2025-03-12", wantStart: "2025-03-12", wantEnd: "2025-03-12"},
		// 2025-03-12 is a Wednesday.
		{name: "week mid", mode: WindowWeek, date: "2025-03-12", wantStart: "2025-03-10", wantEnd: "2025-03-16"},
		// Sunday belongs to the week that started the previous Monday.
		{name: "week sunday", mode: WindowWeek, date: "2025-03-16", wantStart: "2025-03-10", wantEnd: "2025-03-16"},
		{name: "week monday", mode: WindowWeek, date: "2025-03-10", wantStart: "2025-03-10", wantEnd: "2025-03-16"},
		// Week crossing a month boundary.
		{name: "week across months", mode: WindowWeek, date: "2025-04-01", wantStart: "2025-03-31", wantEnd: "2025-04-06"},
		{name: "month", mode: WindowMonth, date: "2025-02-14", wantStart: "2025-02-01", wantEnd: "2025-02-28"},
		{name: "leap month", mode: WindowMonth, date: "2024-02-14", wantStart: "2024-02-01", wantEnd: "2024-02-29"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			start, end, err := ReportWindow(tt.mode, tt.date)
			require.NoError(t, err)
			assert.Equal(t, tt.wantStart, start)
			assert.Equal(t, tt.wantEnd, end)
		})
	}
}

func TestReportWindowErrors(t *testing.T) {
	_, _, err := ReportWindow(WindowDay, "12/03/2025")
	assert.Error(t, err)

	_, _, err = ReportWindow("year", "2025-03-12")
	assert.Error(t, err)
}

func TestTotalMinutes(t *testing.T) {
	recs := []models.Attendance{
		rec("r1", "child-a", "2025-03-10", strp("08:00"), strp("12:00"), models.AttendancePresent), // 240
		rec("r2", "child-a", "2025-03-10", strp("13:00"), strp("13:00"), models.AttendanceDeparted), // zero-length span: 0
		rec("r3", "child-b", "2025-03-10", strp("09:00"), strp("08:00"), models.AttendanceDeparted), // negative span: 0
		rec("r4", "child-b", "2025-03-11", nil, strp("16:00"), models.AttendanceDeparted),           // no arrival: 0
		rec("r5", "child-c", "2025-03-11", strp("bogus"), strp("16:00"), models.AttendanceDeparted), // malformed: 0
	}
	total := TotalMinutes(recs)
	assert.Equal(t, 240, total)
	assert.Equal(t, "4h00", FormatDuration(total))
}

func TestRecordMinutesLegacySentinel(t *testing.T) {
	// An absence row from the legacy store carries 00:00:00 in both
	// columns; it must contribute nothing.
	r := rec("r1", "child-a", "2025-03-10", strp("00:00:00"), strp("00:00:00"), models.AttendanceAbsent)
	assert.Zero(t, RecordMinutes(r))
}
