package handlers

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/lmarchou/BENounou/database"
	"github.com/lmarchou/BENounou/models"
	"github.com/lmarchou/BENounou/planning"
)

type DashboardHandler struct{}

func NewDashboardHandler() *DashboardHandler { return &DashboardHandler{} }

type activityRow struct {
	AttendanceID  string `json:"attendance_id"`
	ChildID       string `json:"child_id"`
	ChildName     string `json:"child_name"`
	ArrivalTime   string `json:"arrival_time"`
	DepartureTime string `json:"departure_time"`
	Status        string `json:"status"`
}

// GET /dashboard/today?date= (defaults to today, UTC)
func (h *DashboardHandler) Today(c echo.Context) error {
	date := c.QueryParam("date")
	if date == "" {
		date = time.Now().UTC().Format("2006-01-02")
	} else if !isDateYYYYMMDD(date) {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "INVALID_DATE"})
	}

	var recs []models.Attendance
	if err := database.DB.Where("date = ?", date).Find(&recs).Error; err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "DB_QUERY_FAILED"})
	}
	var children []models.Child
	if err := database.DB.Find(&children).Error; err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "DB_QUERY_FAILED"})
	}

	names := map[string]string{}
	for i := range children {
		names[children[i].ID] = children[i].FirstName + " " + children[i].LastName
	}

	summary := planning.Summarize(recs, date, children)

	day := planning.DayRecords(recs, date)
	activity := make([]activityRow, 0, len(day))
	for i := range day {
		r := &day[i]
		row := activityRow{
			AttendanceID: r.ID,
			ChildID:      r.ChildID,
			ChildName:    names[r.ChildID],
			Status:       r.Status,
		}
		if r.ArrivalTime != nil {
			row.ArrivalTime = *r.ArrivalTime
		}
		if r.DepartureTime != nil && !planning.NotDeparted(r.DepartureTime) {
			row.DepartureTime = *r.DepartureTime
		}
		activity = append(activity, row)
	}

	present := make([]activityRow, 0, len(summary.Present))
	for _, p := range summary.Present {
		present = append(present, activityRow{
			AttendanceID: p.AttendanceID,
			ChildID:      p.ChildID,
			ChildName:    names[p.ChildID],
			ArrivalTime:  p.ArrivalTime,
			Status:       models.AttendancePresent,
		})
	}

	return c.JSON(http.StatusOK, map[string]any{
		"date":           date,
		"present":        present,
		"present_count":  summary.PresentCount,
		"departed_count": summary.DepartedCount,
		"absent_count":   summary.AbsentCount,
		"expected":       summary.Expected,
		"activity":       activity,
	})
}
