package handlers

import (
	"net/http"
	"sort"
	"strings"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/lmarchou/BENounou/database"
	"github.com/lmarchou/BENounou/models"
	"github.com/lmarchou/BENounou/planning"
)

type AttendanceHandler struct{}

func NewAttendanceHandler() *AttendanceHandler { return &AttendanceHandler{} }

type attendancePayload struct {
	ChildID       string `json:"child_id"`
	Date          string `json:"date"`
	ArrivalTime   string `json:"arrival_time"`   // HH:MM or HH:MM:SS, "" = unset
	DepartureTime string `json:"departure_time"` // "" = still present
	Status        string `json:"status"`
	Notes         string `json:"notes"`
}

func (p *attendancePayload) normalize() {
	p.ChildID = strings.TrimSpace(p.ChildID)
	p.Date = strings.TrimSpace(p.Date)
	p.ArrivalTime = strings.TrimSpace(p.ArrivalTime)
	p.DepartureTime = strings.TrimSpace(p.DepartureTime)
	p.Status = strings.ToLower(strings.TrimSpace(p.Status))
}

// GET /attendance?start=&end=&child_id=&statuses=a,b
func (h *AttendanceHandler) List(c echo.Context) error {
	tx := database.DB.Model(&models.Attendance{})
	if start := strings.TrimSpace(c.QueryParam("start")); start != "" {
		tx = tx.Where("date >= ?", start)
	}
	if end := strings.TrimSpace(c.QueryParam("end")); end != "" {
		tx = tx.Where("date <= ?", end)
	}
	if childID := strings.TrimSpace(c.QueryParam("child_id")); childID != "" {
		tx = tx.Where("child_id = ?", childID)
	}
	if statuses := splitCSV(c.QueryParam("statuses")); len(statuses) > 0 {
		tx = tx.Where("status IN ?", statuses)
	}

	var items []models.Attendance
	if err := tx.Order("date ASC, arrival_time ASC NULLS LAST, id ASC").Find(&items).Error; err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "DB_QUERY_FAILED"})
	}
	return c.JSON(http.StatusOK, items)
}

// POST /attendance
func (h *AttendanceHandler) Create(c echo.Context) error {
	var p attendancePayload
	if err := c.Bind(&p); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "INVALID_PAYLOAD"})
	}
	p.normalize()

	errs := map[string]string{}
	if p.ChildID == "" {
		errs["child_id"] = "child is required"
	}
	if !isDateYYYYMMDD(p.Date) {
		errs["date"] = "must be YYYY-MM-DD"
	}
	if !models.ValidAttendanceStatus(p.Status) {
		errs["status"] = "unknown status"
	}
	arrival, ok := normalizeClock(p.ArrivalTime)
	if !ok {
		errs["arrival_time"] = "must be HH:MM"
	}
	departure, ok := normalizeClock(p.DepartureTime)
	if !ok {
		errs["departure_time"] = "must be HH:MM"
	}
	if len(errs) > 0 {
		return c.JSON(http.StatusBadRequest, map[string]any{"error": "VALIDATION_ERROR", "fields": errs})
	}

	var child models.Child
	if err := database.DB.First(&child, "id = ?", p.ChildID).Error; err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "CHILD_NOT_FOUND"})
	}

	rec := models.Attendance{
		ID:            uuid.NewString(),
		ChildID:       p.ChildID,
		Date:          p.Date,
		ArrivalTime:   arrival,
		DepartureTime: departure,
		Status:        p.Status,
		Notes:         p.Notes,
	}
	if err := database.DB.Create(&rec).Error; err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}
	return c.JSON(http.StatusCreated, rec)
}

// Pointer fields so absent keys leave the stored value alone.
type attendanceUpdate struct {
	Date          *string `json:"date"`
	ArrivalTime   *string `json:"arrival_time"`
	DepartureTime *string `json:"departure_time"`
	Status        *string `json:"status"`
	Notes         *string `json:"notes"`
}

// PUT /attendance/:id
func (h *AttendanceHandler) Update(c echo.Context) error {
	var rec models.Attendance
	if err := database.DB.First(&rec, "id = ?", c.Param("id")).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return c.JSON(http.StatusNotFound, map[string]string{"error": "NOT_FOUND"})
		}
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "DB_QUERY_FAILED"})
	}

	var p attendanceUpdate
	if err := c.Bind(&p); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "INVALID_PAYLOAD"})
	}

	errs := map[string]string{}
	if p.Date != nil {
		d := strings.TrimSpace(*p.Date)
		if !isDateYYYYMMDD(d) {
			errs["date"] = "must be YYYY-MM-DD"
		} else {
			rec.Date = d
		}
	}
	if p.Status != nil {
		s := strings.ToLower(strings.TrimSpace(*p.Status))
		if !models.ValidAttendanceStatus(s) {
			errs["status"] = "unknown status"
		} else {
			rec.Status = s
		}
	}
	if p.ArrivalTime != nil {
		t, ok := normalizeClock(strings.TrimSpace(*p.ArrivalTime))
		if !ok {
			errs["arrival_time"] = "must be HH:MM"
		} else {
			rec.ArrivalTime = t
		}
	}
	if p.DepartureTime != nil {
		t, ok := normalizeClock(strings.TrimSpace(*p.DepartureTime))
		if !ok {
			errs["departure_time"] = "must be HH:MM"
		} else {
			rec.DepartureTime = t
		}
	}
	if p.Notes != nil {
		rec.Notes = *p.Notes
	}
	if len(errs) > 0 {
		return c.JSON(http.StatusBadRequest, map[string]any{"error": "VALIDATION_ERROR", "fields": errs})
	}

	if err := database.DB.Save(&rec).Error; err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}
	return c.JSON(http.StatusOK, rec)
}

// DELETE /attendance/:id
func (h *AttendanceHandler) Delete(c echo.Context) error {
	res := database.DB.Delete(&models.Attendance{}, "id = ?", c.Param("id"))
	if res.Error != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "DB_DELETE_FAILED"})
	}
	if res.RowsAffected == 0 {
		return c.JSON(http.StatusNotFound, map[string]string{"error": "NOT_FOUND"})
	}
	return c.NoContent(http.StatusNoContent)
}

type reportRow struct {
	Date          string `json:"date"`
	ChildID       string `json:"child_id"`
	ChildName     string `json:"child_name"`
	ArrivalTime   string `json:"arrival_time"`
	DepartureTime string `json:"departure_time"`
	Minutes       int    `json:"minutes"`
	Hours         string `json:"hours"`
}

// GET /attendance/report?mode=day|week|month&date=&child_id=
func (h *AttendanceHandler) Report(c echo.Context) error {
	mode := strings.ToLower(strings.TrimSpace(c.QueryParam("mode")))
	date := strings.TrimSpace(c.QueryParam("date"))

	start, end, err := planning.ReportWindow(mode, date)
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "INVALID_WINDOW"})
	}

	tx := database.DB.Where("date >= ? AND date <= ?", start, end)
	if childID := strings.TrimSpace(c.QueryParam("child_id")); childID != "" {
		tx = tx.Where("child_id = ?", childID)
	}
	var recs []models.Attendance
	if err := tx.Find(&recs).Error; err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "DB_QUERY_FAILED"})
	}

	names := map[string]string{}
	var children []models.Child
	if err := database.DB.Find(&children).Error; err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "DB_QUERY_FAILED"})
	}
	for i := range children {
		names[children[i].ID] = children[i].FirstName + " " + children[i].LastName
	}

	rows := make([]reportRow, 0, len(recs))
	total := 0
	for i := range recs {
		r := &recs[i]
		minutes := planning.RecordMinutes(*r)
		total += minutes
		row := reportRow{
			Date:      r.Date,
			ChildID:   r.ChildID,
			ChildName: names[r.ChildID],
			Minutes:   minutes,
			Hours:     planning.FormatDuration(minutes),
		}
		if r.ArrivalTime != nil {
			row.ArrivalTime = *r.ArrivalTime
		}
		if r.DepartureTime != nil {
			row.DepartureTime = *r.DepartureTime
		}
		rows = append(rows, row)
	}
	sort.SliceStable(rows, func(i, j int) bool {
		if rows[i].Date != rows[j].Date {
			return rows[i].Date < rows[j].Date
		}
		return rows[i].ChildName < rows[j].ChildName
	})

	return c.JSON(http.StatusOK, map[string]any{
		"mode":          mode,
		"start":         start,
		"end":           end,
		"rows":          rows,
		"total_minutes": total,
		"total_hours":   planning.FormatDuration(total),
	})
}
