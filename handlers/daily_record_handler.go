package handlers

import (
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/lib/pq"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/lmarchou/BENounou/database"
	"github.com/lmarchou/BENounou/models"
)

type DailyRecordHandler struct{}

func NewDailyRecordHandler() *DailyRecordHandler { return &DailyRecordHandler{} }

type dailyRecordPayload struct {
	ChildID    string         `json:"child_id"`
	Date       string         `json:"date"`
	Meals      datatypes.JSON `json:"meals"`
	Naps       datatypes.JSON `json:"naps"`
	Activities []string       `json:"activities"`
	Mood       string         `json:"mood"`
	Notes      string         `json:"notes"`
	Photos     []string       `json:"photos"`
}

func (p *dailyRecordPayload) normalize() {
	p.ChildID = strings.TrimSpace(p.ChildID)
	p.Date = strings.TrimSpace(p.Date)
	p.Mood = strings.ToLower(strings.TrimSpace(p.Mood))
}

func validateDailyRecord(p *dailyRecordPayload) map[string]string {
	errs := map[string]string{}
	if p.ChildID == "" {
		errs["child_id"] = "child is required"
	}
	if !isDateYYYYMMDD(p.Date) {
		errs["date"] = "must be YYYY-MM-DD"
	}
	if p.Mood != "" && !models.ValidMood(p.Mood) {
		errs["mood"] = "unknown mood"
	}
	if len(errs) == 0 {
		return nil
	}
	return errs
}

// GET /daily-records?child_id=&date=&start=&end=
func (h *DailyRecordHandler) List(c echo.Context) error {
	tx := database.DB.Model(&models.DailyRecord{})
	if childID := strings.TrimSpace(c.QueryParam("child_id")); childID != "" {
		tx = tx.Where("child_id = ?", childID)
	}
	if date := strings.TrimSpace(c.QueryParam("date")); date != "" {
		tx = tx.Where("date = ?", date)
	}
	if start := strings.TrimSpace(c.QueryParam("start")); start != "" {
		tx = tx.Where("date >= ?", start)
	}
	if end := strings.TrimSpace(c.QueryParam("end")); end != "" {
		tx = tx.Where("date <= ?", end)
	}

	var items []models.DailyRecord
	if err := tx.Order("date DESC, id ASC").Find(&items).Error; err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "DB_QUERY_FAILED"})
	}
	return c.JSON(http.StatusOK, items)
}

// GET /daily-records/:id
func (h *DailyRecordHandler) Get(c echo.Context) error {
	var rec models.DailyRecord
	if err := database.DB.First(&rec, "id = ?", c.Param("id")).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return c.JSON(http.StatusNotFound, map[string]string{"error": "NOT_FOUND"})
		}
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "DB_QUERY_FAILED"})
	}
	return c.JSON(http.StatusOK, rec)
}

// POST /daily-records
func (h *DailyRecordHandler) Create(c echo.Context) error {
	var p dailyRecordPayload
	if err := c.Bind(&p); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "INVALID_PAYLOAD"})
	}
	p.normalize()
	if errs := validateDailyRecord(&p); errs != nil {
		return c.JSON(http.StatusBadRequest, map[string]any{"error": "VALIDATION_ERROR", "fields": errs})
	}

	var child models.Child
	if err := database.DB.First(&child, "id = ?", p.ChildID).Error; err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "CHILD_NOT_FOUND"})
	}

	rec := models.DailyRecord{
		ID:         uuid.NewString(),
		ChildID:    p.ChildID,
		Date:       p.Date,
		Meals:      p.Meals,
		Naps:       p.Naps,
		Activities: pq.StringArray(p.Activities),
		Mood:       p.Mood,
		Notes:      p.Notes,
		Photos:     pq.StringArray(p.Photos),
	}
	if err := database.DB.Create(&rec).Error; err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}
	return c.JSON(http.StatusCreated, rec)
}

// PUT /daily-records/:id
func (h *DailyRecordHandler) Update(c echo.Context) error {
	var rec models.DailyRecord
	if err := database.DB.First(&rec, "id = ?", c.Param("id")).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return c.JSON(http.StatusNotFound, map[string]string{"error": "NOT_FOUND"})
		}
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "DB_QUERY_FAILED"})
	}

	var p dailyRecordPayload
	if err := c.Bind(&p); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "INVALID_PAYLOAD"})
	}
	p.normalize()
	if p.ChildID == "" {
		p.ChildID = rec.ChildID
	}
	if errs := validateDailyRecord(&p); errs != nil {
		return c.JSON(http.StatusBadRequest, map[string]any{"error": "VALIDATION_ERROR", "fields": errs})
	}

	rec.ChildID = p.ChildID
	rec.Date = p.Date
	rec.Meals = p.Meals
	rec.Naps = p.Naps
	rec.Activities = pq.StringArray(p.Activities)
	rec.Mood = p.Mood
	rec.Notes = p.Notes
	rec.Photos = pq.StringArray(p.Photos)

	if err := database.DB.Save(&rec).Error; err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}
	return c.JSON(http.StatusOK, rec)
}

// DELETE /daily-records/:id
func (h *DailyRecordHandler) Delete(c echo.Context) error {
	res := database.DB.Delete(&models.DailyRecord{}, "id = ?", c.Param("id"))
	if res.Error != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "DB_DELETE_FAILED"})
	}
	if res.RowsAffected == 0 {
		return c.JSON(http.StatusNotFound, map[string]string{"error": "NOT_FOUND"})
	}
	return c.NoContent(http.StatusNoContent)
}
