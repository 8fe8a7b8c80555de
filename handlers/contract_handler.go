package handlers

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/lib/pq"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/lmarchou/BENounou/database"
	"github.com/lmarchou/BENounou/models"
	"github.com/lmarchou/BENounou/planning"
)

type ContractHandler struct{}

func NewContractHandler() *ContractHandler { return &ContractHandler{} }

type contractPayload struct {
	ChildID              string                        `json:"child_id"`
	StartDate            string                        `json:"start_date"`
	EndDate              string                        `json:"end_date"`
	Type                 string                        `json:"type"` // CDI | CDD
	HoursPerWeek         float64                       `json:"hours_per_week"`
	HourlyRate           float64                       `json:"hourly_rate"`
	MaintenanceAllowance float64                       `json:"maintenance_allowance"`
	MealsProvided        bool                          `json:"meals_provided"`
	MealAllowance        float64                       `json:"meal_allowance"`
	DocumentsURL         []string                      `json:"documents_url"`
	Status               string                        `json:"status"`
	Notes                string                        `json:"notes"`
	RegularSchedule      []models.RegularScheduleEntry `json:"regular_schedule"`
	MonthlySchedule      []models.PlannedDay           `json:"monthly_schedule"`
}

func (p *contractPayload) normalize() {
	p.ChildID = strings.TrimSpace(p.ChildID)
	p.StartDate = strings.TrimSpace(p.StartDate)
	p.EndDate = strings.TrimSpace(p.EndDate)
	p.Type = strings.ToUpper(strings.TrimSpace(p.Type))
	p.Status = strings.ToLower(strings.TrimSpace(p.Status))
	if p.Status == "" {
		p.Status = models.ContractActive
	}
}

func validateContract(p *contractPayload) map[string]string {
	errs := map[string]string{}
	if p.ChildID == "" {
		errs["child_id"] = "child is required"
	}
	if !isDateYYYYMMDD(p.StartDate) {
		errs["start_date"] = "must be YYYY-MM-DD"
	}
	if p.EndDate != "" && !isDateYYYYMMDD(p.EndDate) {
		errs["end_date"] = "must be YYYY-MM-DD"
	}
	if p.Type != models.ContractCDI && p.Type != models.ContractCDD {
		errs["type"] = "must be CDI or CDD"
	}
	if p.HoursPerWeek < 0 {
		errs["hours_per_week"] = "must not be negative"
	}
	if p.HourlyRate < 0 {
		errs["hourly_rate"] = "must not be negative"
	}
	if !models.ValidContractStatus(p.Status) {
		errs["status"] = "unknown status"
	}
	for i := range p.RegularSchedule {
		e := &p.RegularSchedule[i]
		if e.DayOfWeek < 0 || e.DayOfWeek > 6 {
			errs["regular_schedule"] = "day_of_week must be 0..6"
			break
		}
		if planning.ParseClock(e.StartTime) == -1 || planning.ParseClock(e.EndTime) == -1 {
			errs["regular_schedule"] = "times must be HH:MM"
			break
		}
	}
	for i := range p.MonthlySchedule {
		d := &p.MonthlySchedule[i]
		if !isDateYYYYMMDD(d.Date) {
			errs["monthly_schedule"] = "dates must be YYYY-MM-DD"
			break
		}
		if !models.ValidPlannedDayStatus(d.Status) {
			errs["monthly_schedule"] = "unknown planned status"
			break
		}
	}
	if len(errs) == 0 {
		return nil
	}
	return errs
}

// daysPerWeek derives the distinct weekday list from the regular
// schedule, in ascending order.
func daysPerWeek(schedule []models.RegularScheduleEntry) pq.Int64Array {
	seen := map[int]bool{}
	var out pq.Int64Array
	for d := 0; d < 7; d++ {
		for i := range schedule {
			if schedule[i].DayOfWeek == d && !seen[d] {
				seen[d] = true
				out = append(out, int64(d))
			}
		}
	}
	return out
}

func (p *contractPayload) toModel(id string) (*models.Contract, error) {
	regular, err := json.Marshal(p.RegularSchedule)
	if err != nil {
		return nil, err
	}
	monthly, err := json.Marshal(p.MonthlySchedule)
	if err != nil {
		return nil, err
	}
	return &models.Contract{
		ID:                   id,
		ChildID:              p.ChildID,
		StartDate:            p.StartDate,
		EndDate:              p.EndDate,
		Type:                 p.Type,
		HoursPerWeek:         p.HoursPerWeek,
		HourlyRate:           p.HourlyRate,
		MaintenanceAllowance: p.MaintenanceAllowance,
		MealsProvided:        p.MealsProvided,
		MealAllowance:        p.MealAllowance,
		DocumentsURL:         pq.StringArray(p.DocumentsURL),
		Status:               p.Status,
		Notes:                p.Notes,
		RegularSchedule:      datatypes.JSON(regular),
		MonthlySchedule:      datatypes.JSON(monthly),
		DaysPerWeek:          daysPerWeek(p.RegularSchedule),
	}, nil
}

// GET /contracts?child_id=&status=
func (h *ContractHandler) List(c echo.Context) error {
	tx := database.DB.Model(&models.Contract{})
	if childID := strings.TrimSpace(c.QueryParam("child_id")); childID != "" {
		tx = tx.Where("child_id = ?", childID)
	}
	if status := strings.ToLower(strings.TrimSpace(c.QueryParam("status"))); status != "" {
		tx = tx.Where("status = ?", status)
	}

	var items []models.Contract
	if err := tx.Order("start_date DESC, id ASC").Find(&items).Error; err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "DB_QUERY_FAILED"})
	}
	return c.JSON(http.StatusOK, items)
}

// GET /contracts/:id
func (h *ContractHandler) Get(c echo.Context) error {
	var ct models.Contract
	if err := database.DB.First(&ct, "id = ?", c.Param("id")).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return c.JSON(http.StatusNotFound, map[string]string{"error": "NOT_FOUND"})
		}
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "DB_QUERY_FAILED"})
	}
	return c.JSON(http.StatusOK, ct)
}

// POST /contracts
func (h *ContractHandler) Create(c echo.Context) error {
	var p contractPayload
	if err := c.Bind(&p); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "INVALID_PAYLOAD"})
	}
	p.normalize()
	if errs := validateContract(&p); errs != nil {
		return c.JSON(http.StatusBadRequest, map[string]any{"error": "VALIDATION_ERROR", "fields": errs})
	}

	var child models.Child
	if err := database.DB.First(&child, "id = ?", p.ChildID).Error; err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "CHILD_NOT_FOUND"})
	}

	ct, err := p.toModel(uuid.NewString())
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "INVALID_SCHEDULE"})
	}
	if err := database.DB.Create(ct).Error; err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}
	return c.JSON(http.StatusCreated, ct)
}

// PUT /contracts/:id
func (h *ContractHandler) Update(c echo.Context) error {
	var existing models.Contract
	if err := database.DB.First(&existing, "id = ?", c.Param("id")).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return c.JSON(http.StatusNotFound, map[string]string{"error": "NOT_FOUND"})
		}
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "DB_QUERY_FAILED"})
	}

	var p contractPayload
	if err := c.Bind(&p); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "INVALID_PAYLOAD"})
	}
	p.normalize()
	if errs := validateContract(&p); errs != nil {
		return c.JSON(http.StatusBadRequest, map[string]any{"error": "VALIDATION_ERROR", "fields": errs})
	}

	ct, err := p.toModel(existing.ID)
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "INVALID_SCHEDULE"})
	}
	ct.CreatedAt = existing.CreatedAt
	if err := database.DB.Save(ct).Error; err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}
	return c.JSON(http.StatusOK, ct)
}

// DELETE /contracts/:id
func (h *ContractHandler) Delete(c echo.Context) error {
	res := database.DB.Delete(&models.Contract{}, "id = ?", c.Param("id"))
	if res.Error != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "DB_DELETE_FAILED"})
	}
	if res.RowsAffected == 0 {
		return c.JSON(http.StatusNotFound, map[string]string{"error": "NOT_FOUND"})
	}
	return c.NoContent(http.StatusNoContent)
}

// GET /contracts/:id/calendar?year=&month=
func (h *ContractHandler) Calendar(c echo.Context) error {
	var ct models.Contract
	if err := database.DB.First(&ct, "id = ?", c.Param("id")).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return c.JSON(http.StatusNotFound, map[string]string{"error": "NOT_FOUND"})
		}
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "DB_QUERY_FAILED"})
	}

	year := atoiOr(c.QueryParam("year"), 0)
	month := atoiOr(c.QueryParam("month"), 0)
	if year < 1 || month < 1 || month > 12 {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "INVALID_MONTH"})
	}

	var entries []models.PlannedDay
	if len(ct.MonthlySchedule) > 0 {
		if err := json.Unmarshal(ct.MonthlySchedule, &entries); err != nil {
			return c.JSON(http.StatusInternalServerError, map[string]string{"error": "INVALID_SCHEDULE"})
		}
	}

	return c.JSON(http.StatusOK, map[string]any{
		"year":  year,
		"month": month,
		"cells": planning.MonthGrid(year, time.Month(month), entries),
	})
}

type toggleReq struct {
	Date string `json:"date"`
}

// POST /contracts/:id/planning/toggle
func (h *ContractHandler) TogglePlanning(c echo.Context) error {
	var ct models.Contract
	if err := database.DB.First(&ct, "id = ?", c.Param("id")).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return c.JSON(http.StatusNotFound, map[string]string{"error": "NOT_FOUND"})
		}
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "DB_QUERY_FAILED"})
	}

	var req toggleReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "INVALID_PAYLOAD"})
	}
	req.Date = strings.TrimSpace(req.Date)
	if !isDateYYYYMMDD(req.Date) {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "INVALID_DATE"})
	}

	var schedule []models.PlannedDay
	if len(ct.MonthlySchedule) > 0 {
		if err := json.Unmarshal(ct.MonthlySchedule, &schedule); err != nil {
			return c.JSON(http.StatusInternalServerError, map[string]string{"error": "INVALID_SCHEDULE"})
		}
	}
	var regular []models.RegularScheduleEntry
	if len(ct.RegularSchedule) > 0 {
		if err := json.Unmarshal(ct.RegularSchedule, &regular); err != nil {
			return c.JSON(http.StatusInternalServerError, map[string]string{"error": "INVALID_SCHEDULE"})
		}
	}

	schedule = planning.TogglePlannedDay(schedule, req.Date, regular)
	raw, err := json.Marshal(schedule)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "INVALID_SCHEDULE"})
	}
	ct.MonthlySchedule = datatypes.JSON(raw)

	if err := database.DB.Model(&ct).Update("monthly_schedule", ct.MonthlySchedule).Error; err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "DB_UPDATE_FAILED"})
	}
	return c.JSON(http.StatusOK, map[string]any{"monthly_schedule": schedule})
}

type planningEvent struct {
	ContractID string            `json:"contract_id"`
	ChildID    string            `json:"child_id"`
	ChildName  string            `json:"child_name"`
	Entry      models.PlannedDay `json:"entry"`
}

// GET /planning?year=&month= — month grid plus the planned days of
// every active contract, keyed by date.
func (h *ContractHandler) MonthPlanning(c echo.Context) error {
	year := atoiOr(c.QueryParam("year"), 0)
	month := atoiOr(c.QueryParam("month"), 0)
	if year < 1 || month < 1 || month > 12 {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "INVALID_MONTH"})
	}

	var contracts []models.Contract
	if err := database.DB.Where("status = ?", models.ContractActive).Find(&contracts).Error; err != nil {
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

	events := map[string][]planningEvent{}
	for i := range contracts {
		ct := &contracts[i]
		if len(ct.MonthlySchedule) == 0 {
			continue
		}
		var days []models.PlannedDay
		if err := json.Unmarshal(ct.MonthlySchedule, &days); err != nil {
			continue
		}
		for _, d := range days {
			events[d.Date] = append(events[d.Date], planningEvent{
				ContractID: ct.ID,
				ChildID:    ct.ChildID,
				ChildName:  names[ct.ChildID],
				Entry:      d,
			})
		}
	}

	return c.JSON(http.StatusOK, map[string]any{
		"year":   year,
		"month":  month,
		"cells":  planning.MonthGrid(year, time.Month(month), nil),
		"events": events,
	})
}
