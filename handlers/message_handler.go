package handlers

import (
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/lmarchou/BENounou/database"
	"github.com/lmarchou/BENounou/models"
)

type MessageHandler struct{}

func NewMessageHandler() *MessageHandler { return &MessageHandler{} }

type messageReq struct {
	ChildID  string `json:"child_id"`
	Author   string `json:"author" validate:"required"`
	Body     string `json:"body" validate:"required"`
	PhotoURL string `json:"photo_url"`
}

// GET /messages?child_id=&limit=
func (h *MessageHandler) List(c echo.Context) error {
	limit := atoiOr(c.QueryParam("limit"), 50)
	if limit < 1 || limit > 200 {
		limit = 50
	}

	tx := database.DB.Model(&models.Message{})
	if childID := strings.TrimSpace(c.QueryParam("child_id")); childID != "" {
		tx = tx.Where("child_id = ?", childID)
	}

	var items []models.Message
	if err := tx.Order("created_at DESC").Limit(limit).Find(&items).Error; err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "DB_QUERY_FAILED"})
	}
	return c.JSON(http.StatusOK, items)
}

// POST /messages
func (h *MessageHandler) Create(c echo.Context) error {
	var req messageReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "INVALID_PAYLOAD"})
	}
	req.Author = strings.TrimSpace(req.Author)
	req.Body = strings.TrimSpace(req.Body)
	if err := validate.Struct(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "MISSING_FIELDS"})
	}
	if req.ChildID != "" {
		var child models.Child
		if err := database.DB.First(&child, "id = ?", req.ChildID).Error; err != nil {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "CHILD_NOT_FOUND"})
		}
	}

	msg := models.Message{
		ID:       uuid.NewString(),
		ChildID:  req.ChildID,
		Author:   req.Author,
		Body:     req.Body,
		PhotoURL: req.PhotoURL,
	}
	if err := database.DB.Create(&msg).Error; err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}
	return c.JSON(http.StatusCreated, msg)
}

// POST /messages/:id/read
func (h *MessageHandler) MarkRead(c echo.Context) error {
	var msg models.Message
	if err := database.DB.First(&msg, "id = ?", c.Param("id")).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return c.JSON(http.StatusNotFound, map[string]string{"error": "NOT_FOUND"})
		}
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "DB_QUERY_FAILED"})
	}
	if err := database.DB.Model(&msg).Update("read", true).Error; err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "DB_UPDATE_FAILED"})
	}
	msg.Read = true
	return c.JSON(http.StatusOK, msg)
}

// GET /messages/unread-count
func (h *MessageHandler) UnreadCount(c echo.Context) error {
	var count int64
	if err := database.DB.Model(&models.Message{}).Where("read = ?", false).Count(&count).Error; err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "DB_QUERY_FAILED"})
	}
	return c.JSON(http.StatusOK, map[string]int64{"count": count})
}
