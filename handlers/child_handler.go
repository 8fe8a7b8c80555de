package handlers

import (
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/lmarchou/BENounou/database"
	"github.com/lmarchou/BENounou/models"
	"github.com/lmarchou/BENounou/storage"
)

type ChildHandler struct {
	Storage *storage.Client
}

func NewChildHandler(st *storage.Client) *ChildHandler { return &ChildHandler{Storage: st} }

type childPayload struct {
	FirstName         string         `json:"first_name"`
	LastName          string         `json:"last_name"`
	BirthDate         string         `json:"birth_date"` // YYYY-MM-DD
	Gender            string         `json:"gender"`     // male | female
	Photo             string         `json:"photo"`
	ParentInfo        datatypes.JSON `json:"parent_info"`
	MedicalInfo       datatypes.JSON `json:"medical_info"`
	AuthorizedPickups datatypes.JSON `json:"authorized_pickups"`
}

func (p *childPayload) normalize() {
	p.FirstName = strings.Join(strings.Fields(p.FirstName), " ")
	p.LastName = strings.Join(strings.Fields(p.LastName), " ")
	p.BirthDate = strings.TrimSpace(p.BirthDate)
	p.Gender = strings.ToLower(strings.TrimSpace(p.Gender))
	p.Photo = strings.TrimSpace(p.Photo)
}

func validateChild(p *childPayload) map[string]string {
	errs := map[string]string{}
	if p.FirstName == "" {
		errs["first_name"] = "first name is required"
	}
	if p.LastName == "" {
		errs["last_name"] = "last name is required"
	}
	if !isDateYYYYMMDD(p.BirthDate) {
		errs["birth_date"] = "must be YYYY-MM-DD"
	}
	if p.Gender != "male" && p.Gender != "female" {
		errs["gender"] = "must be male or female"
	}
	if len(errs) == 0 {
		return nil
	}
	return errs
}

// GET /children?q=
func (h *ChildHandler) List(c echo.Context) error {
	q := strings.TrimSpace(c.QueryParam("q"))

	tx := database.DB.Model(&models.Child{})
	if q != "" {
		like := "%" + q + "%"
		tx = tx.Where("first_name ILIKE ? OR last_name ILIKE ?", like, like)
	}

	var items []models.Child
	if err := tx.Order("last_name ASC, first_name ASC").Find(&items).Error; err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "DB_QUERY_FAILED"})
	}
	return c.JSON(http.StatusOK, items)
}

// GET /children/:id
func (h *ChildHandler) Get(c echo.Context) error {
	var child models.Child
	if err := database.DB.First(&child, "id = ?", c.Param("id")).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return c.JSON(http.StatusNotFound, map[string]string{"error": "NOT_FOUND"})
		}
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "DB_QUERY_FAILED"})
	}
	return c.JSON(http.StatusOK, child)
}

// POST /children
func (h *ChildHandler) Create(c echo.Context) error {
	var p childPayload
	if err := c.Bind(&p); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "INVALID_PAYLOAD"})
	}
	p.normalize()
	if errs := validateChild(&p); errs != nil {
		return c.JSON(http.StatusBadRequest, map[string]any{"error": "VALIDATION_ERROR", "fields": errs})
	}

	child := models.Child{
		ID:                uuid.NewString(),
		FirstName:         p.FirstName,
		LastName:          p.LastName,
		BirthDate:         p.BirthDate,
		Gender:            p.Gender,
		Photo:             p.Photo,
		ParentInfo:        p.ParentInfo,
		MedicalInfo:       p.MedicalInfo,
		AuthorizedPickups: p.AuthorizedPickups,
	}
	if err := database.DB.Create(&child).Error; err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}
	return c.JSON(http.StatusCreated, child)
}

// PUT /children/:id
func (h *ChildHandler) Update(c echo.Context) error {
	var existing models.Child
	if err := database.DB.First(&existing, "id = ?", c.Param("id")).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return c.JSON(http.StatusNotFound, map[string]string{"error": "NOT_FOUND"})
		}
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "DB_QUERY_FAILED"})
	}

	var p childPayload
	if err := c.Bind(&p); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "INVALID_PAYLOAD"})
	}
	p.normalize()
	if errs := validateChild(&p); errs != nil {
		return c.JSON(http.StatusBadRequest, map[string]any{"error": "VALIDATION_ERROR", "fields": errs})
	}

	// A replaced photo leaves its old object orphaned in the bucket.
	if existing.Photo != "" && existing.Photo != p.Photo {
		if object, ok := h.Storage.ObjectFromPublicURL(existing.Photo); ok {
			if err := h.Storage.Delete(object); err != nil {
				c.Logger().Warnf("deleting replaced photo failed: %v", err)
			}
		}
	}

	existing.FirstName = p.FirstName
	existing.LastName = p.LastName
	existing.BirthDate = p.BirthDate
	existing.Gender = p.Gender
	existing.Photo = p.Photo
	existing.ParentInfo = p.ParentInfo
	existing.MedicalInfo = p.MedicalInfo
	existing.AuthorizedPickups = p.AuthorizedPickups

	if err := database.DB.Save(&existing).Error; err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}
	return c.JSON(http.StatusOK, existing)
}

// DELETE /children/:id
func (h *ChildHandler) Delete(c echo.Context) error {
	res := database.DB.Delete(&models.Child{}, "id = ?", c.Param("id"))
	if res.Error != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "DB_DELETE_FAILED"})
	}
	if res.RowsAffected == 0 {
		return c.JSON(http.StatusNotFound, map[string]string{"error": "NOT_FOUND"})
	}
	return c.NoContent(http.StatusNoContent)
}

// POST /children/photo — multipart "file" → public URL on the photo
// bucket. The caller stores the URL on the child afterwards.
func (h *ChildHandler) UploadPhoto(c echo.Context) error {
	fh, err := c.FormFile("file")
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "MISSING_FILE"})
	}
	src, err := fh.Open()
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "INVALID_FILE"})
	}
	defer src.Close()

	contentType := fh.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	url, err := h.Storage.UploadPhoto(fh.Filename, contentType, src)
	if err != nil {
		c.Logger().Errorf("photo upload failed: %v", err)
		return c.JSON(http.StatusBadGateway, map[string]string{"error": "UPLOAD_FAILED"})
	}
	return c.JSON(http.StatusCreated, map[string]string{"url": url})
}
