package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/crocobrasseur/website/internal/audit"
	webhttp "github.com/crocobrasseur/website/internal/http"
	"github.com/crocobrasseur/website/internal/http/response"
	"github.com/crocobrasseur/website/internal/models"
	"github.com/crocobrasseur/website/internal/upload"
)

// MenuHandler handles menu category and item management.
type MenuHandler struct {
	db       *gorm.DB
	store    *upload.Store
	recorder *audit.Recorder
}

// NewMenuHandler constructs a MenuHandler.
func NewMenuHandler(db *gorm.DB, store *upload.Store, recorder *audit.Recorder) *MenuHandler {
	return &MenuHandler{db: db, store: store, recorder: recorder}
}

// ListCategories returns all menu categories ordered for display.
func (h *MenuHandler) ListCategories(c *gin.Context) {
	var categories []models.MenuCategory
	if errFind := h.db.WithContext(c.Request.Context()).
		Order("position ASC, name ASC").
		Find(&categories).Error; errFind != nil {
		response.Fail(c, http.StatusInternalServerError, "failed to fetch categories")
		return
	}
	response.List(c, http.StatusOK, len(categories), categories)
}

// categoryRequest defines the body for category create/update.
type categoryRequest struct {
	Name        string `json:"name"`
	NameEN      string `json:"name_en"`
	Description string `json:"description"`
	Icon        string `json:"icon"`
	Position    int    `json:"position"`
	Active      *bool  `json:"active"`
}

// CreateCategory adds a menu category.
func (h *MenuHandler) CreateCategory(c *gin.Context) {
	claims := webhttp.ClaimsFromContext(c)
	if claims == nil {
		response.Fail(c, http.StatusUnauthorized, "unauthorized")
		return
	}

	var body categoryRequest
	if errBind := c.ShouldBindJSON(&body); errBind != nil {
		response.Fail(c, http.StatusBadRequest, "invalid json")
		return
	}
	name := strings.TrimSpace(body.Name)
	if name == "" {
		response.Fail(c, http.StatusBadRequest, "name is required")
		return
	}

	category := models.MenuCategory{
		Name:        name,
		NameEN:      body.NameEN,
		Description: body.Description,
		Icon:        body.Icon,
		Position:    body.Position,
		Active:      body.Active == nil || *body.Active,
	}
	if errCreate := h.db.WithContext(c.Request.Context()).Create(&category).Error; errCreate != nil {
		response.Fail(c, http.StatusInternalServerError, "failed to create category")
		return
	}

	h.recorder.Record(c.Request.Context(), audit.Entry{
		AdminID:     claims.AdminID,
		Action:      models.ActionCreate,
		TableName:   "menu_categories",
		RecordID:    category.ID,
		Description: "category created: " + name,
		IPAddress:   c.ClientIP(),
	})

	response.OK(c, http.StatusCreated, "category created", category)
}

// UpdateCategory changes a menu category.
func (h *MenuHandler) UpdateCategory(c *gin.Context) {
	claims := webhttp.ClaimsFromContext(c)
	if claims == nil {
		response.Fail(c, http.StatusUnauthorized, "unauthorized")
		return
	}

	var category models.MenuCategory
	if errFind := h.db.WithContext(c.Request.Context()).First(&category, c.Param("id")).Error; errFind != nil {
		if errors.Is(errFind, gorm.ErrRecordNotFound) {
			response.Fail(c, http.StatusNotFound, "category not found")
			return
		}
		response.Fail(c, http.StatusInternalServerError, "failed to fetch category")
		return
	}

	var body categoryRequest
	if errBind := c.ShouldBindJSON(&body); errBind != nil {
		response.Fail(c, http.StatusBadRequest, "invalid json")
		return
	}

	updates := map[string]any{
		"name":        strings.TrimSpace(body.Name),
		"name_en":     body.NameEN,
		"description": body.Description,
		"icon":        body.Icon,
		"position":    body.Position,
	}
	if body.Active != nil {
		updates["active"] = *body.Active
	}
	if errUpdate := h.db.WithContext(c.Request.Context()).Model(&category).Updates(updates).Error; errUpdate != nil {
		response.Fail(c, http.StatusInternalServerError, "failed to update category")
		return
	}

	h.recorder.Record(c.Request.Context(), audit.Entry{
		AdminID:     claims.AdminID,
		Action:      models.ActionUpdate,
		TableName:   "menu_categories",
		RecordID:    category.ID,
		Description: "category updated: " + category.Name,
		IPAddress:   c.ClientIP(),
	})

	response.OK(c, http.StatusOK, "category updated", nil)
}

// DeleteCategory removes a category when it has no items left.
func (h *MenuHandler) DeleteCategory(c *gin.Context) {
	claims := webhttp.ClaimsFromContext(c)
	if claims == nil {
		response.Fail(c, http.StatusUnauthorized, "unauthorized")
		return
	}

	var category models.MenuCategory
	if errFind := h.db.WithContext(c.Request.Context()).First(&category, c.Param("id")).Error; errFind != nil {
		if errors.Is(errFind, gorm.ErrRecordNotFound) {
			response.Fail(c, http.StatusNotFound, "category not found")
			return
		}
		response.Fail(c, http.StatusInternalServerError, "failed to fetch category")
		return
	}

	var itemCount int64
	if errCount := h.db.WithContext(c.Request.Context()).
		Model(&models.MenuItem{}).
		Where("category_id = ?", category.ID).
		Count(&itemCount).Error; errCount != nil {
		response.Fail(c, http.StatusInternalServerError, "failed to check category items")
		return
	}
	if itemCount > 0 {
		response.Fail(c, http.StatusBadRequest, "category still has menu items")
		return
	}

	if errDelete := h.db.WithContext(c.Request.Context()).Delete(&category).Error; errDelete != nil {
		response.Fail(c, http.StatusInternalServerError, "failed to delete category")
		return
	}

	h.recorder.Record(c.Request.Context(), audit.Entry{
		AdminID:     claims.AdminID,
		Action:      models.ActionDelete,
		TableName:   "menu_categories",
		RecordID:    category.ID,
		Description: "category deleted: " + category.Name,
		IPAddress:   c.ClientIP(),
	})

	response.OK(c, http.StatusOK, "category deleted", nil)
}

// ListItems returns menu items, optionally filtered by category and availability.
func (h *MenuHandler) ListItems(c *gin.Context) {
	query := h.db.WithContext(c.Request.Context()).Model(&models.MenuItem{})

	if category := strings.TrimSpace(c.Query("category_id")); category != "" {
		query = query.Where("category_id = ?", category)
	}
	if available := strings.TrimSpace(c.Query("available")); available != "" {
		query = query.Where("available = ?", available == "true")
	}

	var items []models.MenuItem
	if errFind := query.Order("position ASC, name ASC").Find(&items).Error; errFind != nil {
		response.Fail(c, http.StatusInternalServerError, "failed to fetch menu items")
		return
	}
	response.List(c, http.StatusOK, len(items), items)
}

// GetItem returns a single menu item.
func (h *MenuHandler) GetItem(c *gin.Context) {
	var item models.MenuItem
	if errFind := h.db.WithContext(c.Request.Context()).First(&item, c.Param("id")).Error; errFind != nil {
		if errors.Is(errFind, gorm.ErrRecordNotFound) {
			response.Fail(c, http.StatusNotFound, "menu item not found")
			return
		}
		response.Fail(c, http.StatusInternalServerError, "failed to fetch menu item")
		return
	}
	response.OK(c, http.StatusOK, "", item)
}

// CreateItem adds a menu item from a multipart form; the dish image is
// optional and goes through the menu-image pipeline when present.
func (h *MenuHandler) CreateItem(c *gin.Context) {
	claims := webhttp.ClaimsFromContext(c)
	if claims == nil {
		response.Fail(c, http.StatusUnauthorized, "unauthorized")
		return
	}

	name := strings.TrimSpace(c.PostForm("name"))
	categoryID, errCategory := strconv.ParseUint(c.PostForm("category_id"), 10, 64)
	if name == "" || errCategory != nil || categoryID == 0 {
		response.Fail(c, http.StatusBadRequest, "name and category_id are required")
		return
	}

	var category models.MenuCategory
	if errFind := h.db.WithContext(c.Request.Context()).First(&category, categoryID).Error; errFind != nil {
		response.Fail(c, http.StatusBadRequest, "category does not exist")
		return
	}

	var stored *upload.StoredFile
	if fileHeader, errFile := c.FormFile("image"); errFile == nil {
		var errSave error
		stored, errSave = h.store.SaveMultipart(fileHeader, upload.MenuImage)
		if errSave != nil {
			if upload.IsValidationError(errSave) {
				response.Fail(c, http.StatusBadRequest, errSave.Error())
				return
			}
			response.Fail(c, http.StatusInternalServerError, "failed to store image")
			return
		}
	}

	priceCents, _ := strconv.ParseInt(c.DefaultPostForm("price_cents", "0"), 10, 64)
	position, _ := strconv.Atoi(c.DefaultPostForm("position", "0"))
	item := models.MenuItem{
		CategoryID:  categoryID,
		Name:        name,
		NameEN:      c.PostForm("name_en"),
		Description: c.PostForm("description"),
		PriceCents:  priceCents,
		Available:   c.DefaultPostForm("available", "true") != "false",
		Featured:    c.PostForm("featured") == "true",
		Position:    position,
	}
	if currency := strings.TrimSpace(c.PostForm("currency")); currency != "" {
		item.Currency = currency
	}
	if tags := strings.TrimSpace(c.PostForm("tags")); tags != "" {
		item.Tags = datatypes.JSON(tags)
	}
	if stored != nil {
		item.ImageFilename = stored.Filename
		item.ImagePath = stored.PublicPath
	}

	if errCreate := h.db.WithContext(c.Request.Context()).Create(&item).Error; errCreate != nil {
		if stored != nil {
			h.store.Remove(upload.MenuImage, stored.Filename)
		}
		response.Fail(c, http.StatusInternalServerError, "failed to save menu item")
		return
	}

	h.recorder.Record(c.Request.Context(), audit.Entry{
		AdminID:     claims.AdminID,
		Action:      models.ActionCreate,
		TableName:   "menu_items",
		RecordID:    item.ID,
		Description: "menu item created: " + name,
		IPAddress:   c.ClientIP(),
	})

	response.OK(c, http.StatusCreated, "menu item created", item)
}

// UpdateItem changes a menu item; a new image replaces (and deletes) the
// previous file.
func (h *MenuHandler) UpdateItem(c *gin.Context) {
	claims := webhttp.ClaimsFromContext(c)
	if claims == nil {
		response.Fail(c, http.StatusUnauthorized, "unauthorized")
		return
	}

	var item models.MenuItem
	if errFind := h.db.WithContext(c.Request.Context()).First(&item, c.Param("id")).Error; errFind != nil {
		if errors.Is(errFind, gorm.ErrRecordNotFound) {
			response.Fail(c, http.StatusNotFound, "menu item not found")
			return
		}
		response.Fail(c, http.StatusInternalServerError, "failed to fetch menu item")
		return
	}

	updates := map[string]any{}
	if name := strings.TrimSpace(c.PostForm("name")); name != "" {
		updates["name"] = name
	}
	for field, column := range map[string]string{
		"name_en":     "name_en",
		"description": "description",
		"currency":    "currency",
	} {
		if value, ok := c.GetPostForm(field); ok {
			updates[column] = value
		}
	}
	if price, ok := c.GetPostForm("price_cents"); ok {
		if parsed, errParse := strconv.ParseInt(price, 10, 64); errParse == nil {
			updates["price_cents"] = parsed
		}
	}
	if position, ok := c.GetPostForm("position"); ok {
		if parsed, errParse := strconv.Atoi(position); errParse == nil {
			updates["position"] = parsed
		}
	}
	if available, ok := c.GetPostForm("available"); ok {
		updates["available"] = available != "false"
	}
	if featured, ok := c.GetPostForm("featured"); ok {
		updates["featured"] = featured == "true"
	}

	previousImage := item.ImageFilename
	var stored *upload.StoredFile
	if fileHeader, errFile := c.FormFile("image"); errFile == nil {
		var errSave error
		stored, errSave = h.store.SaveMultipart(fileHeader, upload.MenuImage)
		if errSave != nil {
			if upload.IsValidationError(errSave) {
				response.Fail(c, http.StatusBadRequest, errSave.Error())
				return
			}
			response.Fail(c, http.StatusInternalServerError, "failed to store image")
			return
		}
		updates["image_filename"] = stored.Filename
		updates["image_path"] = stored.PublicPath
	}

	if errUpdate := h.db.WithContext(c.Request.Context()).Model(&item).Updates(updates).Error; errUpdate != nil {
		if stored != nil {
			h.store.Remove(upload.MenuImage, stored.Filename)
		}
		response.Fail(c, http.StatusInternalServerError, "failed to update menu item")
		return
	}
	if stored != nil && previousImage != "" {
		h.store.Remove(upload.MenuImage, previousImage)
	}

	h.recorder.Record(c.Request.Context(), audit.Entry{
		AdminID:     claims.AdminID,
		Action:      models.ActionUpdate,
		TableName:   "menu_items",
		RecordID:    item.ID,
		Description: "menu item updated: " + item.Name,
		IPAddress:   c.ClientIP(),
	})

	response.OK(c, http.StatusOK, "menu item updated", nil)
}

// DeleteItem removes the record, then its image file if any.
func (h *MenuHandler) DeleteItem(c *gin.Context) {
	claims := webhttp.ClaimsFromContext(c)
	if claims == nil {
		response.Fail(c, http.StatusUnauthorized, "unauthorized")
		return
	}

	var item models.MenuItem
	if errFind := h.db.WithContext(c.Request.Context()).First(&item, c.Param("id")).Error; errFind != nil {
		if errors.Is(errFind, gorm.ErrRecordNotFound) {
			response.Fail(c, http.StatusNotFound, "menu item not found")
			return
		}
		response.Fail(c, http.StatusInternalServerError, "failed to fetch menu item")
		return
	}

	if errDelete := h.db.WithContext(c.Request.Context()).Delete(&item).Error; errDelete != nil {
		response.Fail(c, http.StatusInternalServerError, "failed to delete menu item")
		return
	}

	if item.ImageFilename != "" {
		h.store.Remove(upload.MenuImage, item.ImageFilename)
	}

	h.recorder.Record(c.Request.Context(), audit.Entry{
		AdminID:     claims.AdminID,
		Action:      models.ActionDelete,
		TableName:   "menu_items",
		RecordID:    item.ID,
		Description: "menu item deleted: " + item.Name,
		IPAddress:   c.ClientIP(),
	})

	response.OK(c, http.StatusOK, "menu item deleted", nil)
}
