package textbooks

import (
	"errors"
	"net/http"
	"strconv"
	"sync"
	"time"

	"paper-tracker/config"
	"paper-tracker/database"
	"paper-tracker/internal/domain/effort"
	"paper-tracker/internal/domain/ordering"
	"paper-tracker/internal/domain/reading"
	"paper-tracker/internal/domain/textbooks"
	"paper-tracker/internal/openlibrary"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

var (
	clientOnce sync.Once
	olClient   *openlibrary.Client
)

func client() *openlibrary.Client {
	clientOnce.Do(func() {
		olClient = openlibrary.NewClient(config.OPENLIBRARY_BASE_URL)
	})
	return olClient
}

func mustUserID(c *gin.Context) (uint, bool) {
	value, exists := c.Get("user_id")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return 0, false
	}
	userID, ok := value.(uint)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return 0, false
	}
	return userID, true
}

func applySort(q *gorm.DB, mode reading.SortMode) *gorm.DB {
	switch mode {
	case reading.SortLikes:
		return q.Order("likes DESC").Order("created_at DESC")
	case reading.SortAdded:
		return q.Order("created_at DESC")
	case reading.SortRead:
		return q.Order("read_at DESC NULLS LAST").Order("created_at DESC")
	default:
		return q.Order("order_index ASC").Order("id ASC")
	}
}

// GET /textbooks?status=&category_id=&sort_by=
func GetTextbooks(c *gin.Context) {
	userID, ok := mustUserID(c)
	if !ok {
		return
	}

	q := database.DB.Model(&textbooks.Textbook{}).
		Preload("Category").
		Where("user_id = ?", userID)
	q = applySort(q, reading.ParseSortMode(c.Query("sort_by")))

	if s := c.Query("status"); s != "" {
		status, err := reading.ParseStatus(s)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		q = q.Where("status = ?", status)
	}
	if cid := c.Query("category_id"); cid != "" {
		id, err := strconv.ParseUint(cid, 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid category_id"})
			return
		}
		q = q.Where("category_id = ?", uint(id))
	}

	var list []textbooks.Textbook
	if err := q.Find(&list).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load textbooks"})
		return
	}

	totals, err := effort.TextbookTotals(database.DB, userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load effort totals"})
		return
	}

	out := make([]TextbookResponse, 0, len(list))
	for _, tb := range list {
		out = append(out, TextbookResponse{Textbook: tb, EffortTotal: totals[tb.ID]})
	}

	c.JSON(http.StatusOK, gin.H{"textbooks": out})
}

// GET /textbooks/:id
func GetTextbook(c *gin.Context) {
	userID, ok := mustUserID(c)
	if !ok {
		return
	}

	tb, ok := findTextbook(c, userID)
	if !ok {
		return
	}

	total, err := effort.TextbookTotal(database.DB, userID, tb.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load effort total"})
		return
	}

	c.JSON(http.StatusOK, TextbookResponse{Textbook: *tb, EffortTotal: total})
}

// POST /textbooks
func CreateTextbook(c *gin.Context) {
	userID, ok := mustUserID(c)
	if !ok {
		return
	}

	var req TextbookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	status := reading.StatusPlanned
	if req.Status != "" {
		var err error
		if status, err = reading.ParseStatus(req.Status); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
	}

	var tb textbooks.Textbook
	err := database.DB.Transaction(func(tx *gorm.DB) error {
		orderIndex, err := ordering.PlaceNew(tx, &textbooks.Textbook{}, ordering.Partition{
			UserID: userID,
			Status: status,
		})
		if err != nil {
			return err
		}

		tb = textbooks.Textbook{
			UserID:     userID,
			Title:      req.Title,
			Authors:    req.Authors,
			Publisher:  req.Publisher,
			Year:       req.Year,
			ISBN:       openlibrary.NormalizeISBN(req.ISBN),
			Edition:    req.Edition,
			URL:        req.URL,
			Status:     status,
			CategoryID: req.CategoryID,
			OrderIndex: orderIndex,
			Notes:      req.Notes,
		}
		return tx.Create(&tb).Error
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create textbook", "details": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, TextbookResponse{Textbook: tb})
}

// PUT /textbooks/:id
// Full replacement: fields omitted from the request body are cleared.
func UpdateTextbook(c *gin.Context) {
	userID, ok := mustUserID(c)
	if !ok {
		return
	}

	tb, ok := findTextbook(c, userID)
	if !ok {
		return
	}

	var req TextbookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	status, err := reading.ParseStatus(req.Status)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	oldStatus := tb.Status

	tb.Title = req.Title
	tb.Authors = req.Authors
	tb.Publisher = req.Publisher
	tb.Year = req.Year
	tb.ISBN = openlibrary.NormalizeISBN(req.ISBN)
	tb.Edition = req.Edition
	tb.URL = req.URL
	tb.Status = status
	tb.CategoryID = req.CategoryID
	tb.Notes = req.Notes

	if status == reading.StatusRead && oldStatus != reading.StatusRead {
		now := time.Now().UTC()
		tb.ReadAt = &now
	} else if status != reading.StatusRead {
		tb.ReadAt = nil
	}

	if err := database.DB.Omit("Category").Save(tb).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update textbook", "details": err.Error()})
		return
	}

	total, _ := effort.TextbookTotal(database.DB, userID, tb.ID)
	c.JSON(http.StatusOK, TextbookResponse{Textbook: *tb, EffortTotal: total})
}

// DELETE /textbooks/:id
func DeleteTextbook(c *gin.Context) {
	userID, ok := mustUserID(c)
	if !ok {
		return
	}

	tb, ok := findTextbook(c, userID)
	if !ok {
		return
	}

	if err := database.DB.Delete(&textbooks.Textbook{}, tb.ID).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete textbook"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// POST /textbooks/:id/like
func LikeTextbook(c *gin.Context) {
	userID, ok := mustUserID(c)
	if !ok {
		return
	}

	tb, ok := findTextbook(c, userID)
	if !ok {
		return
	}

	if err := database.DB.Model(&textbooks.Textbook{}).
		Where("id = ?", tb.ID).
		UpdateColumn("likes", gorm.Expr("likes + 1")).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to like textbook"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"likes": tb.Likes + 1})
}

// POST /textbooks/reorder
func ReorderTextbooks(c *gin.Context) {
	userID, ok := mustUserID(c)
	if !ok {
		return
	}

	var req ReorderRequest
	if err := c.ShouldBindJSON(&req); err != nil || len(req.TextbookIDs) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "status and textbook_ids required"})
		return
	}

	status, err := reading.ParseStatus(req.Status)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	matched, err := ordering.Reorder(database.DB, &textbooks.Textbook{}, ordering.Partition{
		UserID:     userID,
		Status:     status,
		CategoryID: req.CategoryID,
	}, req.TextbookIDs)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to reorder textbooks"})
		return
	}
	if !matched {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid textbook IDs"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// POST /textbooks/fetch-isbn
func FetchISBN(c *gin.Context) {
	if _, ok := mustUserID(c); !ok {
		return
	}

	var req FetchISBNRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "isbn required"})
		return
	}

	meta, err := client().FetchByISBN(c.Request.Context(), req.ISBN)
	if err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, meta)
}

func findTextbook(c *gin.Context, userID uint) (*textbooks.Textbook, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid textbook id"})
		return nil, false
	}

	var tb textbooks.Textbook
	err = database.DB.Preload("Category").
		Where("user_id = ?", userID).
		First(&tb, uint(id)).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Textbook not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load textbook"})
		}
		return nil, false
	}
	return &tb, true
}
