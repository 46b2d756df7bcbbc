package effort

import (
	"net/http"
	"strconv"

	"paper-tracker/database"
	"paper-tracker/internal/domain/effort"
	"paper-tracker/internal/domain/papers"
	"paper-tracker/internal/domain/textbooks"

	"github.com/gin-gonic/gin"
)

type LogRequest struct {
	Points     int    `json:"points"`
	Note       string `json:"note"`
	PaperID    *uint  `json:"paper_id"`
	TextbookID *uint  `json:"textbook_id"`
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

// POST /effort
func CreateLog(c *gin.Context) {
	userID, ok := mustUserID(c)
	if !ok {
		return
	}

	var req LogRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.PaperID == nil && req.TextbookID == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "paper_id or textbook_id required"})
		return
	}

	// The referenced item must exist in this user's library.
	if req.PaperID != nil {
		var count int64
		database.DB.Model(&papers.Paper{}).
			Where("id = ? AND user_id = ?", *req.PaperID, userID).Count(&count)
		if count == 0 {
			c.JSON(http.StatusNotFound, gin.H{"error": "Paper not found"})
			return
		}
	}
	if req.TextbookID != nil {
		var count int64
		database.DB.Model(&textbooks.Textbook{}).
			Where("id = ? AND user_id = ?", *req.TextbookID, userID).Count(&count)
		if count == 0 {
			c.JSON(http.StatusNotFound, gin.H{"error": "Textbook not found"})
			return
		}
	}

	points := req.Points
	if points == 0 {
		points = 1
	}

	log := effort.Log{
		UserID:     userID,
		PaperID:    req.PaperID,
		TextbookID: req.TextbookID,
		Points:     points,
		Note:       req.Note,
	}
	if err := database.DB.Create(&log).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create effort log"})
		return
	}

	c.JSON(http.StatusCreated, log)
}

// GET /effort?paper_id=&textbook_id=&limit=
func GetLogs(c *gin.Context) {
	userID, ok := mustUserID(c)
	if !ok {
		return
	}

	q := database.DB.Model(&effort.Log{}).
		Where("user_id = ?", userID).
		Order("created_at DESC")

	if pid := c.Query("paper_id"); pid != "" {
		id, err := strconv.ParseUint(pid, 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid paper_id"})
			return
		}
		q = q.Where("paper_id = ?", uint(id))
	}
	if tid := c.Query("textbook_id"); tid != "" {
		id, err := strconv.ParseUint(tid, 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid textbook_id"})
			return
		}
		q = q.Where("textbook_id = ?", uint(id))
	}
	if limit := c.Query("limit"); limit != "" {
		n, err := strconv.Atoi(limit)
		if err != nil || n < 1 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid limit"})
			return
		}
		q = q.Limit(n)
	}

	var logs []effort.Log
	if err := q.Find(&logs).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load effort logs"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"effort_logs": logs})
}
