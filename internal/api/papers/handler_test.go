package papers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"paper-tracker/database"
	domain "paper-tracker/internal/domain/papers"
	"paper-tracker/internal/domain/reading"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const testUserID = uint(1)

// setupTest points the package-level DB at an in-memory database and
// returns a router with the paper routes mounted behind a stub identity.
func setupTest(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, database.Migrate(db))

	prev := database.DB
	database.DB = db
	t.Cleanup(func() { database.DB = prev })

	r := gin.New()
	r.Use(func(c *gin.Context) { c.Set("user_id", testUserID) })
	r.GET("/papers", GetPapers)
	r.POST("/papers", CreatePaper)
	r.POST("/papers/reorder", ReorderPapers)
	r.POST("/papers/fetch-arxiv", FetchArxiv)
	r.GET("/papers/:id", GetPaper)
	r.PUT("/papers/:id", UpdatePaper)
	r.DELETE("/papers/:id", DeletePaper)
	r.POST("/papers/:id/like", LikePaper)
	r.POST("/papers/:id/refresh-arxiv", RefreshArxiv)
	return r
}

func doJSON(t *testing.T, r *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder, out any) {
	t.Helper()
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), out))
}

func TestCreateAndGetPaper(t *testing.T) {
	r := setupTest(t)

	w := doJSON(t, r, http.MethodPost, "/papers", gin.H{
		"title":   "Attention Is All You Need",
		"authors": []string{"Ashish Vaswani", "Noam Shazeer"},
		"notes":   "transformer origin",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var created PaperResponse
	decode(t, w, &created)
	assert.Equal(t, "Attention Is All You Need", created.Title)
	assert.Equal(t, reading.StatusPlanned, created.Status)
	assert.Equal(t, domain.SourceManual, created.Source)
	require.Len(t, created.Authors, 2)
	assert.Equal(t, "Ashish Vaswani", created.Authors[0].Name)
	assert.Equal(t, "Noam Shazeer", created.Authors[1].Name)

	w = doJSON(t, r, http.MethodGet, fmt.Sprintf("/papers/%d", created.ID), nil)
	require.Equal(t, http.StatusOK, w.Code)

	var got PaperResponse
	decode(t, w, &got)
	assert.Equal(t, created.ID, got.ID)
	assert.Equal(t, "transformer origin", got.Notes)
}

func TestCreatePaperRequiresTitle(t *testing.T) {
	r := setupTest(t)

	w := doJSON(t, r, http.MethodPost, "/papers", gin.H{"notes": "no title"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCreatePaperPlacesNewestFirst(t *testing.T) {
	r := setupTest(t)

	w := doJSON(t, r, http.MethodPost, "/papers", gin.H{"title": "first"})
	require.Equal(t, http.StatusCreated, w.Code)
	w = doJSON(t, r, http.MethodPost, "/papers", gin.H{"title": "second"})
	require.Equal(t, http.StatusCreated, w.Code)

	var second PaperResponse
	decode(t, w, &second)
	assert.Equal(t, -10, second.OrderIndex)

	w = doJSON(t, r, http.MethodGet, "/papers?sort_by=manual", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var list struct {
		Papers []PaperResponse `json:"papers"`
		Counts map[string]int  `json:"counts"`
	}
	decode(t, w, &list)
	require.Len(t, list.Papers, 2)
	assert.Equal(t, "second", list.Papers[0].Title)
	assert.Equal(t, "first", list.Papers[1].Title)

	// Counts cover every status, zero-filled.
	assert.Equal(t, 2, list.Counts["PLANNED"])
	assert.Equal(t, 0, list.Counts["READING"])
	assert.Equal(t, 0, list.Counts["READ"])
}

func TestCreatePaperDuplicateArxivID(t *testing.T) {
	r := setupTest(t)

	w := doJSON(t, r, http.MethodPost, "/papers", gin.H{"title": "one", "arxiv_id": "1706.03762"})
	require.Equal(t, http.StatusCreated, w.Code)

	w = doJSON(t, r, http.MethodPost, "/papers", gin.H{"title": "two", "arxiv_id": "1706.03762"})
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestUpdatePaperReadAtTransitions(t *testing.T) {
	r := setupTest(t)

	w := doJSON(t, r, http.MethodPost, "/papers", gin.H{"title": "p"})
	require.Equal(t, http.StatusCreated, w.Code)
	var created PaperResponse
	decode(t, w, &created)

	path := fmt.Sprintf("/papers/%d", created.ID)
	w = doJSON(t, r, http.MethodPut, path, gin.H{"title": "p", "status": "READ"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var read PaperResponse
	decode(t, w, &read)
	require.NotNil(t, read.ReadAt)

	// Moving back out of READ clears the timestamp.
	w = doJSON(t, r, http.MethodPut, path, gin.H{"title": "p", "status": "READING"})
	require.Equal(t, http.StatusOK, w.Code)

	var back PaperResponse
	decode(t, w, &back)
	assert.Nil(t, back.ReadAt)
}

func TestUpdatePaperIsFullReplace(t *testing.T) {
	r := setupTest(t)

	w := doJSON(t, r, http.MethodPost, "/papers", gin.H{
		"title":    "p",
		"abstract": "long abstract",
		"notes":    "some notes",
		"doi":      "10.1000/1",
	})
	require.Equal(t, http.StatusCreated, w.Code)
	var created PaperResponse
	decode(t, w, &created)

	// Omitted fields are cleared, not preserved.
	w = doJSON(t, r, http.MethodPut, fmt.Sprintf("/papers/%d", created.ID), gin.H{
		"title":  "p",
		"status": "PLANNED",
		"notes":  "some notes",
	})
	require.Equal(t, http.StatusOK, w.Code)

	var updated PaperResponse
	decode(t, w, &updated)
	assert.Equal(t, "", updated.Abstract)
	assert.Equal(t, "", updated.DOI)
	assert.Equal(t, "some notes", updated.Notes)
}

func TestUpdatePaperNilAuthorsKeepsList(t *testing.T) {
	r := setupTest(t)

	w := doJSON(t, r, http.MethodPost, "/papers", gin.H{"title": "p", "authors": []string{"Ada Lovelace"}})
	require.Equal(t, http.StatusCreated, w.Code)
	var created PaperResponse
	decode(t, w, &created)

	w = doJSON(t, r, http.MethodPut, fmt.Sprintf("/papers/%d", created.ID), gin.H{"title": "p (rev)", "status": "PLANNED"})
	require.Equal(t, http.StatusOK, w.Code)

	var updated PaperResponse
	decode(t, w, &updated)
	assert.Equal(t, "p (rev)", updated.Title)
	require.Len(t, updated.Authors, 1)
	assert.Equal(t, "Ada Lovelace", updated.Authors[0].Name)
}

func TestLikePaper(t *testing.T) {
	r := setupTest(t)

	w := doJSON(t, r, http.MethodPost, "/papers", gin.H{"title": "p"})
	require.Equal(t, http.StatusCreated, w.Code)
	var created PaperResponse
	decode(t, w, &created)

	path := fmt.Sprintf("/papers/%d/like", created.ID)
	for want := 1; want <= 3; want++ {
		w = doJSON(t, r, http.MethodPost, path, nil)
		require.Equal(t, http.StatusOK, w.Code)
		var resp struct {
			Likes int `json:"likes"`
		}
		decode(t, w, &resp)
		assert.Equal(t, want, resp.Likes)
	}
}

func TestReorderPapers(t *testing.T) {
	r := setupTest(t)

	var ids []uint
	for _, title := range []string{"a", "b", "c"} {
		w := doJSON(t, r, http.MethodPost, "/papers", gin.H{"title": title})
		require.Equal(t, http.StatusCreated, w.Code)
		var created PaperResponse
		decode(t, w, &created)
		ids = append(ids, created.ID)
	}

	w := doJSON(t, r, http.MethodPost, "/papers/reorder", gin.H{
		"status":    "PLANNED",
		"paper_ids": []uint{ids[0], ids[1], ids[2]},
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = doJSON(t, r, http.MethodGet, "/papers", nil)
	var list struct {
		Papers []PaperResponse `json:"papers"`
	}
	decode(t, w, &list)
	require.Len(t, list.Papers, 3)
	assert.Equal(t, "a", list.Papers[0].Title)
	assert.Equal(t, "b", list.Papers[1].Title)
	assert.Equal(t, "c", list.Papers[2].Title)
}

func TestReorderPapersRejectsStaleIDs(t *testing.T) {
	r := setupTest(t)

	w := doJSON(t, r, http.MethodPost, "/papers", gin.H{"title": "a"})
	require.Equal(t, http.StatusCreated, w.Code)
	var created PaperResponse
	decode(t, w, &created)

	w = doJSON(t, r, http.MethodPost, "/papers/reorder", gin.H{
		"status":    "PLANNED",
		"paper_ids": []uint{created.ID, 9999},
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestDeletePaper(t *testing.T) {
	r := setupTest(t)

	w := doJSON(t, r, http.MethodPost, "/papers", gin.H{"title": "p"})
	require.Equal(t, http.StatusCreated, w.Code)
	var created PaperResponse
	decode(t, w, &created)

	path := fmt.Sprintf("/papers/%d", created.ID)
	w = doJSON(t, r, http.MethodDelete, path, nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, r, http.MethodGet, path, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestGetPaperNotFound(t *testing.T) {
	r := setupTest(t)

	w := doJSON(t, r, http.MethodGet, "/papers/42", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestGetPapersStatusFilter(t *testing.T) {
	r := setupTest(t)

	w := doJSON(t, r, http.MethodPost, "/papers", gin.H{"title": "planned"})
	require.Equal(t, http.StatusCreated, w.Code)
	w = doJSON(t, r, http.MethodPost, "/papers", gin.H{"title": "reading", "status": "READING"})
	require.Equal(t, http.StatusCreated, w.Code)

	w = doJSON(t, r, http.MethodGet, "/papers?status=READING", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var list struct {
		Papers []PaperResponse `json:"papers"`
	}
	decode(t, w, &list)
	require.Len(t, list.Papers, 1)
	assert.Equal(t, "reading", list.Papers[0].Title)

	w = doJSON(t, r, http.MethodGet, "/papers?status=bogus", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
