package textbooks

import "paper-tracker/internal/domain/textbooks"

type TextbookRequest struct {
	Title     string `json:"title" binding:"required"`
	Authors   string `json:"authors"`
	Publisher string `json:"publisher"`
	Year      *int   `json:"year"`
	ISBN      string `json:"isbn"`
	Edition   string `json:"edition"`
	URL       string `json:"url"`

	Status     string `json:"status"`
	CategoryID *uint  `json:"category_id"`
	Notes      string `json:"notes"`
}

type ReorderRequest struct {
	Status      string `json:"status" binding:"required"`
	TextbookIDs []uint `json:"textbook_ids" binding:"required"`
	CategoryID  *uint  `json:"category_id"`
}

type FetchISBNRequest struct {
	ISBN string `json:"isbn" binding:"required"`
}

type TextbookResponse struct {
	textbooks.Textbook
	EffortTotal int `json:"effort_total"`
}
