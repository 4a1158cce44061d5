package models

// DocumentTemplate is a reusable document body containing {{dotted.path}}
// placeholder tokens resolved against client/case data at generation time.
type DocumentTemplate struct {
	ID      string `json:"id"`
	Title   string `json:"title" validate:"required"`
	Content string `json:"content" validate:"required"`
}
