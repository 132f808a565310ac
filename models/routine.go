package models

// Routine is one item of the daily routine checklist.
type Routine struct {
	ID        int    `json:"id" yaml:"id"`
	Title     string `json:"title" yaml:"title"`
	Completed bool   `json:"completed" yaml:"completed"`
	Icon      string `json:"icon" yaml:"icon"`
}
