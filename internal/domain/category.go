package domain

import (
	"sort"
	"strings"
)

// Category represents a board column
type Category struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	Color    string `json:"color"`
	Position int    `json:"position"`
}

// Well-known category names used by the toggle-complete reassignment rule
const (
	CategoryNameCompleted = "Completed"
	CategoryNameTodo      = "To Do"
)

// FindCategoryByName looks a category up by name, case-insensitively
func FindCategoryByName(categories []Category, name string) (Category, bool) {
	for _, c := range categories {
		if strings.EqualFold(c.Name, name) {
			return c, true
		}
	}
	return Category{}, false
}

// SortCategories returns the categories ordered by their board position
func SortCategories(categories []Category) []Category {
	result := make([]Category, len(categories))
	copy(result, categories)
	sort.SliceStable(result, func(i, j int) bool {
		return result[i].Position < result[j].Position
	})
	return result
}
