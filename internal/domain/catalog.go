// Package domain defines the core types and interfaces for the ordering assistant.
// All other packages depend on domain; domain depends on nothing.
package domain

// MenuItem is a single catalog entry as served by GET /menu.
type MenuItem struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Type         string `json:"type"`
	Price        int    `json:"price"`
	Customizable bool   `json:"customizable"`
}

// MenuCategory groups menu items under a heading.
type MenuCategory struct {
	ID    string     `json:"id"`
	Name  string     `json:"name"`
	Items []MenuItem `json:"items"`
}

// Menu is the full catalog document.
type Menu struct {
	Categories []MenuCategory `json:"categories"`
}
