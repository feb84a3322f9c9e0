package models

// Specialty is a medical discipline doctors can be searched by.
type Specialty struct {
	ID    string `json:"id" gorm:"type:uuid;primaryKey"`
	Title string `json:"title" gorm:"unique;not null"`
	Icon  string `json:"icon"`
}
