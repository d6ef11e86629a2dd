package models

import "time"

// Client is a counterparty directory entry.
type Client struct {
	ID               uint      `json:"id" gorm:"primaryKey"`
	Name             string    `json:"name" gorm:"size:200;not null"`
	Address          string    `json:"address" gorm:"size:500"`
	TaxID            string    `json:"tax_id" gorm:"size:20"`
	Contact          string    `json:"contact" gorm:"size:200"`
	ClientType       string    `json:"client_type" gorm:"size:20;default:legal"` // legal | individual
	DocumentLanguage string    `json:"document_language" gorm:"size:5;default:sr"`
	IsArchived       bool      `json:"is_archived" gorm:"default:false"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

func (Client) TableName() string {
	return "clients"
}
