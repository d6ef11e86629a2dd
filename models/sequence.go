package models

// InvoiceSequence holds the last issued invoice ordinal per year.
// The row is mutated only through the atomic allocator in the service layer.
type InvoiceSequence struct {
	Year       int `json:"year" gorm:"primaryKey;autoIncrement:false"`
	LastNumber int `json:"last_number" gorm:"not null;default:0"`
}

func (InvoiceSequence) TableName() string {
	return "invoice_sequence"
}

// ProjectSequence holds the last issued project code ordinal per year.
type ProjectSequence struct {
	Year       int `json:"year" gorm:"primaryKey;autoIncrement:false"`
	LastNumber int `json:"last_number" gorm:"not null;default:0"`
}

func (ProjectSequence) TableName() string {
	return "project_sequence"
}
