package service

import "errors"

// Sentinel errors surfaced to the API layer, where they map to HTTP statuses.
var (
	ErrNotFound              = errors.New("record not found")
	ErrAlreadyReversed       = errors.New("expense already reversed")
	ErrDuplicateInvoice      = errors.New("invoice number already exists for this year")
	ErrDuplicateDecision     = errors.New("decision already exists for this year and type")
	ErrOccurrenceAlreadyPaid = errors.New("this occurrence is already marked paid")
	ErrArchivedProject       = errors.New("cannot assign an archived project")
)
