package models

import (
	"errors"
	"time"
)

// MediaStatus is the contract state of a media resource.
type MediaStatus string

const (
	MediaActive   MediaStatus = "active"
	MediaPending  MediaStatus = "pending"
	MediaExpiring MediaStatus = "expiring"
	MediaExpired  MediaStatus = "expired"
)

// DateLayout is the calendar-date format used by contract fields.
const DateLayout = "2006-01-02"

// DefaultMediaType is the type preselected for new media resources.
const DefaultMediaType = "户外媒体"

// ErrInvalidContractDates is returned when a contract ends before it starts.
var ErrInvalidContractDates = errors.New("contractEnd must not be before contractStart")

// MediaResource is an advertising slot obtained through barter.
// Rate is a display string such as "¥15,000/周", not a normalized number.
type MediaResource struct {
	ID             string      `json:"id" binding:"required"`
	Name           string      `json:"name"`
	Type           string      `json:"type"`
	Format         string      `json:"format"`
	Location       string      `json:"location"`
	Rate           string      `json:"rate"`
	Discount       float64     `json:"discount" binding:"min=0,max=1"`
	ContractStart  string      `json:"contractStart" binding:"omitempty,datetime=2006-01-02"`
	ContractEnd    string      `json:"contractEnd" binding:"omitempty,datetime=2006-01-02"`
	Status         MediaStatus `json:"status" binding:"oneof=active pending expiring expired"`
	Valuation      *float64    `json:"valuation,omitempty"`
	AvailableSlots *int        `json:"availableSlots,omitempty"`
}

type MediaPatch struct {
	Name           *string           `json:"name"`
	Type           *string           `json:"type"`
	Format         *string           `json:"format"`
	Location       *string           `json:"location"`
	Rate           *string           `json:"rate"`
	Discount       *float64          `json:"discount" binding:"omitempty,min=0,max=1"`
	ContractStart  *string           `json:"contractStart" binding:"omitempty,datetime=2006-01-02"`
	ContractEnd    *string           `json:"contractEnd" binding:"omitempty,datetime=2006-01-02"`
	Status         *MediaStatus      `json:"status" binding:"omitempty,oneof=active pending expiring expired"`
	Valuation      Optional[float64] `json:"valuation"`
	AvailableSlots Optional[int]     `json:"availableSlots"`
}

// NewMediaResource returns a resource with a one-year contract starting today.
func NewMediaResource(id string, now time.Time) MediaResource {
	zero := 0.0
	return MediaResource{
		ID:            id,
		Type:          DefaultMediaType,
		Discount:      0.8,
		ContractStart: now.Format(DateLayout),
		ContractEnd:   now.AddDate(1, 0, 0).Format(DateLayout),
		Status:        MediaActive,
		Valuation:     &zero,
	}
}

func (m *MediaResource) Apply(p MediaPatch) {
	setIf(&m.Name, p.Name)
	setIf(&m.Type, p.Type)
	setIf(&m.Format, p.Format)
	setIf(&m.Location, p.Location)
	setIf(&m.Rate, p.Rate)
	setIf(&m.Discount, p.Discount)
	setIf(&m.ContractStart, p.ContractStart)
	setIf(&m.ContractEnd, p.ContractEnd)
	setIf(&m.Status, p.Status)
	p.Valuation.applyTo(&m.Valuation)
	p.AvailableSlots.applyTo(&m.AvailableSlots)
}

// ValuationOrZero treats a missing valuation as zero, as the dashboard totals do.
func (m MediaResource) ValuationOrZero() float64 {
	if m.Valuation == nil {
		return 0
	}
	return *m.Valuation
}

// ValidateContract checks that the contract window is not inverted.
// Unparseable or empty dates are left to the caller.
func (m MediaResource) ValidateContract() error {
	start, errStart := time.Parse(DateLayout, m.ContractStart)
	end, errEnd := time.Parse(DateLayout, m.ContractEnd)
	if errStart != nil || errEnd != nil {
		return nil
	}
	if end.Before(start) {
		return ErrInvalidContractDates
	}
	return nil
}
