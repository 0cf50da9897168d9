package models

// ChannelType groups sales channels.
type ChannelType string

const (
	ChannelOnline  ChannelType = "Online"
	ChannelOffline ChannelType = "Offline"
	ChannelSpecial ChannelType = "Special"
)

// ChannelStatus is the onboarding state of a sales channel.
type ChannelStatus string

const (
	ChannelActive  ChannelStatus = "active"
	ChannelPending ChannelStatus = "pending"
)

// SalesChannel is an outlet through which bartered inventory is sold.
// CommissionRate is the fraction of the sale price the channel keeps.
type SalesChannel struct {
	ID                   string        `json:"id" binding:"required"`
	Name                 string        `json:"name"`
	Type                 ChannelType   `json:"type" binding:"oneof=Online Offline Special"`
	SubType              string        `json:"subType"`
	Features             string        `json:"features"`
	ApplicableCategories string        `json:"applicableCategories"`
	Pros                 string        `json:"pros"`
	CommissionRate       float64       `json:"commissionRate" binding:"min=0,max=1"`
	ContactPerson        string        `json:"contactPerson"`
	Status               ChannelStatus `json:"status" binding:"oneof=active pending"`
}

type ChannelPatch struct {
	Name                 *string        `json:"name"`
	Type                 *ChannelType   `json:"type" binding:"omitempty,oneof=Online Offline Special"`
	SubType              *string        `json:"subType"`
	Features             *string        `json:"features"`
	ApplicableCategories *string        `json:"applicableCategories"`
	Pros                 *string        `json:"pros"`
	CommissionRate       *float64       `json:"commissionRate" binding:"omitempty,min=0,max=1"`
	ContactPerson        *string        `json:"contactPerson"`
	Status               *ChannelStatus `json:"status" binding:"omitempty,oneof=active pending"`
}

func NewSalesChannel(id string) SalesChannel {
	return SalesChannel{
		ID:             id,
		Type:           ChannelOnline,
		CommissionRate: 0.1,
		Status:         ChannelActive,
	}
}

func (c *SalesChannel) Apply(p ChannelPatch) {
	setIf(&c.Name, p.Name)
	setIf(&c.Type, p.Type)
	setIf(&c.SubType, p.SubType)
	setIf(&c.Features, p.Features)
	setIf(&c.ApplicableCategories, p.ApplicableCategories)
	setIf(&c.Pros, p.Pros)
	setIf(&c.CommissionRate, p.CommissionRate)
	setIf(&c.ContactPerson, p.ContactPerson)
	setIf(&c.Status, p.Status)
}
