package models

import "time"

// DealStatus tracks where a brand negotiation stands.
type DealStatus string

const (
	DealStatusSent        DealStatus = "sent"
	DealStatusWaiting     DealStatus = "waiting"
	DealStatusNegotiating DealStatus = "negotiating"
	DealStatusAccepted    DealStatus = "accepted"
	DealStatusRejected    DealStatus = "rejected"
)

// DealStatuses lists every status in display order.
var DealStatuses = []DealStatus{
	DealStatusSent, DealStatusWaiting, DealStatusNegotiating, DealStatusAccepted, DealStatusRejected,
}

func (s DealStatus) Valid() bool {
	for _, v := range DealStatuses {
		if s == v {
			return true
		}
	}
	return false
}

// InProgress reports whether the deal is still awaiting an outcome.
func (s DealStatus) InProgress() bool {
	return s == DealStatusSent || s == DealStatusWaiting || s == DealStatusNegotiating
}

// Closed reports whether the deal reached a final outcome.
func (s DealStatus) Closed() bool {
	return s == DealStatusAccepted || s == DealStatusRejected
}

type DealType string

const (
	DealTypeSponsorship   DealType = "sponsorship"
	DealTypeAffiliate     DealType = "affiliate"
	DealTypeCollaboration DealType = "collaboration"
	DealTypeUGC           DealType = "ugc"
)

var DealTypes = []DealType{DealTypeSponsorship, DealTypeAffiliate, DealTypeCollaboration, DealTypeUGC}

func (t DealType) Valid() bool {
	for _, v := range DealTypes {
		if t == v {
			return true
		}
	}
	return false
}

// DateLayout is the calendar-date form used for deal and event dates.
const DateLayout = "2006-01-02"

// Deal is one brand-partnership record. The JSON shape is the persisted shape.
type Deal struct {
	ID             string     `json:"id"`
	BrandName      string     `json:"brand_name"`
	ContactEmail   string     `json:"contact_email"`
	DateSent       string     `json:"date_sent"`
	Status         DealStatus `json:"status"`
	DealType       DealType   `json:"deal_type"`
	ProposedAmount *float64   `json:"proposed_amount,omitempty"`
	Notes          string     `json:"notes,omitempty"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
}

// DealDraft is a deal before the ledger assigns its id and timestamps.
type DealDraft struct {
	BrandName      string     `json:"brand_name"`
	ContactEmail   string     `json:"contact_email,omitempty"`
	DateSent       string     `json:"date_sent,omitempty"`
	Status         DealStatus `json:"status,omitempty"`
	DealType       DealType   `json:"deal_type,omitempty"`
	ProposedAmount *float64   `json:"proposed_amount,omitempty"`
	Notes          string     `json:"notes,omitempty"`
}

// WithDefaults fills the fields the entry form pre-selects: status sent,
// type sponsorship and today's date.
func (d DealDraft) WithDefaults(today time.Time) DealDraft {
	if d.Status == "" {
		d.Status = DealStatusSent
	}
	if d.DealType == "" {
		d.DealType = DealTypeSponsorship
	}
	if d.DateSent == "" {
		d.DateSent = today.Format(DateLayout)
	}
	return d
}

// DealPatch carries the fields to merge over an existing deal. Nil means unchanged.
type DealPatch struct {
	BrandName      *string     `json:"brand_name,omitempty"`
	ContactEmail   *string     `json:"contact_email,omitempty"`
	DateSent       *string     `json:"date_sent,omitempty"`
	Status         *DealStatus `json:"status,omitempty"`
	DealType       *DealType   `json:"deal_type,omitempty"`
	ProposedAmount *float64    `json:"proposed_amount,omitempty"`
	Notes          *string     `json:"notes,omitempty"`
}

// IsEmpty reports whether the patch changes nothing.
func (p DealPatch) IsEmpty() bool {
	return p.BrandName == nil && p.ContactEmail == nil && p.DateSent == nil &&
		p.Status == nil && p.DealType == nil && p.ProposedAmount == nil && p.Notes == nil
}

// ApplyTo returns d with the patch's fields merged over it. ID and the
// timestamps are never touched here.
func (p DealPatch) ApplyTo(d Deal) Deal {
	if p.BrandName != nil {
		d.BrandName = *p.BrandName
	}
	if p.ContactEmail != nil {
		d.ContactEmail = *p.ContactEmail
	}
	if p.DateSent != nil {
		d.DateSent = *p.DateSent
	}
	if p.Status != nil {
		d.Status = *p.Status
	}
	if p.DealType != nil {
		d.DealType = *p.DealType
	}
	if p.ProposedAmount != nil {
		amount := *p.ProposedAmount
		d.ProposedAmount = &amount
	}
	if p.Notes != nil {
		d.Notes = *p.Notes
	}
	return d
}

// DealStats are the aggregates shown above the deal table.
type DealStats struct {
	Total       int `json:"total"`
	InProgress  int `json:"inProgress"`
	Accepted    int `json:"accepted"`
	Rejected    int `json:"rejected"`
	SuccessRate int `json:"successRate"`
}
