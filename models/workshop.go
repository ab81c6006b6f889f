package models

import "time"

type WorkshopStatus string

const (
	WorkshopOpen   WorkshopStatus = "open"
	WorkshopClosed WorkshopStatus = "closed"
)

func (s WorkshopStatus) Valid() bool {
	return s == WorkshopOpen || s == WorkshopClosed
}

type OwnerContact struct {
	Phone string `bson:"phone,omitempty" json:"phone,omitempty"`
	Email string `bson:"email,omitempty" json:"email,omitempty"`
}

type SocialLinks struct {
	Website   string `bson:"website,omitempty" json:"website,omitempty"`
	Facebook  string `bson:"facebook,omitempty" json:"facebook,omitempty"`
	Instagram string `bson:"instagram,omitempty" json:"instagram,omitempty"`
	Twitter   string `bson:"twitter,omitempty" json:"twitter,omitempty"`
	LinkedIn  string `bson:"linkedin,omitempty" json:"linkedin,omitempty"`
}

// OfferedService is one entry of a workshop's service menu.
type OfferedService struct {
	Name     string `bson:"name" json:"name"`
	ImageURL string `bson:"imageUrl,omitempty" json:"imageUrl,omitempty"`
}

// Workshop is a worker-owned place of business.
type Workshop struct {
	ID           string           `bson:"id" json:"id"`
	WorkerID     string           `bson:"workerId" json:"workerId"`
	Name         string           `bson:"name" json:"name"`
	Status       WorkshopStatus   `bson:"status" json:"status"`
	Address      string           `bson:"address" json:"address"`
	Location     *GeoPoint        `bson:"location,omitempty" json:"location,omitempty"`
	Description  string           `bson:"description" json:"description"`
	OwnerContact OwnerContact     `bson:"ownerContact" json:"ownerContact"`
	Social       SocialLinks      `bson:"social" json:"social"`
	RatingAvg    float64          `bson:"ratingAvg" json:"ratingAvg"`
	ReviewsCount int              `bson:"reviewsCount" json:"reviewsCount"`
	Images       []string         `bson:"images" json:"images"`
	Services     []OfferedService `bson:"services" json:"services"`
	CreatedAt    time.Time        `bson:"createdAt" json:"createdAt"`
	UpdatedAt    time.Time        `bson:"updatedAt" json:"updatedAt"`

	// DistanceKm is computed per query when the caller supplies a position.
	DistanceKm *float64 `bson:"-" json:"distanceKm,omitempty"`
}

// WorkshopSummary is embedded in request listings and events.
type WorkshopSummary struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Address  string `json:"address,omitempty"`
	WorkerID string `json:"workerId,omitempty"`
}

func (w *Workshop) Summary() *WorkshopSummary {
	if w == nil {
		return nil
	}
	return &WorkshopSummary{ID: w.ID, Name: w.Name, Address: w.Address, WorkerID: w.WorkerID}
}

// WorkshopInput is the body of POST and PATCH /workshops/me. Nil fields are left untouched on update.
type WorkshopInput struct {
	Name         *string          `json:"name"`
	Status       *string          `json:"status"`
	Address      *string          `json:"address"`
	Description  *string          `json:"description"`
	Lat          *float64         `json:"lat"`
	Lng          *float64         `json:"lng"`
	OwnerContact *OwnerContact    `json:"ownerContact"`
	Social       *SocialLinks     `json:"social"`
	Images       []string         `json:"images"`
	Services     []OfferedService `json:"services"`
}

// WorkshopPatch is the validated set of fields a worker update writes.
type WorkshopPatch struct {
	Name         *string
	Status       *WorkshopStatus
	Address      *string
	Description  *string
	Location     *GeoPoint
	OwnerContact *OwnerContact
	Social       *SocialLinks
	Images       []string
	Services     []OfferedService
}

// Empty reports whether the patch changes nothing.
func (p WorkshopPatch) Empty() bool {
	return p.Name == nil && p.Status == nil && p.Address == nil && p.Description == nil &&
		p.Location == nil && p.OwnerContact == nil && p.Social == nil &&
		p.Images == nil && p.Services == nil
}

// Apply writes the patch onto w in place.
func (p WorkshopPatch) Apply(w *Workshop) {
	if p.Name != nil {
		w.Name = *p.Name
	}
	if p.Status != nil {
		w.Status = *p.Status
	}
	if p.Address != nil {
		w.Address = *p.Address
	}
	if p.Description != nil {
		w.Description = *p.Description
	}
	if p.Location != nil {
		w.Location = p.Location
	}
	if p.OwnerContact != nil {
		w.OwnerContact = *p.OwnerContact
	}
	if p.Social != nil {
		w.Social = *p.Social
	}
	if p.Images != nil {
		w.Images = p.Images
	}
	if p.Services != nil {
		w.Services = p.Services
	}
}

// WorkshopQuery drives the public directory listing.
type WorkshopQuery struct {
	Q        string
	Status   string // open, closed or all
	Sort     string // nearby or rated
	Lat      *float64
	Lng      *float64
	RadiusKm *float64
}
