package models

import "time"

// ServiceType distinguishes on-the-spot requests from scheduled ones.
type ServiceType string

const (
	ServiceInstant ServiceType = "instant"
	ServicePrebook ServiceType = "prebook"
)

func (t ServiceType) Valid() bool {
	return t == ServiceInstant || t == ServicePrebook
}

// RequestStatus is the admin decision on a service request.
type RequestStatus string

const (
	StatusPending  RequestStatus = "pending"
	StatusAccepted RequestStatus = "accepted"
	StatusRejected RequestStatus = "rejected"
)

func (s RequestStatus) Valid() bool {
	switch s {
	case StatusPending, StatusAccepted, StatusRejected:
		return true
	}
	return false
}

// ServiceRequest is a user-initiated ticket for vehicle work.
type ServiceRequest struct {
	ID               string        `bson:"id" json:"id"`
	UserID           string        `bson:"userId" json:"userId"`
	WorkshopID       string        `bson:"workshopId,omitempty" json:"workshopId,omitempty"`
	Name             string        `bson:"name" json:"name"`
	Description      string        `bson:"description" json:"description"`
	ServiceType      ServiceType   `bson:"serviceType" json:"serviceType"`
	ServiceTimeStart *time.Time    `bson:"serviceTimeStart,omitempty" json:"serviceTimeStart,omitempty"`
	ServiceTimeEnd   *time.Time    `bson:"serviceTimeEnd,omitempty" json:"serviceTimeEnd,omitempty"`
	ImageURL         string        `bson:"imageUrl" json:"imageUrl"`
	Location         *GeoPoint     `bson:"location,omitempty" json:"location,omitempty"`
	Status           RequestStatus `bson:"status" json:"status"`
	CreatedAt        time.Time     `bson:"createdAt" json:"createdAt"`
	UpdatedAt        time.Time     `bson:"updatedAt" json:"updatedAt"`
}

// ServiceRequestView is a request with its requester and workshop resolved for display.
type ServiceRequestView struct {
	ServiceRequest
	User     *AccountSummary  `json:"user,omitempty"`
	Workshop *WorkshopSummary `json:"workshop,omitempty"`
}

// CreateServiceRequestInput is the body of POST /services.
type CreateServiceRequestInput struct {
	Name             string      `json:"name"`
	Description      string      `json:"description"`
	ServiceType      string      `json:"serviceType"`
	ServiceTimeStart LooseString `json:"serviceTimeStart"`
	ServiceTimeEnd   LooseString `json:"serviceTimeEnd"`
	WorkshopID       string      `json:"workshopId"`
	Lat              LooseString `json:"lat"`
	Lng              LooseString `json:"lng"`
	ImageURL         string      `json:"imageUrl"`
}

// UpdateStatusInput is the body of PATCH /admin/service-requests/:id/status.
type UpdateStatusInput struct {
	Status string `json:"status"`
}

// RequestStats counts requests by status.
type RequestStats struct {
	Total    int64 `json:"total"`
	Pending  int64 `json:"pending"`
	Accepted int64 `json:"accepted"`
	Rejected int64 `json:"rejected"`
}
