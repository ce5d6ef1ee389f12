package dto

import (
	"github.com/SscSPs/bookkeeping_ledger/internal/core/domain"
)

// CreateRecurringProfileRequest defines a recurring expense template.
type CreateRecurringProfileRequest struct {
	CategoryID  string           `json:"categoryID" binding:"required"`
	VendorID    *string          `json:"vendorID"`
	Description string           `json:"description" binding:"required,max=500"`
	Amount      domain.Money     `json:"amount" binding:"money_positive" swaggertype:"string" example:"1500.00"`
	Frequency   domain.Frequency `json:"frequency" binding:"required,oneof=weekly monthly quarterly yearly"`
	StartDate   Date             `json:"startDate" binding:"required" swaggertype:"string" example:"2024-01-31"`
	EndDate     *Date            `json:"endDate" swaggertype:"string" example:"2024-12-31"`
}

// GenerateRecurringRequest triggers generation; AsOf defaults to today.
type GenerateRecurringRequest struct {
	AsOf *Date `json:"asOf" swaggertype:"string" example:"2024-04-15"`
}

// ListRecurringProfilesParams defines query parameters for listing profiles.
type ListRecurringProfilesParams struct {
	Status domain.RecurringStatus `form:"status" binding:"omitempty,oneof=active paused finished"`
	Limit  int                    `form:"limit,default=50" binding:"min=0,max=500"`
	Offset int                    `form:"offset,default=0" binding:"min=0"`
}
