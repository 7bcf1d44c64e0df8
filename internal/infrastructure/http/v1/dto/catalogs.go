package dto

import (
	"inventaris/internal/core/dateonly"
	"inventaris/internal/core/types"
)

// --- Division ---

// CreateDivisionRequest for creating divisions.
type CreateDivisionRequest struct {
	Name        string  `json:"name" binding:"required"`
	Description *string `json:"description"`
}

// UpdateDivisionRequest for updating divisions.
type UpdateDivisionRequest struct {
	Name        string  `json:"name" binding:"required"`
	Description *string `json:"description"`
}

// --- Group ---

// CreateGroupRequest for creating item groups.
type CreateGroupRequest struct {
	DivisionID  string  `json:"divisionId" binding:"required,uuid"`
	Name        string  `json:"name" binding:"required"`
	Description *string `json:"description"`
}

// UpdateGroupRequest for updating item groups.
type UpdateGroupRequest struct {
	DivisionID  string  `json:"divisionId" binding:"required,uuid"`
	Name        string  `json:"name" binding:"required"`
	Description *string `json:"description"`
}

// --- Item ---

// CreateItemRequest for creating items. SKU is optional; an empty SKU
// gets the next per-company sequential number.
type CreateItemRequest struct {
	GroupID    string          `json:"groupId" binding:"required,uuid"`
	Name       string          `json:"name" binding:"required"`
	SKU        string          `json:"sku"`
	Unit       *string         `json:"unit"`
	ExpiryDate *dateonly.Date  `json:"expiryDate"`
	MinStock   *types.Quantity `json:"minStock"`
}

// UpdateItemRequest for updating items.
type UpdateItemRequest struct {
	GroupID    string          `json:"groupId" binding:"required,uuid"`
	Name       string          `json:"name" binding:"required"`
	SKU        string          `json:"sku" binding:"required"`
	Unit       *string         `json:"unit"`
	ExpiryDate *dateonly.Date  `json:"expiryDate"`
	MinStock   *types.Quantity `json:"minStock"`
}
