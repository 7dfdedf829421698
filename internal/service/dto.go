package service

import (
	"connplanner/internal/models"
)

// MaskToken is what a set secret renders as everywhere outside the core.
// Supplying it back on update means "leave the secret alone".
const MaskToken = "********"

// PagedResult is the uniform page envelope returned by every listing.
type PagedResult[T any] struct {
	Content       []T   `json:"content"`
	Page          int   `json:"page"`
	Size          int   `json:"size"`
	TotalElements int64 `json:"total_elements"`
	TotalPages    int   `json:"total_pages"`
	First         bool  `json:"first"`
	Last          bool  `json:"last"`
}

func newPagedResult[T any](content []T, page, size int, total int64) PagedResult[T] {
	if content == nil {
		content = []T{}
	}
	totalPages := 0
	if size > 0 {
		totalPages = int((total + int64(size) - 1) / int64(size))
	}
	return PagedResult[T]{
		Content:       content,
		Page:          page,
		Size:          size,
		TotalElements: total,
		TotalPages:    totalPages,
		First:         page == 0,
		Last:          page >= totalPages-1,
	}
}

// ConnectionInput is the create/update payload for a connection.
type ConnectionInput struct {
	Name       string  `json:"name" binding:"required,max=255"`
	BaseURL    string  `json:"base_url" binding:"required,max=500"`
	AuthMethod string  `json:"authentication_method" binding:"required,max=50"`
	AuthPlace  string  `json:"authentication_place" binding:"omitempty,oneof=Header QueryParameters"`
	KeyField   string  `json:"key_field" binding:"required,max=255"`
	ValueField *string `json:"value_field" binding:"omitempty,max=500"`
	IsDefault  bool    `json:"is_default"`
	// Version is the optimistic base for updates; ignored on create.
	Version *int64 `json:"version"`
}

// ConnectionSummary is the secret-free projection embedded in planner views.
type ConnectionSummary struct {
	ID         uint64 `json:"id"`
	Name       string `json:"name"`
	BaseURL    string `json:"base_url"`
	AuthMethod string `json:"authentication_method"`
}

// PlannerInput is the create/update payload for a planner. Nested funds
// and sources are honored on create only; after creation children change
// through the dedicated add/remove operations.
type PlannerInput struct {
	Name         string  `json:"name" binding:"required,max=255"`
	Description  string  `json:"description"`
	PlannerType  string  `json:"planner_type" binding:"omitempty,max=100"`
	Status       string  `json:"status" binding:"omitempty,max=50"`
	ConnectionID *uint64 `json:"connection_id"`
	Version      *int64  `json:"version"`

	Funds   []PlannerFundInput   `json:"funds"`
	Sources []PlannerSourceInput `json:"sources"`
}

type PlannerFundInput struct {
	FundID      uint64  `json:"fund_id" binding:"required"`
	FundAliasID *uint64 `json:"fund_alias_id"`
}

type PlannerSourceInput struct {
	SourceNameID *uint64              `json:"source_name_id"`
	DisplayOrder int                  `json:"display_order"`
	Runs         []PlannerRunInput    `json:"runs"`
	Reports      []PlannerReportInput `json:"reports"`
}

type PlannerRunInput struct {
	RunNameID    *uint64 `json:"run_name_id"`
	DisplayOrder int     `json:"display_order"`
}

type PlannerReportInput struct {
	ReportTypeID *uint64 `json:"report_type_id"`
	ReportNameID *uint64 `json:"report_name_id"`
	DisplayOrder int     `json:"display_order"`
}

// PlannerDTO is a planner with its weak connection reference rendered as
// a secret-free summary.
type PlannerDTO struct {
	models.Planner
	Connection *ConnectionSummary `json:"connection,omitempty"`
}

// MasterDataInput covers every lookup create; ReportTypeID only applies
// to report names.
type MasterDataInput struct {
	Name         string  `json:"name" binding:"required,max=255"`
	ReportTypeID *uint64 `json:"report_type_id"`
}

func maskConnection(c *models.Connection) *models.Connection {
	if c == nil {
		return nil
	}
	out := *c
	if out.ValueFieldSet && out.ValueField != nil {
		mask := MaskToken
		out.ValueField = &mask
	}
	return &out
}

func connectionSummary(c *models.Connection) *ConnectionSummary {
	if c == nil {
		return nil
	}
	return &ConnectionSummary{
		ID:         c.ID,
		Name:       c.Name,
		BaseURL:    c.BaseURL,
		AuthMethod: c.AuthMethod,
	}
}

func toPlannerDTO(p *models.Planner) *PlannerDTO {
	if p == nil {
		return nil
	}
	dto := &PlannerDTO{Planner: *p, Connection: connectionSummary(p.Connection)}
	dto.Planner.Connection = nil
	return dto
}

func normalizePage(page, size int) (int, int) {
	if page < 0 {
		page = 0
	}
	if size <= 0 {
		size = 20
	}
	if size > 500 {
		size = 500
	}
	return page, size
}
