package model

import (
	"github.com/google/uuid"
	"github.com/lib/pq"
)

// Static content entities: independently keyed records with plain CRUD
// lifecycles. Public reads, admin-only writes.

type ClinicService struct {
	Base
	Title       string         `db:"title" json:"title"`
	Description string         `db:"description" json:"description"`
	Perks       pq.StringArray `db:"perks" json:"perks"`
	BookVia     string         `db:"book_via" json:"book_via"`
}

type CreateServiceRequest struct {
	Title       string   `json:"title" binding:"required"`
	Description string   `json:"description" binding:"required"`
	Perks       []string `json:"perks"`
	BookVia     string   `json:"book_via" binding:"omitempty,len=10,numeric"`
}

type UpdateServiceRequest struct {
	Title       *string  `json:"title"`
	Description *string  `json:"description"`
	Perks       []string `json:"perks"`
	BookVia     *string  `json:"book_via" binding:"omitempty,len=10,numeric"`
}

type CoreValue struct {
	Base
	IconURL     string `db:"icon_url" json:"icon_url"`
	Title       string `db:"title" json:"title"`
	Description string `db:"description" json:"description"`
}

type CreateCoreValueRequest struct {
	IconURL     string `json:"icon_url" binding:"required"`
	Title       string `json:"title" binding:"required"`
	Description string `json:"description" binding:"required"`
}

type UpdateCoreValueRequest struct {
	IconURL     *string `json:"icon_url"`
	Title       *string `json:"title"`
	Description *string `json:"description"`
}

type SocialMedia struct {
	Base
	Title   string `db:"title" json:"title"`
	IconURL string `db:"icon_url" json:"icon_url"`
	Href    string `db:"href" json:"href"`
}

type CreateSocialMediaRequest struct {
	Title   string `json:"title" binding:"required"`
	IconURL string `json:"icon_url" binding:"required"`
	Href    string `json:"href" binding:"required,url"`
}

type UpdateSocialMediaRequest struct {
	Title   *string `json:"title"`
	IconURL *string `json:"icon_url"`
	Href    *string `json:"href" binding:"omitempty,url"`
}

// LeadershipTeam links a designation to a doctor on the public team page.
type LeadershipTeam struct {
	Base
	Designation string    `db:"designation" json:"designation"`
	MemberID    uuid.UUID `db:"member_id" json:"member_id"`
	Member      *Doctor   `db:"-" json:"member,omitempty"`
}

type CreateLeadershipTeamRequest struct {
	Designation string `json:"designation" binding:"required"`
	MemberID    string `json:"member_id" binding:"required,uuid"`
}

type UpdateLeadershipTeamRequest struct {
	Designation *string `json:"designation"`
	MemberID    *string `json:"member_id" binding:"omitempty,uuid"`
}

// HeroDiscount is the singleton landing-page banner.
type HeroDiscount struct {
	Base
	Discount int  `db:"discount" json:"discount"`
	IsActive bool `db:"is_active" json:"isActive"`
}

type UpdateHeroDiscountRequest struct {
	Discount *int  `json:"discount" binding:"omitempty,min=0,max=100"`
	IsActive *bool `json:"isActive"`
}
