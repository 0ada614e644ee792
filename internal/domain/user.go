package domain

import "time"

type Role string

const (
	RoleIndividualUser Role = "INDIVIDUAL_USER"
	RoleOrgUser        Role = "ORG_USER"
	RoleOrgAdmin       Role = "ORG_ADMIN"
	RoleSuperAdmin     Role = "SUPER_ADMIN"
)

type User struct {
	ID                int64     `json:"id" gorm:"column:id;primaryKey"`
	Name              string    `json:"name" gorm:"column:name"`
	Email             string    `json:"email" gorm:"column:email;uniqueIndex"`
	PasswordHash      string    `json:"-" gorm:"column:password_hash"`
	Role              Role      `json:"role" gorm:"column:role;type:varchar(32)"`
	OrganizationID    *int64    `json:"organization_id,omitempty" gorm:"column:organization_id;index"`
	IndividualCredits int64     `json:"individual_credits" gorm:"column:individual_credits;not null;default:0"`
	CreatedAt         time.Time `json:"created_at" gorm:"column:created_at"`
	UpdatedAt         time.Time `json:"updated_at" gorm:"column:updated_at"`

	Organization *Organization `json:"organization,omitempty" gorm:"foreignKey:OrganizationID"`
}

func (User) TableName() string { return "users" }

type Organization struct {
	ID          int64     `json:"id" gorm:"column:id;primaryKey"`
	Name        string    `json:"name" gorm:"column:name"`
	CreditsPool int64     `json:"credits_pool" gorm:"column:credits_pool;not null;default:0"`
	CreatedAt   time.Time `json:"created_at" gorm:"column:created_at"`
	UpdatedAt   time.Time `json:"updated_at" gorm:"column:updated_at"`
}

func (Organization) TableName() string { return "organizations" }

// Subject is the identity the auth middleware attaches to a request.
// The booking core trusts it as-is and never re-derives identity.
type Subject struct {
	UserID         int64
	Role           Role
	OrganizationID *int64
}
