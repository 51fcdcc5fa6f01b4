package models

import (
	"time"

	"gorm.io/gorm"
)

// Role is the set of roles a user can hold. Authorization decisions go
// through IsAdmin / Principal.CanAccess instead of comparing raw strings.
type Role string

const (
	RoleUser  Role = "USER"
	RoleAdmin Role = "ADMIN"
)

func ParseRole(s string) (Role, bool) {
	switch Role(s) {
	case RoleUser, RoleAdmin:
		return Role(s), true
	}
	return "", false
}

func (r Role) IsAdmin() bool {
	return r == RoleAdmin
}

// Principal is the authenticated actor behind a request. Public endpoints
// carry no principal.
type Principal struct {
	UserID uint
	Role   Role
}

// CanAccess reports whether the principal may act on the account with the
// given id: owners and admins only.
func (p *Principal) CanAccess(userID uint) bool {
	if p == nil {
		return false
	}
	return p.UserID == userID || p.Role.IsAdmin()
}

type User struct {
	ID           uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	Email        string    `gorm:"unique;not null"          json:"email"`
	PasswordHash string    `gorm:"not null"                 json:"-"`
	Role         Role      `gorm:"not null"                 json:"role"`
	Products     []Product `gorm:"constraint:OnDelete:CASCADE" json:"-"`
}

type Product struct {
	ID          uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	Name        string    `gorm:"size:100;not null"        json:"name"`
	Description string    `gorm:"type:text;not null"       json:"description"`
	Price       *float64  `json:"price"`
	CreateDate  time.Time `json:"create_date"`
	UserID      uint      `gorm:"index;not null"           json:"user_id"`
	Reviews     []Review  `gorm:"constraint:OnDelete:CASCADE" json:"-"`
}

// BeforeCreate stamps the creation date server-side. Client-supplied
// create_date values are never honored, on create or update.
func (p *Product) BeforeCreate(tx *gorm.DB) error {
	p.CreateDate = time.Now().UTC()
	return nil
}

type Review struct {
	ID         uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	Title      string    `gorm:"size:100;not null"        json:"title"`
	Content    string    `gorm:"type:text;not null"       json:"content"`
	CreateDate time.Time `json:"create_date"`
	ProductID  uint      `gorm:"index;not null"           json:"product_id"`
}

func (r *Review) BeforeCreate(tx *gorm.DB) error {
	r.CreateDate = time.Now().UTC()
	return nil
}

type RefreshToken struct {
	ID        uint   `gorm:"primaryKey"      json:"id"`
	Token     string `gorm:"unique;not null" json:"token"`
	UserID    uint   `gorm:"index;not null"  json:"user_id"`
	ExpiresAt int64  `gorm:"not null"        json:"expires_at"`
	Revoked   bool   `gorm:"default:false"   json:"revoked"`
}
