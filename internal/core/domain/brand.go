package domain

import (
	"errors"
	"time"
)

var ErrBrandNotFound = errors.New("brand not found")

// Brand is a company account running campaigns on the platform.
type Brand struct {
	ID          string    `json:"id" bson:"_id,omitempty"`
	UserID      string    `json:"user_id" bson:"user_id"`
	CompanyName string    `json:"company_name" bson:"company_name"`
	Industry    string    `json:"industry,omitempty" bson:"industry,omitempty"`
	WebsiteURL  string    `json:"website_url,omitempty" bson:"website_url,omitempty"`
	LogoURL     string    `json:"logo_url,omitempty" bson:"logo_url,omitempty"`
	CreatedAt   time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt   time.Time `json:"updated_at" bson:"updated_at"`
}
