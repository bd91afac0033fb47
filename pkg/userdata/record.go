package userdata

import (
	"time"

	"github.com/axolutions/linkbio-dashboard/pkg/identity"
)

// Record is one row of the application's users table. ID is the SSO
// subject.
type Record struct {
	ID             string     `bson:"_id"`
	ExternalID     string     `bson:"external_id,omitempty"`
	Email          string     `bson:"email,omitempty"`
	Name           string     `bson:"name,omitempty"`
	Avatar         string     `bson:"avatar,omitempty"`
	EmailVerified  *bool      `bson:"email_verified,omitempty"`
	Password       string     `bson:"password,omitempty"`
	Status         string     `bson:"status,omitempty"`
	SiteBranchName string     `bson:"site_branch_name,omitempty"`
	WebsiteURL     string     `bson:"website_url,omitempty"`
	LastLogin      *time.Time `bson:"last_login,omitempty"`
	CreatedAt      *time.Time `bson:"created_at,omitempty"`
	UpdatedAt      *time.Time `bson:"updated_at,omitempty"`
}

// Enrichment converts the record into the overrides applied to an OAuth
// identity.
func (r Record) Enrichment() identity.Enrichment {
	return identity.Enrichment{
		Email:         r.Email,
		DisplayName:   r.Name,
		AvatarURL:     r.Avatar,
		EmailVerified: r.EmailVerified,
		Profile: identity.Profile{
			ExternalID:     r.ExternalID,
			Status:         r.Status,
			SiteBranchName: r.SiteBranchName,
			WebsiteURL:     r.WebsiteURL,
			PasswordHash:   r.Password,
			LastLoginAt:    utc(r.LastLogin),
			CreatedAt:      utc(r.CreatedAt),
			UpdatedAt:      utc(r.UpdatedAt),
		},
	}
}

func utc(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	u := t.UTC()
	return &u
}
