package identity

import (
	"slices"
	"time"
)

// Product identifies an application a grant applies to. Slug is the lookup key.
type Product struct {
	ID   string `json:"id" yaml:"id"`
	Name string `json:"name" yaml:"name"`
	Slug string `json:"slug" yaml:"slug"`
}

// Role is a named set of permissions within one product.
type Role struct {
	ID          string   `json:"id" yaml:"id"`
	Name        string   `json:"name" yaml:"name"`
	Permissions []string `json:"permissions" yaml:"permissions"`
}

// Has reports whether the role carries permission. Matching is exact.
func (r Role) Has(permission string) bool {
	return slices.Contains(r.Permissions, permission)
}

// ProductGrant binds the principal to a role within one product.
type ProductGrant struct {
	Product   Product    `json:"product" yaml:"product"`
	Role      Role       `json:"role" yaml:"role"`
	GrantedAt time.Time  `json:"granted_at,omitzero" yaml:"granted_at,omitempty"`
	ExpiresAt *time.Time `json:"expires_at" yaml:"expires_at,omitempty"` // nil never expires
}

// Profile holds application-side account attributes read from the user store.
type Profile struct {
	ExternalID     string     `json:"external_id,omitempty" yaml:"external_id,omitempty"`
	Status         string     `json:"status,omitempty" yaml:"status,omitempty"`
	SiteBranchName string     `json:"site_branch_name,omitempty" yaml:"site_branch_name,omitempty"`
	WebsiteURL     string     `json:"website_url,omitempty" yaml:"website_url,omitempty"`
	PasswordHash   string     `json:"-" yaml:"-"`
	LastLoginAt    *time.Time `json:"last_login,omitempty" yaml:"last_login,omitempty"`
	CreatedAt      *time.Time `json:"created_at,omitempty" yaml:"created_at,omitempty"`
	UpdatedAt      *time.Time `json:"updated_at,omitempty" yaml:"updated_at,omitempty"`
}

// Identity is an authenticated principal. Values are treated as immutable:
// refresh and enrichment produce a new Identity rather than mutating one.
type Identity struct {
	Subject       string         `json:"sub" yaml:"sub"`
	Email         string         `json:"email" yaml:"email"`
	DisplayName   string         `json:"name" yaml:"name"`
	AvatarURL     string         `json:"avatar,omitempty" yaml:"avatar,omitempty"`
	EmailVerified bool           `json:"email_verified" yaml:"email_verified"`
	ProductGrants []ProductGrant `json:"products" yaml:"products"`
	Profile       *Profile       `json:"profile,omitempty" yaml:"profile,omitempty"`
}

// New validates subject and dedupes grants by product slug (first wins).
func New(subject, email, displayName, avatarURL string, emailVerified bool, grants []ProductGrant) (Identity, error) {
	if subject == "" {
		return Identity{}, ErrEmptySubject
	}
	return Identity{
		Subject:       subject,
		Email:         email,
		DisplayName:   displayName,
		AvatarURL:     avatarURL,
		EmailVerified: emailVerified,
		ProductGrants: DedupeGrants(grants),
	}, nil
}

// Grant returns the grant for productSlug.
func (i *Identity) Grant(productSlug string) (ProductGrant, bool) {
	if i == nil {
		return ProductGrant{}, false
	}
	for _, g := range i.ProductGrants {
		if g.Product.Slug == productSlug {
			return g, true
		}
	}
	return ProductGrant{}, false
}

// Enrichment carries overrides from the application user store. Empty
// strings and a nil EmailVerified leave the OAuth-derived value in place.
type Enrichment struct {
	Email         string
	DisplayName   string
	AvatarURL     string
	EmailVerified *bool
	Profile       Profile
}

// Enrich returns a copy of i merged with e. Product grants are never taken
// from the user store.
func (i Identity) Enrich(e Enrichment) Identity {
	out := i.Clone()
	if e.Email != "" {
		out.Email = e.Email
	}
	if e.DisplayName != "" {
		out.DisplayName = e.DisplayName
	}
	if e.AvatarURL != "" {
		out.AvatarURL = e.AvatarURL
	}
	if e.EmailVerified != nil {
		out.EmailVerified = *e.EmailVerified
	}
	p := e.Profile
	out.Profile = &p
	return out
}

// Clone returns a deep copy.
func (i Identity) Clone() Identity {
	out := i
	if i.ProductGrants != nil {
		out.ProductGrants = make([]ProductGrant, len(i.ProductGrants))
		for idx, g := range i.ProductGrants {
			g.Role.Permissions = slices.Clone(g.Role.Permissions)
			out.ProductGrants[idx] = g
		}
	}
	if i.Profile != nil {
		p := *i.Profile
		out.Profile = &p
	}
	return out
}

// DedupeGrants drops grants whose product slug was already seen.
func DedupeGrants(grants []ProductGrant) []ProductGrant {
	if len(grants) == 0 {
		return []ProductGrant{}
	}
	seen := make(map[string]struct{}, len(grants))
	out := make([]ProductGrant, 0, len(grants))
	for _, g := range grants {
		if _, ok := seen[g.Product.Slug]; ok {
			continue
		}
		seen[g.Product.Slug] = struct{}{}
		out = append(out, g)
	}
	return out
}
