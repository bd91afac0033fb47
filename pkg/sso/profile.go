package sso

import (
	"fmt"
	"strings"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/unicode/norm"

	"github.com/axolutions/linkbio-dashboard/pkg/identity"
)

// subjectPrefixLen is how much of the subject goes into a synthesized name.
const subjectPrefixLen = 8

// Profile is a validated userinfo payload.
type Profile struct {
	Subject       string
	Email         string
	Name          string
	Picture       string
	EmailVerified bool
	Roles         *identity.ProductGrant
}

type userinfoResponse struct {
	Sub           string      `json:"sub"`
	Email         string      `json:"email"`
	Name          string      `json:"name"`
	Picture       string      `json:"picture"`
	EmailVerified bool        `json:"email_verified"`
	Roles         *rolesClaim `json:"roles"`
}

type rolesClaim struct {
	Product struct {
		ID   string `json:"id"`
		Name string `json:"name"`
		Slug string `json:"slug"`
	} `json:"product"`
	Role struct {
		ID          string   `json:"id"`
		Name        string   `json:"name"`
		Permissions []string `json:"permissions"`
	} `json:"role"`
	GrantedAt string  `json:"granted_at"`
	ExpiresAt *string `json:"expires_at"`
}

func (r userinfoResponse) validate() (Profile, error) {
	sub := strings.TrimSpace(r.Sub)
	if sub == "" {
		return Profile{}, fmt.Errorf("%w: missing sub", ErrInvalidProfile)
	}

	p := Profile{
		Subject:       sub,
		Email:         strings.TrimSpace(r.Email),
		Name:          strings.TrimSpace(r.Name),
		Picture:       strings.TrimSpace(r.Picture),
		EmailVerified: r.EmailVerified,
	}

	if r.Roles != nil {
		grant, err := r.Roles.grant()
		if err != nil {
			return Profile{}, err
		}
		p.Roles = &grant
	}
	return p, nil
}

func (c *rolesClaim) grant() (identity.ProductGrant, error) {
	if c.Product.Slug == "" {
		return identity.ProductGrant{}, fmt.Errorf("%w: roles claim without product slug", ErrInvalidProfile)
	}

	g := identity.ProductGrant{
		Product: identity.Product{
			ID:   c.Product.ID,
			Name: c.Product.Name,
			Slug: c.Product.Slug,
		},
		Role: identity.Role{
			ID:          c.Role.ID,
			Name:        c.Role.Name,
			Permissions: append([]string{}, c.Role.Permissions...),
		},
	}

	if c.GrantedAt != "" {
		t, err := time.Parse(time.RFC3339, c.GrantedAt)
		if err != nil {
			return identity.ProductGrant{}, fmt.Errorf("%w: granted_at: %v", ErrInvalidProfile, err)
		}
		g.GrantedAt = t
	}
	if c.ExpiresAt != nil && *c.ExpiresAt != "" {
		t, err := time.Parse(time.RFC3339, *c.ExpiresAt)
		if err != nil {
			return identity.ProductGrant{}, fmt.Errorf("%w: expires_at: %v", ErrInvalidProfile, err)
		}
		g.ExpiresAt = &t
	}
	return g, nil
}

// MapProfile converts p into an Identity. A missing email becomes
// user-<sub>@<placeholderDomain> and a missing name becomes "User <sub[:8]>".
// The single roles claim, when present, becomes the only product grant.
func MapProfile(p Profile, placeholderDomain string) (identity.Identity, error) {
	email := p.Email
	if email == "" {
		email = fmt.Sprintf("user-%s@%s", p.Subject, placeholderDomain)
	}
	email = cases.Lower(language.Und).String(email)

	name := norm.NFC.String(p.Name)
	if name == "" {
		name = "User " + subjectPrefix(p.Subject)
	}

	var grants []identity.ProductGrant
	if p.Roles != nil {
		grants = []identity.ProductGrant{*p.Roles}
	}

	return identity.New(p.Subject, email, name, p.Picture, p.EmailVerified, grants)
}

func subjectPrefix(sub string) string {
	r := []rune(sub)
	if len(r) > subjectPrefixLen {
		r = r[:subjectPrefixLen]
	}
	return string(r)
}
