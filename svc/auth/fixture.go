package auth

import (
	_ "embed"
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/axolutions/linkbio-dashboard/pkg/identity"
)

//go:embed fixtures/mocked_user.yaml
var defaultFixture []byte

type fixtureFile struct {
	User identity.Identity `yaml:"user"`
}

// LoadFixture reads the development identity used when mocked auth is on.
// An empty path yields the built-in identity from DefaultFixture.
//
//	user:
//	  sub: dev-user
//	  email: dev@example.com
//	  name: Dev User
//	  products:
//	    - product: {id: p1, name: Campaigns, slug: campaigns}
//	      role: {id: r1, name: admin, permissions: [campaigns.read]}
func LoadFixture(path string) (identity.Identity, error) {
	if path == "" {
		return DefaultFixture()
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return identity.Identity{}, fmt.Errorf("failed to read fixture: %w", err)
	}
	return ParseFixture(data)
}

// DefaultFixture returns the identity shipped with the binary.
func DefaultFixture() (identity.Identity, error) {
	return ParseFixture(defaultFixture)
}

// ParseFixture decodes a fixture document.
func ParseFixture(data []byte) (identity.Identity, error) {
	var f fixtureFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return identity.Identity{}, errors.Join(ErrInvalidFixture, err)
	}

	u := f.User
	id, err := identity.New(u.Subject, u.Email, u.DisplayName, u.AvatarURL, u.EmailVerified, u.ProductGrants)
	if err != nil {
		return identity.Identity{}, errors.Join(ErrInvalidFixture, err)
	}
	id.Profile = u.Profile
	return id, nil
}
