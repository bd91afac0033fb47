package environment

import "strings"

// Environment names the deployment stage the process runs in.
type Environment string

const (
	Development Environment = "development"
	Staging     Environment = "staging"
	Production  Environment = "production"
)

// Parse maps common spellings ("prod", "stage", "dev") onto an Environment.
// Unknown values fall back to Development.
func Parse(s string) Environment {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "production", "prod":
		return Production
	case "staging", "stage":
		return Staging
	default:
		return Development
	}
}

// Normalize returns the canonical form of e.
func (e Environment) Normalize() Environment {
	return Parse(string(e))
}

func (e Environment) IsProduction() bool {
	return e.Normalize() == Production
}

func (e Environment) IsDevelopment() bool {
	return e.Normalize() == Development
}
