// Package environment identifies the deployment stage (development, staging,
// production) so logging defaults and development-only features can key off it.
package environment
