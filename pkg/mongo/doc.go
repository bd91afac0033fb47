// Package mongo opens a MongoDB client with retries. It backs the
// document variant of the user-data enrichment store.
package mongo
