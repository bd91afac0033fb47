// Package requestid tags each HTTP request with an X-Request-ID and makes it
// available to handlers and to the structured logger via LoggerExtractor.
package requestid
