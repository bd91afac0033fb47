// Package clientip resolves the originating client address of a request
// served behind reverse proxies.
//
// Headers listed in Headers are consulted in order; the TCP peer address
// is the fallback. Middleware stores the result in the request context,
// where FromContext, LoggerExtractor and Key read it.
package clientip
