// Package binder fills request structs from query strings and urlencoded
// forms using `query` and `form` struct tags.
//
//	type signInRequest struct {
//		CallbackURL string `query:"callbackUrl"`
//	}
//
// Supported field types are strings, integers, booleans, pointers to those
// for optional values, and slices for repeated parameters.
package binder
