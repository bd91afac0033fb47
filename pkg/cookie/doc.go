// Package cookie manages plain, signed and encrypted HTTP cookies.
//
// A Manager is created from one or more secrets of at least 32 characters.
// Independent HMAC and AES-256 keys are derived from every secret with HKDF
// (golang.org/x/crypto/hkdf), so the same SESSION_SECRET can back both
// signatures and encryption. The first secret writes, every secret reads,
// which lets secrets rotate without logging users out.
//
// Signed and encrypted values are bound to the cookie name: a value copied
// into a different cookie fails verification.
//
//	man, err := cookie.New([]string{cfg.SessionSecret}, cookie.WithSecure(true))
//	if err != nil {
//		return err
//	}
//	_ = man.SetJSON(w, "__auth_flow", flow, cookie.WithMaxAge(600))
//
//	var flow Flow
//	err = man.GetJSON(r, "__auth_flow", &flow)
package cookie
