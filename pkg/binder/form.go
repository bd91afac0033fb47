package binder

import (
	"fmt"
	"mime"
	"net/http"
)

// DefaultMaxFormSize caps the urlencoded body read by Form.
const DefaultMaxFormSize = 1 << 20

// Form binds an application/x-www-form-urlencoded body to fields tagged
// `form:"name"`. Requests with any other content type, or none, report
// ErrBinderNotApplicable.
func Form() func(r *http.Request, v any) error {
	return func(r *http.Request, v any) error {
		contentType := r.Header.Get("Content-Type")
		if contentType == "" {
			return ErrBinderNotApplicable
		}
		mediaType, _, err := mime.ParseMediaType(contentType)
		if err != nil || mediaType != "application/x-www-form-urlencoded" {
			return ErrBinderNotApplicable
		}

		if r.Body != nil {
			r.Body = http.MaxBytesReader(nil, r.Body, DefaultMaxFormSize)
		}
		if err := r.ParseForm(); err != nil {
			return fmt.Errorf("%w: %v", ErrFailedToParseForm, err)
		}
		return bindToStruct(v, "form", r.PostForm, ErrFailedToParseForm)
	}
}
