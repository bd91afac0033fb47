package handler

import "net/http"

type redirectResponse struct {
	url  string
	code int
}

func (r redirectResponse) Render(w http.ResponseWriter, req *http.Request) error {
	http.Redirect(w, req, r.url, r.code)
	return nil
}

// Redirect sends the browser to url with 303 See Other.
func Redirect(url string) Response {
	return redirectResponse{url: url, code: http.StatusSeeOther}
}

// RedirectWithCode sends the browser to url with a custom 3xx status.
func RedirectWithCode(url string, code int) Response {
	return redirectResponse{url: url, code: code}
}

type errorResponse struct {
	err error
}

func (e errorResponse) Render(w http.ResponseWriter, r *http.Request) error {
	return e.err
}

// Error hands err to the wrapped handler's ErrorHandler.
func Error(err error) Response {
	return errorResponse{err: err}
}
