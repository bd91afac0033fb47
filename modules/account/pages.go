package account

import (
	"context"
	"fmt"
	"io"
	"net/http"

	"github.com/a-h/templ"

	"github.com/axolutions/linkbio-dashboard/handler"
	"github.com/axolutions/linkbio-dashboard/svc/auth"
)

var errorMessages = map[string]string{
	"Configuration":        "There is a problem with the server configuration.",
	auth.CodeAccessDenied:  "You do not have permission to sign in.",
	"Verification":         "The sign-in link has expired or was already used.",
	auth.CodeState:         "Your sign-in attempt expired. Please try again.",
	auth.CodeOAuthCallback: "The identity provider could not complete your sign-in.",
	auth.CodeOAuthSignin:   "We could not reach the identity provider.",
	auth.CodeDefault:       "An unexpected error occurred during sign-in.",
}

// ErrorMessage returns the user-facing text for a sign-in error code.
func ErrorMessage(code string) string {
	if msg, ok := errorMessages[code]; ok {
		return msg
	}
	return errorMessages[auth.CodeDefault]
}

func layout(title string, body templ.Component) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if _, err := fmt.Fprintf(w, `<!DOCTYPE html><html lang="en"><head><meta charset="utf-8"><meta name="viewport" content="width=device-width, initial-scale=1"><title>%s</title></head><body><main class="auth">`,
			templ.EscapeString(title)); err != nil {
			return err
		}
		if err := body.Render(ctx, w); err != nil {
			return err
		}
		_, err := io.WriteString(w, `</main></body></html>`)
		return err
	})
}

func linkButton(href, label string) string {
	return fmt.Sprintf(`<a class="button" href="%s">%s</a>`, templ.EscapeString(href), templ.EscapeString(label))
}

// AuthErrorPage is shown at /auth/error.
func AuthErrorPage(code string) templ.Component {
	return layout("Sign-in error", templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		_, err := fmt.Fprintf(w, `<h1>Authentication error</h1><p role="alert">%s</p><nav>%s%s</nav>`,
			templ.EscapeString(ErrorMessage(code)),
			linkButton("/auth/signin", "Try again"),
			linkButton("/", "Back to home"),
		)
		return err
	}))
}

// SignInRetryPage is shown when the sign-in page is reached with an error.
func SignInRetryPage(code, retryURL string) templ.Component {
	return layout("Sign in", templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		_, err := fmt.Fprintf(w, `<h1>Could not sign you in</h1><p>Provider error: %s</p><nav>%s%s</nav>`,
			templ.EscapeString(code),
			linkButton(retryURL, "Try again"),
			linkButton("/", "Back"),
		)
		return err
	}))
}

// ErrorPage renders generic request failures for handler.NewErrorHandler.
func ErrorPage(p handler.ErrorPageParams) templ.Component {
	return layout(http.StatusText(p.StatusCode), templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if _, err := fmt.Fprintf(w, `<h1>%d</h1><p>%s</p>`, p.StatusCode, templ.EscapeString(p.Error)); err != nil {
			return err
		}
		if p.RequestID != "" {
			if _, err := fmt.Fprintf(w, `<p class="request-id">Request ID: <code>%s</code></p>`, templ.EscapeString(p.RequestID)); err != nil {
				return err
			}
		}
		_, err := io.WriteString(w, linkButton("/", "Back to home"))
		return err
	}))
}
