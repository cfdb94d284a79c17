package server

import (
	"errors"
	"html/template"
	"net/http"

	"github.com/desertthunder/tidalfest/internal/services"
	"github.com/desertthunder/tidalfest/internal/shared"
)

var errorPage = template.Must(template.New("error").Parse(`<!doctype html>
<html lang="en">
<head><meta charset="utf-8"><title>{{.Status}} {{.Text}} | TidalFest</title></head>
<body style="background:#0a0a0f;color:#fff;font-family:sans-serif;text-align:center;padding:4rem">
<h1>{{.Status}}</h1>
<p>{{.Text}}</p>
<p>{{.Message}}</p>
<p><a href="/" style="color:#38bdf8">TidalFest</a></p>
</body>
</html>
`))

// ErrorPage writes the status-coded generic error page.
func ErrorPage(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Del("Content-Disposition")
	w.WriteHeader(status)
	errorPage.Execute(w, struct {
		Status  int
		Text    string
		Message string
	}{status, http.StatusText(status), message})
}

// StatusFor maps a pipeline error to the status of its error page.
func StatusFor(err error) int {
	var httpErr *services.HTTPError
	switch {
	case errors.As(err, &httpErr) && httpErr.Status == http.StatusNotFound:
		return http.StatusNotFound
	case err == nil:
		return http.StatusOK
	case errors.Is(err, shared.ErrMissingArgument), errors.Is(err, shared.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, shared.ErrInvalidArgument):
		return http.StatusBadRequest
	case errors.Is(err, shared.ErrAPIRequest),
		errors.Is(err, shared.ErrServiceUnavailable),
		errors.Is(err, shared.ErrDecode),
		errors.Is(err, shared.ErrSchema):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
