package web

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/hex"
	"errors"
	"net/http"
	"strings"
)

// Double-submit cookie CSRF protection: the token is delivered in a
// JS-readable cookie and must be echoed back in a header (or form field) on
// every state-changing request. Verification is a pure gate and runs before
// any business logic or side effect.

const (
	csrfCookieName = "XSRF-TOKEN"
	csrfHeaderName = "X-XSRF-TOKEN"
	csrfFormField  = "_csrf"
)

var errCSRF = errors.New("csrf token missing or mismatched")

type CSRF struct {
	secure bool
}

func NewCSRF(secure bool) *CSRF { return &CSRF{secure: secure} }

// Issue generates a fresh token, sets the companion cookie and returns the
// token so page handlers and /api/csrf-token can hand it to the client.
func (c *CSRF) Issue(w http.ResponseWriter) (string, error) {
	buf := make([]byte, 16)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	token := hex.EncodeToString(buf)
	http.SetCookie(w, &http.Cookie{
		Name:     csrfCookieName,
		Value:    token,
		Path:     "/",
		Secure:   c.secure,
		SameSite: http.SameSiteStrictMode,
		// not HttpOnly: the front-end reads it to echo the header back
	})
	return token, nil
}

// Verify checks the cookie/header pair with a constant-time comparison.
// When the token arrives in a form field instead of the header, a body
// rejected by the size cap surfaces as the size error, not a token failure.
func (c *CSRF) Verify(r *http.Request) error {
	cookie, err := r.Cookie(csrfCookieName)
	if err != nil || cookie.Value == "" {
		return errCSRF
	}
	sent := r.Header.Get(csrfHeaderName)
	if sent == "" {
		if err := parseSubmissionForm(r); err != nil {
			return err
		}
		sent = r.PostFormValue(csrfFormField)
	}
	if sent == "" {
		return errCSRF
	}
	if subtle.ConstantTimeCompare([]byte(cookie.Value), []byte(sent)) != 1 {
		return errCSRF
	}
	return nil
}

// parseSubmissionForm parses the request body so the form token can be read,
// mapping the MaxBytesReader trip to the body-size error.
func parseSubmissionForm(r *http.Request) error {
	var err error
	if strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data") {
		err = r.ParseMultipartForm(maxUploadBytes)
	} else {
		err = r.ParseForm()
	}
	var maxErr *http.MaxBytesError
	if errors.As(err, &maxErr) {
		return errBodyTooLarge
	}
	if err != nil {
		return errCSRF
	}
	return nil
}
