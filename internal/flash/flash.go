// Package flash implements one-time notification messages carried in a
// cookie. Messages survive exactly one redirect: Add sets the cookie,
// Pop reads and clears it on the next render.
package flash

import (
	"encoding/base64"
	"encoding/json"
	"net/http"
)

// cookieName holds the pending flash messages between two requests.
const cookieName = "rb_flash"

// Message is a single one-time notice shown to the user after a redirect.
type Message struct {
	Type string `json:"type"` // "success", "error"
	Text string `json:"text"`
}

// Success queues a success message for the next rendered page.
func Success(w http.ResponseWriter, r *http.Request, text string) {
	add(w, r, Message{Type: "success", Text: text})
}

// Error queues an error message for the next rendered page.
func Error(w http.ResponseWriter, r *http.Request, text string) {
	add(w, r, Message{Type: "error", Text: text})
}

// add appends a message to any already queued on this request and rewrites
// the cookie. Cookie values cannot hold raw JSON, so the payload is
// base64-encoded.
func add(w http.ResponseWriter, r *http.Request, m Message) {
	msgs := peek(r)
	msgs = append(msgs, m)

	payload, err := json.Marshal(msgs)
	if err != nil {
		return
	}
	http.SetCookie(w, &http.Cookie{
		Name:     cookieName,
		Value:    base64.URLEncoding.EncodeToString(payload),
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

// Pop returns the queued messages and clears the cookie so they render
// exactly once. Returns nil when nothing is queued.
func Pop(w http.ResponseWriter, r *http.Request) []Message {
	msgs := peek(r)
	if msgs == nil {
		return nil
	}

	http.SetCookie(w, &http.Cookie{
		Name:     cookieName,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		MaxAge:   -1,
	})
	return msgs
}

// peek decodes the flash cookie without clearing it. Malformed cookies are
// treated as empty.
func peek(r *http.Request) []Message {
	cookie, err := r.Cookie(cookieName)
	if err != nil || cookie.Value == "" {
		return nil
	}
	payload, err := base64.URLEncoding.DecodeString(cookie.Value)
	if err != nil {
		return nil
	}
	var msgs []Message
	if err := json.Unmarshal(payload, &msgs); err != nil {
		return nil
	}
	return msgs
}
