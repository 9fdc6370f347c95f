package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"net/url"

	"github.com/pocketbase/pocketbase/core"

	"estimatebuilder/services"
)

// SetToast sets the HX-Trigger response header to show a toast notification
// on the client via HTMX. If an HX-Trigger header already exists, the toast
// payload is merged into the existing JSON object.
// It also sets a flash cookie so toasts survive regular (non-HTMX) responses.
func SetToast(e *core.RequestEvent, toastType string, message string) {
	toast := map[string]any{
		"showToast": map[string]string{
			"message": message,
			"type":    toastType,
		},
	}

	merged := toast
	if existing := e.Response.Header().Get("HX-Trigger"); existing != "" {
		var prev map[string]any
		if err := json.Unmarshal([]byte(existing), &prev); err != nil {
			log.Printf("toast: existing HX-Trigger is not valid JSON, overwriting: %v", err)
		} else {
			prev["showToast"] = toast["showToast"]
			merged = prev
		}
	}

	data, err := json.Marshal(merged)
	if err != nil {
		log.Printf("toast: failed to marshal HX-Trigger JSON: %v", err)
		return
	}
	e.Response.Header().Set("HX-Trigger", string(data))

	cookieVal, err := json.Marshal(toast["showToast"])
	if err == nil {
		http.SetCookie(e.Response, &http.Cookie{
			Name:     "flash_toast",
			Value:    url.QueryEscape(string(cookieVal)),
			Path:     "/",
			MaxAge:   10,
			HttpOnly: false, // JS needs to read it
			SameSite: http.SameSiteLaxMode,
		})
	}
}

// ErrorToast sets an error toast and prevents HTMX from swapping the error text into the DOM.
// It sets HX-Reswap: none so the response body is ignored by HTMX, while the HX-Trigger
// header still fires the toast event.
func ErrorToast(e *core.RequestEvent, statusCode int, message string) error {
	SetToast(e, "error", message)
	e.Response.Header().Set("HX-Reswap", "none")
	return e.String(statusCode, message)
}

// ServiceErrorToast turns an error from the services package into an error
// toast: validation problems are the user's to fix (400), anything else is
// logged and reported generically (500).
func ServiceErrorToast(e *core.RequestEvent, where string, err error) error {
	var ve *services.ValidationError
	if errors.As(err, &ve) || errors.Is(err, services.ErrUnknownCurrency) {
		return ErrorToast(e, http.StatusBadRequest, services.UserMessage(err))
	}
	log.Printf("%s: %v", where, err)
	return ErrorToast(e, http.StatusInternalServerError, services.UserMessage(err))
}
