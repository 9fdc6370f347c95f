package handlers

import (
	"net/http"
	"strings"

	"github.com/pocketbase/pocketbase/core"

	"estimatebuilder/services"
)

// redirectOut sends the browser to an external link. HTMX requests get an
// HX-Redirect header since a 302 would be followed by the XHR itself.
func redirectOut(e *core.RequestEvent, link string) error {
	if e.Request.Header.Get("HX-Request") == "true" {
		e.Response.Header().Set("HX-Redirect", link)
		return e.NoContent(http.StatusOK)
	}
	return e.Redirect(http.StatusFound, link)
}

// HandleShareWhatsApp opens a chat with the estimate text pre-filled.
// Route: GET /share/whatsapp
func HandleShareWhatsApp(env *Env) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		sess, err := currentSession(env, e)
		if err != nil {
			return ServiceErrorToast(e, "share: HandleShareWhatsApp", err)
		}
		return sess.With(func(est *services.Estimate) error {
			link, err := services.WhatsAppLink(est)
			if err != nil {
				return ServiceErrorToast(e, "share: HandleShareWhatsApp", err)
			}
			return redirectOut(e, link)
		})
	}
}

// HandleShareEmail opens the user's mail client with subject and body filled in.
// Route: GET /share/email
func HandleShareEmail(env *Env) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		sess, err := currentSession(env, e)
		if err != nil {
			return ServiceErrorToast(e, "share: HandleShareEmail", err)
		}
		return sess.With(func(est *services.Estimate) error {
			link, err := services.MailtoLink(est)
			if err != nil {
				return ServiceErrorToast(e, "share: HandleShareEmail", err)
			}
			return redirectOut(e, link)
		})
	}
}

// HandleEmailDraft downloads a ready-to-send .eml message with the PDF
// attached.
// Route: GET /share/email/draft
func HandleEmailDraft(env *Env) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		sess, err := currentSession(env, e)
		if err != nil {
			return ServiceErrorToast(e, "share: HandleEmailDraft", err)
		}
		return sess.With(func(est *services.Estimate) error {
			if err := services.ValidateShare(est, services.ChannelEmail); err != nil {
				return ServiceErrorToast(e, "share: HandleEmailDraft", err)
			}
			pdf, pdfName, err := renderPDF(env, est)
			if err != nil {
				return ServiceErrorToast(e, "share: HandleEmailDraft", err)
			}
			draft, err := services.EmailDraft(est, pdf, pdfName, env.Settings.MailFrom)
			if err != nil {
				return ServiceErrorToast(e, "share: HandleEmailDraft", err)
			}
			return sendAttachment(e, emlContentType, strings.TrimSuffix(pdfName, ".pdf")+".eml", draft)
		})
	}
}
