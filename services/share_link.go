package services

import (
	"net/url"
	"strings"
)

const whatsAppBaseURL = "https://wa.me/"

// encodeComponent percent-encodes s the way browsers' encodeURIComponent
// does for the characters that matter in share links: spaces become %20,
// never "+", which mail clients would show literally.
func encodeComponent(s string) string {
	return strings.ReplaceAll(url.QueryEscape(s), "+", "%20")
}

// WhatsAppLink returns the deep link that opens a chat with the estimate
// message pre-filled.
func WhatsAppLink(e *Estimate) (string, error) {
	msg, err := ChatMessage(e)
	if err != nil {
		return "", err
	}
	return whatsAppBaseURL + "?text=" + encodeComponent(msg), nil
}

// MailtoLink returns a mailto: URL addressed to the client with subject and
// body filled in. The address is escaped so that a "?" or "#" in it cannot
// start the header fields early.
func MailtoLink(e *Estimate) (string, error) {
	body, err := EmailBody(e)
	if err != nil {
		return "", err
	}
	return "mailto:" + url.PathEscape(strings.TrimSpace(e.ClientEmail)) +
		"?subject=" + encodeComponent(EmailSubject(e)) +
		"&body=" + encodeComponent(body), nil
}
