package services

import (
	"bytes"

	"github.com/domodwyer/mailyak/v3"
)

// EmailDraft renders a complete email (RFC 5322, .eml) addressed to the
// client, with the email body as plain text and the PDF attached. Nothing is
// sent; the caller offers the bytes for download so the user can open the
// draft in their mail client.
func EmailDraft(e *Estimate, pdf []byte, pdfName string, from string) ([]byte, error) {
	body, err := EmailBody(e)
	if err != nil {
		return nil, err
	}

	// The host is only used by Send, which is never called.
	mail := mailyak.New("localhost:25", nil)
	mail.To(e.ClientEmail)
	if from != "" {
		mail.From(from)
	}
	mail.Subject(EmailSubject(e))
	mail.Plain().Set(body)
	mail.AttachWithMimeType(pdfName, bytes.NewReader(pdf), "application/pdf")

	buf, err := mail.MimeBuf()
	if err != nil {
		return nil, &RenderError{Op: "email draft", Err: err}
	}
	return buf.Bytes(), nil
}
