package services

import (
	"fmt"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
)

// ShareChannel is the external target a text export is handed to.
type ShareChannel string

const (
	ChannelChat  ShareChannel = "chat"
	ChannelEmail ShareChannel = "email"
)

// shareRecipient mirrors the client fields checked before sharing.
type shareRecipient struct {
	ClientName  string `json:"client_name"`
	ClientEmail string `json:"client_email"`
}

// ValidateShare checks the preconditions of a share channel: chat needs the
// client name, email needs both name and a well-formed email address.
func ValidateShare(e *Estimate, channel ShareChannel) error {
	r := shareRecipient{
		ClientName:  strings.TrimSpace(e.ClientName),
		ClientEmail: strings.TrimSpace(e.ClientEmail),
	}
	nameMsg := "Please enter client name before sharing"
	if channel == ChannelEmail {
		nameMsg = "Please enter client name and email before sharing"
	}
	err := validation.ValidateStruct(&r,
		validation.Field(&r.ClientName, validation.Required.Error(nameMsg)),
		validation.Field(&r.ClientEmail,
			validation.When(channel == ChannelEmail,
				validation.Required.Error("Please enter client name and email before sharing"),
				is.EmailFormat.Error("Please enter a valid client email"),
			),
		),
	)
	return fromOzzo(err)
}

// ItemLine formats one numbered material line:
// "1. 14/2 Romex Wire (Nexans) - 100 ft x $0.45 = $45.00".
func ItemLine(index int, item MaterialItem, currency Currency) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%d. %s", index, item.Name)
	if strings.TrimSpace(item.Brand) != "" {
		fmt.Fprintf(&b, " (%s)", item.Brand)
	}
	fmt.Fprintf(&b, " - %s x %s = %s",
		FormatQtyUnit(item),
		FormatPrice(currency, item.Price),
		FormatMoney(currency, LineTotal(item)),
	)
	return b.String()
}

func writeItemLines(b *strings.Builder, e *Estimate) {
	for i, item := range e.Items {
		b.WriteString(ItemLine(i+1, item, e.Currency))
		b.WriteString("\n")
	}
}

// ChatMessage builds the compact message sent through a chat app.
func ChatMessage(e *Estimate) (string, error) {
	if err := ValidateShare(e, ChannelChat); err != nil {
		return "", err
	}

	var b strings.Builder
	b.WriteString("⚡ *Electrical Estimate* ⚡\n\n")
	fmt.Fprintf(&b, "Hello %s,\n\n", e.ClientName)
	fmt.Fprintf(&b, "📋 Estimate #: %s\n", e.Number)
	fmt.Fprintf(&b, "📅 Date: %s\n\n", e.Date)
	writeItemLines(&b, e)
	fmt.Fprintf(&b, "\n*Total Amount: %s*\n\n", FormatMoney(e.Currency, e.Total()))
	b.WriteString("Please check your email for the detailed estimate.\n\n")
	b.WriteString("Thank you!")
	return b.String(), nil
}

// EmailSubject is the subject line used for the email channel.
func EmailSubject(e *Estimate) string {
	return fmt.Sprintf("Electrical Work Estimate #%s", e.Number)
}

// EmailBody builds the formal email text that accompanies the PDF.
func EmailBody(e *Estimate) (string, error) {
	if err := ValidateShare(e, ChannelEmail); err != nil {
		return "", err
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Hello %s,\n\n", e.ClientName)
	b.WriteString("Here is your electrical estimate:\n\n")
	fmt.Fprintf(&b, "Estimate #: %s\n", e.Number)
	fmt.Fprintf(&b, "Date: %s\n\n", e.Date)
	writeItemLines(&b, e)
	fmt.Fprintf(&b, "\nTotal Amount: %s\n\n", FormatMoney(e.Currency, e.Total()))
	b.WriteString("Please find attached the detailed estimate.\n\n")
	b.WriteString("Thank you!")
	return b.String(), nil
}
