// Package contact turns contact-form submissions into mailto links. Nothing
// is sent from the server; the visitor's mail client does the delivery.
package contact

import (
	"fmt"
	"net/url"
	"strings"
)

// Message is a contact-form submission. Fields are free text and are not
// validated.
type Message struct {
	Name    string `form:"name" json:"name"`
	Email   string `form:"email" json:"email"`
	Message string `form:"message" json:"message"`
}

// Mail is a composed mail payload.
type Mail struct {
	To      string
	Subject string
	Body    string
}

// Compose builds the payload sent to recipient.
func Compose(recipient string, m Message) Mail {
	return Mail{
		To:      recipient,
		Subject: "Portfolio Contact from " + m.Name,
		Body:    fmt.Sprintf("%s\r\n\r\nFrom: %s\r\nEmail: %s", m.Message, m.Name, m.Email),
	}
}

// URL renders the payload as a mailto: URL (RFC 6068).
func (m Mail) URL() string {
	q := make([]string, 0, 2)
	if m.Subject != "" {
		q = append(q, "subject="+escape(m.Subject))
	}
	if m.Body != "" {
		q = append(q, "body="+escape(m.Body))
	}

	u := "mailto:" + escapeAddr(m.To)
	if len(q) > 0 {
		u += "?" + strings.Join(q, "&")
	}
	return u
}

// escape percent-encodes for mailto; spaces must be %20, never "+".
func escape(s string) string {
	return strings.ReplaceAll(url.QueryEscape(s), "+", "%20")
}

// escapeAddr percent-encodes a recipient, leaving "@" and the other RFC 6068
// some-delims literal.
func escapeAddr(s string) string {
	var b strings.Builder
	for i := 0; i < len(s); i++ {
		c := s[i]
		if isAddrChar(c) {
			b.WriteByte(c)
			continue
		}
		fmt.Fprintf(&b, "%%%02X", c)
	}
	return b.String()
}

func isAddrChar(c byte) bool {
	switch {
	case 'a' <= c && c <= 'z', 'A' <= c && c <= 'Z', '0' <= c && c <= '9':
		return true
	}
	return strings.IndexByte("-._~!$'()*+,;:@", c) >= 0
}
