package checkout

import (
	"net/url"
	"strings"
)

// WhatsAppLink builds the wa.me deep link that opens a chat with the
// business, pre-filled with the order message. Spaces are encoded as %20,
// not +: some WhatsApp clients render a literal + in the pre-filled text.
func WhatsAppLink(businessNumber, message string) string {
	text := strings.ReplaceAll(url.QueryEscape(message), "+", "%20")
	return "https://wa.me/" + businessNumber + "?text=" + text
}
