package order

import (
	"fmt"
	"strings"
)

// MessageTitle is the first line of every order message.
const MessageTitle = "*New Order Request*"

// Formatter renders an order form as message text.
type Formatter struct {
	// Greeting is prepended on its own paragraph when set. Some accounts
	// only accept long first messages after a short hello.
	Greeting string
}

// Format renders the order message.
func (f Formatter) Format(form Form) string {
	var b strings.Builder

	if greeting := strings.TrimSpace(f.Greeting); greeting != "" {
		b.WriteString(greeting)
		b.WriteString("\n\n")
	}

	b.WriteString(MessageTitle)
	b.WriteString("\n\n")
	b.WriteString(fmt.Sprintf("*Name:* %s\n", form.Name))
	b.WriteString(fmt.Sprintf("*Mobile:* %s\n", form.Mobile))
	b.WriteString(fmt.Sprintf("*Brand:* %s\n", form.Brand))
	b.WriteString(fmt.Sprintf("*Model:* %s", form.Model))

	if form.Accessories != "" {
		b.WriteString("\n\n*Accessories:*\n")
		b.WriteString(form.Accessories)
	}

	return b.String()
}
