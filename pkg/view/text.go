package view

import (
	"fmt"
	"io"
	"strings"
)

// WriteText prints v for a terminal.
func WriteText(w io.Writer, v View) error {
	var b strings.Builder
	switch v.Kind {
	case KindError:
		fmt.Fprintf(&b, "Error: %s\n", v.Error.Message)
		fmt.Fprintf(&b, "%s %s\n", v.Error.Hint, v.Error.APIURL)
	case KindEmpty:
		fmt.Fprintln(&b, v.Placeholder)
	default:
		for i, card := range v.Cards {
			if i > 0 {
				b.WriteString("\n")
			}
			fmt.Fprintf(&b, "[%s] %s\n", card.Status, card.Title)
			fmt.Fprintf(&b, "  %s\n", card.Description)
			fmt.Fprintf(&b, "  %s\n", card.Meta)
		}
	}
	_, err := io.WriteString(w, b.String())
	return err
}
