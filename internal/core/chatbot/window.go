package chatbot

import (
	"fmt"
	"strings"

	"github.com/electronix/assistant/internal/models"
)

// WindowSize bounds the rolling conversation window handed to the generative
// fallback.
const WindowSize = 5

// RenderWindow formats recent exchanges as alternating User/Bot lines. The
// history store returns exchanges most-recent-first; the window is rendered
// oldest-first so the fallback prompt reads chronologically. Scoping the
// exchanges to one user is the caller's contract.
func RenderWindow(exchanges []models.ChatExchange) string {
	var b strings.Builder
	for i := len(exchanges) - 1; i >= 0; i-- {
		fmt.Fprintf(&b, "User: %s\nBot: %s\n", exchanges[i].Message, exchanges[i].Reply)
	}
	return strings.TrimRight(b.String(), "\n")
}
