package chatbot

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/electronix/assistant/internal/models"
)

func TestRenderWindow(t *testing.T) {
	// The store hands exchanges most-recent-first; the window reads
	// chronologically.
	exchanges := []models.ChatExchange{
		{Message: "and in white?", Reply: "Yes, white is in stock."},
		{Message: "do you have the kettle", Reply: "We do, Rs 4500."},
	}

	got := RenderWindow(exchanges)
	want := "User: do you have the kettle\nBot: We do, Rs 4500.\nUser: and in white?\nBot: Yes, white is in stock."
	require.Equal(t, want, got)
}

func TestRenderWindowEmpty(t *testing.T) {
	require.Equal(t, "", RenderWindow(nil))
	require.Equal(t, "", RenderWindow([]models.ChatExchange{}))
}
