package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestQuotePublic(t *testing.T) {
	q := Quote{ID: "q1", CustomerName: "Carla", CustomerPhone: "11987654321", WhatsAppURL: "https://wa.me/x"}

	public := q.Public()
	assert.Empty(t, public.CustomerName)
	assert.Empty(t, public.CustomerPhone)
	assert.Equal(t, "q1", public.ID)
	assert.Equal(t, "https://wa.me/x", public.WhatsAppURL)
	assert.Equal(t, "Carla", q.CustomerName)
}
