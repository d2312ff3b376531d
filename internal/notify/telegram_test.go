package notify

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"wordaday/internal/domain"
)

func TestFormatAnnouncement_NewWordOnly(t *testing.T) {
	msg := formatAnnouncement(domain.Word{Word: "Glimmerton", Date: "2024-01-02"}, nil)

	assert.Contains(t, msg, "Glimmerton")
	assert.Contains(t, msg, "submit your interpretation")
	assert.NotContains(t, msg, "Winning definitions")
}

func TestFormatAnnouncement_WithMeaning(t *testing.T) {
	word := domain.Word{Word: "Glimmerton", Date: "2024-01-02", AIMeaning: "A shimmer at dusk."}

	msg := formatAnnouncement(word, nil)

	assert.Contains(t, msg, "A shimmer at dusk.")
}

func TestFormatAnnouncement_WithArchivedDay(t *testing.T) {
	word := domain.Word{Word: "Glimmerton", Date: "2024-01-02"}
	archived := &domain.ArchivedWord{
		Word:               "Blorvek",
		Date:               "2024-01-01",
		WinningDefinitions: []string{"a floating feeling", "the smell of rain"},
	}

	msg := formatAnnouncement(word, archived)

	assert.Contains(t, msg, "Winning definitions for Blorvek")
	assert.Contains(t, msg, "• a floating feeling")
	assert.Contains(t, msg, "• the smell of rain")
}
