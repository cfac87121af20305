package prompt

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetUserPrompt(t *testing.T) {
	p := GetUserPrompt("Should I stay?", "We argue daily", []string{"communication", "trust"}, false)
	assert.Contains(t, p, "Should I stay?")
	assert.Contains(t, p, "We argue daily")
	assert.Contains(t, p, "communication, trust")
	assert.NotContains(t, p, "Image Analysis")
}

func TestGetUserPromptWithMedia(t *testing.T) {
	p := GetUserPrompt("q", "n", nil, true)
	assert.Contains(t, p, "Image Analysis")
	assert.NotContains(t, p, "Requested Analysis Points")
}

func TestSystemPromptShape(t *testing.T) {
	s := GetSystemPrompt()
	assert.Contains(t, s, "Aura")
	assert.Contains(t, s, "HTML")
}
