package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCarImageGuess(t *testing.T) {
	payload := `{"brand":"Toyota","model":"RAV4","color":"White","body_type":"SUV","confidence":0.92}`

	guess, err := ParseCarImageGuess(payload)
	require.NoError(t, err)
	assert.Equal(t, "Toyota", guess.Brand)
	assert.Equal(t, "RAV4", guess.Model)
	assert.Equal(t, "White", guess.Color)
	assert.Equal(t, "SUV", guess.BodyType)
	assert.Equal(t, 0.92, guess.Confidence)
}

func TestParseCarImageGuessEmptyResponse(t *testing.T) {
	_, err := ParseCarImageGuess("")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no content")
}

func TestParseCarImageGuessMalformedPayload(t *testing.T) {
	_, err := ParseCarImageGuess("sorry, I can't tell")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "malformed gemini payload")
}
