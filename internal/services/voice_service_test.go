package services

import (
	"encoding/base64"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestVoiceAssistantService_MockTranscribe(t *testing.T) {
	service := &VoiceAssistantService{client: nil}

	t.Run("valid audio", func(t *testing.T) {
		transcript, confidence, err := service.mockTranscribe(VoiceQueryRequest{
			Audio: base64.StdEncoding.EncodeToString([]byte("pcm data")),
		})
		assert.NoError(t, err)
		assert.NotEmpty(t, transcript)
		assert.Greater(t, confidence, float32(0))
	})

	t.Run("empty audio", func(t *testing.T) {
		_, _, err := service.mockTranscribe(VoiceQueryRequest{Audio: ""})
		assert.Error(t, err)
	})

	t.Run("invalid base64", func(t *testing.T) {
		_, _, err := service.mockTranscribe(VoiceQueryRequest{Audio: "@@not-base64@@"})
		assert.Error(t, err)
	})
}

func TestParseEncoding(t *testing.T) {
	for _, name := range []string{"LINEAR16", "FLAC", "MULAW", "AMR", "AMR_WB", "OGG_OPUS", "SPEEX_WITH_HEADER_BYTE", "WEBM_OPUS"} {
		_, err := parseEncoding(name)
		assert.NoError(t, err, name)
	}

	t.Run("lowercase accepted", func(t *testing.T) {
		_, err := parseEncoding("webm_opus")
		assert.NoError(t, err)
	})

	t.Run("unknown rejected", func(t *testing.T) {
		_, err := parseEncoding("MP3")
		assert.Error(t, err)
	})
}
