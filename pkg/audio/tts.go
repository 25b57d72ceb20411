package audio

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"
)

type TTSService struct {
	apiKey string
	voices map[string]string
}

// NewTTSService reads the persona voice IDs from the environment. An
// unknown persona falls back to the default voice instead of failing the
// reply.
func NewTTSService(apiKey string) *TTSService {
	return &TTSService{
		apiKey: apiKey,
		voices: map[string]string{
			"default":   os.Getenv("TTS_VOICE_DEFAULT"),
			"femenina":  os.Getenv("TTS_VOICE_FEMALE"),
			"masculina": os.Getenv("TTS_VOICE_MALE"),
		},
	}
}

func (tts *TTSService) voiceFor(persona string) string {
	if id, ok := tts.voices[persona]; ok && id != "" {
		return id
	}
	return tts.voices["default"]
}

func (tts *TTSService) GenerateAudio(text, persona string) ([]byte, error) {
	voiceID := tts.voiceFor(persona)
	if voiceID == "" {
		return nil, fmt.Errorf("no TTS voice configured")
	}

	url := "https://api.elevenlabs.io/v1/text-to-speech/" + voiceID

	requestBody := map[string]interface{}{
		"text":     text,
		"model_id": "eleven_multilingual_v2",
		"voice_settings": map[string]interface{}{
			"stability":         0.5,
			"similarity_boost":  0.8,
			"style":             0.0,
			"use_speaker_boost": true,
		},
	}

	jsonData, err := json.Marshal(requestBody)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequest("POST", url, bytes.NewBuffer(jsonData))
	if err != nil {
		return nil, err
	}

	req.Header.Set("Accept", "audio/mpeg")
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("xi-api-key", tts.apiKey)

	client := &http.Client{Timeout: 30 * time.Second}
	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("TTS API error: %s", resp.Status)
	}

	return io.ReadAll(resp.Body)
}
