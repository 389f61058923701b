package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/lnthach/Margay/config"
	"github.com/lnthach/Margay/internal/apperr"
	"github.com/rs/zerolog/log"
)

const imagenEndpoint = "https://generativelanguage.googleapis.com/v1beta/models/%s:predict?key=%s"

// ImageGeneratorService produces an illustrative image for a prompt. The
// result is a data URL; no server-side object storage is involved.
type ImageGeneratorService interface {
	GenerateImage(ctx context.Context, prompt string) (string, error)
}

type imagenService struct {
	cfg        *config.Config
	httpClient *http.Client
}

func NewImagenService(cfg *config.Config) ImageGeneratorService {
	if cfg.GeminiApiKey == "" {
		log.Warn().Msg("GEMINI_API_KEY is not set. ImagenService will be non-functional.")
	}
	return &imagenService{
		cfg: cfg,
		// Image generation is slow; the timeout still bounds a hung call.
		httpClient: &http.Client{Timeout: 60 * time.Second},
	}
}

type imagenPredictRequest struct {
	Instances  []imagenInstance `json:"instances"`
	Parameters imagenParameters `json:"parameters"`
}

type imagenInstance struct {
	Prompt string `json:"prompt"`
}

type imagenParameters struct {
	SampleCount int `json:"sampleCount"`
}

type imagenPredictResponse struct {
	Predictions []struct {
		BytesBase64Encoded string `json:"bytesBase64Encoded"`
		MimeType           string `json:"mimeType"`
	} `json:"predictions"`
}

func (s *imagenService) GenerateImage(ctx context.Context, prompt string) (string, error) {
	if s.cfg.GeminiApiKey == "" {
		return "", apperr.Store(nil, "image generation is unavailable (API key not configured)")
	}

	body, err := json.Marshal(imagenPredictRequest{
		Instances:  []imagenInstance{{Prompt: prompt}},
		Parameters: imagenParameters{SampleCount: 1},
	})
	if err != nil {
		return "", apperr.Store(err, "failed to encode image generation request")
	}

	url := fmt.Sprintf(imagenEndpoint, s.cfg.ImagenModel, s.cfg.GeminiApiKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return "", apperr.Store(err, "failed to build image generation request")
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		log.Error().Err(err).Str("model", s.cfg.ImagenModel).Msg("Imagen API request failed")
		return "", apperr.Store(err, "image generation request failed")
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		respBody, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		log.Error().Int("status", resp.StatusCode).Str("body", string(respBody)).Msg("Imagen API returned non-OK status")
		return "", apperr.Store(nil, "image generation failed (status %d)", resp.StatusCode)
	}

	var predictResp imagenPredictResponse
	if err := json.NewDecoder(resp.Body).Decode(&predictResp); err != nil {
		return "", apperr.Store(err, "failed to decode image generation response")
	}
	if len(predictResp.Predictions) == 0 || predictResp.Predictions[0].BytesBase64Encoded == "" {
		return "", apperr.Store(nil, "image generation returned no image")
	}

	prediction := predictResp.Predictions[0]
	mimeType := prediction.MimeType
	if mimeType == "" {
		mimeType = "image/png"
	}
	return fmt.Sprintf("data:%s;base64,%s", mimeType, prediction.BytesBase64Encoded), nil
}
