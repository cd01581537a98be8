// Package ai wraps the external generative-AI collaborator behind a
// narrow request/response contract: predictive JSON summaries and voice
// alert synthesis, each with a defined local fallback. A failure here is
// never surfaced as a hard error to the rest of the system.
package ai

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/rs/zerolog"
	"github.com/tmc/langchaingo/llms"

	"hospguardian/internal/models"
	"hospguardian/internal/monitoring"
)

// Report is the predictive-analysis summary returned by the AI service
type Report struct {
	Insights        []string `json:"insights"`
	CriticalAssets  []string `json:"criticalAssets"`
	Recommendations []string `json:"recommendations"`
}

// FallbackReport is returned whenever the remote analysis fails
func FallbackReport() Report {
	return Report{
		Insights:        []string{"Smart analysis is unavailable."},
		CriticalAssets:  []string{},
		Recommendations: []string{},
	}
}

// Synthesizer converts alert text to synthesized audio. It is an
// external device capability; implementations live outside the core.
type Synthesizer interface {
	Synthesize(ctx context.Context, text string) ([]byte, error)
}

// Speaker is the local fallback used when remote synthesis fails
type Speaker interface {
	Speak(text string)
}

// LogSpeaker is the default Speaker: it records the alert text so the
// operator still sees the message when no audio path is available
type LogSpeaker struct {
	Log zerolog.Logger
}

// Speak logs the alert text
func (s LogSpeaker) Speak(text string) {
	s.Log.Info().Str("text", text).Msg("voice alert (local fallback)")
}

// Gateway talks to the generative-AI service. model and synth may be
// nil, in which case every call degrades to its fallback immediately.
type Gateway struct {
	model   llms.Model
	synth   Synthesizer
	speaker Speaker
	metrics *monitoring.Metrics
	log     zerolog.Logger
}

// NewGateway creates the gateway. speaker must not be nil.
func NewGateway(model llms.Model, synth Synthesizer, speaker Speaker, metrics *monitoring.Metrics, log zerolog.Logger) *Gateway {
	return &Gateway{
		model:   model,
		synth:   synth,
		speaker: speaker,
		metrics: metrics,
		log:     log,
	}
}

// PredictiveReport asks the AI service to analyze the current assets and
// orders and returns its JSON summary. Any failure, including an
// unparseable response, yields the fixed fallback report.
func (g *Gateway) PredictiveReport(ctx context.Context, assets []models.Asset, orders []models.ServiceOrder) Report {
	if g.model == nil {
		return FallbackReport()
	}

	assetJSON, err := json.Marshal(assets)
	if err != nil {
		return FallbackReport()
	}
	orderJSON, err := json.Marshal(orders)
	if err != nil {
		return FallbackReport()
	}

	prompt := fmt.Sprintf(`Analyze the following hospital maintenance data and provide a predictive analysis as JSON.
Assets: %s
Service orders: %s

Identify failure patterns, suggest preventive maintenance for the next 4 weeks and highlight the most critical assets.
Return an object of the form {"insights": string[], "criticalAssets": string[], "recommendations": string[]} and nothing else.`,
		assetJSON, orderJSON)

	completion, err := llms.GenerateFromSinglePrompt(ctx, g.model, prompt, llms.WithJSONMode())
	if err != nil {
		g.log.Warn().Err(err).Msg("predictive analysis failed")
		return FallbackReport()
	}

	var report Report
	if err := json.Unmarshal([]byte(stripFences(completion)), &report); err != nil {
		g.log.Warn().Err(err).Msg("predictive analysis returned malformed JSON")
		return FallbackReport()
	}
	return report
}

// VoiceAlert requests synthesized audio for text. When the remote
// synthesizer is unavailable or fails, the local speaker takes over and
// no audio is returned.
func (g *Gateway) VoiceAlert(ctx context.Context, text string) (audio []byte, remote bool) {
	g.metrics.RecordVoiceAlert()

	if g.synth != nil {
		audio, err := g.synth.Synthesize(ctx, text)
		if err == nil && len(audio) > 0 {
			return audio, true
		}
		if err != nil {
			g.log.Warn().Err(err).Msg("remote speech synthesis failed")
		}
	}

	g.speaker.Speak(text)
	return nil, false
}

// stripFences removes a markdown code fence around a JSON payload, which
// some models emit even in JSON mode
func stripFences(s string) string {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "```") {
		s = strings.TrimPrefix(s, "```json")
		s = strings.TrimPrefix(s, "```")
		s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	}
	return strings.TrimSpace(s)
}
