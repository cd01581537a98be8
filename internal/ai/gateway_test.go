package ai

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/tmc/langchaingo/llms"

	"hospguardian/internal/models"
)

// fakeModel returns a canned completion or error
type fakeModel struct {
	response string
	err      error
}

func (f fakeModel) GenerateContent(ctx context.Context, messages []llms.MessageContent, options ...llms.CallOption) (*llms.ContentResponse, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &llms.ContentResponse{
		Choices: []*llms.ContentChoice{{Content: f.response}},
	}, nil
}

func (f fakeModel) Call(ctx context.Context, prompt string, options ...llms.CallOption) (string, error) {
	return f.response, f.err
}

type fakeSynth struct {
	audio []byte
	err   error
}

func (f fakeSynth) Synthesize(ctx context.Context, text string) ([]byte, error) {
	return f.audio, f.err
}

type recordingSpeaker struct {
	spoken []string
}

func (s *recordingSpeaker) Speak(text string) {
	s.spoken = append(s.spoken, text)
}

func newGateway(model llms.Model, synth Synthesizer, speaker Speaker) *Gateway {
	return NewGateway(model, synth, speaker, nil, zerolog.Nop())
}

func TestPredictiveReportParsesModelOutput(t *testing.T) {
	model := fakeModel{response: `{
		"insights": ["ventilators show a failure cluster"],
		"criticalAssets": ["AST-00001"],
		"recommendations": ["inspect ICU ventilators this week"]
	}`}
	g := newGateway(model, nil, &recordingSpeaker{})

	report := g.PredictiveReport(context.Background(),
		[]models.Asset{{ID: "AST-00001", Name: "Ventilator"}},
		[]models.ServiceOrder{})

	assert.Equal(t, []string{"ventilators show a failure cluster"}, report.Insights)
	assert.Equal(t, []string{"AST-00001"}, report.CriticalAssets)
	assert.Len(t, report.Recommendations, 1)
}

func TestPredictiveReportStripsCodeFences(t *testing.T) {
	model := fakeModel{response: "```json\n{\"insights\": [\"ok\"], \"criticalAssets\": [], \"recommendations\": []}\n```"}
	g := newGateway(model, nil, &recordingSpeaker{})

	report := g.PredictiveReport(context.Background(), nil, nil)
	assert.Equal(t, []string{"ok"}, report.Insights)
}

func TestPredictiveReportFallsBack(t *testing.T) {
	tests := []struct {
		name  string
		model llms.Model
	}{
		{"no model configured", nil},
		{"model error", fakeModel{err: errors.New("quota exceeded")}},
		{"malformed response", fakeModel{response: "I cannot help with that."}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := newGateway(tt.model, nil, &recordingSpeaker{})
			report := g.PredictiveReport(context.Background(), nil, nil)
			assert.Equal(t, FallbackReport(), report)
		})
	}
}

func TestVoiceAlertUsesRemoteSynthesis(t *testing.T) {
	speaker := &recordingSpeaker{}
	g := newGateway(nil, fakeSynth{audio: []byte("RIFF....")}, speaker)

	audio, remote := g.VoiceAlert(context.Background(), "Alert: asset down.")

	assert.True(t, remote)
	assert.NotEmpty(t, audio)
	assert.Empty(t, speaker.spoken)
}

func TestVoiceAlertFallsBackToSpeaker(t *testing.T) {
	tests := []struct {
		name  string
		synth Synthesizer
	}{
		{"no synthesizer", nil},
		{"synthesis error", fakeSynth{err: errors.New("unreachable")}},
		{"empty audio", fakeSynth{audio: nil}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			speaker := &recordingSpeaker{}
			g := newGateway(nil, tt.synth, speaker)

			audio, remote := g.VoiceAlert(context.Background(), "Alert: low stock.")

			assert.False(t, remote)
			assert.Nil(t, audio)
			assert.Equal(t, []string{"Alert: low stock."}, speaker.spoken)
		})
	}
}
