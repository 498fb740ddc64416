package gemini

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/generative-ai-go/genai"
	"github.com/yourusername/rocket-motor-showroom/internal/domain/entity"
	"github.com/yourusername/rocket-motor-showroom/internal/domain/repository"
	logx "github.com/yourusername/rocket-motor-showroom/pkg/logger"
	"google.golang.org/api/iterator"
	"google.golang.org/api/option"
)

// DefaultModel GEMINI_MODEL berilmaganda
const DefaultModel = "gemini-1.5-flash"

// Persona konsyerjning tizim ko'rsatmasi
const Persona = `You are the Head Specialist for Rocket Motor Company, a boutique dealership specializing in vintage 4x4s, classic muscle, and curated sports cars.
Your tone is passionate, knowledgeable, and slightly gritty but refined, like a mechanic who wears a tailored suit.
You love talking about frame-off restorations, patina, numbers matching cars and analog driving experiences.
You are an expert on vintage Ford Broncos, Land Rover Defenders, air-cooled Porsches, and American Muscle.
When asked about reliability, be honest about vintage car ownership (it requires love and maintenance) but highlight the quality of our builds.
When the message includes the current showroom inventory, only quote vehicles, prices and specs from that list. Never invent a vehicle we do not have.`

type geminiClient struct {
	client *genai.Client
	model  *genai.GenerativeModel
	sem    chan struct{}
	mu     sync.Mutex
	last   time.Time
	delay  time.Duration
}

// Client AI repository va uni yopish imkoniyati
type Client interface {
	repository.AIRepository
	Close() error
}

// NewGeminiClient yangi Gemini AI client yaratish
func NewGeminiClient(ctx context.Context, apiKey, modelName string) (Client, error) {
	if apiKey == "" {
		return nil, errors.New("gemini api key is empty")
	}
	if modelName == "" {
		modelName = DefaultModel
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	model := client.GenerativeModel(modelName)

	// Suhbat uchun biroz erkinroq, lekin faktlarga yopishgan
	model.SetTemperature(0.6)
	model.SetTopK(32)
	model.SetTopP(0.9)
	model.SetMaxOutputTokens(1024)

	model.SystemInstruction = &genai.Content{
		Parts: []genai.Part{genai.Text(Persona)},
	}

	logx.Info().Str("model", modelName).Msg("gemini client tayyor")

	return &geminiClient{
		client: client,
		model:  model,
		sem:    make(chan struct{}, 3), // bir vaqtda 3 ta so'rovdan oshirma
		delay:  350 * time.Millisecond, // minimal interval
	}, nil
}

// buildParts tarix va joriy xabardan so'rov qismlarini yig'ish
func buildParts(message entity.Message, history []entity.Message) []genai.Part {
	parts := make([]genai.Part, 0, len(history)*2+1)
	for _, msg := range history {
		if msg.Text != "" {
			parts = append(parts, genai.Text("Customer: "+msg.Text))
		}
		if msg.Response != "" {
			parts = append(parts, genai.Text("You: "+msg.Response))
		}
	}
	return append(parts, genai.Text(message.Text))
}

// GenerateResponse oddiy javob yaratish
func (g *geminiClient) GenerateResponse(ctx context.Context, message entity.Message, history []entity.Message) (string, error) {
	release, err := g.acquire(ctx)
	if err != nil {
		return "", err
	}
	defer release()

	resp, err := g.model.GenerateContent(ctx, buildParts(message, history)...)
	if err != nil {
		return "", fmt.Errorf("failed to generate response: %w", err)
	}

	if len(resp.Candidates) == 0 {
		return "", fmt.Errorf("no response candidates")
	}

	return extractText(resp), nil
}

// StreamResponse javobni bo'laklab onChunk ga uzatadi
func (g *geminiClient) StreamResponse(ctx context.Context, message entity.Message, history []entity.Message, onChunk repository.ChunkHandler) (string, error) {
	release, err := g.acquire(ctx)
	if err != nil {
		return "", err
	}
	defer release()

	iter := g.model.GenerateContentStream(ctx, buildParts(message, history)...)

	var full strings.Builder
	for {
		resp, err := iter.Next()
		if errors.Is(err, iterator.Done) {
			break
		}
		if err != nil {
			return full.String(), fmt.Errorf("failed to stream response: %w", err)
		}

		chunk := extractText(resp)
		if chunk == "" {
			continue
		}
		full.WriteString(chunk)
		if onChunk != nil {
			if err := onChunk(chunk); err != nil {
				return full.String(), err
			}
		}
	}

	if full.Len() == 0 {
		return "", fmt.Errorf("no response candidates")
	}
	return full.String(), nil
}

// extractText javobdan textni ajratib olish
func extractText(resp *genai.GenerateContentResponse) string {
	var result strings.Builder
	for _, cand := range resp.Candidates {
		if cand.Content == nil {
			continue
		}
		for _, part := range cand.Content.Parts {
			if text, ok := part.(genai.Text); ok {
				result.WriteString(string(text))
			}
		}
	}
	return result.String()
}

// acquire semafor va minimal intervalni ushlab turadi
func (g *geminiClient) acquire(ctx context.Context) (func(), error) {
	select {
	case g.sem <- struct{}{}:
	case <-ctx.Done():
		return nil, ctx.Err()
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	now := time.Now()
	if !g.last.IsZero() {
		if sleep := g.delay - now.Sub(g.last); sleep > 0 {
			time.Sleep(sleep)
			now = time.Now()
		}
	}
	g.last = now

	return func() {
		<-g.sem
	}, nil
}

// Close client ni yopish
func (g *geminiClient) Close() error {
	return g.client.Close()
}
