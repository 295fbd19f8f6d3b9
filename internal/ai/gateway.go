// Package ai talks to an OpenAI-compatible chat API for text and vision work.
package ai

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strconv"

	"clover/internal/apperr"
	"clover/internal/config"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/openai"
)

const service = "ai gateway"

var statusPattern = regexp.MustCompile(`status code: (\d{3})`)

type Gateway struct {
	text   llms.Model
	vision llms.Model
}

// New builds a gateway from configuration. Without an API key every call
// returns apperr.ErrNotConfigured.
func New(cfg config.AI) (*Gateway, error) {
	if cfg.APIKey == "" {
		return &Gateway{}, nil
	}

	text, err := openai.New(
		openai.WithToken(cfg.APIKey),
		openai.WithModel(cfg.Model),
		openai.WithBaseURL(cfg.BaseURL))
	if err != nil {
		return nil, fmt.Errorf("creating text model: %w", err)
	}

	vision, err := openai.New(
		openai.WithToken(cfg.APIKey),
		openai.WithModel(cfg.VisionModel),
		openai.WithBaseURL(cfg.BaseURL))
	if err != nil {
		return nil, fmt.Errorf("creating vision model: %w", err)
	}

	return &Gateway{text: text, vision: vision}, nil
}

func NewWithModels(text, vision llms.Model) *Gateway {
	return &Gateway{text: text, vision: vision}
}

func messages(system, user string) []llms.MessageContent {
	msgs := make([]llms.MessageContent, 0, 2)
	if system != "" {
		msgs = append(msgs, llms.TextParts(llms.ChatMessageTypeSystem, system))
	}
	return append(msgs, llms.TextParts(llms.ChatMessageTypeHuman, user))
}

// Complete returns the whole answer to one system+user exchange.
func (g *Gateway) Complete(ctx context.Context, system, user string) (string, error) {
	if g.text == nil {
		return "", apperr.ErrNotConfigured
	}

	resp, err := g.text.GenerateContent(ctx, messages(system, user))
	if err != nil {
		return "", classify(err)
	}

	return firstChoice(resp)
}

// Stream hands every content delta to onDelta as it arrives. Returning an
// error from onDelta aborts the upstream request.
func (g *Gateway) Stream(ctx context.Context, system, user string, onDelta func(string) error) error {
	if g.text == nil {
		return apperr.ErrNotConfigured
	}

	_, err := g.text.GenerateContent(ctx, messages(system, user),
		llms.WithStreamingFunc(func(_ context.Context, chunk []byte) error {
			if len(chunk) == 0 {
				return nil
			}
			return onDelta(string(chunk))
		}))
	if err != nil {
		return classify(err)
	}

	return nil
}

// Describe asks the vision model about one image, given as an http(s) url or
// a data: url.
func (g *Gateway) Describe(ctx context.Context, prompt, imageURL string) (string, error) {
	if g.vision == nil {
		return "", apperr.ErrNotConfigured
	}

	msg := llms.MessageContent{
		Role: llms.ChatMessageTypeHuman,
		Parts: []llms.ContentPart{
			llms.TextContent{Text: prompt},
			llms.ImageURLContent{URL: imageURL},
		},
	}

	resp, err := g.vision.GenerateContent(ctx, []llms.MessageContent{msg})
	if err != nil {
		return "", classify(err)
	}

	return firstChoice(resp)
}

func firstChoice(resp *llms.ContentResponse) (string, error) {
	if resp == nil || len(resp.Choices) == 0 {
		return "", &apperr.UpstreamError{Service: service, Status: 502, Message: "empty response"}
	}
	return resp.Choices[0].Content, nil
}

// classify turns a client error into the shared taxonomy. The openai client
// reports non-2xx answers only through its error text.
func classify(err error) error {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return err
	}

	if m := statusPattern.FindStringSubmatch(err.Error()); m != nil {
		status, _ := strconv.Atoi(m[1])
		return apperr.FromStatus(service, status, err.Error())
	}

	return fmt.Errorf("%s: %w", service, err)
}
