// Package client talks to a running Clover server: the streaming content
// generator and the scheduled post resource.
package client

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"

	"clover/internal/apperr"
	"clover/internal/logger"
	"clover/internal/models"
	"clover/internal/stream"
	"clover/internal/upstream"
)

const (
	serviceName      = "clover"
	generateToolType = "content-generate"
	readChunkSize    = 4 << 10
)

// ErrGenerationFailed covers every failure other than rate limiting and an
// exhausted quota.
var ErrGenerationFailed = errors.New("content generation failed")

func newAPI(hc *http.Client, baseURL, token string) *upstream.Client {
	if hc == nil {
		hc = http.DefaultClient
	}
	return &upstream.Client{
		HTTP:    hc,
		BaseURL: baseURL,
		Service: serviceName,
		Authorize: func(req *http.Request) {
			if token != "" {
				req.Header.Set("Authorization", "Bearer "+token)
			}
		},
	}
}

// Generator runs one streaming generation at a time. Starting a new one
// cancels the previous run.
type Generator struct {
	api   *upstream.Client
	token string

	mu     sync.Mutex
	run    uint64
	cancel context.CancelFunc
}

func NewGenerator(hc *http.Client, baseURL, token string) *Generator {
	return &Generator{api: newAPI(hc, baseURL, token), token: token}
}

type generateRequest struct {
	Prompt string             `json:"prompt"`
	Type   models.ContentType `json:"type"`
}

type generationLogRequest struct {
	Prompt   string `json:"prompt"`
	Result   string `json:"result"`
	ToolType string `json:"tool_type"`
}

func (g *Generator) begin(ctx context.Context) (context.Context, uint64) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.cancel != nil {
		g.cancel()
	}
	runCtx, cancel := context.WithCancel(ctx)
	g.run++
	g.cancel = cancel
	return runCtx, g.run
}

func (g *Generator) end(run uint64) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.run == run && g.cancel != nil {
		g.cancel()
		g.cancel = nil
	}
}

// Cancel abandons the generation in flight, if any.
func (g *Generator) Cancel() {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.cancel != nil {
		g.cancel()
		g.cancel = nil
	}
}

func (g *Generator) IsGenerating() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.cancel != nil
}

// Generate streams a generation for prompt, calling onUpdate with the text
// accumulated so far after every increment. On failure the partial text is
// returned along with the error. A cancelled or superseded run returns
// context.Canceled and is not logged.
func (g *Generator) Generate(ctx context.Context, prompt string, contentType models.ContentType, onUpdate func(accumulated string)) (string, error) {
	runCtx, run := g.begin(ctx)
	defer g.end(run)

	req, err := g.api.NewRequest(runCtx, http.MethodPost, "/functions/v1/content-generate", generateRequest{Prompt: prompt, Type: contentType})
	if err != nil {
		return "", err
	}
	req.Header.Set("Accept", "text/event-stream")
	g.api.Authorize(req)

	res, err := g.api.HTTP.Do(req)
	if err != nil {
		if runCtx.Err() != nil {
			return "", context.Canceled
		}
		return "", fmt.Errorf("%w: %v", ErrGenerationFailed, err)
	}
	defer res.Body.Close()

	if err := upstream.CheckResponse(serviceName, res); err != nil {
		if errors.Is(err, apperr.ErrRateLimited) || errors.Is(err, apperr.ErrQuotaExhausted) {
			return "", err
		}
		return "", fmt.Errorf("%w: %v", ErrGenerationFailed, err)
	}
	if res.Body == nil || res.Body == http.NoBody {
		return "", fmt.Errorf("%w: empty response body", ErrGenerationFailed)
	}

	var (
		acc strings.Builder
		dec stream.Decoder
	)
	emit := func(deltas []string) {
		for _, d := range deltas {
			acc.WriteString(d)
			if onUpdate != nil {
				onUpdate(acc.String())
			}
		}
	}

	buf := make([]byte, readChunkSize)
	for !dec.Done() {
		n, readErr := res.Body.Read(buf)
		if n > 0 {
			emit(dec.Feed(buf[:n]))
		}
		if readErr == io.EOF {
			emit(dec.Flush())
			break
		}
		if readErr != nil {
			if runCtx.Err() != nil {
				return acc.String(), context.Canceled
			}
			return acc.String(), fmt.Errorf("%w: reading stream: %v", ErrGenerationFailed, readErr)
		}
	}

	if runCtx.Err() != nil {
		return acc.String(), context.Canceled
	}

	text := acc.String()
	if text != "" && g.token != "" {
		g.saveLog(runCtx, prompt, text)
	}

	return text, nil
}

func (g *Generator) saveLog(ctx context.Context, prompt, result string) {
	err := g.api.DoJSON(ctx, http.MethodPost, "/api/generation-logs", generationLogRequest{
		Prompt:   prompt,
		Result:   result,
		ToolType: generateToolType,
	}, nil)
	if err != nil {
		logger.WithError(err).Warn("saving generation log")
	}
}
