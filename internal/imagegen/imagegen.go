// Package imagegen calls an OpenAI-compatible images endpoint.
package imagegen

import (
	"context"
	"net/http"

	"clover/internal/apperr"
	"clover/internal/config"
	"clover/internal/upstream"
)

type Request struct {
	Prompt      string
	AspectRatio string
}

type Client struct {
	api   *upstream.Client
	model string
	ready bool
}

func New(cfg config.Image, hc *http.Client) *Client {
	return &Client{
		api: &upstream.Client{
			HTTP:    hc,
			BaseURL: cfg.BaseURL,
			Service: "image generation",
			Authorize: func(req *http.Request) {
				req.Header.Set("Authorization", "Bearer "+cfg.APIKey)
			},
		},
		model: cfg.Model,
		ready: cfg.APIKey != "",
	}
}

func (c *Client) Model() string {
	return c.model
}

// sizes maps an aspect ratio to the closest size the endpoint accepts.
var sizes = map[string]string{
	"1:1":  "1024x1024",
	"16:9": "1792x1024",
	"9:16": "1024x1792",
	"4:3":  "1792x1024",
	"3:4":  "1024x1792",
}

func Size(aspectRatio string) string {
	if s, ok := sizes[aspectRatio]; ok {
		return s
	}
	return sizes["1:1"]
}

type generateRequest struct {
	Model          string `json:"model"`
	Prompt         string `json:"prompt"`
	N              int    `json:"n"`
	Size           string `json:"size"`
	ResponseFormat string `json:"response_format"`
}

type generateResponse struct {
	Data []struct {
		URL     string `json:"url"`
		B64JSON string `json:"b64_json"`
	} `json:"data"`
}

// Generate returns the url of one generated image. When the endpoint answers
// with inline base64 the result is a data: url.
func (c *Client) Generate(ctx context.Context, r Request) (string, error) {
	if !c.ready {
		return "", apperr.ErrNotConfigured
	}

	var out generateResponse
	err := c.api.DoJSON(ctx, http.MethodPost, "/images/generations", generateRequest{
		Model:          c.model,
		Prompt:         r.Prompt,
		N:              1,
		Size:           Size(r.AspectRatio),
		ResponseFormat: "url",
	}, &out)
	if err != nil {
		return "", err
	}

	if len(out.Data) == 0 {
		return "", &apperr.UpstreamError{Service: "image generation", Status: http.StatusBadGateway, Message: "no image returned"}
	}
	if out.Data[0].URL != "" {
		return out.Data[0].URL, nil
	}
	if out.Data[0].B64JSON != "" {
		return "data:image/png;base64," + out.Data[0].B64JSON, nil
	}

	return "", &apperr.UpstreamError{Service: "image generation", Status: http.StatusBadGateway, Message: "empty image"}
}
