// Package uploadpost publishes to social platforms through the Upload-Post API.
package uploadpost

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"mime/multipart"
	"net/http"

	"clover/internal/apperr"
	"clover/internal/models"
	"clover/internal/upstream"
)

const service = "upload-post"

var ErrMediaRequired = errors.New("platform requires at least one media url")

type Client struct {
	api *upstream.Client
}

func New(hc *http.Client, baseURL, apiKey string) *Client {
	return &Client{api: &upstream.Client{
		HTTP:    hc,
		BaseURL: baseURL,
		Service: service,
		Authorize: func(req *http.Request) {
			req.Header.Set("Authorization", "Apikey "+apiKey)
		},
	}}
}

type Post struct {
	User            string
	Platform        models.Platform
	Title           string
	Content         string
	MediaURLs       []string
	FacebookPageIDs []string
}

type Result struct {
	Success bool                   `json:"success"`
	Message string                 `json:"message"`
	Results map[string]interface{} `json:"results"`
}

// platformName translates to the identifiers the API expects.
func platformName(p models.Platform) string {
	if p == models.PlatformTwitter {
		return "x"
	}
	return string(p)
}

// Publish picks the endpoint by platform: text posts for twitter and
// linkedin, photo posts for instagram and a video upload for youtube.
func (c *Client) Publish(ctx context.Context, p Post) (*Result, error) {
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)

	fields := [][2]string{
		{"user", p.User},
		{"platform[]", platformName(p.Platform)},
		{"title", postTitle(p)},
	}

	endpoint := "/api/upload_text"
	switch p.Platform {
	case models.PlatformInstagram:
		if len(p.MediaURLs) == 0 {
			return nil, ErrMediaRequired
		}
		endpoint = "/api/upload_photos"
		for _, u := range p.MediaURLs {
			fields = append(fields, [2]string{"photos[]", u})
		}
	case models.PlatformYouTube:
		if len(p.MediaURLs) == 0 {
			return nil, ErrMediaRequired
		}
		endpoint = "/api/upload"
		fields = append(fields, [2]string{"video", p.MediaURLs[0]}, [2]string{"description", p.Content})
	}
	for _, id := range p.FacebookPageIDs {
		fields = append(fields, [2]string{"facebook_page_id", id})
	}

	for _, f := range fields {
		if err := mw.WriteField(f[0], f[1]); err != nil {
			return nil, fmt.Errorf("writing %s form: %w", service, err)
		}
	}
	if err := mw.Close(); err != nil {
		return nil, fmt.Errorf("writing %s form: %w", service, err)
	}

	req, err := c.api.NewBodyRequest(ctx, http.MethodPost, endpoint, &body, mw.FormDataContentType())
	if err != nil {
		return nil, err
	}

	var out Result
	if err := c.api.Do(req, &out); err != nil {
		return nil, err
	}
	if !out.Success {
		msg := out.Message
		if msg == "" {
			msg = "publish was not accepted"
		}
		return &out, &apperr.UpstreamError{Service: service, Status: http.StatusBadGateway, Message: msg}
	}

	return &out, nil
}

// postTitle is the text body for text platforms, where the API reads the
// post from the title field.
func postTitle(p Post) string {
	switch p.Platform {
	case models.PlatformTwitter, models.PlatformLinkedIn:
		if p.Content != "" {
			return p.Content
		}
	}
	return p.Title
}
