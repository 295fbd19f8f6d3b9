// Package wordpress is a small client for the WordPress REST API using
// application passwords.
package wordpress

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"path"
	"strings"

	"clover/internal/upstream"
)

const service = "wordpress"

// MaxImageSize bounds the featured image downloaded before re-upload.
const MaxImageSize = 10 << 20

type PostStatus string

const (
	StatusPublish PostStatus = "publish"
	StatusDraft   PostStatus = "draft"
	StatusPending PostStatus = "pending"
)

func ParsePostStatus(s string) (PostStatus, error) {
	switch st := PostStatus(s); st {
	case StatusPublish, StatusDraft, StatusPending:
		return st, nil
	case "":
		return StatusPublish, nil
	}
	return "", fmt.Errorf("unknown wordpress status %q", s)
}

type Client struct {
	api *upstream.Client
	hc  *http.Client
}

// New returns a client for one site. siteURL must already be validated and
// normalized; hc should refuse private targets.
func New(hc *http.Client, siteURL, username, appPassword string) *Client {
	return &Client{
		api: &upstream.Client{
			HTTP:    hc,
			BaseURL: strings.TrimRight(siteURL, "/") + "/wp-json/wp/v2",
			Service: service,
			Authorize: func(req *http.Request) {
				req.SetBasicAuth(username, appPassword)
			},
		},
		hc: hc,
	}
}

type User struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// Me checks the credentials by fetching the authenticated user.
func (c *Client) Me(ctx context.Context) (*User, error) {
	var u User
	if err := c.api.DoJSON(ctx, http.MethodGet, "/users/me", nil, &u); err != nil {
		return nil, err
	}
	return &u, nil
}

type NewPost struct {
	Title         string     `json:"title"`
	Content       string     `json:"content"`
	Status        PostStatus `json:"status"`
	Excerpt       string     `json:"excerpt,omitempty"`
	FeaturedMedia int64      `json:"featured_media,omitempty"`
}

type Post struct {
	ID   int64  `json:"id"`
	Link string `json:"link"`
}

func (c *Client) CreatePost(ctx context.Context, p NewPost) (*Post, error) {
	var out Post
	if err := c.api.DoJSON(ctx, http.MethodPost, "/posts", p, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

type Media struct {
	ID        int64  `json:"id"`
	SourceURL string `json:"source_url"`
}

// UploadMediaFromURL downloads imageURL and uploads it to the media library.
func (c *Client) UploadMediaFromURL(ctx context.Context, imageURL string) (*Media, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, imageURL, nil)
	if err != nil {
		return nil, fmt.Errorf("constructing image request: %w", err)
	}

	hc := c.hc
	if hc == nil {
		hc = http.DefaultClient
	}
	res, err := hc.Do(req)
	if err != nil {
		return nil, fmt.Errorf("downloading image: %w", err)
	}
	defer res.Body.Close()

	if err := upstream.CheckResponse("image host", res); err != nil {
		return nil, err
	}

	data, err := io.ReadAll(io.LimitReader(res.Body, MaxImageSize+1))
	if err != nil {
		return nil, fmt.Errorf("reading image: %w", err)
	}
	if len(data) > MaxImageSize {
		return nil, fmt.Errorf("image exceeds %d bytes", MaxImageSize)
	}

	contentType := res.Header.Get("Content-Type")
	if contentType == "" {
		contentType = http.DetectContentType(data)
	}

	upload, err := c.api.NewBodyRequest(ctx, http.MethodPost, "/media", bytes.NewReader(data), contentType)
	if err != nil {
		return nil, err
	}
	upload.Header.Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, fileName(req.URL.Path, contentType)))

	var out Media
	if err := c.api.Do(upload, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func fileName(urlPath, contentType string) string {
	name := path.Base(urlPath)
	if name != "" && name != "/" && name != "." && strings.Contains(name, ".") {
		return name
	}

	ext := ".jpg"
	switch {
	case strings.Contains(contentType, "png"):
		ext = ".png"
	case strings.Contains(contentType, "webp"):
		ext = ".webp"
	case strings.Contains(contentType, "gif"):
		ext = ".gif"
	}
	return "featured-image" + ext
}
