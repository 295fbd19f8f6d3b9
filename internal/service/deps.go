package service

import (
	"context"

	"clover/internal/article"
	"clover/internal/feed"
	"clover/internal/imagegen"
	"clover/internal/uploadpost"
	"clover/internal/voice"
	"clover/internal/wordpress"
)

type TextGenerator interface {
	Complete(ctx context.Context, system, user string) (string, error)
	Stream(ctx context.Context, system, user string, onDelta func(string) error) error
	Describe(ctx context.Context, prompt, imageURL string) (string, error)
}

type ImageGenerator interface {
	Generate(ctx context.Context, r imagegen.Request) (string, error)
	Model() string
}

type Speaker interface {
	Synthesize(ctx context.Context, r voice.SpeechRequest) (*voice.Speech, error)
	Clone(ctx context.Context, r voice.CloneRequest) error
}

type FeedFetcher interface {
	Fetch(ctx context.Context, url string) (*feed.Feed, error)
}

type ArticleFetcher interface {
	Fetch(ctx context.Context, url string) (*article.Article, error)
}

type WordPressAPI interface {
	Me(ctx context.Context) (*wordpress.User, error)
	CreatePost(ctx context.Context, p wordpress.NewPost) (*wordpress.Post, error)
	UploadMediaFromURL(ctx context.Context, imageURL string) (*wordpress.Media, error)
}

// WordPressFactory opens a client for one site and set of credentials.
type WordPressFactory func(siteURL, username, appPassword string) WordPressAPI

type Publisher interface {
	Publish(ctx context.Context, p uploadpost.Post) (*uploadpost.Result, error)
}

// PublisherFactory opens an Upload-Post client for one API key.
type PublisherFactory func(apiKey string) Publisher
