package service

import (
	"context"
	"fmt"

	"clover/internal/apperr"
	"clover/internal/feed"
	"clover/internal/safeurl"
)

type FeedService interface {
	Fetch(ctx context.Context, url string) (*feed.Feed, error)
}

type feedService struct {
	feeds FeedFetcher
}

func NewFeedService(feeds FeedFetcher) FeedService {
	return &feedService{feeds: feeds}
}

func (s *feedService) Fetch(ctx context.Context, raw string) (*feed.Feed, error) {
	u, err := safeurl.Validate(raw)
	if err != nil {
		return nil, apperr.Invalid("url", "%s", err.Error())
	}

	f, err := s.feeds.Fetch(ctx, u)
	if err != nil {
		return nil, fmt.Errorf("fetching feed: %w", err)
	}
	return f, nil
}
