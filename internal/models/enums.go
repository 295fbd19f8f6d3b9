package models

import "fmt"

type ContentType string

const (
	ContentSocial ContentType = "social"
	ContentVideo  ContentType = "video"
	ContentBlog   ContentType = "blog"
	ContentEmail  ContentType = "email"
)

func ParseContentType(s string) (ContentType, error) {
	switch t := ContentType(s); t {
	case ContentSocial, ContentVideo, ContentBlog, ContentEmail:
		return t, nil
	}
	return "", fmt.Errorf("unknown content type %q", s)
}

type Platform string

const (
	PlatformInstagram Platform = "instagram"
	PlatformYouTube   Platform = "youtube"
	PlatformTwitter   Platform = "twitter"
	PlatformLinkedIn  Platform = "linkedin"
)

func ParsePlatform(s string) (Platform, error) {
	switch p := Platform(s); p {
	case PlatformInstagram, PlatformYouTube, PlatformTwitter, PlatformLinkedIn:
		return p, nil
	}
	return "", fmt.Errorf("unknown platform %q", s)
}

type PostStatus string

const (
	PostScheduled PostStatus = "scheduled"
	PostPublished PostStatus = "published"
	PostDraft     PostStatus = "draft"
	PostFailed    PostStatus = "failed"
	// PostPublishing marks a post the dispatcher has claimed. Clients cannot
	// set it.
	PostPublishing PostStatus = "publishing"
)

func ParsePostStatus(s string) (PostStatus, error) {
	switch st := PostStatus(s); st {
	case PostScheduled, PostPublished, PostDraft, PostFailed:
		return st, nil
	}
	return "", fmt.Errorf("unknown post status %q", s)
}

var postTransitions = map[PostStatus][]PostStatus{
	PostDraft:     {PostScheduled},
	PostScheduled: {PostPublished, PostFailed},
	PostFailed:    {PostScheduled},
}

// CanCreate reports whether a new post may start in s.
func (s PostStatus) CanCreate() bool {
	return s == PostDraft || s == PostScheduled
}

// CanTransition reports whether a post may move from s to next. Rewriting the
// current status is always allowed so field-only edits pass.
func (s PostStatus) CanTransition(next PostStatus) bool {
	if s == next {
		return true
	}
	for _, allowed := range postTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

type PublishStatus string

const (
	PublishPublished PublishStatus = "published"
	PublishFailed    PublishStatus = "failed"
	PublishDraft     PublishStatus = "draft"
)

type BillingPeriod string

const (
	BillingMonthly BillingPeriod = "monthly"
	BillingYearly  BillingPeriod = "yearly"
)

func ParseBillingPeriod(s string) (BillingPeriod, error) {
	switch p := BillingPeriod(s); p {
	case BillingMonthly, BillingYearly:
		return p, nil
	}
	return "", fmt.Errorf("unknown billing period %q", s)
}

type SubscriptionStatus string

const (
	SubscriptionActive    SubscriptionStatus = "active"
	SubscriptionCancelled SubscriptionStatus = "cancelled"
	SubscriptionExpired   SubscriptionStatus = "expired"
)
