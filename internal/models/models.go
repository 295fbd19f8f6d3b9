package models

import (
	"time"

	"github.com/lib/pq"
)

type Prompt struct {
	ID         string         `json:"id" db:"id"`
	UserID     string         `json:"user_id" db:"user_id"`
	Title      string         `json:"title" db:"title"`
	Content    string         `json:"content" db:"content"`
	Category   string         `json:"category" db:"category"`
	Tags       pq.StringArray `json:"tags" db:"tags"`
	IsFavorite bool           `json:"is_favorite" db:"is_favorite"`
	CreatedAt  time.Time      `json:"created_at" db:"created_at"`
	UpdatedAt  time.Time      `json:"updated_at" db:"updated_at"`
}

type MediaFile struct {
	ID          string    `json:"id" db:"id"`
	UserID      string    `json:"user_id" db:"user_id"`
	Name        string    `json:"name" db:"name"`
	StoragePath string    `json:"storage_path" db:"storage_path"`
	MimeType    string    `json:"mime_type" db:"mime_type"`
	Size        int64     `json:"size" db:"size"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
}

type GeneratedImage struct {
	ID          string    `json:"id" db:"id"`
	UserID      string    `json:"user_id" db:"user_id"`
	Prompt      string    `json:"prompt" db:"prompt"`
	ImageURL    string    `json:"image_url" db:"image_url"`
	Style       string    `json:"style" db:"style"`
	Model       string    `json:"model" db:"model"`
	AspectRatio string    `json:"aspect_ratio" db:"aspect_ratio"`
	IsFavorite  bool      `json:"is_favorite" db:"is_favorite"`
	IsAvatar    bool      `json:"is_avatar" db:"is_avatar"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
}

type VoiceGeneration struct {
	ID          string    `json:"id" db:"id"`
	UserID      string    `json:"user_id" db:"user_id"`
	TextContent string    `json:"text_content" db:"text_content"`
	VoiceID     string    `json:"voice_id" db:"voice_id"`
	VoiceName   string    `json:"voice_name" db:"voice_name"`
	Model       string    `json:"model" db:"model"`
	Language    string    `json:"language" db:"language"`
	Speed       float64   `json:"speed" db:"speed"`
	Volume      float64   `json:"volume" db:"volume"`
	Pitch       int       `json:"pitch" db:"pitch"`
	Emotion     string    `json:"emotion" db:"emotion"`
	AudioURL    string    `json:"audio_url" db:"audio_url"`
	Format      string    `json:"format" db:"format"`
	SampleRate  int       `json:"sample_rate" db:"sample_rate"`
	Bitrate     int       `json:"bitrate" db:"bitrate"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
}

type ScheduledPost struct {
	ID          string         `json:"id" db:"id"`
	UserID      string         `json:"user_id" db:"user_id"`
	Title       string         `json:"title" db:"title"`
	Content     string         `json:"content" db:"content"`
	Platform    Platform       `json:"platform" db:"platform"`
	ScheduledAt time.Time      `json:"scheduled_at" db:"scheduled_at"`
	Status      PostStatus     `json:"status" db:"status"`
	MediaURLs   pq.StringArray `json:"media_urls" db:"media_urls"`
	LastError   string         `json:"last_error,omitempty" db:"last_error"`
	CreatedAt   time.Time      `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at" db:"updated_at"`
}

type PublishingRecord struct {
	ID           string        `json:"id" db:"id"`
	UserID       string        `json:"user_id" db:"user_id"`
	Title        string        `json:"title" db:"title"`
	Content      string        `json:"content" db:"content"`
	Platform     string        `json:"platform" db:"platform"`
	Status       PublishStatus `json:"status" db:"status"`
	PublishedURL string        `json:"published_url" db:"published_url"`
	ImageURL     string        `json:"image_url" db:"image_url"`
	CreatedAt    time.Time     `json:"created_at" db:"created_at"`
}

// WordPressConnection holds the sealed application password; it never leaves the service layer.
type WordPressConnection struct {
	ID          string    `json:"id" db:"id"`
	UserID      string    `json:"user_id" db:"user_id"`
	SiteURL     string    `json:"site_url" db:"site_url"`
	Username    string    `json:"username" db:"username"`
	AppPassword string    `json:"-" db:"app_password"`
	IsConnected bool      `json:"is_connected" db:"is_connected"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time `json:"updated_at" db:"updated_at"`
}

type UploadPostSettings struct {
	ID              string         `json:"id" db:"id"`
	UserID          string         `json:"user_id" db:"user_id"`
	APIKey          string         `json:"-" db:"api_key"`
	ManagedUser     string         `json:"managed_user" db:"managed_user"`
	FacebookPageIDs pq.StringArray `json:"facebook_page_ids" db:"facebook_page_ids"`
	UpdatedAt       time.Time      `json:"updated_at" db:"updated_at"`
}

type UserPoints struct {
	UserID    string    `json:"user_id" db:"user_id"`
	Balance   int64     `json:"balance" db:"balance"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

type UserSubscription struct {
	ID             string             `json:"id" db:"id"`
	UserID         string             `json:"user_id" db:"user_id"`
	PlanName       string             `json:"plan_name" db:"plan_name"`
	BillingPeriod  BillingPeriod      `json:"billing_period" db:"billing_period"`
	PointsPerMonth int64              `json:"points_per_month" db:"points_per_month"`
	Price          float64            `json:"price" db:"price"`
	StartDate      time.Time          `json:"start_date" db:"start_date"`
	ExpirationDate time.Time          `json:"expiration_date" db:"expiration_date"`
	Status         SubscriptionStatus `json:"status" db:"status"`
	CreatedAt      time.Time          `json:"created_at" db:"created_at"`
}

type AIGenerationLog struct {
	ID        string    `json:"id" db:"id"`
	UserID    string    `json:"user_id" db:"user_id"`
	Prompt    string    `json:"prompt" db:"prompt"`
	Result    string    `json:"result" db:"result"`
	ToolType  string    `json:"tool_type" db:"tool_type"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}
