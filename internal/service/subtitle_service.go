package service

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"clover/internal/apperr"
	"clover/internal/storage"
)

const (
	subtitleOwner     = "public"
	maxSubtitleLangs  = 10
	subtitleMediaType = "text/vtt"
)

var languagePattern = regexp.MustCompile(`^[a-z]{2,3}(-[A-Za-z]{2,4})?$`)

type SubtitleRequest struct {
	ConversionID string
	SourceURL    string
	Languages    []string
}

type SubtitleResult struct {
	Success      bool              `json:"success"`
	SubtitleURLs map[string]string `json:"subtitleUrls"`
}

// SubtitleService produces placeholder captions. No transcription happens.
type SubtitleService interface {
	Generate(ctx context.Context, r SubtitleRequest) (*SubtitleResult, error)
}

type subtitleService struct {
	storage storage.Storage
}

func NewSubtitleService(storage storage.Storage) SubtitleService {
	return &subtitleService{storage: storage}
}

func (s *subtitleService) Generate(ctx context.Context, r SubtitleRequest) (*SubtitleResult, error) {
	id := strings.TrimSpace(r.ConversionID)
	if id == "" {
		return nil, apperr.Invalid("conversionId", "conversionId is required")
	}

	langs := r.Languages
	if len(langs) == 0 {
		langs = []string{"en"}
	}
	if len(langs) > maxSubtitleLangs {
		return nil, apperr.Invalid("languages", "at most %d languages", maxSubtitleLangs)
	}

	urls := make(map[string]string, len(langs))
	for _, lang := range langs {
		if !languagePattern.MatchString(lang) {
			return nil, apperr.Invalid("languages", "invalid language code %q", lang)
		}

		object, err := s.storage.UploadBytes(ctx, subtitleOwner, "subtitles", lang+".vtt", placeholderVTT(id, lang), subtitleMediaType)
		if err != nil {
			return nil, fmt.Errorf("storing %s subtitles: %w", lang, err)
		}

		url, err := s.storage.PresignedURL(ctx, object)
		if err != nil {
			return nil, err
		}
		urls[lang] = url
	}

	return &SubtitleResult{Success: true, SubtitleURLs: urls}, nil
}

func placeholderVTT(conversionID, lang string) []byte {
	return []byte(fmt.Sprintf("WEBVTT\n\n1\n00:00:00.000 --> 00:00:05.000\n[%s] Captions for %s\n\n2\n00:00:05.000 --> 00:00:10.000\n[%s] Transcription is not available in this demo\n",
		lang, conversionID, lang))
}
