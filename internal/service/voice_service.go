package service

import (
	"context"
	"encoding/base64"
	"fmt"
	"strings"

	"clover/internal/apperr"
	"clover/internal/logger"
	"clover/internal/models"
	"clover/internal/repository"
	"clover/internal/storage"
	"clover/internal/voice"

	"github.com/google/uuid"
)

type GenerateVoiceInput struct {
	Speech    voice.SpeechRequest
	VoiceName string
}

type VoiceResult struct {
	AudioContent string                  `json:"audioContent"`
	AudioURL     string                  `json:"audioUrl,omitempty"`
	ExtraInfo    map[string]interface{}  `json:"extraInfo"`
	Generation   *models.VoiceGeneration `json:"generation,omitempty"`
}

type CloneVoiceInput struct {
	VoiceName      string
	VoiceID        string
	AudioData      string
	AudioFormat    string
	NoiseReduction bool
}

// CloneError hides the upstream detail from the caller; ErrorID correlates
// with the server log entry.
type CloneError struct {
	ErrorID string
	Err     error
}

func (e *CloneError) Error() string {
	return "voice cloning failed"
}

func (e *CloneError) Unwrap() error {
	return e.Err
}

type VoiceService interface {
	History(ctx context.Context, userID string) ([]models.VoiceGeneration, error)
	Delete(ctx context.Context, userID, id string) error
	Generate(ctx context.Context, userID string, in GenerateVoiceInput) (*VoiceResult, error)
	Clone(ctx context.Context, userID string, in CloneVoiceInput) (string, error)
}

type voiceService struct {
	voiceRepo repository.VoiceRepository
	speaker   Speaker
	storage   storage.Storage
}

func NewVoiceService(voiceRepo repository.VoiceRepository, speaker Speaker, storage storage.Storage) VoiceService {
	return &voiceService{voiceRepo: voiceRepo, speaker: speaker, storage: storage}
}

const audioFolder = "voice"

// History returns the user's generations with fresh links to stored audio.
func (s *voiceService) History(ctx context.Context, userID string) ([]models.VoiceGeneration, error) {
	voices, err := s.voiceRepo.List(ctx, userID)
	if err != nil {
		return nil, err
	}

	for i := range voices {
		if !isObjectName(voices[i].AudioURL) {
			continue
		}
		if u, err := s.storage.PresignedURL(ctx, voices[i].AudioURL); err == nil {
			voices[i].AudioURL = u
		}
	}

	return voices, nil
}

func isObjectName(s string) bool {
	return strings.HasPrefix(s, "users/")
}

func (s *voiceService) Delete(ctx context.Context, userID, id string) error {
	return s.voiceRepo.Delete(ctx, userID, id)
}

// Generate synthesizes speech, then stores the audio and a history row. The
// audio is returned even when storing fails.
func (s *voiceService) Generate(ctx context.Context, userID string, in GenerateVoiceInput) (*VoiceResult, error) {
	req := in.Speech.WithDefaults()

	if strings.TrimSpace(req.Text) == "" {
		return nil, apperr.Invalid("text", "text is required")
	}
	if n := len([]rune(req.Text)); n > voice.MaxTextLength {
		return nil, apperr.Invalid("text", "text must be at most %d characters", voice.MaxTextLength)
	}

	speech, err := s.speaker.Synthesize(ctx, req)
	if err != nil {
		return nil, err
	}

	result := &VoiceResult{
		AudioContent: base64.StdEncoding.EncodeToString(speech.Audio),
		ExtraInfo:    speech.ExtraInfo,
	}

	log := logger.WithFields(logger.Fields{"user_id": userID})

	objectName, err := s.storage.UploadBytes(ctx, userID, audioFolder, "speech."+req.Format, speech.Audio, "audio/"+audioSubtype(req.Format))
	if err != nil {
		log.WithError(err).Error("storing generated audio")
		return result, nil
	}

	if u, err := s.storage.PresignedURL(ctx, objectName); err == nil {
		result.AudioURL = u
	}

	gen := &models.VoiceGeneration{
		UserID:      userID,
		TextContent: req.Text,
		VoiceID:     req.VoiceID,
		VoiceName:   in.VoiceName,
		Model:       string(req.Model),
		Language:    req.Language,
		Speed:       req.Speed,
		Volume:      req.Volume,
		Pitch:       req.Pitch,
		Emotion:     req.Emotion,
		AudioURL:    objectName,
		Format:      req.Format,
		SampleRate:  req.SampleRate,
		Bitrate:     req.Bitrate,
	}
	if err := s.voiceRepo.Create(ctx, gen); err != nil {
		log.WithError(err).Error("saving voice generation")
		return result, nil
	}
	result.Generation = gen

	return result, nil
}

func audioSubtype(format string) string {
	if format == "mp3" {
		return "mpeg"
	}
	return format
}

// Clone registers a cloned voice and returns its id. A missing id is
// generated.
func (s *voiceService) Clone(ctx context.Context, userID string, in CloneVoiceInput) (string, error) {
	voiceID := in.VoiceID
	if voiceID == "" {
		voiceID = "Clover" + strings.ReplaceAll(uuid.New().String(), "-", "")[:12]
	}
	if !voice.ValidVoiceID(voiceID) {
		return "", apperr.Invalid("voiceId", "must start with a letter and contain at least 8 letters or digits")
	}

	audio, err := decodeAudio(in.AudioData)
	if err != nil {
		return "", apperr.Invalid("audioData", "audio data must be base64 encoded")
	}
	if len(audio) == 0 {
		return "", apperr.Invalid("audioData", "audio data is required")
	}

	err = s.speaker.Clone(ctx, voice.CloneRequest{
		VoiceID:        voiceID,
		Audio:          audio,
		Format:         in.AudioFormat,
		NoiseReduction: in.NoiseReduction,
	})
	if err != nil {
		errorID := uuid.New().String()
		logger.WithFields(logger.Fields{
			"user_id":    userID,
			"error_id":   errorID,
			"voice_id":   voiceID,
			"voice_name": in.VoiceName,
		}).WithError(err).Error("voice clone failed")
		return "", &CloneError{ErrorID: errorID, Err: err}
	}

	return voiceID, nil
}

// decodeAudio accepts raw base64 or a data: url.
func decodeAudio(data string) ([]byte, error) {
	if i := strings.Index(data, ","); strings.HasPrefix(data, "data:") && i >= 0 {
		data = data[i+1:]
	}
	b, err := base64.StdEncoding.DecodeString(data)
	if err != nil {
		return nil, fmt.Errorf("decoding audio: %w", err)
	}
	return b, nil
}
