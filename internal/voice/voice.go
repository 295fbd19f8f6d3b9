// Package voice is a client for a MiniMax-style speech API: text to speech,
// file upload and voice cloning.
package voice

import (
	"bytes"
	"context"
	"encoding/hex"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/url"
	"regexp"

	"clover/internal/apperr"
	"clover/internal/config"
	"clover/internal/upstream"
)

const service = "voice"

// MaxTextLength bounds one synthesis request.
const MaxTextLength = 5000

var voiceIDPattern = regexp.MustCompile(`^[A-Za-z][A-Za-z0-9]{7,}$`)

// ValidVoiceID reports whether id can name a cloned voice: a letter followed
// by at least seven letters or digits.
func ValidVoiceID(id string) bool {
	return voiceIDPattern.MatchString(id)
}

type Model string

const (
	ModelHD    Model = "hd"
	ModelTurbo Model = "turbo"
)

func ParseModel(s string) (Model, error) {
	switch m := Model(s); m {
	case ModelHD, ModelTurbo:
		return m, nil
	case "":
		return ModelHD, nil
	}
	return "", fmt.Errorf("unknown voice model %q", s)
}

func (m Model) upstreamName() string {
	if m == ModelTurbo {
		return "speech-02-turbo"
	}
	return "speech-02-hd"
}

type Client struct {
	api     *upstream.Client
	groupID string
	ready   bool
}

func New(cfg config.Voice, hc *http.Client) *Client {
	return &Client{
		api: &upstream.Client{
			HTTP:    hc,
			BaseURL: cfg.BaseURL,
			Service: service,
			Authorize: func(req *http.Request) {
				req.Header.Set("Authorization", "Bearer "+cfg.APIKey)
			},
		},
		groupID: cfg.GroupID,
		ready:   cfg.APIKey != "",
	}
}

func (c *Client) path(p string) string {
	if c.groupID == "" {
		return p
	}
	return p + "?GroupId=" + url.QueryEscape(c.groupID)
}

type baseResp struct {
	StatusCode int    `json:"status_code"`
	StatusMsg  string `json:"status_msg"`
}

// err maps the in-body status the API reports alongside HTTP 200.
func (b baseResp) err() error {
	switch b.StatusCode {
	case 0:
		return nil
	case 1002, 1039:
		return fmt.Errorf("%s: %w", service, apperr.ErrRateLimited)
	case 1008:
		return fmt.Errorf("%s: %w", service, apperr.ErrQuotaExhausted)
	}
	return &apperr.UpstreamError{Service: service, Status: b.httpStatus(), Message: fmt.Sprintf("%d %s", b.StatusCode, b.StatusMsg)}
}

// httpStatus is the HTTP equivalent of an in-body error code.
func (b baseResp) httpStatus() int {
	switch b.StatusCode {
	case 1026, 1027, 2013, 2037, 2038, 2039:
		return http.StatusBadRequest
	case 1001:
		return http.StatusGatewayTimeout
	case 1000, 1013:
		return http.StatusServiceUnavailable
	}
	return http.StatusBadGateway
}

type SpeechRequest struct {
	Text       string
	Language   string
	VoiceID    string
	Model      Model
	Speed      float64
	Volume     float64
	Pitch      int
	Emotion    string
	SampleRate int
	Bitrate    int
	Format     string
	Channel    int
}

// WithDefaults fills the zero audio settings with the API defaults.
func (r SpeechRequest) WithDefaults() SpeechRequest {
	if r.Model == "" {
		r.Model = ModelHD
	}
	if r.VoiceID == "" {
		r.VoiceID = "male-qn-qingse"
	}
	if r.Speed == 0 {
		r.Speed = 1
	}
	if r.Volume == 0 {
		r.Volume = 1
	}
	if r.SampleRate == 0 {
		r.SampleRate = 32000
	}
	if r.Bitrate == 0 {
		r.Bitrate = 128000
	}
	if r.Format == "" {
		r.Format = "mp3"
	}
	if r.Channel == 0 {
		r.Channel = 1
	}
	return r
}

type Speech struct {
	Audio     []byte
	ExtraInfo map[string]interface{}
}

type t2aVoiceSetting struct {
	VoiceID string  `json:"voice_id"`
	Speed   float64 `json:"speed"`
	Vol     float64 `json:"vol"`
	Pitch   int     `json:"pitch"`
	Emotion string  `json:"emotion,omitempty"`
}

type t2aAudioSetting struct {
	SampleRate int    `json:"sample_rate"`
	Bitrate    int    `json:"bitrate"`
	Format     string `json:"format"`
	Channel    int    `json:"channel"`
}

type t2aRequest struct {
	Model         string          `json:"model"`
	Text          string          `json:"text"`
	Stream        bool            `json:"stream"`
	LanguageBoost string          `json:"language_boost,omitempty"`
	VoiceSetting  t2aVoiceSetting `json:"voice_setting"`
	AudioSetting  t2aAudioSetting `json:"audio_setting"`
}

type t2aResponse struct {
	Data struct {
		Audio string `json:"audio"`
	} `json:"data"`
	ExtraInfo map[string]interface{} `json:"extra_info"`
	BaseResp  baseResp               `json:"base_resp"`
}

// Synthesize converts text to audio. The API returns the audio hex encoded.
func (c *Client) Synthesize(ctx context.Context, r SpeechRequest) (*Speech, error) {
	if !c.ready {
		return nil, apperr.ErrNotConfigured
	}
	r = r.WithDefaults()

	var out t2aResponse
	err := c.api.DoJSON(ctx, http.MethodPost, c.path("/v1/t2a_v2"), t2aRequest{
		Model:         r.Model.upstreamName(),
		Text:          r.Text,
		LanguageBoost: r.Language,
		VoiceSetting: t2aVoiceSetting{
			VoiceID: r.VoiceID,
			Speed:   r.Speed,
			Vol:     r.Volume,
			Pitch:   r.Pitch,
			Emotion: r.Emotion,
		},
		AudioSetting: t2aAudioSetting{
			SampleRate: r.SampleRate,
			Bitrate:    r.Bitrate,
			Format:     r.Format,
			Channel:    r.Channel,
		},
	}, &out)
	if err != nil {
		return nil, err
	}
	if err := out.BaseResp.err(); err != nil {
		return nil, err
	}

	audio, err := hex.DecodeString(out.Data.Audio)
	if err != nil {
		return nil, fmt.Errorf("decoding %s audio: %w", service, err)
	}
	if len(audio) == 0 {
		return nil, &apperr.UpstreamError{Service: service, Status: http.StatusBadGateway, Message: "empty audio"}
	}

	return &Speech{Audio: audio, ExtraInfo: out.ExtraInfo}, nil
}

type uploadResponse struct {
	File struct {
		FileID int64 `json:"file_id"`
	} `json:"file"`
	BaseResp baseResp `json:"base_resp"`
}

type cloneRequest struct {
	FileID             int64  `json:"file_id"`
	VoiceID            string `json:"voice_id"`
	NeedNoiseReduction bool   `json:"need_noise_reduction"`
}

type cloneResponse struct {
	BaseResp baseResp `json:"base_resp"`
}

type CloneRequest struct {
	VoiceID        string
	Audio          []byte
	Format         string
	NoiseReduction bool
}

// Clone uploads the sample and registers it under VoiceID.
func (c *Client) Clone(ctx context.Context, r CloneRequest) error {
	if !c.ready {
		return apperr.ErrNotConfigured
	}

	fileID, err := c.upload(ctx, r.Audio, r.Format)
	if err != nil {
		return err
	}

	var out cloneResponse
	err = c.api.DoJSON(ctx, http.MethodPost, c.path("/v1/voice_clone"), cloneRequest{
		FileID:             fileID,
		VoiceID:            r.VoiceID,
		NeedNoiseReduction: r.NoiseReduction,
	}, &out)
	if err != nil {
		return err
	}

	return out.BaseResp.err()
}

func (c *Client) upload(ctx context.Context, audio []byte, format string) (int64, error) {
	if format == "" {
		format = "mp3"
	}

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	if err := mw.WriteField("purpose", "voice_clone"); err != nil {
		return 0, fmt.Errorf("writing upload form: %w", err)
	}
	part, err := mw.CreateFormFile("file", "sample."+format)
	if err != nil {
		return 0, fmt.Errorf("writing upload form: %w", err)
	}
	if _, err := part.Write(audio); err != nil {
		return 0, fmt.Errorf("writing upload form: %w", err)
	}
	if err := mw.Close(); err != nil {
		return 0, fmt.Errorf("writing upload form: %w", err)
	}

	req, err := c.api.NewBodyRequest(ctx, http.MethodPost, c.path("/v1/files/upload"), &body, mw.FormDataContentType())
	if err != nil {
		return 0, err
	}

	var out uploadResponse
	if err := c.api.Do(req, &out); err != nil {
		return 0, err
	}
	if err := out.BaseResp.err(); err != nil {
		return 0, err
	}

	return out.File.FileID, nil
}
