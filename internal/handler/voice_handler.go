package handlers

import (
	"net/http"

	"clover/internal/service"
	"clover/internal/voice"
)

type voiceGenerateRequest struct {
	Text       string  `json:"text" validate:"required,max=5000"`
	VoiceID    string  `json:"voiceId" validate:"required,max=200"`
	VoiceName  string  `json:"voiceName" validate:"max=200"`
	Model      string  `json:"model" validate:"omitempty,oneof=hd turbo"`
	Language   string  `json:"language" validate:"max=50"`
	Speed      float64 `json:"speed" validate:"omitempty,min=0.5,max=2"`
	Volume     float64 `json:"volume" validate:"omitempty,gt=0,max=10"`
	Pitch      int     `json:"pitch" validate:"min=-12,max=12"`
	Emotion    string  `json:"emotion" validate:"omitempty,oneof=happy sad angry fearful disgusted surprised neutral"`
	SampleRate int     `json:"sampleRate" validate:"omitempty,oneof=8000 16000 22050 24000 32000 44100"`
	Bitrate    int     `json:"bitrate" validate:"omitempty,oneof=32000 64000 128000 256000"`
	Format     string  `json:"format" validate:"omitempty,oneof=mp3 wav flac pcm"`
}

type voiceCloneRequest struct {
	VoiceName      string `json:"voiceName" validate:"max=200"`
	VoiceID        string `json:"voiceId" validate:"max=256"`
	AudioData      string `json:"audioData" validate:"required,max=28000000"`
	AudioFormat    string `json:"audioFormat" validate:"omitempty,oneof=mp3 m4a wav"`
	NoiseReduction bool   `json:"noiseReduction"`
}

type VoiceCloneResponse struct {
	VoiceID string `json:"voiceId"`
	Message string `json:"message"`
}

func (h *Handlers) ListVoices(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}

	voices, err := h.VoiceService.History(r.Context(), userID)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	writeSuccess(w, voices, http.StatusOK)
}

func (h *Handlers) DeleteVoice(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}

	id, ok := pathID(w, r)
	if !ok {
		return
	}
	if err := h.VoiceService.Delete(r.Context(), userID, id); err != nil {
		writeServiceError(w, r, err)
		return
	}

	writeSuccess(w, MessageResponse{Message: "voice generation deleted"}, http.StatusOK)
}

func (h *Handlers) VoiceGenerate(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}

	var req voiceGenerateRequest
	if !h.decodeAndValidate(w, r, &req) {
		return
	}

	model, err := voice.ParseModel(req.Model)
	if err != nil {
		WriteError(w, err.Error(), http.StatusBadRequest)
		return
	}

	result, err := h.VoiceService.Generate(r.Context(), userID, service.GenerateVoiceInput{
		VoiceName: req.VoiceName,
		Speech: voice.SpeechRequest{
			Text:       req.Text,
			Language:   req.Language,
			VoiceID:    req.VoiceID,
			Model:      model,
			Speed:      req.Speed,
			Volume:     req.Volume,
			Pitch:      req.Pitch,
			Emotion:    req.Emotion,
			SampleRate: req.SampleRate,
			Bitrate:    req.Bitrate,
			Format:     req.Format,
		},
	})
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	writeSuccess(w, result, http.StatusOK)
}

func (h *Handlers) VoiceClone(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}

	var req voiceCloneRequest
	if !h.decodeAndValidate(w, r, &req) {
		return
	}

	voiceID, err := h.VoiceService.Clone(r.Context(), userID, service.CloneVoiceInput{
		VoiceName:      req.VoiceName,
		VoiceID:        req.VoiceID,
		AudioData:      req.AudioData,
		AudioFormat:    req.AudioFormat,
		NoiseReduction: req.NoiseReduction,
	})
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	writeSuccess(w, VoiceCloneResponse{VoiceID: voiceID, Message: "voice cloned"}, http.StatusOK)
}
