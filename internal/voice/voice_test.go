package voice

import (
	"context"
	"encoding/hex"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"clover/internal/apperr"
	"clover/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidVoiceID(t *testing.T) {
	tests := []struct {
		id   string
		want bool
	}{
		{"abc12345", true},
		{"VoiceCloneA1", true},
		{"ab3", false},
		{"3abcdefg", false},
		{"abc_1234", false},
		{"", false},
	}

	for _, tt := range tests {
		t.Run(tt.id, func(t *testing.T) {
			assert.Equal(t, tt.want, ValidVoiceID(tt.id))
		})
	}
}

func TestParseModel(t *testing.T) {
	m, err := ParseModel("")
	require.NoError(t, err)
	assert.Equal(t, ModelHD, m)

	m, err = ParseModel("turbo")
	require.NoError(t, err)
	assert.Equal(t, "speech-02-turbo", m.upstreamName())

	_, err = ParseModel("studio")
	assert.Error(t, err)
}

func TestSynthesize(t *testing.T) {
	audio := []byte("ID3-fake-mp3")

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/t2a_v2", r.URL.Path)
		assert.Equal(t, "g1", r.URL.Query().Get("GroupId"))
		assert.Equal(t, "Bearer vk", r.Header.Get("Authorization"))

		var body t2aRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "speech-02-hd", body.Model)
		assert.Equal(t, "hello", body.Text)
		assert.Equal(t, 1.0, body.VoiceSetting.Speed)
		assert.Equal(t, "mp3", body.AudioSetting.Format)

		json.NewEncoder(w).Encode(map[string]interface{}{
			"data":       map[string]string{"audio": hex.EncodeToString(audio)},
			"extra_info": map[string]interface{}{"audio_length": 1200},
			"base_resp":  map[string]interface{}{"status_code": 0, "status_msg": "success"},
		})
	}))
	defer srv.Close()

	c := New(config.Voice{BaseURL: srv.URL, APIKey: "vk", GroupID: "g1"}, nil)

	speech, err := c.Synthesize(context.Background(), SpeechRequest{Text: "hello"})

	require.NoError(t, err)
	assert.Equal(t, audio, speech.Audio)
	assert.EqualValues(t, 1200, speech.ExtraInfo["audio_length"])
}

func TestSynthesize_InBodyErrors(t *testing.T) {
	tests := []struct {
		code int
		want error
	}{
		{1002, apperr.ErrRateLimited},
		{1008, apperr.ErrQuotaExhausted},
	}

	for _, tt := range tests {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			json.NewEncoder(w).Encode(map[string]interface{}{
				"base_resp": map[string]interface{}{"status_code": tt.code, "status_msg": "nope"},
			})
		}))

		_, err := New(config.Voice{BaseURL: srv.URL, APIKey: "vk"}, nil).Synthesize(context.Background(), SpeechRequest{Text: "x"})
		assert.ErrorIs(t, err, tt.want)
		srv.Close()
	}
}

func TestSynthesize_UpstreamStatus(t *testing.T) {
	t.Run("http status is kept", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusServiceUnavailable)
			w.Write([]byte(`{"message":"overloaded"}`))
		}))
		defer srv.Close()

		_, err := New(config.Voice{BaseURL: srv.URL, APIKey: "vk"}, nil).Synthesize(context.Background(), SpeechRequest{Text: "x"})

		var upErr *apperr.UpstreamError
		require.ErrorAs(t, err, &upErr)
		assert.Equal(t, http.StatusServiceUnavailable, upErr.Status)
	})

	tests := []struct {
		code int
		want int
	}{
		{2013, http.StatusBadRequest},
		{1026, http.StatusBadRequest},
		{1001, http.StatusGatewayTimeout},
		{1013, http.StatusServiceUnavailable},
		{1004, http.StatusBadGateway},
	}

	for _, tt := range tests {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			json.NewEncoder(w).Encode(map[string]interface{}{
				"base_resp": map[string]interface{}{"status_code": tt.code, "status_msg": "nope"},
			})
		}))

		_, err := New(config.Voice{BaseURL: srv.URL, APIKey: "vk"}, nil).Synthesize(context.Background(), SpeechRequest{Text: "x"})

		var upErr *apperr.UpstreamError
		if assert.ErrorAs(t, err, &upErr, "code %d", tt.code) {
			assert.Equal(t, tt.want, upErr.Status, "code %d", tt.code)
		}
		srv.Close()
	}
}

func TestClone(t *testing.T) {
	var steps []string

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		steps = append(steps, r.URL.Path)

		switch r.URL.Path {
		case "/v1/files/upload":
			require.NoError(t, r.ParseMultipartForm(1<<20))
			assert.Equal(t, "voice_clone", r.FormValue("purpose"))
			f, hdr, err := r.FormFile("file")
			require.NoError(t, err)
			data, _ := io.ReadAll(f)
			assert.Equal(t, "sample.wav", hdr.Filename)
			assert.Equal(t, "RIFF", string(data))
			w.Write([]byte(`{"file":{"file_id":42},"base_resp":{"status_code":0}}`))
		case "/v1/voice_clone":
			var body cloneRequest
			require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
			assert.Equal(t, int64(42), body.FileID)
			assert.Equal(t, "abc12345", body.VoiceID)
			assert.True(t, body.NeedNoiseReduction)
			w.Write([]byte(`{"base_resp":{"status_code":0}}`))
		}
	}))
	defer srv.Close()

	c := New(config.Voice{BaseURL: srv.URL, APIKey: "vk"}, nil)

	err := c.Clone(context.Background(), CloneRequest{
		VoiceID:        "abc12345",
		Audio:          []byte("RIFF"),
		Format:         "wav",
		NoiseReduction: true,
	})

	require.NoError(t, err)
	assert.Equal(t, []string{"/v1/files/upload", "/v1/voice_clone"}, steps)
}

func TestNotConfigured(t *testing.T) {
	c := New(config.Voice{}, nil)

	_, err := c.Synthesize(context.Background(), SpeechRequest{Text: "x"})
	assert.ErrorIs(t, err, apperr.ErrNotConfigured)
	assert.ErrorIs(t, c.Clone(context.Background(), CloneRequest{}), apperr.ErrNotConfigured)
}
