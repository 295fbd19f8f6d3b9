package ai

import (
	"testing"

	"clover/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestContentSystemPrompt(t *testing.T) {
	for _, ct := range []models.ContentType{models.ContentSocial, models.ContentVideo, models.ContentBlog, models.ContentEmail} {
		assert.NotEmpty(t, ContentSystemPrompt(ct), ct)
	}
}

func TestParseOrganizeAction(t *testing.T) {
	for _, s := range []string{"summarize", "rewrite", "translate_en", "translate_zh", "expand", "simplify", "keywords", "outline"} {
		a, err := ParseOrganizeAction(s)
		require.NoError(t, err)
		assert.NotEmpty(t, a.Instruction())
	}

	_, err := ParseOrganizeAction("poem")
	assert.Error(t, err)
}

func TestRewriteSystemPrompt(t *testing.T) {
	p := RewriteSystemPrompt(RewriteOptions{
		OutputLanguage:   "English",
		Style:            "custom",
		CustomStyle:      "playful",
		TargetWordCount:  800,
		GeoOptimized:     true,
		CustomEnding:     true,
		CustomEndingText: "Follow us for more.",
	})

	assert.Contains(t, p, "English")
	assert.Contains(t, p, "playful")
	assert.Contains(t, p, "800 words")
	assert.Contains(t, p, "FAQ")
	assert.Contains(t, p, "Follow us for more.")

	plain := RewriteSystemPrompt(RewriteOptions{CustomEndingText: "ignored"})
	assert.NotContains(t, plain, "ignored")
}

func TestStickerStyles(t *testing.T) {
	assert.True(t, IsStickerStyle("neon"))
	assert.False(t, IsStickerStyle("gothic"))
	assert.Contains(t, StickerPrompt("a happy cat", "watercolor"), "watercolor")
}

func TestDecodeJSON(t *testing.T) {
	var v struct {
		SubjectType string `json:"subjectType"`
	}

	require.NoError(t, DecodeJSON("```json\n{\"subjectType\":\"person\"}\n```", &v))
	assert.Equal(t, "person", v.SubjectType)

	assert.Error(t, DecodeJSON("I cannot see an image", &v))
}
