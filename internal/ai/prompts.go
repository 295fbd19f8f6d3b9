package ai

import (
	"fmt"
	"strings"

	"clover/internal/models"
)

var contentSystemPrompts = map[models.ContentType]string{
	models.ContentSocial: "You are a social media copywriter. Write a short, engaging post with a strong hook, " +
		"line breaks for readability and a few relevant hashtags at the end.",
	models.ContentVideo: "You are a video scriptwriter. Write a script with a hook for the first three seconds, " +
		"scene-by-scene narration and a closing call to action.",
	models.ContentBlog: "You are a blog writer. Write a well structured article with a title, an introduction, " +
		"headed sections and a conclusion. Use Markdown.",
	models.ContentEmail: "You are an email marketer. Write a subject line, a preview line and a concise body " +
		"that ends with one clear call to action.",
}

// ContentSystemPrompt returns the writer persona for a content type.
func ContentSystemPrompt(t models.ContentType) string {
	return contentSystemPrompts[t]
}

type OrganizeAction string

const (
	ActionSummarize   OrganizeAction = "summarize"
	ActionRewrite     OrganizeAction = "rewrite"
	ActionTranslateEN OrganizeAction = "translate_en"
	ActionTranslateZH OrganizeAction = "translate_zh"
	ActionExpand      OrganizeAction = "expand"
	ActionSimplify    OrganizeAction = "simplify"
	ActionKeywords    OrganizeAction = "keywords"
	ActionOutline     OrganizeAction = "outline"
)

var organizeInstructions = map[OrganizeAction]string{
	ActionSummarize:   "Summarize the following content in a few sentences, keeping the key points.",
	ActionRewrite:     "Rewrite the following content so it reads fresh while keeping its meaning.",
	ActionTranslateEN: "Translate the following content into natural English.",
	ActionTranslateZH: "Translate the following content into natural Simplified Chinese.",
	ActionExpand:      "Expand the following content with more detail, examples and explanation.",
	ActionSimplify:    "Simplify the following content so a general audience can follow it.",
	ActionKeywords:    "Extract the most important keywords from the following content as a comma separated list.",
	ActionOutline:     "Turn the following content into a hierarchical outline.",
}

func ParseOrganizeAction(s string) (OrganizeAction, error) {
	a := OrganizeAction(s)
	if _, ok := organizeInstructions[a]; !ok {
		return "", fmt.Errorf("unknown action %q", s)
	}
	return a, nil
}

func (a OrganizeAction) Instruction() string {
	return organizeInstructions[a]
}

const organizeSystemPrompt = "You are an editing assistant. Return only the transformed content without commentary."

func OrganizeSystemPrompt() string {
	return organizeSystemPrompt
}

// RewriteOptions shapes how a fetched article is rewritten.
type RewriteOptions struct {
	OutputLanguage   string
	Style            string
	CustomStyle      string
	TargetWordCount  int
	GeoOptimized     bool
	CustomEnding     bool
	CustomEndingText string
}

func RewriteSystemPrompt(opts RewriteOptions) string {
	var b strings.Builder
	b.WriteString("You are a professional editor who rewrites articles into original content. ")
	b.WriteString("Keep the facts, change the wording and structure, and never copy sentences verbatim.")

	if opts.OutputLanguage != "" {
		fmt.Fprintf(&b, "\nWrite the result in %s.", opts.OutputLanguage)
	}

	style := opts.Style
	if style == "custom" || opts.CustomStyle != "" {
		style = opts.CustomStyle
	}
	if style != "" {
		fmt.Fprintf(&b, "\nWriting style: %s.", style)
	}

	if opts.TargetWordCount > 0 {
		fmt.Fprintf(&b, "\nAim for about %d words.", opts.TargetWordCount)
	}

	if opts.GeoOptimized {
		b.WriteString("\nOptimize for generative search engines: answer likely questions directly, use clear headings, " +
			"short factual statements and a brief FAQ section.")
	}

	if opts.CustomEnding && opts.CustomEndingText != "" {
		fmt.Fprintf(&b, "\nEnd the article with this closing paragraph, adapted to the language of the article: %s", opts.CustomEndingText)
	}

	return b.String()
}

func RewriteUserPrompt(title, text string) string {
	if title == "" {
		return "Original article:\n\n" + text
	}
	return fmt.Sprintf("Original title: %s\n\nOriginal article:\n\n%s", title, text)
}

const analyzeImagePrompt = `Describe the main subject of this image for use as a character reference.
Answer with JSON only, no Markdown, in this shape:
{"subjectType":"person|animal|other","description":"...","appearance":{"hair":"...","eyes":"...","clothing":"...","features":"..."},"style":"...","mood":"...","background":"..."}`

func AnalyzeImagePrompt() string {
	return analyzeImagePrompt
}

// SearchPrompt asks the model to imagine plausible results for a platform.
// Nothing is looked up; callers must label the answer as hypothetical.
func SearchPrompt(platform, query string, maxResults int) (system, user string) {
	system = fmt.Sprintf("You imagine what %s search results for a query could plausibly look like, "+
		"to inspire content creators. Answer with a JSON array only, no Markdown.", platform)
	user = fmt.Sprintf(`Query: %s
Return %d items shaped like {"title":"...","author":"...","description":"...","tags":["..."],"engagement":"..."}.`,
		query, maxResults)
	return system, user
}

var stickerStyles = map[string]string{
	"cute":       "kawaii style, soft pastel colors, rounded shapes",
	"minimal":    "minimalist flat design, simple lines, limited palette",
	"bold":       "bold outlines, saturated colors, pop art energy",
	"vintage":    "retro vintage look, muted tones, slight grain",
	"neon":       "glowing neon lights on a dark background",
	"watercolor": "hand painted watercolor texture, soft edges",
}

func IsStickerStyle(s string) bool {
	_, ok := stickerStyles[s]
	return ok
}

func StickerPrompt(subject, style string) string {
	return fmt.Sprintf("A die-cut sticker of %s, %s, white border, isolated on a plain background, no text artifacts.",
		subject, stickerStyles[style])
}
