package advisory

import (
	"regexp"
	"strings"

	"github.com/GTDGit/duckwolf_api/internal/models"
	"github.com/GTDGit/duckwolf_api/pkg/gemini"
)

const (
	emptyResearchText      = "未能生成分析文本。"
	competitorPlaceholder  = "见概要分析"
	positioningPlaceholder = "建议根据市场波动调整"
	untitledSource         = "参考链接"

	// summary, two market paragraphs, competitors, positioning
	researchSections = 5
)

var blankLine = regexp.MustCompile(`\n[ \t\r]*\n`)

// segments splits text on blank lines, trimming and dropping empty parts.
func segments(text string) []string {
	var out []string
	for _, part := range blankLine.Split(text, -1) {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// buildResearch maps a free-text answer onto the research sections. When the
// answer does not have all sections the result is flagged unstructured and
// carries the raw text.
func buildResearch(answer *gemini.GroundedText) *models.ProductResearch {
	text := strings.TrimSpace(answer.Text)
	if text == "" {
		text = emptyResearchText
	}
	parts := segments(text)

	r := &models.ProductResearch{
		Summary:              text,
		MarketAnalysis:       []string{},
		CompetitorAnalysis:   competitorPlaceholder,
		SuggestedPositioning: positioningPlaceholder,
		Sources:              []models.ResearchSource{},
		Structured:           len(parts) >= researchSections,
	}

	if len(parts) > 0 {
		r.Summary = parts[0]
	}
	for i := 1; i < len(parts) && i < 3; i++ {
		r.MarketAnalysis = append(r.MarketAnalysis, parts[i])
	}
	if len(r.MarketAnalysis) == 0 {
		r.MarketAnalysis = append(r.MarketAnalysis, competitorPlaceholder)
	}
	if len(parts) > 3 {
		r.CompetitorAnalysis = parts[3]
	}
	if len(parts) > 4 {
		r.SuggestedPositioning = parts[4]
	}
	if !r.Structured {
		r.RawText = text
	}

	for _, src := range answer.Sources {
		if src.URI == "" {
			continue
		}
		title := src.Title
		if title == "" {
			title = untitledSource
		}
		r.Sources = append(r.Sources, models.ResearchSource{Title: title, URI: src.URI})
	}

	return r
}
