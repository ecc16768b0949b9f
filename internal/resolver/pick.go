package resolver

import (
	"time"

	"github.com/ai-picks-site/internal/models"
)

// NotAvailable fills pick fields the analysts have not published yet
const NotAvailable = "N/A"

// gameDateLayouts are the formats the date field is seen in
var gameDateLayouts = []string{"2006-01-02", time.RFC3339}

var confidenceTones = map[string]Tone{
	"high":   ToneSuccess,
	"medium": ToneWarning,
	"low":    ToneDanger,
}

var resultTones = map[string]Tone{
	"win":  ToneSuccess,
	"push": ToneWarning,
	"loss": ToneDanger,
}

// Pick is a display-ready betting pick
type Pick struct {
	ID             string `json:"id"`
	Slug           string `json:"slug"`
	Title          string `json:"title"`
	Matchup        Text   `json:"matchup"`
	Analysis       Text   `json:"analysis"`
	RecommendedBet string `json:"recommended_bet"`
	Odds           string `json:"odds"`
	Confidence     Label  `json:"confidence"`
	Result         Label  `json:"result"`
	GameDate       string `json:"game_date"`
	Premium        bool   `json:"premium"`
}

// ResolvePick resolves a betting pick record
func ResolvePick(obj *models.Object, _ RenderContext) Pick {
	meta := obj.Metadata

	analysis, _ := firstText(meta, "analysis")
	bet, _ := firstText(meta, "recommended_bet")
	odds, _ := firstText(meta, "odds")

	return Pick{
		ID:             obj.ID,
		Slug:           obj.Slug,
		Title:          title(obj, "game_title"),
		Matchup:        matchup(meta),
		Analysis:       analysis,
		RecommendedBet: bet.Or(NotAvailable),
		Odds:           odds.Or(NotAvailable),
		Confidence:     choiceLabel(meta, "confidence_rating", confidenceTones, ToneNeutral),
		Result:         choiceLabel(meta, "result", resultTones, ToneInfo),
		GameDate:       gameDate(meta),
		Premium:        meta.Bool("premium_pick"),
	}
}

func matchup(meta models.Metadata) Text {
	home, okHome := meta.Text("team_1")
	away, okAway := meta.Text("team_2")
	switch {
	case okHome && okAway:
		return NewText(home + " vs " + away)
	case okHome:
		return NewText(home)
	case okAway:
		return NewText(away)
	}
	return NoText
}

func choiceLabel(meta models.Metadata, key string, tones map[string]Tone, fallback Tone) Label {
	choice, ok := meta.Choice(key)
	if !ok {
		return Label{Tone: fallback}
	}
	return Label{
		Text: label(meta, key),
		Tone: tone(choice, tones, fallback),
	}
}

func gameDate(meta models.Metadata) string {
	raw, ok := meta.Text("game_date")
	if !ok {
		return "TBD"
	}
	for _, layout := range gameDateLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t.Format("Jan 2, 2006")
		}
	}
	return "TBD"
}
