package resolver

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/ai-picks-site/internal/models"
)

// Settings is the display-ready site configuration. Every field except the
// price comparison always carries a value.
type Settings struct {
	HeroHeadline       string `json:"hero_headline"`
	HeroSubheadline    string `json:"hero_subheadline"`
	HeroCTA            string `json:"hero_cta_text"`
	SeasonRecord       string `json:"current_season_record"`
	SeasonROI          string `json:"season_roi"`
	WinRate            string `json:"win_rate"`
	SubscriptionPrice  string `json:"subscription_price"`
	RegularPrice       Text   `json:"regular_price"`
	Savings            Text   `json:"savings"`
	FloatingButtonText string `json:"floating_button_text"`
	ExitIntentHeadline string `json:"exit_intent_headline"`
	ExitIntentOffer    string `json:"exit_intent_offer"`
	BlogCTA            string `json:"blog_cta_default"`
}

// settingsDefaults holds the copy shown for any field the editors left blank
var settingsDefaults = map[string]string{
	"hero_headline":         "AI Sports Betting That Actually Wins",
	"hero_subheadline":      "Our advanced AI analyzes thousands of data points to deliver profitable betting picks. Join the smart money and start winning consistently.",
	"hero_cta_text":         "Get AI Picks Now",
	"current_season_record": "118-52-3",
	"season_roi":            "+32.7%",
	"win_rate":              "68%",
	"subscription_price":    "$199",
	"floating_button_text":  "Get Free Picks",
	"exit_intent_headline":  "Wait! Get 3 Free AI Picks Before You Go",
	"exit_intent_offer":     "Don't miss out! Enter your email and we'll send you 3 high-confidence AI picks for this weekend's games - completely free. No strings attached.",
	"blog_cta_default":      DefaultCTA,
}

// DefaultSettings returns the settings used when the bucket has no
// configuration record
func DefaultSettings() Settings {
	return ResolveSettings(nil)
}

// ResolveSettings resolves the site configuration record. A nil record
// resolves to the defaults.
func ResolveSettings(obj *models.Object) Settings {
	var meta models.Metadata
	if obj != nil {
		meta = obj.Metadata
	}

	value := func(key string) string {
		if s, ok := meta.Scalar(key); ok {
			return s
		}
		return settingsDefaults[key]
	}

	regular := NoText
	if s, ok := meta.Scalar("regular_price"); ok {
		regular = NewText(s)
	}
	subscription := value("subscription_price")

	return Settings{
		HeroHeadline:       value("hero_headline"),
		HeroSubheadline:    value("hero_subheadline"),
		HeroCTA:            value("hero_cta_text"),
		SeasonRecord:       value("current_season_record"),
		SeasonROI:          value("season_roi"),
		WinRate:            value("win_rate"),
		SubscriptionPrice:  subscription,
		RegularPrice:       regular,
		Savings:            savings(regular, subscription),
		FloatingButtonText: value("floating_button_text"),
		ExitIntentHeadline: value("exit_intent_headline"),
		ExitIntentOffer:    value("exit_intent_offer"),
		BlogCTA:            value("blog_cta_default"),
	}
}

// savings formats regular minus subscription price, when both parse and the
// difference is positive
func savings(regular Text, subscription string) Text {
	if !regular.Present() {
		return NoText
	}
	full, ok := parseDollars(regular.String())
	if !ok {
		return NoText
	}
	price, ok := parseDollars(subscription)
	if !ok {
		return NoText
	}

	diff := full - price
	if diff <= 0 {
		return NoText
	}
	if diff == math.Trunc(diff) {
		return NewText(fmt.Sprintf("$%d", int64(diff)))
	}
	return NewText(fmt.Sprintf("$%.2f", diff))
}

func parseDollars(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "$")
	s = strings.ReplaceAll(s, ",", "")
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}
