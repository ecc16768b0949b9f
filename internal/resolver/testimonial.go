package resolver

import (
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/ai-picks-site/internal/models"
)

// Star rating bounds
const (
	MinStars     = 1
	MaxStars     = 5
	DefaultStars = MaxStars
)

// anonymous names testimonials without a customer name or title
const anonymous = "Anonymous"

// Testimonial is a display-ready customer review
type Testimonial struct {
	ID           string `json:"id"`
	CustomerName string `json:"customer_name"`
	Initial      string `json:"initial"`
	Review       Text   `json:"review"`
	Avatar       Image  `json:"avatar"`
	Stars        int    `json:"stars"`
	ProfitAmount Text   `json:"profit_amount"`
	TimePeriod   Text   `json:"time_period"`
	Featured     bool   `json:"featured"`
}

// ResolveTestimonial resolves a testimonial record. The customer picture is
// sized with the context's avatar placement.
func ResolveTestimonial(obj *models.Object, ctx RenderContext) Testimonial {
	meta := obj.Metadata

	name := anonymous
	if text, _ := firstText(meta, "customer_name"); text.Present() {
		name = text.String()
	} else if t := strings.TrimSpace(obj.Title); t != "" {
		name = t
	}

	review, _ := firstText(meta, "review_text")
	profit, _ := firstText(meta, "profit_amount")
	period, _ := firstText(meta, "time_period")

	return Testimonial{
		ID:           obj.ID,
		CustomerName: name,
		Initial:      initial(name),
		Review:       review,
		Avatar:       firstImage(meta, ctx.Avatar, "customer_image"),
		Stars:        stars(meta),
		ProfitAmount: profit,
		TimePeriod:   period,
		Featured:     meta.Bool("featured"),
	}
}

func initial(name string) string {
	r, _ := utf8.DecodeRuneInString(name)
	if r == utf8.RuneError {
		return "A"
	}
	return string(unicode.ToUpper(r))
}

func stars(meta models.Metadata) int {
	choice, ok := meta.Choice("star_rating")
	if !ok {
		return DefaultStars
	}
	for _, candidate := range []string{choice.Key, choice.Value} {
		n, err := strconv.Atoi(strings.TrimSpace(candidate))
		if err != nil {
			continue
		}
		if n < MinStars {
			return MinStars
		}
		if n > MaxStars {
			return MaxStars
		}
		return n
	}
	return DefaultStars
}
