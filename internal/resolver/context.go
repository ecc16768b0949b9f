package resolver

import (
	"github.com/ai-picks-site/internal/imgix"
)

// RenderContext carries the placement a record is being resolved for. Image
// sizes the record's primary image, Avatar sizes people pictures.
type RenderContext struct {
	Image  imgix.Size
	Avatar imgix.Size
}

// Rendering contexts used by the pages
var (
	CardContext         = RenderContext{Image: imgix.Card, Avatar: imgix.Avatar}
	FeaturedCardContext = RenderContext{Image: imgix.FeaturedCard, Avatar: imgix.Avatar}
	ArticleContext      = RenderContext{Image: imgix.Hero, Avatar: imgix.Avatar}
	SocialContext       = RenderContext{Image: imgix.Social, Avatar: imgix.Avatar}
)
