package game

import (
	"time"

	"github.com/pthm-cable/hamlet/config"
	"github.com/pthm-cable/hamlet/social"
	"github.com/pthm-cable/hamlet/world"
)

func mapConfig(cfg *config.Config) world.MapConfig {
	return world.MapConfig{
		Width:          cfg.World.Width,
		Height:         cfg.World.Height,
		EdgeMargin:     cfg.World.EdgeMargin,
		InteriorMargin: cfg.World.InteriorMargin,
		HomeChance:     cfg.World.HomeChance,
		PartnerChance:  cfg.World.PartnerChance,
	}
}

func thresholds(cfg *config.Config) social.Thresholds {
	r := cfg.Relationship
	return social.Thresholds{
		Acquaintance: r.Acquaintance,
		Friend:       r.Friend,
		Lover:        r.Lover,
		Married:      r.Married,
		Parent:       r.Parent,
	}
}

// buildingsFromConfig converts the configured layout, or returns the built-in
// catalog when none is configured.
func buildingsFromConfig(cfg *config.Config) []world.Building {
	if len(cfg.Buildings) == 0 {
		return world.DefaultCatalog()
	}
	out := make([]world.Building, 0, len(cfg.Buildings))
	for _, bc := range cfg.Buildings {
		b := world.Building{
			ID:   bc.ID,
			Name: bc.Name,
			Kind: world.BuildingKind(bc.Kind),
			Rect: rect(bc.Rect),
		}
		if b.Kind == "" {
			b.Kind = world.KindPublic
		}
		for _, w := range bc.Wings {
			b.Wings = append(b.Wings, rect(w))
		}
		for _, f := range bc.Furniture {
			b.Furniture = append(b.Furniture, world.Furniture{Kind: f.Kind, Rect: rect(f.Rect)})
		}
		out = append(out, b)
	}
	return out
}

func rect(r config.RectConfig) world.Rect {
	return world.Rect{X: r.X, Y: r.Y, W: r.W, H: r.H}
}

func seconds(s float64) time.Duration {
	return time.Duration(s * float64(time.Second))
}
