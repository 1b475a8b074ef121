package game

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/pthm-cable/hamlet/components"
	"github.com/pthm-cable/hamlet/config"
)

var babyTraits = []string{
	"giggles at everything",
	"is fascinated by birds",
	"never stops asking why",
	"naps in sunny spots",
	"collects shiny pebbles",
}

// BabyFactory creates newborn villagers. Names and colours rotate through
// their pools with a counter owned by the factory.
type BabyFactory struct {
	cfg     config.BabyConfig
	rng     *rand.Rand
	counter int
}

// NewBabyFactory creates a factory drawing from cfg's pools.
func NewBabyFactory(cfg config.BabyConfig, rng *rand.Rand) *BabyFactory {
	return &BabyFactory{cfg: cfg, rng: rng}
}

// Born returns how many babies the factory has made.
func (f *BabyFactory) Born() int {
	return f.counter
}

// New creates the persona and walking speed of a child of a and b.
// The child shares a's home.
func (f *BabyFactory) New(a, b components.Persona, now time.Time) (components.Persona, float64) {
	n := f.counter
	f.counter++

	names, emoji := f.cfg.GirlNames, f.cfg.GirlEmoji
	if f.rng.Intn(2) == 0 {
		names, emoji = f.cfg.BoyNames, f.cfg.BoyEmoji
	}

	p := components.Persona{
		ID:    fmt.Sprintf("baby-%d-%d", n, now.UnixMilli()),
		Name:  pick(names, n),
		Emoji: emoji,
		Color: pick(f.cfg.Colors, n),
		Personality: fmt.Sprintf("a little one, child of %s and %s, who %s",
			a.Name, b.Name, babyTraits[n%len(babyTraits)]),
		HomeID:  a.HomeID,
		Baby:    true,
		Parents: [2]string{a.ID, b.ID},
	}
	speed := f.cfg.SpeedMin + f.rng.Float64()*(f.cfg.SpeedMax-f.cfg.SpeedMin)
	return p, speed
}

func pick(pool []string, n int) string {
	if len(pool) == 0 {
		return ""
	}
	return pool[n%len(pool)]
}
