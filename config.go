package threatscope

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// Timing holds the presentation constants of the scenario animation. They
// have no meaning beyond pacing and may be tuned freely.
type Timing struct {
	AttackStagger time.Duration `env:"THREATSCOPE_ATTACK_STAGGER" envDefault:"500ms"`
	BlinkInterval time.Duration `env:"THREATSCOPE_BLINK_INTERVAL" envDefault:"300ms"`
	BlinkCount    int           `env:"THREATSCOPE_BLINK_COUNT"    envDefault:"3"`
	AutoReset     time.Duration `env:"THREATSCOPE_AUTO_RESET"     envDefault:"3s"`
	FadeIn        time.Duration `env:"THREATSCOPE_FADE_IN"        envDefault:"250ms"`
}

// Config is the process-level configuration of a viewer.
type Config struct {
	Timing
	Debug         bool   `env:"THREATSCOPE_DEBUG"`
	ScreenshotDir string `env:"THREATSCOPE_SCREENSHOT_DIR" envDefault:"screenshots"`
}

// DefaultTiming returns the pacing used when no configuration is supplied.
func DefaultTiming() Timing {
	return Timing{
		AttackStagger: 500 * time.Millisecond,
		BlinkInterval: 300 * time.Millisecond,
		BlinkCount:    3,
		AutoReset:     3 * time.Second,
		FadeIn:        250 * time.Millisecond,
	}
}

// Validate reports the first out-of-range value.
func (t Timing) Validate() error {
	switch {
	case t.AttackStagger < 0:
		return fmt.Errorf("attack stagger %v: must not be negative", t.AttackStagger)
	case t.BlinkInterval <= 0:
		return fmt.Errorf("blink interval %v: must be positive", t.BlinkInterval)
	case t.BlinkCount < 0:
		return fmt.Errorf("blink count %d: must not be negative", t.BlinkCount)
	case t.AutoReset <= 0:
		return fmt.Errorf("auto reset %v: must be positive", t.AutoReset)
	case t.FadeIn < 0:
		return fmt.Errorf("fade in %v: must not be negative", t.FadeIn)
	}
	return nil
}

// LoadConfig reads configuration from THREATSCOPE_* environment variables,
// applying defaults for anything unset.
func LoadConfig() (Config, error) {
	cfg, err := env.ParseAs[Config]()
	if err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.Timing.Validate(); err != nil {
		return Config{}, fmt.Errorf("load config: %w", err)
	}
	return cfg, nil
}
