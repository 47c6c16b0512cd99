package extract

import "fmt"

// Empirically tuned limits for the report family this package targets.
const (
	// DefaultWindow is the number of fragments after a label that a
	// sequential rule inspects.
	DefaultWindow = 5

	// DefaultRowTolerance widens the label's vertical band for single-value
	// neighbour searches, in page units.
	DefaultRowTolerance = 2.0

	// DefaultHardnessRowTolerance widens the band for hardness searches.
	DefaultHardnessRowTolerance = 5.0

	// DefaultLeftSlack is how far left of the label's left edge a neighbour
	// may start.
	DefaultLeftSlack = 5.0

	// DefaultMaxHardness caps the hardness readings collected per page.
	DefaultMaxHardness = 2
)

// Tuning holds the engine's overridable limits.
type Tuning struct {
	Window               int
	RowTolerance         float64
	HardnessRowTolerance float64
	LeftSlack            float64
	MaxHardness          int
}

// DefaultTuning returns the default limits.
func DefaultTuning() Tuning {
	return Tuning{
		Window:               DefaultWindow,
		RowTolerance:         DefaultRowTolerance,
		HardnessRowTolerance: DefaultHardnessRowTolerance,
		LeftSlack:            DefaultLeftSlack,
		MaxHardness:          DefaultMaxHardness,
	}
}

// Validate rejects limits that would make every search fail.
func (t Tuning) Validate() error {
	switch {
	case t.Window < 1:
		return fmt.Errorf("tuning: window must be at least 1, got %d", t.Window)
	case t.MaxHardness < 1:
		return fmt.Errorf("tuning: max hardness must be at least 1, got %d", t.MaxHardness)
	case t.RowTolerance < 0 || t.HardnessRowTolerance < 0:
		return fmt.Errorf("tuning: row tolerances must not be negative")
	case t.LeftSlack < 0:
		return fmt.Errorf("tuning: left slack must not be negative")
	}
	return nil
}
