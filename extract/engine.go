package extract

import (
	"log/slog"

	"github.com/tsawler/reportscan/model"
)

// Engine runs field specs over one document's fragments or elements.
type Engine struct {
	tuning Tuning
	logger *slog.Logger
}

// NewEngine creates an engine. A nil logger uses slog.Default().
func NewEngine(tuning Tuning, logger *slog.Logger) *Engine {
	if logger == nil {
		logger = slog.Default()
	}
	return &Engine{tuning: tuning, logger: logger}
}

// Tuning returns the engine's limits.
func (e *Engine) Tuning() Tuning {
	return e.tuning
}

// Resolve locates spec.Label in fragments and applies spec.Rule to the
// window that follows it.
func (e *Engine) Resolve(fragments []model.Fragment, spec FieldSpec) (string, bool) {
	if spec.Rule.Spatial() {
		e.logger.Warn("rule needs layout geometry", "field", spec.Label, "rule", spec.Rule.String())
		return "", false
	}

	idx := LocateFragment(fragments, spec.Label, spec.Occurrence)
	if idx == NotFound {
		e.logger.Debug("label not found", "field", spec.Label)
		return "", false
	}

	value, ok := spec.Rule.Apply(Window(fragments, idx, e.tuning.Window))
	if !ok {
		e.logger.Debug("no value near label", "field", spec.Label, "index", idx, "rule", spec.Rule.String())
		return "", false
	}
	e.logger.Info("field resolved", "field", spec.Label, "value", value)
	return value, true
}

// Sequential resolves every spec over fragments.
func (e *Engine) Sequential(fragments []model.Fragment, specs ...FieldSpec) Result {
	res := make(Result)
	if len(fragments) == 0 {
		return res
	}
	for _, spec := range specs {
		if v, ok := e.Resolve(fragments, spec); ok {
			res[spec.Label] = v
		}
	}
	return res
}

// ResolveSpatial resolves one NearestRight spec over elements.
func (e *Engine) ResolveSpatial(elements []model.Element, spec FieldSpec) (string, bool) {
	if !spec.Rule.Spatial() {
		e.logger.Warn("rule needs a fragment sequence", "field", spec.Label, "rule", spec.Rule.String())
		return "", false
	}

	match, ok := ResolveNearestRight(elements, spec.Label, spec.Keyword, Geometry{
		RowTolerance: e.tuning.RowTolerance,
		LeftSlack:    e.tuning.LeftSlack,
	})
	if !ok {
		e.logger.Debug("no neighbour for label", "field", spec.Label, "keyword", spec.Keyword)
		return "", false
	}
	if match.Raw {
		e.logger.Debug("neighbour has no number, using raw text", "field", spec.Label, "text", match.Value)
	}
	e.logger.Info("field resolved", "field", spec.Label, "value", match.Value)
	return match.Value, true
}

// Spatial resolves every spec over elements.
func (e *Engine) Spatial(elements []model.Element, specs ...FieldSpec) Result {
	res := make(Result)
	if len(elements) == 0 {
		return res
	}
	for _, spec := range specs {
		if v, ok := e.ResolveSpatial(elements, spec); ok {
			res[spec.Label] = v
		}
	}
	return res
}

// Hardness collects up to Tuning.MaxHardness readings, top of page first.
func (e *Engine) Hardness(elements []model.Element, spec HardnessSpec) []string {
	values := ResolveHardness(elements, spec, Geometry{
		RowTolerance: e.tuning.HardnessRowTolerance,
		LeftSlack:    e.tuning.LeftSlack,
	}, e.tuning.MaxHardness)

	for i, v := range values {
		e.logger.Info("hardness resolved", "reading", i+1, "value", v)
	}
	return values
}
