package scene

import "github.com/zeusync/arena/internal/core/arena/primitive"

// Surface is the output target of a render pass. The assembler is its only
// writer and always clears it before rebuilding.
type Surface interface {
	Clear()
	Draw(p primitive.Primitive)
}

// Presenter is implemented by surfaces that publish a frame only once it is
// complete. Draw calls Present after the last primitive of a pass, including a
// cleared or banner-only frame. A skipped frame is never presented.
type Presenter interface {
	Present()
}

func present(s Surface) {
	if p, ok := s.(Presenter); ok {
		p.Present()
	}
}

// Reporter receives error reports. A panicking reporter is recovered.
type Reporter interface {
	Report(r Report)
}

// ReporterFunc adapts a function to Reporter.
type ReporterFunc func(r Report)

func (f ReporterFunc) Report(r Report) { f(r) }

type nopReporter struct{}

func (nopReporter) Report(Report) {}

// MemorySurface keeps the primitives of the last pass in memory.
type MemorySurface struct {
	items []primitive.Primitive
}

func NewMemorySurface() *MemorySurface {
	return &MemorySurface{}
}

func (m *MemorySurface) Clear() { m.items = m.items[:0] }

func (m *MemorySurface) Draw(p primitive.Primitive) { m.items = append(m.items, p) }

// Primitives returns a copy of what is currently drawn.
func (m *MemorySurface) Primitives() []primitive.Primitive {
	out := make([]primitive.Primitive, len(m.items))
	copy(out, m.items)
	return out
}

func (m *MemorySurface) Len() int { return len(m.items) }
