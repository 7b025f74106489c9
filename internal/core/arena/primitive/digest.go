package primitive

import (
	"encoding/binary"
	"math"

	"github.com/cespare/xxhash/v2"
)

// Digest hashes a primitive list. Equal lists always hash equal, so two passes
// over the same inputs can be compared without a deep walk.
func Digest(list []Primitive) uint64 {
	d := xxhash.New()
	w := digestWriter{d: d}
	w.putInt(len(list))
	for _, p := range list {
		w.putInt(int(p.Kind))
		w.putString(string(p.Role))
		w.putInt(p.SideIndex)
		w.putStyle(p.Style)
		switch {
		case p.Path != nil:
			w.putPath(*p.Path)
		case p.Shape != nil:
			s := p.Shape
			w.putInt(int(s.Form))
			w.putPath(s.Outline)
			w.putFloats(s.Center.X, s.Center.Y, s.Angle, s.Length, s.Width,
				s.ArcCenter.X, s.ArcCenter.Y, s.InnerRadius, s.OuterRadius, s.StartAngle, s.EndAngle)
			w.putBool(s.LargeArc)
			for _, c := range s.Corners {
				w.putFloats(c.X, c.Y)
			}
		case p.Circle != nil:
			w.putFloats(p.Circle.Center.X, p.Circle.Center.Y, p.Circle.Radius)
		case p.Text != nil:
			w.putFloats(p.Text.At.X, p.Text.At.Y, p.Text.Size)
			w.putString(p.Text.Content)
			w.putInt(int(p.Text.Anchor))
		}
	}
	return d.Sum64()
}

type digestWriter struct {
	d   *xxhash.Digest
	buf [8]byte
}

func (w *digestWriter) putInt(v int) {
	binary.LittleEndian.PutUint64(w.buf[:], uint64(v))
	_, _ = w.d.Write(w.buf[:])
}

func (w *digestWriter) putFloats(vs ...float64) {
	for _, v := range vs {
		binary.LittleEndian.PutUint64(w.buf[:], math.Float64bits(v))
		_, _ = w.d.Write(w.buf[:])
	}
}

func (w *digestWriter) putBool(v bool) {
	if v {
		w.putInt(1)
		return
	}
	w.putInt(0)
}

func (w *digestWriter) putString(s string) {
	w.putInt(len(s))
	_, _ = w.d.WriteString(s)
}

func (w *digestWriter) putStyle(s Style) {
	w.putString(s.Class)
	w.putString(s.Fill)
	w.putString(s.Stroke)
	w.putFloats(s.StrokeWidth, s.Opacity)
	w.putFloats(s.Dash[:]...)
}

func (w *digestWriter) putPath(p Path) {
	w.putInt(len(p.Segments))
	for _, s := range p.Segments {
		w.putInt(int(s.Op))
		w.putFloats(s.To.X, s.To.Y, s.Radius)
		w.putBool(s.LargeArc)
		w.putBool(s.Sweep)
	}
}
