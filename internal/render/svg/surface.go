// Package svg renders primitives into an SVG document.
package svg

import (
	"bytes"
	"html"
	"strconv"
	"strings"
	"sync"

	"github.com/zeusync/arena/internal/core/arena/geometry"
	"github.com/zeusync/arena/internal/core/arena/primitive"
	"github.com/zeusync/arena/internal/core/arena/scene"
	"github.com/zeusync/arena/pkg/pool"
)

var documents = pool.NewHot(func() *bytes.Buffer { return new(bytes.Buffer) }, (*bytes.Buffer).Reset, 2)

var (
	_ scene.Surface   = (*Surface)(nil)
	_ scene.Presenter = (*Surface)(nil)
)

// Surface accumulates SVG elements for one frame in a back buffer. Present
// publishes the finished frame; Bytes only ever sees presented frames, so a
// reader on another goroutine never gets a half-drawn document.
type Surface struct {
	mu         sync.RWMutex
	size       geometry.Size
	background string

	back      bytes.Buffer
	backCount int

	front      []byte
	frontCount int
}

func NewSurface(size geometry.Size, background string) *Surface {
	return &Surface{size: size, background: background}
}

func (s *Surface) Clear() {
	s.mu.Lock()
	s.back.Reset()
	s.backCount = 0
	s.mu.Unlock()
}

func (s *Surface) Draw(p primitive.Primitive) {
	s.mu.Lock()
	defer s.mu.Unlock()
	writeElement(&s.back, p)
	s.backCount++
}

// Present makes the frame drawn since the last Clear the visible one.
func (s *Surface) Present() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.front = append(s.front[:0], s.back.Bytes()...)
	s.frontCount = s.backCount
}

// Len is the number of elements in the presented frame.
func (s *Surface) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.frontCount
}

// Resize changes the viewBox used by later documents.
func (s *Surface) Resize(size geometry.Size) {
	s.mu.Lock()
	s.size = size
	s.mu.Unlock()
}

// Bytes returns the complete document for the presented frame.
func (s *Surface) Bytes() []byte {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := documents.Get()
	defer documents.Put(out)

	w, h := num(s.size.W), num(s.size.H)
	out.WriteString(`<svg xmlns="http://www.w3.org/2000/svg" width="` + w + `" height="` + h + `" viewBox="0 0 ` + w + ` ` + h + `">`)
	if s.background != "" {
		out.WriteString(`<rect width="100%" height="100%" fill="` + html.EscapeString(s.background) + `"/>`)
	}
	out.Write(s.front)
	out.WriteString(`</svg>`)
	return bytes.Clone(out.Bytes())
}

func writeElement(b *bytes.Buffer, p primitive.Primitive) {
	switch {
	case p.Path != nil:
		b.WriteString(`<path d="` + PathData(*p.Path) + `"`)
	case p.Shape != nil:
		b.WriteString(`<path d="` + PathData(p.Shape.Outline) + `"`)
	case p.Circle != nil:
		b.WriteString(`<circle cx="` + num(p.Circle.Center.X) + `" cy="` + num(p.Circle.Center.Y) + `" r="` + num(p.Circle.Radius) + `"`)
	case p.Text != nil:
		b.WriteString(`<text x="` + num(p.Text.At.X) + `" y="` + num(p.Text.At.Y) + `" font-size="` + num(p.Text.Size) + `" text-anchor="` + anchor(p.Text.Anchor) + `" dominant-baseline="middle"`)
	default:
		return
	}

	b.WriteString(` data-role="` + string(p.Role) + `"`)
	if p.SideIndex != primitive.NoSide {
		b.WriteString(` data-side="` + strconv.Itoa(p.SideIndex) + `"`)
	}
	writeStyle(b, p.Style)

	if p.Text != nil {
		b.WriteString(`>` + html.EscapeString(p.Text.Content) + `</text>`)
		return
	}
	b.WriteString(`/>`)
}

func writeStyle(b *bytes.Buffer, s primitive.Style) {
	if s.Class != "" {
		b.WriteString(` class="` + html.EscapeString(s.Class) + `"`)
	}
	if s.Fill != "" {
		b.WriteString(` fill="` + html.EscapeString(s.Fill) + `"`)
	}
	if s.Stroke != "" {
		b.WriteString(` stroke="` + html.EscapeString(s.Stroke) + `"`)
	}
	if s.StrokeWidth > 0 {
		b.WriteString(` stroke-width="` + num(s.StrokeWidth) + `"`)
	}
	if s.Dash != [2]float64{} {
		b.WriteString(` stroke-dasharray="` + num(s.Dash[0]) + ` ` + num(s.Dash[1]) + `"`)
	}
	if s.Opacity > 0 && s.Opacity < 1 {
		b.WriteString(` opacity="` + num(s.Opacity) + `"`)
	}
}

// PathData converts a path into the SVG d attribute syntax.
func PathData(p primitive.Path) string {
	var sb strings.Builder
	for i, seg := range p.Segments {
		if i > 0 {
			sb.WriteByte(' ')
		}
		switch seg.Op {
		case primitive.OpMove:
			sb.WriteString("M" + num(seg.To.X) + " " + num(seg.To.Y))
		case primitive.OpLine:
			sb.WriteString("L" + num(seg.To.X) + " " + num(seg.To.Y))
		case primitive.OpArc:
			r := num(seg.Radius)
			sb.WriteString("A" + r + " " + r + " 0 " + flag(seg.LargeArc) + " " + flag(seg.Sweep) + " " + num(seg.To.X) + " " + num(seg.To.Y))
		case primitive.OpClose:
			sb.WriteString("Z")
		}
	}
	return sb.String()
}

func flag(b bool) string {
	if b {
		return "1"
	}
	return "0"
}

func anchor(a primitive.Anchor) string {
	switch a {
	case primitive.AnchorStart:
		return "start"
	case primitive.AnchorEnd:
		return "end"
	default:
		return "middle"
	}
}

// num prints with at most three decimals and without trailing zeros.
func num(v float64) string {
	s := strconv.FormatFloat(v, 'f', 3, 64)
	s = strings.TrimRight(s, "0")
	s = strings.TrimSuffix(s, ".")
	if s == "-0" {
		return "0"
	}
	return s
}
