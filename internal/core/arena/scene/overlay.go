package scene

import (
	"strconv"

	"github.com/zeusync/arena/internal/core/arena/geometry"
	"github.com/zeusync/arena/internal/core/arena/model"
	"github.com/zeusync/arena/internal/core/arena/primitive"
	"github.com/zeusync/arena/internal/core/arena/topology"
)

const debugOffset = 18.0

// overlay adds the debug layer: side numbers, vertex indices and collision
// colouring of hit-zones. Geometry of existing primitives is never changed.
func (a *Assembler) overlay(out []primitive.Primitive, topo topology.Topology, snap *model.GameSnapshot, cfg model.ViewConfig) ([]primitive.Primitive, error) {
	if snap.Collision != nil {
		for i := range out {
			if out[i].Role == primitive.RoleHitZone && snap.Colliding(out[i].SideIndex) {
				out[i].Style = a.palette.HitZoneColliding
			}
		}
	}

	for side := 0; side < topo.Sides(snap); side++ {
		anchor, err := topo.SideAnchor(side, snap, cfg)
		if err != nil {
			return nil, newError(CodeRender, "debug overlay failed", err).WithContext("side", side)
		}
		out = append(out, primitive.NewText(primitive.RoleSideLabel, side, primitive.Text{
			At:      anchor.Point.Add(anchor.Normal.Scale(debugOffset)),
			Content: strconv.Itoa(side),
			Size:    labelSize,
		}, a.palette.DebugLabel))
	}

	if topo.Kind() != model.TopologyPolygon {
		return out, nil
	}

	tr := cfg.Transform()
	center := tr.Project(geometry.Centroid(snap.Vertices))
	for i, v := range snap.Vertices {
		at := tr.Project(v)
		out = append(out, primitive.NewText(primitive.RoleVertexLabel, i, primitive.Text{
			At:      at.Add(at.Sub(center).Normalize().Scale(debugOffset)),
			Content: "v" + strconv.Itoa(i),
			Size:    labelSize,
		}, a.palette.DebugLabel))
	}
	return out, nil
}
