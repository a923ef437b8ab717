package xpbd

import "github.com/chewxy/math32"

// SyncTransforms writes the renderable transform of every particle. alpha is the fraction of a tick
// left over in the accumulator: 0 shows the previous position, 1 the current one. Values outside
// [0, 1] are clamped and NaN is treated as 1.
func SyncTransforms(w *World, alpha float64) {
	if w == nil {
		return
	}
	a := float32(1)
	if !math32.IsNaN(float32(alpha)) {
		a = math32.Max(0, math32.Min(1, float32(alpha)))
	}
	for _, p := range w.All() {
		prev, cur := vec64To32(p.PrevPos), vec64To32(p.Pos)
		p.Transform = prev.Add(cur.Sub(prev).Mul(a)).Vec3(0)
	}
}
