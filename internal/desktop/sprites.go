package desktop

import "github.com/go-gl/gl/v4.1-core/gl"

// DrawSprites renders point sprites with the frame camera.
// buf format: [x, y, size, r, g, b, a, rotation] * N.
// additive: true for pre-multiplied sparks, false for alpha blend.
func (r *Renderer) DrawSprites(buf []float32, additive bool) {
	count := r.bindSprites(buf, r.spriteProg, r.spUCamera, r.spUZoom, r.spUResolution)
	if count == 0 {
		return
	}
	gl.Enable(gl.BLEND)
	if additive {
		gl.BlendFunc(gl.ONE, gl.ONE)
	} else {
		gl.BlendFunc(gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA)
	}
	gl.DrawArrays(gl.POINTS, 0, int32(count))
	gl.Disable(gl.BLEND)
}

// DrawGlowSprites renders light sprites with additive blending and radial
// falloff. RGB should be pre-multiplied by brightness.
func (r *Renderer) DrawGlowSprites(buf []float32) {
	count := r.bindSprites(buf, r.glowProg, r.glowUCamera, r.glowUZoom, r.glowUResolution)
	if count == 0 {
		return
	}
	gl.Enable(gl.BLEND)
	gl.BlendFunc(gl.ONE, gl.ONE)
	gl.DrawArrays(gl.POINTS, 0, int32(count))
	gl.Disable(gl.BLEND)
}

func (r *Renderer) bindSprites(buf []float32, prog uint32, uCam, uZoom, uRes int32) int {
	count := min(len(buf)/8, maxSpriteRender)
	if count == 0 {
		return 0
	}
	gl.UseProgram(prog)
	gl.BindVertexArray(r.spriteVAO)
	gl.BindBuffer(gl.ARRAY_BUFFER, r.spriteVBO)

	cx, cy := r.cam.EffectivePos()
	gl.Uniform2f(uCam, float32(cx), float32(cy))
	gl.Uniform1f(uZoom, float32(r.cam.Zoom))
	gl.Uniform2f(uRes, float32(r.fbW), float32(r.fbH))

	gl.BufferData(gl.ARRAY_BUFFER, count*8*4, gl.Ptr(buf), gl.STREAM_DRAW)
	return count
}
