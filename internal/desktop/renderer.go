package desktop

import (
	"fmt"
	"unsafe"

	"github.com/go-gl/gl/v4.1-core/gl"

	"github.com/Korport/RacingGame/internal/game"
)

const maxSpriteRender = game.MaxParticles

// glOffset converts a byte offset to unsafe.Pointer for OpenGL VBO offset params.
func glOffset(n int) unsafe.Pointer { return unsafe.Pointer(uintptr(n)) }

type Renderer struct {
	// Quad program.
	quadProg uint32
	quadVAO  uint32
	quadVBO  uint32

	uRect       int32
	uCamera     int32
	uZoom       int32
	uResolution int32
	uTex        int32
	uTint       int32

	// Point sprite and glow programs share the sprite VAO.
	spriteProg    uint32
	spriteVAO     uint32
	spriteVBO     uint32
	spUCamera     int32
	spUZoom       int32
	spUResolution int32

	glowProg        uint32
	glowUCamera     int32
	glowUZoom       int32
	glowUResolution int32

	// Textures.
	whiteTex    uint32
	obstacleTex [5]uint32
	skinTex     []uint32
	decorTex    [4]uint32

	// Font/text rendering.
	fontTex      uint32
	textProg     uint32
	textVAO      uint32
	textVBO      uint32
	textURes     int32
	textUFontTex int32
	textBuf      []float32

	// Frame state set by BeginFrame.
	cam      game.Camera
	fbW, fbH int
}

func NewRenderer() (*Renderer, error) {
	quadProg, err := linkProgram(quadVertSrc, quadFragSrc)
	if err != nil {
		return nil, fmt.Errorf("quad program: %w", err)
	}
	spriteProg, err := linkProgram(spriteVertSrc, spriteFragSrc)
	if err != nil {
		gl.DeleteProgram(quadProg)
		return nil, fmt.Errorf("sprite program: %w", err)
	}
	glowProg, err := linkProgram(spriteVertSrc, glowFragSrc)
	if err != nil {
		gl.DeleteProgram(quadProg)
		gl.DeleteProgram(spriteProg)
		return nil, fmt.Errorf("glow program: %w", err)
	}

	r := &Renderer{
		quadProg:   quadProg,
		spriteProg: spriteProg,
		glowProg:   glowProg,
	}

	// Quad VAO/VBO: a unit quad (6 vertices, 2 triangles).
	var qVAO, qVBO uint32
	gl.GenVertexArrays(1, &qVAO)
	gl.GenBuffers(1, &qVBO)
	gl.BindVertexArray(qVAO)
	gl.BindBuffer(gl.ARRAY_BUFFER, qVBO)

	quadVerts := [12]float32{
		0, 0, 1, 0, 1, 1,
		0, 0, 1, 1, 0, 1,
	}
	gl.BufferData(gl.ARRAY_BUFFER, len(quadVerts)*4, gl.Ptr(&quadVerts[0]), gl.STATIC_DRAW)
	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointer(0, 2, gl.FLOAT, false, 2*4, glOffset(0))
	r.quadVAO = qVAO
	r.quadVBO = qVBO

	gl.UseProgram(quadProg)
	r.uRect = gl.GetUniformLocation(quadProg, gl.Str("uRect\x00"))
	r.uCamera = gl.GetUniformLocation(quadProg, gl.Str("uCamera\x00"))
	r.uZoom = gl.GetUniformLocation(quadProg, gl.Str("uZoom\x00"))
	r.uResolution = gl.GetUniformLocation(quadProg, gl.Str("uResolution\x00"))
	r.uTex = gl.GetUniformLocation(quadProg, gl.Str("uTex\x00"))
	r.uTint = gl.GetUniformLocation(quadProg, gl.Str("uTint\x00"))
	gl.Uniform1i(r.uTex, 0)

	// Sprite VAO/VBO: streaming buffer, 8 floats per sprite
	// (x, y, size, r, g, b, a, rotation).
	var sVAO, sVBO uint32
	gl.GenVertexArrays(1, &sVAO)
	gl.GenBuffers(1, &sVBO)
	gl.BindVertexArray(sVAO)
	gl.BindBuffer(gl.ARRAY_BUFFER, sVBO)

	stride := int32(8 * 4)
	gl.BufferData(gl.ARRAY_BUFFER, maxSpriteRender*int(stride), nil, gl.STREAM_DRAW)
	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointer(0, 2, gl.FLOAT, false, stride, glOffset(0))
	gl.EnableVertexAttribArray(1)
	gl.VertexAttribPointer(1, 1, gl.FLOAT, false, stride, glOffset(2*4))
	gl.EnableVertexAttribArray(2)
	gl.VertexAttribPointer(2, 4, gl.FLOAT, false, stride, glOffset(3*4))
	gl.EnableVertexAttribArray(3)
	gl.VertexAttribPointer(3, 1, gl.FLOAT, false, stride, glOffset(7*4))
	r.spriteVAO = sVAO
	r.spriteVBO = sVBO

	gl.UseProgram(spriteProg)
	r.spUCamera = gl.GetUniformLocation(spriteProg, gl.Str("uCamera\x00"))
	r.spUZoom = gl.GetUniformLocation(spriteProg, gl.Str("uZoom\x00"))
	r.spUResolution = gl.GetUniformLocation(spriteProg, gl.Str("uResolution\x00"))

	gl.UseProgram(glowProg)
	r.glowUCamera = gl.GetUniformLocation(glowProg, gl.Str("uCamera\x00"))
	r.glowUZoom = gl.GetUniformLocation(glowProg, gl.Str("uZoom\x00"))
	r.glowUResolution = gl.GetUniformLocation(glowProg, gl.Str("uResolution\x00"))

	gl.BindVertexArray(0)

	r.whiteTex = uploadTexture(1, 1, []uint8{255, 255, 255, 255})
	return r, nil
}

func (r *Renderer) Destroy() {
	for _, id := range []uint32{r.quadVBO, r.spriteVBO, r.textVBO} {
		if id != 0 {
			gl.DeleteBuffers(1, &id)
		}
	}
	for _, id := range []uint32{r.quadVAO, r.spriteVAO, r.textVAO} {
		if id != 0 {
			gl.DeleteVertexArrays(1, &id)
		}
	}
	for _, id := range []uint32{r.quadProg, r.spriteProg, r.glowProg, r.textProg} {
		if id != 0 {
			gl.DeleteProgram(id)
		}
	}
	texs := []uint32{r.whiteTex, r.fontTex}
	texs = append(texs, r.obstacleTex[:]...)
	texs = append(texs, r.decorTex[:]...)
	texs = append(texs, r.skinTex...)
	for _, id := range texs {
		if id != 0 {
			gl.DeleteTextures(1, &id)
		}
	}
}

// BeginFrame clears to the verge colour and sets the camera used by the
// world-space draw calls.
func (r *Renderer) BeginFrame(cam game.Camera, fbW, fbH int) {
	r.cam = cam
	r.fbW, r.fbH = fbW, fbH

	gl.Viewport(0, 0, int32(fbW), int32(fbH))
	cr, cg, cb := game.Palette.GrassDark.Floats()
	gl.ClearColor(cr, cg, cb, 1)
	gl.Clear(gl.COLOR_BUFFER_BIT)
	gl.ActiveTexture(gl.TEXTURE0)
}

// screenCam maps world units one-to-one onto framebuffer pixels, so the
// quad program can draw HUD panels.
func (r *Renderer) screenCam() game.Camera {
	return game.Camera{X: float64(r.fbW) / 2, Y: float64(r.fbH) / 2, Zoom: 1}
}

func (r *Renderer) drawQuad(tex uint32, rect game.Rect, col game.RGB, alpha float32, cam game.Camera) {
	gl.UseProgram(r.quadProg)
	gl.BindVertexArray(r.quadVAO)

	cx, cy := cam.EffectivePos()
	gl.Uniform2f(r.uCamera, float32(cx), float32(cy))
	gl.Uniform1f(r.uZoom, float32(cam.Zoom))
	gl.Uniform2f(r.uResolution, float32(r.fbW), float32(r.fbH))
	gl.Uniform4f(r.uRect, float32(rect.X), float32(rect.Y), float32(rect.W), float32(rect.H))
	cr, cg, cb := col.Floats()
	gl.Uniform4f(r.uTint, cr, cg, cb, alpha)

	gl.ActiveTexture(gl.TEXTURE0)
	gl.BindTexture(gl.TEXTURE_2D, tex)

	gl.Enable(gl.BLEND)
	gl.BlendFunc(gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA)
	gl.DrawArrays(gl.TRIANGLES, 0, 6)
	gl.Disable(gl.BLEND)
}

// DrawRect fills a world rect with a flat colour.
func (r *Renderer) DrawRect(rect game.Rect, col game.RGB) {
	r.drawQuad(r.whiteTex, rect, col, 1, r.cam)
}

// DrawTexture draws a texture over a world rect, tinted by col.
func (r *Renderer) DrawTexture(tex uint32, rect game.Rect, col game.RGB, alpha float32) {
	r.drawQuad(tex, rect, col, alpha, r.cam)
}

// DrawPanel fills a screen-space rect, in framebuffer pixels.
func (r *Renderer) DrawPanel(rect game.Rect, col game.RGB, alpha float32) {
	r.drawQuad(r.whiteTex, rect, col, alpha, r.screenCam())
}

// DrawScreenTexture draws a texture over a screen-space rect.
func (r *Renderer) DrawScreenTexture(tex uint32, rect game.Rect) {
	r.drawQuad(tex, rect, game.Palette.Text, 1, r.screenCam())
}
