package desktop

import (
	"fmt"
	"image"
	"image/color"

	"github.com/go-gl/gl/v4.1-core/gl"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"github.com/Korport/RacingGame/internal/game"
)

// Font atlas layout: printable ASCII in a 16 column grid of 7x13 cells.
const (
	fontFirst  = 32
	fontLast   = 126
	fontCols   = 16
	fontCellW  = 7
	fontCellH  = 13
	fontRows   = (fontLast - fontFirst + fontCols) / fontCols
	fontAtlasW = fontCols * fontCellW
	fontAtlasH = fontRows * fontCellH
)

// fontAtlas renders basicfont's 7x13 face into a white-on-transparent atlas.
func fontAtlas() *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, fontAtlasW, fontAtlasH))
	face := basicfont.Face7x13
	d := font.Drawer{Dst: img, Src: image.NewUniform(color.White), Face: face}
	for c := fontFirst; c <= fontLast; c++ {
		i := c - fontFirst
		x := (i % fontCols) * fontCellW
		y := (i / fontCols) * fontCellH
		d.Dot = fixed.P(x, y+face.Ascent)
		d.DrawString(string(rune(c)))
	}
	return img
}

// InitFont uploads the font atlas and sets up the text pipeline.
func (r *Renderer) InitFont() error {
	atlas := fontAtlas()

	var tex uint32
	gl.GenTextures(1, &tex)
	gl.BindTexture(gl.TEXTURE_2D, tex)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.NEAREST)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.NEAREST)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.CLAMP_TO_EDGE)
	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RGBA8,
		int32(fontAtlasW), int32(fontAtlasH), 0,
		gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(atlas.Pix))
	r.fontTex = tex

	prog, err := linkProgram(textVertSrc, textFragSrc)
	if err != nil {
		return fmt.Errorf("text program: %w", err)
	}
	r.textProg = prog
	gl.UseProgram(prog)
	r.textURes = gl.GetUniformLocation(prog, gl.Str("uResolution\x00"))
	r.textUFontTex = gl.GetUniformLocation(prog, gl.Str("uFontTex\x00"))
	gl.Uniform1i(r.textUFontTex, 2) // texture unit 2

	// Per-vertex pos(2) + uv(2) + color(4) = 8 floats.
	var vao, vbo uint32
	gl.GenVertexArrays(1, &vao)
	gl.GenBuffers(1, &vbo)
	gl.BindVertexArray(vao)
	gl.BindBuffer(gl.ARRAY_BUFFER, vbo)

	stride := int32(8 * 4)
	gl.BufferData(gl.ARRAY_BUFFER, 512*6*int(stride), nil, gl.STREAM_DRAW)
	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointer(0, 2, gl.FLOAT, false, stride, glOffset(0))
	gl.EnableVertexAttribArray(1)
	gl.VertexAttribPointer(1, 2, gl.FLOAT, false, stride, glOffset(2*4))
	gl.EnableVertexAttribArray(2)
	gl.VertexAttribPointer(2, 4, gl.FLOAT, false, stride, glOffset(4*4))

	r.textVAO = vao
	r.textVBO = vbo
	gl.BindVertexArray(0)
	return nil
}

// DrawChar queues one glyph as a textured quad in screen pixel space.
// Runes outside printable ASCII are skipped.
func (r *Renderer) DrawChar(ch rune, sx, sy, scale float32, col game.RGB) {
	if ch < fontFirst || ch > fontLast {
		return
	}
	i := int(ch) - fontFirst
	column := i % fontCols
	row := i / fontCols

	u0 := float32(column*fontCellW) / float32(fontAtlasW)
	v0 := float32(row*fontCellH) / float32(fontAtlasH)
	u1 := float32((column+1)*fontCellW) / float32(fontAtlasW)
	v1 := float32((row+1)*fontCellH) / float32(fontAtlasH)

	w := float32(fontCellW) * scale
	h := float32(fontCellH) * scale
	cr, cg, cb := col.Floats()

	// Two triangles: TL, TR, BL then TR, BR, BL.
	r.textBuf = append(r.textBuf,
		sx, sy, u0, v0, cr, cg, cb, 1,
		sx+w, sy, u1, v0, cr, cg, cb, 1,
		sx, sy+h, u0, v1, cr, cg, cb, 1,
		sx+w, sy, u1, v0, cr, cg, cb, 1,
		sx+w, sy+h, u1, v1, cr, cg, cb, 1,
		sx, sy+h, u0, v1, cr, cg, cb, 1,
	)
}

// DrawString queues text at screen pixel position (sx, sy).
func (r *Renderer) DrawString(text string, sx, sy int, scale float32, col game.RGB) {
	advance := float32(fontCellW) * scale
	x := float32(sx)
	for _, ch := range text {
		r.DrawChar(ch, x, float32(sy), scale, col)
		x += advance
	}
}

// DrawCentered queues text horizontally centred on cx.
func (r *Renderer) DrawCentered(text string, cx, sy int, scale float32, col game.RGB) {
	r.DrawString(text, cx-TextWidth(text, scale)/2, sy, scale, col)
}

// TextWidth returns the width in screen pixels of a single line.
func TextWidth(text string, scale float32) int {
	n := 0
	for range text {
		n++
	}
	return int(float32(n*fontCellW) * scale)
}

// FlushText draws all queued glyphs on top of the frame.
func (r *Renderer) FlushText() {
	if len(r.textBuf) == 0 {
		return
	}

	gl.UseProgram(r.textProg)
	gl.BindVertexArray(r.textVAO)
	gl.BindBuffer(gl.ARRAY_BUFFER, r.textVBO)
	gl.Uniform2f(r.textURes, float32(r.fbW), float32(r.fbH))

	gl.ActiveTexture(gl.TEXTURE2)
	gl.BindTexture(gl.TEXTURE_2D, r.fontTex)

	gl.Enable(gl.BLEND)
	gl.BlendFunc(gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA)

	count := len(r.textBuf) / 8
	gl.BufferData(gl.ARRAY_BUFFER, len(r.textBuf)*4, gl.Ptr(r.textBuf), gl.STREAM_DRAW)
	gl.DrawArrays(gl.TRIANGLES, 0, int32(count))

	gl.Disable(gl.BLEND)
	gl.ActiveTexture(gl.TEXTURE0)
	r.textBuf = r.textBuf[:0]
}
