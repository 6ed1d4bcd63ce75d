// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package render

import (
	"fmt"

	"github.com/gogpu/gpucontext"
)

// textureDestroyer is implemented by GPU textures that hold resources.
type textureDestroyer interface {
	Destroy()
}

// Present uploads the last finalized frame to the GPU host behind dc and
// draws it at the origin. The uploaded texture is reused while the target
// size is unchanged and the texture supports gpucontext.TextureUpdater.
//
// The dc parameter is typically obtained from gogpu.Context.AsTextureDrawer().
func (e *SoftwareEngine) Present(dc gpucontext.TextureDrawer) error {
	if err := e.check("Present", PhaseIdle); err != nil {
		return err
	}
	if e.frames == 0 {
		return ErrNoFrame
	}
	if dc == nil {
		return ErrInvalidDrawContext
	}

	w, h := e.target.Width(), e.target.Height()
	data := e.target.Pixels()

	if tex := e.presented; tex != nil && tex.Width() == w && tex.Height() == h {
		if u, ok := tex.(gpucontext.TextureUpdater); ok {
			if err := u.UpdateData(data); err != nil {
				return fmt.Errorf("render: update presented texture: %w", err)
			}
			return dc.DrawTexture(tex, 0, 0)
		}
	}

	creator := dc.TextureCreator()
	if creator == nil {
		return ErrInvalidDrawContext
	}
	tex, err := creator.NewTextureFromRGBA(w, h, data)
	if err != nil {
		return fmt.Errorf("render: NewTextureFromRGBA failed: %w", err)
	}
	// The pixmap holds premultiplied alpha.
	if pt, ok := tex.(interface{ SetPremultiplied(bool) }); ok {
		pt.SetPremultiplied(true)
	}
	e.releasePresented()
	e.presented = tex
	return dc.DrawTexture(tex, 0, 0)
}

func (e *SoftwareEngine) releasePresented() {
	if e.presented == nil {
		return
	}
	if d, ok := e.presented.(textureDestroyer); ok {
		d.Destroy()
	}
	e.presented = nil
}
