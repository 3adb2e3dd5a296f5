package update

import "github.com/sandeepkv93/dhikr/internal/views"

func (m Model) renderCommandPalette() string {
	return views.RenderCommandPalette(m.Palette.Active, m.Palette.Input)
}
