package icons

import (
	"testing"

	"github.com/eureka-app/eureka-tui/internal/page"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGlyphs_Replace(t *testing.T) {
	doc := page.New()
	slot := doc.CreateElement("div")
	require.NoError(t, slot.SetInnerHTML(`<i data-icon="check-circle"></i><span>ok</span>`))
	doc.Body.AppendChild(slot)

	New(SetUnicode).Replace(doc.Body)

	assert.Equal(t, "✓ok", slot.TextContent())
	rendered, ok := slot.FirstChild().Attr("data-icon-rendered")
	assert.True(t, ok)
	assert.Equal(t, "check-circle", rendered)
}

func TestGlyphs_ReplaceIsIdempotent(t *testing.T) {
	doc := page.New()
	slot := doc.CreateElement("div")
	require.NoError(t, slot.SetInnerHTML(`<i data-icon="info"></i>`))

	g := New(SetUnicode)
	g.Replace(slot)
	g.Replace(slot)

	assert.Equal(t, "ℹ", slot.TextContent())
}

func TestGlyphs_ReplaceRerendersChangedName(t *testing.T) {
	doc := page.New()
	icon := doc.CreateElement("i")
	icon.SetAttr("data-icon", "sun")

	g := New(SetUnicode)
	g.Replace(icon)
	icon.SetAttr("data-icon", "moon")
	g.Replace(icon)

	assert.Equal(t, "☾", icon.TextContent())
}

func TestGlyphs_Lookup(t *testing.T) {
	g := New(SetNerd)

	glyph, ok := g.Lookup("alert-triangle")
	assert.True(t, ok)
	assert.Equal(t, "\uf071", glyph)

	glyph, ok = g.Lookup("no-such-icon")
	assert.False(t, ok)
	assert.Equal(t, "\uf05a", glyph)
}

func TestGlyphs_ReplaceNilRoot(t *testing.T) {
	assert.NotPanics(t, func() { New(SetUnicode).Replace(nil) })
}
