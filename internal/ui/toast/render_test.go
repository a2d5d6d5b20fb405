package toast

import (
	"testing"

	"github.com/eureka-app/eureka-tui/internal/types"
	"github.com/eureka-app/eureka-tui/internal/ui/styles"
	"github.com/stretchr/testify/assert"
)

func TestRenderer_Render_NilOrHidden(t *testing.T) {
	renderer := NewRenderer(styles.New())

	assert.Equal(t, "", renderer.Render(nil, 0, 80), "Nil element should return empty string")

	n, _, _ := newTestNotifier()
	n.Notify("pending", types.ToastInfo)
	assert.Equal(t, "", renderer.Render(n.Element(), 0, 80), "Hidden toast should return empty string")
}

func TestRenderer_Render_Shown(t *testing.T) {
	renderer := NewRenderer(styles.New())
	n, _, rec := newTestNotifier()

	n.Notify("Test message", types.ToastSuccess)
	reveal, _ := lastOf[revealMsg](t, rec)
	n.Update(reveal)

	result := renderer.Render(n.Element(), n.Offset(), 80)

	assert.NotEmpty(t, result, "Should render toast")
	assert.Contains(t, result, "Test message", "Should contain toast message")
	assert.Contains(t, result, "✓", "Should contain the success icon")
}

func TestRenderer_Render_DifferentKinds(t *testing.T) {
	renderer := NewRenderer(styles.New())

	for _, kind := range types.ToastKinds {
		t.Run(string(kind), func(t *testing.T) {
			n, _, rec := newTestNotifier()
			n.Notify("Test "+string(kind), kind)
			reveal, _ := lastOf[revealMsg](t, rec)
			n.Update(reveal)

			result := renderer.Render(n.Element(), 0, 80)

			assert.Contains(t, result, "Test "+string(kind))
		})
	}
}

func TestRenderer_Render_NarrowScreen(t *testing.T) {
	renderer := NewRenderer(styles.New())
	n, _, rec := newTestNotifier()
	n.Notify("narrow", types.ToastInfo)
	reveal, _ := lastOf[revealMsg](t, rec)
	n.Update(reveal)

	assert.Contains(t, renderer.Render(n.Element(), 0, 20), "narrow")
}
