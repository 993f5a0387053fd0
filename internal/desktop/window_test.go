package desktop

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/username/vault-tray/internal/host"
	"go.uber.org/zap"
)

func TestMainWindow_StateBeforeStartup(t *testing.T) {
	w := NewMainWindow(true, zap.NewNop())

	assert.False(t, w.IsVisible())
	assert.NotEmpty(t, w.ID())

	w.Show()
	w.Focus()
	assert.True(t, w.IsVisible())
	assert.True(t, w.IsFocused())

	w.Minimize()
	assert.True(t, w.IsMinimized())
	assert.False(t, w.IsVisible())
	assert.False(t, w.IsFocused())

	w.Show()
	w.Hide()
	assert.False(t, w.IsVisible())
	assert.False(t, w.IsMinimized())
}

func TestMainWindow_ClosedListenersRunOnce(t *testing.T) {
	w := NewMainWindow(false, zap.NewNop())

	calls := 0
	w.OnClosed(func() { calls++ })

	w.Destroy()
	w.MarkClosed()

	assert.Equal(t, 1, calls)
	assert.False(t, w.IsVisible())
}

func TestMainWindow_OpenNoteBeforeStartup(t *testing.T) {
	w := NewMainWindow(false, zap.NewNop())

	assert.ErrorIs(t, w.OpenNote("a.md"), host.ErrNotSupported)
}

func TestWindows_CloseHandler(t *testing.T) {
	main := NewMainWindow(false, zap.NewNop())
	source := NewWindows(main)
	ctx := context.Background()

	assert.False(t, source.BeforeClose(ctx), "no handler lets the window close")

	var seen host.Window
	remove := source.SetCloseHandler(func(w host.Window) bool {
		seen = w
		return true
	})
	assert.True(t, source.BeforeClose(ctx))
	assert.Equal(t, main.ID(), seen.ID())

	removeNewer := source.SetCloseHandler(func(host.Window) bool { return true })
	remove()
	assert.True(t, source.BeforeClose(ctx), "a stale remove keeps the newer handler")

	removeNewer()
	assert.False(t, source.BeforeClose(ctx))
}
