package tray

import (
	"encoding/base64"
	"fmt"
	"strings"
	"sync"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/username/vault-tray/internal/host"
	"github.com/username/vault-tray/internal/settings"
	"go.uber.org/zap"
)

// Menu labels
const (
	LabelQuickNote = "Quick Note"
	LabelShow      = "Show Vault"
	LabelHide      = "Hide Vault"
	LabelRelaunch  = "Relaunch"
	LabelClose     = "Close Vault"
)

const vaultPlaceholder = "{{vault}}"

// Settings is the read side of the settings store
type Settings interface {
	Bool(opt settings.Option) bool
	String(opt settings.Option) string
}

// Actions are the operations reachable from the tray. Implementations must
// read live state on every call.
type Actions interface {
	QuickNote()
	ShowAll()
	HideAll()
	Relaunch()
	CloseVault()
}

// Controller owns at most one tray icon
type Controller struct {
	factory  host.TrayFactory
	settings Settings
	vault    host.Vault
	actions  Actions
	session  host.Tray
	icons    *lru.Cache[string, []byte]
	mu       sync.Mutex
	logger   *zap.Logger
}

// NewController creates a tray controller with no live icon
func NewController(factory host.TrayFactory, s Settings, vault host.Vault, actions Actions, logger *zap.Logger) *Controller {
	icons, err := lru.New[string, []byte](8)
	if err != nil {
		// only fails for a non-positive size
		panic(err)
	}

	return &Controller{
		factory:  factory,
		settings: s,
		vault:    vault,
		actions:  actions,
		icons:    icons,
		logger:   logger,
	}
}

// Rebuild tears down the current icon and, when enabled, creates a new one
// from the current settings. A menu that cannot be built leaves the icon
// without a menu.
func (c *Controller) Rebuild() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.destroyLocked()

	if !c.settings.Bool(settings.CreateTrayIcon) {
		return nil
	}

	c.logger.Info("Creating tray icon")

	icon := c.icon(c.settings.String(settings.TrayIconImage))
	session, err := c.factory.NewTray(icon)
	if err != nil {
		return fmt.Errorf("failed to create tray icon: %w", err)
	}
	c.session = session

	if err := c.attachMenu(session); err != nil {
		c.logger.Warn("Failed to set tray context menu", zap.Error(err))
	}

	session.SetTooltip(RenderTooltip(c.settings.String(settings.TrayIconTooltip), c.vault.Name()))
	session.OnClick(c.actions.ShowAll)

	return nil
}

// Destroy removes the current icon, if any
func (c *Controller) Destroy() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.destroyLocked()
}

// Active reports whether an icon is live
func (c *Controller) Active() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.session != nil
}

func (c *Controller) destroyLocked() {
	if c.session == nil {
		return
	}
	c.session.Destroy()
	c.session = nil
	c.logger.Debug("Tray icon destroyed")
}

func (c *Controller) attachMenu(session host.Tray) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("menu construction panicked: %v", r)
		}
	}()

	toggle := c.settings.String(settings.ToggleWindowFocusHotkey)
	items := []host.MenuItem{
		{Label: LabelQuickNote, Accelerator: c.settings.String(settings.QuickNoteHotkey), OnClick: c.actions.QuickNote},
		{Label: LabelShow, Accelerator: toggle, OnClick: c.actions.ShowAll},
		{Label: LabelHide, Accelerator: toggle, OnClick: c.actions.HideAll},
		{Separator: true},
		{Label: LabelRelaunch, OnClick: c.actions.Relaunch},
		{Label: LabelClose, OnClick: c.actions.CloseVault},
	}
	return session.SetMenu(items)
}

// icon decodes a data URL, falling back to the default icon
func (c *Controller) icon(dataURL string) []byte {
	if b, ok := c.icons.Get(dataURL); ok {
		return b
	}

	b, err := DecodeDataURL(dataURL)
	if err != nil {
		c.logger.Warn("Failed to decode tray icon, using default", zap.Error(err))
		if b, err = DecodeDataURL(settings.DefaultIcon); err != nil {
			return nil
		}
	}
	c.icons.Add(dataURL, b)
	return b
}

// DecodeDataURL returns the payload of a base64 data URL. A bare base64
// string is accepted too.
func DecodeDataURL(s string) ([]byte, error) {
	payload := strings.TrimSpace(s)
	if strings.HasPrefix(payload, "data:") {
		comma := strings.IndexByte(payload, ',')
		if comma < 0 {
			return nil, fmt.Errorf("malformed data URL")
		}
		if !strings.HasSuffix(payload[:comma], ";base64") {
			return nil, fmt.Errorf("data URL is not base64 encoded")
		}
		payload = payload[comma+1:]
	}
	if payload == "" {
		return nil, fmt.Errorf("empty image data")
	}

	b, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to decode image data: %w", err)
	}
	return b, nil
}

// RenderTooltip substitutes every {{vault}} placeholder with the vault name
func RenderTooltip(template, vaultName string) string {
	return strings.ReplaceAll(template, vaultPlaceholder, vaultName)
}
