package quicknote

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/username/vault-tray/internal/host"
	"github.com/username/vault-tray/internal/settings"
	"github.com/username/vault-tray/pkg/dateutil"
	"go.uber.org/zap"
	"golang.org/x/text/unicode/norm"
)

var (
	separatorRun = regexp.MustCompile(`[\\/]+`)
	illegalChars = regexp.MustCompile(`[*"\\<>:|?]`)
)

// Settings is the read side of the settings store
type Settings interface {
	String(opt settings.Option) string
}

// Shower brings every window on screen
type Shower interface {
	ShowAll()
}

// Creator creates quick notes in the vault
type Creator struct {
	settings Settings
	vault    host.Vault
	windows  Shower
	now      func() time.Time
	logger   *zap.Logger
}

// NewCreator creates a quick note creator
func NewCreator(s Settings, vault host.Vault, windows Shower, logger *zap.Logger) *Creator {
	return &Creator{
		settings: s,
		vault:    vault,
		windows:  windows,
		now:      time.Now,
		logger:   logger,
	}
}

// WithClock overrides the time source
func (c *Creator) WithClock(now func() time.Time) *Creator {
	c.now = now
	return c
}

// Create creates a note named after the current time in the configured
// location, opens it and shows every window.
func (c *Creator) Create() error {
	path := Path(
		c.settings.String(settings.QuickNoteLocation),
		c.settings.String(settings.QuickNoteDateFormat),
		c.now(),
	)

	c.logger.Info("Creating quick note", zap.String("path", path))

	err := c.vault.CreateAndOpen(path)
	if err != nil {
		err = fmt.Errorf("failed to create quick note %q: %w", path, err)
	}
	c.windows.ShowAll()
	return err
}

// Path builds the vault path of a quick note: location joined with the
// formatted date, normalized, with characters illegal in file names
// replaced by "-".
func Path(location, pattern string, now time.Time) string {
	if pattern == "" {
		pattern = settings.DefaultDateFormat
	}
	name := NormalizePath(location + "/" + dateutil.FormatMoment(now, pattern))
	return illegalChars.ReplaceAllString(name, "-")
}

// NormalizePath collapses separators to single forward slashes, trims
// leading and trailing slashes, turns non-breaking spaces into spaces and
// applies Unicode NFC.
func NormalizePath(p string) string {
	p = separatorRun.ReplaceAllString(p, "/")
	p = strings.Trim(p, "/")
	p = strings.NewReplacer("\u00a0", " ", "\u202f", " ").Replace(p)
	if p == "" {
		return "/"
	}
	return norm.NFC.String(p)
}
