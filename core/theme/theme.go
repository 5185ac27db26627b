// Package theme holds the colour themes a student can pick and remembers the chosen one.
package theme

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"sync"

	pkgerrors "github.com/pkg/errors"

	"github.com/trezcool/campuslink/core"
)

// SelectedThemeKey is where the chosen theme is persisted.
const SelectedThemeKey = "selectedTheme"

// Color schemes
const (
	SchemeLight = "light"
	SchemeDark  = "dark"
)

var ErrThemeNotFound = errors.New("theme not found")

// Color components are in [0, 1].
type Color struct {
	R float64 `json:"red"`
	G float64 `json:"green"`
	B float64 `json:"blue"`
	A float64 `json:"alpha"`
}

func rgb(r, g, b float64) Color { return Color{R: r, G: g, B: b, A: 1} }

// Hex formats the colour as #rrggbb, ignoring alpha.
func (c Color) Hex() string {
	return fmt.Sprintf("#%02x%02x%02x", channel(c.R), channel(c.G), channel(c.B))
}

func channel(v float64) int {
	return int(math.Round(math.Max(0, math.Min(1, v)) * 255))
}

type Theme struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Primary    Color  `json:"primary_color"`
	Secondary  Color  `json:"secondary_color"`
	Accent     Color  `json:"accent_color"`
	Background Color  `json:"background_color"`
	IsDarkMode bool   `json:"is_dark_mode"`
}

func (t Theme) ColorScheme() string {
	if t.IsDarkMode {
		return SchemeDark
	}
	return SchemeLight
}

// Default is the theme in use until another one is applied.
var Default = Theme{
	ID:         "default",
	Name:       "Default",
	Primary:    rgb(0, .478, 1),
	Secondary:  rgb(.5, .5, .5),
	Accent:     rgb(1, .584, 0),
	Background: rgb(.95, .95, .95),
}

var catalog = []Theme{
	Default,
	{
		ID:         "dark",
		Name:       "Dark Mode",
		Primary:    rgb(0, .478, 1),
		Secondary:  rgb(.6, .6, .6),
		Accent:     rgb(1, .584, 0),
		Background: rgb(.1, .1, .1),
		IsDarkMode: true,
	},
	{
		ID:         "purple",
		Name:       "Purple",
		Primary:    rgb(.5, 0, .5),
		Secondary:  rgb(.7, .3, .7),
		Accent:     rgb(.8, .4, .8),
		Background: rgb(.98, .95, .98),
	},
	{
		ID:         "green",
		Name:       "Green",
		Primary:    rgb(0, .6, .2),
		Secondary:  rgb(.3, .7, .4),
		Accent:     rgb(.2, .8, .3),
		Background: rgb(.95, .98, .95),
	},
}

// Catalog returns a copy of the predefined themes, Default first.
func Catalog() []Theme {
	return append([]Theme(nil), catalog...)
}

// Find looks a theme up by id in the catalog.
func Find(id string) (Theme, error) {
	for _, t := range catalog {
		if t.ID == id {
			return t, nil
		}
	}
	return Theme{}, ErrThemeNotFound
}

// Manager tracks the current theme of one device/session.
type Manager struct {
	store core.KVStore
	key   string

	mu      sync.RWMutex
	current Theme
}

// NewManager starts on Default; call Load to restore a persisted choice.
// The theme is stored under SelectedThemeKey, or under key[0] when given.
func NewManager(store core.KVStore, key ...string) *Manager {
	k := SelectedThemeKey
	if len(key) > 0 && key[0] != "" {
		k = key[0]
	}
	return &Manager{store: store, key: k, current: Default}
}

func (m *Manager) Current() Theme {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.current
}

func (m *Manager) Available() []Theme { return Catalog() }

func (m *Manager) ColorScheme() string { return m.Current().ColorScheme() }

// Apply switches to the catalog theme `id` and persists it.
func (m *Manager) Apply(ctx context.Context, id string) (Theme, error) {
	t, err := Find(id)
	if err != nil {
		return Theme{}, err
	}
	data, err := json.Marshal(t)
	if err != nil {
		return Theme{}, pkgerrors.Wrap(err, "encoding theme")
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.store.Set(ctx, m.key, data); err != nil {
		return Theme{}, pkgerrors.Wrap(err, "saving theme")
	}
	m.current = t
	return t, nil
}

// Load restores the persisted theme. Nothing stored, or an unreadable blob, leaves Default.
func (m *Manager) Load(ctx context.Context) (Theme, error) {
	data, err := m.store.Get(ctx, m.key)
	if err != nil {
		if pkgerrors.Cause(err) == core.ErrKeyNotFound {
			return m.Current(), nil
		}
		return Theme{}, pkgerrors.Wrap(err, "reading theme")
	}

	var t Theme
	if err := json.Unmarshal(data, &t); err != nil || t.ID == "" {
		return m.Current(), nil
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.current = t
	return t, nil
}
