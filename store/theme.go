package store

import (
	"fmt"
	"strings"
	"sync"

	"github.com/kbukum/storefront/logger"
	"github.com/kbukum/storefront/storage"
)

// Theme is the presentation theme.
type Theme string

const (
	ThemeLight Theme = "light"
	ThemeDark  Theme = "dark"
)

// ParseTheme accepts "light" or "dark", case-insensitively.
func ParseTheme(s string) (Theme, error) {
	switch t := Theme(strings.ToLower(strings.TrimSpace(s))); t {
	case ThemeLight, ThemeDark:
		return t, nil
	default:
		return "", fmt.Errorf("unknown theme %q (want light or dark)", s)
	}
}

// Presenter mirrors the theme onto whatever renders output.
type Presenter interface {
	SetDark(dark bool)
}

// PresenterFunc adapts a function to Presenter.
type PresenterFunc func(dark bool)

func (f PresenterFunc) SetDark(dark bool) { f(dark) }

// ThemeStore holds the theme, persisted under storage.KeyTheme.
// Changes are serialized by mu; storage and the presenter are called
// outside the state lock, so a presenter may read Get.
type ThemeStore struct {
	mu        sync.Mutex
	state     *Store[Theme]
	st        storage.Storage
	presenter Presenter
	log       *logger.Logger
}

// NewThemeStore loads the persisted theme, defaulting to light, and
// applies it to presenter. presenter may be nil.
func NewThemeStore(st storage.Storage, presenter Presenter, log *logger.Logger) *ThemeStore {
	log = log.WithComponent("theme_store")
	if presenter == nil {
		presenter = PresenterFunc(func(bool) {})
	}

	ctx, cancel := persistContext()
	defer cancel()
	theme := ThemeLight
	if raw, err := st.Get(ctx, storage.KeyTheme); err == nil {
		if t, perr := ParseTheme(raw); perr == nil {
			theme = t
		} else {
			log.Warn("ignoring stored theme", logger.Fields(logger.FieldKey, storage.KeyTheme, "value", raw))
		}
	} else if !storage.IsNotFound(err) {
		log.WithError(err).Warn("failed to read theme")
	}

	presenter.SetDark(theme == ThemeDark)
	return &ThemeStore{state: New(theme), st: st, presenter: presenter, log: log}
}

func (t *ThemeStore) Get() Theme { return t.state.Get() }

func (t *ThemeStore) Subscribe(fn Listener[Theme]) func() { return t.state.Subscribe(fn) }

// SetTheme persists theme, updates the presenter, then publishes.
func (t *ThemeStore) SetTheme(theme Theme) error {
	if _, err := ParseTheme(string(theme)); err != nil {
		return err
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	err := t.apply(theme)
	t.state.Set(theme)
	return err
}

// Toggle switches between light and dark and returns the new theme.
func (t *ThemeStore) Toggle() (Theme, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	next := ThemeDark
	if t.state.Get() == ThemeDark {
		next = ThemeLight
	}
	err := t.apply(next)
	t.state.Set(next)
	return next, err
}

func (t *ThemeStore) apply(theme Theme) error {
	ctx, cancel := persistContext()
	defer cancel()
	var err error
	if err = t.st.Set(ctx, storage.KeyTheme, string(theme)); err != nil {
		t.log.WithError(err).Warn("failed to persist theme", logger.Fields(logger.FieldKey, storage.KeyTheme))
		err = fmt.Errorf("persist theme: %w", err)
	}
	t.presenter.SetDark(theme == ThemeDark)
	return err
}
