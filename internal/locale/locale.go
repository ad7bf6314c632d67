// ABOUTME: Active display language with derived text direction
// ABOUTME: Persists the choice and applies it to the rendering surface on set and on load

package locale

import (
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/message/catalog"
)

// Key is the durable storage key for the language choice
const Key = "faris-language"

// Tag identifies a supported language
type Tag string

const (
	Arabic  Tag = "ar"
	English Tag = "en"

	Primary   = Arabic
	Secondary = English
	Default   = Primary
)

// Supported lists the languages in display order
var Supported = []Tag{Primary, Secondary}

var supportedTags = []language.Tag{language.Arabic, language.English}

var matcher = language.NewMatcher(supportedTags)

// Direction is the text direction of a language
type Direction string

const (
	LTR Direction = "ltr"
	RTL Direction = "rtl"
)

// rtlScripts are the scripts written right to left
var rtlScripts = map[string]bool{
	"Arab": true,
	"Hebr": true,
	"Syrc": true,
	"Thaa": true,
	"Nkoo": true,
	"Adlm": true,
	"Rohg": true,
}

// String returns the tag as a BCP-47 code
func (t Tag) String() string {
	return string(t)
}

// Name is the language's name in its own script
func (t Tag) Name() string {
	switch t {
	case Arabic:
		return "العربية"
	case English:
		return "English"
	default:
		return string(t)
	}
}

// Direction derives text direction from the tag's script
func (t Tag) Direction() Direction {
	script, _ := language.Make(string(t)).Script()
	if rtlScripts[script.String()] {
		return RTL
	}
	return LTR
}

// Parse accepts a supported tag, a role name, or any BCP-47 variant of a
// supported language (en-US, ar-SA).
func Parse(s string) (Tag, error) {
	s = strings.TrimSpace(strings.ToLower(s))
	switch s {
	case "primary":
		return Primary, nil
	case "secondary":
		return Secondary, nil
	case "":
		return "", fmt.Errorf("empty language")
	}

	tag, err := language.Parse(s)
	if err != nil {
		return "", fmt.Errorf("invalid language %q: %w", s, err)
	}
	_, index, confidence := matcher.Match(tag)
	if confidence < language.High {
		return "", fmt.Errorf("unsupported language %q (supported: ar, en)", s)
	}
	return Supported[index], nil
}

// Surface is the rendering environment a locale change is applied to
type Surface interface {
	ApplyLocale(tag Tag, dir Direction)
}

// SurfaceFunc adapts a function to Surface
type SurfaceFunc func(tag Tag, dir Direction)

func (f SurfaceFunc) ApplyLocale(tag Tag, dir Direction) {
	f(tag, dir)
}

// Backend persists the language choice
type Backend interface {
	Get(key string) (string, bool, error)
	Set(key, value string) error
}

// Store holds the active language
type Store struct {
	backend Backend
	logger  *slog.Logger
	catalog *catalog.Builder

	mu      sync.RWMutex
	tag     Tag
	printer *message.Printer
	surface Surface
}

// Open rehydrates the language from backend and applies it to surface.
// A missing or unrecognized stored value yields Default.
func Open(backend Backend, surface Surface, logger *slog.Logger) *Store {
	if logger == nil {
		logger = slog.Default()
	}
	s := &Store{
		backend: backend,
		logger:  logger,
		catalog: newCatalog(),
		surface: surface,
	}

	tag := Default
	if backend != nil {
		stored, ok, err := backend.Get(Key)
		switch {
		case err != nil:
			logger.Warn("language unreadable, using default", "error", err)
		case ok:
			if parsed, err := Parse(stored); err == nil {
				tag = parsed
			} else {
				logger.Warn("ignoring stored language", "value", stored)
			}
		}
	}

	s.apply(tag)
	return s
}

// SetSurface replaces the surface and applies the current language to it
func (s *Store) SetSurface(surface Surface) {
	s.mu.Lock()
	s.surface = surface
	tag := s.tag
	s.mu.Unlock()
	s.apply(tag)
}

// SetLocale switches the active language, persists it and applies it
func (s *Store) SetLocale(tag Tag) error {
	parsed, err := Parse(string(tag))
	if err != nil {
		return err
	}

	s.apply(parsed)

	if s.backend != nil {
		if err := s.backend.Set(Key, string(parsed)); err != nil {
			s.logger.Warn("failed to persist language", "error", err)
		}
	}
	s.logger.Debug("Language changed", "language", parsed)
	return nil
}

// Current returns the active language
func (s *Store) Current() Tag {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.tag
}

// Direction returns the active text direction
func (s *Store) Direction() Direction {
	return s.Current().Direction()
}

// Toggle switches between the primary and secondary language
func (s *Store) Toggle() Tag {
	next := Primary
	if s.Current() == Primary {
		next = Secondary
	}
	// next is always supported
	_ = s.SetLocale(next)
	return next
}

// T translates key into the active language, falling back to the key itself
func (s *Store) T(key string) string {
	s.mu.RLock()
	p := s.printer
	s.mu.RUnlock()
	return p.Sprintf(key)
}

// apply switches the printer and runs the surface side effect outside the lock
func (s *Store) apply(tag Tag) {
	s.mu.Lock()
	s.tag = tag
	s.printer = message.NewPrinter(language.Make(string(tag)), message.Catalog(s.catalog))
	surface := s.surface
	s.mu.Unlock()

	if surface != nil {
		surface.ApplyLocale(tag, tag.Direction())
	}
}

func newCatalog() *catalog.Builder {
	b := catalog.NewBuilder()
	register := func(tag language.Tag, messages map[string]string) {
		for key, msg := range messages {
			// Tables are static; SetString only fails on malformed tags
			_ = b.SetString(tag, key, msg)
		}
	}
	register(language.Arabic, arabicMessages)
	register(language.English, englishMessages)
	return b
}
