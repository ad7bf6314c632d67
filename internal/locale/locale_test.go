// ABOUTME: Tests for the locale store
// ABOUTME: Checks direction derivation, persistence and rehydration side effects

package locale

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Moshe-ship/faris-ai-saas/internal/logger"
	"github.com/Moshe-ship/faris-ai-saas/internal/statefile"
)

type applied struct {
	tag Tag
	dir Direction
}

type recordingSurface struct {
	calls []applied
}

func (r *recordingSurface) ApplyLocale(tag Tag, dir Direction) {
	r.calls = append(r.calls, applied{tag, dir})
}

func (r *recordingSurface) last() applied {
	return r.calls[len(r.calls)-1]
}

func TestOpenDefaultsToPrimary(t *testing.T) {
	surface := &recordingSurface{}
	s := Open(nil, surface, logger.Discard())

	assert.Equal(t, Arabic, s.Current())
	assert.Equal(t, RTL, s.Direction())
	require.Len(t, surface.calls, 1)
	assert.Equal(t, applied{Arabic, RTL}, surface.last())
}

func TestSetLocalePersistsAndApplies(t *testing.T) {
	file := statefile.New(t.TempDir(), nil)
	surface := &recordingSurface{}
	s := Open(file, surface, logger.Discard())

	require.NoError(t, s.SetLocale(English))

	assert.Equal(t, English, s.Current())
	assert.Equal(t, applied{English, LTR}, surface.last())
	stored, ok, err := file.Get(Key)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "en", stored)
}

func TestRehydrateMatchesExplicitSet(t *testing.T) {
	dir := t.TempDir()
	setSurface := &recordingSurface{}
	first := Open(statefile.New(dir, nil), setSurface, logger.Discard())
	require.NoError(t, first.SetLocale(Secondary))

	loadSurface := &recordingSurface{}
	second := Open(statefile.New(dir, nil), loadSurface, logger.Discard())

	assert.Equal(t, first.Current(), second.Current())
	assert.Equal(t, setSurface.last(), loadSurface.last())
	assert.Equal(t, first.T("nav.leads"), second.T("nav.leads"))
}

func TestUnrecognizedStoredValueFallsBack(t *testing.T) {
	file := statefile.New(t.TempDir(), nil)
	require.NoError(t, file.Set(Key, "klingon"))

	s := Open(file, nil, logger.Discard())
	assert.Equal(t, Default, s.Current())
}

func TestSetLocaleRejectsUnsupported(t *testing.T) {
	surface := &recordingSurface{}
	s := Open(nil, surface, logger.Discard())

	assert.Error(t, s.SetLocale("fr"))
	assert.Equal(t, Arabic, s.Current())
	assert.Len(t, surface.calls, 1)
}

func TestTranslate(t *testing.T) {
	s := Open(nil, nil, logger.Discard())
	assert.Equal(t, "تسجيل الدخول", s.T("auth.login"))

	require.NoError(t, s.SetLocale(English))
	assert.Equal(t, "Login", s.T("auth.login"))
	assert.Equal(t, "no.such.key", s.T("no.such.key"))
}

func TestCatalogsCoverSameKeys(t *testing.T) {
	for key := range arabicMessages {
		_, ok := englishMessages[key]
		assert.True(t, ok, "missing English message for %s", key)
	}
	assert.Len(t, englishMessages, len(arabicMessages))
}

func TestToggle(t *testing.T) {
	s := Open(nil, nil, logger.Discard())
	assert.Equal(t, English, s.Toggle())
	assert.Equal(t, Arabic, s.Toggle())
}

func TestSetSurfaceAppliesCurrent(t *testing.T) {
	s := Open(nil, nil, logger.Discard())
	require.NoError(t, s.SetLocale(English))

	surface := &recordingSurface{}
	s.SetSurface(surface)
	assert.Equal(t, []applied{{English, LTR}}, surface.calls)
}

func TestSurfaceMayReadStoreDuringApply(t *testing.T) {
	var s *Store
	var seen Tag
	s = Open(nil, nil, logger.Discard())
	s.SetSurface(SurfaceFunc(func(tag Tag, dir Direction) { seen = s.Current() }))

	require.NoError(t, s.SetLocale(English))
	assert.Equal(t, English, seen)
}

func TestParse(t *testing.T) {
	tests := []struct {
		in      string
		want    Tag
		wantErr bool
	}{
		{"ar", Arabic, false},
		{"en", English, false},
		{"EN", English, false},
		{"primary", Arabic, false},
		{"secondary", English, false},
		{"en-US", English, false},
		{"ar-SA", Arabic, false},
		{"fr", "", true},
		{"", "", true},
		{"not a tag!", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := Parse(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDirection(t *testing.T) {
	assert.Equal(t, RTL, Arabic.Direction())
	assert.Equal(t, LTR, English.Direction())
	assert.Equal(t, RTL, Tag("he").Direction())
}
