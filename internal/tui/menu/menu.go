// ABOUTME: Language selection menu
// ABOUTME: Lets the user pick the display language with a huh select

package menu

import (
	"fmt"

	"github.com/charmbracelet/huh"

	"github.com/Moshe-ship/faris-ai-saas/internal/locale"
)

type option struct {
	label string
	value locale.Tag
}

// Menu represents the language selection menu
type Menu struct {
	title    string
	options  []option
	selected locale.Tag
}

// New creates a language menu with current preselected. title is shown above the options.
func New(title string, current locale.Tag) *Menu {
	m := &Menu{title: title, selected: current}
	for _, tag := range locale.Supported {
		label := tag.Name()
		if tag == current {
			label = fmt.Sprintf("%s (%s) ✓", label, tag)
		} else {
			label = fmt.Sprintf("%s (%s)", label, tag)
		}
		m.options = append(m.options, option{label: label, value: tag})
	}
	return m
}

// Options returns the option labels in display order
func (m *Menu) Options() []string {
	labels := make([]string, len(m.options))
	for i, opt := range m.options {
		labels[i] = opt.label
	}
	return labels
}

// Selected returns the currently selected language
func (m *Menu) Selected() locale.Tag {
	return m.selected
}

// Run displays the menu and returns the selected language
func (m *Menu) Run() (locale.Tag, error) {
	var options []huh.Option[locale.Tag]
	for _, opt := range m.options {
		options = append(options, huh.NewOption(opt.label, opt.value))
	}

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[locale.Tag]().
				Title(m.title).
				Options(options...).
				Value(&m.selected),
		),
	).WithTheme(huh.ThemeBase())

	if err := form.Run(); err != nil {
		return "", err
	}
	return m.selected, nil
}
