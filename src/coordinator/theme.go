package coordinator

import (
	"stock-dashboard/src/helpers"
	"stock-dashboard/src/models"
)

var (
	darkRootClasses  = []string{"dark"}
	darkBodyClasses  = []string{"bg-gray-900", "text-gray-300"}
	lightBodyClasses = []string{"bg-gray-100", "text-gray-800"}
)

// ThemeClasses returns the classes a client toggles on the document root and
// body when theme is applied.
func ThemeClasses(theme models.MTheme) models.MThemeClasses {
	if theme == models.ThemeDark {
		return models.MThemeClasses{
			RootAdd:    clone(darkRootClasses),
			RootRemove: []string{},
			BodyAdd:    clone(darkBodyClasses),
			BodyRemove: clone(lightBodyClasses),
		}
	}
	return models.MThemeClasses{
		RootAdd:    []string{},
		RootRemove: clone(darkRootClasses),
		BodyAdd:    clone(lightBodyClasses),
		BodyRemove: clone(darkBodyClasses),
	}
}

// ParseTheme validates a theme name.
func ParseTheme(name string) (models.MTheme, error) {
	switch t := models.MTheme(name); t {
	case models.ThemeLight, models.ThemeDark:
		return t, nil
	default:
		return "", helpers.NewValidationError("unknown theme %q", name)
	}
}

func clone(s []string) []string {
	out := make([]string, len(s))
	copy(out, s)
	return out
}
