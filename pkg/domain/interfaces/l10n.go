package interfaces

// Localizer renders localized message templates
type Localizer interface {
	// Render substitutes [name] placeholders in the template identified by key
	Render(key string, vars map[string]string) string
}
