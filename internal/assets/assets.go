package assets

// defaultLoader is the package-level embedded loader.
var defaultLoader = NewEmbeddedLoader()

// LoadStyle loads a CSS file by name using the embedded loader.
func LoadStyle(name string) (string, error) {
	return defaultLoader.LoadStyle(name)
}

// LoadTemplate loads an HTML template by name using the embedded loader.
func LoadTemplate(name string) (string, error) {
	return defaultLoader.LoadTemplate(name)
}

// DefaultTemplate returns the built-in document template.
// It panics if the embedded file is missing, which is a build defect.
func DefaultTemplate() string {
	tmpl, err := defaultLoader.LoadTemplate(DefaultTemplateName)
	if err != nil {
		panic(err)
	}
	return tmpl
}
