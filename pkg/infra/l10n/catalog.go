package l10n

import (
	_ "embed"
	"os"
	"strings"

	"github.com/m-mizutani/goerr/v2"
	"github.com/pelletier/go-toml/v2"
)

//go:embed en.toml
var defaultCatalog []byte

type catalogFile struct {
	Language string            `toml:"language"`
	Messages map[string]string `toml:"messages"`
}

// Catalog renders message templates with [name] placeholders. Keys missing
// from a loaded catalog fall back to the embedded English catalog.
type Catalog struct {
	language string
	messages map[string]string
}

// Option configures a Catalog
type Option func(*options)

type options struct {
	path string
}

// WithFile overlays messages from a TOML catalog file on the default catalog
func WithFile(path string) Option {
	return func(o *options) {
		o.path = path
	}
}

// New loads the embedded catalog and applies options
func New(opts ...Option) (*Catalog, error) {
	var o options
	for _, opt := range opts {
		opt(&o)
	}

	base, err := parse(defaultCatalog)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to parse embedded catalog")
	}

	c := &Catalog{
		language: base.Language,
		messages: base.Messages,
	}

	if o.path != "" {
		raw, err := os.ReadFile(o.path)
		if err != nil {
			return nil, goerr.Wrap(err, "failed to read catalog file", goerr.V("path", o.path))
		}
		overlay, err := parse(raw)
		if err != nil {
			return nil, goerr.Wrap(err, "failed to parse catalog file", goerr.V("path", o.path))
		}
		if overlay.Language != "" {
			c.language = overlay.Language
		}
		for key, msg := range overlay.Messages {
			c.messages[key] = msg
		}
	}

	return c, nil
}

func parse(raw []byte) (*catalogFile, error) {
	var f catalogFile
	if err := toml.Unmarshal(raw, &f); err != nil {
		return nil, err
	}
	if f.Messages == nil {
		f.Messages = map[string]string{}
	}
	return &f, nil
}

// Language returns the catalog's language name
func (c *Catalog) Language() string {
	return c.language
}

// Render returns the template for key with placeholders substituted.
// An unknown key renders as the key itself.
func (c *Catalog) Render(key string, vars map[string]string) string {
	tmpl, ok := c.messages[key]
	if !ok {
		return key
	}
	if len(vars) == 0 {
		return tmpl
	}

	pairs := make([]string, 0, len(vars)*2)
	for name, value := range vars {
		pairs = append(pairs, "["+name+"]", value)
	}
	return strings.NewReplacer(pairs...).Replace(tmpl)
}
