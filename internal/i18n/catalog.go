package i18n

import (
	"embed"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strings"

	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"

	"galeri_app_echo/internal/navigation"
)

// Catalogue namespaces.
const (
	NamespaceNavigation = "navigation"
	NamespacePages      = "pages"
)

//go:embed locales/*.yaml
var localeFS embed.FS

// bundle maps namespace -> key -> text for one locale.
type bundle map[string]map[string]string

// Catalog holds every translation bundle. It is loaded once and read-only
// afterwards.
type Catalog struct {
	defaultLocale string
	bundles       map[string]bundle
	locales       []string
	matcher       language.Matcher
}

// Load reads the catalogues embedded in the binary.
func Load(defaultLocale string) (*Catalog, error) {
	sub, err := fs.Sub(localeFS, "locales")
	if err != nil {
		return nil, err
	}
	return LoadFS(sub, defaultLocale)
}

// LoadFS reads every <locale>.yaml at the root of fsys.
func LoadFS(fsys fs.FS, defaultLocale string) (*Catalog, error) {
	files, err := fs.Glob(fsys, "*.yaml")
	if err != nil {
		return nil, err
	}
	sort.Strings(files)

	c := &Catalog{
		defaultLocale: defaultLocale,
		bundles:       make(map[string]bundle, len(files)),
	}
	for _, file := range files {
		data, err := fs.ReadFile(fsys, file)
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", file, err)
		}
		var b bundle
		if err := yaml.Unmarshal(data, &b); err != nil {
			return nil, fmt.Errorf("parse %s: %w", file, err)
		}
		locale := strings.TrimSuffix(path.Base(file), ".yaml")
		if _, err := language.Parse(locale); err != nil {
			return nil, fmt.Errorf("catalogue %s: invalid locale: %w", file, err)
		}
		c.bundles[locale] = b
		c.locales = append(c.locales, locale)
	}

	if _, ok := c.bundles[defaultLocale]; !ok {
		return nil, fmt.Errorf("no catalogue for default locale %q", defaultLocale)
	}

	// The default locale goes first so the matcher falls back to it.
	tags := []language.Tag{language.Make(defaultLocale)}
	for _, locale := range c.locales {
		if locale != defaultLocale {
			tags = append(tags, language.Make(locale))
		}
	}
	c.matcher = language.NewMatcher(tags)
	c.locales = make([]string, len(tags))
	for i, tag := range tags {
		c.locales[i] = tag.String()
	}

	return c, nil
}

// DefaultLocale returns the locale used when nothing else matches.
func (c *Catalog) DefaultLocale() string {
	return c.defaultLocale
}

// Locales returns the supported locales, default first.
func (c *Catalog) Locales() []string {
	out := make([]string, len(c.locales))
	copy(out, c.locales)
	return out
}

// Text looks key up in locale, then in the default locale. It returns ""
// when neither has it.
func (c *Catalog) Text(locale, namespace, key string) string {
	if text := c.bundles[locale][namespace][key]; text != "" {
		return text
	}
	return c.bundles[c.defaultLocale][namespace][key]
}

// Translator binds a locale and namespace for the breadcrumb label resolver.
func (c *Catalog) Translator(locale, namespace string) navigation.Translator {
	return func(key string) string {
		return c.Text(locale, namespace, key)
	}
}

// Negotiate picks a supported locale. Each candidate may be a single tag
// ("id") or an Accept-Language header; the first usable one wins.
func (c *Catalog) Negotiate(candidates ...string) string {
	for _, candidate := range candidates {
		if strings.TrimSpace(candidate) == "" {
			continue
		}
		tags, _, err := language.ParseAcceptLanguage(candidate)
		if err != nil || len(tags) == 0 {
			continue
		}
		_, index, confidence := c.matcher.Match(tags...)
		if confidence == language.No {
			continue
		}
		return c.locales[index]
	}
	return c.defaultLocale
}
