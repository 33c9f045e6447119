package site

import (
	"fmt"
	"strings"
	"sync"

	theme "github.com/goliatone/go-theme"
)

// ThemeConfig is the YAML form of a go-theme manifest plus the selected
// variant.
type ThemeConfig struct {
	Name      string                   `yaml:"name"`
	Version   string                   `yaml:"version"`
	Variant   string                   `yaml:"variant"`
	Tokens    map[string]string        `yaml:"tokens"`
	Templates map[string]string        `yaml:"templates"`
	Assets    AssetsConfig             `yaml:"assets"`
	Variants  map[string]VariantConfig `yaml:"variants"`
}

// AssetsConfig maps asset keys to files under Prefix.
type AssetsConfig struct {
	Prefix string            `yaml:"prefix"`
	Files  map[string]string `yaml:"files"`
}

// VariantConfig overrides tokens, templates and assets of the base theme.
type VariantConfig struct {
	Tokens    map[string]string `yaml:"tokens"`
	Templates map[string]string `yaml:"templates"`
	Assets    AssetsConfig      `yaml:"assets"`
}

// DefaultTheme is the built-in theme. Its tokens match the custom properties
// of the bundled stylesheet.
func DefaultTheme() ThemeConfig {
	return ThemeConfig{
		Name:    "formalise",
		Version: "1.0.0",
		Variant: "light",
		Tokens: map[string]string{
			"fl-accent": "#2563eb",
			"fl-muted":  "#d1d5db",
			"fl-error":  "#dc2626",
		},
		Variants: map[string]VariantConfig{
			"light": {},
			"dark": {
				Tokens: map[string]string{
					"fl-text":  "#f3f4f6",
					"fl-bg":    "#111111",
					"fl-muted": "#4b5563",
				},
			},
		},
	}
}

// Manifest converts the configuration into a go-theme manifest.
func (t ThemeConfig) Manifest() *theme.Manifest {
	version := t.Version
	if version == "" {
		version = "1.0.0"
	}
	manifest := &theme.Manifest{
		Name:      t.Name,
		Version:   version,
		Tokens:    copyMap(t.Tokens),
		Templates: copyMap(t.Templates),
		Assets: theme.Assets{
			Prefix: t.Assets.Prefix,
			Files:  copyMap(t.Assets.Files),
		},
	}
	if len(t.Variants) > 0 {
		manifest.Variants = make(map[string]theme.Variant, len(t.Variants))
		for name, variant := range t.Variants {
			manifest.Variants[name] = theme.Variant{
				Tokens:    copyMap(variant.Tokens),
				Templates: copyMap(variant.Templates),
				Assets: theme.Assets{
					Prefix: variant.Assets.Prefix,
					Files:  copyMap(variant.Assets.Files),
				},
			}
		}
	}
	return manifest
}

// Themes selects registered manifests by name and variant. It implements
// theme.ThemeSelector.
type Themes struct {
	mu             sync.RWMutex
	manifests      map[string]*theme.Manifest
	defaultName    string
	defaultVariant string
}

var _ theme.ThemeSelector = (*Themes)(nil)

// NewThemes registers the manifests with a go-theme registry, which rejects
// malformed manifests, and keeps them for selection. The first manifest is
// the default.
func NewThemes(defaultVariant string, manifests ...*theme.Manifest) (*Themes, error) {
	registry := theme.NewRegistry()
	themes := &Themes{
		manifests:      make(map[string]*theme.Manifest, len(manifests)),
		defaultVariant: defaultVariant,
	}
	for _, manifest := range manifests {
		if manifest == nil {
			continue
		}
		if err := registry.Register(manifest); err != nil {
			return nil, fmt.Errorf("site: register theme %q: %w", manifest.Name, err)
		}
		if themes.defaultName == "" {
			themes.defaultName = manifest.Name
		}
		themes.manifests[manifest.Name] = manifest
	}
	if themes.defaultName == "" {
		return nil, fmt.Errorf("site: at least one theme is required")
	}
	return themes, nil
}

// Select resolves a theme and variant. Empty arguments fall back to the
// defaults.
func (t *Themes) Select(name, variant string, _ ...theme.QueryOption) (*theme.Selection, error) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	if name == "" {
		name = t.defaultName
	}
	manifest, ok := t.manifests[name]
	if !ok {
		return nil, fmt.Errorf("site: theme %q not found", name)
	}
	if variant == "" {
		variant = t.defaultVariant
	}
	if variant != "" {
		if _, ok := manifest.Variants[variant]; !ok {
			return nil, fmt.Errorf("site: theme %q has no variant %q", name, variant)
		}
	}
	return &theme.Selection{Theme: name, Variant: variant, Manifest: manifest}, nil
}

// RendererConfig flattens a selection: variant tokens, templates and asset
// files override the base manifest, tokens become CSS custom properties, and
// AssetURL resolves keys against the variant prefix or the base prefix.
func RendererConfig(selection *theme.Selection) *theme.RendererConfig {
	if selection == nil || selection.Manifest == nil {
		return nil
	}
	manifest := selection.Manifest
	variant := manifest.Variants[selection.Variant]

	tokens := merge(manifest.Tokens, variant.Tokens)
	partials := merge(manifest.Templates, variant.Templates)

	cssVars := make(map[string]string, len(tokens))
	for key, value := range tokens {
		cssVars["--"+strings.TrimPrefix(key, "--")] = value
	}

	baseFiles := manifest.Assets.Files
	variantFiles := variant.Assets.Files
	basePrefix := manifest.Assets.Prefix
	variantPrefix := variant.Assets.Prefix
	if variantPrefix == "" {
		variantPrefix = basePrefix
	}

	return &theme.RendererConfig{
		Theme:    selection.Theme,
		Variant:  selection.Variant,
		Partials: partials,
		Tokens:   tokens,
		CSSVars:  cssVars,
		AssetURL: func(key string) string {
			if file, ok := variantFiles[key]; ok {
				return joinURL(variantPrefix, file)
			}
			if file, ok := baseFiles[key]; ok {
				return joinURL(basePrefix, file)
			}
			return ""
		},
	}
}

func merge(base, override map[string]string) map[string]string {
	out := make(map[string]string, len(base)+len(override))
	for key, value := range base {
		out[key] = value
	}
	for key, value := range override {
		out[key] = value
	}
	return out
}

func copyMap(in map[string]string) map[string]string {
	if len(in) == 0 {
		return nil
	}
	return merge(in, nil)
}

func joinURL(prefix, file string) string {
	if strings.HasPrefix(file, "/") || strings.Contains(file, "://") || prefix == "" {
		return file
	}
	return strings.TrimSuffix(prefix, "/") + "/" + file
}
