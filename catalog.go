package depccg

import (
	"fmt"
	"slices"
)

// CatalogEntry pairs a composite key with its descriptor in the seed table.
type CatalogEntry struct {
	Key  ModelKey
	Spec ModelSpec
}

// Catalog is the immutable mapping from model keys to descriptors.
// Built once at startup from a fixed table; safe for concurrent reads.
type Catalog struct {
	// specs holds the key → descriptor mapping.
	specs map[ModelKey]ModelSpec

	// variants maps each language to its variants in seed-table order.
	// The empty string marks the default (no-variant) model.
	variants map[string][]string

	// langs lists languages in order of first appearance in the table.
	langs []string
}

// NewCatalog builds a catalog from entries. Keys must be unique.
// Framework validity is checked at lookup time, not here, so an entry
// with an unknown framework surfaces as an error on the model that
// carries it rather than poisoning the whole catalog.
func NewCatalog(entries []CatalogEntry) (*Catalog, error) {
	c := &Catalog{
		specs:    make(map[ModelKey]ModelSpec, len(entries)),
		variants: make(map[string][]string),
	}

	for _, e := range entries {
		if _, dup := c.specs[e.Key]; dup {
			return nil, fmt.Errorf("depccg: duplicate catalog key %s", e.Key)
		}
		c.specs[e.Key] = e.Spec

		if _, seen := c.variants[e.Key.Language]; !seen {
			c.langs = append(c.langs, e.Key.Language)
		}
		c.variants[e.Key.Language] = append(c.variants[e.Key.Language], e.Key.Variant)
	}

	return c, nil
}

// Lookup returns the descriptor for key.
// Returns ErrModelNotFound if the key is absent, and
// ErrUnsupportedFramework (naming the language and variant) if the
// descriptor's framework is not one the loader dispatcher handles.
func (c *Catalog) Lookup(key ModelKey) (ModelSpec, error) {
	spec, ok := c.specs[key]
	if !ok {
		return ModelSpec{}, fmt.Errorf("%w: %s", ErrModelNotFound, key)
	}
	if !spec.Framework.Supported() {
		return ModelSpec{}, fmt.Errorf("%w %q for language %s: variant %q",
			ErrUnsupportedFramework, spec.Framework, key.Language, key.Variant)
	}
	return spec, nil
}

// IsAvailable reports whether id names a model in the catalog.
// Malformed identifiers are simply not available; the check has no side
// effects.
func (c *Catalog) IsAvailable(id string) bool {
	key, err := ParseModelID(id)
	if err != nil {
		return false
	}
	_, ok := c.specs[key]
	return ok
}

// Languages returns the catalog languages in seed-table order.
func (c *Catalog) Languages() []string {
	return slices.Clone(c.langs)
}

// Variants returns the variants available for lang in seed-table order,
// including the empty string for the language's default model. Returns
// nil for languages not in the catalog.
func (c *Catalog) Variants(lang string) []string {
	return slices.Clone(c.variants[lang])
}

// Len returns the number of models in the catalog.
func (c *Catalog) Len() int {
	return len(c.specs)
}

// semanticTemplates maps each language to its semantic template resource,
// relative to the models directory.
var semanticTemplates = map[string]string{
	"en": "semantic_templates_en_event.yaml",
	"ja": "semantic_templates_ja_event.yaml",
}

// defaultEntries is the fixed seed table for the built-in catalog.
var defaultEntries = []CatalogEntry{
	{
		Key: ModelKey{Language: "en"},
		Spec: ModelSpec{
			Framework:        FrameworkChainer,
			Name:             "tri_headfirst",
			RemoteID:         "1mxl1HU99iEQcUYhWhvkowbE4WOH0UKxv",
			GrammarConfig:    "config_en.jsonnet",
			SemanticTemplate: semanticTemplates["en"],
		},
	},
	{
		Key: ModelKey{Language: "en", Variant: "elmo"},
		Spec: ModelSpec{
			Framework:        FrameworkAllenNLP,
			Name:             "lstm_parser_elmo",
			RemoteID:         "1r2EsAtg47gFXDwMjmDdIw69akRo8oBXh",
			GrammarConfig:    "config_en.jsonnet",
			SemanticTemplate: semanticTemplates["en"],
		},
	},
	{
		Key: ModelKey{Language: "en", Variant: "rebank"},
		Spec: ModelSpec{
			Framework:        FrameworkAllenNLP,
			Name:             "lstm_parser_char_rebanking",
			RemoteID:         "1N5B4t40OEUxPyWZWwpO02MEqDyWQVYUa",
			GrammarConfig:    "config_rebank.jsonnet",
			SemanticTemplate: semanticTemplates["en"],
		},
	},
	{
		Key: ModelKey{Language: "en", Variant: "elmo_rebank"},
		Spec: ModelSpec{
			Framework:        FrameworkAllenNLP,
			Name:             "lstm_parser_elmo_rebanking",
			RemoteID:         "1deyCjSgCuD16WkEhOL3IXEfQBfARh_ll",
			GrammarConfig:    "config_rebank.jsonnet",
			SemanticTemplate: semanticTemplates["en"],
		},
	},
	{
		Key: ModelKey{Language: "ja"},
		Spec: ModelSpec{
			Framework:        FrameworkChainer,
			Name:             "ja_headfinal",
			RemoteID:         "1bblQ6FYugXtgNNKnbCYgNfnQRkBATSY3",
			GrammarConfig:    "config_ja.jsonnet",
			SemanticTemplate: semanticTemplates["ja"],
		},
	},
}

// DefaultCatalog returns the built-in model catalog.
func DefaultCatalog() *Catalog {
	c, err := NewCatalog(defaultEntries)
	if err != nil {
		// The seed table is static; a duplicate key is a programming error.
		panic(err)
	}
	return c
}
