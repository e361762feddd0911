// Package depccg provides the model registry and loading layer for CCG
// supertagging models.
//
// The package serves two primary use cases:
//
//  1. Programmatic API - resolve a model identifier such as "en" or
//     "en[elmo]" against the built-in Catalog, download its artifact with
//     a Fetcher, and construct a runtime supertagger with a Loader that
//     dispatches to per-framework constructor functions.
//
//  2. Embeddable CLI via NewCommand - parent CLI tools can attach the
//     command tree to their Cobra root command, providing commands like
//     "depccg list", "depccg download en[elmo]", etc.
//
// # Model identifiers
//
// A model is identified by a language plus an optional variant, written
// "en" or "en[elmo]". The catalog is seeded once from a fixed table at
// startup and is immutable afterwards; adding a model variant is a
// compile-time change, not a runtime operation.
//
// # Frameworks
//
// Each catalog entry names the runtime framework that owns its artifact
// layout: chainer models are an archive extracted into a directory,
// allennlp models are consumed as the archive file itself. The Loader
// dispatches on this tag to the constructor function registered for it.
//
// # Storage
//
// Artifacts live in a single models directory:
//   - Linux: $XDG_DATA_HOME/depccg/models/ or ~/.local/share/depccg/models/
//   - macOS: ~/Library/Application Support/depccg/models/
//   - Windows: %APPDATA%\depccg\models\
//
// The DEPCCG_MODEL_DIR environment variable overrides the location.
//
// # Concurrency
//
// Catalog lookups are pure in-memory reads and safe for concurrent use.
// Downloads are blocking, overwrite their target unconditionally and are
// not locked against concurrent writers to the same path.
package depccg
