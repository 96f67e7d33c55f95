// Package datatree models environment data as a tagged union of leaves,
// arrays, objects and primitives. Environment documents arrive as untyped
// JSON/YAML; FromValue classifies every node once so downstream packages
// (privacy filtering, placeholder resolution) pattern-match on Kind instead
// of re-checking for the `value`/`privacy_level` pair at each step.
package datatree
