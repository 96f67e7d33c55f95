// Package hydrate substitutes template element fields with resolved
// environment data.
//
// Each element variant registers a FieldHydrator. The built-in text and image
// hydrators resolve Element.Text and Element.Src through an ordered chain of
// FallbackRules (leaf value, resolved value, literal, empty string), so a field
// can hold either a literal or a placeholder and still degrade gracefully when
// the referenced data is missing or redacted.
package hydrate
