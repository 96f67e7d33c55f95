// Package placeholder parses and resolves the dotted-path expressions that
// template elements use to reference environment data, e.g. "{{user.name}}".
//
// Lexing (Strip) and parsing (Parse) are kept apart from tree walking
// (Path.Lookup) so each stage can be tested on its own. Delimiters are
// optional: "user.name", "{{user.name}}" and "{{ user.name }}" are equivalent.
package placeholder
