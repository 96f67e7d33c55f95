package hydrate

import (
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/goliatone/go-dresscode/pkg/datatree"
	"github.com/goliatone/go-dresscode/pkg/placeholder"
)

// Outcome records which rule produced a hydrated field.
type Outcome string

const (
	OutcomeLeafValue Outcome = "leaf-value"
	OutcomeResolved  Outcome = "resolved"
	OutcomeLiteral   Outcome = "literal"
	OutcomeEmpty     Outcome = "empty"
)

// Candidate carries the inputs a fallback rule inspects.
type Candidate struct {
	Literal  string
	Resolved any
	Found    bool
}

// Rule is one step of the fallback chain. Apply returns false when its
// trigger condition does not hold and the next rule should run.
type Rule struct {
	Outcome Outcome
	Apply   func(Candidate) (string, bool)
}

// FallbackRules is evaluated top to bottom; the first rule that applies wins.
//
//  1. leaf-value: the expression resolved to an object with a non-nil value
//     member (a visible leaf).
//  2. resolved: the expression resolved to any non-nil value.
//  3. literal: the element's own field is non-empty; this covers literal text
//     and URLs that never were placeholders.
//  4. empty: nothing else applied.
var FallbackRules = []Rule{
	{
		Outcome: OutcomeLeafValue,
		Apply: func(c Candidate) (string, bool) {
			obj, ok := c.Resolved.(map[string]any)
			if !ok {
				return "", false
			}
			value, ok := obj[datatree.KeyValue]
			if !ok || value == nil {
				return "", false
			}
			return Stringify(value), true
		},
	},
	{
		Outcome: OutcomeResolved,
		Apply: func(c Candidate) (string, bool) {
			if !c.Found || c.Resolved == nil {
				return "", false
			}
			return Stringify(c.Resolved), true
		},
	},
	{
		Outcome: OutcomeLiteral,
		Apply: func(c Candidate) (string, bool) {
			if c.Literal == "" {
				return "", false
			}
			return c.Literal, true
		},
	},
	{
		Outcome: OutcomeEmpty,
		Apply: func(Candidate) (string, bool) {
			return "", true
		},
	},
}

// ResolveField resolves expr against data and runs the fallback chain.
func ResolveField(expr string, data any) (string, Outcome) {
	resolved, found := placeholder.Resolve(data, expr)
	candidate := Candidate{Literal: expr, Resolved: resolved, Found: found}
	for _, rule := range FallbackRules {
		if out, ok := rule.Apply(candidate); ok {
			return out, rule.Outcome
		}
	}
	return "", OutcomeEmpty
}

// Stringify renders resolved data as element text. Whole numbers print
// without a fraction; objects and arrays are encoded as JSON.
func Stringify(v any) string {
	switch typed := v.(type) {
	case nil:
		return ""
	case string:
		return typed
	case bool:
		return strconv.FormatBool(typed)
	case float64:
		return strconv.FormatFloat(typed, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(typed), 'f', -1, 32)
	case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64:
		return fmt.Sprint(typed)
	case json.Number:
		return typed.String()
	case fmt.Stringer:
		return typed.String()
	default:
		encoded, err := json.Marshal(typed)
		if err != nil {
			return fmt.Sprint(typed)
		}
		return string(encoded)
	}
}
