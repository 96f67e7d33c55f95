// Package privacy prunes environment data trees by sensitivity label.
//
// Each leaf carries a privacy_level of low, medium or high. Filtering at a
// target level keeps every leaf at or below that level, drops objects that
// end up empty and shortens (but never drops) arrays:
//
//	data := map[string]any{
//		"user": map[string]any{
//			"name":  map[string]any{"value": "Ann", "privacy_level": "low"},
//			"phone": map[string]any{"value": "555-0100", "privacy_level": "high"},
//		},
//	}
//	visible := privacy.FilterValue(data, privacy.Low)
//	// visible == {"user": {"name": {"value": "Ann", "privacy_level": "low"}}}
package privacy
