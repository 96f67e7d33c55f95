// Package model defines the records go-dresscode works with: templates and
// their elements, environments holding the data tree, backgrounds and saved
// profiles. Element keys other than id/type/text/src are opaque layout and
// style properties (x, y, width, height, fontSize, fontFamily, fill, align,
// opacity, ...) that survive JSON round trips through Element.Props.
package model
