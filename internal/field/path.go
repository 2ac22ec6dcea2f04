package field

import "strings"

// Path grammar markers.
//
// Schema-derived paths mark repetition with ArrayMarker appended to the
// repeating segment ("items[*].id"). Example-extraction paths collapse array
// elements onto the enclosing property ("items.id"). The two dialects are
// reconciled at join time via StripArrayMarkers; see Build.
const (
	// JSONRoot is the root path of a JSON-Schema document.
	JSONRoot = "$"

	// ArrayMarker marks a repeating step in a schema-derived path.
	ArrayMarker = "[*]"

	// AttributePrefix marks an XML attribute step ("order.@currency").
	AttributePrefix = "@"

	pathSep = "."
)

// ChildPath builds a child path from its parent path and the child's name.
// Children of the JSON root use the bare name, not "$.name".
func ChildPath(parent, name string) string {
	if parent == "" || parent == JSONRoot {
		return name
	}

	return parent + pathSep + name
}

// ArrayPath marks a path as repeating at its last step.
func ArrayPath(path string) string {
	return path + ArrayMarker
}

// AttributePath builds the path of an attribute owned by the element at path.
func AttributePath(path, attr string) string {
	return path + pathSep + AttributePrefix + attr
}

// StripArrayMarkers translates a schema-dialect path into the example-path
// dialect by removing every array marker.
func StripArrayMarkers(path string) string {
	return strings.ReplaceAll(path, ArrayMarker, "")
}

// Segments splits a path into its dotted segments, array markers included.
func Segments(path string) []string {
	if path == "" {
		return nil
	}

	return strings.Split(path, pathSep)
}
