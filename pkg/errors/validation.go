package errors

import (
	"regexp"
	"strings"
	"unicode"
)

// ValidateFootprintName validates a footprint name for safety and correctness.
// Footprint names become file names, so the rules are conservative:
//   - No empty names
//   - No control characters
//   - No path separators or traversal sequences
//   - Maximum length of 200 characters
func ValidateFootprintName(name string) error {
	if name == "" {
		return New(ErrCodeInvalidName, "footprint name cannot be empty")
	}

	if len(name) > 200 {
		return New(ErrCodeInvalidName, "footprint name too long (max 200 characters)")
	}

	for _, r := range name {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidName, "footprint name contains invalid control characters")
		}
	}

	dangerousPatterns := []string{
		"..",   // Parent directory
		"/",    // Path separator
		"\\",   // Backslash (Windows path)
		"\x00", // Null byte
	}

	for _, pattern := range dangerousPatterns {
		if strings.Contains(name, pattern) {
			return New(ErrCodeInvalidName, "footprint name contains invalid characters: %q", pattern)
		}
	}

	return nil
}

// knownLayers is the set of fixed board layer names.
var knownLayers = map[string]bool{
	"F.Cu": true, "B.Cu": true,
	"F.Adhes": true, "B.Adhes": true,
	"F.Paste": true, "B.Paste": true,
	"F.SilkS": true, "B.SilkS": true,
	"F.Mask": true, "B.Mask": true,
	"F.CrtYd": true, "B.CrtYd": true,
	"F.Fab": true, "B.Fab": true,
	"Dwgs.User": true, "Cmts.User": true,
	"Eco1.User": true, "Eco2.User": true,
	"Edge.Cuts": true, "Margin": true,
}

var (
	// innerCuLayerRegex matches inner copper layers (In1.Cu .. In30.Cu).
	innerCuLayerRegex = regexp.MustCompile(`^In([1-9]|[12][0-9]|30)\.Cu$`)

	// userLayerRegex matches numbered user layers (User.1 .. User.9).
	userLayerRegex = regexp.MustCompile(`^User\.[1-9]$`)

	// wildcardLayerRegex matches front/back wildcard layers such as *.Cu.
	wildcardLayerRegex = regexp.MustCompile(`^\*\.(Cu|Adhes|Paste|SilkS|Mask|CrtYd|Fab)$`)
)

// ValidateLayerName validates a board layer name. Wildcard layers
// (for example *.Cu on through-hole pads) are accepted.
func ValidateLayerName(name string) error {
	if name == "" {
		return New(ErrCodeInvalidLayer, "layer name cannot be empty")
	}
	if knownLayers[name] {
		return nil
	}
	if innerCuLayerRegex.MatchString(name) || userLayerRegex.MatchString(name) || wildcardLayerRegex.MatchString(name) {
		return nil
	}
	return New(ErrCodeInvalidLayer, "unknown layer: %q", name)
}

// ValidateLayerNames validates every layer in a pad or zone layer list.
func ValidateLayerNames(names []string) error {
	if len(names) == 0 {
		return New(ErrCodeInvalidLayer, "layer list cannot be empty")
	}
	for _, n := range names {
		if err := ValidateLayerName(n); err != nil {
			return err
		}
	}
	return nil
}

// ValidatePath validates a file path for output safety.
//
// Validation rules:
//   - Path cannot be empty
//   - Maximum length of 500 characters
//   - No null bytes or control characters
//   - No path traversal sequences (..)
func ValidatePath(path string) error {
	if path == "" {
		return New(ErrCodeInvalidPath, "path cannot be empty")
	}

	const maxPathLength = 500
	if len(path) > maxPathLength {
		return New(ErrCodeInvalidPath, "path too long (max %d characters)", maxPathLength)
	}

	for _, r := range path {
		if r == '\x00' || unicode.IsControl(r) {
			return New(ErrCodeInvalidPath, "path contains invalid characters")
		}
	}

	if strings.Contains(path, "..") {
		return New(ErrCodeInvalidPath, "path cannot contain path traversal sequences (..)")
	}

	return nil
}

// partNameRegex matches valid series part names. These become footprint
// names, so the character set stays close to the library conventions
// (alphanumerics plus the separators seen in shipped libraries).
var partNameRegex = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9._+-]*$`)

// ValidatePartName validates a part name from a series definition.
func ValidatePartName(name string) error {
	if err := ValidateFootprintName(name); err != nil {
		return err
	}
	if !partNameRegex.MatchString(name) {
		return New(ErrCodeInvalidName, "invalid part name: %q", name)
	}
	return nil
}
