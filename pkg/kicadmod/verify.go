package kicadmod

import (
	"bytes"
	"fmt"

	"github.com/google/uuid"

	kfperrors "github.com/matzehuels/kicadfp/pkg/errors"
	"github.com/matzehuels/kicadfp/pkg/footprint"
	"github.com/matzehuels/kicadfp/pkg/sexp"
)

// Severity grades a verification finding.
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
)

// Issue is one finding from Verify. Path locates the offending
// expression inside the file.
type Issue struct {
	Severity Severity
	Path     string
	Message  string
}

func (i Issue) String() string {
	return fmt.Sprintf("%s: %s: %s", i.Severity, i.Path, i.Message)
}

// HasErrors reports whether any issue is an error.
func HasErrors(issues []Issue) bool {
	for _, i := range issues {
		if i.Severity == SeverityError {
			return true
		}
	}
	return false
}

// verifier accumulates findings while walking a parsed file.
type verifier struct {
	issues []Issue
	// stamps maps each identifier to the path that introduced it.
	stamps map[string]string
}

func (v *verifier) add(sev Severity, path, format string, args ...any) {
	v.issues = append(v.issues, Issue{Severity: sev, Path: path, Message: fmt.Sprintf(format, args...)})
}

// Verify parses a rendered footprint file and checks it for structural
// problems: missing header entries, graphics without layers, pads
// without size, malformed or duplicated identifiers. Verify returns an
// error only when the input is not syntactically valid; semantic
// findings come back as issues.
func Verify(data []byte) ([]Issue, error) {
	root, err := sexp.Parse(bytes.NewReader(data))
	if err != nil {
		return nil, kfperrors.Wrap(kfperrors.ErrCodeParse, err, "footprint file does not parse")
	}

	v := &verifier{stamps: make(map[string]string)}

	if root.Name() != "footprint" {
		v.add(SeverityError, rootPath(root), "root expression is %q, want footprint", root.Name())
		return v.issues, nil
	}
	v.checkHeader(root)

	counts := make(map[string]int)
	for _, child := range root.Items[1:] {
		if !child.IsList() {
			continue
		}
		name := child.Name()
		path := childPath(child, counts[name])
		counts[name]++

		switch name {
		case "fp_line", "fp_arc", "fp_circle", "fp_rect", "fp_poly", "fp_text":
			v.checkLayer(child, path, "layer")
			v.checkStamp(child, path)
		case "pad":
			v.checkPad(child, path)
		case "zone":
			v.checkZone(child, path)
		case "group":
			v.checkGroup(child, path)
		}
	}
	return v.issues, nil
}

func rootPath(e *sexp.Expr) string {
	if name := e.Name(); name != "" {
		return name
	}
	return "(file)"
}

// childPath names a footprint child for findings: pads by their number,
// everything else by kind and occurrence index.
func childPath(e *sexp.Expr, index int) string {
	if e.Name() == "pad" {
		return fmt.Sprintf("pad %q", e.Text(0))
	}
	return fmt.Sprintf("%s[%d]", e.Name(), index)
}

func (v *verifier) checkHeader(root *sexp.Expr) {
	const path = "footprint"
	if name := root.Arg(0); name == nil || !name.Leaf {
		v.add(SeverityError, path, "footprint has no name")
	}
	if version := root.Child("version"); version == nil {
		v.add(SeverityError, path, "missing version entry")
	} else if got := version.Text(0); got != footprint.FormatVersion {
		v.add(SeverityWarning, path, "version %s, this library writes %s", got, footprint.FormatVersion)
	}
	if root.Child("generator") == nil {
		v.add(SeverityWarning, path, "missing generator entry")
	}
	if root.Child("layer") == nil {
		v.add(SeverityError, path, "missing layer entry")
	}
}

func (v *verifier) checkLayer(e *sexp.Expr, path, key string) {
	layer := e.Child(key)
	if layer == nil {
		v.add(SeverityError, path, "line %d: missing %s", e.Line, key)
		return
	}
	if layer.Text(0) == "" {
		v.add(SeverityError, path, "line %d: empty %s name", layer.Line, key)
	}
}

// checkStamp validates the node identifier and flags reuse across the
// file. The writer derives identifiers uniquely, so a duplicate means
// the file was edited or merged by hand.
func (v *verifier) checkStamp(e *sexp.Expr, path string) {
	stamp := e.Child("tstamp")
	if stamp == nil {
		v.add(SeverityWarning, path, "line %d: missing tstamp", e.Line)
		return
	}
	id := stamp.Text(0)
	if _, err := uuid.Parse(id); err != nil {
		v.add(SeverityError, path, "line %d: tstamp %q is not a UUID", stamp.Line, id)
		return
	}
	if prev, ok := v.stamps[id]; ok {
		v.add(SeverityError, path, "line %d: tstamp %s already used by %s", stamp.Line, id, prev)
		return
	}
	v.stamps[id] = path
}

func (v *verifier) checkPad(e *sexp.Expr, path string) {
	if e.NumArgs() < 3 {
		v.add(SeverityError, path, "line %d: pad needs number, type and shape", e.Line)
	}
	if e.Child("size") == nil {
		v.add(SeverityError, path, "line %d: pad has no size", e.Line)
	}
	layers := e.Child("layers")
	if layers == nil {
		v.add(SeverityError, path, "line %d: pad has no layers", e.Line)
	} else if layers.NumArgs() == 0 {
		v.add(SeverityError, path, "line %d: empty layers list", layers.Line)
	}
	v.checkStamp(e, path)
}

func (v *verifier) checkZone(e *sexp.Expr, path string) {
	if e.Child("layer") == nil && e.Child("layers") == nil {
		v.add(SeverityError, path, "line %d: zone has no layer", e.Line)
	}
	polygon := e.Child("polygon")
	if polygon == nil {
		v.add(SeverityError, path, "line %d: zone has no polygon", e.Line)
	} else if pts := polygon.Child("pts"); pts == nil || pts.NumArgs() < 3 {
		v.add(SeverityError, path, "line %d: zone outline needs at least 3 points", polygon.Line)
	}
	v.checkStamp(e, path)
}

func (v *verifier) checkGroup(e *sexp.Expr, path string) {
	id := e.Child("id")
	if id == nil {
		v.add(SeverityWarning, path, "line %d: group has no id", e.Line)
	} else if _, err := uuid.Parse(id.Text(0)); err != nil {
		v.add(SeverityError, path, "line %d: group id %q is not a UUID", id.Line, id.Text(0))
	}
	members := e.Child("members")
	if members == nil {
		v.add(SeverityWarning, path, "line %d: group has no members", e.Line)
		return
	}
	for i := 0; i < members.NumArgs(); i++ {
		if _, err := uuid.Parse(members.Text(i)); err != nil {
			v.add(SeverityError, path, "line %d: member %q is not a UUID", members.Line, members.Text(i))
		}
	}
}
