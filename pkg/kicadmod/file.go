// Package kicadmod writes footprint trees as .kicad_mod board library
// files. The output is deterministic: children are sorted by class,
// layer and geometry rather than attachment order, and node identifiers
// derive from the footprint name, so regenerating the same part yields
// a byte-identical file.
package kicadmod

import (
	"math"
	"os"
	"regexp"
	"strconv"
	"strings"

	"github.com/google/uuid"

	kfperrors "github.com/matzehuels/kicadfp/pkg/errors"
	"github.com/matzehuels/kicadfp/pkg/footprint"
	"github.com/matzehuels/kicadfp/pkg/sexp"
)

// commaRuns matches the comma runs left in a description when optional
// fragments between them are empty.
var commaRuns = regexp.MustCompile(`,(\s*,)+`)

// Render serializes a footprint tree into the board library format.
func Render(fp *footprint.Footprint) ([]byte, error) {
	if fp == nil {
		return nil, kfperrors.New(kfperrors.ErrCodeInvalidInput, "cannot render nil footprint")
	}
	if fp.Name == "" {
		return nil, kfperrors.New(kfperrors.ErrCodeInvalidInput, "footprint name must not be empty")
	}
	if math.Abs(fp.SolderPasteRatio) > 1 {
		return nil, kfperrors.New(kfperrors.ErrCodeInvalidInput,
			"solder paste ratio %v outside [-1, 1]", fp.SolderPasteRatio)
	}

	nodes := footprint.Serialize(fp)
	if err := resolveDuplicateIDs(nodes); err != nil {
		return nil, err
	}

	// Reference and Value lead the output; every other property renders
	// as user text in the sorted body.
	var refs, vals []*footprint.Property
	body := make([]footprint.Node, 0, len(nodes))
	for _, n := range nodes {
		if p, ok := n.(*footprint.Property); ok {
			switch p.Name {
			case footprint.PropertyReference:
				refs = append(refs, p)
				continue
			case footprint.PropertyValue:
				vals = append(vals, p)
				continue
			}
		}
		body = append(body, n)
	}

	s := newSerializer()
	s.w.Open("footprint", sexp.Str(fp.Name),
		sexp.L("version", footprint.FormatVersion),
		sexp.L("generator", footprint.Generator))
	s.w.Line("layer", sexp.Str(footprint.LayerFCu))
	emitHeader(&s.w, fp)

	for _, p := range refs {
		s.emitProperty(p)
	}
	for _, p := range vals {
		s.emitProperty(p)
	}
	for _, n := range SortNodes(body) {
		if err := s.emit(n); err != nil {
			return nil, err
		}
	}
	s.w.Close()
	return []byte(s.w.String()), nil
}

// WriteFile renders the footprint and writes it to path.
func WriteFile(fp *footprint.Footprint, path string) error {
	data, err := Render(fp)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return kfperrors.Wrap(kfperrors.ErrCodeIO, err, "write footprint file %s", path)
	}
	return nil
}

func emitHeader(w *sexp.Writer, fp *footprint.Footprint) {
	if fp.Description != "" {
		w.Line("descr", sexp.Str(commaRuns.ReplaceAllString(fp.Description, ",")))
	}
	if len(fp.Tags) > 0 {
		w.Line("tags", sexp.Str(strings.Join(fp.Tags, " ")))
	}

	var attrs []string
	if fp.Type != footprint.TypeUnspecified {
		attrs = append(attrs, string(fp.Type))
	}
	if fp.BoardOnly {
		attrs = append(attrs, "board_only")
	}
	if fp.ExcludeFromPositionFiles {
		attrs = append(attrs, "exclude_from_pos_files")
	}
	if fp.ExcludeFromBOM {
		attrs = append(attrs, "exclude_from_bom")
	}
	if fp.AllowMissingCourtyard {
		attrs = append(attrs, "allow_missing_courtyard")
	}
	if fp.DNP {
		attrs = append(attrs, "dnp")
	}
	if fp.AllowSolderMaskBridges {
		attrs = append(attrs, "allow_soldermask_bridges")
	}
	if len(attrs) > 0 {
		w.Line(append([]string{"attr"}, attrs...)...)
	}

	if fp.SolderMaskMargin != 0 {
		w.Line("solder_mask_margin", sexp.F(fp.SolderMaskMargin))
	}
	if fp.SolderPasteMargin != 0 {
		w.Line("solder_paste_margin", sexp.F(fp.SolderPasteMargin))
	}
	if fp.SolderPasteRatio != 0 {
		w.Line("solder_paste_ratio", sexp.F(fp.SolderPasteRatio))
	}
	if fp.Clearance != 0 {
		w.Line("clearance", sexp.F(fp.Clearance))
	}
	if fp.ZoneConnection != footprint.ZoneConnectionInherit {
		w.Line("zone_connect", sexp.I(fp.ZoneConnection.FileValue()))
	}
}

// resolveDuplicateIDs reassigns unique IDs until every node identifier
// in the flattened tree is distinct. Derived identifiers collide when
// siblings share identical content; the bump re-derives them apart.
// Pinned identifiers cannot be re-derived, so a pinned duplicate fails.
func resolveDuplicateIDs(nodes []footprint.Node) error {
	seen := make(map[uuid.UUID]bool, len(nodes))
	for _, n := range nodes {
		id := n.TStamp()
		if !seen[id] {
			seen[id] = true
			continue
		}
		for i := 2; seen[id]; i++ {
			n.SetUniqueID(strconv.Itoa(i))
			next := n.TStamp()
			if next == id {
				return kfperrors.New(kfperrors.ErrCodeSerialize,
					"cannot disambiguate duplicate identifier %s on %s node", id, n.Kind())
			}
			id = next
		}
		seen[id] = true
	}
	return nil
}
