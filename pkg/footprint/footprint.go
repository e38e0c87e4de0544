package footprint

import (
	kfperrors "github.com/matzehuels/kicadfp/pkg/errors"
)

// =============================================================================
// Footprint Type
// =============================================================================

// Board format constants written into every footprint file.
const (
	// FormatVersion is the s-expression dialect version this package
	// emits.
	FormatVersion = "20221018"

	// Generator is the generator tag written into the file header.
	Generator = "kicadfp"
)

// FootprintType categorizes the footprint for the attr header token.
type FootprintType string

const (
	// TypeUnspecified omits the type token from the attr list.
	TypeUnspecified FootprintType = ""
	TypeSMD         FootprintType = "smd"
	TypeTHT         FootprintType = "through_hole"
)

// ValidFootprintTypes is the set of accepted footprint types.
var ValidFootprintTypes = map[FootprintType]bool{
	TypeUnspecified: true,
	TypeSMD:         true,
	TypeTHT:         true,
}

// =============================================================================
// Embedded Fonts
// =============================================================================

// EmbeddedFonts marks whether the footprint embeds font outlines. It is
// always present and emitted last before any models, as
// (embedded_fonts no) while disabled.
type EmbeddedFonts struct {
	BaseNode
	Enabled bool
}

// NewEmbeddedFonts creates the marker node, disabled.
func NewEmbeddedFonts() *EmbeddedFonts {
	e := &EmbeddedFonts{}
	e.bind(e, "EmbeddedFonts")
	return e
}

func (e *EmbeddedFonts) contentID() *identity {
	return newIdentity(e.kind).flag("enabled", e.Enabled)
}

// Copy returns a deep copy with the parent cleared.
func (e *EmbeddedFonts) Copy() Node {
	c := NewEmbeddedFonts()
	c.Enabled = e.Enabled
	e.copyInto(c)
	return c
}

// =============================================================================
// Footprint
// =============================================================================

// Footprint is the root of a footprint tree. Children are appended in
// any order; the file writer sorts them deterministically at
// serialization.
type Footprint struct {
	BaseNode

	Name string
	Type FootprintType

	// Description and Tags fill the descr and tags header entries.
	// Runs of repeated commas in the description are collapsed when the
	// file is written.
	Description string
	Tags        []string

	// Attr flags, emitted in the attr header token.
	BoardOnly                bool
	ExcludeFromBOM           bool
	ExcludeFromPositionFiles bool
	AllowMissingCourtyard    bool
	AllowSolderMaskBridges   bool
	DNP                      bool

	// Footprint-wide solder margins, emitted when non-zero. The paste
	// ratio must stay within [-1, 1].
	SolderMaskMargin  float64
	SolderPasteMargin float64
	SolderPasteRatio  float64

	// Clearance and zone connection defaults for the whole footprint.
	Clearance      float64
	ZoneConnection ZoneConnection

	fonts *EmbeddedFonts
}

// New creates a footprint root. The identifier seed is derived from the
// name so regenerating the same footprint yields identical node
// identifiers.
func New(name string, typ FootprintType) (*Footprint, error) {
	if name == "" {
		return nil, kfperrors.New(kfperrors.ErrCodeInvalidInput, "footprint name must not be empty")
	}
	if !ValidFootprintTypes[typ] {
		return nil, kfperrors.New(kfperrors.ErrCodeInvalidInput, "invalid footprint type %q", typ)
	}
	f := &Footprint{
		Name:           name,
		Type:           typ,
		ZoneConnection: ZoneConnectionInherit,
		fonts:          NewEmbeddedFonts(),
	}
	f.bind(f, "Footprint")
	f.SetSeed(SeedFor(name))
	return f, nil
}

// MustNew is New for static footprint definitions; it panics on invalid
// input.
func MustNew(name string, typ FootprintType) *Footprint {
	f, err := New(name, typ)
	if err != nil {
		panic(err)
	}
	return f
}

// Fonts returns the embedded fonts marker node.
func (f *Footprint) Fonts() *EmbeddedFonts { return f.fonts }

// VirtualChildren returns the generated embedded fonts node.
func (f *Footprint) VirtualChildren() []Node {
	return []Node{f.fonts}
}

// SetName renames the footprint and reseeds identifier derivation for
// the whole tree.
func (f *Footprint) SetName(name string) error {
	if name == "" {
		return kfperrors.New(kfperrors.ErrCodeInvalidInput, "footprint name must not be empty")
	}
	f.Name = name
	f.SetSeed(SeedFor(name))
	return nil
}

func (f *Footprint) contentID() *identity {
	return newIdentity(f.kind).
		str("name", f.Name).
		str("type", string(f.Type)).
		str("descr", f.Description).
		strs("tags", f.Tags).
		flag("board_only", f.BoardOnly).
		flag("exclude_from_bom", f.ExcludeFromBOM).
		flag("exclude_from_pos_files", f.ExcludeFromPositionFiles).
		flag("allow_missing_courtyard", f.AllowMissingCourtyard).
		flag("allow_soldermask_bridges", f.AllowSolderMaskBridges).
		flag("dnp", f.DNP).
		float("solder_mask_margin", f.SolderMaskMargin).
		float("solder_paste_margin", f.SolderPasteMargin).
		float("solder_paste_ratio", f.SolderPasteRatio).
		float("clearance", f.Clearance).
		num("zone_connection", int(f.ZoneConnection))
}

// Copy returns a deep copy of the footprint and its tree.
func (f *Footprint) Copy() Node {
	c := MustNew(f.Name, f.Type)
	c.Description = f.Description
	c.Tags = append([]string(nil), f.Tags...)
	c.BoardOnly = f.BoardOnly
	c.ExcludeFromBOM = f.ExcludeFromBOM
	c.ExcludeFromPositionFiles = f.ExcludeFromPositionFiles
	c.AllowMissingCourtyard = f.AllowMissingCourtyard
	c.AllowSolderMaskBridges = f.AllowSolderMaskBridges
	c.DNP = f.DNP
	c.SolderMaskMargin = f.SolderMaskMargin
	c.SolderPasteMargin = f.SolderPasteMargin
	c.SolderPasteRatio = f.SolderPasteRatio
	c.Clearance = f.Clearance
	c.ZoneConnection = f.ZoneConnection
	c.fonts.Enabled = f.fonts.Enabled
	f.copyInto(c)
	return c
}
