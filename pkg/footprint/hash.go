package footprint

import (
	"crypto/sha1"
	"encoding/hex"
	"sort"
	"strconv"
	"strings"

	"github.com/matzehuels/kicadfp/pkg/geometry"
)

// identity collects the fields that make up a node's content. The hash
// over it feeds identifier derivation and the serializer's duplicate
// detection, so parent links, identifiers and child nodes never
// contribute. Fields are sorted by key before hashing to keep the
// result independent of insertion order.
type identity struct {
	kind   string
	fields []string
}

func newIdentity(kind string) *identity {
	return &identity{kind: kind}
}

func (id *identity) str(key, v string) *identity {
	id.fields = append(id.fields, key+"="+v)
	return id
}

func (id *identity) float(key string, v float64) *identity {
	return id.str(key, formatIdentityFloat(v))
}

func (id *identity) num(key string, v int) *identity {
	return id.str(key, strconv.Itoa(v))
}

func (id *identity) flag(key string, v bool) *identity {
	return id.str(key, strconv.FormatBool(v))
}

func (id *identity) vec(key string, v geometry.Vec) *identity {
	return id.str(key, formatIdentityFloat(v.X)+","+formatIdentityFloat(v.Y))
}

func (id *identity) strs(key string, vs []string) *identity {
	return id.str(key, strings.Join(vs, "|"))
}

func (id *identity) floats(key string, vs []float64) *identity {
	parts := make([]string, len(vs))
	for i, v := range vs {
		parts[i] = formatIdentityFloat(v)
	}
	return id.str(key, strings.Join(parts, "|"))
}

func (id *identity) vecs(key string, vs []geometry.Vec) *identity {
	parts := make([]string, len(vs))
	for i, v := range vs {
		parts[i] = formatIdentityFloat(v.X) + "," + formatIdentityFloat(v.Y)
	}
	return id.str(key, strings.Join(parts, "|"))
}

// String renders the canonical identity text, with fields sorted.
func (id *identity) String() string {
	fields := make([]string, len(id.fields))
	copy(fields, id.fields)
	sort.Strings(fields)
	return id.kind + "{" + strings.Join(fields, ";") + "}"
}

// Hash returns the SHA-1 hex digest of the canonical identity text.
func (id *identity) Hash() string {
	sum := sha1.Sum([]byte(id.String()))
	return hex.EncodeToString(sum[:])
}

// formatIdentityFloat renders floats with fixed precision so identity
// text stays stable across platforms. Negative zero folds into zero.
func formatIdentityFloat(v float64) string {
	if v == 0 {
		v = 0
	}
	return strconv.FormatFloat(v, 'f', 6, 64)
}
