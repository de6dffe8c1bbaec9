package toolchain

import (
	"sort"

	"github.com/WyattAu/omnicpp/internal/types"
)

// Capability tags advertised by candidates.
const (
	CapCxx17 = "c++17"
	CapCxx20 = "c++20"
	CapCxx23 = "c++23"
	CapLTO   = "lto"
	CapASan  = "asan"
	CapUBSan = "ubsan"
)

// gatedCapability adds a tag once the family reaches a version threshold.
type gatedCapability struct {
	tag  string
	from types.Version
}

// baseCapabilities are present for every available candidate of a family.
var baseCapabilities = map[types.Family][]string{
	types.FamilyGCC:   {CapCxx17, CapLTO, CapASan, CapUBSan},
	types.FamilyClang: {CapCxx17, CapLTO, CapASan, CapUBSan},
	types.FamilyMSVC:  {CapCxx17},
}

// gatedCapabilities open up above a version threshold. The table is static:
// capability discovery trades trial compilation for determinism and speed.
var gatedCapabilities = map[types.Family][]gatedCapability{
	types.FamilyGCC: {
		{tag: CapCxx20, from: types.Version{Major: 10}},
		{tag: CapCxx23, from: types.Version{Major: 12}},
	},
	types.FamilyClang: {
		{tag: CapCxx20, from: types.Version{Major: 10}},
		{tag: CapCxx23, from: types.Version{Major: 17}},
	},
	types.FamilyMSVC: {
		{tag: CapCxx20, from: types.Version{Major: 19, Minor: 29}},
		{tag: CapCxx23, from: types.Version{Major: 19, Minor: 35}},
		{tag: CapASan, from: types.Version{Major: 19, Minor: 28}},
	},
}

// capabilitiesFor returns the sorted capability set for an available
// candidate of the given family and version.
func capabilitiesFor(family types.Family, v types.Version) []string {
	caps := append([]string(nil), baseCapabilities[family]...)
	for _, g := range gatedCapabilities[family] {
		if v.AtLeast(g.from) {
			caps = append(caps, g.tag)
		}
	}
	sort.Strings(caps)
	return caps
}
