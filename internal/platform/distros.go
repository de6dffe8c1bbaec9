package platform

import "strings"

// distroIdentity records family membership for a known distribution and,
// when the distribution is a derivative, its better-known parent.
type distroIdentity struct {
	family string // package-management family ("arch", "debian", ...)
	parent string // non-empty for known derivatives
}

// knownDistros maps os-release ID values onto their identity. Derivatives
// carry the upstream they track (cachyos and friends are Arch derivatives,
// pop is an Ubuntu derivative tracked back to debian, etc).
var knownDistros = map[string]distroIdentity{
	"arch":        {family: "arch"},
	"cachyos":     {family: "arch", parent: "arch"},
	"manjaro":     {family: "arch", parent: "arch"},
	"endeavouros": {family: "arch", parent: "arch"},
	"garuda":      {family: "arch", parent: "arch"},

	"debian":    {family: "debian"},
	"ubuntu":    {family: "debian", parent: "debian"},
	"pop":       {family: "debian", parent: "debian"},
	"linuxmint": {family: "debian", parent: "debian"},

	"fedora":    {family: "rhel"},
	"rhel":      {family: "rhel"},
	"centos":    {family: "rhel", parent: "rhel"},
	"rocky":     {family: "rhel", parent: "rhel"},
	"almalinux": {family: "rhel", parent: "rhel"},

	"opensuse-leap":       {family: "suse"},
	"opensuse-tumbleweed": {family: "suse"},

	"alpine": {family: "alpine"},
	"gentoo": {family: "gentoo"},
	"nixos":  {family: "nixos"},
}

// parentDistro resolves the parent distribution for an os-release ID.
// When the ID itself is unknown, ID_LIKE entries are consulted in order so an
// unlisted derivative still classifies under its upstream.
func parentDistro(id, idLike string) (string, bool) {
	if ident, ok := knownDistros[id]; ok {
		if ident.parent != "" {
			return ident.parent, true
		}
		return "", false
	}

	for _, like := range strings.Fields(idLike) {
		if _, ok := knownDistros[like]; ok {
			return like, true
		}
	}
	return "", false
}

// DistroFamily returns the package-management family for an os-release ID,
// or "" when the distribution is unknown.
func DistroFamily(id string) string {
	return knownDistros[id].family
}
