package backend

import "github.com/WyattAu/omnicpp/internal/types"

// nativeManager describes one OS-native package manager. Detection is by
// executable presence only; these tools need no version handshake and
// querying some of them without arguments is slow.
type nativeManager struct {
	name string
	// elevated marks managers whose mutating operations need elevated
	// privileges. Queries never do.
	elevated bool
}

// nativeManagers are checked in order; the first present one wins.
var nativeManagers = []nativeManager{
	{name: "pacman", elevated: true},
	{name: "apt-get", elevated: true},
	{name: "dnf", elevated: true},
	{name: "zypper", elevated: true},
	{name: "apk", elevated: true},
	{name: "brew", elevated: false},
	{name: "winget", elevated: false},
	{name: "choco", elevated: true},
}

// detectNative finds the distribution-native package manager, if any.
func (p *Prober) detectNative() types.BackendRecord {
	rec := types.BackendRecord{Kind: types.BackendNative}

	for _, mgr := range nativeManagers {
		path, err := p.LookPath(mgr.name)
		if err != nil {
			continue
		}
		rec.Path = path
		rec.NativeName = mgr.name
		rec.Available = true
		rec.RequiresElevation = mgr.elevated
		return rec
	}

	rec.Detail = "no native package manager found"
	return rec
}
