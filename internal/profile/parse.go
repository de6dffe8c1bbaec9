package profile

import (
	"fmt"
	"strings"

	"github.com/WyattAu/omnicpp/internal/types"
)

// Parse reconstructs a BuildProfile from its textual form. It is the inverse
// of Marshal for everything the form carries: flags come back in the same
// order and the environment map is reproduced exactly.
func Parse(data []byte) (types.BuildProfile, error) {
	var p types.BuildProfile
	section := ""

	for i, raw := range strings.Split(string(data), "\n") {
		line := strings.TrimSpace(raw)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		if strings.HasPrefix(line, "[") && strings.HasSuffix(line, "]") {
			section = line[1 : len(line)-1]
			switch section {
			case sectionSettings, sectionBuildenv, sectionConf, sectionEnv:
			default:
				return types.BuildProfile{}, fmt.Errorf("line %d: unknown section %q", i+1, section)
			}
			continue
		}

		key, value, ok := strings.Cut(line, "=")
		if !ok {
			return types.BuildProfile{}, fmt.Errorf("line %d: expected key=value, got %q", i+1, line)
		}

		switch section {
		case sectionSettings:
			if err := applySetting(&p, key, value); err != nil {
				return types.BuildProfile{}, fmt.Errorf("line %d: %w", i+1, err)
			}
		case sectionBuildenv:
			switch key {
			case "cflags":
				p.CFlags = append(p.CFlags, value)
			case "cxxflags":
				p.CXXFlags = append(p.CXXFlags, value)
			case "ldflags":
				p.LinkerFlags = append(p.LinkerFlags, value)
			case "define":
				p.Defines = append(p.Defines, value)
			}
		case sectionConf:
			switch key {
			case "capability":
				p.Toolchain.Capabilities = append(p.Toolchain.Capabilities, value)
			case "include_path":
				p.Toolchain.IncludePaths = append(p.Toolchain.IncludePaths, value)
			case "library_path":
				p.Toolchain.LibraryPaths = append(p.Toolchain.LibraryPaths, value)
			}
		case sectionEnv:
			if p.Environment == nil {
				p.Environment = make(map[string]string)
			}
			p.Environment[key] = value
		default:
			return types.BuildProfile{}, fmt.Errorf("line %d: entry before any section", i+1)
		}
	}

	return p, nil
}

// applySetting maps one [settings] key onto the profile. Unknown keys are
// ignored so newer writers stay readable by older parsers.
func applySetting(p *types.BuildProfile, key, value string) error {
	switch key {
	case "os":
		p.Platform.OSFamily = value
	case "os_version":
		p.Platform.OSVersion = value
	case "arch":
		p.Platform.Arch = value
	case "abi":
		p.Platform.DefaultABI = value
	case "distro":
		p.Platform.ReleaseName = value
	case "distro_version":
		p.Platform.ReleaseVersion = value
	case "derivative_of":
		p.Platform.DerivativeOf = value
	case "compiler":
		p.Toolchain.Family = types.Family(value)
		p.Toolchain.Status = types.StatusAvailable
	case "compiler.version":
		v, ok := types.ParseVersion(value)
		if !ok {
			return fmt.Errorf("bad compiler.version %q", value)
		}
		p.Toolchain.Version = v
	case "compiler.path":
		p.Toolchain.Path = value
	case "compiler.triple":
		p.Toolchain.TargetTriple = value
	case "build_type":
		bt := types.BuildType(value)
		if !types.IsKnownBuildType(bt) {
			return fmt.Errorf("unknown build_type %q", value)
		}
		p.BuildType = bt
	}
	return nil
}
