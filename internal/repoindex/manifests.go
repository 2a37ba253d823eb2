package repoindex

import (
	"encoding/json"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"
)

// ManifestType tags the ecosystem a manifest belongs to.
type ManifestType string

const (
	ManifestNPM     ManifestType = "npm"
	ManifestCargo   ManifestType = "cargo"
	ManifestPython  ManifestType = "python"
	ManifestGo      ManifestType = "go"
	ManifestRuby    ManifestType = "ruby"
	ManifestUnknown ManifestType = "unknown"
)

// Manifest records one detected ecosystem manifest. Dependencies are the
// flattened dependency names when the ecosystem's format carries them.
type Manifest struct {
	Type         ManifestType `json:"type"`
	Path         string       `json:"path"`
	Name         string       `json:"name,omitempty"`
	Dependencies []string     `json:"dependencies,omitempty"`
}

// manifestFiles maps recognized manifest basenames to their ecosystem.
var manifestFiles = map[string]ManifestType{
	"package.json":     ManifestNPM,
	"Cargo.toml":       ManifestCargo,
	"pyproject.toml":   ManifestPython,
	"requirements.txt": ManifestPython,
	"go.mod":           ManifestGo,
	"Gemfile":          ManifestRuby,
}

// detectManifests records every manifest-named file in the tree. A manifest
// that fails to parse is skipped rather than aborting detection.
func detectManifests(rootDir string, files []string) []Manifest {
	var manifests []Manifest
	for _, rel := range files {
		mtype, ok := manifestFiles[path.Base(rel)]
		if !ok {
			continue
		}
		data, err := os.ReadFile(filepath.Join(rootDir, rel))
		if err != nil {
			continue
		}
		m, ok := parseManifest(mtype, rel, data)
		if !ok {
			continue
		}
		manifests = append(manifests, m)
	}
	return manifests
}

func parseManifest(mtype ManifestType, rel string, data []byte) (Manifest, bool) {
	m := Manifest{Type: mtype, Path: rel}
	switch mtype {
	case ManifestNPM:
		var pkg struct {
			Name            string            `json:"name"`
			Dependencies    map[string]string `json:"dependencies"`
			DevDependencies map[string]string `json:"devDependencies"`
		}
		if err := json.Unmarshal(data, &pkg); err != nil {
			return Manifest{}, false
		}
		m.Name = pkg.Name
		m.Dependencies = sortedKeys(pkg.Dependencies, pkg.DevDependencies)
	case ManifestCargo:
		var crate struct {
			Package struct {
				Name string `toml:"name"`
			} `toml:"package"`
			Dependencies    map[string]any `toml:"dependencies"`
			DevDependencies map[string]any `toml:"dev-dependencies"`
		}
		if err := toml.Unmarshal(data, &crate); err != nil {
			return Manifest{}, false
		}
		m.Name = crate.Package.Name
		m.Dependencies = sortedKeys(crate.Dependencies, crate.DevDependencies)
	case ManifestPython:
		if path.Base(rel) == "pyproject.toml" {
			var proj struct {
				Project struct {
					Name         string   `toml:"name"`
					Dependencies []string `toml:"dependencies"`
				} `toml:"project"`
			}
			if err := toml.Unmarshal(data, &proj); err != nil {
				return Manifest{}, false
			}
			m.Name = proj.Project.Name
			for _, dep := range proj.Project.Dependencies {
				m.Dependencies = append(m.Dependencies, requirementName(dep))
			}
		} else {
			m.Dependencies = parseRequirements(string(data))
		}
	case ManifestGo:
		m.Name, m.Dependencies = parseGoMod(string(data))
	case ManifestRuby:
		m.Dependencies = parseGemfile(string(data))
	}
	return m, true
}

func sortedKeys[V any](maps ...map[string]V) []string {
	var keys []string
	for _, m := range maps {
		for k := range m {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)
	return keys
}

// requirementName strips a PEP 508 requirement down to its package name.
func requirementName(req string) string {
	name := strings.TrimSpace(req)
	for _, sep := range []string{"[", "==", ">=", "<=", "~=", "!=", ">", "<", ";", " "} {
		if i := strings.Index(name, sep); i >= 0 {
			name = name[:i]
		}
	}
	return name
}

func parseRequirements(content string) []string {
	var deps []string
	for _, line := range strings.Split(content, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") || strings.HasPrefix(line, "-") {
			continue
		}
		if name := requirementName(line); name != "" {
			deps = append(deps, name)
		}
	}
	return deps
}

func parseGoMod(content string) (module string, deps []string) {
	inRequire := false
	for _, line := range strings.Split(content, "\n") {
		line = strings.TrimSpace(line)
		switch {
		case strings.HasPrefix(line, "module "):
			module = strings.TrimSpace(strings.TrimPrefix(line, "module "))
		case strings.HasPrefix(line, "require ("):
			inRequire = true
		case inRequire && line == ")":
			inRequire = false
		case inRequire || strings.HasPrefix(line, "require "):
			entry := strings.TrimPrefix(line, "require ")
			fields := strings.Fields(entry)
			if len(fields) >= 2 && !strings.HasPrefix(fields[0], "//") {
				deps = append(deps, fields[0])
			}
		}
	}
	return module, deps
}

func parseGemfile(content string) []string {
	var deps []string
	for _, line := range strings.Split(content, "\n") {
		line = strings.TrimSpace(line)
		if !strings.HasPrefix(line, "gem ") {
			continue
		}
		rest := strings.TrimSpace(strings.TrimPrefix(line, "gem "))
		rest = strings.Trim(rest, `"'`)
		if i := strings.IndexAny(rest, `"',`); i >= 0 {
			rest = rest[:i]
		}
		if rest != "" {
			deps = append(deps, rest)
		}
	}
	return deps
}
