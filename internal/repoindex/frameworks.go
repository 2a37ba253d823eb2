package repoindex

import (
	"os"
	"path"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// frameworkDef declares how one framework is recognized: by marker file
// globs, by dependency names in any detected manifest, or both.
type frameworkDef struct {
	name    string
	markers []string
	deps    []string
}

// frameworkDefs is evaluated in order so detection output is deterministic.
var frameworkDefs = []frameworkDef{
	{name: "React", deps: []string{"react"}},
	{name: "Next.js", markers: []string{"next.config.js", "next.config.mjs", "next.config.ts"}, deps: []string{"next"}},
	{name: "Vue", deps: []string{"vue"}},
	{name: "Angular", markers: []string{"angular.json"}, deps: []string{"@angular/core"}},
	{name: "Svelte", markers: []string{"svelte.config.js"}, deps: []string{"svelte"}},
	{name: "Express", deps: []string{"express"}},
	{name: "Django", markers: []string{"manage.py"}, deps: []string{"django", "Django"}},
	{name: "Flask", deps: []string{"flask", "Flask"}},
	{name: "FastAPI", deps: []string{"fastapi"}},
	{name: "Rails", markers: []string{"config/application.rb"}, deps: []string{"rails"}},
	{name: "Gin", deps: []string{"github.com/gin-gonic/gin"}},
	{name: "Cobra", deps: []string{"github.com/spf13/cobra"}},
	{name: "Actix", deps: []string{"actix-web"}},
	{name: "Axum", deps: []string{"axum"}},
}

// detectFrameworks reports each framework whose marker glob matches a file
// or whose dependency name appears in the union of manifest dependencies.
// Docker Compose is detected separately because its marker must actually
// parse as a compose file to count.
func detectFrameworks(rootDir string, files []string, manifests []Manifest) []string {
	depSet := make(map[string]bool)
	for _, m := range manifests {
		for _, d := range m.Dependencies {
			depSet[d] = true
		}
	}

	var found []string
	for _, def := range frameworkDefs {
		if matchesFramework(def, files, depSet) {
			found = append(found, def.name)
		}
	}
	for _, f := range files {
		if !composeNames[path.Base(f)] {
			continue
		}
		if data, err := os.ReadFile(filepath.Join(rootDir, f)); err == nil && DetectCompose(f, data) {
			found = append(found, "Docker Compose")
			break
		}
	}
	return found
}

func matchesFramework(def frameworkDef, files []string, depSet map[string]bool) bool {
	for _, dep := range def.deps {
		if depSet[dep] {
			return true
		}
	}
	for _, marker := range def.markers {
		for _, f := range files {
			if ok, _ := path.Match(marker, f); ok {
				return true
			}
		}
	}
	return false
}

var composeNames = map[string]bool{
	"docker-compose.yml":  true,
	"docker-compose.yaml": true,
	"compose.yml":         true,
	"compose.yaml":        true,
}

// DetectCompose reports whether data is a docker-compose file with at least
// one service. Callers pass the content of a compose-named file; anything
// that fails to parse is not a compose file.
func DetectCompose(rel string, data []byte) bool {
	if !composeNames[path.Base(rel)] {
		return false
	}
	var compose struct {
		Services map[string]yaml.Node `yaml:"services"`
	}
	if err := yaml.Unmarshal(data, &compose); err != nil {
		return false
	}
	return len(compose.Services) > 0
}
