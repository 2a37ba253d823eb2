package repoindex

import (
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"
	"time"
)

// Caps on the capped Index collections.
const (
	maxEntrypoints = 10
	maxConfigs     = 20
	maxDocs        = 20
)

// Language aggregates per-language file and line counts.
type Language struct {
	Name      string `json:"name"`
	Extension string `json:"extension"`
	FileCount int    `json:"fileCount"`
	LineCount int    `json:"lineCount"`
}

// Stats summarizes the indexed tree.
type Stats struct {
	TotalFiles   int       `json:"totalFiles"`
	TotalLines   int       `json:"totalLines"`
	LastModified time.Time `json:"lastModified"`
}

// Index is an immutable structural snapshot of a repository.
type Index struct {
	Languages   []Language `json:"languages"`
	Frameworks  []string   `json:"frameworks"`
	Entrypoints []string   `json:"entrypoints"`
	Manifests   []Manifest `json:"manifests"`
	Configs     []string   `json:"configs"`
	Docs        []string   `json:"docs"`
	Stats       Stats      `json:"stats"`
}

// langExts maps source extensions to language names. Unmapped extensions
// on enumerated files bucket as "Unknown".
var langExts = map[string]string{
	".go":    "Go",
	".py":    "Python",
	".js":    "JavaScript",
	".jsx":   "JavaScript",
	".ts":    "TypeScript",
	".tsx":   "TypeScript",
	".rs":    "Rust",
	".java":  "Java",
	".rb":    "Ruby",
	".c":     "C",
	".h":     "C",
	".cpp":   "C++",
	".cc":    "C++",
	".cs":    "C#",
	".php":   "PHP",
	".swift": "Swift",
	".kt":    "Kotlin",
	".sh":    "Shell",
	".sql":   "SQL",
}

// sourceExts is the enumeration allow-list: extensions counted toward
// language and line statistics. Extensions here without a langExts entry
// bucket as "Unknown".
var sourceExts = func() map[string]bool {
	s := map[string]bool{
		".scala": true,
		".ex":    true,
		".exs":   true,
		".lua":   true,
		".zig":   true,
		".dart":  true,
		".vue":   true,
	}
	for ext := range langExts {
		s[ext] = true
	}
	return s
}()

// excludedDirs are never descended into.
var excludedDirs = map[string]bool{
	".git":         true,
	"node_modules": true,
	"vendor":       true,
	"dist":         true,
	"build":        true,
	"out":          true,
	"target":       true,
	"__pycache__":  true,
	".venv":        true,
	"venv":         true,
	"coverage":     true,
	".next":        true,
	".auracoil":    true,
}

// entrypointGlobs are conventional entry-file patterns, evaluated in order.
var entrypointGlobs = []string{
	"main.go",
	"cmd/*/main.go",
	"src/index.ts",
	"src/index.js",
	"src/main.ts",
	"src/main.js",
	"src/main.py",
	"src/app.ts",
	"src/app.js",
	"index.ts",
	"index.js",
	"main.py",
	"app.py",
	"main.rs",
	"src/main.rs",
}

// configNames are recognized tool/CI configuration files, matched by
// basename or by path suffix.
var configNames = []string{
	"tsconfig.json",
	"jsconfig.json",
	".eslintrc",
	".eslintrc.js",
	".eslintrc.json",
	".prettierrc",
	"webpack.config.js",
	"vite.config.ts",
	"vite.config.js",
	"babel.config.js",
	"rollup.config.js",
	"Dockerfile",
	"docker-compose.yml",
	"docker-compose.yaml",
	"Makefile",
	"pytest.ini",
	"setup.cfg",
	".golangci.yml",
	"ruff.toml",
}

// Build walks rootDir and produces a fresh structural snapshot. Soft
// failures (unreadable files, unparseable manifests) are absorbed; only a
// failure to walk the root itself is an error.
func Build(rootDir string) (*Index, error) {
	var files []string
	langs := make(map[string]*Language)
	var stats Stats

	err := filepath.WalkDir(rootDir, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			if p == rootDir {
				return err
			}
			return nil // unreadable subtree: soft skip
		}
		if d.IsDir() {
			if p != rootDir && (excludedDirs[d.Name()] || (strings.HasPrefix(d.Name(), ".") && d.Name() != ".github")) {
				return filepath.SkipDir
			}
			return nil
		}
		rel, relErr := filepath.Rel(rootDir, p)
		if relErr != nil {
			return nil
		}
		rel = filepath.ToSlash(rel)
		files = append(files, rel)

		ext := strings.ToLower(path.Ext(rel))
		if sourceExts[ext] {
			name := langExts[ext]
			if name == "" {
				name = "Unknown"
			}
			countLanguage(langs, name, ext, p, &stats)
		}
		if info, infoErr := d.Info(); infoErr == nil && info.ModTime().After(stats.LastModified) {
			stats.LastModified = info.ModTime()
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walking %s: %w", rootDir, err)
	}
	sort.Strings(files)

	manifests := detectManifests(rootDir, files)

	idx := &Index{
		Languages:   sortLanguages(langs),
		Frameworks:  detectFrameworks(rootDir, files, manifests),
		Entrypoints: matchOrdered(files, entrypointGlobs, maxEntrypoints),
		Manifests:   manifests,
		Configs:     detectConfigs(files),
		Docs:        detectDocs(files),
		Stats:       stats,
	}
	return idx, nil
}

// countLanguage updates the per-language counters for one source file.
// Unreadable files contribute to the file count but not the line count.
func countLanguage(langs map[string]*Language, name, ext, absPath string, stats *Stats) {
	l, present := langs[name]
	if !present {
		l = &Language{Name: name, Extension: ext}
		langs[name] = l
	}
	l.FileCount++
	stats.TotalFiles++
	data, err := os.ReadFile(absPath)
	if err != nil {
		return
	}
	lines := strings.Count(string(data), "\n") + 1
	l.LineCount += lines
	stats.TotalLines += lines
}

func sortLanguages(langs map[string]*Language) []Language {
	result := make([]Language, 0, len(langs))
	for _, l := range langs {
		result = append(result, *l)
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].LineCount != result[j].LineCount {
			return result[i].LineCount > result[j].LineCount
		}
		return result[i].Name < result[j].Name
	})
	return result
}

// matchOrdered evaluates glob patterns in order against the sorted file
// list, unioning matches (deduplicated) up to limit.
func matchOrdered(files, globs []string, limit int) []string {
	seen := make(map[string]bool)
	var result []string
	for _, glob := range globs {
		for _, f := range files {
			if len(result) >= limit {
				return result
			}
			if seen[f] {
				continue
			}
			if ok, _ := path.Match(glob, f); ok {
				seen[f] = true
				result = append(result, f)
			}
		}
	}
	return result
}

func detectConfigs(files []string) []string {
	var result []string
	for _, f := range files {
		if len(result) >= maxConfigs {
			break
		}
		base := path.Base(f)
		if isWorkflowFile(f) {
			result = append(result, f)
			continue
		}
		for _, name := range configNames {
			if base == name {
				result = append(result, f)
				break
			}
		}
	}
	return result
}

func isWorkflowFile(rel string) bool {
	if !strings.HasPrefix(rel, ".github/workflows/") {
		return false
	}
	ext := path.Ext(rel)
	return ext == ".yml" || ext == ".yaml"
}

func detectDocs(files []string) []string {
	var result []string
	for _, f := range files {
		if len(result) >= maxDocs {
			break
		}
		ext := strings.ToLower(path.Ext(f))
		if ext == ".md" || ext == ".mdx" || ext == ".rst" {
			result = append(result, f)
		}
	}
	return result
}
