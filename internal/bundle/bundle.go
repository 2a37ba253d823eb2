package bundle

import (
	"crypto/sha256"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"

	"github.com/auracoil/auracoil/internal/repoindex"
)

// Config bounds bundle construction. Zero values take defaults.
type Config struct {
	MaxFiles     int
	MaxTotalSize int64
	MaxTokens    int
	Exclude      []string
}

// DefaultConfig returns the standard bundle budgets.
func DefaultConfig() Config {
	return Config{
		MaxFiles:     40,
		MaxTotalSize: 400_000,
		MaxTokens:    100_000,
	}
}

func (c Config) withDefaults() Config {
	def := DefaultConfig()
	if c.MaxFiles <= 0 {
		c.MaxFiles = def.MaxFiles
	}
	if c.MaxTotalSize <= 0 {
		c.MaxTotalSize = def.MaxTotalSize
	}
	if c.MaxTokens <= 0 {
		c.MaxTokens = def.MaxTokens
	}
	return c
}

// Bundle is a bounded selection of repository files for external
// transmission, grouped into priority buckets. Each path appears in at most
// one bucket.
type Bundle struct {
	Manifests   []string `json:"manifests"`
	Entrypoints []string `json:"entrypoints"`
	Configs     []string `json:"configs"`
	Docs        []string `json:"docs"`
	Samples     []string `json:"samples"`

	// ContentHashes maps each included path to the sha256 of its bytes.
	ContentHashes map[string]string `json:"contentHashes"`

	// TotalTokenEstimate is the running ceil(bytes/4) sum over all files.
	TotalTokenEstimate int `json:"totalTokenEstimate"`
	// TotalBytes is the accumulated byte size of all included files.
	TotalBytes int64 `json:"totalBytes"`
}

// docPriority is attempted first among docs, by exact case-insensitive name.
var docPriority = []string{"README.md", "ARCHITECTURE.md", "CONTRIBUTING.md", "AGENTS.md"}

// configPriority is matched by path suffix, in order.
var configPriority = []string{
	"tsconfig.json",
	".eslintrc.json",
	".eslintrc.js",
	"webpack.config.js",
	"vite.config.ts",
	".github/workflows/ci.yml",
	"docker-compose.yml",
}

// sampleDirs name architectural directories; at most two files are taken
// per directory name, in list order.
var sampleDirs = []string{
	"services",
	"controllers",
	"models",
	"components",
	"hooks",
	"utils",
	"lib",
	"api",
	"routes",
	"middleware",
}

const samplesPerGlob = 2

// builder accumulates admission state during one Build call.
type builder struct {
	root   string
	cfg    Config
	bundle *Bundle
	seen   map[string]bool
}

// Build selects a bounded set of files from the index in strict priority
// order: manifests, docs, configs, entrypoints, then directory samples.
// Candidates that would exceed any budget are skipped, not fatal; a later,
// smaller file may still fit.
func Build(rootDir string, idx *repoindex.Index, cfg Config) *Bundle {
	b := &builder{
		root: rootDir,
		cfg:  cfg.withDefaults(),
		bundle: &Bundle{
			ContentHashes: make(map[string]string),
		},
		seen: make(map[string]bool),
	}

	for _, m := range idx.Manifests {
		b.tryAdd(m.Path, &b.bundle.Manifests)
	}
	for _, doc := range orderDocs(idx.Docs) {
		b.tryAdd(doc, &b.bundle.Docs)
	}
	for _, cfgFile := range orderConfigs(idx.Configs) {
		b.tryAdd(cfgFile, &b.bundle.Configs)
	}
	for _, entry := range idx.Entrypoints {
		b.tryAdd(entry, &b.bundle.Entrypoints)
	}
	b.addSamples()

	return b.bundle
}

// tryAdd runs the admission check for one candidate and appends it to the
// bucket on success.
func (b *builder) tryAdd(rel string, bucket *[]string) {
	if b.seen[rel] {
		return
	}
	if matchesAny(rel, b.cfg.Exclude) {
		return
	}
	data, err := os.ReadFile(filepath.Join(b.root, rel))
	if err != nil {
		return
	}
	size := int64(len(data))
	tokens := (len(data) + 3) / 4

	if len(b.seen) >= b.cfg.MaxFiles {
		return
	}
	if b.bundle.TotalBytes+size > b.cfg.MaxTotalSize {
		return
	}
	if b.bundle.TotalTokenEstimate+tokens > b.cfg.MaxTokens {
		return
	}

	b.seen[rel] = true
	*bucket = append(*bucket, rel)
	b.bundle.ContentHashes[rel] = fmt.Sprintf("%x", sha256.Sum256(data))
	b.bundle.TotalBytes += size
	b.bundle.TotalTokenEstimate += tokens
}

// addSamples scans the tree for files under architectural directories,
// admitting at most samplesPerGlob files per directory name until the file
// budget runs out.
func (b *builder) addSamples() {
	files := listFiles(b.root)
	for _, dir := range sampleDirs {
		taken := 0
		for _, rel := range files {
			if len(b.seen) >= b.cfg.MaxFiles || taken >= samplesPerGlob {
				break
			}
			if !hasDirSegment(rel, dir) {
				continue
			}
			before := len(b.seen)
			b.tryAdd(rel, &b.bundle.Samples)
			if len(b.seen) > before {
				taken++
			}
		}
	}
}

// hasDirSegment reports whether any directory component of rel equals dir.
func hasDirSegment(rel, dir string) bool {
	parts := strings.Split(path.Dir(rel), "/")
	for _, p := range parts {
		if p == dir {
			return true
		}
	}
	return false
}

// Files returns every included path, bucket order preserved.
func (b *Bundle) Files() []string {
	var all []string
	all = append(all, b.Manifests...)
	all = append(all, b.Entrypoints...)
	all = append(all, b.Configs...)
	all = append(all, b.Docs...)
	all = append(all, b.Samples...)
	return all
}

// Count returns the total number of included files.
func (b *Bundle) Count() int {
	return len(b.ContentHashes)
}

// Hash returns a stable fingerprint of the bundle: the sha256 of the
// lexicographically sorted content hashes. It is invariant to the order
// files were added but changes when any included file's content changes.
func (b *Bundle) Hash() string {
	hashes := make([]string, 0, len(b.ContentHashes))
	for _, h := range b.ContentHashes {
		hashes = append(hashes, h)
	}
	sort.Strings(hashes)
	sum := sha256.Sum256([]byte(strings.Join(hashes, "|")))
	return fmt.Sprintf("%x", sum)
}

func orderDocs(docs []string) []string {
	var ordered []string
	used := make(map[string]bool)
	for _, want := range docPriority {
		for _, doc := range docs {
			if strings.EqualFold(path.Base(doc), want) && !used[doc] {
				ordered = append(ordered, doc)
				used[doc] = true
			}
		}
	}
	for _, doc := range docs {
		if !used[doc] {
			ordered = append(ordered, doc)
		}
	}
	return ordered
}

func orderConfigs(configs []string) []string {
	var ordered []string
	used := make(map[string]bool)
	for _, suffix := range configPriority {
		for _, c := range configs {
			if strings.HasSuffix(c, suffix) && !used[c] {
				ordered = append(ordered, c)
				used[c] = true
			}
		}
	}
	for _, c := range configs {
		if !used[c] {
			ordered = append(ordered, c)
		}
	}
	return ordered
}

func matchesAny(rel string, patterns []string) bool {
	for _, pattern := range patterns {
		if ok, _ := path.Match(pattern, rel); ok {
			return true
		}
		clean := strings.TrimPrefix(pattern, "**/")
		if clean != pattern {
			if ok, _ := path.Match(clean, path.Base(rel)); ok {
				return true
			}
		}
	}
	return false
}

// listFiles enumerates relative paths for sample matching, honoring the
// indexer's directory exclusions.
func listFiles(rootDir string) []string {
	var files []string
	entries, err := os.ReadDir(rootDir)
	if err != nil {
		return nil
	}
	for _, e := range entries {
		walkSamples(rootDir, e.Name(), e, &files)
	}
	sort.Strings(files)
	return files
}

var skipDirs = map[string]bool{
	".git":         true,
	"node_modules": true,
	"vendor":       true,
	"dist":         true,
	"build":        true,
	"target":       true,
	"__pycache__":  true,
	".auracoil":    true,
}

func walkSamples(rootDir, rel string, entry os.DirEntry, files *[]string) {
	if entry.IsDir() {
		if skipDirs[entry.Name()] || strings.HasPrefix(entry.Name(), ".") {
			return
		}
		children, err := os.ReadDir(filepath.Join(rootDir, rel))
		if err != nil {
			return
		}
		for _, child := range children {
			walkSamples(rootDir, path.Join(rel, child.Name()), child, files)
		}
		return
	}
	*files = append(*files, rel)
}
