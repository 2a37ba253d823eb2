package secrets

import (
	"os"
	"path/filepath"
	"regexp"
	"strings"
)

const placeholder = "[REDACTED]"

// Issue describes a single suspected secret.
type Issue struct {
	File    string `json:"file"`
	Line    int    `json:"line"`
	Type    Type   `json:"type"`
	Snippet string `json:"snippet"`
}

// ScanResult reports whether a set of files is safe for external
// transmission. Safe is true exactly when Issues is empty.
type ScanResult struct {
	Safe   bool    `json:"safe"`
	Issues []Issue `json:"issues"`
}

// dangerousNames are exact (case-insensitive) filenames that are never safe
// to transmit, regardless of content.
var dangerousNames = map[string]bool{
	".npmrc":           true,
	".netrc":           true,
	".pgpass":          true,
	"id_rsa":           true,
	"id_dsa":           true,
	"id_ecdsa":         true,
	"id_ed25519":       true,
	"credentials":      true,
	"credentials.json": true,
	"secrets.json":     true,
	"secrets.yml":      true,
	"secrets.yaml":     true,
	"service-account.json": true,
}

var dangerousExts = map[string]bool{
	".pem": true,
	".key": true,
	".p12": true,
	".pfx": true,
	".jks": true,
	".keystore": true,
}

// IsDangerousFile classifies a path by filename alone. It flags env files,
// key and certificate material, and anything named after credentials or
// secrets, independent of content.
func IsDangerousFile(path string) bool {
	name := strings.ToLower(filepath.Base(path))
	// Every .env variant is dangerous by name, whatever the suffix.
	if strings.HasPrefix(name, ".env") {
		return true
	}
	if dangerousNames[name] {
		return true
	}
	if dangerousExts[filepath.Ext(name)] {
		return true
	}
	return strings.Contains(name, "credentials") || strings.Contains(name, "secrets")
}

// Scan checks the given repository-relative paths for secrets using the
// supplied ordered rules. Dangerous filenames short-circuit to a single
// sensitive_file issue without reading content. Unreadable files are
// skipped and contribute no issues.
func Scan(rootDir string, paths []string, rules []Rule) ScanResult {
	var issues []Issue
	for _, rel := range paths {
		if IsDangerousFile(rel) {
			issues = append(issues, Issue{
				File:    rel,
				Line:    0,
				Type:    TypeSensitiveFile,
				Snippet: "filename matches sensitive-file denylist",
			})
			continue
		}
		data, err := os.ReadFile(filepath.Join(rootDir, rel))
		if err != nil {
			continue
		}
		issues = append(issues, scanContent(rel, string(data), rules)...)
	}
	return ScanResult{Safe: len(issues) == 0, Issues: issues}
}

// scanContent runs every rule against the file content, applying the
// example-file, comment-line, and placeholder exemptions.
func scanContent(rel, content string, rules []Rule) []Issue {
	if isExemptFile(rel) {
		return nil
	}
	var issues []Issue
	for _, rule := range rules {
		for _, loc := range rule.Pattern.FindAllStringIndex(content, -1) {
			match := content[loc[0]:loc[1]]
			line := lineOf(content, loc[0])
			if isCommentLine(lineText(content, loc[0])) {
				continue
			}
			if isPlaceholder(match) {
				continue
			}
			issues = append(issues, Issue{
				File:    rel,
				Line:    line,
				Type:    rule.Type,
				Snippet: snippet(match),
			})
		}
	}
	return issues
}

// docExts are documentation extensions whose content is never scanned;
// secrets quoted in docs are overwhelmingly examples.
var docExts = map[string]bool{
	".md":  true,
	".mdx": true,
	".rst": true,
	".txt": true,
}

func isExemptFile(path string) bool {
	name := strings.ToLower(filepath.Base(path))
	if strings.Contains(name, ".example") || strings.Contains(name, ".template") || strings.Contains(name, ".sample") {
		return true
	}
	return docExts[filepath.Ext(name)]
}

var commentPrefixes = []string{"//", "#", "--", ";", "*", "/*", "<!--"}

func isCommentLine(line string) bool {
	trimmed := strings.TrimSpace(line)
	for _, p := range commentPrefixes {
		if strings.HasPrefix(trimmed, p) {
			return true
		}
	}
	return false
}

var placeholderFragments = []string{
	"your-", "your_", "xxx", "placeholder", "changeme", "change-me",
	"example", "dummy", "<", "${", "{{",
}

func isPlaceholder(match string) bool {
	lower := strings.ToLower(match)
	for _, frag := range placeholderFragments {
		if strings.Contains(lower, frag) {
			return true
		}
	}
	return false
}

// lineOf returns the 1-based line number of a byte offset.
func lineOf(content string, offset int) int {
	return strings.Count(content[:offset], "\n") + 1
}

// lineText returns the full line containing the byte offset.
func lineText(content string, offset int) string {
	start := strings.LastIndex(content[:offset], "\n") + 1
	end := strings.Index(content[offset:], "\n")
	if end < 0 {
		return content[start:]
	}
	return content[start : offset+end]
}

// snippet produces a masked excerpt of a match. The secret-shaped tail is
// replaced so the scanner never leaks a usable value in its own output.
func snippet(match string) string {
	masked := Mask(match)
	if len(masked) > 80 {
		masked = masked[:80] + "..."
	}
	return masked
}

// valueTail matches the value side of an assignment-shaped secret.
var valueTail = regexp.MustCompile(`[:=]\s*["']?\S+`)

// Mask replaces secret-shaped substrings in text with [REDACTED]. Text with
// no recognizable assignment shape is replaced wholesale.
func Mask(text string) string {
	if valueTail.MatchString(text) {
		return valueTail.ReplaceAllStringFunc(text, func(m string) string {
			return m[:1] + " " + placeholder
		})
	}
	return placeholder
}

// MaskAll applies every default rule to text and masks the matches. Used to
// scrub free-form text (prompts, logs) before it leaves the process.
func MaskAll(text string) string {
	result := text
	for _, rule := range defaultRules {
		result = rule.Pattern.ReplaceAllString(result, placeholder)
	}
	return result
}
