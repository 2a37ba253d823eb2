package review

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/auracoil/auracoil/internal/agent"
	"github.com/auracoil/auracoil/internal/bundle"
	"github.com/auracoil/auracoil/internal/cache"
	"github.com/auracoil/auracoil/internal/config"
	"github.com/auracoil/auracoil/internal/gitctx"
	"github.com/auracoil/auracoil/internal/region"
	"github.com/auracoil/auracoil/internal/repoindex"
	"github.com/auracoil/auracoil/internal/secrets"
	"github.com/auracoil/auracoil/internal/state"
)

// NoDocumentError means the host document does not exist. Reviewing cannot
// proceed without it; the remediation is `auracoil init`.
type NoDocumentError struct {
	Path string
}

func (e *NoDocumentError) Error() string {
	return fmt.Sprintf("host document %s not found; run `auracoil init` to create it", e.Path)
}

// placeholderRegion stands in for the owned region on a first review, when
// the host document has no markers yet.
const placeholderRegion = "(no prior review section)"

// Options tune a single review run.
type Options struct {
	SkipPreflight bool
}

// Outcome summarizes a completed review run.
type Outcome struct {
	ArtifactPath  string
	FilesSent     []string
	FilesExcluded []string
	ScanIssues    []secrets.Issue
	TokenEstimate int
	BundleHash    string
	CacheHit      bool
	Commit        string
}

// Run executes the full review pipeline: preflight, host document and
// region read, evidence gathering, bundle construction, secret filtering,
// external invocation (or cache hit), artifact persistence, and a single
// state update. Failure at any step leaves persisted state untouched.
func Run(ctx context.Context, root string, cfg config.Config, runner agent.Runner, opts Options) (*Outcome, error) {
	if !opts.SkipPreflight {
		if err := runner.Preflight(ctx); err != nil {
			return nil, fmt.Errorf("reviewer preflight failed: %w", err)
		}
	}

	docBytes, err := os.ReadFile(filepath.Join(root, cfg.DocPath))
	if err != nil {
		return nil, &NoDocumentError{Path: cfg.DocPath}
	}
	regionText, ok := region.Extract(string(docBytes))
	if !ok {
		regionText = placeholderRegion
	}

	store := state.NewStore(root)
	st := store.Load()

	ev := gatherEvidence(root, st.LastReviewedCommit, cfg.RecentCommits)

	idx, err := repoindex.Build(root)
	if err != nil {
		return nil, fmt.Errorf("indexing repository: %w", err)
	}
	b := bundle.Build(root, idx, bundle.Config{
		MaxFiles:     cfg.Bundle.MaxFiles,
		MaxTotalSize: cfg.Bundle.MaxTotalSize,
		MaxTokens:    cfg.Bundle.MaxTokens,
		Exclude:      cfg.Bundle.Exclude,
	})

	// A scan issue narrows the file set; it never blocks the review.
	scan := secrets.Scan(root, b.Files(), secrets.DefaultRules())
	flagged := make(map[string]bool)
	for _, issue := range scan.Issues {
		flagged[issue.File] = true
	}
	var safe, excluded []string
	for _, f := range b.Files() {
		if flagged[f] {
			excluded = append(excluded, f)
		} else {
			safe = append(safe, f)
		}
	}

	prompt := BuildPrompt(regionText, ev, safe)

	c, err := cache.New(cfg.Cache.Enabled, cfg.Cache.Dir, cfg.Cache.TTLSeconds)
	if err != nil {
		return nil, fmt.Errorf("opening cache: %w", err)
	}
	key := cache.BuildKey(cfg.Model, b.Hash())
	output, hit := c.Get(key)
	if !hit {
		var outputFile string
		if cfg.OutputFile != "" {
			outputFile = filepath.Join(root, cfg.OutputFile)
		}
		res, err := runner.Invoke(ctx, agent.Invocation{
			Prompt:      prompt,
			AttachFiles: safe,
			Model:       cfg.Model,
			Timeout:     time.Duration(cfg.TimeoutSeconds) * time.Second,
			Env:         cfg.Env,
			OutputFile:  outputFile,
		})
		if err != nil {
			return nil, fmt.Errorf("invoking reviewer: %w", err)
		}
		if !res.Success {
			return nil, fmt.Errorf("external reviewer failed: %s", res.ErrorMessage)
		}
		output = res.Output
		// A cache write failure never discards a successful review.
		if err := c.Put(key, output); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: caching response: %v\n", err)
		}
	}

	artifactPath, err := WriteArtifact(root, output)
	if err != nil {
		return nil, fmt.Errorf("writing review artifact: %w", err)
	}

	head := gitctx.Head(root)
	now := time.Now().UTC()
	err = store.Update(func(s *state.State) {
		s.LastReviewedCommit = head
		s.LastReviewedAt = &now
		s.ContentHash = b.Hash()
	})
	if err != nil {
		return nil, fmt.Errorf("updating state: %w", err)
	}

	return &Outcome{
		ArtifactPath:  artifactPath,
		FilesSent:     safe,
		FilesExcluded: excluded,
		ScanIssues:    scan.Issues,
		TokenEstimate: b.TotalTokenEstimate,
		BundleHash:    b.Hash(),
		CacheHit:      hit,
		Commit:        head,
	}, nil
}
