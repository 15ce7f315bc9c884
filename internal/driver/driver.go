// Package driver discovers the files to lint, builds the cross-file index,
// and fans per-file checks out across a bounded worker pool. Every worker
// owns its FileSet, so results carry fully located diagnostics plus the
// content they refer to and formatting needs no shared state.
package driver

import (
	"bytes"
	"context"
	"crypto/sha256"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strings"

	"golang.org/x/sync/errgroup"

	"rlint/internal/checker"
	"rlint/internal/config"
	"rlint/internal/diag"
	"rlint/internal/fix"
	"rlint/internal/parser"
	"rlint/internal/rmd"
	"rlint/internal/source"
)

// Options configures a driver run.
type Options struct {
	Config  config.Config
	Fix     bool // apply safe fixes and write files back
	DryRun  bool // with Fix: report what would change, write nothing
	Jobs    int  // overrides Config.Jobs when positive
	NoCache bool

	// Events receives per-file progress when set. Run closes it on return.
	Events chan<- Event
}

// Event reports per-file progress to an optional observer.
type Event struct {
	Path     string
	Working  bool // the worker picked the file up; a second event follows
	Err      bool
	Findings int
}

// FileResult is the outcome for one file.
type FileResult struct {
	Path       string
	Content    []byte // the content the diagnostics refer to
	Diags      []diag.Diagnostic
	Fixed      bool // content was rewritten on disk
	Iterations int  // convergence passes, fix mode only
	Err        error
}

// HasErrors reports whether any result carries an error-severity diagnostic
// or failed outright.
func HasErrors(results []FileResult) bool {
	for _, r := range results {
		if r.Err != nil {
			return true
		}
		for _, d := range r.Diags {
			if d.Severity >= diag.SevError {
				return true
			}
		}
	}
	return false
}

// HasFindings reports whether any result carries diagnostics at all.
func HasFindings(results []FileResult) bool {
	for _, r := range results {
		if r.Err != nil || len(r.Diags) > 0 {
			return true
		}
	}
	return false
}

// Run lints every file reachable from paths. Results come back in the
// discovery order regardless of which worker finished first.
func Run(ctx context.Context, paths []string, opts Options) ([]FileResult, error) {
	files, err := Discover(paths, opts.Config)
	if err != nil || len(files) == 0 {
		if opts.Events != nil {
			close(opts.Events)
		}
		return nil, err
	}

	jobs := opts.Jobs
	if jobs <= 0 {
		jobs = opts.Config.Jobs
	}
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}

	index, indexHash := buildIndex(files)
	cfgHash := configFingerprint(opts.Config)

	var cache *DiskCache
	if !opts.NoCache && !opts.Fix {
		// best effort: a broken cache directory just disables caching
		cache, _ = OpenDiskCache("rlint") //nolint:errcheck // see above
	}

	results := make([]FileResult, len(files))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(min(jobs, len(files)))
	for i, path := range files {
		g.Go(func() error {
			select {
			case <-gctx.Done():
				return gctx.Err()
			default:
			}
			emit(opts.Events, Event{Path: path, Working: true})
			results[i] = processFile(path, index, indexHash, cfgHash, cache, opts)
			emit(opts.Events, Event{
				Path:     path,
				Err:      results[i].Err != nil,
				Findings: len(results[i].Diags),
			})
			return nil
		})
	}
	err = g.Wait()
	if opts.Events != nil {
		close(opts.Events)
	}
	if err != nil {
		return results, err
	}
	return results, nil
}

// Discover expands paths into the sorted list of lintable files. Explicitly
// named files are taken as given; directories are walked with hidden
// subtrees and configured excludes pruned.
func Discover(paths []string, cfg config.Config) ([]string, error) {
	seen := make(map[string]bool)
	var out []string
	add := func(p string) {
		p = filepath.Clean(p)
		if !seen[p] {
			seen[p] = true
			out = append(out, p)
		}
	}

	for _, root := range paths {
		info, err := os.Stat(root)
		if err != nil {
			return nil, err
		}
		if !info.IsDir() {
			add(root)
			continue
		}
		walkErr := filepath.WalkDir(root, func(p string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			rel, relErr := filepath.Rel(root, p)
			if relErr != nil {
				rel = p
			}
			if d.IsDir() {
				if p != root && (strings.HasPrefix(d.Name(), ".") || cfg.Excluded(rel)) {
					return filepath.SkipDir
				}
				return nil
			}
			if !lintablePath(p) || cfg.Excluded(rel) {
				return nil
			}
			add(p)
			return nil
		})
		if walkErr != nil {
			return nil, walkErr
		}
	}
	sort.Strings(out)
	return out, nil
}

func emit(ch chan<- Event, ev Event) {
	if ch != nil {
		ch <- ev
	}
}

func lintablePath(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".r") || rmd.IsRmdPath(path)
}

// buildIndex parses every R script once, up front, so the cross-file rules
// see the whole project before the workers start. Load and parse failures
// are ignored here; the owning worker reports them.
func buildIndex(files []string) (*checker.Index, Digest) {
	ix := checker.NewIndex()
	fileSet := source.NewFileSet()
	for _, path := range files {
		if rmd.IsRmdPath(path) {
			continue
		}
		id, err := fileSet.Load(path)
		if err != nil {
			continue
		}
		f, err := parser.Parse(fileSet.Get(id), nil)
		if err != nil {
			continue
		}
		ix.AddFile(path, f)
	}
	return ix, ix.Fingerprint()
}

func configFingerprint(cfg config.Config) Digest {
	h := sha256.New()
	for _, name := range cfg.Rules.Enable {
		h.Write([]byte("+" + name + "\n"))
	}
	for _, name := range cfg.Rules.Disable {
		h.Write([]byte("-" + name + "\n"))
	}
	var out Digest
	copy(out[:], h.Sum(nil))
	return out
}

func processFile(path string, index *checker.Index, indexHash, cfgHash Digest, cache *DiskCache, opts Options) FileResult {
	res := FileResult{Path: path}

	fileSet := source.NewFileSet()
	id, err := fileSet.Load(path)
	if err != nil {
		res.Err = err
		return res
	}
	file := fileSet.Get(id)
	res.Content = file.Content

	checkOpts := checker.Options{
		Enabled: opts.Config.EnabledRules(),
		Index:   index,
		Path:    path,
	}

	if rmd.IsRmdPath(path) {
		// chunk pipeline; Rmd documents are never rewritten
		res.Diags = rmd.Check(fileSet, path, file.Content, checkOpts)
		return res
	}

	if opts.Fix {
		cres := fix.Converge(fileSet, path, file.Content, opts.Config.Fix.MaxIterations, checkOpts)
		res.Diags = cres.Diags
		res.Iterations = cres.Iterations
		if !bytes.Equal(cres.Content, file.Content) {
			if !opts.DryRun {
				if err := writeBack(path, cres.Content); err != nil {
					res.Err = err
					return res
				}
			}
			res.Fixed = true
			res.Content = cres.Content
		}
		return res
	}

	key := cacheKey(file.Hash, cfgHash, indexHash)
	var payload CachePayload
	if hit, err := cache.Get(key, &payload); err == nil && hit {
		res.Diags = fromCached(payload.Diags)
		return res
	}

	bag := diag.NewBag(256)
	parsed, perr := parser.Parse(file, diag.BagReporter{Bag: bag})
	if perr != nil {
		diags := append([]diag.Diagnostic(nil), bag.Items()...)
		for i := range diags {
			start, _ := fileSet.Resolve(diags[i].Primary)
			diags[i].Row = start.Line
			diags[i].Col = start.Col
		}
		// parse failures are not cached: the author is editing this file
		res.Diags = diags
		return res
	}

	res.Diags = checker.Check(parsed, fileSet, checkOpts)
	_ = cache.Put(key, &CachePayload{ //nolint:errcheck // cache is best effort
		Schema: diskCacheSchemaVersion,
		Path:   path,
		Diags:  toCached(res.Diags),
	})
	return res
}

func writeBack(path string, content []byte) error {
	mode := os.FileMode(0o644)
	if info, err := os.Stat(path); err == nil {
		mode = info.Mode()
	}
	return os.WriteFile(path, content, mode)
}
