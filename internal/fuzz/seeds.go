package fuzztests

import (
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const maxSeedBytes = 64 << 10 // 64 KiB cap for the corpus

var languageSeeds = []string{
	"",
	"x <- 1\n",
	"x <- T; y <- F\n",
	"f <- function(a, b = 2) {\n  a + b\n}\n",
	"if (x == NA) {\n  print(x)\n} else {\n  stop(\"no\")\n}\n",
	"for (i in 1:length(v)) {\n  next\n  v[i]\n}\n",
	"while (TRUE) {\n  break\n}\n",
	"repeat {\n  return(1)\n}\n",
	"# ignore semicolons: generated code\nx <- 1;\n",
	"# ignore-start unreachable_code: wip\nf()\n# ignore-end unreachable_code\n",
	"g <- function() {\n  return(1)\n  2\n}\n",
	"`odd name` <- function() NULL\n",
	"x$y[[1]] <- c(a = 1, 2)\n",
	"s <- \"multi\\nline\\\"quoted\\\"\"\n",
	"m <- matrix(1:6, nrow = 2); m %*% t(m)\n",
	"x <- (((1)))\n",
	"h <- function() invisible(NULL); h();\n",
}

func addCorpusSeeds(f *testing.F) {
	for _, seed := range languageSeeds {
		f.Add([]byte(seed))
	}
	addTestdataSeeds(f)
}

// addTestdataSeeds pulls every R script under testdata into the corpus when
// the directory exists.
func addTestdataSeeds(f *testing.F) {
	root := filepath.Join("..", "..", "testdata")
	if _, err := os.Stat(root); err != nil {
		return
	}
	_ = filepath.WalkDir(root, func(path string, d fs.DirEntry, walkErr error) error { //nolint:errcheck // corpus is best effort
		if walkErr != nil || d.IsDir() {
			return nil
		}
		if !strings.EqualFold(filepath.Ext(path), ".r") {
			return nil
		}
		src, err := os.ReadFile(path) // #nosec G304 -- path comes from repository testdata walk
		if err != nil {
			return nil
		}
		f.Add(clampSeed(src))
		return nil
	})
}

func clampSeed(src []byte) []byte {
	if len(src) <= maxSeedBytes {
		return append([]byte(nil), src...)
	}
	return append([]byte(nil), src[:maxSeedBytes]...)
}
