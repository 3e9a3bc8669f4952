// Package scan discovers the source files a bundle draws from, matching
// glob patterns against paths relative to the project root.
package scan

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/gobwas/glob"
)

// compiledPattern holds both the pattern string and compiled glob.
type compiledPattern struct {
	pattern string
	glob    glob.Glob
}

// Scanner walks a project tree and returns the files matching the include
// patterns that no ignore pattern excludes.
type Scanner struct {
	rootDir         string
	includePatterns []compiledPattern
	ignorePatterns  []compiledPattern
}

// NewScanner compiles the include and ignore patterns for rootDir. A
// pattern that fails to compile fails the whole constructor; bad patterns
// are configuration errors, not data.
func NewScanner(rootDir string, includePatterns, ignorePatterns []string) (*Scanner, error) {
	s := &Scanner{rootDir: rootDir}

	for _, pattern := range includePatterns {
		g, err := glob.Compile(pattern, '/')
		if err != nil {
			return nil, err
		}
		s.includePatterns = append(s.includePatterns, compiledPattern{pattern: pattern, glob: g})
	}

	for _, pattern := range ignorePatterns {
		g, err := glob.Compile(pattern, '/')
		if err != nil {
			return nil, err
		}
		s.ignorePatterns = append(s.ignorePatterns, compiledPattern{pattern: pattern, glob: g})
	}

	return s, nil
}

// Discover walks the tree and returns matching file paths in walk order.
func (s *Scanner) Discover() ([]string, error) {
	files := []string{}

	err := filepath.Walk(s.rootDir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}

		relPath, err := filepath.Rel(s.rootDir, path)
		if err != nil {
			return err
		}
		relPath = filepath.ToSlash(relPath)

		if info.IsDir() {
			// Prune ignored directories instead of testing every child.
			if relPath != "." && s.shouldIgnore(relPath) {
				return filepath.SkipDir
			}
			return nil
		}

		if s.shouldIgnore(relPath) {
			return nil
		}

		if s.matchesAnyPattern(relPath, s.includePatterns) {
			files = append(files, path)
		}

		return nil
	})

	return files, err
}

// shouldIgnore checks if a path matches any ignore pattern.
func (s *Scanner) shouldIgnore(relPath string) bool {
	// The tool's own state directory is never bundled.
	if strings.HasPrefix(relPath, ".llmctx/") || relPath == ".llmctx" {
		return true
	}

	if s.matchesAnyPattern(relPath, s.ignorePatterns) {
		return true
	}

	// A directory should match its own "dir/**" pattern. For example,
	// "node_modules" matches the pattern "node_modules/**".
	return s.matchesAnyPattern(relPath+"/**", s.ignorePatterns)
}

// matchesAnyPattern checks if a path matches any of the given patterns.
func (s *Scanner) matchesAnyPattern(path string, patterns []compiledPattern) bool {
	for _, cp := range patterns {
		if cp.glob.Match(path) {
			return true
		}
	}

	// Root-level files have no slash, so "**/*.py" style patterns miss
	// them. Retry with the **/ prefix removed so "main.py" matches too.
	if !strings.Contains(path, "/") {
		for _, cp := range patterns {
			if strings.HasPrefix(cp.pattern, "**/") {
				simplified := strings.TrimPrefix(cp.pattern, "**/")
				if simplifiedGlob, err := glob.Compile(simplified, '/'); err == nil {
					if simplifiedGlob.Match(path) {
						return true
					}
				}
			}
		}
	}

	return false
}
