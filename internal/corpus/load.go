package corpus

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// Load walks a corpus directory and builds a Corpus from every file
// matching the pattern. The first path segment under dir names the
// category. Malformed files fail the whole load; nothing is skipped.
func Load(dir, pattern string) (*Corpus, error) {
	if strings.TrimSpace(dir) == "" {
		return nil, fmt.Errorf("corpus directory is required")
	}
	if strings.TrimSpace(pattern) == "" {
		return nil, fmt.Errorf("corpus file pattern is required")
	}
	root, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("resolve corpus directory: %w", err)
	}
	if info, err := os.Stat(root); err != nil {
		return nil, &LoadError{Path: dir, Err: err}
	} else if !info.IsDir() {
		return nil, &LoadError{Path: dir, Err: fmt.Errorf("not a directory")}
	}

	var docs []*Document
	walkErr := filepath.WalkDir(root, func(path string, entry fs.DirEntry, err error) error {
		if err != nil {
			return &LoadError{Path: path, Err: err}
		}
		if entry.IsDir() {
			return nil
		}
		matched, err := filepath.Match(pattern, entry.Name())
		if err != nil {
			return fmt.Errorf("match pattern %q: %w", pattern, err)
		}
		if !matched {
			return nil
		}

		doc, err := loadFile(root, path)
		if err != nil {
			return err
		}
		docs = append(docs, doc)
		return nil
	})
	if walkErr != nil {
		return nil, walkErr
	}
	if len(docs) == 0 {
		return nil, &LoadError{Path: dir, Err: fmt.Errorf("no files matching %q", pattern)}
	}

	c, err := NewCorpus(docs)
	if err != nil {
		return nil, &LoadError{Path: dir, Err: err}
	}
	return c, nil
}

// loadFile reads and parses one corpus file.
func loadFile(root, path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &LoadError{Path: path, Err: err}
	}

	category, err := categoryFromPath(root, path)
	if err != nil {
		return nil, &LoadError{Path: path, Err: err}
	}

	id := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	doc, err := ParseDocument(path, id, category, data)
	if err != nil {
		return nil, &LoadError{Path: path, Err: err}
	}
	return doc, nil
}

// categoryFromPath derives the category from the first directory segment
// below the corpus root. Files directly under the root carry no directory
// category and must declare one in frontmatter.
func categoryFromPath(root, path string) (Category, error) {
	rel, err := filepath.Rel(root, path)
	if err != nil {
		return "", fmt.Errorf("relativize %q: %w", path, err)
	}
	segments := strings.Split(filepath.ToSlash(rel), "/")
	if len(segments) < 2 {
		return "", nil
	}
	category, err := ParseCategory(segments[0])
	if err != nil {
		return "", err
	}
	return category, nil
}
