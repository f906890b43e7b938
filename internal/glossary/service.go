package glossary

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strings"
	"sync"
)

// Term is one glossary entry
type Term struct {
	Term       string `json:"term"`
	Definition string `json:"definition"`
	Category   string `json:"category"`
}

// Service serves the options glossary. The builtin catalog is always
// available; a JSON asset file can add or override entries (matched by
// lowercased term) so instructors can extend the glossary without a rebuild.
type Service struct {
	assetFile string

	mu     sync.RWMutex
	terms  []Term
	loaded bool
	// info captured at load time
	fileCount int
	fileErr   error
}

// NewService creates a glossary service reading extensions from assetFile.
// An empty path disables the file layer.
func NewService(assetFile string) *Service {
	return &Service{assetFile: assetFile}
}

// load merges the builtin catalog with the asset file, once
func (s *Service) load() {
	s.mu.RLock()
	if s.loaded {
		s.mu.RUnlock()
		return
	}
	s.mu.RUnlock()

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.loaded {
		return
	}
	s.terms, s.fileCount, s.fileErr = mergeWithFile(builtinTerms, s.assetFile)
	s.loaded = true
}

// Reload drops the cached catalog so the next call re-reads the asset file
func (s *Service) Reload() {
	s.mu.Lock()
	s.loaded = false
	s.mu.Unlock()
}

func mergeWithFile(builtin []Term, assetFile string) (terms []Term, fileCount int, fileErr error) {
	merged := make(map[string]Term, len(builtin))
	for _, t := range builtin {
		merged[strings.ToLower(t.Term)] = t
	}

	if assetFile != "" {
		fileTerms, err := loadFromFile(assetFile)
		if err != nil {
			fileErr = err
		} else {
			fileCount = len(fileTerms)
			for _, t := range fileTerms {
				if strings.TrimSpace(t.Term) == "" {
					continue
				}
				merged[strings.ToLower(t.Term)] = t
			}
		}
	}

	terms = make([]Term, 0, len(merged))
	for _, t := range merged {
		terms = append(terms, t)
	}
	sort.Slice(terms, func(i, j int) bool {
		return strings.ToLower(terms[i].Term) < strings.ToLower(terms[j].Term)
	})
	return terms, fileCount, fileErr
}

func loadFromFile(path string) ([]Term, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read glossary file: %w", err)
	}

	var result struct {
		Terms []Term `json:"terms"`
	}
	if err := json.Unmarshal(data, &result); err != nil {
		return nil, fmt.Errorf("failed to parse glossary JSON: %w", err)
	}
	return result.Terms, nil
}

// All returns the full catalog sorted by term
func (s *Service) All() []Term {
	s.load()
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Term, len(s.terms))
	copy(out, s.terms)
	return out
}

// Search returns entries whose term or definition contains the query,
// case-insensitively. An empty query returns the full catalog.
func (s *Service) Search(query string) []Term {
	all := s.All()
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return all
	}

	var matches []Term
	for _, t := range all {
		if strings.Contains(strings.ToLower(t.Term), query) ||
			strings.Contains(strings.ToLower(t.Definition), query) {
			matches = append(matches, t)
		}
	}
	return matches
}

// ByCategory filters the catalog to one category, case-insensitively
func (s *Service) ByCategory(category string) []Term {
	all := s.All()
	if strings.TrimSpace(category) == "" {
		return all
	}

	var matches []Term
	for _, t := range all {
		if strings.EqualFold(t.Category, category) {
			matches = append(matches, t)
		}
	}
	return matches
}

// Categories lists the distinct categories in sorted order
func (s *Service) Categories() []string {
	all := s.All()
	seen := make(map[string]bool)
	var categories []string
	for _, t := range all {
		key := strings.ToLower(t.Category)
		if t.Category == "" || seen[key] {
			continue
		}
		seen[key] = true
		categories = append(categories, t.Category)
	}
	sort.Strings(categories)
	return categories
}

// Lookup finds one entry by exact term, case-insensitively
func (s *Service) Lookup(term string) (Term, bool) {
	for _, t := range s.All() {
		if strings.EqualFold(t.Term, term) {
			return t, true
		}
	}
	return Term{}, false
}

// Info returns summary information about the loaded catalog
func (s *Service) Info() map[string]interface{} {
	s.load()
	s.mu.RLock()
	defer s.mu.RUnlock()

	info := map[string]interface{}{
		"builtin_count": len(builtinTerms),
		"file_count":    s.fileCount,
		"total":         len(s.terms),
		"asset_file":    s.assetFile,
	}
	if s.fileErr != nil {
		info["file_error"] = s.fileErr.Error()
	}
	return info
}
