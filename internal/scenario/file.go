package scenario

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"sync"

	"github.com/jwaldner/tetra/internal/logger"
)

// FileProvider reads presets from a JSON asset file:
//
//	{"scenarios": [{"name": "...", "spot": 100, ...}]}
type FileProvider struct {
	path string

	mu        sync.RWMutex
	scenarios []Scenario
	loaded    bool
}

func NewFileProvider(path string) *FileProvider {
	return &FileProvider{path: path}
}

func (p *FileProvider) ListScenarios() ([]Scenario, error) {
	if err := p.ensureLoaded(); err != nil {
		return nil, err
	}
	p.mu.RLock()
	defer p.mu.RUnlock()
	out := make([]Scenario, len(p.scenarios))
	copy(out, p.scenarios)
	return out, nil
}

func (p *FileProvider) GetScenario(name string) (*Scenario, error) {
	if err := p.ensureLoaded(); err != nil {
		return nil, err
	}
	p.mu.RLock()
	defer p.mu.RUnlock()
	for i := range p.scenarios {
		if strings.EqualFold(p.scenarios[i].Name, name) {
			s := p.scenarios[i]
			return &s, nil
		}
	}
	return nil, fmt.Errorf("%w: %q", ErrNotFound, name)
}

func (p *FileProvider) ProviderName() string {
	return "file"
}

func (p *FileProvider) ensureLoaded() error {
	p.mu.RLock()
	if p.loaded {
		p.mu.RUnlock()
		return nil
	}
	p.mu.RUnlock()

	p.mu.Lock()
	defer p.mu.Unlock()
	if p.loaded {
		return nil
	}

	data, err := os.ReadFile(p.path)
	if err != nil {
		return fmt.Errorf("reading scenario file %s: %w", p.path, err)
	}

	var doc struct {
		Scenarios []Scenario `json:"scenarios"`
	}
	if err := json.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("parsing scenario file %s: %w", p.path, err)
	}

	kept := make([]Scenario, 0, len(doc.Scenarios))
	for _, s := range doc.Scenarios {
		if s.Name == "" || s.Spot <= 0 || s.Strike <= 0 {
			logger.Warn.Printf("⚠️ Skipping invalid scenario entry %q in %s", s.Name, p.path)
			continue
		}
		kept = append(kept, s)
	}
	p.scenarios = kept
	p.loaded = true
	logger.Debug.Printf("Loaded %d scenarios from %s", len(kept), p.path)
	return nil
}
