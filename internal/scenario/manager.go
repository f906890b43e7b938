package scenario

import (
	"os"

	"github.com/jwaldner/tetra/internal/logger"
)

// Manager fronts a primary provider and falls back to the builtin presets
// when the primary fails. The server always has scenarios to offer even if
// the asset file is missing or malformed.
type Manager struct {
	primary  Provider
	fallback *BuiltinProvider
}

// NewManager picks the file provider when the asset exists, builtin otherwise.
func NewManager(assetFile string) *Manager {
	m := &Manager{fallback: NewBuiltinProvider()}
	if assetFile != "" {
		if _, err := os.Stat(assetFile); err == nil {
			m.primary = NewFileProvider(assetFile)
			logger.Info.Printf("📋 Scenario provider: file (%s)", assetFile)
			return m
		}
		logger.Warn.Printf("⚠️ Scenario file %s not found, using builtin presets", assetFile)
	}
	m.primary = m.fallback
	logger.Info.Printf("📋 Scenario provider: builtin")
	return m
}

func (m *Manager) List() ([]Scenario, error) {
	scenarios, err := m.primary.ListScenarios()
	if err != nil {
		logger.Warn.Printf("⚠️ Scenario provider %s failed (%v), falling back to builtin", m.primary.ProviderName(), err)
		return m.fallback.ListScenarios()
	}
	return scenarios, nil
}

func (m *Manager) Get(name string) (*Scenario, error) {
	s, err := m.primary.GetScenario(name)
	if err == nil {
		return s, nil
	}
	if m.primary.ProviderName() == m.fallback.ProviderName() {
		return nil, err
	}
	logger.Debug.Printf("Scenario %q not in %s provider, trying builtin", name, m.primary.ProviderName())
	return m.fallback.GetScenario(name)
}

// Default returns the preset the server seeds forms with.
func (m *Manager) Default() Scenario {
	scenarios, err := m.List()
	if err != nil || len(scenarios) == 0 {
		return builtinScenarios[0]
	}
	return scenarios[0]
}

// ProviderName reports the active primary provider.
func (m *Manager) ProviderName() string {
	return m.primary.ProviderName()
}
