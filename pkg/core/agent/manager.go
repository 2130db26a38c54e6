// Package agent maps pipeline roles to configured generation providers.
package agent

import (
	"client_intel/pkg/core/llm"
)

// Config selects which provider serves each role. Loaded from the yaml
// config file at startup.
type Config struct {
	ActiveProvider string                 `yaml:"active_provider"`
	Agents         map[string]AgentConfig `yaml:"agents"`
}

type AgentConfig struct {
	Provider    string `yaml:"provider"` // Optional override
	Description string `yaml:"description"`
}

// Manager resolves roles to provider instances. Providers are injected at
// construction so the manager carries no ambient credentials of its own.
type Manager struct {
	config    Config
	providers map[string]llm.Provider
}

func NewManager(config Config, providers map[string]llm.Provider) *Manager {
	return &Manager{
		config:    config,
		providers: providers,
	}
}

// GetProvider returns the provider for a role: the role-specific override if
// configured, otherwise the global active provider, otherwise any registered
// provider (deterministic enough for a single-provider deployment).
func (m *Manager) GetProvider(role string) llm.Provider {
	if agentConfig, ok := m.config.Agents[role]; ok && agentConfig.Provider != "" {
		if p, ok := m.providers[agentConfig.Provider]; ok {
			return p
		}
	}

	if p, ok := m.providers[m.config.ActiveProvider]; ok {
		return p
	}

	for _, p := range m.providers {
		return p
	}
	return nil
}

// GetActiveProvider returns the configured global provider name.
func (m *Manager) GetActiveProvider() string {
	return m.config.ActiveProvider
}
