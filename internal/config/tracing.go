package config

type TracingConfig struct {
	Name     string `yaml:"service-name"`
	Disable  bool   `yaml:"disabled"`
	AgentURL string `yaml:"agent-addr"`
}

func (s *TracingConfig) ServiceName() string {
	if s.Name == "" {
		return "expense-tracker"
	}
	return s.Name
}

func (s *TracingConfig) Disabled() bool {
	return s.Disable
}

func (s *TracingConfig) AgentAddr() string {
	return s.AgentURL
}
