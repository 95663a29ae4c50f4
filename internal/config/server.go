package config

type ServerConfig struct {
	ListenAddr  string   `yaml:"addr"`
	CORSOrigins []string `yaml:"cors-origins"`
}

func (s *ServerConfig) Addr() string {
	if s.ListenAddr == "" {
		return ":8080"
	}
	return s.ListenAddr
}

func (s *ServerConfig) Origins() []string {
	return s.CORSOrigins
}
