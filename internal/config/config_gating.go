package config

// GatingConfig names the tool(s) always implicitly allowed under strict
// gating regardless of the intent's allow-list (spec §4.8: message.send
// is always permitted so the pipeline can still reply).
type GatingConfig struct {
	AlwaysAllowed []string `yaml:"alwaysAllowed"`
}

func (g *GatingConfig) setDefaults() {
	if len(g.AlwaysAllowed) == 0 {
		g.AlwaysAllowed = []string{"message.send"}
	}
}
