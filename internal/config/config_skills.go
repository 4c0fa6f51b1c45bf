package config

// SkillsConfig tunes the skill graph's promotion and decay thresholds
// (spec §4.11). Defaults match the values spec.md names explicitly.
type SkillsConfig struct {
	PromotionStreak      int     `yaml:"promotionStreak"`
	PromotionSuccessRate float64 `yaml:"promotionSuccessRate"`
	PromotionExecutions  int     `yaml:"promotionExecutions"`

	SimilarityThreshold float64 `yaml:"similarityThreshold"`
	DecayFloor          float64 `yaml:"decayFloor"`

	DemoteBelow        float64 `yaml:"demoteBelow"`
	PreferredAtOrAbove float64 `yaml:"preferredAtOrAbove"`
	ArchiveAfterDays   int     `yaml:"archiveAfterDays"`

	// HistoryCapacity bounds the skill graph's in-memory execution
	// history ring buffer (spec invariant I7).
	HistoryCapacity int `yaml:"historyCapacity"`
}

func (s *SkillsConfig) setDefaults() {
	if s.PromotionStreak <= 0 {
		s.PromotionStreak = 3
	}
	if s.PromotionSuccessRate <= 0 {
		s.PromotionSuccessRate = 0.8
	}
	if s.PromotionExecutions <= 0 {
		s.PromotionExecutions = 3
	}
	if s.SimilarityThreshold <= 0 {
		s.SimilarityThreshold = 0.8
	}
	if s.DecayFloor <= 0 {
		s.DecayFloor = 0.5
	}
	if s.DemoteBelow <= 0 {
		s.DemoteBelow = 0.5
	}
	if s.PreferredAtOrAbove <= 0 {
		s.PreferredAtOrAbove = 0.9
	}
	if s.ArchiveAfterDays <= 0 {
		s.ArchiveAfterDays = 30
	}
	if s.HistoryCapacity <= 0 {
		s.HistoryCapacity = 1000
	}
}
