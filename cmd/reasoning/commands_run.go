package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"github.com/nexuscore/reasoning/internal/config"
	"github.com/nexuscore/reasoning/internal/executor"
	"github.com/nexuscore/reasoning/internal/gating"
	"github.com/nexuscore/reasoning/internal/intent"
	"github.com/nexuscore/reasoning/internal/memoryclient"
	"github.com/nexuscore/reasoning/internal/observer"
	"github.com/nexuscore/reasoning/internal/planner"
	"github.com/nexuscore/reasoning/internal/planner/llmclient"
	"github.com/nexuscore/reasoning/internal/reflector"
	"github.com/nexuscore/reasoning/internal/retriever"
	"github.com/nexuscore/reasoning/internal/sanitizer"
	"github.com/nexuscore/reasoning/internal/skillgraph"
	"github.com/nexuscore/reasoning/internal/toolkit"
	"github.com/nexuscore/reasoning/internal/tools/guild"
	"github.com/nexuscore/reasoning/internal/tools/identityupdate"
	"github.com/nexuscore/reasoning/internal/tools/memoryquery"
	"github.com/nexuscore/reasoning/internal/tools/message"
	"github.com/nexuscore/reasoning/internal/tools/remind"
	"github.com/nexuscore/reasoning/internal/tools/system"
	"github.com/nexuscore/reasoning/pkg/models"
)

// buildRunCmd creates the "run" command: it reads one Observation as JSON
// from stdin, drives it through the full pipeline, and prints the
// resulting ExecutionResult as JSON.
func buildRunCmd() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run one observation (read as JSON from stdin) through the pipeline",
		Example: `  echo '{"id":"m1","content":"remind me in 10m to stretch","authorId":"u1","channelId":"c1"}' | reasoning run --config reasoning.yaml`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runOnce(cmd.Context(), configPath, os.Stdin, os.Stdout)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "reasoning.yaml", "Path to YAML configuration file")
	return cmd
}

func runOnce(ctx context.Context, configPath string, in *os.File, out *os.File) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	var obs models.Observation
	if err := json.NewDecoder(in).Decode(&obs); err != nil {
		return fmt.Errorf("decode observation: %w", err)
	}
	if obs.Timestamp.IsZero() {
		obs.Timestamp = time.Now().UTC()
	}

	obsv := buildObserver(cfg)
	result := obsv.Process(ctx, obs)

	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(result)
}

// buildObserver wires every pipeline component together from cfg, in the
// same shape buildServeCmd's service construction takes in the teacher's
// cmd/nexus: memory client first, then the tool registry and its tools,
// then the reasoning stages, then the Observer that sequences them.
func buildObserver(cfg *config.Config) *observer.Observer {
	memory := memoryclient.New(cfg.Memory.BaseURL, cfg.Memory.APIKey, cfg.Memory.Timeout)

	metrics := toolkit.NewPrometheusMetrics(prometheus.DefaultRegisterer)
	registry := toolkit.NewRegistry(metrics)

	loc, err := time.LoadLocation(cfg.Reminders.TimeZone)
	if err != nil {
		loc = time.UTC
	}

	registry.Register(message.New(&stdoutSender{}), message.OutputSchema)
	registry.Register(memoryquery.New(memory), memoryquery.OutputSchema)
	registry.Register(remind.New(&logScheduler{}, loc, cfg.Reminders.DefaultHourOfDay), remind.OutputSchema)
	registry.Register(identityupdate.New(memory), identityupdate.OutputSchema)
	registry.Register(guild.New(&unwiredGuildLookup{}), guild.OutputSchema)
	registry.Register(system.New(registry), system.OutputSchema)

	skills := skillgraph.New(memory, skillgraph.Thresholds{
		PromotionStreak:      cfg.Skills.PromotionStreak,
		PromotionSuccessRate: cfg.Skills.PromotionSuccessRate,
		PromotionExecutions:  cfg.Skills.PromotionExecutions,
		SimilarityThreshold:  cfg.Skills.SimilarityThreshold,
		DecayFloor:           cfg.Skills.DecayFloor,
		DemoteBelow:          cfg.Skills.DemoteBelow,
		PreferredAtOrAbove:   cfg.Skills.PreferredAtOrAbove,
		ArchiveAfter:         time.Duration(cfg.Skills.ArchiveAfterDays) * 24 * time.Hour,
		HistoryCapacity:      cfg.Skills.HistoryCapacity,
	})

	intentEngine := intent.New(skills, cfg.Gating.AlwaysAllowed)
	plan := planner.New(planner.Config{}, skills, buildLLMProvider(cfg.LLM), toolkit.NewSchemaValidator())
	gate := gating.New()
	sanitize := sanitizer.New()
	exec := executor.New(registry, nil)
	reflect := reflector.New(memory)
	retr := retriever.New(memory)

	return observer.New(retr, intentEngine, plan, gate, sanitize, exec, reflect, skills)
}

// buildLLMProvider resolves cfg.Provider into a concrete llmclient.Provider,
// rate-limited per cfg.RequestsPerSecond (spec's domain stack: golang.org/x/time/rate).
func buildLLMProvider(cfg config.LLMConfig) llmclient.Provider {
	var inner llmclient.Provider
	switch cfg.Provider {
	case "anthropic":
		inner = llmclient.NewAnthropicProvider(cfg.APIKey, cfg.Model, cfg.MaxRetries, cfg.RetryDelay)
	case "openai":
		inner = llmclient.NewOpenAIProvider(cfg.APIKey, cfg.Model, cfg.MaxRetries, cfg.RetryDelay)
	default:
		return &llmclient.MockProvider{}
	}
	return llmclient.NewRateLimited(inner, cfg.RequestsPerSecond)
}

// stdoutSender implements message.Sender by printing to stdout, standing
// in for a live channel adapter (Discord/Telegram/Slack are out of scope
// for this core, spec.md §1).
type stdoutSender struct{}

func (s *stdoutSender) Send(_ context.Context, channelID, content string) error {
	fmt.Fprintf(os.Stdout, "[%s] %s\n", channelID, content)
	return nil
}

// logScheduler implements remind.Scheduler by logging the scheduled fire
// time, standing in for a persistent reminder queue.
type logScheduler struct{}

func (s *logScheduler) Schedule(_ context.Context, reminderID, userID, channelID, text string, fireAt time.Time) error {
	slog.Info("reminder scheduled", "reminderId", reminderID, "userId", userID, "channelId", channelID, "fireAt", fireAt)
	return nil
}

// unwiredGuildLookup implements guild.Lookup by reporting the absence of
// a live gateway connection — guild.member.count is a representative
// tool (DESIGN.md); no channel adapter is wired into this core.
type unwiredGuildLookup struct{}

func (unwiredGuildLookup) MemberCount(_ context.Context, guildID string) (int, int, error) {
	return 0, 0, fmt.Errorf("guild.member.count: no gateway connected for guild %q", guildID)
}
