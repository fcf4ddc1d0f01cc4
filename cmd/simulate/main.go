package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"

	"github.com/KirkDiggler/creature-battler/internal/config"
	"github.com/KirkDiggler/creature-battler/internal/content"
	"github.com/KirkDiggler/creature-battler/internal/domain/rules"
	"github.com/KirkDiggler/creature-battler/internal/domain/stats"
	"github.com/KirkDiggler/creature-battler/internal/repositories/stattables"
)

var rootCmd = &cobra.Command{
	Use:   "simulate",
	Short: "Run seeded creature battles",
	Long: `Loads creature, skill and rule content and plays one or more seeded
battles between the placed teams. Seeds run from --seed upward, one per run.
When Redis is configured every creature's final stat table is stored.`,
	Args: cobra.NoArgs,
	RunE: runSimulate,
}

var inspectCmd = &cobra.Command{
	Use:   "inspect [content files...]",
	Short: "Validate content and list what it defines",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		paths := cfg.Battle.ContentPaths
		if len(args) > 0 {
			paths = args
		}
		pack, err := loadPack(paths)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		fmt.Fprintln(out, "creatures:")
		for _, key := range pack.CreatureKeys() {
			t, _ := pack.Creature(key)
			fmt.Fprintf(out, "  %s (%s) skills %v\n", key, t.Name, t.Skills)
		}
		fmt.Fprintln(out, "stats:")
		for _, def := range stats.Definitions() {
			fmt.Fprintf(out, "  %s (%s)\n", def.Name, def.Kind)
		}
		fmt.Fprintln(out, "rules:")
		for _, id := range pack.RuleIDs() {
			fmt.Fprintf(out, "  %s\n", id)
		}
		return nil
	},
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.StringSlice("content", nil, "content files (overrides BATTLER_CONTENT_PATH)")
	flags.Uint64("seed", 0, "first seed (overrides BATTLER_SEED)")
	flags.Int("runs", 0, "number of battles (overrides BATTLER_RUNS)")
	flags.Duration("tick", 0, "simulated time per tick (overrides BATTLER_TICK_MS)")
	flags.Int("max-ticks", 0, "ticks before a battle is a draw (overrides BATTLER_MAX_TICKS)")

	rootCmd.Flags().StringArray("place", defaultLineup, "placement as team:template@x,y, repeatable")
	rootCmd.Flags().Bool("log", false, "print each battle's combat log")
	rootCmd.Flags().Bool("no-redis", false, "skip snapshot persistence even when Redis is configured")

	rootCmd.AddCommand(inspectCmd)
}

func main() {
	// Load .env file
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	} else {
		log.Println("Loaded .env file")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}

// loadConfig reads the environment then applies any flags that were set
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	if err := applyFlags(cmd, &cfg.Battle); err != nil {
		return nil, err
	}
	if err := cfg.Battle.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// applyFlags overrides battle settings with the flags given on the command
// line. Nothing is changed when a flag cannot be read.
func applyFlags(cmd *cobra.Command, battle *config.BattleConfig) error {
	flags := cmd.Flags()
	out := *battle
	if flags.Changed("content") {
		paths, err := flags.GetStringSlice("content")
		if err != nil {
			return flagErr("content", err)
		}
		out.ContentPaths = paths
	}
	if flags.Changed("seed") {
		seed, err := flags.GetUint64("seed")
		if err != nil {
			return flagErr("seed", err)
		}
		out.Seed = seed
	}
	if flags.Changed("runs") {
		runs, err := flags.GetInt("runs")
		if err != nil {
			return flagErr("runs", err)
		}
		out.Runs = runs
	}
	if flags.Changed("tick") {
		tick, err := flags.GetDuration("tick")
		if err != nil {
			return flagErr("tick", err)
		}
		out.Tick = tick
	}
	if flags.Changed("max-ticks") {
		maxTicks, err := flags.GetInt("max-ticks")
		if err != nil {
			return flagErr("max-ticks", err)
		}
		out.MaxTicks = maxTicks
	}
	*battle = out
	return nil
}

func flagErr(name string, err error) error {
	return fmt.Errorf("reading --%s: %w", name, err)
}

func loadPack(paths []string) (*content.Pack, error) {
	registry, err := rules.NewRegistry()
	if err != nil {
		return nil, err
	}
	pack, err := content.NewLoader(&content.LoaderConfig{Registry: registry}).LoadFiles(paths...)
	if err != nil {
		return nil, fmt.Errorf("failed to load content: %w", err)
	}
	log.Printf("Loaded %d creatures and %d rules from %v", len(pack.CreatureKeys()), len(pack.RuleIDs()), paths)
	return pack, nil
}

func runSimulate(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	pack, err := loadPack(cfg.Battle.ContentPaths)
	if err != nil {
		return err
	}

	placements, err := cmd.Flags().GetStringArray("place")
	if err != nil {
		return flagErr("place", err)
	}
	lineup, err := parseLineup(placements)
	if err != nil {
		return err
	}

	r := &runner{
		pack:   pack,
		cfg:    cfg.Battle,
		lineup: lineup,
	}

	skipRedis, err := cmd.Flags().GetBool("no-redis")
	if err != nil {
		return flagErr("no-redis", err)
	}
	if cfg.Redis.Enabled() && !skipRedis {
		client := connectRedis(cmd.Context(), cfg.Redis)
		if client != nil {
			defer func() {
				if closeErr := client.Close(); closeErr != nil {
					log.Printf("Error closing Redis client: %v", closeErr)
				}
			}()
			r.repo = stattables.NewRedis(client)
			log.Println("Using Redis for stat snapshots")
		}
	}

	log.Printf("Running %d battles from seed %d", cfg.Battle.Runs, cfg.Battle.Seed)
	outcomes, err := r.runAll(cmd.Context())
	if err != nil {
		return err
	}

	withLog, err := cmd.Flags().GetBool("log")
	if err != nil {
		return flagErr("log", err)
	}
	out := cmd.OutOrStdout()
	for _, o := range outcomes {
		writeOutcome(out, o, withLog)
	}
	summarize(outcomes).write(out)
	return nil
}

// connectRedis returns nil when the server cannot be reached so the run
// carries on without persistence
func connectRedis(ctx context.Context, cfg config.RedisConfig) *redis.Client {
	opts, err := cfg.Options()
	if err != nil {
		log.Printf("Failed to parse Redis settings: %v", err)
		log.Println("Continuing without snapshot persistence")
		return nil
	}

	log.Printf("Connecting to Redis at: %s", opts.Addr)
	client := redis.NewClient(opts)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		log.Printf("Failed to connect to Redis: %v", err)
		log.Println("Continuing without snapshot persistence")
		_ = client.Close()
		return nil
	}

	log.Println("Successfully connected to Redis")
	return client
}
