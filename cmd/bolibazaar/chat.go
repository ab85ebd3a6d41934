package main

import (
	"bufio"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/bolibazaar/bolibazaar/internal/adapters/memory"
	openaiadapter "github.com/bolibazaar/bolibazaar/internal/adapters/openai"
	"github.com/bolibazaar/bolibazaar/internal/adapters/oracle"
	"github.com/bolibazaar/bolibazaar/internal/config"
	"github.com/bolibazaar/bolibazaar/internal/logging"
	"github.com/bolibazaar/bolibazaar/internal/tui"
	"github.com/bolibazaar/bolibazaar/pkg/broadcast"
	"github.com/bolibazaar/bolibazaar/pkg/dialogue"
	"github.com/bolibazaar/bolibazaar/pkg/language"
	"github.com/bolibazaar/bolibazaar/pkg/pricing"
)

var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Run an interactive dialogue in the terminal",
	Long: `Starts a single dialogue session on stdin/stdout. When the listing is
confirmed it is broadcast to the simulated buyer network immediately.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		lang, _ := cmd.Flags().GetString("lang")

		cfg, err := config.Load()
		if err != nil {
			return err
		}
		if cfg.OpenAIAPIKey == "" {
			return fmt.Errorf("OPENAI_API_KEY is required for chat mode")
		}
		logger := logging.New(parseLevel(cfg.LogLevel), cfg.LogFormat)

		registry, err := language.NewRegistry()
		if err != nil {
			return err
		}
		prices := oracle.NewFallback(nil, logger)
		extractor := openaiadapter.New(cfg.OpenAIAPIKey, cfg.OpenAIBaseURL, cfg.OpenAIModel, registry)

		engine := dialogue.NewEngine(registry, extractor,
			dialogue.WithOracle(prices),
			dialogue.WithDefaultCurrency(cfg.DefaultCurrency),
		)

		learner := pricing.NewLearner(pricing.DefaultConfig())
		simulator, err := broadcast.NewSimulator(
			broadcast.DefaultConfig(), learner, prices, memory.NewAuditSink())
		if err != nil {
			return err
		}

		ctx := cmd.Context()
		sess, greeting, err := engine.Start(ctx, lang)
		if err != nil {
			return err
		}

		tui.PrintBanner()
		fmt.Println(tui.Assistant(greeting))

		scanner := bufio.NewScanner(os.Stdin)
		for !sess.Stage.Terminal() {
			fmt.Print("you> ")
			if !scanner.Scan() {
				return scanner.Err()
			}
			utterance := scanner.Text()
			if utterance == "" {
				continue
			}

			result, err := engine.Advance(ctx, sess, utterance)
			if err != nil {
				return err
			}
			sess = result.Session
			fmt.Println(tui.Assistant(result.Reply))

			if result.Listing != nil {
				fmt.Println(tui.Notice("broadcasting to buyers, this takes a few seconds..."))
				event, err := simulator.Broadcast(ctx, result.Listing)
				sess = engine.FinishBroadcast(sess, event.Outcome)
				if err != nil {
					fmt.Println(tui.Notice(fmt.Sprintf("broadcast failed: %v", err)))
					continue
				}
				bid := event.Bid
				fmt.Println(tui.Assistant(fmt.Sprintf(
					"%s offers %.2f %s (%.2f/%s) for your %s",
					bid.Counterparty, bid.Amount, bid.Currency, bid.PerKg,
					result.Listing.Unit, result.Listing.Commodity,
				)))
			}
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(chatCmd)
	chatCmd.Flags().StringP("lang", "l", "en", "Language code for the session")
}
