package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"os/signal"
	"runtime"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/solhawk/sol-vanity-miner/internal/config"
	logpkg "github.com/solhawk/sol-vanity-miner/internal/logger"
	"github.com/solhawk/sol-vanity-miner/internal/ui"
	"github.com/solhawk/sol-vanity-miner/pkg/search"
)

var (
	cfg    = config.NewConfig()
	logger *logpkg.Logger
)

func main() {
	var rootCmd = &cobra.Command{
		Use:   "sol-vanity-miner",
		Short: "Parallel Solana vanity address miner",
		Long: `A command line utility for mining Solana vanity addresses.
It generates ed25519 keypairs across parallel workers until the base58
address matches the requested prefix or suffix. Run without flags for
interactive mode.`,
		RunE: runSearch,
	}

	rootCmd.Flags().IntVarP(&cfg.Workers, "workers", "w", runtime.NumCPU(), "Number of worker goroutines")
	rootCmd.Flags().StringVarP(&cfg.Prefix, "prefix", "p", "", "Address prefix to match (base58)")
	rootCmd.Flags().StringVarP(&cfg.Suffix, "suffix", "s", "", "Address suffix to match (base58)")
	rootCmd.Flags().IntVarP(&cfg.BatchSize, "batch-size", "b", config.DefaultBatchSize, "Attempts per worker between progress updates")
	rootCmd.Flags().BoolVarP(&cfg.Mnemonic, "mnemonic", "m", false, "Derive keypairs from BIP-39 phrases (slower, recoverable wallets)")
	rootCmd.Flags().BoolVarP(&cfg.Verbose, "verbose", "v", false, "Verbose output")
	rootCmd.Flags().StringVarP(&cfg.LogFile, "log-file", "l", "", "Log file for progress tracking (default: stdout)")
	rootCmd.Flags().IntVarP(&cfg.LogInterval, "log-interval", "i", 5, "Logging interval in seconds when using a log file")
	rootCmd.SilenceUsage = true

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func runSearch(cmd *cobra.Command, args []string) error {
	// No pattern flags means interactive mode, like the classic prompt flow.
	if cfg.Prefix == "" && cfg.Suffix == "" {
		prompter := ui.NewPrompter(os.Stdin, os.Stdout)
		if err := prompter.Fill(cfg); err != nil {
			return fmt.Errorf("read input: %w", err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return err
	}

	setupLogging()
	logger.Printf("Starting search with %d workers...", cfg.Workers)
	logger.Printf("Target: %s", cfg.Pattern().Describe())
	if cfg.Mnemonic {
		logger.Printf("Mode: BIP-39 mnemonic derivation (m/44'/501'/0'/0')")
	}

	// Ctrl+C cancels the context; the searcher tears everything down
	// before Search returns.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	searcher := search.New(cfg, logger)
	result, err := searcher.Search(ctx)

	switch {
	case errors.Is(err, context.Canceled):
		logger.Println("Interrupted. All workers stopped.")
		return nil
	case err != nil:
		return err
	}

	logger.Printf("Found a wallet after %d attempts in %v!", result.Attempts, result.Duration)
	logger.Printf("Rate: %.2f wallets/sec", result.Rate())
	logger.Printf("Public key:  %s", result.Wallet.PublicKey)
	logger.Printf("Private key: %s", result.Wallet.PrivateKey)
	if result.Wallet.Mnemonic != "" {
		logger.Printf("Mnemonic:    %s", result.Wallet.Mnemonic)
	}
	return nil
}

func setupLogging() {
	if cfg.LogFile != "" {
		file, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0666)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to open log file: %v\n", err)
			os.Exit(1)
		}
		logger = logpkg.NewWriter(file)
		logger.SetFlags(log.LstdFlags | log.Lmicroseconds)
	} else {
		logger = logpkg.New()
		logger.SetFlags(log.LstdFlags)
	}
}
