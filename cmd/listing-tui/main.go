package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"uncommon/models"
	"uncommon/page"
	"uncommon/tui"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	pflag.String("listing-file", "", "yaml/json/toml file describing the listing")
	pflag.String("listing-mode", "", "buy-now or auction, overrides the mode in listing file")
	pflag.Bool("strict-amounts", false, "reject amounts below the minimum instead of accepting them")
	pflag.Int64("bid-increment", 100, "")
	pflag.String("log-file", "", "write logs to this file, logs are discarded when empty")

	pflag.Parse()
	viper.BindPFlags(pflag.CommandLine)
	viper.AutomaticEnv()
	viper.SetEnvPrefix("UNCOMMON")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))

	// 畫面佔用 stdout，日誌只能寫到檔案
	var w io.Writer = io.Discard
	if path := viper.GetString("log-file"); path != "" {
		f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
		if err != nil {
			return fmt.Errorf("fail to open log file: %w", err)
		}
		defer f.Close()
		w = f
	}
	logger := slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: slog.LevelDebug}))

	props, err := models.LoadProps(viper.GetString("listing-file"))
	if err != nil {
		return err
	}
	mode, err := props.ResolveMode(viper.GetString("listing-mode"))
	if err != nil {
		return err
	}

	opts := []page.ViewOption{
		page.WithLogger(logger),
		page.WithStrictAmounts(viper.GetBool("strict-amounts")),
	}
	if increment := viper.GetInt64("bid-increment"); increment > 0 {
		opts = append(opts, page.WithBidIncrement(increment))
	}
	model, err := tui.NewModel(props.Listing, mode, opts...)
	if err != nil {
		return err
	}

	if _, err := tea.NewProgram(model, tea.WithAltScreen()).Run(); err != nil {
		return fmt.Errorf("fail to run listing page: %w", err)
	}
	return nil
}
