package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"text/tabwriter"

	"github.com/crypto-power/fediwallet/libwallet/bridge"
	"github.com/crypto-power/fediwallet/libwallet/details"
	"github.com/crypto-power/fediwallet/libwallet/history"
	"github.com/crypto-power/fediwallet/libwallet/txhelper"
	"github.com/crypto-power/fediwallet/libwallet/txtypes"
	"github.com/crypto-power/fediwallet/libwallet/utils"
	"github.com/crypto-power/fediwallet/libwallet/values"
	"github.com/crypto-power/fediwallet/libwallet/walletdata"
	"github.com/crypto-power/fediwallet/listeners"
)

var (
	// Version is the application version. It is set using the -ldflags
	Version = "0.1.0"
)

const historyListenerID = "fediwallet-cli"

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err.Error())
		os.Exit(1)
	}
}

func run() error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	initLogRotator(cfg.LogDir, cfg.MaxLogZips)
	defer logRotator.Close()
	if err := parseAndSetDebugLevels(cfg.DebugLevel); err != nil {
		return err
	}
	log.Infof("fediwallet version %s", Version)

	notes, err := cfg.notesUpdates()
	if err != nil {
		return err
	}

	if err := os.MkdirAll(cfg.AppDataDir, utils.UserFilePerm); err != nil {
		return err
	}
	db, err := walletdata.Initialize(filepath.Join(cfg.AppDataDir, walletdata.DbName))
	if err != nil {
		return err
	}
	defer db.Close()

	cache := history.NewCache(bridge.NewClient(cfg.BridgeURL, cfg.Timeout), db)

	notifications := listeners.NewHistoryNotificationListener()
	if err := cache.AddHistoryListener(notifications, historyListenerID); err != nil {
		return err
	}
	done := make(chan struct{})
	go func() {
		defer close(done)
		for n := range notifications.HistoryNotifChan() {
			switch n.Type {
			case listeners.HistoryUpdated:
				log.Debugf("[%s] history updated, %d transactions", n.FederationID, n.Count)
			case listeners.NotesUpdated:
				log.Debugf("[%s] notes of %s updated", n.FederationID, n.TxID)
			}
		}
	}()
	defer func() {
		cache.RemoveHistoryListener(historyListenerID)
		notifications.CloseHistoryChan()
		<-done
	}()

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	for _, federationID := range cfg.Federations {
		if err := cache.Load(federationID); err != nil {
			log.Warnf("[%s] error loading saved history: %v", federationID, err)
		}
	}

	if !cfg.Offline {
		fetchHistory(ctx, cfg, cache)
	}

	for _, federationID := range cfg.Federations {
		for txID, text := range notes {
			if cache.Transaction(federationID, txID) == nil {
				continue
			}
			if _, err := cache.UpdateNotes(ctx, federationID, txID, text); err != nil {
				fmt.Fprintf(os.Stderr, "%s: %s\n", txID, values.TranslateErr(err, nil))
			}
		}
	}

	dc := cfg.displayContext()
	if cfg.Details != "" {
		return printDetails(cfg, cache, dc)
	}
	for _, federationID := range cfg.Federations {
		printHistory(cfg, federationID, cache.Transactions(federationID), dc)
	}
	return nil
}

// fetchHistory updates the cached history of every configured federation.
// Failures are reported and the saved history is shown instead.
func fetchHistory(ctx context.Context, cfg *config, cache *history.Cache) {
	if cfg.Refresh {
		if err := cache.RefreshAll(ctx, cfg.Federations, cfg.Limit); err != nil {
			fmt.Fprintf(os.Stderr, "refresh: %s\n", values.TranslateErr(err, nil))
		}
		return
	}

	for _, federationID := range cfg.Federations {
		opts := history.FetchOptions{Limit: cfg.Limit, PaginateFromLast: cfg.More}
		if _, err := cache.Fetch(ctx, federationID, opts); err != nil {
			fmt.Fprintf(os.Stderr, "%s: %s\n", federationID, values.TranslateErr(err, nil))
		}
	}
}

func printHistory(cfg *config, federationID string, txs []*txtypes.Transaction, dc utils.DisplayContext) {
	statusCtx := txhelper.StatusContext{Export: cfg.Export}

	fmt.Printf("%s (%d)\n", federationID, len(txs))
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	for _, tx := range txs {
		c := txhelper.Classify(tx, statusCtx)
		amount := txhelper.MakeAmountText(tx, dc, cfg.FlipSign)
		fiatText := amount.FiatText
		if fiatText == "" && amount.SatsText != "" && !dc.HasRate() {
			fiatText = values.String(values.StrRateUnavailable)
		}

		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
			utils.ExtractDateOrTime(tx.CreatedAt),
			values.String(txhelper.TxTypeKey(tx.Kind)),
			values.String(c.StatusKey),
			c.Badge,
			amount.SatsText,
			fiatText,
			tx.Notes,
		)
	}
	w.Flush()
}

func printDetails(cfg *config, cache *history.Cache, dc utils.DisplayContext) error {
	assembler := details.NewAssembler(dc, nil, nil)
	for _, federationID := range cfg.Federations {
		tx := cache.Transaction(federationID, cfg.Details)
		if tx == nil {
			continue
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		for _, row := range assembler.Assemble(tx) {
			fmt.Fprintf(w, "%s\t%s\n", row.Label, row.Value)
		}
		if fees := txhelper.MakeFeeDetails(tx, dc); fees.HasFees() {
			for _, item := range fees.Items {
				fmt.Fprintf(w, "  %s\t%s\n", values.String(item.LabelKey), item.Formatted)
			}
		}
		if txhelper.ShowRetry(tx) {
			fmt.Fprintf(w, "%s\t\n", strings.ToUpper(values.String(values.StrRetry)))
		}
		return w.Flush()
	}
	return fmt.Errorf("transaction %s: %s", cfg.Details, values.String(values.StrNotFound))
}
