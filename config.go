package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/btcsuite/btcd/btcutil"
	"github.com/crypto-power/fediwallet/libwallet/utils"
	"github.com/crypto-power/fediwallet/logger"
	flags "github.com/jessevdk/go-flags"
)

const (
	defaultConfigFilename = "fediwallet.conf"
	defaultLogDirname     = "logs"
	defaultMaxLogZips     = 3
	defaultBridgeURL      = "http://127.0.0.1:8080"
	defaultTimeout        = 10 * time.Second
)

var (
	defaultAppDataDir = btcutil.AppDataDir("fediwallet", false)
)

type config struct {
	AppDataDir string `long:"appdata" description:"Directory where the history database and logs are stored"`
	ConfigFile string `short:"C" long:"configfile" description:"Path to configuration file"`
	LogDir     string `long:"logdir" description:"Directory to log output"`
	MaxLogZips int    `long:"maxlogzips" description:"The number of zipped log files created by the log rotator to be retained. Setting to 0 will keep all."`
	DebugLevel string `short:"d" long:"debuglevel" description:"Logging level {trace, debug, info, warn, error, critical} or SUBSYS=level pairs, e.g. HIST=debug,BRDG=trace"`

	BridgeURL   string        `long:"bridgeurl" description:"Base URL of the wallet bridge"`
	Timeout     time.Duration `long:"timeout" description:"Timeout of a single bridge request"`
	Federations []string      `short:"f" long:"federation" description:"Federation id to show the history of. May be repeated"`
	Limit       int           `long:"limit" description:"Number of transactions fetched per federation"`
	More        bool          `long:"more" description:"Fetch the page older than the oldest saved transaction"`
	Refresh     bool          `long:"refresh" description:"Discard the saved history and fetch the newest page"`
	Offline     bool          `long:"offline" description:"Only show the saved history"`
	SetNotes    []string      `long:"setnotes" description:"Update the notes of a transaction, TXID=NOTES. May be repeated"`
	Details     string        `long:"details" description:"Show the details of one transaction"`

	Currency string   `long:"currency" description:"ISO code of the fiat currency amounts are shown in"`
	Locale   string   `long:"locale" description:"Locale used to format numbers"`
	BtcUsd   float64  `long:"btcusd" description:"Price of one bitcoin in USD"`
	FiatUsd  []string `long:"fiatusd" description:"USD price of a fiat currency, CODE:RATE. May be repeated"`
	Symbol   string   `long:"symbol" choice:"start" choice:"end" choice:"none" description:"Where the fiat currency symbol is placed"`
	Timezone string   `long:"timezone" description:"IANA time zone transaction dates are shown in"`
	Export   bool     `long:"export" description:"Use export wording for statuses"`
	FlipSign bool     `long:"flipsign" description:"Invert the sign of incoming and outgoing amounts"`

	fiatUsdRates map[string]float64
	location     *time.Location
}

func defaultConfig() config {
	return config{
		AppDataDir: defaultAppDataDir,
		MaxLogZips: defaultMaxLogZips,
		DebugLevel: utils.DefaultLogLevel,
		BridgeURL:  defaultBridgeURL,
		Timeout:    defaultTimeout,
		Limit:      utils.DefaultPageSize,
		Currency:   utils.USD,
		Locale:     "en",
		Symbol:     string(utils.SymbolEnd),
	}
}

// loadConfig initializes and parses the config using a config file and command
// line options.
//
// The configuration proceeds as follows:
//  1. Start with a default config with sane settings
//  2. Pre-parse the command line to check for an alternative config file
//  3. Load configuration file overwriting defaults with any specified options
//  4. Parse CLI options and overwrite/add any specified options
func loadConfig() (*config, error) {
	// Default config.
	cfg := defaultConfig()

	// Pre-parse the command line options to see if an alternative config
	// file or the version flag was specified.
	preCfg := cfg
	preParser := flags.NewParser(&preCfg, flags.HelpFlag)
	_, err := preParser.Parse()
	if err != nil {
		if e, ok := err.(*flags.Error); ok && e.Type == flags.ErrHelp {
			fmt.Fprintln(os.Stdout, err)
			os.Exit(0)
		}
		return nil, err
	}

	if preCfg.AppDataDir != "" {
		cfg.AppDataDir = cleanAndExpandPath(preCfg.AppDataDir)
	}
	configFile := preCfg.ConfigFile
	if configFile == "" {
		configFile = filepath.Join(cfg.AppDataDir, defaultConfigFilename)
	}
	configFile = cleanAndExpandPath(configFile)

	// Load additional config from file.
	parser := flags.NewParser(&cfg, flags.Default)
	if _, err := os.Stat(configFile); err == nil {
		if err := flags.NewIniParser(parser).ParseFile(configFile); err != nil {
			return nil, fmt.Errorf("error parsing config file: %v", err)
		}
	} else if preCfg.ConfigFile != "" {
		return nil, fmt.Errorf("config file %s not found", configFile)
	}

	// Parse command line options again to ensure they take precedence.
	if _, err := parser.Parse(); err != nil {
		return nil, err
	}

	cfg.AppDataDir = cleanAndExpandPath(cfg.AppDataDir)
	if cfg.LogDir == "" {
		cfg.LogDir = filepath.Join(cfg.AppDataDir, defaultLogDirname)
	}
	cfg.LogDir = cleanAndExpandPath(cfg.LogDir)

	if cfg.Limit <= 0 {
		return nil, fmt.Errorf("limit must be positive, got %d", cfg.Limit)
	}
	if len(cfg.Federations) == 0 {
		return nil, fmt.Errorf("at least one --federation is required")
	}

	cfg.fiatUsdRates, err = parseFiatRates(cfg.FiatUsd)
	if err != nil {
		return nil, err
	}

	cfg.location = time.UTC
	if cfg.Timezone != "" {
		cfg.location, err = time.LoadLocation(cfg.Timezone)
		if err != nil {
			return nil, fmt.Errorf("invalid timezone: %v", err)
		}
	}

	return &cfg, nil
}

// displayContext returns the display preferences selected by the options.
func (cfg *config) displayContext() utils.DisplayContext {
	dc := utils.DefaultDisplayContext()
	dc.Currency = strings.ToUpper(cfg.Currency)
	dc.Locale = cfg.Locale
	dc.BtcUsdRate = cfg.BtcUsd
	dc.FiatUsdRates = cfg.fiatUsdRates
	dc.SymbolPosition = utils.SymbolPosition(cfg.Symbol)
	dc.Location = cfg.location
	return dc
}

// notesUpdates splits the --setnotes options into transaction ids and notes.
func (cfg *config) notesUpdates() (map[string]string, error) {
	updates := make(map[string]string, len(cfg.SetNotes))
	for _, opt := range cfg.SetNotes {
		txID, notes, ok := strings.Cut(opt, "=")
		if !ok || txID == "" {
			return nil, fmt.Errorf("invalid --setnotes %q, expected TXID=NOTES", opt)
		}
		updates[txID] = notes
	}
	return updates, nil
}

func parseFiatRates(opts []string) (map[string]float64, error) {
	rates := make(map[string]float64, len(opts))
	for _, opt := range opts {
		code, rate, ok := strings.Cut(opt, ":")
		if !ok || code == "" {
			return nil, fmt.Errorf("invalid --fiatusd %q, expected CODE:RATE", opt)
		}
		v, err := strconv.ParseFloat(rate, 64)
		if err != nil || v <= 0 {
			return nil, fmt.Errorf("invalid --fiatusd rate %q", rate)
		}
		rates[strings.ToUpper(code)] = v
	}
	return rates, nil
}

// cleanAndExpandPath expands environment variables and leading ~ in the
// passed path, cleans the result, and returns it.
func cleanAndExpandPath(path string) string {
	// Expand initial ~ to OS specific home directory.
	if strings.HasPrefix(path, "~") {
		homeDir := filepath.Dir(defaultAppDataDir)
		path = strings.Replace(path, "~", homeDir, 1)
	}

	// NOTE: The os.ExpandEnv doesn't work with Windows-style %VARIABLE%,
	// but they variables can still be expanded via POSIX-style $VARIABLE.
	return filepath.Clean(os.ExpandEnv(path))
}

// parseAndSetDebugLevels attempts to parse the specified debug level and set
// the levels accordingly.  An appropriate error is returned if anything is
// invalid.
func parseAndSetDebugLevels(debugLevel string) error {
	// When the specified string doesn't have any delimters, treat it as
	// the log level for all subsystems.
	if !strings.Contains(debugLevel, ",") && !strings.Contains(debugLevel, "=") {
		return logger.SetLogLevels(debugLevel)
	}

	// Split the specified string into subsystem/level pairs while detecting
	// issues and update the log levels accordingly.
	for _, logLevelPair := range strings.Split(debugLevel, ",") {
		if !strings.Contains(logLevelPair, "=") {
			str := "the specified debug level contains an invalid " +
				"subsystem/level pair [%v]"
			return fmt.Errorf(str, logLevelPair)
		}

		// Extract the specified subsystem and log level.
		fields := strings.Split(logLevelPair, "=")
		subsysID, logLevel := fields[0], fields[1]

		// Validate subsystem.
		if !isExistSystem(subsysID) {
			str := "the specified subsystem [%v] is invalid -- " +
				"supported subsytems %v"
			return fmt.Errorf(str, subsysID, logger.SupportedSubsystems())
		}

		logger.SetLogLevel(subsysID, logLevel)
	}

	return nil
}
