package main

import (
	"flag"
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/clack-chat/clack/internal/bus"
	"github.com/clack-chat/clack/internal/chat"
	"github.com/clack-chat/clack/internal/client"
	"github.com/clack-chat/clack/internal/config"
	"github.com/clack-chat/clack/internal/kv"
	"github.com/clack-chat/clack/internal/logging"
	"github.com/clack-chat/clack/internal/profile"
	"github.com/clack-chat/clack/internal/tui"
)

func main() {
	profileFlag := flag.String("profile", "", "profile name (overrides config default)")
	remoteFlag := flag.Bool("remote", false, "connect to a clackd daemon instead of the local store")
	serverFlag := flag.String("server", "", "daemon base URL for remote mode (overrides config)")
	flag.Parse()

	profileName := profile.Resolve(*profileFlag)
	if err := profile.ValidateName(profileName); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
	if err := profile.EnsureDir(profileName); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}

	logger, err := logging.NewFileOnly(profile.TUILogPath(profileName), profileName)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = logger.Sync() }()

	var app *tui.App
	if *remoteFlag {
		app, err = remoteApp(profileName, *serverFlag)
	} else {
		app, err = localApp(profileName)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}

	logger.Info("tui starting", zap.Bool("remote", *remoteFlag))
	if err := app.Run(); err != nil {
		logger.Error("tui exited", zap.Error(err))
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

// localApp runs against the profile's own Badger store, no daemon involved.
func localApp(profileName string) (*tui.App, error) {
	db, err := kv.OpenBadger(profile.KVDir(profileName))
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}

	b := bus.New()
	store := chat.New(db, b)

	return tui.NewApp(store, tui.Options{
		ProfileName: profileName,
		Mode:        "local",
		Bus:         b,
		Prefs:       store,
	}), nil
}

// remoteApp runs against a clackd daemon. The theme preference lives in
// config.toml because there is no local store to hold it.
func remoteApp(profileName, serverAddr string) (*tui.App, error) {
	if serverAddr == "" {
		cfg, _ := config.Load(profile.ConfigPath())
		if cfg != nil && cfg.ServerAddr != "" {
			serverAddr = cfg.ServerAddr
		} else {
			serverAddr = "http://" + cfg.ListenAddrOrDefault()
		}
	}

	return tui.NewApp(client.New(serverAddr), tui.Options{
		ProfileName: profileName,
		Mode:        "remote " + serverAddr,
		Prefs:       &configPrefs{},
	}), nil
}

// configPrefs persists the theme in the global config file.
type configPrefs struct{}

func (*configPrefs) Theme() (string, error) {
	cfg, err := config.Load(profile.ConfigPath())
	if err != nil {
		return "", err
	}
	return cfg.Theme, nil
}

func (*configPrefs) SetTheme(name string) error {
	cfg, err := config.Load(profile.ConfigPath())
	if err != nil {
		cfg = &config.Config{}
	}
	cfg.Theme = name
	return config.Save(profile.ConfigPath(), cfg)
}
