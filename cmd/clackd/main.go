package main

import (
	"flag"
	"fmt"
	"os"

	"go.uber.org/fx"

	"github.com/clack-chat/clack/internal/config"
	"github.com/clack-chat/clack/internal/daemon"
	"github.com/clack-chat/clack/internal/profile"
)

func main() {
	profileFlag := flag.String("profile", "", "profile name (overrides config default)")
	listenFlag := flag.String("listen", "", "listen address (overrides config)")
	flag.Parse()

	profileName := profile.Resolve(*profileFlag)
	if err := profile.ValidateName(profileName); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}

	listenAddr := *listenFlag
	if listenAddr == "" {
		cfg, _ := config.Load(profile.ConfigPath())
		listenAddr = cfg.ListenAddrOrDefault()
	}

	app := fx.New(
		daemon.Module(daemon.Params{
			ProfileName: profileName,
			ListenAddr:  listenAddr,
		}),
	)

	app.Run()
}
