package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/clack-chat/clack/internal/client"
	"github.com/clack-chat/clack/internal/config"
	"github.com/clack-chat/clack/internal/profile"
)

func main() {
	serverFlag := flag.String("server", "", "daemon base URL (overrides config)")
	jsonFlag := flag.Bool("json", false, "output in JSON format")
	flag.Parse()

	args := flag.Args()
	if len(args) == 0 {
		printUsage()
		os.Exit(1)
	}

	c := client.New(resolveServer(*serverFlag))
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	switch args[0] {
	case "status":
		cmdStatus(ctx, c, *jsonFlag)
	case "register":
		if len(args) != 3 {
			fmt.Fprintln(os.Stderr, "usage: clackctl register <username> <password>")
			os.Exit(1)
		}
		cmdRegister(ctx, c, args[1], args[2])
	case "send":
		if len(args) != 5 {
			fmt.Fprintln(os.Stderr, "usage: clackctl send <username> <password> <recipient> <text>")
			os.Exit(1)
		}
		cmdSend(ctx, c, args[1], args[2], args[3], args[4])
	default:
		fmt.Fprintf(os.Stderr, "unknown command: %s\n", args[0])
		printUsage()
		os.Exit(1)
	}
}

func resolveServer(flagValue string) string {
	if flagValue != "" {
		return flagValue
	}
	cfg, _ := config.Load(profile.ConfigPath())
	if cfg != nil && cfg.ServerAddr != "" {
		return cfg.ServerAddr
	}
	return "http://" + cfg.ListenAddrOrDefault()
}

func cmdStatus(ctx context.Context, c *client.Client, asJSON bool) {
	health, err := c.Health(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}

	if asJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		_ = enc.Encode(health)
		return
	}
	fmt.Printf("state:       %s (since %s)\n", health.State, health.Since)
	fmt.Printf("profiles:    %d\n", health.Profiles)
	fmt.Printf("messages:    %d\n", health.Messages)
	fmt.Printf("subscribers: %d\n", health.Subscribers)
}

func cmdRegister(ctx context.Context, c *client.Client, username, password string) {
	s, err := c.Register(ctx, username, password, password)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("registered %s\n", s.Username)
}

func cmdSend(ctx context.Context, c *client.Client, username, password, recipient, text string) {
	s, err := c.Login(ctx, username, password)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
	msg, err := c.Send(ctx, s.Username, recipient, text)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("sent %s -> %s at %s\n", s.Username, recipient,
		time.UnixMilli(msg.Timestamp).Format(time.RFC3339))
}

func printUsage() {
	fmt.Fprintln(os.Stderr, "usage: clackctl [--server <url>] [--json] <command>")
	fmt.Fprintln(os.Stderr, "")
	fmt.Fprintln(os.Stderr, "commands:")
	fmt.Fprintln(os.Stderr, "  status                                      Show daemon status")
	fmt.Fprintln(os.Stderr, "  register <username> <password>              Create an account")
	fmt.Fprintln(os.Stderr, "  send <username> <password> <to> <text>      Send a message")
}
