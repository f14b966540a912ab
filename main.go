// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Command workspace-tui is a terminal client for the workspace backend: a
// sidebar of projects and chat sessions next to a chat view with file
// attachments.
package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/workspace-tui/internal/api"
	"github.com/jeranaias/workspace-tui/internal/config"
	"github.com/jeranaias/workspace-tui/internal/ui/app"
	"github.com/jeranaias/workspace-tui/internal/ui/styles"
)

const version = "0.3.0"

func main() {
	var (
		configPath  = flag.String("config", config.DefaultPath(), "path to the config file")
		backendURL  = flag.String("backend", "", "backend base URL (overrides config)")
		logPath     = flag.String("log", "", "write debug logs to this file")
		showVersion = flag.Bool("version", false, "print version and exit")
	)
	flag.Parse()

	if *showVersion {
		fmt.Println("workspace-tui " + version)
		return
	}

	// The terminal belongs to the UI; logs go to a file or nowhere.
	if *logPath != "" {
		f, err := tea.LogToFile(*logPath, "workspace")
		if err != nil {
			fmt.Fprintf(os.Stderr, "opening log file: %v\n", err)
			os.Exit(1)
		}
		defer f.Close()
	} else {
		log.SetOutput(io.Discard)
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "loading config: %v\n", err)
		os.Exit(1)
	}
	if *backendURL != "" {
		cfg.Backend.BaseURL = *backendURL
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "invalid config: %v\n", err)
		os.Exit(1)
	}

	client := api.NewClientWithConfig(&api.ClientConfig{
		BaseURL: cfg.Backend.BaseURL,
		Timeout: time.Duration(cfg.Backend.TimeoutSecs) * time.Second,
	})

	// Live reload is best effort; a missing config directory just disables it.
	watcher, err := config.Watch(*configPath)
	if err != nil {
		log.Printf("config watch disabled: %v", err)
		watcher = nil
	}

	program := tea.NewProgram(
		app.New(styles.NewTheme(), client, cfg, watcher),
		tea.WithAltScreen(),
	)
	if _, err := program.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}
