package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/dorjigee198/support-chat/internal/config"
	"github.com/dorjigee198/support-chat/internal/service"
	"github.com/dorjigee198/support-chat/internal/tui"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "failed to load config:", err)
		os.Exit(1)
	}

	// Setup structured logging. The TUI owns the terminal, so logs go to a
	// file when configured and are dropped otherwise.
	logOut := io.Discard
	if cfg.LogFile != "" {
		f, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			fmt.Fprintln(os.Stderr, "failed to open log file:", err)
			os.Exit(1)
		}
		defer f.Close()
		logOut = f
	}
	logger := slog.New(slog.NewJSONHandler(logOut, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	// Setup context with graceful shutdown
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	replies := service.NewReplyClient(cfg)
	view := tui.NewLogView()
	session := service.NewChatSession(view, replies)

	p := tea.NewProgram(tui.NewModel(ctx, view, session), tea.WithAltScreen(), tea.WithContext(ctx))
	view.SetNotify(func() {
		p.Send(tui.Refresh())
	})

	if _, err := p.Run(); err != nil {
		fmt.Fprintln(os.Stderr, "chat client error:", err)
		os.Exit(1)
	}
}
