package main

import (
	"context"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"
	flag "github.com/spf13/pflag"
	"go.uber.org/zap"

	"crm-console/internal/console/screens"
	"crm-console/internal/crmclient"
	"crm-console/internal/tui"
	"crm-console/pkg/config"
	applogger "crm-console/pkg/logger"
)

func main() {
	cfg := config.New()

	crmURL := flag.String("crm-url", cfg.CRM.BaseURL, "адрес CRM API")
	email := flag.String("email", "", "email для подстановки в форму входа")
	logFile := flag.String("log-file", "./logs/tui.log", "файл журнала терминальной консоли")
	flag.Parse()

	logger := applogger.NewFileLogger(*logFile)
	defer func() { _ = logger.Sync() }()

	client := crmclient.New(*crmURL, cfg.CRM.Timeout, logger)
	notifier := tui.NewNotifier()

	factory := func(ctx context.Context, token string) (tui.LeadBoard, error) {
		ws := screens.NewWorkspace(uuid.NewString(), client.WithCredential(crmclient.StaticToken(token)), notifier, logger)
		return ws.Leads(ctx)
	}

	model := tui.New(tui.ClientAuth{Client: client}, factory,
		tui.WithEvents(notifier.Events()),
		tui.WithTimeout(cfg.CRM.Timeout),
		tui.WithEmail(*email),
	)

	logger.Info("Терминальная консоль запущена", zap.String("crm", *crmURL))
	if _, err := tea.NewProgram(model, tea.WithAltScreen()).Run(); err != nil {
		logger.Error("Ошибка терминальной консоли", zap.Error(err))
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
