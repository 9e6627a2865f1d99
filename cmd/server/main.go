package main

import (
	"flag"
	"os"
	"os/signal"
	"syscall"
	"time"

	"tactics-server/internal/engine"
	"tactics-server/internal/server"
	"tactics-server/internal/version"
	"tactics-server/pkg/logger"
)

func init() {
	logger.Init()
}

func main() {
	// 1. Парсинг конфигурации
	var (
		abilitiesPath string
		battlePath    string
		journalDir    string
		tickMillis    int
	)
	flag.StringVar(&abilitiesPath, "abilities", "", "Path to abilities YAML (empty for embedded defaults)")
	flag.StringVar(&battlePath, "battle", "", "Path to battle setup YAML (empty for embedded defaults)")
	flag.StringVar(&journalDir, "journals", "journals", "Directory for battle journals")
	flag.IntVar(&tickMillis, "tick", 100, "Scheduler tick interval, milliseconds")
	flag.Parse()

	logger.Log.Info("Starting tactics battle server...")
	logger.Log.Info(version.String())

	port := os.Getenv("TS_PORT")
	if port == "" {
		port = "8080"
	}

	// 2. Инициализация ядра
	svc, err := engine.NewService(engine.Options{
		AbilitiesPath: abilitiesPath,
		BattlePath:    battlePath,
	})
	if err != nil {
		logger.Log.Fatal("Engine init failed: ", err)
	}
	if err := svc.SetupInitialState(); err != nil {
		logger.Log.Fatal("Battle setup failed: ", err)
	}

	session := server.NewSession(svc, time.Duration(tickMillis)*time.Millisecond)
	session.Start()

	// Graceful Shutdown
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	// 3. Запуск сервера
	srv := server.New(session, port)

	go func() {
		if err := srv.Run(); err != nil {
			logger.Log.Fatal("Server start error: ", err)
		}
	}()

	<-stop
	logger.Log.Info("Shutting down...")

	session.Stop()
	session.SaveJournal(journalDir)

	logger.Log.Info("Done.")
}
