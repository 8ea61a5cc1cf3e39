// Command sioecho is a minimal host program for the sioclient package: it
// connects to a Socket.IO polling server, logs every event the bus
// delivers, and echoes "ping"-named events back at the server.
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	sioclient "github.com/zweieuro/go-sioclient"
	"github.com/zweieuro/go-sioclient/sioconfig"
)

func main() {
	configPath := flag.String("config", "", "path to a sioconfig YAML file")
	serverAddress := flag.String("server", "", "server host:port, overrides -config")
	logLevel := flag.String("log-level", "info", "debug, info, warn, or error")
	flag.Parse()

	level := new(slog.LevelVar)
	if err := level.UnmarshalText([]byte(*logLevel)); err != nil {
		fmt.Fprintf(os.Stderr, "sioecho: invalid -log-level %q: %v\n", *logLevel, err)
		os.Exit(2)
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	cfg, err := loadConfig(*configPath, *serverAddress)
	if err != nil {
		logger.Error("config", "error", err)
		os.Exit(1)
	}
	cfg.Logger = logger

	mgr := sioclient.NewManager(1, sioclient.ManagerOptions{})
	id, err := mgr.Init(cfg)
	if err != nil {
		logger.Error("init", "error", err)
		os.Exit(1)
	}

	events := mgr.Events().Subscribe(32)

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	if err := mgr.Begin(id); err != nil {
		logger.Error("begin", "error", err)
		os.Exit(1)
	}

	logger.Info("connecting", "server", cfg.ServerAddress)

	for {
		select {
		case ev := <-events:
			handleEvent(logger, mgr, id, ev)
			if ev.Kind == sioclient.EventDisconnected {
				return
			}
		case <-sigCh:
			logger.Info("shutting down")
			if err := mgr.Close(id); err != nil {
				logger.Error("close", "error", err)
			}
			return
		}
	}
}

func handleEvent(logger *slog.Logger, mgr *sioclient.Manager, id sioclient.ClientID, ev sioclient.Event) {
	switch ev.Kind {
	case sioclient.EventConnected:
		logger.Info("connected")
	case sioclient.EventConnectError:
		logger.Error("connect failed", "packets", ev.Len)
	case sioclient.EventReceivedMessage:
		for _, p := range ev.Batch {
			logger.Info("received", "eio_kind", p.EIOKind.String(), "sio_kind", p.SIOKind.String(), "json", p.JSON())
			if p.SIOKind == sioclient.SIOKindEvent {
				if err := mgr.SendString(id, "pong", p.JSON()); err != nil {
					logger.Error("echo failed", "error", err)
				}
			}
		}
	case sioclient.EventUpgradeTransportError:
		logger.Warn("websocket upgrade unavailable, staying on polling")
	case sioclient.EventDisconnected:
		logger.Info("disconnected")
	}
}

func loadConfig(path, serverAddress string) (sioclient.Config, error) {
	if path == "" {
		if serverAddress == "" {
			return sioclient.Config{}, fmt.Errorf("sioecho: one of -config or -server is required")
		}
		return sioclient.Config{
			Transport:     sioclient.TransportPolling,
			ServerAddress: serverAddress,
		}, nil
	}

	cfg, err := sioconfig.Load(path)
	if err != nil {
		return sioclient.Config{}, err
	}
	if serverAddress != "" {
		cfg.ServerAddress = serverAddress
	}
	return cfg, nil
}
