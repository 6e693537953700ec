//go:build !js && !wasm
// +build !js,!wasm

package main

import (
	"flag"
	"os"
	"strings"

	"github.com/himanishpuri/BeatPattern/internal/config"
	"github.com/himanishpuri/BeatPattern/pkg/beatpattern"
	"github.com/himanishpuri/BeatPattern/pkg/logger"
)

var (
	port           int
	dbPath         string
	configPath     string
	workers        int
	allowedOrigins string
)

func init() {
	flag.IntVar(&port, "port", 0, "HTTP server port (0 uses the config value)")
	flag.StringVar(&dbPath, "db", "", "Path to SQLite database (env: BEATPATTERN_DB_PATH)")
	flag.StringVar(&configPath, "config", os.Getenv("BEATPATTERN_CONFIG"), "Path to a TOML config file")
	flag.IntVar(&workers, "workers", 0, "Concurrent window scans (0 uses the config value)")
	flag.StringVar(&allowedOrigins, "origins", "", "Comma-separated list of allowed CORS origins (use * for all)")
}

func main() {
	flag.Parse()
	log := logger.GetLogger()

	conf, err := config.Load(configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if port > 0 {
		conf.Server.Port = port
	}
	if dbPath != "" {
		conf.Database.Path = dbPath
	}
	if workers > 0 {
		conf.Analysis.Workers = workers
	}
	if allowedOrigins != "" {
		conf.Server.AllowedOrigins = parseOrigins(allowedOrigins)
	}
	conf.ApplyLogLevel()

	opts := append(conf.ServiceOptions(), beatpattern.WithLogger(log.WithPrefix("service")))
	service, err := beatpattern.NewService(opts...)
	if err != nil {
		log.Fatalf("Failed to create service: %v", err)
	}
	defer service.Close()

	server := NewServer(service, &ServerConfig{
		Port:           conf.Server.Port,
		DBPath:         conf.Database.Path,
		AllowedOrigins: conf.Server.AllowedOrigins,
	})
	if err := server.Start(); err != nil {
		log.Fatalf("Server failed: %v", err)
	}
}

func parseOrigins(s string) []string {
	if s == "*" {
		return []string{"*"}
	}
	origins := strings.Split(s, ",")
	for i := range origins {
		origins[i] = strings.TrimSpace(origins[i])
	}
	return origins
}
