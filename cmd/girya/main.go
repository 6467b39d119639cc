package main

import (
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/ayusman/girya/internal/app"
	"github.com/ayusman/girya/internal/server"
	"github.com/ayusman/girya/internal/store"
	"github.com/ayusman/girya/internal/tray"
)

func main() {
	fmt.Println("Girya - Barbell & Kettlebell Velocity Tracker")

	// Initialize the store
	homeDir, err := os.UserHomeDir()
	if err != nil {
		log.Fatalf("Failed to get home directory: %v", err)
	}

	dataDir := filepath.Join(homeDir, ".girya")
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		log.Fatalf("Failed to create data directory: %v", err)
	}

	dbPath := filepath.Join(dataDir, "girya.db")
	st, err := store.New(dbPath)
	if err != nil {
		log.Fatalf("Failed to initialize store: %v", err)
	}
	defer st.Close()

	// Application: camera → pose detector → classification engine
	application := app.New(app.Config{
		Store:       st,
		ExporterDir: filepath.Join(dataDir, "exporters"),
	})

	if err := application.DiscoverExporters(); err != nil {
		log.Printf("Exporter discovery failed: %v", err)
	}

	// Find web directory
	webDir := findWebDir()
	if webDir != "" {
		fmt.Printf("Serving static files from: %s\n", webDir)
	}

	// Configure the server
	srv := server.New(server.Config{
		StaticDir: webDir,
		Store:     st,
		Camera:    application.Camera(),
		Exporter:  application,
	})

	// Tray UI
	t := tray.New()

	// Push per-frame engine state to the live feed and the tray
	application.OnUpdate(func(u app.Update) {
		srv.Live().Broadcast(u)
		if u.Rep != nil {
			t.SetLastRep(string(u.Rep.Movement), u.Rep.PeakVelocity)
			t.SetRepCount(u.Summary.Total)
		}
	})

	t.OnSession(func(recording bool) {
		if recording {
			if _, err := application.StartSession(""); err != nil {
				log.Printf("Failed to start session: %v", err)
			}
		} else {
			if err := application.EndSession(); err != nil {
				log.Printf("Failed to end session: %v", err)
			}
		}
	})
	t.OnQuit(func() {
		application.Stop()
	})

	if err := application.Start(); err != nil {
		log.Fatalf("Failed to start tracking pipeline: %v", err)
	}

	addr := ":8080"
	fmt.Printf("Starting server on %s\n", addr)
	go func() {
		if err := srv.ListenAndServe(addr); err != nil {
			log.Fatalf("Server failed: %v", err)
		}
	}()

	// Blocks until Quit is selected
	t.Run()
}

// findWebDir searches for the web directory in common locations.
// It checks: "web", "../web", "../../web", and ~/.girya/web.
// Returns the first existing directory or empty string if none found.
func findWebDir() string {
	// Check relative paths from current working directory
	relativePaths := []string{"web", "../web", "../../web"}
	for _, p := range relativePaths {
		if info, err := os.Stat(p); err == nil && info.IsDir() {
			absPath, err := filepath.Abs(p)
			if err == nil {
				return absPath
			}
			return p
		}
	}

	// Check home directory
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ""
	}

	homeWebDir := filepath.Join(homeDir, ".girya", "web")
	if info, err := os.Stat(homeWebDir); err == nil && info.IsDir() {
		return homeWebDir
	}

	return ""
}
