package main

import (
	"log"
	"net/http"
	"os"

	"github.com/joho/godotenv"

	"github.com/clipsight/clipsight/internal/api"
	"github.com/clipsight/clipsight/internal/database"
	"github.com/clipsight/clipsight/internal/playback"
	"github.com/clipsight/clipsight/internal/registry"
	"github.com/clipsight/clipsight/internal/segmentation"
	"github.com/clipsight/clipsight/internal/selection"
	"github.com/clipsight/clipsight/internal/storage"
	"github.com/clipsight/clipsight/internal/timeline"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Printf("No .env file loaded: %v", err)
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	dbPath := os.Getenv("DB_PATH")
	if dbPath == "" {
		dbPath = "./clipsight.db"
	}

	maskDir := os.Getenv("MASK_DIR")
	if maskDir == "" {
		maskDir = "./masks"
	}

	segmenterURL := os.Getenv("SEGMENTER_URL")
	if segmenterURL == "" {
		segmenterURL = "http://localhost:9090"
	}
	segmenterKey := os.Getenv("SEGMENTER_API_KEY")
	if segmenterKey == "" {
		log.Printf("SEGMENTER_API_KEY not set; calling the segmentation service unauthenticated")
	}

	db, err := database.NewDB(database.Config{Path: dbPath})
	if err != nil {
		log.Fatal("Failed to initialize database:", err)
	}
	defer db.Close()

	maskStore, err := storage.NewLocalStorage(maskDir)
	if err != nil {
		log.Fatal("Failed to initialize mask storage:", err)
	}

	assetRepo := database.NewAssetRepository(db)
	reg := registry.New()
	engine := timeline.NewEngine()
	binder := timeline.NewBinder(engine)
	segmenter := segmentation.NewClient(segmenterURL, segmenterKey)

	app := &api.App{
		DB:        db,
		AssetRepo: assetRepo,
		Registry:  reg,
		Selection: selection.NewService(reg, binder, segmenter, assetRepo, maskStore),
		Timeline:  engine,
		Clock:     playback.NewClock(),
		Masks:     maskStore,
	}

	router := api.NewRouter(app)

	log.Printf("Server starting on port %s", port)
	log.Printf("Database path: %s", dbPath)
	log.Printf("Mask directory: %s", maskDir)
	log.Printf("Segmentation service: %s", segmenterURL)

	if err := http.ListenAndServe(":"+port, router); err != nil {
		log.Fatal(err)
	}
}
