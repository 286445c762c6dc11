package main

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"os"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/clipsight/clipsight/internal/models"
	"github.com/clipsight/clipsight/internal/segmentation"
)

// Sends one probe click to the configured segmentation service and reports
// what it would register, without touching any state.
func main() {
	dbPath := os.Getenv("DB_PATH")
	if dbPath == "" {
		dbPath = "./clipsight.db"
	}

	segmenterURL := os.Getenv("SEGMENTER_URL")
	if segmenterURL == "" {
		segmenterURL = "http://localhost:9090"
	}

	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		log.Fatal("Failed to open database:", err)
	}
	defer db.Close()

	var videoCount int
	if err := db.QueryRow("SELECT COUNT(*) FROM videos").Scan(&videoCount); err != nil {
		log.Fatal("Failed to count videos:", err)
	}
	fmt.Printf("Videos registered: %d\n", videoCount)

	var videoID string
	err = db.QueryRow("SELECT id FROM videos ORDER BY upload_time DESC LIMIT 1").Scan(&videoID)
	if err == sql.ErrNoRows {
		fmt.Println("No videos registered; probing with a synthetic id.")
		videoID = "probe"
	} else if err != nil {
		log.Fatal("Failed to pick a video:", err)
	}

	client := segmentation.NewClient(segmenterURL, os.Getenv("SEGMENTER_API_KEY"))

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	fmt.Printf("Probing %s with a center click on video %s...\n", segmenterURL, videoID)
	result, err := client.Segment(ctx, segmentation.SegmentRequest{
		VideoID: videoID,
		Point:   models.ClickCoordinate{X: 0.5, Y: 0.5, Timestamp: 0, Frame: 0},
	})
	if err != nil {
		log.Fatal("Segmentation probe failed:", err)
	}

	fmt.Printf("OK: object %s, %d frames, %d boxes, confidence %.2f\n",
		result.ObjectID, len(result.Frames), len(result.BoundingBoxes), result.Confidence)
	if len(result.Frames) != len(result.BoundingBoxes) {
		fmt.Println("WARNING: frames and boxes do not correspond 1:1; uncovered frames will render as not visible")
	}
	if result.MaskURL != "" {
		fmt.Printf("Mask: %s\n", result.MaskURL)
	}
}
