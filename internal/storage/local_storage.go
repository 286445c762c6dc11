package storage

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
)

type LocalStorage struct {
	basePath   string
	httpClient *http.Client
}

func NewLocalStorage(basePath string) (*LocalStorage, error) {
	if err := os.MkdirAll(basePath, 0755); err != nil {
		return nil, fmt.Errorf("failed to create storage directory: %w", err)
	}
	return &LocalStorage{
		basePath: basePath,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}, nil
}

// SaveMask downloads the mask image at maskURL and stores it under a fresh
// name, returning the stored filename.
func (ls *LocalStorage) SaveMask(ctx context.Context, objectID, maskURL string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, "GET", maskURL, nil)
	if err != nil {
		return "", fmt.Errorf("creating request: %w", err)
	}

	resp, err := ls.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("fetching mask: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("mask host returned status %d", resp.StatusCode)
	}

	ext := filepath.Ext(maskURL)
	if ext == "" || len(ext) > 5 {
		ext = ".png"
	}

	filename := fmt.Sprintf("%s-%s%s", objectID, uuid.New().String(), ext)
	fullPath := filepath.Join(ls.basePath, filename)

	dst, err := os.Create(fullPath)
	if err != nil {
		return "", fmt.Errorf("failed to create file: %w", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, resp.Body); err != nil {
		os.Remove(fullPath)
		return "", fmt.Errorf("failed to save mask: %w", err)
	}

	return filename, nil
}

func (ls *LocalStorage) OpenMask(path string) (io.ReadSeekCloser, error) {
	cleanPath := filepath.Clean(path)
	if strings.Contains(cleanPath, "..") || filepath.IsAbs(cleanPath) {
		return nil, fmt.Errorf("invalid mask path")
	}

	file, err := os.Open(filepath.Join(ls.basePath, cleanPath))
	if err != nil {
		return nil, fmt.Errorf("failed to open mask: %w", err)
	}
	return file, nil
}

func (ls *LocalStorage) DeleteMask(path string) error {
	cleanPath := filepath.Clean(path)
	if strings.Contains(cleanPath, "..") || filepath.IsAbs(cleanPath) {
		return fmt.Errorf("invalid mask path")
	}

	if err := os.Remove(filepath.Join(ls.basePath, cleanPath)); err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("failed to delete mask: %w", err)
	}
	return nil
}
