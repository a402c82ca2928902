package client

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/schollz/progressbar/v3"

	"bastionctl/pkg/hasher"
)

// DownloadBackup streams a backup archive to downloadPath and returns the
// path of the written file. The transfer goes through the full request stack
// (auth header, 401 recovery, retry on transient failures) and is verified
// against the backup's SHA-256 checksum when the appliance reports one.
func (c *Client) DownloadBackup(ctx context.Context, backup Backup, downloadPath string, showProgress bool) (string, error) {
	if backup.ID == "" {
		return "", fmt.Errorf("backup ID cannot be empty")
	}
	if err := ensureDirExists(downloadPath); err != nil {
		return "", fmt.Errorf("failed to prepare download directory: %w", err)
	}

	path := fmt.Sprintf("/backups/%s/archive", backup.ID)
	resp, err := c.do(ctx, requestAttempt{
		method: http.MethodGet,
		path:   path,
		url:    c.endpoint(path, nil),
	})
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", classifyResponse(resp)
	}

	fileName := archiveFileName(resp, backup.ID)
	filePath := filepath.Join(downloadPath, fileName)
	file, err := os.Create(filePath)
	if err != nil {
		return "", fmt.Errorf("failed to create archive file: %w", err)
	}
	defer file.Close()

	reader := c.wrapWithRateLimiter(resp.Body)

	var dst io.Writer = file
	if showProgress {
		bar := progressbar.NewOptions64(
			resp.ContentLength,
			progressbar.OptionSetDescription(fmt.Sprintf("Downloading %s", fileName)),
			progressbar.OptionShowBytes(true),
			progressbar.OptionClearOnFinish(),
		)
		dst = io.MultiWriter(file, bar)
	}

	if _, err := io.Copy(dst, reader); err != nil {
		os.Remove(filePath)
		if ctx.Err() != nil {
			return "", ErrCanceled
		}
		return "", fmt.Errorf("failed to write archive: %w", err)
	}

	if backup.SHA256 != "" {
		sum, err := hasher.GenerateHash(filePath, "sha256")
		if err != nil {
			return "", fmt.Errorf("failed to hash downloaded archive: %w", err)
		}
		if !strings.EqualFold(sum, backup.SHA256) {
			os.Remove(filePath)
			return "", fmt.Errorf("archive checksum mismatch: got %s, expected %s", sum, backup.SHA256)
		}
	}

	log.Info().Str("file", filePath).Msg("Backup archive downloaded")
	return filePath, nil
}

// archiveFileName derives the output file name from the Content-Disposition
// header, falling back to the backup ID.
func archiveFileName(resp *http.Response, backupID string) string {
	if cd := resp.Header.Get("Content-Disposition"); cd != "" {
		const marker = `filename="`
		if i := strings.Index(cd, marker); i >= 0 {
			rest := cd[i+len(marker):]
			if j := strings.Index(rest, `"`); j > 0 {
				return rest[:j]
			}
		}
	}
	return backupID + ".tar.gz"
}

// ensureDirExists checks for a directory and creates it if needed.
func ensureDirExists(path string) error {
	info, err := os.Stat(path)
	if err == nil {
		if !info.IsDir() {
			return fmt.Errorf("path %s exists but is not a directory", path)
		}
		return nil
	}
	if os.IsNotExist(err) {
		return os.MkdirAll(path, os.ModePerm)
	}
	return err
}
