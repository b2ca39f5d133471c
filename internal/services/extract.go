package services

import (
	"bytes"
	"io"
	"mime/multipart"
	"net/http"
	"strings"

	"github.com/Shishir2405/notenex-api/internal/config"
	"github.com/Shishir2405/notenex-api/internal/models"
)

type TextExtractionService struct {
	tikaURL string
}

func NewTextExtractionService(cfg *config.Config) *TextExtractionService {
	return &TextExtractionService{
		tikaURL: cfg.TikaURL,
	}
}

// IsTextExtractable reports whether Tika can pull searchable text out
// of the given note file type.
func IsTextExtractable(fileType models.FileType) bool {
	switch fileType {
	case models.FileTypePDF, models.FileTypeDoc, models.FileTypeDocx, models.FileTypeTxt:
		return true
	}
	return false
}

func (s *TextExtractionService) ExtractText(file multipart.File) (string, error) {
	// Need to seek to start of file as it might have been read by storage service
	if seeker, ok := file.(io.Seeker); ok {
		seeker.Seek(0, 0)
	}

	req, err := http.NewRequest("PUT", strings.TrimRight(s.tikaURL, "/")+"/tika", file)
	if err != nil {
		return "", err
	}
	req.Header.Set("Accept", "text/plain")

	client := &http.Client{}
	resp, err := client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}

	return string(bytes.TrimSpace(body)), nil
}
