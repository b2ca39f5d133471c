package services

import (
	"strings"

	"github.com/meilisearch/meilisearch-go"
	"go.uber.org/zap"

	"github.com/Shishir2405/notenex-api/internal/config"
	"github.com/Shishir2405/notenex-api/internal/models"
)

// SearchService maintains the Meilisearch notes index used by the
// dedicated relevance search endpoint. Only approved notes are ever
// indexed: notes enter the index on approval and leave it on
// rejection or deletion, so a hit can never leak a hidden note.
type SearchService struct {
	client *meilisearch.Client
	index  string
	log    *zap.Logger
}

func NewSearchService(cfg *config.Config, log *zap.Logger) *SearchService {
	client := meilisearch.NewClient(meilisearch.ClientConfig{
		Host:   cfg.MeiliURL,
		APIKey: cfg.MeiliAPIKey,
	})

	// Ensure notes index exists (best effort)
	_, err := client.GetIndex("notes")
	if err != nil {
		_, err = client.CreateIndex(&meilisearch.IndexConfig{
			Uid:        "notes",
			PrimaryKey: "id",
		})
		if err != nil {
			log.Warn("failed to create meilisearch notes index", zap.Error(err))
		}

		_, err = client.Index("notes").UpdateFilterableAttributes(&[]string{"subject", "semester", "college", "course", "quality", "is_premium"})
		if err != nil {
			log.Warn("failed to update filterable attributes", zap.Error(err))
		}

		_, err = client.Index("notes").UpdateSortableAttributes(&[]string{"created_at", "download_count", "view_count"})
		if err != nil {
			log.Warn("failed to update sortable attributes", zap.Error(err))
		}

		_, err = client.Index("notes").UpdateSearchableAttributes(&[]string{"title", "description", "tags", "topics", "content_text"})
		if err != nil {
			log.Warn("failed to update searchable attributes", zap.Error(err))
		}
	}

	return &SearchService{
		client: client,
		index:  "notes",
		log:    log,
	}
}

func (s *SearchService) IndexNote(note models.Note) error {
	_, err := s.client.Index(s.index).AddDocuments([]models.Note{note})
	return err
}

func (s *SearchService) IndexNotes(notes []models.Note) error {
	if len(notes) == 0 {
		return nil
	}
	_, err := s.client.Index(s.index).AddDocuments(notes)
	return err
}

func (s *SearchService) DeleteNote(noteID string) error {
	_, err := s.client.Index(s.index).DeleteDocument(noteID)
	return err
}

func (s *SearchService) Search(query string, subject string, limit int64) (*meilisearch.SearchResponse, error) {
	if limit <= 0 {
		limit = 20
	}
	request := &meilisearch.SearchRequest{
		Limit: limit,
	}

	if subject != "" {
		request.Filter = `subject = "` + escapeFilterValue(subject) + `"`
	}

	return s.client.Index(s.index).Search(query, request)
}

// escapeFilterValue makes a string safe to embed in a quoted
// Meilisearch filter expression.
func escapeFilterValue(v string) string {
	v = strings.ReplaceAll(v, `\`, `\\`)
	return strings.ReplaceAll(v, `"`, `\"`)
}

func (s *SearchService) GetNoteCount() (int64, error) {
	stats, err := s.client.Index(s.index).GetStats()
	if err != nil {
		return 0, err
	}
	return stats.NumberOfDocuments, nil
}
