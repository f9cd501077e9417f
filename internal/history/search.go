package history

import (
	"fmt"
	"log"
	"os"

	"github.com/blevesearch/bleve/v2"
	"github.com/blevesearch/bleve/v2/analysis/analyzer/keyword"
	"github.com/blevesearch/bleve/v2/analysis/analyzer/standard"
	"github.com/blevesearch/bleve/v2/mapping"
)

// SearchResult is one full-text hit over the transcript.
type SearchResult struct {
	MessageID      string
	ConversationID string
	Role           Role
	Score          float64
}

// TranscriptIndex provides full-text search over persisted messages.
type TranscriptIndex struct {
	index bleve.Index
	path  string
}

// NewTranscriptIndex creates or opens the transcript index. A corrupted
// index is deleted and recreated rather than failing startup.
func NewTranscriptIndex(dbPath string) (*TranscriptIndex, error) {
	indexPath := dbPath + ".bleve"

	index, err := bleve.Open(indexPath)
	if err == bleve.ErrorIndexPathDoesNotExist {
		index, err = bleve.New(indexPath, buildTranscriptMapping())
		if err != nil {
			return nil, fmt.Errorf("failed to create transcript index: %w", err)
		}
	} else if err != nil {
		log.Printf("transcript index appears corrupted (error: %v), recreating", err)
		if index != nil {
			index.Close()
		}
		if err := os.RemoveAll(indexPath); err != nil {
			return nil, fmt.Errorf("failed to remove corrupted index: %w", err)
		}
		index, err = bleve.New(indexPath, buildTranscriptMapping())
		if err != nil {
			return nil, fmt.Errorf("failed to recreate transcript index: %w", err)
		}
	}

	return &TranscriptIndex{index: index, path: indexPath}, nil
}

func buildTranscriptMapping() mapping.IndexMapping {
	indexMapping := bleve.NewIndexMapping()

	docMapping := bleve.NewDocumentMapping()

	// Stored identity fields, not tokenized.
	idField := bleve.NewTextFieldMapping()
	idField.Analyzer = keyword.Name
	idField.Store = true
	idField.Index = true
	docMapping.AddFieldMappingsAt("message_id", idField)

	convField := bleve.NewTextFieldMapping()
	convField.Analyzer = keyword.Name
	convField.Store = true
	convField.Index = true
	docMapping.AddFieldMappingsAt("conversation_id", convField)

	roleField := bleve.NewTextFieldMapping()
	roleField.Analyzer = keyword.Name
	roleField.Store = true
	roleField.Index = true
	docMapping.AddFieldMappingsAt("role", roleField)

	// The searchable body.
	contentField := bleve.NewTextFieldMapping()
	contentField.Analyzer = standard.Name
	contentField.Store = false
	contentField.Index = true
	docMapping.AddFieldMappingsAt("content", contentField)

	indexMapping.DefaultMapping = docMapping
	return indexMapping
}

// IndexMessage adds one message to the index.
func (t *TranscriptIndex) IndexMessage(m Message) error {
	return t.index.Index(m.ID, transcriptDoc(m))
}

// BatchIndex adds many messages in one batch.
func (t *TranscriptIndex) BatchIndex(msgs []Message) error {
	batch := t.index.NewBatch()
	for _, m := range msgs {
		if err := batch.Index(m.ID, transcriptDoc(m)); err != nil {
			return fmt.Errorf("failed to add message %s to batch: %w", m.ID, err)
		}
	}
	return t.index.Batch(batch)
}

func transcriptDoc(m Message) map[string]interface{} {
	return map[string]interface{}{
		"message_id":      m.ID,
		"conversation_id": m.ConversationID,
		"role":            string(m.Role),
		"content":         m.Content,
	}
}

// Search returns the top k hits for query, optionally scoped to one
// conversation (empty conversationID searches everything).
func (t *TranscriptIndex) Search(query, conversationID string, k int) ([]SearchResult, error) {
	match := bleve.NewMatchQuery(query)
	match.SetField("content")

	var searchRequest *bleve.SearchRequest
	if conversationID != "" {
		convQuery := bleve.NewTermQuery(conversationID)
		convQuery.SetField("conversation_id")
		searchRequest = bleve.NewSearchRequest(bleve.NewConjunctionQuery(match, convQuery))
	} else {
		searchRequest = bleve.NewSearchRequest(match)
	}
	searchRequest.Size = k
	searchRequest.Fields = []string{"message_id", "conversation_id", "role"}

	searchResult, err := t.index.Search(searchRequest)
	if err != nil {
		return nil, fmt.Errorf("transcript search failed: %w", err)
	}

	results := make([]SearchResult, 0, len(searchResult.Hits))
	for _, hit := range searchResult.Hits {
		r := SearchResult{MessageID: hit.ID, Score: hit.Score}
		if conv, ok := hit.Fields["conversation_id"].(string); ok {
			r.ConversationID = conv
		}
		if role, ok := hit.Fields["role"].(string); ok {
			r.Role = Role(role)
		}
		results = append(results, r)
	}
	return results, nil
}

// Close closes the index.
func (t *TranscriptIndex) Close() error {
	return t.index.Close()
}
