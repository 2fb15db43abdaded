package domain

// PageRecord is one extracted page. LocalPage is assigned by the extractor
// (1-based within its file); GlobalPage and SourceFile are assigned once by
// the aggregator and never change afterwards.
type PageRecord struct {
	LocalPage  int    `json:"local_page_num"`
	GlobalPage int    `json:"global_page_num"`
	SourceFile string `json:"source_file"`
	Text       string `json:"text"`
	Language   string `json:"language"`
	Method     string `json:"method"`
}

// FileExtraction is the per-file outcome handed to the aggregator, in
// submission order. A failed file carries Err and zero pages.
type FileExtraction struct {
	SourceFile string
	Pages      []PageRecord
	Text       string
	Err        error
}

// AggregateDocument is the merged view of all successfully extracted files
// for a single request. Pages[i] holds global page i+1.
type AggregateDocument struct {
	Pages        []PageRecord `json:"pages"`
	CombinedText string       `json:"combined_text"`
}

// Page returns the record for a global page number, or nil if out of range.
func (d *AggregateDocument) Page(globalPage int) *PageRecord {
	if globalPage < 1 || globalPage > len(d.Pages) {
		return nil
	}
	return &d.Pages[globalPage-1]
}

// Languages returns the global page numbers per detected language.
func (d *AggregateDocument) Languages() map[string][]int {
	out := make(map[string][]int)
	for _, page := range d.Pages {
		out[page.Language] = append(out[page.Language], page.GlobalPage)
	}
	return out
}

// ClassificationResult is one ranked category match. The sequence produced
// by the classifier is ordered by confidence descending.
type ClassificationResult struct {
	Category        string  `json:"category"`
	Confidence      float64 `json:"confidence"`
	DomainRelevance float64 `json:"domain_relevance"`
}

// Insights summarizes a classification result sequence.
type Insights struct {
	PrimaryCategory     string  `json:"primary_category"`
	PrimaryConfidence   float64 `json:"primary_confidence"`
	DomainRelevance     float64 `json:"domain_relevance"`
	HighConfidenceCount int     `json:"high_confidence_count"`
	IsDomainDocument    bool    `json:"is_domain_document"`
	ConfidenceLevel     string  `json:"confidence_level"`
	CategoryCount       int     `json:"category_count"`
}

// Summary is the document-level output of the summarization collaborator.
// Err carries a summarizer failure message; an errored summary is usable
// (empty fields) and never aborts the pipeline.
type Summary struct {
	DocumentType   string            `json:"document_type"`
	OverallSummary string            `json:"overall_summary"`
	KeyInformation map[string]string `json:"key_information"`
	Err            string            `json:"error,omitempty"`
}

// InputFile names one uploaded file to process, in submission order.
type InputFile struct {
	StorageKey   string `json:"path"`
	OriginalName string `json:"original_name"`
}

// ProcessRequest is the inbound pipeline request.
type ProcessRequest struct {
	Files              []InputFile
	OCRLanguage        string
	ClassificationMode string
}

// ProcessedDocument is the full pipeline response for one request.
type ProcessedDocument struct {
	DocumentType   string                 `json:"document_type"`
	OCRText        string                 `json:"ocr_text"`
	Summary        string                 `json:"summary"`
	Classification []ClassificationResult `json:"classification"`
	Insights       *Insights              `json:"insights,omitempty"`
	KeyInformation map[string]string      `json:"key_information"`
	Metadata       ProcessMetadata        `json:"metadata"`
	Error          string                 `json:"error,omitempty"`
}

// ProcessMetadata describes what one request touched.
type ProcessMetadata struct {
	TotalPages         int      `json:"total_pages"`
	TotalCharacters    int      `json:"total_characters"`
	LanguagesDetected  []string `json:"languages_detected"`
	FilesProcessed     int      `json:"files_processed"`
	FilesSkipped       int      `json:"files_skipped"`
	OCRLanguage        string   `json:"ocr_language"`
	ClassificationMode string   `json:"classification_mode"`
}
