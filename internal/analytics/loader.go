package analytics

import (
	"context"
	"encoding/json"
	"io"
	"os"
	"strings"

	"github.com/gradekit/gradeboard/pkg/httputil"
	"github.com/gradekit/gradeboard/pkg/logger"
)

// Loader retrieves and parses the analytics document. The source is fixed at
// construction; each Load issues exactly one retrieval and is idempotent.
type Loader struct {
	source string
	client *httputil.Client
	logger *logger.Logger
}

// NewLoader creates a loader for the given source, which may be a local file
// path or an http(s) URL.
func NewLoader(source string, client *httputil.Client, log *logger.Logger) *Loader {
	return &Loader{
		source: source,
		client: client,
		logger: log,
	}
}

// Source returns the configured document location.
func (l *Loader) Source() string {
	return l.source
}

// Load fetches and parses the analytics document. Transport failures surface
// as *LoadError, malformed bodies as *ParseError. No field-level validation
// happens here; see Validate.
func (l *Loader) Load(ctx context.Context) (*AnalyticsDocument, error) {
	body, err := l.Fetch(ctx)
	if err != nil {
		return nil, err
	}

	var doc AnalyticsDocument
	if err := json.Unmarshal(body, &doc); err != nil {
		return nil, &ParseError{Source: l.source, Err: err}
	}

	l.logger.WithFields(map[string]interface{}{
		"source":          l.source,
		"competencies":    doc.CompetencyPerformance.Len(),
		"students":        len(doc.FailingStudents),
		"recommendations": len(doc.ClassRecommendations),
	}).Debug("Analytics document loaded")

	return &doc, nil
}

// Fetch retrieves the raw document bytes without parsing them.
func (l *Loader) Fetch(ctx context.Context) ([]byte, error) {
	if isURL(l.source) {
		return l.fetchHTTP(ctx)
	}
	return l.fetchFile()
}

func (l *Loader) fetchHTTP(ctx context.Context) ([]byte, error) {
	resp, err := l.client.Get(ctx, l.source)
	if err != nil {
		return nil, &LoadError{Source: l.source, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &LoadError{Source: l.source, Status: resp.StatusCode}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &LoadError{Source: l.source, Err: err}
	}

	return body, nil
}

func (l *Loader) fetchFile() ([]byte, error) {
	body, err := os.ReadFile(l.source)
	if err != nil {
		return nil, &LoadError{Source: l.source, Err: err}
	}
	return body, nil
}

func isURL(source string) bool {
	return strings.HasPrefix(source, "http://") || strings.HasPrefix(source, "https://")
}
