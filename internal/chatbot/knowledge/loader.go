// internal/chatbot/knowledge/loader.go
package knowledge

import (
	_ "embed"
	"fmt"
	"os"

	"gear9-chatbot/internal/common/validation"
)

//go:embed data.json
var bundled []byte

// BundledSource names the embedded copy in KnowledgeBase.Source.
const BundledSource = "bundled:data.json"

var schema = validation.MustValidator(validation.KnowledgeBaseSchema)

type Logger interface {
	Info(msg string, fields map[string]interface{})
	Warn(msg string, fields map[string]interface{})
}

// Load tries every path in order, then the bundled copy unless skipBundled
// is set. Failures are logged and the next candidate is tried. When
// nothing loads the result is an empty, unavailable knowledge base.
func Load(paths []string, skipBundled bool, log Logger) *KnowledgeBase {
	for _, path := range paths {
		if path == "" {
			continue
		}
		kb, err := LoadFile(path)
		if err != nil {
			if os.IsNotExist(err) {
				log.Info("Knowledge base file not found", map[string]interface{}{"path": path})
			} else {
				log.Warn("Knowledge base file rejected", map[string]interface{}{"path": path, "error": err.Error()})
			}
			continue
		}
		logLoaded(log, kb)
		return kb
	}

	if !skipBundled {
		kb, err := LoadBytes(bundled, BundledSource)
		if err == nil {
			logLoaded(log, kb)
			return kb
		}
		log.Warn("Bundled knowledge base rejected", map[string]interface{}{"error": err.Error()})
	}

	log.Warn("No knowledge base loaded, deterministic answers disabled", nil)
	return Empty()
}

// LoadFile reads and validates one file. Errors from os.ReadFile are
// returned unwrapped so callers can test os.IsNotExist.
func LoadFile(path string) (*KnowledgeBase, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return LoadBytes(b, path)
}

// LoadBytes validates b against the knowledge base schema and decodes it.
func LoadBytes(b []byte, source string) (*KnowledgeBase, error) {
	res, err := schema.ValidateBytes(b)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", source, err)
	}
	if !res.Valid {
		return nil, fmt.Errorf("%s: schema validation failed: %s", source, res.Summary())
	}
	kb, err := Parse(b)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", source, err)
	}
	kb.Source = source
	return kb, nil
}

// Bundled returns the embedded data.json bytes.
func Bundled() []byte {
	return bundled
}

func logLoaded(log Logger, kb *KnowledgeBase) {
	log.Info("Knowledge base loaded", map[string]interface{}{
		"source":   kb.Source,
		"services": len(kb.Services),
		"projects": len(kb.Projects),
		"awards":   len(kb.Awards),
		"subjects": len(kb.Subjects),
	})
}
