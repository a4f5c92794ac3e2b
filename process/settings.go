package process

import (
	"fmt"

	"github.com/jasontconnell/cfexport/conf"
	"github.com/rs/zerolog"
)

// Settings is the validated runtime form of the export settings file.
type Settings struct {
	// ContentClasses limits which content classes are projected. Empty
	// means all.
	ContentClasses map[string]bool
	// LatestOnly restores only the highest version per attachment file.
	LatestOnly bool
	// Flatten writes restored attachments as a single directory of
	// container_id_filename files instead of nested directories.
	Flatten bool

	Logger zerolog.Logger
}

var contentClassNames = map[string]string{
	"page":          "Page",
	"blogpost":      "BlogPost",
	"customcontent": "CustomContentEntityObject",
}

func GetSettings(cfg conf.ExportSettings, logger zerolog.Logger) (Settings, error) {
	s := Settings{
		LatestOnly: cfg.Attachments.LatestOnly,
		Flatten:    cfg.Attachments.Flatten,
		Logger:     logger,
	}

	if len(cfg.ContentTypes) > 0 {
		s.ContentClasses = map[string]bool{}
		for _, name := range cfg.ContentTypes {
			cls, ok := contentClassNames[name]
			if !ok {
				return Settings{}, fmt.Errorf("unknown content type %s", name)
			}
			s.ContentClasses[cls] = true
		}
	}

	return s, nil
}

// includeClass reports whether a content class is in scope for projection.
// Non-content classes are never filtered.
func (s Settings) includeClass(class string) bool {
	if s.ContentClasses == nil {
		return true
	}
	if class == "Blogpost" {
		class = "BlogPost"
	}
	return s.ContentClasses[class]
}
