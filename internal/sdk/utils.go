package sdk

import (
	"github.com/compresr/optiflow/internal/astparse"
	"github.com/compresr/optiflow/internal/detect"
	"github.com/compresr/optiflow/internal/model"
	"github.com/compresr/optiflow/internal/tokencount"
)

// Utils is the `utils` bridge surface.
type Utils struct{}

func (Utils) CountTokens(s string) int { return tokencount.Count(s) }

func (Utils) DetectType(content, path string) detect.Type { return detect.Detect(content, path) }

func (Utils) DetectLanguage(path string) model.Language { return astparse.LanguageFromPath(path) }
