package services

import (
	"regexp"

	"catalina-keeper/internal/models"
)

// ClassifierRule maps a log pattern to a diagnosis label
type ClassifierRule struct {
	Pattern *regexp.Regexp
	Label   models.Diagnosis
}

// DefaultRules 按优先级排列，先匹配者胜出，顺序不可调整
var DefaultRules = []ClassifierRule{
	{regexp.MustCompile(`(?i)Address already in use|BindException`), models.DiagnosisPortConflict},
	{regexp.MustCompile(`(?i)UnsupportedClassVersionError`), models.DiagnosisJavaVersionMismatch},
	{regexp.MustCompile(`(?i)OutOfMemoryError`), models.DiagnosisOutOfMemory},
	{regexp.MustCompile(`(?i)NoClassDefFoundError|ClassNotFoundException`), models.DiagnosisMissingClasses},
	{regexp.MustCompile(`(?i)Permission denied|Access is denied`), models.DiagnosisPermissionDenied},
}

// Classify returns the label of the first of DefaultRules matching the text, or unknown
func Classify(logText string) models.Diagnosis {
	return ClassifyWith(DefaultRules, logText)
}

func ClassifyWith(rules []ClassifierRule, logText string) models.Diagnosis {
	for _, rule := range rules {
		if rule.Pattern.MatchString(logText) {
			return rule.Label
		}
	}
	return models.DiagnosisUnknown
}
