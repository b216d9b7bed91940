package validation

import (
	"encoding/json"
	"errors"
	"strings"

	"github.com/onchainreach/creator-hub/internal/models"
	"github.com/sirupsen/logrus"
)

var errInvalidFormat = errors.New("content inspector response is not a JSON object")

// inspectorResponse is the decoded shape of a validate-tweet reply. Every
// field is optional on the wire.
type inspectorResponse struct {
	Passed       *bool
	Errors       []string
	Requirements map[string]inspectorCategory
}

type inspectorCategory struct {
	Passed  bool
	Missing []string
}

type requestCategory struct {
	name     string
	required []string
}

// decodeInspectorResponse reads body once into the optional schema. Only a
// body that is not a JSON object is an error; malformed fields inside an
// object are dropped and later treated as silence.
func decodeInspectorResponse(body []byte) (inspectorResponse, error) {
	var top map[string]json.RawMessage
	if err := json.Unmarshal(body, &top); err != nil || top == nil {
		return inspectorResponse{}, errInvalidFormat
	}

	var resp inspectorResponse

	if raw, ok := top["passed"]; ok {
		var passed bool
		if err := json.Unmarshal(raw, &passed); err == nil {
			resp.Passed = &passed
		}
	}

	if raw, ok := top["errors"]; ok {
		if err := json.Unmarshal(raw, &resp.Errors); err != nil {
			logrus.Debugf("Ignoring non-array errors field in inspector response: %s", string(raw))
			resp.Errors = nil
		}
	}

	if raw, ok := top["requirements"]; ok {
		var categories map[string]json.RawMessage
		if err := json.Unmarshal(raw, &categories); err != nil {
			logrus.Debugf("Ignoring non-object requirements field in inspector response: %s", string(raw))
		}

		resp.Requirements = make(map[string]inspectorCategory, len(categories))
		for name, rawCategory := range categories {
			category, ok := decodeCategory(rawCategory)
			if !ok {
				logrus.Debugf("Ignoring malformed %s category in inspector response", name)
				continue
			}
			resp.Requirements[name] = category
		}
	}

	return resp, nil
}

func decodeCategory(raw json.RawMessage) (inspectorCategory, bool) {
	var fields struct {
		Passed  *bool           `json:"passed"`
		Missing json.RawMessage `json:"missing"`
	}
	if err := json.Unmarshal(raw, &fields); err != nil {
		return inspectorCategory{}, false
	}

	var category inspectorCategory
	if fields.Passed != nil {
		category.Passed = *fields.Passed
	}
	if len(fields.Missing) > 0 {
		if err := json.Unmarshal(fields.Missing, &category.Missing); err != nil {
			// An unreadable missing list cannot vouch for a pass.
			logrus.Debugf("Treating category with malformed missing list as failed: %v", err)
			return inspectorCategory{}, true
		}
	}
	return category, true
}

// requestedCategories lists the categories the caller asked about. URLs is
// only included when the caller supplied a list for it.
func requestedCategories(reqs models.RequirementSet) []requestCategory {
	categories := []requestCategory{
		{name: models.CategoryHashtags, required: cleanList(reqs.Hashtags)},
		{name: models.CategoryMentions, required: cleanList(reqs.Mentions)},
		{name: models.CategoryTopics, required: cleanList(reqs.Topics)},
	}
	if reqs.URLs != nil {
		categories = append(categories, requestCategory{name: models.CategoryURLs, required: cleanList(reqs.URLs)})
	}
	return categories
}

// nothingRequired reports whether every category is empty once blanks are dropped
func nothingRequired(reqs models.RequirementSet) bool {
	for _, category := range requestedCategories(reqs) {
		if len(category.required) > 0 {
			return false
		}
	}
	return true
}

// normalize reshapes a decoded inspector reply into the canonical result.
// Silence about a non-empty category counts as failure.
func normalize(reqs models.RequirementSet, resp inspectorResponse) models.ValidationResult {
	result := models.ValidationResult{
		Success:      true,
		Passed:       true,
		Errors:       []string{},
		Requirements: make(map[string]models.ValidationRequirement),
	}
	if len(resp.Errors) > 0 {
		result.Errors = append(result.Errors, resp.Errors...)
	}

	for _, category := range requestedCategories(reqs) {
		outcome := normalizeCategory(category.required, resp.Requirements, category.name)
		result.Requirements[category.name] = outcome
		if !outcome.Passed {
			result.Passed = false
		}
	}

	return result
}

func normalizeCategory(required []string, reported map[string]inspectorCategory, name string) models.ValidationRequirement {
	if len(required) == 0 {
		return models.ValidationRequirement{Passed: true, Required: []string{}, Missing: []string{}}
	}

	category, ok := reported[name]
	if !ok {
		return models.ValidationRequirement{Passed: false, Required: required, Missing: append([]string{}, required...)}
	}

	missing := cleanList(category.Missing)
	if !category.Passed && len(missing) == 0 {
		missing = append(missing, required...)
	}

	return models.ValidationRequirement{
		Passed:   category.Passed && len(missing) == 0,
		Required: required,
		Missing:  missing,
	}
}

// passedResult is the outcome for a requirement set with nothing required
func passedResult(reqs models.RequirementSet) models.ValidationResult {
	return normalize(reqs, inspectorResponse{})
}

func failedResult(message string) models.ValidationResult {
	return models.ValidationResult{
		Success: false,
		Passed:  false,
		Errors:  []string{message},
	}
}

// cleanList trims entries and drops blanks and duplicates, keeping order
func cleanList(values []string) []string {
	out := make([]string, 0, len(values))
	seen := make(map[string]bool, len(values))
	for _, v := range values {
		v = strings.TrimSpace(v)
		if v == "" || seen[v] {
			continue
		}
		seen[v] = true
		out = append(out, v)
	}
	return out
}
