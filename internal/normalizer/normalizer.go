package normalizer

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/desertthunder/tidalfest/internal/models"
)

// Strategy is one named way of unwrapping the backend envelope.
type Strategy struct {
	Name   string
	Unwrap func(root map[string]any) (map[string]any, bool)
}

var tierKeys = []string{"headliners", "specialGuests", "undercard", "tinyLetters", "days"}

var strategies = []Strategy{
	{Name: "data.festivalLineup", Unwrap: func(root map[string]any) (map[string]any, bool) {
		data, ok := object(root, "data")
		if !ok {
			return nil, false
		}
		return object(data, "festivalLineup")
	}},
	{Name: "data", Unwrap: func(root map[string]any) (map[string]any, bool) {
		return object(root, "data")
	}},
	{Name: "festivalLineup", Unwrap: func(root map[string]any) (map[string]any, bool) {
		return object(root, "festivalLineup")
	}},
	{Name: "bare", Unwrap: func(root map[string]any) (map[string]any, bool) {
		return root, true
	}},
}

// Strategies returns the unwrap strategies in the order they are tried.
func Strategies() []Strategy {
	return append([]Strategy(nil), strategies...)
}

// Normalize converts raw into the canonical lineup.
func Normalize(raw any) (*models.Result, error) {
	result, _, err := NormalizeWith(raw)
	return result, err
}

// NormalizeWith is [Normalize] but also reports which strategy matched.
func NormalizeWith(raw any) (*models.Result, string, error) {
	root, ok := raw.(map[string]any)
	if !ok {
		return nil, "", &SchemaError{Reason: ReasonUnrecognized, Raw: raw}
	}
	if err := reportedFailure(root, raw); err != nil {
		return nil, "", err
	}

	for _, s := range strategies {
		inner, ok := s.Unwrap(root)
		if !ok {
			continue
		}
		if err := reportedFailure(inner, raw); err != nil {
			return nil, s.Name, err
		}
		if !recognized(inner) {
			continue
		}

		result, err := convert(inner)
		if err != nil {
			return nil, s.Name, &SchemaError{Reason: err.Error(), Raw: raw}
		}
		return result, s.Name, nil
	}
	return nil, "", &SchemaError{Reason: ReasonUnrecognized, Raw: raw}
}

// Recognized reports whether any strategy would accept raw.
func Recognized(raw any) bool {
	root, ok := raw.(map[string]any)
	if !ok {
		return false
	}
	for _, s := range strategies {
		if inner, ok := s.Unwrap(root); ok && recognized(inner) {
			return true
		}
	}
	return false
}

func object(m map[string]any, key string) (map[string]any, bool) {
	v, ok := m[key].(map[string]any)
	return v, ok
}

func recognized(m map[string]any) bool {
	for _, k := range tierKeys {
		if v, ok := m[k]; ok && v != nil {
			return true
		}
	}
	return false
}

func reportedFailure(m map[string]any, raw any) error {
	success, ok := m["success"].(bool)
	if !ok || success {
		return nil
	}
	reason, _ := m["error"].(string)
	if reason == "" {
		reason, _ = m["message"].(string)
	}
	return &SchemaError{Reason: reason, BackendReported: true, Raw: raw}
}

type payload struct {
	Headliners    []models.Artist  `json:"headliners"`
	SpecialGuests []models.Artist  `json:"specialGuests"`
	Undercard     []models.Artist  `json:"undercard"`
	TinyLetters   []models.Artist  `json:"tinyLetters"`
	Days          []models.Day     `json:"days"`
	Metadata      *models.Metadata `json:"metadata"`
}

func convert(inner map[string]any) (*models.Result, error) {
	b, err := json.Marshal(inner)
	if err != nil {
		return nil, fmt.Errorf("malformed lineup: %w", err)
	}

	var p payload
	if err := json.Unmarshal(b, &p); err != nil {
		return nil, fmt.Errorf("malformed lineup: %w", err)
	}

	result := &models.Result{Metadata: p.Metadata}
	if v, ok := inner["days"]; ok && v != nil {
		result.Partitioned = true
		result.Days = p.Days
		for i := range result.Days {
			if result.Days[i].DayNumber == 0 {
				result.Days[i].DayNumber = i + 1
			}
		}
	} else {
		result.Days = []models.Day{{
			DayNumber:     1,
			Headliners:    p.Headliners,
			SpecialGuests: p.SpecialGuests,
			Undercard:     p.Undercard,
			TinyLetters:   p.TinyLetters,
		}}
	}

	for _, d := range result.Days {
		for _, tier := range models.Tiers {
			for i, a := range d.Artists(tier) {
				if strings.TrimSpace(a.Name) == "" {
					return nil, fmt.Errorf("day %d %s[%d] has no name", d.DayNumber, tier, i)
				}
			}
		}
	}
	return result, nil
}
