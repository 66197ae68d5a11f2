package api

import (
	"errors"
	"strings"

	"github.com/cyralabs/cyra/internal/models"
)

var (
	errInvalidID = errors.New("invalid id")
)

type eventPayload struct {
	Date      string         `json:"date"`
	Type      string         `json:"type"`
	Flow      string         `json:"flow"`
	SubScores map[string]int `json:"sub_scores"`
}

type entryPayload struct {
	Date   string         `json:"date"`
	Scores map[string]int `json:"scores"`
	Flags  []string       `json:"flags"`
	Notes  string         `json:"notes"`
}

type factorPayload struct {
	Date  string  `json:"date"`
	Kind  string  `json:"kind"`
	Name  string  `json:"name"`
	Value float64 `json:"value"`
}

// validateEventPayload rejects structurally invalid records at the boundary;
// the analysis core itself never sees malformed input.
func validateEventPayload(payload eventPayload) error {
	if !models.KnownEventType(payload.Type) {
		return errors.New("unknown event type")
	}
	if !models.KnownFlowIntensity(payload.Flow) {
		return errors.New("unknown flow intensity")
	}
	for _, score := range payload.SubScores {
		if score < 0 || score > models.MaxSeverity {
			return errors.New("sub-score out of range")
		}
	}
	return nil
}

func validateEntryPayload(payload entryPayload) error {
	for name, score := range payload.Scores {
		if strings.TrimSpace(name) == "" {
			return errors.New("empty score name")
		}
		if score < 0 || score > models.MaxSeverity {
			return errors.New("score out of range")
		}
	}
	for _, flag := range payload.Flags {
		if strings.TrimSpace(flag) == "" {
			return errors.New("empty flag")
		}
	}
	return nil
}

func validateFactorPayload(payload factorPayload) error {
	if !models.KnownFactorKind(payload.Kind) {
		return errors.New("unknown factor kind")
	}
	if strings.TrimSpace(payload.Name) == "" {
		return errors.New("empty factor name")
	}
	if payload.Value < 0 {
		return errors.New("negative factor value")
	}
	return nil
}
