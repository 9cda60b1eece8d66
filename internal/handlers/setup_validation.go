package handlers

import "strings"

var allowedGenders = map[string]struct{}{
	"male":   {},
	"female": {},
	"other":  {},
}

var allowedFrequencies = map[string]struct{}{
	"none":     {},
	"light":    {},
	"moderate": {},
	"heavy":    {},
}

var allowedGoals = map[string]struct{}{
	"maintain": {},
	"cut":      {},
	"bulk":     {},
}

func validateCompleteSetupRequest(req completeSetupRequest) string {
	if req.WeightKG <= 0 {
		return "weight_kg must be greater than 0"
	}
	if req.HeightCM <= 0 {
		return "height_cm must be greater than 0"
	}
	if strings.TrimSpace(req.BirthDate) == "" {
		return "birth_date is required"
	}
	if _, ok := allowedGenders[strings.TrimSpace(req.Gender)]; !ok {
		return "gender must be one of: male, female, other"
	}
	if _, ok := allowedFrequencies[strings.TrimSpace(req.Frequency)]; !ok {
		return "frequency must be one of: none, light, moderate, heavy"
	}
	if _, ok := allowedGoals[strings.TrimSpace(req.Goal)]; !ok {
		return "goal must be one of: maintain, cut, bulk"
	}
	return ""
}
