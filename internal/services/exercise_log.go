package services

import "github.com/Guotai812/FitTrack-Back/internal/models"

// Log entries are addressed by log id, never by slice position: positions
// shift when earlier entries are deleted.

func findAerobicEntry(entries []models.AerobicLogEntry, logID string) *models.AerobicLogEntry {
	for i := range entries {
		if entries[i].LogID == logID {
			return &entries[i]
		}
	}
	return nil
}

func findAnaerobicEntry(entries []models.AnaerobicLogEntry, logID string) *models.AnaerobicLogEntry {
	for i := range entries {
		if entries[i].LogID == logID {
			return &entries[i]
		}
	}
	return nil
}

func removeAerobicEntry(entries []models.AerobicLogEntry, logID string) ([]models.AerobicLogEntry, bool) {
	for i := range entries {
		if entries[i].LogID == logID {
			return append(entries[:i], entries[i+1:]...), true
		}
	}
	return entries, false
}

func removeAnaerobicEntry(entries []models.AnaerobicLogEntry, logID string) ([]models.AnaerobicLogEntry, bool) {
	for i := range entries {
		if entries[i].LogID == logID {
			return append(entries[:i], entries[i+1:]...), true
		}
	}
	return entries, false
}
