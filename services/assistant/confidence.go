// File: services/assistant/confidence.go
package assistant

// scoreConfidence derives a heuristic confidence for a drafted reply from
// observable turn facts: each completed tool round adds evidence, retrieval
// hits add a little, loop exhaustion floors the score.
func scoreConfidence(successfulRounds int, retrievalHits bool, exhausted bool) float64 {
	if exhausted {
		return 0.0
	}
	score := 0.5 + 0.1*float64(successfulRounds)
	if retrievalHits {
		score += 0.05
	}
	if score < 0 {
		return 0
	}
	if score > 0.95 {
		return 0.95
	}
	return score
}
