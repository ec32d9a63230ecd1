package embeddings

import "math"

// CosineSimilarity calculates the cosine similarity between two vectors:
// dot(a,b) / (‖a‖·‖b‖). Returns 0 when either vector has zero magnitude or
// the lengths differ, so callers never divide by zero.
func CosineSimilarity(a, b []float64) float64 {
	if len(a) != len(b) || len(a) == 0 {
		return 0
	}

	normA := Magnitude(a)
	normB := Magnitude(b)
	if normA == 0 || normB == 0 {
		return 0
	}

	dotProduct := 0.0
	for i := range a {
		dotProduct += a[i] * b[i]
	}

	similarity := dotProduct / (normA * normB)

	// Clamp to [-1, 1] to handle floating point errors
	if similarity > 1.0 {
		similarity = 1.0
	} else if similarity < -1.0 {
		similarity = -1.0
	}

	return similarity
}

// Magnitude calculates the magnitude (Euclidean norm) of a vector
func Magnitude(v []float64) float64 {
	sum := 0.0
	for _, val := range v {
		sum += val * val
	}
	return math.Sqrt(sum)
}
