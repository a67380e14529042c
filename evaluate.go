package wordalign

import (
	"fmt"

	"github.com/happyhackingspace/wordalign/corpus"
)

// EvalResult holds alignment quality against a gold standard. Every gold
// link is treated as a sure link.
type EvalResult struct {
	Precision float64
	Recall    float64
	F1        float64
	AER       float64
	Correct   int
	Predicted int
	Gold      int
	Sentences int
}

// Evaluate compares predicted alignments with gold alignments sentence by sentence.
func Evaluate(predicted, gold []corpus.SentenceAlignment) (*EvalResult, error) {
	if len(predicted) != len(gold) {
		return nil, fmt.Errorf("wordalign: %d predicted sentences, %d gold", len(predicted), len(gold))
	}

	result := &EvalResult{Sentences: len(gold)}
	for i := range gold {
		goldSet := make(map[corpus.Link]bool, len(gold[i]))
		for _, l := range gold[i] {
			goldSet[l] = true
		}
		seen := make(map[corpus.Link]bool, len(predicted[i]))
		for _, l := range predicted[i] {
			if seen[l] {
				continue
			}
			seen[l] = true
			if goldSet[l] {
				result.Correct++
			}
		}
		result.Predicted += len(seen)
		result.Gold += len(goldSet)
	}

	if result.Predicted > 0 {
		result.Precision = float64(result.Correct) / float64(result.Predicted)
	}
	if result.Gold > 0 {
		result.Recall = float64(result.Correct) / float64(result.Gold)
	}
	if result.Precision+result.Recall > 0 {
		result.F1 = 2 * result.Precision * result.Recall / (result.Precision + result.Recall)
	}
	if total := result.Predicted + result.Gold; total > 0 {
		result.AER = 1 - 2*float64(result.Correct)/float64(total)
	}
	return result, nil
}
