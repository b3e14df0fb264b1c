package fitness

import (
	"fmt"

	"github.com/google/uuid"
)

// SimpleFitness. single scalar score, higher is better
type SimpleFitness struct {
	Value float64
}

/*
Individual. one candidate of the evolutionary search. Fitness is the container the evaluator
writes into; an individual without one cannot be scored. once Evaluated is set the fitness is
final and later evaluations leave it unchanged.
*/
type Individual struct {
	ID         uuid.UUID
	Generation int
	Genome     Genome
	Fitness    *SimpleFitness
	Evaluated  bool
}

func NewIndividual(genome Genome, generation int) *Individual {
	return &Individual{
		ID:         uuid.New(),
		Generation: generation,
		Genome:     genome,
		Fitness:    &SimpleFitness{},
	}
}

func (ind *Individual) String() string {
	if !ind.Evaluated || ind.Fitness == nil {
		return fmt.Sprintf("Individual %s (gen %d, %d genes): not evaluated", ind.ID, ind.Generation, len(ind.Genome))
	}
	return fmt.Sprintf("Individual %s (gen %d, %d genes): fitness=%g", ind.ID, ind.Generation,
		len(ind.Genome), ind.Fitness.Value)
}
