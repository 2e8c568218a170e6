package scoring

import "errors"

// Error taxonomy for candidate scoring. All of these are candidate-local:
// the ranking orchestrator records them per candidate and keeps going.
var (
	// ErrInvalidConfidence is returned when a raw confidence value falls
	// outside [0,1]. Values are rejected, never clamped.
	ErrInvalidConfidence = errors.New("confidence outside [0,1]")

	// ErrCountMismatch is returned when the per-category counts of a block
	// are negative or do not sum to the block total.
	ErrCountMismatch = errors.New("category counts inconsistent with block total")

	// ErrUndefinedBlock is returned when an empty block (N == 0) reaches the
	// coverage scorer directly. Empty blocks must be excluded by weight
	// redistribution before scoring.
	ErrUndefinedBlock = errors.New("block has no criteria")

	// ErrAllBlocksUndefined marks a candidate with no criteria in any block.
	// Such a candidate is unscoreable, which is distinct from scoring zero.
	ErrAllBlocksUndefined = errors.New("candidate has no criteria in any block")

	// ErrInvalidMean is returned when a mean percentage falls outside [0,100].
	ErrInvalidMean = errors.New("mean percentage outside [0,100]")
)
