package enums

import "fmt"

// LifeStage targets pet products at an animal's age bracket.
type LifeStage string

const (
	LifeStagePuppy  LifeStage = "puppy"
	LifeStageAdult  LifeStage = "adult"
	LifeStageSenior LifeStage = "senior"
	LifeStageAll    LifeStage = "all"
)

var validLifeStages = []LifeStage{
	LifeStagePuppy,
	LifeStageAdult,
	LifeStageSenior,
	LifeStageAll,
}

// String implements fmt.Stringer.
func (l LifeStage) String() string {
	return string(l)
}

// IsValid reports whether the value is a known LifeStage.
func (l LifeStage) IsValid() bool {
	for _, candidate := range validLifeStages {
		if candidate == l {
			return true
		}
	}
	return false
}

// ParseLifeStage converts raw input into a LifeStage.
func ParseLifeStage(value string) (LifeStage, error) {
	for _, candidate := range validLifeStages {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid life stage %q", value)
}
