package negotiate

// Difficulty selects the counterparty persona.
type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
)

func (d Difficulty) Valid() bool {
	switch d {
	case DifficultyEasy, DifficultyMedium, DifficultyHard:
		return true
	}
	return false
}

var personas = map[Difficulty]string{
	DifficultyEasy: "You are a cooperative client representative. You want to keep " +
		"this freelancer and are open to reasonable changes, though you still " +
		"defend the company's interests.",
	DifficultyMedium: "You are a skeptical but professional client representative. " +
		"You push back on requested changes, ask for justification, and concede " +
		"only when the freelancer makes a solid argument.",
	DifficultyHard: "You are an adversarial client representative under time " +
		"pressure. You dismiss concerns as standard practice, remind the " +
		"freelancer that other candidates are waiting, and concede only " +
		"grudgingly and partially.",
}

func persona(d Difficulty) string {
	if p, ok := personas[d]; ok {
		return p
	}
	return personas[DifficultyMedium]
}
