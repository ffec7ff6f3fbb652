package session

var congratulations = []string{
	"That is correct!",
	"Correct!",
	"Well done!",
	"This is proof of your genius",
}

var commiserations = []string{
	"Too bad!",
	"Too difficult?",
	"Oofie-doodle",
	"You didn't get that one",
}

// Congratulation returns a random phrase for a correct answer
func (s *Session) Congratulation() string {
	return congratulations[s.rng.Intn(len(congratulations))]
}

// Commiseration returns a random phrase for a missed word
func (s *Session) Commiseration() string {
	return commiserations[s.rng.Intn(len(commiserations))]
}
