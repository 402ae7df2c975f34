package deck

import "fmt"

// Question is one communist test question.
type Question struct {
	ID      string
	Prompt  string
	Answers []string
	// Correct is the index of the right answer.
	Correct int
}

// IsCorrect reports whether answer is the right choice.
func (q Question) IsCorrect(answer int) bool {
	return answer == q.Correct
}

var questions = []Question{
	{ID: "revolution-year", Prompt: "In which year did the October Revolution take place?", Answers: []string{"1905", "1917", "1924"}, Correct: 1},
	{ID: "manifesto-authors", Prompt: "Who wrote the Communist Manifesto?", Answers: []string{"Marx and Engels", "Lenin and Trotsky", "Stalin and Beria"}, Correct: 0},
	{ID: "five-year-plan", Prompt: "How long is a Five-Year Plan?", Answers: []string{"Four years, if the workers are enthusiastic", "Five years", "As long as Comrade Stalin says"}, Correct: 2},
	{ID: "kolkhoz", Prompt: "What is a kolkhoz?", Answers: []string{"A collective farm", "A secret police office", "A type of soup"}, Correct: 0},
	{ID: "pravda-meaning", Prompt: "What does \"Pravda\" mean?", Answers: []string{"Victory", "Truth", "Bread"}, Correct: 1},
	{ID: "best-leader", Prompt: "Who is the greatest leader in history?", Answers: []string{"Comrade Stalin", "Comrade Trotsky", "It is a matter of opinion"}, Correct: 0},
	{ID: "capital", Prompt: "Which city is the capital of the Soviet Union?", Answers: []string{"Leningrad", "Moscow", "Kiev"}, Correct: 1},
	{ID: "private-property", Prompt: "What is the correct attitude to private property?", Answers: []string{"It should be abolished", "It should be taxed", "Mine is fine"}, Correct: 0},
	{ID: "neighbour-report", Prompt: "Your neighbour owns two cows. What do you do?", Answers: []string{"Congratulate him", "Report him", "Buy one"}, Correct: 1},
	{ID: "internationale", Prompt: "What is the anthem of the international workers' movement?", Answers: []string{"The Internationale", "Kalinka", "The Volga Boatmen"}, Correct: 0},
}

var questionIndex = func() map[string]Question {
	out := make(map[string]Question, len(questions))
	for _, q := range questions {
		out[q.ID] = q
	}
	return out
}()

// QuestionIDs returns the ids of every communist test question.
func QuestionIDs() []string {
	ids := make([]string, len(questions))
	for i, q := range questions {
		ids[i] = q.ID
	}
	return ids
}

// LookupQuestion returns the question with id.
func LookupQuestion(id string) (Question, error) {
	q, ok := questionIndex[id]
	if !ok {
		return Question{}, fmt.Errorf("unknown question %q", id)
	}
	return q, nil
}
