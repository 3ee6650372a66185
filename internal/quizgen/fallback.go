package quizgen

// Static question sets served when every provider fails or no credentials
// are configured. They are necessarily generic, not tied to any story, but
// they keep the quiz endpoint from ever failing outright. One set per
// attempt number so a second attempt still sees fresh questions.

var fallbackSets = map[int][]Question{
	1: {
		{
			QuestionText: "What is the best way to understand a story?",
			Options: []Option{
				{Text: "Read it carefully from beginning to end", IsCorrect: true},
				{Text: "Only look at the pictures"},
				{Text: "Read just the last page"},
				{Text: "Skip the parts with lots of words"},
			},
		},
		{
			QuestionText: "Who usually tells us what happens in a story?",
			Options: []Option{
				{Text: "The narrator", IsCorrect: true},
				{Text: "The reader's teacher"},
				{Text: "The book cover"},
				{Text: "The page numbers"},
			},
		},
		{
			QuestionText: "What do we call the people or animals a story is about?",
			Options: []Option{
				{Text: "The characters", IsCorrect: true},
				{Text: "The chapters"},
				{Text: "The titles"},
				{Text: "The bookmarks"},
			},
		},
		{
			QuestionText: "Where can you find the name of a story?",
			Options: []Option{
				{Text: "On the title page", IsCorrect: true},
				{Text: "Hidden in the middle"},
				{Text: "On the very last word"},
				{Text: "Inside the spine"},
			},
		},
		{
			QuestionText: "What should you do if you don't understand a part of the story?",
			Options: []Option{
				{Text: "Read that part again", IsCorrect: true},
				{Text: "Close the book"},
				{Text: "Skip to the end"},
				{Text: "Tear out the page"},
			},
		},
		{
			QuestionText: "What do we call the place where a story happens?",
			Options: []Option{
				{Text: "The setting", IsCorrect: true},
				{Text: "The seating"},
				{Text: "The sitting"},
				{Text: "The sending"},
			},
		},
	},
	2: {
		{
			QuestionText: "What is the lesson of a story often called?",
			Options: []Option{
				{Text: "The moral", IsCorrect: true},
				{Text: "The mural"},
				{Text: "The model"},
				{Text: "The medal"},
			},
		},
		{
			QuestionText: "What do we call the main problem the characters must solve?",
			Options: []Option{
				{Text: "The conflict", IsCorrect: true},
				{Text: "The confetti"},
				{Text: "The contract"},
				{Text: "The concert"},
			},
		},
		{
			QuestionText: "When does the most exciting part of a story usually happen?",
			Options: []Option{
				{Text: "Near the end", IsCorrect: true},
				{Text: "Before the story starts"},
				{Text: "On the copyright page"},
				{Text: "It never happens"},
			},
		},
		{
			QuestionText: "What is the person who writes a story called?",
			Options: []Option{
				{Text: "The author", IsCorrect: true},
				{Text: "The actor"},
				{Text: "The anchor"},
				{Text: "The announcer"},
			},
		},
		{
			QuestionText: "What is the person who draws the pictures in a book called?",
			Options: []Option{
				{Text: "The illustrator", IsCorrect: true},
				{Text: "The instructor"},
				{Text: "The inspector"},
				{Text: "The inventor"},
			},
		},
		{
			QuestionText: "What should you do when you finish a story you enjoyed?",
			Options: []Option{
				{Text: "Think about what happened and why", IsCorrect: true},
				{Text: "Forget it right away"},
				{Text: "Never read another book"},
				{Text: "Hide the book"},
			},
		},
	},
}

// FallbackQuestions returns a copy of the static set for the attempt
// number. Unknown attempt numbers get the first set.
func FallbackQuestions(attempt int) []Question {
	set, ok := fallbackSets[attempt]
	if !ok {
		set = fallbackSets[1]
	}
	out := make([]Question, len(set))
	copy(out, set)
	return out
}
