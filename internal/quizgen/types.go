package quizgen

// Question counts and option shape are fixed by the product: a full quiz is
// 6 questions, the latency-optimized path serves 1 question up front and
// the remaining 5 in a second call. Every question carries 4 options with
// exactly one correct.
const (
	FullQuestionCount      = 6
	FirstQuestionCount     = 1
	RemainingQuestionCount = FullQuestionCount - FirstQuestionCount

	OptionCount = 4
)

// Option is one answer choice for a question.
type Option struct {
	Text      string `json:"text"`
	IsCorrect bool   `json:"isCorrect"`
}

// Question is a single multiple-choice comprehension question.
type Question struct {
	QuestionText string   `json:"questionText"`
	Options      []Option `json:"options"`
}

// CorrectIndex returns the index of the option flagged correct, or -1.
func (q Question) CorrectIndex() int {
	for i, o := range q.Options {
		if o.IsCorrect {
			return i
		}
	}
	return -1
}

// AgeGroup is one of the three fixed reading-level buckets.
type AgeGroup string

const (
	Group3to5  AgeGroup = "3-5"
	Group6to8  AgeGroup = "6-8"
	Group9to12 AgeGroup = "9-12"

	// DefaultGroup is where out-of-range ages land for storage purposes.
	// The prompt builder still uses generic wording for them.
	DefaultGroup = Group6to8
)

// AgeGroups lists all buckets in ascending order.
var AgeGroups = []AgeGroup{Group3to5, Group6to8, Group9to12}

// BucketAge maps a raw age onto its group. The second return value is
// false when the age falls outside every bucket (zero, negative, or under
// 3); such ages are stored under DefaultGroup but prompted generically.
// Ages above 12 read well enough for the top bucket.
func BucketAge(age int) (AgeGroup, bool) {
	switch {
	case age >= 3 && age <= 5:
		return Group3to5, true
	case age >= 6 && age <= 8:
		return Group6to8, true
	case age >= 9 && age <= 12:
		return Group9to12, true
	case age > 12:
		return Group9to12, true
	default:
		return DefaultGroup, false
	}
}

// ValidAttempt reports whether n is a usable attempt number. Users get two
// attempts per book.
func ValidAttempt(n int) bool {
	return n == 1 || n == 2
}

// MaxAttempts is the per-user attempt cap per book.
const MaxAttempts = 2

// CoinsPerCorrectAnswer is the fixed reward per correct answer.
const CoinsPerCorrectAnswer = 10
