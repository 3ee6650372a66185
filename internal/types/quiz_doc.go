package types

import (
	"encoding/json"
	"fmt"
	"sort"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	"github.com/storynest/quiz-service/internal/quizgen"
)

// The methods below implement the quiz document semantics over the JSON
// columns: keyed lookup of question sets by (ageGroup, attemptNumber) with
// replace-on-write, and an append-only attempt history. Writers re-save
// the whole document; concurrent writers are last-write-wins.

// Buckets decodes the age-grouped question sets. An empty column decodes
// to an empty slice.
func (q *Quiz) Buckets() ([]AgeGroupBucket, error) {
	if len(q.AgeGroupedQuestions) == 0 {
		return nil, nil
	}
	var buckets []AgeGroupBucket
	if err := json.Unmarshal(q.AgeGroupedQuestions, &buckets); err != nil {
		return nil, fmt.Errorf("decode age_grouped_questions: %w", err)
	}
	return buckets, nil
}

func (q *Quiz) setBuckets(buckets []AgeGroupBucket) error {
	raw, err := json.Marshal(buckets)
	if err != nil {
		return fmt.Errorf("encode age_grouped_questions: %w", err)
	}
	q.AgeGroupedQuestions = datatypes.JSON(raw)
	return nil
}

// QuestionsForAge returns the cached set for (group, attempt), or false
// on a cache miss.
func (q *Quiz) QuestionsForAge(group quizgen.AgeGroup, attempt int) ([]quizgen.Question, bool, error) {
	buckets, err := q.Buckets()
	if err != nil {
		return nil, false, err
	}
	for _, b := range buckets {
		if b.AgeGroup != group {
			continue
		}
		for _, a := range b.Attempts {
			if a.AttemptNumber == attempt {
				return a.Questions, true, nil
			}
		}
	}
	return nil, false, nil
}

// SetQuestionsForAge upserts the question set for (group, attempt),
// replacing any prior entry for that exact pair.
func (q *Quiz) SetQuestionsForAge(group quizgen.AgeGroup, attempt int, questions []quizgen.Question) error {
	buckets, err := q.Buckets()
	if err != nil {
		return err
	}

	entry := AttemptQuestions{AttemptNumber: attempt, Questions: questions}

	placed := false
	for bi := range buckets {
		if buckets[bi].AgeGroup != group {
			continue
		}
		replaced := false
		for ai := range buckets[bi].Attempts {
			if buckets[bi].Attempts[ai].AttemptNumber == attempt {
				buckets[bi].Attempts[ai] = entry
				replaced = true
				break
			}
		}
		if !replaced {
			buckets[bi].Attempts = append(buckets[bi].Attempts, entry)
		}
		placed = true
		break
	}
	if !placed {
		buckets = append(buckets, AgeGroupBucket{
			AgeGroup: group,
			Attempts: []AttemptQuestions{entry},
		})
	}

	return q.setBuckets(buckets)
}

// AgeGroupSummary lists which attempt numbers are cached for a group.
type AgeGroupSummary struct {
	AgeGroup       quizgen.AgeGroup `json:"ageGroup"`
	AttemptNumbers []int            `json:"attemptNumbers"`
}

// CachedAgeGroups summarizes which buckets have content, in bucket order.
func (q *Quiz) CachedAgeGroups() ([]AgeGroupSummary, error) {
	buckets, err := q.Buckets()
	if err != nil {
		return nil, err
	}

	var out []AgeGroupSummary
	for _, group := range quizgen.AgeGroups {
		for _, b := range buckets {
			if b.AgeGroup != group || len(b.Attempts) == 0 {
				continue
			}
			nums := make([]int, 0, len(b.Attempts))
			for _, a := range b.Attempts {
				nums = append(nums, a.AttemptNumber)
			}
			sort.Ints(nums)
			out = append(out, AgeGroupSummary{AgeGroup: group, AttemptNumbers: nums})
		}
	}
	return out, nil
}

// AttemptRecords decodes the append-only submission history.
func (q *Quiz) AttemptRecords() ([]QuizAttempt, error) {
	if len(q.Attempts) == 0 {
		return nil, nil
	}
	var attempts []QuizAttempt
	if err := json.Unmarshal(q.Attempts, &attempts); err != nil {
		return nil, fmt.Errorf("decode attempts: %w", err)
	}
	return attempts, nil
}

// AppendAttempt adds one submission record.
func (q *Quiz) AppendAttempt(rec QuizAttempt) error {
	attempts, err := q.AttemptRecords()
	if err != nil {
		return err
	}
	attempts = append(attempts, rec)

	raw, err := json.Marshal(attempts)
	if err != nil {
		return fmt.Errorf("encode attempts: %w", err)
	}
	q.Attempts = datatypes.JSON(raw)
	return nil
}

// UserAttemptCount derives how many times a user has submitted this quiz.
func (q *Quiz) UserAttemptCount(userID uuid.UUID) (int, error) {
	attempts, err := q.AttemptRecords()
	if err != nil {
		return 0, err
	}
	count := 0
	for _, a := range attempts {
		if a.UserID == userID {
			count++
		}
	}
	return count, nil
}
