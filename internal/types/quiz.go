package types

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/storynest/quiz-service/internal/quizgen"
)

// Quiz is the per-book quiz document. Question sets and user attempts are
// document-shaped (nested, append-heavy, read whole) so they live in JSON
// columns rather than normalized tables.
type Quiz struct {
	ID                  uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	BookID              uuid.UUID      `gorm:"type:uuid;not null;uniqueIndex" json:"book_id"`
	AgeGroupedQuestions datatypes.JSON `gorm:"column:age_grouped_questions" json:"age_grouped_questions"`
	Attempts            datatypes.JSON `gorm:"column:attempts" json:"attempts"`
	CreatedAt           time.Time      `gorm:"not null" json:"created_at"`
	UpdatedAt           time.Time      `gorm:"not null" json:"updated_at"`
}

func (Quiz) TableName() string { return "quiz" }

func (q *Quiz) BeforeCreate(_ *gorm.DB) error {
	if q.ID == uuid.Nil {
		q.ID = uuid.New()
	}
	return nil
}

// AgeGroupBucket holds the cached question sets for one age group.
// At most one AttemptQuestions entry exists per attempt number;
// regeneration replaces, never duplicates.
type AgeGroupBucket struct {
	AgeGroup quizgen.AgeGroup   `json:"ageGroup"`
	Attempts []AttemptQuestions `json:"attempts"`
}

// AttemptQuestions is one cached question set.
type AttemptQuestions struct {
	AttemptNumber int                `json:"attemptNumber"`
	Questions     []quizgen.Question `json:"questions"`
}

// QuizAttempt is one user submission record. The attempts list is
// append-only; per-user attempt counts are derived by filtering it.
type QuizAttempt struct {
	UserID        uuid.UUID `json:"userId"`
	Score         int       `json:"score"`
	CoinsEarned   int       `json:"coinsEarned"`
	AttemptNumber int       `json:"attemptNumber"`
	SubmittedAt   time.Time `json:"submittedAt"`
}
