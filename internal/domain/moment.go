package domain

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

// MomentType categorizes a moment
type MomentType string

// Possible moment types
const (
	MomentTypeStudy    MomentType = "study"
	MomentTypeWork     MomentType = "work"
	MomentTypePersonal MomentType = "personal"
	MomentTypeTravel   MomentType = "travel"
	MomentTypeGoal     MomentType = "goal"
)

// Priority ranks how much a moment matters to its owner
type Priority string

// Possible priority values
const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

// MomentStatus represents the lifecycle state of a moment
type MomentStatus string

// Possible moment status values
const (
	MomentStatusActive    MomentStatus = "active"
	MomentStatusCompleted MomentStatus = "completed"
	MomentStatusArchived  MomentStatus = "archived"
)

// PostponeDays is how far a past-due moment is pushed forward.
const PostponeDays = 7

// Validation errors for Moment
var (
	ErrEmptyMomentID       = errors.New("moment ID cannot be empty")
	ErrEmptyMomentTitle    = errors.New("moment title cannot be empty")
	ErrEmptyMomentDate     = errors.New("moment date cannot be empty")
	ErrInvalidMomentType   = errors.New("invalid moment type")
	ErrInvalidPriority     = errors.New("invalid priority")
	ErrInvalidMomentStatus = errors.New("invalid moment status")
	ErrInvalidEmotion      = errors.New("invalid emotion")
	ErrEmptyTaskText       = errors.New("task text cannot be empty")
	ErrDuplicateTaskID     = errors.New("task IDs must be unique within a moment")
	ErrReflectionMismatch  = errors.New("reflection must be present exactly when the moment is completed")
	ErrEmptyEmotionHistory = errors.New("emotion history must contain the initial check-in")
	ErrDuplicateEmotionLog = errors.New("emotion log IDs must be unique")
)

// Task is a subtask owned by exactly one moment.
type Task struct {
	ID        uuid.UUID `json:"id"        yaml:"id"`
	Text      string    `json:"text"      yaml:"text"`
	Completed bool      `json:"completed" yaml:"completed"`
}

// NewTask creates an incomplete task with a fresh ID.
func NewTask(text string) (Task, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return Task{}, NewValidationError("task.text", "cannot be empty", ErrEmptyTaskText)
	}
	return Task{ID: uuid.New(), Text: text}, nil
}

// EmotionLog is one emotional check-in recorded against a moment.
type EmotionLog struct {
	ID      uuid.UUID `json:"id"             yaml:"id"`
	Date    time.Time `json:"date"           yaml:"date"`
	Emotion Emotion   `json:"emotion"        yaml:"emotion"`
	Note    string    `json:"note,omitempty" yaml:"note,omitempty"`
}

// Reflection is the self-assessment attached when a moment is completed.
type Reflection struct {
	Rating        int    `json:"rating"         yaml:"rating"`
	Lessons       string `json:"lessons"        yaml:"lessons"`
	Repeatable    bool   `json:"repeatable"     yaml:"repeatable"`
	CompletedDate Date   `json:"completed_date" yaml:"completed_date"`
}

// Validate checks the rating range.
func (r Reflection) Validate() error {
	if r.Rating < 1 || r.Rating > 5 {
		return ErrInvalidRating
	}
	return nil
}

// Moment is a tracked goal or event with a target date and a lifecycle.
type Moment struct {
	ID             uuid.UUID    `json:"id"                   yaml:"id"`
	Title          string       `json:"title"                yaml:"title"`
	Date           Date         `json:"date"                 yaml:"date"`
	Type           MomentType   `json:"type"                 yaml:"type"`
	Priority       Priority     `json:"priority"             yaml:"priority"`
	Notes          string       `json:"notes"                yaml:"notes"`
	Tasks          []Task       `json:"tasks"                yaml:"tasks"`
	Status         MomentStatus `json:"status"               yaml:"status"`
	CreatedAt      time.Time    `json:"created_at"           yaml:"created_at"`
	InitialEmotion Emotion      `json:"initial_emotion"      yaml:"initial_emotion"`
	EmotionHistory []EmotionLog `json:"emotion_history"      yaml:"emotion_history"`
	Reflection     *Reflection  `json:"reflection,omitempty" yaml:"reflection,omitempty"`
}

// MomentInput carries the user-editable fields of a moment.
type MomentInput struct {
	Title          string
	Date           Date
	Type           MomentType
	Priority       Priority
	Notes          string
	Tasks          []string
	InitialEmotion Emotion
}

// NewMoment creates an active moment from user input. The emotion history is
// seeded with one check-in carrying the initial emotion.
// Returns an error if validation fails.
func NewMoment(in MomentInput, now time.Time) (*Moment, error) {
	if in.Type == "" {
		in.Type = MomentTypePersonal
	}
	if in.Priority == "" {
		in.Priority = PriorityMedium
	}
	if in.InitialEmotion == "" {
		in.InitialEmotion = EmotionNeutral
	}

	tasks := make([]Task, 0, len(in.Tasks))
	for _, text := range in.Tasks {
		task, err := NewTask(text)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, task)
	}

	m := &Moment{
		ID:             uuid.New(),
		Title:          strings.TrimSpace(in.Title),
		Date:           in.Date,
		Type:           in.Type,
		Priority:       in.Priority,
		Notes:          in.Notes,
		Tasks:          tasks,
		Status:         MomentStatusActive,
		CreatedAt:      now.UTC(),
		InitialEmotion: in.InitialEmotion,
		EmotionHistory: []EmotionLog{{
			ID:      uuid.New(),
			Date:    now.UTC(),
			Emotion: in.InitialEmotion,
		}},
	}

	if err := m.Validate(); err != nil {
		return nil, err
	}
	return m, nil
}

// Validate checks if the Moment has valid data and that its reflection
// agrees with its status.
func (m *Moment) Validate() error {
	if m.ID == uuid.Nil {
		return NewValidationError("id", "cannot be empty", ErrEmptyMomentID)
	}
	if strings.TrimSpace(m.Title) == "" {
		return NewValidationError("title", "cannot be empty", ErrEmptyMomentTitle)
	}
	if m.Date.IsZero() {
		return NewValidationError("date", "cannot be empty", ErrEmptyMomentDate)
	}
	if !IsValidMomentType(m.Type) {
		return NewValidationError("type", "is not a known moment type", ErrInvalidMomentType)
	}
	if !IsValidPriority(m.Priority) {
		return NewValidationError("priority", "must be low, medium or high", ErrInvalidPriority)
	}
	if !IsValidEmotion(m.InitialEmotion) {
		return NewValidationError("initial_emotion", "is not a known emotion", ErrInvalidEmotion)
	}

	seen := make(map[uuid.UUID]struct{}, len(m.Tasks))
	for _, task := range m.Tasks {
		if strings.TrimSpace(task.Text) == "" {
			return NewValidationError("tasks", "cannot contain empty text", ErrEmptyTaskText)
		}
		if _, dup := seen[task.ID]; dup || task.ID == uuid.Nil {
			return NewValidationError("tasks", "must have unique IDs", ErrDuplicateTaskID)
		}
		seen[task.ID] = struct{}{}
	}

	if len(m.EmotionHistory) == 0 {
		return NewValidationError("emotion_history", "cannot be empty", ErrEmptyEmotionHistory)
	}
	logIDs := make(map[uuid.UUID]struct{}, len(m.EmotionHistory))
	for _, entry := range m.EmotionHistory {
		if !IsValidEmotion(entry.Emotion) {
			return NewValidationError("emotion_history", "contains an unknown emotion", ErrInvalidEmotion)
		}
		if _, dup := logIDs[entry.ID]; dup || entry.ID == uuid.Nil {
			return NewValidationError("emotion_history", "must have unique IDs", ErrDuplicateEmotionLog)
		}
		logIDs[entry.ID] = struct{}{}
	}

	switch m.Status {
	case MomentStatusCompleted:
		if m.Reflection == nil {
			return NewValidationError("reflection", "is required for completed moments", ErrReflectionMismatch)
		}
		if err := m.Reflection.Validate(); err != nil {
			return NewValidationError("reflection.rating", "must be between 1 and 5", err)
		}
	case MomentStatusActive, MomentStatusArchived:
		if m.Reflection != nil {
			return NewValidationError("reflection", "is only allowed on completed moments", ErrReflectionMismatch)
		}
	default:
		return NewValidationError("status", "is not a known status", ErrInvalidMomentStatus)
	}

	return nil
}

// IsActive reports whether the moment can still change status.
func (m *Moment) IsActive() bool {
	return m.Status == MomentStatusActive
}

// IsHistory reports whether the moment reached a terminal status.
func (m *Moment) IsHistory() bool {
	return m.Status == MomentStatusCompleted || m.Status == MomentStatusArchived
}

// Clone returns a deep copy so callers never share slices with the owner.
func (m *Moment) Clone() *Moment {
	if m == nil {
		return nil
	}
	c := *m
	if m.Tasks != nil {
		c.Tasks = append([]Task(nil), m.Tasks...)
	}
	if m.EmotionHistory != nil {
		c.EmotionHistory = append([]EmotionLog(nil), m.EmotionHistory...)
	}
	if m.Reflection != nil {
		r := *m.Reflection
		c.Reflection = &r
	}
	return &c
}

// AddTask appends a new incomplete task.
func (m *Moment) AddTask(text string) (Task, error) {
	task, err := NewTask(text)
	if err != nil {
		return Task{}, err
	}
	m.Tasks = append(m.Tasks, task)
	return task, nil
}

// ToggleTask flips the completion flag of the task with the given ID.
// Returns false if the moment has no such task.
func (m *Moment) ToggleTask(taskID uuid.UUID) bool {
	for i := range m.Tasks {
		if m.Tasks[i].ID == taskID {
			m.Tasks[i].Completed = !m.Tasks[i].Completed
			return true
		}
	}
	return false
}

// LogEmotion appends a check-in to the emotion history.
func (m *Moment) LogEmotion(emotion Emotion, note string, at time.Time) (EmotionLog, error) {
	if !IsValidEmotion(emotion) {
		return EmotionLog{}, NewValidationError("emotion", "is not a known emotion", ErrInvalidEmotion)
	}
	entry := EmotionLog{
		ID:      uuid.New(),
		Date:    at.UTC(),
		Emotion: emotion,
		Note:    strings.TrimSpace(note),
	}
	m.EmotionHistory = append(m.EmotionHistory, entry)
	return entry, nil
}

// Complete moves an active moment to completed and attaches the reflection.
// The moment is left untouched when the transition is refused.
func (m *Moment) Complete(r Reflection, today Date) error {
	if !m.IsActive() {
		return ErrNotActive
	}
	if err := r.Validate(); err != nil {
		return err
	}
	if r.CompletedDate.IsZero() {
		r.CompletedDate = today
	}
	m.Reflection = &r
	m.Status = MomentStatusCompleted
	return nil
}

// Archive moves an active moment to archived.
func (m *Moment) Archive() error {
	if !m.IsActive() {
		return ErrNotActive
	}
	m.Status = MomentStatusArchived
	return nil
}

// Postpone pushes a past-due active moment forward by PostponeDays.
func (m *Moment) Postpone(today Date) error {
	if !m.IsActive() {
		return ErrNotActive
	}
	if !m.Date.Before(today) {
		return ErrNotPastDue
	}
	m.Date = m.Date.AddDays(PostponeDays)
	return nil
}

// IsValidMomentType checks if the given type is a known MomentType.
func IsValidMomentType(t MomentType) bool {
	switch t {
	case MomentTypeStudy, MomentTypeWork, MomentTypePersonal, MomentTypeTravel, MomentTypeGoal:
		return true
	default:
		return false
	}
}

// IsValidPriority checks if the given priority is known.
func IsValidPriority(p Priority) bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return true
	default:
		return false
	}
}

// AllMomentTypes lists every moment type in display order.
func AllMomentTypes() []MomentType {
	return []MomentType{
		MomentTypeStudy,
		MomentTypeWork,
		MomentTypePersonal,
		MomentTypeTravel,
		MomentTypeGoal,
	}
}
