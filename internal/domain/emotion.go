package domain

// Emotion is a mood recorded at creation or at a later check-in.
type Emotion string

// Possible emotion values
const (
	EmotionHappy    Emotion = "happy"
	EmotionExcited  Emotion = "excited"
	EmotionCalm     Emotion = "calm"
	EmotionNeutral  Emotion = "neutral"
	EmotionTired    Emotion = "tired"
	EmotionWorried  Emotion = "worried"
	EmotionStressed Emotion = "stressed"
)

// AllEmotions lists every emotion in display order.
func AllEmotions() []Emotion {
	return []Emotion{
		EmotionHappy,
		EmotionExcited,
		EmotionCalm,
		EmotionNeutral,
		EmotionTired,
		EmotionWorried,
		EmotionStressed,
	}
}

// IsValidEmotion checks if the given emotion is known.
func IsValidEmotion(e Emotion) bool {
	switch e {
	case EmotionHappy, EmotionExcited, EmotionCalm, EmotionNeutral,
		EmotionTired, EmotionWorried, EmotionStressed:
		return true
	default:
		return false
	}
}

// IsNeutral reports whether e belongs to the neutral class.
func (e Emotion) IsNeutral() bool {
	return e == EmotionCalm || e == EmotionNeutral || e == EmotionTired
}
