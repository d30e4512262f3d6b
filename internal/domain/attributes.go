package domain

// Attributes are the display and semantic properties attached to an enum tag.
type Attributes struct {
	Label string `json:"label"`
	Icon  string `json:"icon"`
	Color string `json:"color"`
}

// EmotionAttributes extends Attributes with the mood score used by analytics.
type EmotionAttributes struct {
	Attributes
	Score int `json:"score"`
}

var momentTypeAttributes = map[MomentType]Attributes{
	MomentTypeStudy:    {Label: "Study", Icon: "📚", Color: "#3b82f6"},
	MomentTypeWork:     {Label: "Work", Icon: "💼", Color: "#6366f1"},
	MomentTypePersonal: {Label: "Personal", Icon: "🌱", Color: "#10b981"},
	MomentTypeTravel:   {Label: "Travel", Icon: "✈️", Color: "#f59e0b"},
	MomentTypeGoal:     {Label: "Goal", Icon: "🎯", Color: "#ef4444"},
}

var emotionAttributes = map[Emotion]EmotionAttributes{
	EmotionHappy:    {Attributes{Label: "Happy", Icon: "😊", Color: "#facc15"}, 5},
	EmotionExcited:  {Attributes{Label: "Excited", Icon: "🤩", Color: "#f97316"}, 5},
	EmotionCalm:     {Attributes{Label: "Calm", Icon: "😌", Color: "#22c55e"}, 3},
	EmotionNeutral:  {Attributes{Label: "Neutral", Icon: "😐", Color: "#9ca3af"}, 3},
	EmotionTired:    {Attributes{Label: "Tired", Icon: "😴", Color: "#a78bfa"}, 3},
	EmotionWorried:  {Attributes{Label: "Worried", Icon: "😟", Color: "#fb923c"}, 1},
	EmotionStressed: {Attributes{Label: "Stressed", Icon: "😫", Color: "#dc2626"}, 1},
}

// Attributes returns the display attributes of t. Unknown types get their
// raw tag as the label.
func (t MomentType) Attributes() Attributes {
	if a, ok := momentTypeAttributes[t]; ok {
		return a
	}
	return Attributes{Label: string(t)}
}

// Attributes returns the display attributes and score of e. Unknown emotions
// fall back to the neutral score.
func (e Emotion) Attributes() EmotionAttributes {
	if a, ok := emotionAttributes[e]; ok {
		return a
	}
	return EmotionAttributes{Attributes: Attributes{Label: string(e)}, Score: 3}
}
