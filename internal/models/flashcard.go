package models

type FlashcardAudio struct {
	CN string `json:"cn"`
	EN string `json:"en"`
	VI string `json:"vi"`
}

type ExampleSentence struct {
	Hanzi     string `json:"hanzi"`
	Pinyin    string `json:"pinyin"`
	MeaningVI string `json:"meaning_vi"`
}

type Meanings struct {
	EN string `json:"en"`
	VI string `json:"vi"`
}

type FlashcardContent struct {
	Hanzi           string           `json:"hanzi"`
	Pinyin          string           `json:"pinyin"`
	EnglishPhonetic string           `json:"english_phonetic,omitempty"`
	ImageURL        string           `json:"image_url,omitempty"`
	Audio           FlashcardAudio   `json:"audio"`
	Meanings        Meanings         `json:"meanings"`
	ExampleSentence *ExampleSentence `json:"example_sentence,omitempty"`
}

// Flashcard identity is ID; Topic and Level reference catalog lists
// fetched separately.
type Flashcard struct {
	ID        string           `json:"id"`
	Topic     string           `json:"topic"`
	Level     string           `json:"level"`
	IsPremium bool             `json:"is_premium"`
	Content   FlashcardContent `json:"content"`
}

type TopicOption struct {
	ID    string `json:"id"`
	Label string `json:"label,omitempty"`
}

type LevelOption struct {
	ID    string `json:"id"`
	Label string `json:"label,omitempty"`
}

// ListMeta describes one fetched page of flashcards. It is held only in
// memory and replaced wholesale on every fetch.
type ListMeta struct {
	Page       int           `json:"page"`
	PageSize   int           `json:"pageSize"`
	Total      int           `json:"total"`
	TotalPages int           `json:"totalPages"`
	Topics     []TopicOption `json:"topics,omitempty"`
	Levels     []LevelOption `json:"levels,omitempty"`
}

// FlashcardPage is the normalized result of a flashcard listing call.
type FlashcardPage struct {
	Items []Flashcard `json:"items"`
	Meta  ListMeta    `json:"meta"`
}
