package mockapi

import "github.com/hanziflash/hanziflash/internal/models"

func fixtureUsers() map[string]fixtureUser {
	return map[string]fixtureUser{
		"linh@example.com": {
			profile: models.UserProfile{
				ID:     "u-1",
				Name:   "Nguyễn Linh",
				Email:  "linh@example.com",
				Avatar: "https://cdn.example.com/avatars/u-1.png",
			},
			password: "secret",
			role:     models.RolePaidUser,
		},
		"minh@example.com": {
			profile: models.UserProfile{
				ID:    "u-2",
				Name:  "Trần Minh",
				Email: "minh@example.com",
			},
			password: "secret",
			role:     models.RoleFreeUser,
		},
	}
}

func fixtureTopics() []models.TopicOption {
	return []models.TopicOption{
		{ID: "food", Label: "Food & Drink"},
		{ID: "travel", Label: "Travel"},
		{ID: "family", Label: "Family"},
	}
}

func fixtureLevels() []models.LevelOption {
	return []models.LevelOption{
		{ID: "HSK1", Label: "HSK 1"},
		{ID: "HSK2", Label: "HSK 2"},
		{ID: "HSK3", Label: "HSK 3"},
	}
}

func fixtureBadges() []models.Badge {
	return []models.Badge{
		{ID: "b-1", Name: "First Steps", Icon: "footprints", Description: "Review your first card"},
		{ID: "b-2", Name: "Week Streak", Icon: "fire", Description: "Study seven days in a row"},
	}
}

func fixtureCards() []models.Flashcard {
	return []models.Flashcard{
		{
			ID: "card-1", Topic: "food", Level: "HSK1",
			Content: models.FlashcardContent{
				Hanzi:  "米饭",
				Pinyin: "mǐfàn",
				Audio: models.FlashcardAudio{
					CN: "audio/mifan_cn.mp3", EN: "audio/mifan_en.mp3", VI: "audio/mifan_vi.mp3",
				},
				Meanings: models.Meanings{EN: "cooked rice", VI: "cơm"},
				ExampleSentence: &models.ExampleSentence{
					Hanzi: "我想吃米饭。", Pinyin: "Wǒ xiǎng chī mǐfàn.", MeaningVI: "Tôi muốn ăn cơm.",
				},
			},
		},
		{
			ID: "card-2", Topic: "food", Level: "HSK1",
			Content: models.FlashcardContent{
				Hanzi:  "茶",
				Pinyin: "chá",
				Audio: models.FlashcardAudio{
					CN: "audio/cha_cn.mp3", EN: "audio/cha_en.mp3", VI: "audio/cha_vi.mp3",
				},
				Meanings: models.Meanings{EN: "tea", VI: "trà"},
			},
		},
		{
			ID: "card-3", Topic: "travel", Level: "HSK2", IsPremium: true,
			Content: models.FlashcardContent{
				Hanzi:           "飞机",
				Pinyin:          "fēijī",
				EnglishPhonetic: "fay-jee",
				Audio: models.FlashcardAudio{
					CN: "audio/feiji_cn.mp3", EN: "audio/feiji_en.mp3", VI: "audio/feiji_vi.mp3",
				},
				Meanings: models.Meanings{EN: "airplane", VI: "máy bay"},
			},
		},
		{
			ID: "card-4", Topic: "family", Level: "HSK1",
			Content: models.FlashcardContent{
				Hanzi:  "妈妈",
				Pinyin: "māma",
				Audio: models.FlashcardAudio{
					CN: "audio/mama_cn.mp3", EN: "audio/mama_en.mp3", VI: "audio/mama_vi.mp3",
				},
				Meanings: models.Meanings{EN: "mother", VI: "mẹ"},
			},
		},
		{
			ID: "card-5", Topic: "travel", Level: "HSK3", IsPremium: true,
			Content: models.FlashcardContent{
				Hanzi:  "护照",
				Pinyin: "hùzhào",
				Audio: models.FlashcardAudio{
					CN: "audio/huzhao_cn.mp3", EN: "audio/huzhao_en.mp3", VI: "audio/huzhao_vi.mp3",
				},
				Meanings: models.Meanings{EN: "passport", VI: "hộ chiếu"},
			},
		},
	}
}
