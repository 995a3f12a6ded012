package modkind

import (
	"strings"

	"pc1console/internal/model"
	"pc1console/internal/richtext"
)

// Легаси-поля, которые не должны пересекать границу видов news и rss.
const (
	fieldNewsAPIKey    = "news_api_key"
	fieldRSSFeeds      = "rss_feeds"
	fieldEnableNewsAPI = "enable_newsapi"
)

var kinds = map[string]Kind{
	"news": {
		ID:            "news",
		Label:         "News API",
		Offline:       false,
		Icon:          "newspaper",
		DefaultConfig: defaultFromSchema(newsSchema),
		IsConfigured: func(config map[string]any, _ *model.Settings) bool {
			return getString(config, fieldNewsAPIKey) != ""
		},
		Cleanse:  cleanseDropping(fieldRSSFeeds, fieldEnableNewsAPI),
		Schema:   newsSchema,
		Validate: noExtraValidation,
	},
	"rss": {
		ID:            "rss",
		Label:         "RSS Feeds",
		Offline:       false,
		Icon:          "rss",
		DefaultConfig: defaultFromSchema(rssSchema),
		IsConfigured: func(config map[string]any, _ *model.Settings) bool {
			for _, feed := range getList(config, fieldRSSFeeds) {
				if s, ok := feed.(string); ok && strings.TrimSpace(s) != "" {
					return true
				}
			}
			return false
		},
		Cleanse:  cleanseDropping(fieldNewsAPIKey, fieldEnableNewsAPI),
		Schema:   rssSchema,
		Validate: noExtraValidation,
	},
	"weather": {
		ID:            "weather",
		Label:         "Weather",
		Offline:       false,
		Icon:          "cloud-sun",
		DefaultConfig: defaultFromSchema(weatherSchema),
		IsConfigured: func(config map[string]any, settings *model.Settings) bool {
			if getString(config, "city_name") != "" {
				return true
			}
			return settings != nil && strings.TrimSpace(settings.CityName) != ""
		},
		Cleanse:  copyConfig,
		Schema:   weatherSchema,
		Validate: noExtraValidation,
	},
	"email": {
		ID:            "email",
		Label:         "Email",
		Offline:       false,
		Icon:          "envelope",
		DefaultConfig: defaultFromSchema(emailSchema),
		IsConfigured: func(config map[string]any, _ *model.Settings) bool {
			return getString(config, "email_user") != "" && getString(config, "email_password") != ""
		},
		Cleanse:  copyConfig,
		Schema:   emailSchema,
		Validate: validateEmail,
	},
	"calendar": {
		ID:            "calendar",
		Label:         "Calendar",
		Offline:       false,
		Icon:          "calendar",
		DefaultConfig: defaultFromSchema(calendarSchema),
		IsConfigured: func(config map[string]any, _ *model.Settings) bool {
			for _, src := range getList(config, "ical_sources") {
				if m, ok := src.(map[string]any); ok && getString(m, "url") != "" {
					return true
				}
			}
			return false
		},
		Cleanse:  copyConfig,
		Schema:   calendarSchema,
		Validate: noExtraValidation,
	},
	"webhook": {
		ID:            "webhook",
		Label:         "Webhook",
		Offline:       false,
		Icon:          "bolt",
		DefaultConfig: defaultFromSchema(webhookSchema),
		IsConfigured: func(config map[string]any, _ *model.Settings) bool {
			return getString(config, "url") != ""
		},
		Cleanse:  copyConfig,
		Schema:   webhookSchema,
		Validate: validateWebhook,
	},
	"text": {
		ID:      "text",
		Label:   "Text Note",
		Offline: true,
		Icon:    "file-text",
		DefaultConfig: func() map[string]any {
			return map[string]any{"content": richtext.ToMap(richtext.EmptyDoc())}
		},
		IsConfigured: func(config map[string]any, _ *model.Settings) bool {
			if config == nil {
				return false
			}
			if content, ok := config["content"]; ok {
				return !richtext.IsEmpty(content)
			}
			// легаси-поле с простой строкой
			return strings.TrimSpace(getString(config, "text")) != ""
		},
		Cleanse:  copyConfig,
		Schema:   textSchema,
		Validate: noExtraValidation,
	},
	"games": {
		ID:            "games",
		Label:         "Games",
		Offline:       true,
		Icon:          "puzzle",
		DefaultConfig: defaultFromSchema(gamesSchema),
		IsConfigured:  alwaysConfigured,
		Cleanse:       copyConfig,
		Schema:        gamesSchema,
		Validate:      noExtraValidation,
	},
	"maze": {
		ID:            "maze",
		Label:         "Maze",
		Offline:       true,
		Icon:          "map",
		DefaultConfig: defaultFromSchema(mazeSchema),
		IsConfigured:  alwaysConfigured,
		Cleanse:       copyConfig,
		Schema:        mazeSchema,
		Validate:      noExtraValidation,
	},
	"quotes": {
		ID:            "quotes",
		Label:         "Quotes",
		Offline:       true,
		Icon:          "quote",
		DefaultConfig: defaultFromSchema(quotesSchema),
		IsConfigured:  alwaysConfigured,
		Cleanse:       copyConfig,
		Schema:        quotesSchema,
		Validate:      noExtraValidation,
	},
	"history": {
		ID:            "history",
		Label:         "This Day in History",
		Offline:       true,
		Icon:          "clock",
		DefaultConfig: defaultFromSchema(historySchema),
		IsConfigured:  alwaysConfigured,
		Cleanse:       copyConfig,
		Schema:        historySchema,
		Validate:      noExtraValidation,
	},
	"astronomy": {
		ID:            "astronomy",
		Label:         "Astronomy",
		Offline:       true,
		Icon:          "moon",
		DefaultConfig: defaultFromSchema(astronomySchema),
		IsConfigured:  alwaysConfigured,
		Cleanse:       copyConfig,
		Schema:        astronomySchema,
		Validate:      noExtraValidation,
	},
}
