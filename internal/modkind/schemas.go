package modkind

import (
	"pc1console/internal/schema"
)

func newsSchema() (*schema.Schema, schema.Hints) {
	s := &schema.Schema{
		Type:  schema.TypeObject,
		Title: "News API",
		Properties: map[string]*schema.Schema{
			fieldNewsAPIKey: {Type: schema.TypeString, Title: "API Key"},
		},
		PropertyOrder: []string{fieldNewsAPIKey},
		Required:      []string{fieldNewsAPIKey},
	}
	hints := schema.Hints{
		fieldNewsAPIKey: {Widget: schema.WidgetPassword, Placeholder: "newsapi.org API key"},
	}
	return s, hints
}

func rssSchema() (*schema.Schema, schema.Hints) {
	s := &schema.Schema{
		Type:  schema.TypeObject,
		Title: "RSS Feeds",
		Properties: map[string]*schema.Schema{
			fieldRSSFeeds: {
				Type:     schema.TypeArray,
				Title:    "Feeds",
				Items:    &schema.Schema{Type: schema.TypeString, Title: "Feed URL"},
				MaxItems: 10,
			},
			"max_items": {Type: schema.TypeInteger, Title: "Items per feed", Default: float64(5)},
		},
		PropertyOrder: []string{fieldRSSFeeds, "max_items"},
		Required:      []string{fieldRSSFeeds},
	}
	hints := schema.Hints{
		fieldRSSFeeds:             {AddLabel: "Add feed"},
		fieldRSSFeeds + ".items": {Placeholder: "https://example.com/feed.xml"},
	}
	return s, hints
}

func weatherSchema() (*schema.Schema, schema.Hints) {
	s := &schema.Schema{
		Type:  schema.TypeObject,
		Title: "Weather",
		Properties: map[string]*schema.Schema{
			"city_name": {Type: schema.TypeString, Title: "City"},
			"state":     {Type: schema.TypeString, Title: "State"},
			"zipcode":   {Type: schema.TypeString, Title: "Zip code"},
			"latitude":  {Type: schema.TypeNumber, Title: "Latitude"},
			"longitude": {Type: schema.TypeNumber, Title: "Longitude"},
			"timezone":  {Type: schema.TypeString, Title: "Timezone"},
			"units": {
				Type:    schema.TypeString,
				Title:   "Units",
				Enum:    []any{"imperial", "metric"},
				Default: "imperial",
			},
			"forecast_days": {Type: schema.TypeInteger, Title: "Forecast days", Default: float64(3)},
		},
		PropertyOrder: []string{"city_name", "units", "forecast_days"},
	}
	hints := schema.Hints{
		// Выбор результата заполняет и скрытые поля-спутники:
		// state, zipcode, latitude, longitude, timezone.
		"city_name": {Widget: schema.WidgetLocationSearch, Placeholder: "Leave empty to use device location"},
	}
	return s, hints
}

func emailSchema() (*schema.Schema, schema.Hints) {
	s := &schema.Schema{
		Type:  schema.TypeObject,
		Title: "Email",
		Properties: map[string]*schema.Schema{
			"email_service": {
				Type:    schema.TypeString,
				Title:   "Service",
				Enum:    []any{"Gmail", "Outlook", "Yahoo", "Custom"},
				Default: "Gmail",
			},
			"email_user":     {Type: schema.TypeString, Title: "Email address"},
			"email_password": {Type: schema.TypeString, Title: "Password"},
			"email_host":     {Type: schema.TypeString, Title: "IMAP host"},
			"email_port":     {Type: schema.TypeInteger, Title: "IMAP port", Default: float64(993)},
			"max_messages":   {Type: schema.TypeInteger, Title: "Messages to print", Default: float64(5)},
		},
		PropertyOrder: []string{"email_service", "email_user", "email_password", "email_host", "email_port", "max_messages"},
		Required:      []string{"email_user", "email_password"},
	}
	hints := schema.Hints{
		"email_service": {
			Widget: schema.WidgetPresetSelect,
			Presets: []schema.Preset{
				{Label: "Gmail", Values: map[string]any{"email_service": "Gmail", "email_host": "imap.gmail.com", "email_port": float64(993)}},
				{Label: "Outlook", Values: map[string]any{"email_service": "Outlook", "email_host": "outlook.office365.com", "email_port": float64(993)}},
				{Label: "Yahoo", Values: map[string]any{"email_service": "Yahoo", "email_host": "imap.mail.yahoo.com", "email_port": float64(993)}},
				{Label: "Custom", Values: map[string]any{"email_service": "Custom"}},
			},
		},
		"email_user":     {Placeholder: "user@example.com"},
		"email_password": {Widget: schema.WidgetPassword, Placeholder: "App password"},
		"email_host":     {ShowWhen: &schema.ShowWhen{Field: "email_service", Value: "Custom"}},
		"email_port":     {ShowWhen: &schema.ShowWhen{Field: "email_service", Value: "Custom"}},
	}
	return s, hints
}

func calendarSchema() (*schema.Schema, schema.Hints) {
	s := &schema.Schema{
		Type:  schema.TypeObject,
		Title: "Calendar",
		Properties: map[string]*schema.Schema{
			"ical_sources": {
				Type:  schema.TypeArray,
				Title: "Calendars",
				Items: &schema.Schema{
					Type: schema.TypeObject,
					Properties: map[string]*schema.Schema{
						"name": {Type: schema.TypeString, Title: "Name"},
						"url":  {Type: schema.TypeString, Title: "iCal URL"},
					},
					PropertyOrder: []string{"name", "url"},
					Required:      []string{"url"},
				},
				MaxItems: 8,
			},
			"days_ahead": {Type: schema.TypeInteger, Title: "Days ahead", Default: float64(7)},
		},
		PropertyOrder: []string{"ical_sources", "days_ahead"},
		Required:      []string{"ical_sources"},
	}
	hints := schema.Hints{
		"ical_sources":     {AddLabel: "Add calendar"},
		"ical_sources.url": {Placeholder: "https://calendar.google.com/.../basic.ics"},
	}
	return s, hints
}

func webhookSchema() (*schema.Schema, schema.Hints) {
	s := &schema.Schema{
		Type:  schema.TypeObject,
		Title: "Webhook",
		Properties: map[string]*schema.Schema{
			"url": {Type: schema.TypeString, Title: "URL"},
			"method": {
				Type:    schema.TypeString,
				Title:   "Method",
				Enum:    []any{"GET", "POST"},
				Default: "GET",
			},
			"headers": {Type: schema.TypeObject, Title: "Headers", Properties: map[string]*schema.Schema{}},
			"body":    {Type: schema.TypeString, Title: "Body"},
		},
		PropertyOrder: []string{"url", "method", "headers", "body"},
		Required:      []string{"url"},
	}
	hints := schema.Hints{
		"url":     {Placeholder: "https://example.com/endpoint"},
		"headers": {Widget: schema.WidgetKeyValueList, AddLabel: "Add header"},
		"body": {
			Widget:   schema.WidgetTextarea,
			ShowWhen: &schema.ShowWhen{Field: "method", Value: "POST"},
		},
		"_test": {Widget: schema.WidgetWebhookTest, ActionLabel: "Test webhook"},
	}
	return s, hints
}

func textSchema() (*schema.Schema, schema.Hints) {
	s := &schema.Schema{
		Type:  schema.TypeObject,
		Title: "Text Note",
		Properties: map[string]*schema.Schema{
			"content": {Type: schema.TypeObject, Title: "Content", Properties: map[string]*schema.Schema{}},
		},
		PropertyOrder: []string{"content"},
	}
	hints := schema.Hints{
		"content": {Widget: schema.WidgetRichText},
	}
	return s, hints
}

func gamesSchema() (*schema.Schema, schema.Hints) {
	s := &schema.Schema{
		Type:  schema.TypeObject,
		Title: "Games",
		Properties: map[string]*schema.Schema{
			"game": {
				Type:    schema.TypeString,
				Title:   "Game",
				Enum:    []any{"wordsearch", "sudoku", "crossword"},
				Default: "wordsearch",
			},
			"difficulty": {
				Type:    schema.TypeString,
				Title:   "Difficulty",
				Enum:    []any{"easy", "medium", "hard"},
				Default: "medium",
			},
		},
		PropertyOrder: []string{"game", "difficulty"},
	}
	hints := schema.Hints{
		"_new": {Widget: schema.WidgetActionButton, Action: "new-puzzle", ActionLabel: "Generate new puzzle"},
	}
	return s, hints
}

func mazeSchema() (*schema.Schema, schema.Hints) {
	s := &schema.Schema{
		Type:  schema.TypeObject,
		Title: "Maze",
		Properties: map[string]*schema.Schema{
			"difficulty": {
				Type:    schema.TypeString,
				Title:   "Difficulty",
				Enum:    []any{"easy", "medium", "hard"},
				Default: "medium",
			},
		},
		PropertyOrder: []string{"difficulty"},
	}
	hints := schema.Hints{
		"_new": {Widget: schema.WidgetActionButton, Action: "regenerate", ActionLabel: "New maze"},
	}
	return s, hints
}

func quotesSchema() (*schema.Schema, schema.Hints) {
	s := &schema.Schema{
		Type:  schema.TypeObject,
		Title: "Quotes",
		Properties: map[string]*schema.Schema{
			"category": {
				Type:    schema.TypeString,
				Title:   "Category",
				Enum:    []any{"inspirational", "literature", "science", "humor"},
				Default: "inspirational",
			},
		},
		PropertyOrder: []string{"category"},
	}
	hints := schema.Hints{
		"category": {RandomExample: true},
	}
	return s, hints
}

func historySchema() (*schema.Schema, schema.Hints) {
	s := &schema.Schema{
		Type:  schema.TypeObject,
		Title: "This Day in History",
		Properties: map[string]*schema.Schema{
			"max_events": {Type: schema.TypeInteger, Title: "Events to print", Default: float64(3)},
		},
		PropertyOrder: []string{"max_events"},
	}
	return s, schema.Hints{}
}

func astronomySchema() (*schema.Schema, schema.Hints) {
	s := &schema.Schema{
		Type:  schema.TypeObject,
		Title: "Astronomy",
		Properties: map[string]*schema.Schema{
			"show_moon_phase": {Type: schema.TypeBoolean, Title: "Moon phase", Default: true},
			"show_planets":    {Type: schema.TypeBoolean, Title: "Visible planets", Default: true},
		},
		PropertyOrder: []string{"show_moon_phase", "show_planets"},
	}
	return s, schema.Hints{}
}
