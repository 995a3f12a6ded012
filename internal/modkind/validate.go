package modkind

import (
	"encoding/json"
	"net/url"
	"regexp"
	"strings"

	"pc1console/internal/model"
)

var emailRegex = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// validateEmail — проверки модуля email поверх общей схемы
func validateEmail(config map[string]any) model.ValidationErrors {
	var errs model.ValidationErrors

	user := getString(config, "email_user")
	if user != "" && !emailRegex.MatchString(user) {
		errs = append(errs, model.ValidationError{Field: "email_user", Message: "must be a valid email address"})
	}

	if getString(config, "email_service") == "Custom" {
		if getString(config, "email_host") == "" {
			errs = append(errs, model.ValidationError{Field: "email_host", Message: "is required for a custom service"})
		}
		port := getInt(config, "email_port")
		if port < 1 || port > 65535 {
			errs = append(errs, model.ValidationError{Field: "email_port", Message: "must be between 1 and 65535"})
		}
	}

	return errs
}

// validateWebhook — проверки модуля webhook поверх общей схемы
func validateWebhook(config map[string]any) model.ValidationErrors {
	var errs model.ValidationErrors

	rawURL := getString(config, "url")
	if rawURL != "" {
		u, err := url.Parse(rawURL)
		if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
			errs = append(errs, model.ValidationError{Field: "url", Message: "must be an http(s) URL"})
		}
	}

	body := getString(config, "body")
	if getString(config, "method") == "POST" && body != "" {
		if !json.Valid([]byte(strings.TrimSpace(body))) {
			errs = append(errs, model.ValidationError{Field: "body", Message: "must be valid JSON"})
		}
	}

	return errs
}

func getInt(config map[string]any, key string) int {
	if config == nil {
		return 0
	}
	switch v := config[key].(type) {
	case float64:
		return int(v)
	case int:
		return v
	case json.Number:
		n, _ := v.Int64()
		return int(n)
	default:
		return 0
	}
}
