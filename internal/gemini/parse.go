package gemini

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/Nardoto/nardotos-finance/internal/models"
)

// rawEntry mirrors the JSON shape the prompt asks the model to emit.
type rawEntry struct {
	Type        string  `json:"tipo"`
	Amount      float64 `json:"valor"`
	Category    string  `json:"categoria"`
	Description string  `json:"descricao"`
	Date        string  `json:"data"`
	Status      string  `json:"status"`
}

type rawPlan struct {
	Type        string  `json:"tipo"`
	Amount      float64 `json:"valor"`
	Category    string  `json:"categoria"`
	Description string  `json:"descricao"`
	DueDate     string  `json:"dataVencimento"`
	Recurring   bool    `json:"recorrente"`
}

// extractJSON pulls the first JSON object out of the model's reply, which
// may be wrapped in prose or a markdown fence.
func extractJSON(reply string) (string, error) {
	start := strings.Index(reply, "{")
	end := strings.LastIndex(reply, "}")
	if start < 0 || end <= start {
		return "", fmt.Errorf("no JSON object in model reply")
	}
	return reply[start : end+1], nil
}

func parseEntries(reply string) ([]ExtractedEntry, error) {
	blob, err := extractJSON(reply)
	if err != nil {
		return nil, err
	}

	var parsed struct {
		Entries []rawEntry `json:"lancamentos"`
	}
	if err := json.Unmarshal([]byte(blob), &parsed); err != nil {
		return nil, fmt.Errorf("parsing model reply: %w", err)
	}

	entries := make([]ExtractedEntry, 0, len(parsed.Entries))
	for _, r := range parsed.Entries {
		entryType, err := parseEntryType(r.Type)
		if err != nil {
			return nil, err
		}
		entries = append(entries, ExtractedEntry{
			Type:        entryType,
			Amount:      r.Amount,
			Category:    models.NormalizeCategory(r.Category),
			Description: r.Description,
			Date:        parseDate(r.Date),
			Status:      parseStatus(r.Status),
		})
	}
	return entries, nil
}

func parsePlans(reply string) ([]ExtractedPlan, error) {
	blob, err := extractJSON(reply)
	if err != nil {
		return nil, err
	}

	var parsed struct {
		Plans []rawPlan `json:"contas"`
	}
	if err := json.Unmarshal([]byte(blob), &parsed); err != nil {
		return nil, fmt.Errorf("parsing model reply: %w", err)
	}

	plans := make([]ExtractedPlan, 0, len(parsed.Plans))
	for _, r := range parsed.Plans {
		planType, err := parseEntryType(r.Type)
		if err != nil {
			return nil, err
		}
		plans = append(plans, ExtractedPlan{
			Type:        planType,
			Amount:      r.Amount,
			Category:    models.NormalizeCategory(r.Category),
			Description: r.Description,
			DueDate:     parseDate(r.DueDate),
			Recurring:   r.Recurring,
		})
	}
	return plans, nil
}

func parseEntryType(s string) (models.EntryType, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "INCOME", "RECEITA":
		return models.EntryTypeIncome, nil
	case "EXPENSE", "DESPESA":
		return models.EntryTypeExpense, nil
	}
	return "", fmt.Errorf("model returned unknown entry type %q", s)
}

func parseStatus(s string) models.EntryStatus {
	if strings.EqualFold(strings.TrimSpace(s), "PENDING") || strings.EqualFold(strings.TrimSpace(s), "PENDENTE") {
		return models.EntryStatusPending
	}
	return models.EntryStatusSettled
}

// parseDate accepts the YYYY-MM-DD format the prompt requests, falling
// back to today when the model omits or mangles the date.
func parseDate(s string) time.Time {
	if t, err := time.Parse("2006-01-02", strings.TrimSpace(s)); err == nil {
		return t
	}
	now := time.Now().UTC()
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
}
