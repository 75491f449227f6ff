package services

import (
	"fmt"
	"math"
	"sort"
	"strings"
	"time"

	"gorm.io/gorm"

	apperrors "github.com/Nardoto/nardotos-finance/internal/errors"
	"github.com/Nardoto/nardotos-finance/internal/models"
)

// InsightKind tags the tone of an observation.
type InsightKind string

const (
	InsightWarning  InsightKind = "WARNING"
	InsightPositive InsightKind = "POSITIVE"
	InsightNeutral  InsightKind = "NEUTRAL"
)

// Insight is one templated observation about the month.
type Insight struct {
	Kind    InsightKind `json:"tipo"`
	Icon    string      `json:"icone"`
	Message string      `json:"mensagem"`
}

// Comparison exposes the raw numbers behind the insights.
type Comparison struct {
	CurrentExpense   float64 `json:"despesasAtual"`
	PreviousExpense  float64 `json:"despesasAnterior"`
	CurrentIncome    float64 `json:"receitasAtual"`
	PreviousIncome   float64 `json:"receitasAnterior"`
	ExpenseVariation float64 `json:"variacaoDespesas"`
	IncomeVariation  float64 `json:"variacaoReceitas"`
}

// InsightReport is the full insight response for a month.
type InsightReport struct {
	Insights   []Insight  `json:"insights"`
	Comparison Comparison `json:"comparacao"`
}

// monthAggregate is what the rules compare between two months.
type monthAggregate struct {
	Income     float64
	Expense    float64
	ByCategory map[string]float64
}

// insightService compares a month against the one before it and emits
// threshold-based observations.
type insightService struct {
	db *gorm.DB

	// now is overridable so the projection rule can be tested against a
	// fixed date.
	now func() time.Time
}

// NewInsightService creates a new InsightServicer.
func NewInsightService(db *gorm.DB) InsightServicer {
	return &insightService{db: db, now: time.Now}
}

// Generate runs every rule against the month and its predecessor. Rules
// fire independently; all matches are returned. An empty result is
// replaced by a single neutral placeholder.
func (s *insightService) Generate(monthKey string, account *models.EntryAccount) (*InsightReport, error) {
	period, err := MonthPeriod(monthKey)
	if err != nil {
		return nil, err
	}

	current, err := s.aggregate(period, account)
	if err != nil {
		return nil, err
	}
	previous, err := s.aggregate(period.Previous(), account)
	if err != nil {
		return nil, err
	}

	report := &InsightReport{
		Insights: []Insight{},
		Comparison: Comparison{
			CurrentExpense:  current.Expense,
			PreviousExpense: previous.Expense,
			CurrentIncome:   current.Income,
			PreviousIncome:  previous.Income,
		},
	}
	if previous.Expense > 0 {
		report.Comparison.ExpenseVariation = variation(current.Expense, previous.Expense)
	}
	if previous.Income > 0 {
		report.Comparison.IncomeVariation = variation(current.Income, previous.Income)
	}

	s.expenseRule(report, current, previous)
	s.categoryRule(report, current, previous)
	s.incomeRule(report, current, previous)
	s.projectionRule(report, current, period)
	s.balanceRule(report, current, previous)

	if len(report.Insights) == 0 {
		report.Insights = append(report.Insights, Insight{
			Kind:    InsightNeutral,
			Icon:    "📋",
			Message: "Continue registrando seus lançamentos para gerar insights personalizados",
		})
	}
	return report, nil
}

func (s *insightService) aggregate(p Period, account *models.EntryAccount) (monthAggregate, error) {
	query := settledInPeriod(s.db, p)
	if account != nil {
		query = query.Where("account = ?", *account)
	}

	var entries []models.Entry
	if err := query.Select("type, amount, category").Find(&entries).Error; err != nil {
		return monthAggregate{}, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	agg := monthAggregate{ByCategory: make(map[string]float64)}
	for _, e := range entries {
		if e.Type == models.EntryTypeIncome {
			agg.Income += e.Amount
		} else {
			agg.Expense += e.Amount
			agg.ByCategory[e.Category] += e.Amount
		}
	}
	return agg, nil
}

func variation(current, previous float64) float64 {
	return (current - previous) / previous * 100
}

func (s *insightService) expenseRule(report *InsightReport, current, previous monthAggregate) {
	if previous.Expense <= 0 {
		return
	}
	v := variation(current.Expense, previous.Expense)
	switch {
	case v > 20:
		report.Insights = append(report.Insights, Insight{
			Kind: InsightWarning,
			Icon: "⚠️",
			Message: fmt.Sprintf("Você gastou %.0f%% a mais que o mês passado (%s de aumento)",
				v, formatBRL(current.Expense-previous.Expense)),
		})
	case v < -20:
		report.Insights = append(report.Insights, Insight{
			Kind: InsightPositive,
			Icon: "🎉",
			Message: fmt.Sprintf("Parabéns! Você economizou %.0f%% em relação ao mês passado (%s a menos)",
				math.Abs(v), formatBRL(previous.Expense-current.Expense)),
		})
	case math.Abs(v) <= 5:
		report.Insights = append(report.Insights, Insight{
			Kind: InsightNeutral,
			Icon: "📊",
			Message: fmt.Sprintf("Seus gastos estão estáveis, variação de apenas %.1f%% em relação ao mês anterior",
				math.Abs(v)),
		})
	}
}

type categoryVariation struct {
	category  string
	variation float64
	delta     float64
}

func (s *insightService) categoryRule(report *InsightReport, current, previous monthAggregate) {
	var variations []categoryVariation
	for cat, curr := range current.ByCategory {
		prev := previous.ByCategory[cat]
		if prev > 0 {
			variations = append(variations, categoryVariation{cat, variation(curr, prev), curr - prev})
		} else if curr > 0 {
			// A brand-new category counts as a 100% increase.
			variations = append(variations, categoryVariation{cat, 100, curr})
		}
	}
	sort.Slice(variations, func(i, j int) bool {
		if math.Abs(variations[i].variation) != math.Abs(variations[j].variation) {
			return math.Abs(variations[i].variation) > math.Abs(variations[j].variation)
		}
		return variations[i].category < variations[j].category
	})

	if len(variations) > 0 && variations[0].variation > 30 {
		top := variations[0]
		report.Insights = append(report.Insights, Insight{
			Kind: InsightWarning,
			Icon: "📈",
			Message: fmt.Sprintf("Categoria %s: aumento de %.0f%% (%s)",
				top.category, top.variation, formatBRL(top.delta)),
		})
	}
	for _, v := range variations {
		if v.variation < -30 {
			report.Insights = append(report.Insights, Insight{
				Kind: InsightPositive,
				Icon: "💰",
				Message: fmt.Sprintf("Economia em %s: redução de %.0f%% (%s economizados)",
					v.category, math.Abs(v.variation), formatBRL(math.Abs(v.delta))),
			})
			break
		}
	}
}

func (s *insightService) incomeRule(report *InsightReport, current, previous monthAggregate) {
	if previous.Income <= 0 {
		return
	}
	v := variation(current.Income, previous.Income)
	switch {
	case v > 20:
		report.Insights = append(report.Insights, Insight{
			Kind: InsightPositive,
			Icon: "💵",
			Message: fmt.Sprintf("Suas receitas aumentaram %.0f%% este mês (+%s)",
				v, formatBRL(current.Income-previous.Income)),
		})
	case v < -20:
		report.Insights = append(report.Insights, Insight{
			Kind: InsightWarning,
			Icon: "📉",
			Message: fmt.Sprintf("Suas receitas diminuíram %.0f%% este mês (-%s)",
				math.Abs(v), formatBRL(previous.Income-current.Income)),
		})
	}
}

func (s *insightService) projectionRule(report *InsightReport, current monthAggregate, p Period) {
	today := s.now().UTC()
	daysInMonth := p.Days()

	elapsed := daysInMonth
	if today.Year() == p.Start.Year() && today.Month() == p.Start.Month() {
		elapsed = today.Day()
	}
	if elapsed <= 0 || elapsed >= daysInMonth {
		return
	}

	projection := current.Expense / float64(elapsed) * float64(daysInMonth)
	remaining := projection - current.Expense
	if remaining <= 0 {
		return
	}
	report.Insights = append(report.Insights, Insight{
		Kind: InsightNeutral,
		Icon: "🔮",
		Message: fmt.Sprintf("Projeção: você deve gastar cerca de %s até o fim do mês (faltam ~%s)",
			formatBRL(projection), formatBRL(remaining)),
	})
}

func (s *insightService) balanceRule(report *InsightReport, current, previous monthAggregate) {
	previousBalance := previous.Income - previous.Expense
	if previousBalance == 0 {
		return
	}
	delta := (current.Income - current.Expense) - previousBalance
	if math.Abs(delta) <= 100 {
		return
	}
	if delta > 0 {
		report.Insights = append(report.Insights, Insight{
			Kind:    InsightPositive,
			Icon:    "✨",
			Message: fmt.Sprintf("Seu saldo melhorou %s em relação ao mês passado", formatBRL(delta)),
		})
	} else {
		report.Insights = append(report.Insights, Insight{
			Kind:    InsightWarning,
			Icon:    "⚡",
			Message: fmt.Sprintf("Seu saldo piorou %s em relação ao mês passado", formatBRL(math.Abs(delta))),
		})
	}
}

// formatBRL renders an amount in Brazilian currency notation
// (1234.5 → "R$ 1.234,50").
func formatBRL(amount float64) string {
	negative := amount < 0
	cents := int64(math.Round(math.Abs(amount) * 100))
	whole := cents / 100
	frac := cents % 100

	digits := fmt.Sprintf("%d", whole)
	var grouped strings.Builder
	for i, d := range digits {
		if i > 0 && (len(digits)-i)%3 == 0 {
			grouped.WriteByte('.')
		}
		grouped.WriteRune(d)
	}

	sign := ""
	if negative {
		sign = "-"
	}
	return fmt.Sprintf("%sR$ %s,%02d", sign, grouped.String(), frac)
}
