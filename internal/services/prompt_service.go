package services

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/charmbracelet/log"

	"menteviva/internal/models/db_models"
	"menteviva/pkg/utils"
)

const insightWindow = 7

const (
	fallbackQuoteUnconfigured   = "Seu cérebro ama consistência. Cada repetição fortalece suas conexões neurais. Continue!"
	fallbackQuoteEmpty          = "Neuroplasticidade é apenas uma palavra chique para \"seu cérebro aprende com o que você repete\". Comece pequeno e repita até virar rotina."
	fallbackQuoteFailed         = "Cada dia é uma nova sinapse sendo formada. Continue construindo sua rede neural do sucesso!"
	fallbackInsightUnconfigured = "Configure sua chave de IA para receber insights personalizados."
	fallbackInsightEmpty        = "Continue assim! Cada dia é uma nova oportunidade de crescimento."
	fallbackInsightFailed       = "Continue se dedicando! Analise seus padrões e ajuste sua estratégia."
	fallbackInsightNoData       = "Faça seu primeiro check-in para receber um insight sobre seus padrões."
)

const dailyQuotePrompt = `Gere uma frase motivacional única sobre hábitos e neurociência para o dia de hoje.

Requisitos:
- Inclua um conceito simplificado de neurociência ou psicologia
- Adicione um toque de humor ou perspectiva inesperada
- Mantenha entre 2-3 frases
- Seja acionável e inspirador
- Use linguagem conversacional

Exemplo de estilo: "Seu sistema de recompensa cerebral não se importa com seus planos de 'algum dia'. Ele quer vitórias pequenas hoje. Então, pare de planejar a rotina perfeita e faça uma coisa pequena agora mesmo."

Gere uma nova frase neste estilo:`

const insightPromptTemplate = `Você é um coach de PNL experiente chamado Mente Viva. Analise os últimos check-ins de hábito do usuário e forneça um insight curto, empático e acionável.

Hábito: %s

Dados dos check-ins:
%s

Identifique O PADRÃO MAIS SIGNIFICATIVO e forneça uma mensagem de 2-3 frases que:
1. Reconheça o padrão de forma específica
2. Seja empática e encorajadora
3. Ofereça uma sugestão prática

Responda apenas com o texto do insight, sem formatação JSON.`

// Generated is the text handed back to callers together with whether it came
// from the static fallback set.
type Generated struct {
	Content  string
	Fallback bool
}

type PromptServiceInterface interface {
	DailyQuote(ctx context.Context) Generated
	Insight(ctx context.Context, habitName string, recent []db_models.CheckIn) Generated
}

type PromptService struct {
	generator utils.TextGenerator
	logger    *log.Logger
}

// NewPromptService accepts a nil generator; every call then returns the
// static fallback.
func NewPromptService(generator utils.TextGenerator, logger *log.Logger) PromptServiceInterface {
	return &PromptService{
		generator: generator,
		logger:    logger,
	}
}

func (p *PromptService) DailyQuote(ctx context.Context) Generated {
	return p.generate(ctx, "daily quote", dailyQuotePrompt, fallbackQuoteUnconfigured, fallbackQuoteEmpty, fallbackQuoteFailed)
}

func (p *PromptService) Insight(ctx context.Context, habitName string, recent []db_models.CheckIn) Generated {
	if len(recent) == 0 {
		return Generated{Content: fallbackInsightNoData, Fallback: true}
	}
	prompt := BuildInsightPrompt(habitName, recent)
	return p.generate(ctx, "insight", prompt, fallbackInsightUnconfigured, fallbackInsightEmpty, fallbackInsightFailed)
}

func (p *PromptService) generate(ctx context.Context, kind, prompt, unconfigured, empty, failed string) Generated {
	if p.generator == nil {
		return Generated{Content: unconfigured, Fallback: true}
	}

	content, err := p.generator.Generate(ctx, prompt)
	if err != nil {
		p.logger.Warn("text generation failed, using fallback", "kind", kind, "err", err)
		return Generated{Content: failed, Fallback: true}
	}
	content = strings.TrimSpace(content)
	if content == "" {
		return Generated{Content: empty, Fallback: true}
	}
	return Generated{Content: content}
}

type insightEntry struct {
	Date        string   `json:"date"`
	Status      string   `json:"status"`
	Challenges  []string `json:"challenges"`
	Motivations []string `json:"motivations"`
	Mood        int      `json:"mood"`
}

// BuildInsightPrompt summarises at most the seven newest check-ins.
func BuildInsightPrompt(habitName string, checkIns []db_models.CheckIn) string {
	recent := sortByDateDesc(checkIns)
	if len(recent) > insightWindow {
		recent = recent[:insightWindow]
	}

	summary := make([]insightEntry, 0, len(recent))
	for _, c := range recent {
		summary = append(summary, insightEntry{
			Date:        c.Date,
			Status:      string(c.Status),
			Challenges:  nonNil(c.Challenges),
			Motivations: nonNil(c.Motivations),
			Mood:        c.Mood,
		})
	}
	data, _ := json.MarshalIndent(summary, "", "  ")
	return fmt.Sprintf(insightPromptTemplate, habitName, data)
}

func nonNil(in []string) []string {
	if in == nil {
		return []string{}
	}
	return in
}
