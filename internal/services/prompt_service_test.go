package services

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"menteviva/internal/models/db_models"
	"menteviva/pkg/logger"
)

func TestBuildInsightPromptKeepsNewestSeven(t *testing.T) {
	var checkIns []db_models.CheckIn
	for day := 1; day <= 10; day++ {
		checkIns = append(checkIns, ci(fmt.Sprintf("2025-03-%02d", day), db_models.StatusCompleted))
	}

	prompt := BuildInsightPrompt("ler", checkIns)
	if !strings.Contains(prompt, "Hábito: ler") {
		t.Errorf("prompt should name the habit:\n%s", prompt)
	}
	for _, d := range []string{"2025-03-04", "2025-03-10"} {
		if !strings.Contains(prompt, d) {
			t.Errorf("prompt missing %s", d)
		}
	}
	if strings.Contains(prompt, "2025-03-03") {
		t.Error("prompt should only carry the seven newest check-ins")
	}
	if !strings.Contains(prompt, `"challenges": []`) {
		t.Error("empty tag lists should render as []")
	}
}

func TestPromptServiceFallbacks(t *testing.T) {
	discard := logger.Discard()
	recent := []db_models.CheckIn{ci("2025-03-01", db_models.StatusMissed)}

	unconfigured := NewPromptService(nil, discard)
	if got := unconfigured.DailyQuote(context.Background()); !got.Fallback || got.Content != fallbackQuoteUnconfigured {
		t.Errorf("unexpected quote: %+v", got)
	}
	if got := unconfigured.Insight(context.Background(), "ler", recent); !got.Fallback || got.Content != fallbackInsightUnconfigured {
		t.Errorf("unexpected insight: %+v", got)
	}

	failing := NewPromptService(&fakeGenerator{err: fmt.Errorf("timeout")}, discard)
	if got := failing.Insight(context.Background(), "ler", recent); got.Content != fallbackInsightFailed {
		t.Errorf("unexpected insight: %+v", got)
	}

	empty := NewPromptService(&fakeGenerator{reply: "\n"}, discard)
	if got := empty.Insight(context.Background(), "ler", recent); got.Content != fallbackInsightEmpty {
		t.Errorf("unexpected insight: %+v", got)
	}

	gen := &fakeGenerator{reply: "Insight"}
	ok := NewPromptService(gen, discard)
	if got := ok.Insight(context.Background(), "ler", nil); got.Content != fallbackInsightNoData || gen.Calls() != 0 {
		t.Errorf("no data should skip the generator: %+v", got)
	}
	if got := ok.DailyQuote(context.Background()); got.Fallback || got.Content != "Insight" {
		t.Errorf("unexpected quote: %+v", got)
	}
}
