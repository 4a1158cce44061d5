package service

import (
	"context"
	"testing"

	"juriscrm/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAIServiceRequiresClient(t *testing.T) {
	svc := NewAIService()
	ctx := context.Background()

	_, err := svc.GenerateCaseSummary(ctx, models.Case{}, "Maria Silva")
	assert.ErrorIs(t, err, ErrAIClientNotSet)

	_, err = svc.SuggestTasksFromNotes(ctx, "notas")
	assert.ErrorIs(t, err, ErrAIClientNotSet)

	_, err = svc.ExtractClientInfo(ctx, "texto")
	assert.ErrorIs(t, err, ErrAIClientNotSet)
}

func TestParseSuggestedTasks(t *testing.T) {
	raw := `[
		{"description": "Protocolar recurso administrativo", "dueDate": "2024-06-20", "reasoning": "Prazo de 30 dias após o indeferimento"},
		{"description": "Solicitar CNIS atualizado", "reasoning": "Notas mencionam vínculo não reconhecido"}
	]`

	tasks, err := ParseSuggestedTasks(raw)
	require.NoError(t, err)
	require.Len(t, tasks, 2)
	assert.Equal(t, "Protocolar recurso administrativo", tasks[0].Description)
	assert.Equal(t, "2024-06-20", tasks[0].DueDate)
	assert.Empty(t, tasks[1].DueDate)
}

func TestParseSuggestedTasksStripsFences(t *testing.T) {
	raw := "```json\n[{\"description\": \"Agendar perícia\", \"reasoning\": \"Auxílio-doença exige perícia\"}]\n```"

	tasks, err := ParseSuggestedTasks(raw)
	require.NoError(t, err)
	require.Len(t, tasks, 1)
	assert.Equal(t, "Agendar perícia", tasks[0].Description)
}

func TestParseSuggestedTasksInvalid(t *testing.T) {
	_, err := ParseSuggestedTasks("desculpe, não consegui analisar as notas")
	assert.ErrorIs(t, err, ErrAIInvalidPayload)
}

func TestParseClientInfo(t *testing.T) {
	raw := "```\n" + `{"name": "Maria Silva", "cpf": "111.111.111-11", "dateOfBirth": "1960-03-15"}` + "\n```"

	fields, err := ParseClientInfo(raw)
	require.NoError(t, err)
	assert.Equal(t, "Maria Silva", fields["name"])
	assert.Equal(t, "111.111.111-11", fields["cpf"])
	assert.Equal(t, "1960-03-15", fields["dateOfBirth"])
	assert.NotContains(t, fields, "rg")
}

func TestParseClientInfoInvalid(t *testing.T) {
	_, err := ParseClientInfo("[1, 2, 3]")
	assert.ErrorIs(t, err, ErrAIInvalidPayload)
}
