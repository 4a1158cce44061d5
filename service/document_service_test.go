package service

import (
	"context"
	"strings"
	"testing"

	"juriscrm/models"
	"juriscrm/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolvePlaceholders(t *testing.T) {
	client := models.Client{
		Name:        "Maria Silva",
		CPF:         "111.111.111-11",
		Nationality: "brasileira",
		CivilStatus: "casada",
		City:        "Curitiba",
		State:       "PR",
	}
	kase := models.Case{
		CaseNumber:  "0001/2024",
		BenefitType: models.BenefitAposentadoriaIdade,
		Status:      models.StatusAnaliseInicial,
	}

	content := "{{cliente.name}}, {{cliente.nacionalidade}}, {{cliente.estadoCivil}}, " +
		"CPF {{cliente.cpf}}, residente em {{cliente.city}}/{{cliente.state}}, " +
		"processo {{caso.caseNumber}} ({{caso.benefitType}})"

	got := ResolvePlaceholders(content, client, &kase)
	assert.Equal(t, "Maria Silva, brasileira, casada, CPF 111.111.111-11, "+
		"residente em Curitiba/PR, processo 0001/2024 (Aposentadoria por Idade)", got)
	assert.NotContains(t, got, "{{")
}

func TestResolvePlaceholdersUnknownTokenStays(t *testing.T) {
	client := models.Client{Name: "Maria Silva"}

	got := ResolvePlaceholders("{{cliente.nonexistent}} e {{foo.bar}}", client, nil)
	assert.Equal(t, "{{cliente.nonexistent}} e {{foo.bar}}", got)
}

func TestResolvePlaceholdersWithoutCase(t *testing.T) {
	client := models.Client{Name: "Maria Silva"}

	got := ResolvePlaceholders("{{cliente.name}}: {{caso.caseNumber}}", client, nil)
	assert.Equal(t, "Maria Silva: {{caso.caseNumber}}", got)
}

func TestResolvePlaceholdersLegalRepresentative(t *testing.T) {
	content := "{{cliente.legalRepresentative.name}}, CPF {{cliente.legalRepresentative.cpf}}"

	minor := models.Client{Name: "João Silva"}
	assert.Equal(t, content, ResolvePlaceholders(content, minor, nil),
		"missing representative leaves the tokens intact")

	minor.LegalRepresentative = &models.RepresentativeData{
		Name: "Maria Silva",
		CPF:  "111.111.111-11",
	}
	assert.Equal(t, "Maria Silva, CPF 111.111.111-11", ResolvePlaceholders(content, minor, nil))
}

func TestChecklistStatus(t *testing.T) {
	kase := models.Case{
		BenefitType: models.BenefitAposentadoriaIdade,
		Documents: []models.Document{
			{Name: "cpf maria.pdf"},
			{Name: "Extrato CNIS atualizado.pdf"},
		},
	}

	items := ChecklistStatus(kase)
	require.Len(t, items, 5)

	byName := map[string]bool{}
	for _, item := range items {
		byName[item.Name] = item.Uploaded
	}
	assert.True(t, byName["CPF"])
	assert.True(t, byName["Extrato CNIS"])
	assert.False(t, byName["Comprovante de Residência"])
	assert.False(t, byName["Documento de Identificação (RG/CNH)"],
		"match is against the simplified name, which no upload contains")
}

func TestRequiredDocumentsCopies(t *testing.T) {
	docs := RequiredDocuments(models.BenefitAuxilioDoenca)
	require.NotEmpty(t, docs)
	docs[0] = "alterado"
	assert.NotEqual(t, "alterado", RequiredDocuments(models.BenefitAuxilioDoenca)[0])
}

func TestDocumentServiceGenerate(t *testing.T) {
	db, _ := newTestDatabase(t)
	ctx := context.Background()

	templateRepo := repository.NewTemplateRepository(db)
	clientRepo := repository.NewClientRepository(db)
	caseRepo := repository.NewCaseRepository(db)
	svc := NewDocumentService(templateRepo, clientRepo, caseRepo)

	client, kase := seedClientAndCase(t, db)
	template, err := templateRepo.Add(ctx, models.DocumentTemplate{
		Title:   "Procuração",
		Content: "Outorgante: {{cliente.name}}, processo {{caso.caseNumber}}.",
	})
	require.NoError(t, err)

	content, err := svc.Generate(ctx, template.ID, client.ID, kase.ID)
	require.NoError(t, err)
	assert.Equal(t, "Outorgante: Maria Silva, processo 0001/2024.", content)

	stored, err := caseRepo.GetByID(ctx, kase.ID)
	require.NoError(t, err)
	require.Len(t, stored.LegalDocuments, 1)
	assert.Equal(t, template.ID, stored.LegalDocuments[0].TemplateID)
	assert.Equal(t, models.LegalDocGerado, stored.LegalDocuments[0].Status)
}

func TestDocumentServiceGenerateWithoutCase(t *testing.T) {
	db, _ := newTestDatabase(t)
	ctx := context.Background()

	templateRepo := repository.NewTemplateRepository(db)
	clientRepo := repository.NewClientRepository(db)
	caseRepo := repository.NewCaseRepository(db)
	svc := NewDocumentService(templateRepo, clientRepo, caseRepo)

	client, kase := seedClientAndCase(t, db)
	template, err := templateRepo.Add(ctx, models.DocumentTemplate{
		Title:   "Declaração",
		Content: "Eu, {{cliente.name}}, declaro. {{caso.notes}}",
	})
	require.NoError(t, err)

	content, err := svc.Generate(ctx, template.ID, client.ID, "")
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(content, "{{caso.notes}}"))

	stored, err := caseRepo.GetByID(ctx, kase.ID)
	require.NoError(t, err)
	assert.Empty(t, stored.LegalDocuments, "no case selected, no lifecycle update")
}

func TestDocumentServiceGenerateMissingTemplate(t *testing.T) {
	db, _ := newTestDatabase(t)

	svc := NewDocumentService(
		repository.NewTemplateRepository(db),
		repository.NewClientRepository(db),
		repository.NewCaseRepository(db),
	)

	client, _ := seedClientAndCase(t, db)
	_, err := svc.Generate(context.Background(), "missing", client.ID, "")
	assert.ErrorIs(t, err, repository.ErrTemplateNotFound)
}
