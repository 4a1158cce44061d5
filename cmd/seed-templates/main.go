package main

import (
	"context"
	"log"
	"os"

	"juriscrm/config"
	"juriscrm/models"
	"juriscrm/repository"
	"juriscrm/storage"

	"github.com/joho/godotenv"
)

// Seeds the default document templates into an empty snapshot. Safe to run
// once per install; refuses to touch a store that already has templates.
func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg, err := config.Load(os.Getenv("JURISCRM_CONFIG"))
	if err != nil {
		log.Fatal("Failed to load config:", err)
	}

	store, err := storage.NewStorage(cfg.StorageConfig())
	if err != nil {
		log.Fatal("Failed to initialize storage:", err)
	}

	ctx := context.Background()
	db, err := repository.NewDatabase(ctx, store)
	if err != nil {
		log.Fatal("Failed to load snapshot:", err)
	}

	templateRepo := repository.NewTemplateRepository(db)
	if existing := templateRepo.List(ctx); len(existing) > 0 {
		log.Fatalf("Store already has %d templates, refusing to seed", len(existing))
	}

	for _, t := range defaultTemplates {
		created, err := templateRepo.Add(ctx, t)
		if err != nil {
			log.Fatalf("Failed to seed template %q: %v", t.Title, err)
		}
		log.Printf("Seeded template %q (%s)", created.Title, created.ID)
	}

	log.Printf("Done: %d templates seeded", len(defaultTemplates))
}

var defaultTemplates = []models.DocumentTemplate{
	{
		Title: "Procuração Ad Judicia",
		Content: `PROCURAÇÃO AD JUDICIA ET EXTRA

OUTORGANTE: {{cliente.name}}, {{cliente.nacionalidade}}, {{cliente.estadoCivil}}, {{cliente.profissao}}, portador(a) do RG nº {{cliente.rg}} {{cliente.rgIssuer}}/{{cliente.rgIssuerUF}} e do CPF nº {{cliente.cpf}}, residente e domiciliado(a) na {{cliente.street}}, nº {{cliente.number}}, {{cliente.neighborhood}}, {{cliente.city}}/{{cliente.state}}, CEP {{cliente.cep}}.

Pelo presente instrumento, nomeia e constitui seu bastante procurador o(a) advogado(a) signatário(a), a quem confere amplos poderes para o foro em geral, com a cláusula "ad judicia et extra", podendo atuar perante o INSS e a Justiça Federal no requerimento de {{caso.benefitType}}.

{{cliente.city}}, ____ de ______________ de ______.


_____________________________
{{cliente.name}}`,
	},
	{
		Title: "Contrato de Honorários",
		Content: `CONTRATO DE PRESTAÇÃO DE SERVIÇOS ADVOCATÍCIOS

CONTRATANTE: {{cliente.name}}, CPF nº {{cliente.cpf}}, residente na {{cliente.street}}, nº {{cliente.number}}, {{cliente.city}}/{{cliente.state}}.

OBJETO: prestação de serviços advocatícios no caso {{caso.caseNumber}}, referente a {{caso.benefitType}}, atualmente na fase "{{caso.status}}".

Os honorários serão devidos na forma ajustada entre as partes, observada a tabela da OAB.

{{cliente.city}}, ____ de ______________ de ______.


_____________________________
{{cliente.name}}`,
	},
	{
		Title: "Declaração de Hipossuficiência",
		Content: `DECLARAÇÃO DE HIPOSSUFICIÊNCIA

Eu, {{cliente.name}}, {{cliente.nacionalidade}}, {{cliente.estadoCivil}}, portador(a) do CPF nº {{cliente.cpf}}, residente na {{cliente.street}}, nº {{cliente.number}}, {{cliente.neighborhood}}, {{cliente.city}}/{{cliente.state}}, DECLARO, sob as penas da lei, não possuir condições de arcar com as custas processuais sem prejuízo do meu sustento e do de minha família.

{{cliente.city}}, ____ de ______________ de ______.


_____________________________
{{cliente.name}}`,
	},
}
