package service

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"juriscrm/models"
	"juriscrm/repository"
)

var placeholderPattern = regexp.MustCompile(`\{\{(.*?)\}\}`)

// Accessor tables for placeholder resolution. Paths are dispatched through
// these explicit maps instead of reflection; anything not listed here stays
// unresolved in the output.
var clientAccessors = map[string]func(*models.Client) string{
	"name":          func(c *models.Client) string { return c.Name },
	"cpf":           func(c *models.Client) string { return c.CPF },
	"rg":            func(c *models.Client) string { return c.RG },
	"rgIssuer":      func(c *models.Client) string { return c.RGIssuer },
	"rgIssuerUF":    func(c *models.Client) string { return c.RGIssuerUF },
	"dataEmissao":   func(c *models.Client) string { return c.IssueDate },
	"motherName":    func(c *models.Client) string { return c.MotherName },
	"fatherName":    func(c *models.Client) string { return c.FatherName },
	"dateOfBirth":   func(c *models.Client) string { return c.DateOfBirth },
	"nacionalidade": func(c *models.Client) string { return c.Nationality },
	"naturalidade":  func(c *models.Client) string { return c.PlaceOfBirth },
	"estadoCivil":   func(c *models.Client) string { return c.CivilStatus },
	"profissao":     func(c *models.Client) string { return c.Profession },
	"email":         func(c *models.Client) string { return c.Email },
	"phone":         func(c *models.Client) string { return c.Phone },
	"cep":           func(c *models.Client) string { return c.CEP },
	"street":        func(c *models.Client) string { return c.Street },
	"number":        func(c *models.Client) string { return c.Number },
	"complement":    func(c *models.Client) string { return c.Complement },
	"neighborhood":  func(c *models.Client) string { return c.Neighborhood },
	"city":          func(c *models.Client) string { return c.City },
	"state":         func(c *models.Client) string { return c.State },
}

var representativeAccessors = map[string]func(*models.RepresentativeData) string{
	"name":          func(r *models.RepresentativeData) string { return r.Name },
	"motherName":    func(r *models.RepresentativeData) string { return r.MotherName },
	"fatherName":    func(r *models.RepresentativeData) string { return r.FatherName },
	"cpf":           func(r *models.RepresentativeData) string { return r.CPF },
	"rg":            func(r *models.RepresentativeData) string { return r.RG },
	"rgIssuer":      func(r *models.RepresentativeData) string { return r.RGIssuer },
	"rgIssuerUF":    func(r *models.RepresentativeData) string { return r.RGIssuerUF },
	"dataEmissao":   func(r *models.RepresentativeData) string { return r.IssueDate },
	"dateOfBirth":   func(r *models.RepresentativeData) string { return r.DateOfBirth },
	"nacionalidade": func(r *models.RepresentativeData) string { return r.Nationality },
	"naturalidade":  func(r *models.RepresentativeData) string { return r.PlaceOfBirth },
	"estadoCivil":   func(r *models.RepresentativeData) string { return r.CivilStatus },
	"profissao":     func(r *models.RepresentativeData) string { return r.Profession },
}

var caseAccessors = map[string]func(*models.Case) string{
	"caseNumber":  func(k *models.Case) string { return k.CaseNumber },
	"benefitType": func(k *models.Case) string { return string(k.BenefitType) },
	"status":      func(k *models.Case) string { return string(k.Status) },
	"startDate":   func(k *models.Case) string { return k.StartDate },
	"notes":       func(k *models.Case) string { return k.Notes },
	"aiSummary":   func(k *models.Case) string { return k.AISummary },
}

// ResolvePlaceholders replaces every {{dotted.path}} token in content with
// the value resolved against the client and the optionally selected case.
// Tokens whose path cannot be resolved are left untouched; that is the
// graceful-degradation contract, not an error.
func ResolvePlaceholders(content string, client models.Client, kase *models.Case) string {
	return placeholderPattern.ReplaceAllStringFunc(content, func(match string) string {
		path := strings.TrimSpace(placeholderPattern.FindStringSubmatch(match)[1])
		segments := strings.Split(path, ".")

		switch segments[0] {
		case "cliente":
			if len(segments) == 2 {
				if get, ok := clientAccessors[segments[1]]; ok {
					return get(&client)
				}
			}
			if len(segments) == 3 && segments[1] == "legalRepresentative" {
				if client.LegalRepresentative == nil {
					return match
				}
				if get, ok := representativeAccessors[segments[2]]; ok {
					return get(client.LegalRepresentative)
				}
			}
		case "caso":
			if kase == nil {
				return match
			}
			if len(segments) == 2 {
				if get, ok := caseAccessors[segments[1]]; ok {
					return get(kase)
				}
			}
		}
		return match
	})
}

// requiredDocsByBenefit lists the documents the office expects to collect
// for each benefit type.
var requiredDocsByBenefit = map[models.BenefitType][]string{
	models.BenefitAposentadoriaIdade:        {"Documento de Identificação (RG/CNH)", "CPF", "Comprovante de Residência", "Carteira de Trabalho (CTPS)", "Extrato CNIS"},
	models.BenefitAposentadoriaContribuicao: {"Documento de Identificação (RG/CNH)", "CPF", "Comprovante de Residência", "Carteira de Trabalho (CTPS)", "Extrato CNIS", "Carnês de contribuição (GPS)"},
	models.BenefitAposentadoriaEspecial:     {"Documento de Identificação (RG/CNH)", "CPF", "Carteira de Trabalho (CTPS)", "Perfil Profissiográfico Previdenciário (PPP)", "LTCAT"},
	models.BenefitAposentadoriaInvalidez:    {"Documento de Identificação (RG/CNH)", "CPF", "Comprovante de Residência", "Laudos e Exames Médicos", "Carteira de Trabalho (CTPS)"},
	models.BenefitAuxilioDoenca:             {"Documento de Identificação (RG/CNH)", "CPF", "Comprovante de Residência", "Laudos e Exames Médicos", "Atestado Médico com CID"},
	models.BenefitAuxilioAcidente:           {"Documento de Identificação (RG/CNH)", "CPF", "Comunicação de Acidente de Trabalho (CAT)", "Laudos e Exames Médicos"},
	models.BenefitBPCLOAS:                   {"Documento de Identificação (RG/CNH) de todos do grupo familiar", "CPF de todos do grupo familiar", "Comprovante de Residência", "Cadastro Único (CadÚnico) atualizado"},
	models.BenefitPensaoMorte:               {"Documento de Identificação (RG/CNH) do requerente", "CPF do requerente", "Certidão de Óbito", "Documentos do falecido", "Certidão de Casamento/Nascimento"},
	models.BenefitSalarioMaternidade:        {"Documento de Identificação (RG/CNH)", "CPF", "Certidão de Nascimento da criança", "Carteira de Trabalho (CTPS)"},
}

// RequiredDocuments returns the suggested document list for a benefit type
func RequiredDocuments(benefitType models.BenefitType) []string {
	docs := requiredDocsByBenefit[benefitType]
	out := make([]string, len(docs))
	copy(out, docs)
	return out
}

// ChecklistItem is one entry of a case's document checklist
type ChecklistItem struct {
	Name     string `json:"name"`
	Uploaded bool   `json:"uploaded"`
}

// ChecklistStatus matches the case's uploaded documents against the
// required list for its benefit type. A required document counts as
// uploaded when any document name contains its simplified name (text before
// the first parenthesis), case-insensitively.
func ChecklistStatus(kase models.Case) []ChecklistItem {
	uploaded := make([]string, 0, len(kase.Documents))
	for _, doc := range kase.Documents {
		uploaded = append(uploaded, strings.ToLower(doc.Name))
	}

	required := requiredDocsByBenefit[kase.BenefitType]
	items := make([]ChecklistItem, 0, len(required))
	for _, name := range required {
		simplified := strings.ToLower(strings.TrimSpace(strings.SplitN(name, "(", 2)[0]))
		found := false
		for _, u := range uploaded {
			if strings.Contains(u, simplified) {
				found = true
				break
			}
		}
		items = append(items, ChecklistItem{Name: name, Uploaded: found})
	}
	return items
}

// DocumentService materializes templates for a client/case pair and keeps
// the case's legal-document lifecycle in sync.
type DocumentService struct {
	templateRepo *repository.TemplateRepository
	clientRepo   *repository.ClientRepository
	caseRepo     *repository.CaseRepository
}

// NewDocumentService creates a new document service
func NewDocumentService(templateRepo *repository.TemplateRepository, clientRepo *repository.ClientRepository, caseRepo *repository.CaseRepository) *DocumentService {
	return &DocumentService{
		templateRepo: templateRepo,
		clientRepo:   clientRepo,
		caseRepo:     caseRepo,
	}
}

// Generate resolves a template against a client and an optional case. When a
// case is given its legal-document record for the template is marked Gerado.
func (s *DocumentService) Generate(ctx context.Context, templateID, clientID, caseID string) (string, error) {
	template, err := s.templateRepo.GetByID(ctx, templateID)
	if err != nil {
		return "", err
	}
	client, err := s.clientRepo.GetByID(ctx, clientID)
	if err != nil {
		return "", err
	}

	var kase *models.Case
	if caseID != "" {
		k, err := s.caseRepo.GetByID(ctx, caseID)
		if err != nil {
			return "", err
		}
		kase = &k
	}

	content := ResolvePlaceholders(template.Content, client, kase)

	if caseID != "" {
		if err := s.caseRepo.UpdateLegalDocumentStatus(ctx, caseID, templateID, models.LegalDocGerado); err != nil {
			return "", fmt.Errorf("failed to mark document generated: %w", err)
		}
	}
	return content, nil
}
