package models

import (
	"fmt"
	"strings"
	"time"
)

// CaseStatus represents the workflow stage of a case
type CaseStatus string

const (
	StatusAnaliseInicial       CaseStatus = "Análise Inicial"
	StatusAguardandoDocumentos CaseStatus = "Aguardando Documentos"
	StatusProtocoloINSS        CaseStatus = "Protocolado no INSS"
	StatusEmAnaliseINSS        CaseStatus = "Em Análise (INSS)"
	StatusExigencia            CaseStatus = "Em Exigência"
	StatusConcedido            CaseStatus = "Concedido"
	StatusNegado               CaseStatus = "Negado"
	StatusRecurso              CaseStatus = "Fase Recursal"
	StatusJudicial             CaseStatus = "Fase Judicial"
	StatusFinalizado           CaseStatus = "Finalizado"
)

// BenefitType represents the category of social-security claim a case pursues
type BenefitType string

const (
	BenefitAposentadoriaIdade        BenefitType = "Aposentadoria por Idade"
	BenefitAposentadoriaContribuicao BenefitType = "Aposentadoria por Tempo de Contribuição"
	BenefitAposentadoriaEspecial     BenefitType = "Aposentadoria Especial"
	BenefitAposentadoriaInvalidez    BenefitType = "Aposentadoria por Invalidez"
	BenefitAuxilioDoenca             BenefitType = "Auxílio-Doença"
	BenefitAuxilioAcidente           BenefitType = "Auxílio-Acidente"
	BenefitBPCLOAS                   BenefitType = "BPC/LOAS"
	BenefitPensaoMorte               BenefitType = "Pensão por Morte"
	BenefitSalarioMaternidade        BenefitType = "Salário Maternidade"
)

// LegalDocumentStatus tracks the generation/signature lifecycle of a
// document generated from a template for a case
type LegalDocumentStatus string

const (
	LegalDocPendente LegalDocumentStatus = "Pendente"
	LegalDocGerado   LegalDocumentStatus = "Gerado"
	LegalDocAssinado LegalDocumentStatus = "Assinado"
)

// LegalDocument is a per-template status record embedded in a case. The
// title is copied from the template at creation time, not live-linked.
type LegalDocument struct {
	TemplateID string              `json:"templateId"`
	Title      string              `json:"title"`
	Status     LegalDocumentStatus `json:"status"`
}

// Document represents an uploaded case document
type Document struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	URL         string    `json:"url,omitempty"`
	UploadedAt  time.Time `json:"uploadedAt"`
	TextContent string    `json:"textContent,omitempty"`
	AIAnalysis  string    `json:"aiAnalysis,omitempty"`
}

// Task represents a deadline or to-do item owned by exactly one case
type Task struct {
	ID          string `json:"id"`
	Description string `json:"description" validate:"required"`
	DueDate     string `json:"dueDate" validate:"required"` // YYYY-MM-DD
	Completed   bool   `json:"completed"`
	CaseID      string `json:"caseId"`
}

// SuggestedTask is a task proposal returned by the AI collaborator
type SuggestedTask struct {
	Description string `json:"description"`
	DueDate     string `json:"dueDate,omitempty"` // YYYY-MM-DD
	Reasoning   string `json:"reasoning"`
}

// Case represents a benefit claim handled for a client
type Case struct {
	ID             string          `json:"id"`
	CaseNumber     string          `json:"caseNumber" validate:"required"`
	ClientID       string          `json:"clientId" validate:"required"`
	BenefitType    BenefitType     `json:"benefitType" validate:"required"`
	Status         CaseStatus      `json:"status" validate:"required"`
	StartDate      string          `json:"startDate"` // YYYY-MM-DD
	Notes          string          `json:"notes"`
	Documents      []Document      `json:"documents"`
	Tasks          []Task          `json:"tasks"`
	LegalDocuments []LegalDocument `json:"legalDocuments"`
	LastUpdate     time.Time       `json:"lastUpdate"`
	AISummary      string          `json:"aiSummary,omitempty"`
}

// noteTimestampLayout is the pt-BR day-first stamp embedded in the notes log.
const noteTimestampLayout = "02/01/2006 15:04"

// AppendNote appends a timestamped entry to the free-text notes log and
// stamps LastUpdate. The joined-string format is kept for snapshot
// compatibility with previously saved cases.
func (c *Case) AppendNote(text string, now time.Time) {
	entry := fmt.Sprintf("\n\n--- %s ---\n%s", now.Format(noteTimestampLayout), text)
	c.Notes = strings.TrimSpace(c.Notes + entry)
	c.LastUpdate = now
}

// IsActive reports whether the case is still being worked
func (c *Case) IsActive() bool {
	return c.Status != StatusFinalizado && c.Status != StatusConcedido
}
