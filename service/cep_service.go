package service

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/goccy/go-json"
)

var (
	ErrInvalidCEP  = errors.New("cep must have 8 digits")
	ErrCEPNotFound = errors.New("cep not found")
)

const defaultCEPBaseURL = "https://viacep.com.br/ws"

// Address is the postal lookup result used to prefill the client form
type Address struct {
	CEP          string `json:"cep"`
	Street       string `json:"logradouro"`
	Complement   string `json:"complemento"`
	Neighborhood string `json:"bairro"`
	City         string `json:"localidade"`
	State        string `json:"uf"`
}

// CEPService resolves Brazilian postal codes through the ViaCEP API
type CEPService struct {
	httpClient *http.Client
	baseURL    string
}

// CEPServiceOption is a functional option for CEPService
type CEPServiceOption func(*CEPService)

// CEPWithHTTPClient sets the HTTP client
func CEPWithHTTPClient(client *http.Client) CEPServiceOption {
	return func(s *CEPService) {
		s.httpClient = client
	}
}

// CEPWithBaseURL overrides the API base URL
func CEPWithBaseURL(url string) CEPServiceOption {
	return func(s *CEPService) {
		s.baseURL = strings.TrimSuffix(url, "/")
	}
}

// NewCEPService creates a new postal lookup service
func NewCEPService(opts ...CEPServiceOption) *CEPService {
	s := &CEPService{
		httpClient: &http.Client{Timeout: 10 * time.Second},
		baseURL:    defaultCEPBaseURL,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// NormalizeCEP strips everything but digits from a postal code
func NormalizeCEP(cep string) string {
	var b strings.Builder
	for _, r := range cep {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// Lookup resolves a postal code to a structured address
func (s *CEPService) Lookup(ctx context.Context, cep string) (Address, error) {
	cep = NormalizeCEP(cep)
	if len(cep) != 8 {
		return Address{}, ErrInvalidCEP
	}

	url := fmt.Sprintf("%s/%s/json/", s.baseURL, cep)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return Address{}, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return Address{}, fmt.Errorf("cep lookup failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return Address{}, fmt.Errorf("cep lookup failed: status %d", resp.StatusCode)
	}

	// ViaCEP answers 200 with {"erro": true} for unknown codes
	var payload struct {
		Address
		Erro bool `json:"erro"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return Address{}, fmt.Errorf("failed to decode cep response: %w", err)
	}
	if payload.Erro {
		return Address{}, ErrCEPNotFound
	}
	return payload.Address, nil
}
