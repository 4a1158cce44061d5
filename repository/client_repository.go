package repository

import (
	"context"
	"time"

	"juriscrm/models"

	"github.com/google/uuid"
)

// ClientRepository handles store operations for clients
type ClientRepository struct {
	db *Database
}

// NewClientRepository creates a new client repository
func NewClientRepository(db *Database) *ClientRepository {
	return &ClientRepository{db: db}
}

func cloneClient(c models.Client) models.Client {
	out := c
	if c.LegalRepresentative != nil {
		rep := *c.LegalRepresentative
		out.LegalRepresentative = &rep
	}
	return out
}

// Add assigns a fresh identity and creation timestamp, appends the client
// and persists the collection.
func (r *ClientRepository) Add(ctx context.Context, client models.Client) (models.Client, error) {
	if err := r.db.checkValid(client); err != nil {
		return models.Client{}, err
	}

	client.ID = uuid.NewString()
	client.CreatedAt = time.Now()

	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	r.db.clients = append(r.db.clients, client)
	r.db.persist(ctx, KeyClients, r.db.clients)

	return cloneClient(client), nil
}

// Update replaces the stored client matching the given identity
func (r *ClientRepository) Update(ctx context.Context, client models.Client) error {
	if err := r.db.checkValid(client); err != nil {
		return err
	}

	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	for i := range r.db.clients {
		if r.db.clients[i].ID == client.ID {
			r.db.clients[i] = cloneClient(client)
			r.db.persist(ctx, KeyClients, r.db.clients)
			return nil
		}
	}
	return ErrClientNotFound
}

// Delete removes the client and cascades to every case referencing it, and
// to every fee and expense referencing those cases. The whole cascade is one
// logical operation: no orphaned records remain reachable afterwards.
func (r *ClientRepository) Delete(ctx context.Context, id string) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	found := false
	clients := r.db.clients[:0]
	for _, c := range r.db.clients {
		if c.ID == id {
			found = true
			continue
		}
		clients = append(clients, c)
	}
	if !found {
		return ErrClientNotFound
	}
	r.db.clients = clients

	removedCases := make(map[string]bool)
	cases := r.db.cases[:0]
	for _, k := range r.db.cases {
		if k.ClientID == id {
			removedCases[k.ID] = true
			continue
		}
		cases = append(cases, k)
	}
	r.db.cases = cases

	fees := r.db.fees[:0]
	for _, f := range r.db.fees {
		if removedCases[f.CaseID] {
			continue
		}
		fees = append(fees, f)
	}
	r.db.fees = fees

	expenses := r.db.expenses[:0]
	for _, e := range r.db.expenses {
		if removedCases[e.CaseID] {
			continue
		}
		expenses = append(expenses, e)
	}
	r.db.expenses = expenses

	r.db.persist(ctx, KeyClients, r.db.clients)
	r.db.persist(ctx, KeyCases, r.db.cases)
	r.db.persist(ctx, KeyFees, r.db.fees)
	r.db.persist(ctx, KeyExpenses, r.db.expenses)

	return nil
}

// GetByID retrieves a client by ID
func (r *ClientRepository) GetByID(ctx context.Context, id string) (models.Client, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	for _, c := range r.db.clients {
		if c.ID == id {
			return cloneClient(c), nil
		}
	}
	return models.Client{}, ErrClientNotFound
}

// List returns all clients
func (r *ClientRepository) List(ctx context.Context) []models.Client {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	out := make([]models.Client, 0, len(r.db.clients))
	for _, c := range r.db.clients {
		out = append(out, cloneClient(c))
	}
	return out
}
