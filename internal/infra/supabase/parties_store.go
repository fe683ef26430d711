package supabase

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"time"

	"github.com/saralbooks/billing-api/internal/domain"

	"github.com/google/uuid"
)

// ============================================================
// Parties (customers and vendors)
// ============================================================

func (c *Client) ListParties(ctx context.Context, businessID, partyType string) ([]domain.Party, error) {
	ctx, span := tracer.Start(ctx, "Supabase.ListParties")
	defer span.End()

	path := fmt.Sprintf("parties?business_id=eq.%s&order=name.asc", url.QueryEscape(businessID))
	if partyType != "" {
		path += fmt.Sprintf("&type=eq.%s", url.QueryEscape(partyType))
	}

	body, err := c.doGet(ctx, path)
	if err != nil {
		return nil, err
	}
	if body == nil {
		return []domain.Party{}, nil
	}

	var parties []domain.Party
	if err := json.Unmarshal(body, &parties); err != nil {
		return nil, fmt.Errorf("decode parties: %w", err)
	}
	return parties, nil
}

func (c *Client) GetParty(ctx context.Context, businessID, partyID string) (*domain.Party, error) {
	ctx, span := tracer.Start(ctx, "Supabase.GetParty")
	defer span.End()

	path := fmt.Sprintf("parties?business_id=eq.%s&id=eq.%s&limit=1",
		url.QueryEscape(businessID), url.QueryEscape(partyID))
	body, err := c.doGet(ctx, path)
	if err != nil {
		return nil, err
	}

	var rows []domain.Party
	if body != nil {
		if err := json.Unmarshal(body, &rows); err != nil {
			return nil, fmt.Errorf("decode party: %w", err)
		}
	}
	if len(rows) == 0 {
		return nil, &domain.ErrNotFound{Resource: "party", ID: partyID}
	}
	return &rows[0], nil
}

func (c *Client) CreateParty(ctx context.Context, p *domain.Party) (*domain.Party, error) {
	ctx, span := tracer.Start(ctx, "Supabase.CreateParty")
	defer span.End()

	row := map[string]any{
		"id":          uuid.New().String(),
		"business_id": p.BusinessID,
		"name":        p.Name,
		"type":        p.Type,
		"gstin":       p.GSTIN,
		"state":       p.State,
		"phone":       p.Phone,
		"email":       p.Email,
		"address":     p.Address,
		"created_at":  time.Now().Format(time.RFC3339),
	}

	body, err := c.doPost(ctx, "parties", row)
	if err != nil {
		return nil, err
	}

	var created []domain.Party
	if err := json.Unmarshal(body, &created); err != nil {
		return nil, fmt.Errorf("decode party: %w", err)
	}
	if len(created) == 0 {
		return nil, fmt.Errorf("no result from parties insert")
	}
	return &created[0], nil
}

// GetBusinessProfile fetches the tenant's business profile, the source
// of the home jurisdiction for the tax split.
func (c *Client) GetBusinessProfile(ctx context.Context, businessID string) (*domain.BusinessProfile, error) {
	ctx, span := tracer.Start(ctx, "Supabase.GetBusinessProfile")
	defer span.End()

	var profile *domain.BusinessProfile
	err := c.execute(ctx, func() error {
		path := fmt.Sprintf("business_profiles?id=eq.%s&limit=1", url.QueryEscape(businessID))
		body, err := c.doGet(ctx, path)
		if err != nil {
			return err
		}
		if body == nil || string(body) == "[]" {
			return &domain.ErrNotFound{Resource: "business_profile", ID: businessID}
		}

		var rows []domain.BusinessProfile
		if err := json.Unmarshal(body, &rows); err != nil {
			return fmt.Errorf("decode business profile: %w", err)
		}
		if len(rows) == 0 {
			return &domain.ErrNotFound{Resource: "business_profile", ID: businessID}
		}
		profile = &rows[0]
		return nil
	})
	if err != nil {
		return nil, &domain.ErrExternalService{Service: "supabase/business_profiles", Err: err}
	}
	return profile, nil
}
