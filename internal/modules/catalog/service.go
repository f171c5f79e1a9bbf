package catalog

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/arborhaus/arbor-backend/internal/apperr"
)

// Service defines catalog business logic.
type Service interface {
	Create(ctx context.Context, req CreateItemRequest) (*Item, error)
	Get(ctx context.Context, id string) (*Item, error)
	List(ctx context.Context, f Filter) ([]*Item, error)
	Update(ctx context.Context, id string, req CreateItemRequest) (*Item, error)

	// Archive soft-deletes the item: it drops out of default listings but
	// Get keeps working, so order history is never broken.
	Archive(ctx context.Context, id string) error
}

// ColorSpec is one requested color tag: a bare color, or a (color, model)
// pair tying the color to a specific model variant.
type ColorSpec struct {
	Color   string  `json:"color"`
	ModelID *string `json:"model_id,omitempty"`
}

// CreateItemRequest holds the data for creating or updating a catalog item.
type CreateItemRequest struct {
	Name      string      `json:"name"`
	Price     float64     `json:"price"`
	Width     float64     `json:"width"`
	Height    float64     `json:"height"`
	Depth     float64     `json:"depth"`
	CompanyID string      `json:"company_id,omitempty"`
	ObjectID  string      `json:"object_id,omitempty"`
	Colors    []ColorSpec `json:"colors"`
	Styles    []string    `json:"styles"`
	Rooms     []string    `json:"rooms"`
}

// Filter narrows a catalog listing. All set fields are ANDed.
type Filter struct {
	Name            string   // substring match
	Price           *float64 // exact price
	Colors          []string // item has at least one of these color tags
	Styles          []string
	Rooms           []string
	ObjectID        string
	ModelID         string // item has a color variant with this model id
	IncludeArchived bool   // default listings exclude archived items
	CompanyID       string
	CompanyName     string // substring match on the manufacturer name
}

type service struct{ repo Repository }

func NewService(repo Repository) Service { return &service{repo: repo} }

// validate checks a create/update request against the closed vocabularies
// and reports every offending field at once.
func validate(req CreateItemRequest) error {
	var fields []apperr.FieldError

	if req.Name == "" {
		fields = append(fields, apperr.Field("name", "name is required"))
	}
	if req.Price <= 0 {
		fields = append(fields, apperr.Field("price", "price must be greater than 0"))
	}
	if req.Width < 0 || req.Height < 0 || req.Depth < 0 {
		fields = append(fields, apperr.Field("dimensions", "dimensions must not be negative"))
	}

	if len(req.Colors) == 0 {
		fields = append(fields, apperr.Field("colors", "at least one color is required"))
	}
	for _, c := range req.Colors {
		if !ValidColor(c.Color) {
			fields = append(fields, apperr.Field("colors", "unknown color: "+c.Color))
		}
	}

	if len(req.Styles) == 0 {
		fields = append(fields, apperr.Field("styles", "at least one style is required"))
	}
	for _, s := range req.Styles {
		if !ValidStyle(s) {
			fields = append(fields, apperr.Field("styles", "unknown style: "+s))
		}
	}

	if len(req.Rooms) == 0 {
		fields = append(fields, apperr.Field("rooms", "at least one room is required"))
	}
	for _, r := range req.Rooms {
		if !ValidRoom(r) {
			fields = append(fields, apperr.Field("rooms", "unknown room: "+r))
		}
	}

	if req.CompanyID != "" {
		if _, err := uuid.Parse(req.CompanyID); err != nil {
			fields = append(fields, apperr.Field("company_id", "malformed id"))
		}
	}

	if len(fields) > 0 {
		return apperr.Validation(fields...)
	}
	return nil
}

func buildItem(req CreateItemRequest) *Item {
	item := &Item{
		ID:       uuid.New(),
		Name:     req.Name,
		Price:    req.Price,
		Width:    req.Width,
		Height:   req.Height,
		Depth:    req.Depth,
		ObjectID: req.ObjectID,
		Styles:   append([]string(nil), req.Styles...),
		Rooms:    append([]string(nil), req.Rooms...),
	}
	if req.CompanyID != "" {
		cid, _ := uuid.Parse(req.CompanyID)
		item.CompanyID = &cid
	}
	for _, c := range req.Colors {
		item.Colors = append(item.Colors, &Color{
			ID:      uuid.New(),
			ItemID:  item.ID,
			Color:   c.Color,
			ModelID: c.ModelID,
		})
	}
	return item
}

func (s *service) Create(ctx context.Context, req CreateItemRequest) (*Item, error) {
	if err := validate(req); err != nil {
		return nil, err
	}
	item := buildItem(req)
	if err := s.repo.Create(ctx, item); err != nil {
		return nil, fmt.Errorf("persist catalog item: %w", err)
	}
	return item, nil
}

func (s *service) Get(ctx context.Context, id string) (*Item, error) {
	item, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperr.NotFound("catalog item")
		}
		return nil, err
	}
	return item, nil
}

func (s *service) List(ctx context.Context, f Filter) ([]*Item, error) {
	return s.repo.List(ctx, f)
}

func (s *service) Update(ctx context.Context, id string, req CreateItemRequest) (*Item, error) {
	existing, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := validate(req); err != nil {
		return nil, err
	}

	item := buildItem(req)
	item.ID = existing.ID
	item.Archived = existing.Archived
	for _, c := range item.Colors {
		c.ItemID = existing.ID
	}
	if err := s.repo.Update(ctx, item); err != nil {
		return nil, fmt.Errorf("update catalog item: %w", err)
	}
	return item, nil
}

func (s *service) Archive(ctx context.Context, id string) error {
	if err := s.repo.Archive(ctx, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return apperr.NotFound("catalog item")
		}
		return err
	}
	return nil
}
