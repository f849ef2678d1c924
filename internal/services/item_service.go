package services

import (
	"context"

	"github.com/google/uuid"

	"fiwa/internal/core"
	"fiwa/internal/log"
	"fiwa/internal/storage"
)

// ItemService persists financial transactions. The interactive form
// builds the same payload; both paths go through Create so items always
// reach the store.
type ItemService struct {
	store *storage.Store
	log   *log.Logger
}

// Create validates and stores a transaction, returning the stored item.
// When the caller did not pre-generate an item uuid one is assigned
// here. Final price and currency default to the raw values and the
// exchange rate defaults to 1.
func (s *ItemService) Create(ctx context.Context, ni core.NewItem) (*core.Item, error) {
	if err := ni.Validate(); err != nil {
		return nil, err
	}

	exists, err := s.store.ProjectExists(ctx, ni.ProjectID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, &core.NotFoundError{Entity: "project", ID: ni.ProjectID}
	}

	item := core.Item{
		ItemUUID:         ni.ItemUUID,
		ProjectID:        ni.ProjectID,
		Name:             ni.Name,
		Note:             ni.Note,
		Price:            ni.Price,
		PriceFinal:       ni.PriceFinal,
		Currency:         ni.Currency,
		CurrencyFinal:    ni.CurrencyFinal,
		BoughtDate:       ni.BoughtDate,
		BoughtByID:       ni.BoughtByID,
		BoughtForID:      ni.BoughtForID,
		AddedByID:        ni.AddedByID,
		ExchangeRate:     ni.ExchangeRate,
		ExchangeRateDate: ni.ExchangeRateDate,
		Tags:             ni.Tags,
	}
	if item.ItemUUID == "" {
		item.ItemUUID = uuid.NewString()
	}
	if item.PriceFinal == 0 {
		item.PriceFinal = item.Price
	}
	if item.CurrencyFinal == "" {
		item.CurrencyFinal = item.Currency
	}
	if item.ExchangeRate == 0 {
		item.ExchangeRate = 1.0
	}

	itemID, err := s.store.InsertItem(ctx, item)
	if err != nil {
		return nil, err
	}
	item.ItemID = itemID
	s.log.InfoContext(ctx, "item created",
		log.FieldItemUUID, item.ItemUUID, log.FieldProjectID, item.ProjectID, "price", item.Price)
	return &item, nil
}

// ListForProject returns the project's transactions, most recent first.
func (s *ItemService) ListForProject(ctx context.Context, projectID int64) ([]core.Item, error) {
	return s.store.ListItems(ctx, projectID)
}
